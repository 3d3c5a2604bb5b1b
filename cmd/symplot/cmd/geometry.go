package cmd

import (
	"github.com/spf13/cobra"

	"github.com/njchilds90/symplot"
)

func (a *app) geometryCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "geometry",
		Short: "Differential geometry of parametric curves and surfaces",
	}

	curve := func(src string) (*symplot.Curve, error) {
		v, err := symplot.ParseVector(src)
		if err != nil {
			return nil, err
		}
		return symplot.NewCurve(v)
	}
	surface := func(src string) (*symplot.Surface, error) {
		v, err := symplot.ParseVector(src)
		if err != nil {
			return nil, err
		}
		return symplot.NewSurface(v)
	}

	c.AddCommand(&cobra.Command{
		Use:     "curvature VECTOR",
		Short:   "Curvature |r' x r''| / |r'|^3 of a curve",
		Example: `  symplot geometry curvature "(3*cos(t), 3*sin(t))"`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cv, err := curve(args[0])
			if err != nil {
				return err
			}
			k, err := cv.Curvature()
			if err != nil {
				return err
			}
			return a.printExpr(cmd, k)
		},
	})

	c.AddCommand(&cobra.Command{
		Use:     "torsion VECTOR",
		Short:   "Torsion of a space curve",
		Example: `  symplot geometry torsion "(cos(t), sin(t), t)"`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cv, err := curve(args[0])
			if err != nil {
				return err
			}
			tau, err := cv.Torsion()
			if err != nil {
				return err
			}
			return a.printExpr(cmd, tau)
		},
	})

	c.AddCommand(&cobra.Command{
		Use:   "normal VECTOR",
		Short: "Normal r_u x r_v of a parametric surface",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := surface(args[0])
			if err != nil {
				return err
			}
			n, err := s.Normal()
			if err != nil {
				return err
			}
			return a.printVector(cmd, n)
		},
	})

	var u, v float64
	plane := &cobra.Command{
		Use:     "tangent-plane VECTOR",
		Short:   "Implicit tangent plane of a surface at (u, v)",
		Example: `  symplot geometry tangent-plane "(sin(u)*cos(v), sin(u)*sin(v), cos(u))" --u 0.7 --v 1.2`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := surface(args[0])
			if err != nil {
				return err
			}
			p, err := s.TangentPlane(u, v)
			if err != nil {
				return err
			}
			return a.printExpr(cmd, p)
		},
	}
	plane.Flags().Float64Var(&u, "u", 0, "first parameter value")
	plane.Flags().Float64Var(&v, "v", 0, "second parameter value")
	c.AddCommand(plane)
	return c
}

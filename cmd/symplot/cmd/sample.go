package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"

	"github.com/njchilds90/symplot"
	"github.com/njchilds90/symplot/sample"
)

// parseRange reads "lo:hi" or "lo:hi:n". Bounds may be closed expressions
// such as "2*pi".
func parseRange(arg string, defaultN int) (sample.Range, error) {
	parts := strings.Split(arg, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return sample.Range{}, errors.Errorf("range %q: want lo:hi or lo:hi:n", arg)
	}
	lo, err := evalConst(parts[0])
	if err != nil {
		return sample.Range{}, errors.Wrapf(err, "range %q", arg)
	}
	hi, err := evalConst(parts[1])
	if err != nil {
		return sample.Range{}, errors.Wrapf(err, "range %q", arg)
	}
	n := defaultN
	if len(parts) == 3 {
		if n, err = strconv.Atoi(parts[2]); err != nil {
			return sample.Range{}, errors.Wrapf(err, "range %q", arg)
		}
	}
	return sample.Range{Lo: lo, Hi: hi, N: n}, nil
}

func parseRanges(specs []string, want, defaultN int) ([]sample.Range, error) {
	if len(specs) != want {
		return nil, errors.Errorf("want %d --range flags (one per variable), got %d", want, len(specs))
	}
	out := make([]sample.Range, want)
	for i, s := range specs {
		r, err := parseRange(s, defaultN)
		if err != nil {
			return nil, err
		}
		out[i] = r
	}
	return out, nil
}

func writeCSV(w io.Writer, rows [][]float64) {
	for _, row := range rows {
		cells := make([]string, len(row))
		for i, v := range row {
			cells[i] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		fmt.Fprintln(w, strings.Join(cells, ","))
	}
}

func denseRows(m *mat.Dense) [][]float64 {
	r, _ := m.Dims()
	rows := make([][]float64, r)
	for i := range rows {
		rows[i] = m.RawRowView(i)
	}
	return rows
}

func printSummary(cmd *cobra.Command, s sample.Summary) {
	field(cmd, "finite", s.Count)
	field(cmd, "non-finite", s.NonFinite)
	field(cmd, "min", s.Min)
	field(cmd, "max", s.Max)
	field(cmd, "mean", s.Mean)
	field(cmd, "stddev", s.StdDev)
}

func (a *app) sampleCmd() *cobra.Command {
	var (
		ranges []string
		csv    bool
	)
	c := &cobra.Command{
		Use:   "sample",
		Short: "Evaluate expressions over grids",
		Long: `Evaluate curves, surfaces and implicit functions over regular grids.

Each --range flag is lo:hi or lo:hi:n and applies to the free variables in
lexicographic order; n defaults to the configured resolution.`,
	}
	c.PersistentFlags().StringArrayVar(&ranges, "range", nil, "sample range lo:hi[:n], one per variable")
	c.PersistentFlags().BoolVar(&csv, "csv", false, "print the samples as CSV instead of a summary")

	sampler := func() sample.Sampler { return a.cfg.Sampling.Sampler() }
	logDone := func(kind string, points int, start time.Time) {
		a.logger.Debug("sampled",
			zap.String("kind", kind),
			zap.Int("points", points),
			zap.Duration("elapsed", time.Since(start)),
		)
	}

	c.AddCommand(&cobra.Command{
		Use:     "curve VECTOR",
		Short:   "Sample a parametric curve",
		Example: `  symplot sample curve "(cos(t), sin(t), t/4)" --range 0:4*pi:200 --csv`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := symplot.ParseVector(args[0])
			if err != nil {
				return err
			}
			rs, err := parseRanges(ranges, 1, a.cfg.Sampling.CurvePoints)
			if err != nil {
				return err
			}
			start := time.Now()
			m, err := sampler().Curve(v, rs[0])
			if err != nil {
				return err
			}
			r, dim := m.Dims()
			logDone("curve", r, start)
			if csv {
				writeCSV(cmd.OutOrStdout(), denseRows(m))
				return nil
			}
			heading(cmd, "curve "+v.String())
			field(cmd, "points", r)
			field(cmd, "dimension", dim)
			return nil
		},
	})

	c.AddCommand(&cobra.Command{
		Use:     "surface VECTOR",
		Short:   "Sample a parametric surface",
		Example: `  symplot sample surface "(sin(u)*cos(v), sin(u)*sin(v), cos(u))" --range 0:pi --range 0:2*pi`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := symplot.ParseVector(args[0])
			if err != nil {
				return err
			}
			rs, err := parseRanges(ranges, 2, a.cfg.Sampling.SurfacePoints)
			if err != nil {
				return err
			}
			start := time.Now()
			g, err := sampler().Surface(v, rs[0], rs[1])
			if err != nil {
				return err
			}
			r, cols := g.X.Dims()
			logDone("surface", r*cols, start)
			if csv {
				rows := make([][]float64, 0, r*cols)
				for i := 0; i < r; i++ {
					for j := 0; j < cols; j++ {
						rows = append(rows, []float64{g.U[i], g.V[j], g.X.At(i, j), g.Y.At(i, j), g.Z.At(i, j)})
					}
				}
				writeCSV(cmd.OutOrStdout(), rows)
				return nil
			}
			heading(cmd, "surface "+v.String())
			field(cmd, "grid", fmt.Sprintf("%dx%d", r, cols))
			return nil
		},
	})

	c.AddCommand(&cobra.Command{
		Use:     "implicit2d EXPR",
		Short:   "Sample a function of two variables for its zero contour",
		Example: `  symplot sample implicit2d "x^2 + y^2 - 1" --range -2:2 --range -2:2`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := symplot.Parse(args[0])
			if err != nil {
				return err
			}
			rs, err := parseRanges(ranges, 2, a.cfg.Sampling.Implicit2DPoints)
			if err != nil {
				return err
			}
			start := time.Now()
			m, err := sampler().Implicit2D(e, rs[0], rs[1])
			if err != nil {
				return err
			}
			r, cols := m.Dims()
			logDone("implicit2d", r*cols, start)
			if csv {
				writeCSV(cmd.OutOrStdout(), denseRows(m))
				return nil
			}
			heading(cmd, "implicit2d "+e.String()+" = 0")
			field(cmd, "grid", fmt.Sprintf("%dx%d", r, cols))
			field(cmd, "contour cells", sample.SignChanges(m))
			printSummary(cmd, sample.SummarizeDense(m))
			return nil
		},
	})

	c.AddCommand(&cobra.Command{
		Use:     "implicit3d EXPR",
		Short:   "Sample a function of three variables for its zero surface",
		Example: `  symplot sample implicit3d "x^2 + y^2 + z^2 - 1" --range -1.5:1.5 --range -1.5:1.5 --range -1.5:1.5`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := symplot.Parse(args[0])
			if err != nil {
				return err
			}
			rs, err := parseRanges(ranges, 3, a.cfg.Sampling.Implicit3DPoints)
			if err != nil {
				return err
			}
			start := time.Now()
			vol, err := sampler().Implicit3D(e, rs[0], rs[1], rs[2])
			if err != nil {
				return err
			}
			logDone("implicit3d", len(vol.Data), start)
			if csv {
				writeCSV(cmd.OutOrStdout(), [][]float64{vol.Data})
				return nil
			}
			heading(cmd, "implicit3d "+e.String()+" = 0")
			field(cmd, "grid", fmt.Sprintf("%dx%dx%d", vol.Nx, vol.Ny, vol.Nz))
			field(cmd, "surface cells", vol.SignChanges())
			printSummary(cmd, vol.Summary())
			return nil
		},
	})
	return c
}

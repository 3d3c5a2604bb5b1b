package cmd

import (
	"fmt"
	"strconv"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/njchilds90/symplot"
)

func (a *app) printExpr(cmd *cobra.Command, e symplot.Expr) error {
	if !a.asJSON {
		fmt.Fprintln(cmd.OutOrStdout(), e)
		return nil
	}
	s, err := symplot.ToJSON(e)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), s)
	return nil
}

func (a *app) printVector(cmd *cobra.Command, v *symplot.Vector) error {
	if !a.asJSON {
		fmt.Fprintln(cmd.OutOrStdout(), v)
		return nil
	}
	for _, e := range v.Elems() {
		if err := a.printExpr(cmd, e); err != nil {
			return err
		}
	}
	return nil
}

func (a *app) simplifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "simplify EXPR",
		Short: "Print the normal form of an expression",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := symplot.Parse(args[0])
			if err != nil {
				return err
			}
			return a.printExpr(cmd, symplot.Simplify(e))
		},
	}
}

func (a *app) evalCmd() *cobra.Command {
	var (
		at    map[string]string
		point []float64
	)
	c := &cobra.Command{
		Use:   "eval EXPR",
		Short: "Evaluate an expression",
		Long: `Evaluate an expression either with named bindings (--at x=1,y=2) or at
a point (--point 1,2) whose coordinates bind the free variables in
lexicographic order.`,
		Example: `  symplot eval "sqrt(x^2 + y^2)" --point 3,4
  symplot eval "x*y - z" --at x=2,y=3,z=1`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := symplot.Parse(args[0])
			if err != nil {
				return err
			}
			var v float64
			if cmd.Flags().Changed("point") {
				v, err = symplot.EvalAt(e, point...)
			} else {
				var bindings map[string]float64
				if bindings, err = parseBindings(at); err != nil {
					return err
				}
				v, err = e.Eval(bindings)
			}
			if err != nil {
				return err
			}
			a.logger.Debug("evaluated", zap.Stringer("expr", e), zap.Float64("value", v))
			fmt.Fprintln(cmd.OutOrStdout(), strconv.FormatFloat(v, 'g', -1, 64))
			return nil
		},
	}
	c.Flags().StringToStringVar(&at, "at", nil, "variable bindings, name=value")
	c.Flags().Float64SliceVar(&point, "point", nil, "point in free-variable order")
	c.MarkFlagsMutuallyExclusive("at", "point")
	return c
}

func parseBindings(at map[string]string) (map[string]float64, error) {
	out := make(map[string]float64, len(at))
	for name, raw := range at {
		v, err := evalConst(raw)
		if err != nil {
			return nil, errors.Wrapf(err, "binding %s", name)
		}
		out[name] = v
	}
	return out, nil
}

// evalConst evaluates a closed expression such as "2*pi".
func evalConst(src string) (float64, error) {
	e, err := symplot.Parse(src)
	if err != nil {
		return 0, err
	}
	return e.Eval(nil)
}

func (a *app) diffCmd() *cobra.Command {
	var (
		name string
		n    int
	)
	c := &cobra.Command{
		Use:     "diff EXPR",
		Short:   "Differentiate an expression",
		Example: `  symplot diff "sin(x)*x" --var x --n 2`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := symplot.Parse(args[0])
			if err != nil {
				return err
			}
			if name == "" {
				vars := e.FreeVars()
				if len(vars) != 1 {
					return errors.Errorf("--var is required for an expression in %d variables", len(vars))
				}
				name = vars[0]
			}
			d, err := symplot.DiffN(e, name, n)
			if err != nil {
				return err
			}
			return a.printExpr(cmd, d)
		},
	}
	c.Flags().StringVar(&name, "var", "", "variable to differentiate by (default: the only free variable)")
	c.Flags().IntVarP(&n, "n", "n", 1, "order of the derivative")
	return c
}

package symplot

import "math"

// ============================================================
// Numeric evaluation
// ============================================================

// Eval returns the constant value; bindings are ignored.
func (c *Const) Eval(map[string]float64) (float64, error) { return c.val, nil }

// Eval looks the variable up in bindings.
func (v *Var) Eval(bindings map[string]float64) (float64, error) {
	x, ok := bindings[v.name]
	if !ok {
		return 0, &UnboundVariableError{Name: v.name}
	}
	return x, nil
}

func (u *Unary) Eval(bindings map[string]float64) (float64, error) {
	x, err := u.arg.Eval(bindings)
	if err != nil {
		return 0, err
	}
	return unaryFuncs[u.op](x), nil
}

// Eval uses IEEE 754 arithmetic: a divisor that is zero at runtime yields
// ±Inf or NaN rather than an error.
func (b *Binary) Eval(bindings map[string]float64) (float64, error) {
	l, err := b.left.Eval(bindings)
	if err != nil {
		return 0, err
	}
	r, err := b.right.Eval(bindings)
	if err != nil {
		return 0, err
	}
	switch b.op {
	case OpAdd:
		return l + r, nil
	case OpSub:
		return l - r, nil
	case OpMul:
		return l * r, nil
	case OpDiv:
		return l / r, nil
	case OpPow:
		return math.Pow(l, r), nil
	}
	panic("symplot: unknown binary operator " + b.op.String())
}

// EvalAt evaluates e at point, whose coordinates bind e.FreeVars() in order.
func EvalAt(e Expr, point ...float64) (float64, error) {
	vars := freeVarsOf(e)
	if len(point) != len(vars) {
		return 0, &ArityViolationError{Op: "EvalAt", Want: len(point), Got: len(vars), Vars: cloneVars(vars)}
	}
	return e.Eval(Bind(vars, point))
}

// Bind zips names and values into a bindings map.
func Bind(names []string, values []float64) map[string]float64 {
	m := make(map[string]float64, len(names))
	for i, n := range names {
		if i < len(values) {
			m[n] = values[i]
		}
	}
	return m
}

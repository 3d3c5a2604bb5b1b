package symplot

import (
	"strings"

	"go.uber.org/multierr"
)

// ============================================================
// Vector: fixed-length tuple of expressions
// ============================================================

// Vector is an immutable tuple of expressions. All operations return new
// vectors.
type Vector struct {
	elems []Expr
	vars  []string
}

// Vec returns the vector with the given components.
func Vec(elems ...Expr) *Vector {
	v := &Vector{elems: append([]Expr(nil), elems...)}
	for _, e := range v.elems {
		v.vars = mergeVars(v.vars, freeVarsOf(e))
	}
	return v
}

func (v *Vector) Dim() int           { return len(v.elems) }
func (v *Vector) At(i int) Expr      { return v.elems[i] }
func (v *Vector) Elems() []Expr      { return append([]Expr(nil), v.elems...) }
func (v *Vector) FreeVars() []string { return cloneVars(v.vars) }
func (v *Vector) Arity() int         { return len(v.vars) }

func (v *Vector) String() string {
	parts := make([]string, len(v.elems))
	for i, e := range v.elems {
		parts[i] = e.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// Equal reports component-wise structural equality.
func (v *Vector) Equal(o *Vector) bool {
	if v.Dim() != o.Dim() {
		return false
	}
	for i := range v.elems {
		if !v.elems[i].Equal(o.elems[i]) {
			return false
		}
	}
	return true
}

func (v *Vector) zip(o *Vector, op string, fn func(a, b Expr) Expr) (*Vector, error) {
	if v.Dim() != o.Dim() {
		return nil, &DimensionMismatchError{Op: op, Left: v.Dim(), Right: o.Dim()}
	}
	out := make([]Expr, len(v.elems))
	for i := range v.elems {
		out[i] = fn(v.elems[i], o.elems[i])
	}
	return Vec(out...), nil
}

func (v *Vector) Add(o *Vector) (*Vector, error) { return v.zip(o, "add", AddOf) }
func (v *Vector) Sub(o *Vector) (*Vector, error) { return v.zip(o, "sub", SubOf) }

func (v *Vector) Neg() *Vector {
	out := make([]Expr, len(v.elems))
	for i, e := range v.elems {
		out[i] = NegOf(e)
	}
	return Vec(out...)
}

// Scale multiplies every component by k, which must be a *Const.
func (v *Vector) Scale(k Expr) (*Vector, error) {
	if _, ok := k.(*Const); !ok {
		return nil, ErrNonConstantScalar
	}
	out := make([]Expr, len(v.elems))
	for i, e := range v.elems {
		out[i] = MulOf(k, e)
	}
	return Vec(out...), nil
}

// Dot returns the sum of the pairwise products.
func (v *Vector) Dot(o *Vector) (Expr, error) {
	if v.Dim() != o.Dim() {
		return nil, &DimensionMismatchError{Op: "dot", Left: v.Dim(), Right: o.Dim()}
	}
	var sum Expr = C(0)
	for i := range v.elems {
		sum = AddOf(sum, MulOf(v.elems[i], o.elems[i]))
	}
	return sum, nil
}

// Cross returns the cross product; both vectors must have dimension 3.
func (v *Vector) Cross(o *Vector) (*Vector, error) {
	if v.Dim() != 3 || o.Dim() != 3 {
		return nil, &DimensionMismatchError{Op: "cross", Left: v.Dim(), Right: o.Dim()}
	}
	a, b := v.elems, o.elems
	return Vec(
		SubOf(MulOf(a[1], b[2]), MulOf(a[2], b[1])),
		SubOf(MulOf(a[2], b[0]), MulOf(a[0], b[2])),
		SubOf(MulOf(a[0], b[1]), MulOf(a[1], b[0])),
	), nil
}

// Norm returns sqrt(v·v).
func (v *Vector) Norm() Expr {
	d, _ := v.Dot(v)
	return SqrtOf(d)
}

func (v *Vector) Diff(varName string) (*Vector, error) {
	out := make([]Expr, len(v.elems))
	for i, e := range v.elems {
		d, err := e.Diff(varName)
		if err != nil {
			return nil, err
		}
		out[i] = d
	}
	return Vec(out...), nil
}

// Lift returns v with extra zero components appended up to dim.
func (v *Vector) Lift(dim int) *Vector {
	out := v.Elems()
	for len(out) < dim {
		out = append(out, C(0))
	}
	return Vec(out...)
}

// Eval evaluates every component. Failures of all components are combined
// into one error.
func (v *Vector) Eval(bindings map[string]float64) ([]float64, error) {
	out := make([]float64, len(v.elems))
	var errs error
	for i, e := range v.elems {
		x, err := e.Eval(bindings)
		errs = multierr.Append(errs, err)
		out[i] = x
	}
	if errs != nil {
		return nil, errs
	}
	return out, nil
}

// EvalAt evaluates v at point, whose coordinates bind v.FreeVars() in order.
func (v *Vector) EvalAt(point ...float64) ([]float64, error) {
	if len(point) != len(v.vars) {
		return nil, &ArityViolationError{Op: "EvalAt", Want: len(point), Got: len(v.vars), Vars: v.FreeVars()}
	}
	return v.Eval(Bind(v.vars, point))
}

// Package symplot is a small symbolic expression algebra for parametric
// curves, surfaces and implicit functions.
//
// Expressions are immutable trees over named variables. Every compound node
// is built through an operator constructor (AddOf, MulOf, SinOf, ...) which
// routes through the rewrite rules in simplify.go, so any Expr a caller can
// hold is already in normal form. Expressions can be evaluated at a point,
// differentiated symbolically and combined into vectors.
package symplot

import (
	"math"
	"sort"
)

// ============================================================
// Core Interface
// ============================================================

// Expr is an expression node. The set of implementations is closed:
// *Const, *Var, *Unary and *Binary.
type Expr interface {
	String() string
	Eval(bindings map[string]float64) (float64, error)
	Diff(varName string) (Expr, error)
	Equal(other Expr) bool
	// FreeVars returns the sorted names of the variables in the tree.
	FreeVars() []string
	Arity() int

	exprKind() string
	toJSON() map[string]interface{}
}

// Op identifies the operator of a Unary or Binary node.
type Op uint8

const (
	OpAdd Op = iota + 1
	OpSub
	OpMul
	OpDiv
	OpPow

	OpSin
	OpCos
	OpSqrt
	OpLn
	OpNeg
)

var opNames = map[Op]string{
	OpAdd:  "+",
	OpSub:  "-",
	OpMul:  "*",
	OpDiv:  "/",
	OpPow:  "^",
	OpSin:  "sin",
	OpCos:  "cos",
	OpSqrt: "sqrt",
	OpLn:   "ln",
	OpNeg:  "neg",
}

func (o Op) String() string {
	if s, ok := opNames[o]; ok {
		return s
	}
	return "op?"
}

// IsUnary reports whether o labels a Unary node.
func (o Op) IsUnary() bool { return o >= OpSin && o <= OpNeg }

func opByName(name string) (Op, bool) {
	for op, s := range opNames {
		if s == name {
			return op, true
		}
	}
	return 0, false
}

// ============================================================
// Const: floating point constant
// ============================================================

type Const struct{ val float64 }

// C returns the constant v.
func C(v float64) *Const { return &Const{val: v} }

func (c *Const) Value() float64     { return c.val }
func (c *Const) FreeVars() []string { return nil }
func (c *Const) Arity() int         { return 0 }
func (c *Const) exprKind() string   { return "const" }
func (c *Const) IsZero() bool       { return c.val == 0 }
func (c *Const) IsOne() bool        { return c.val == 1 }

func (c *Const) Equal(other Expr) bool {
	o, ok := other.(*Const)
	if !ok {
		return false
	}
	return c.val == o.val || (math.IsNaN(c.val) && math.IsNaN(o.val))
}

// ============================================================
// Var: named variable
// ============================================================

type Var struct {
	name string
	vars []string
}

// V returns the variable called name.
func V(name string) *Var { return &Var{name: name, vars: []string{name}} }

func (v *Var) Name() string       { return v.name }
func (v *Var) FreeVars() []string { return cloneVars(v.vars) }
func (v *Var) Arity() int         { return 1 }
func (v *Var) exprKind() string   { return "var" }

func (v *Var) Equal(other Expr) bool {
	o, ok := other.(*Var)
	return ok && v.name == o.name
}

// ============================================================
// Unary: function application and negation
// ============================================================

// Unary nodes are only created by the rule table; use SinOf, CosOf, SqrtOf,
// LnOf and NegOf.
type Unary struct {
	op   Op
	arg  Expr
	vars []string
}

func newUnary(op Op, arg Expr) *Unary {
	return &Unary{op: op, arg: arg, vars: freeVarsOf(arg)}
}

func (u *Unary) Op() Op             { return u.op }
func (u *Unary) Arg() Expr          { return u.arg }
func (u *Unary) FreeVars() []string { return cloneVars(u.vars) }
func (u *Unary) Arity() int         { return len(u.vars) }
func (u *Unary) exprKind() string   { return "unary" }

func (u *Unary) Equal(other Expr) bool {
	o, ok := other.(*Unary)
	return ok && u.op == o.op && u.arg.Equal(o.arg)
}

// ============================================================
// Binary: arithmetic operator application
// ============================================================

// Binary nodes are only created by the rule table; use AddOf, SubOf, MulOf,
// DivOf and PowOf.
type Binary struct {
	op          Op
	left, right Expr
	vars        []string
}

func newBinary(op Op, left, right Expr) *Binary {
	return &Binary{
		op:    op,
		left:  left,
		right: right,
		vars:  mergeVars(freeVarsOf(left), freeVarsOf(right)),
	}
}

func (b *Binary) Op() Op             { return b.op }
func (b *Binary) Left() Expr         { return b.left }
func (b *Binary) Right() Expr        { return b.right }
func (b *Binary) FreeVars() []string { return cloneVars(b.vars) }
func (b *Binary) Arity() int         { return len(b.vars) }
func (b *Binary) exprKind() string   { return "binary" }

func (b *Binary) Equal(other Expr) bool {
	o, ok := other.(*Binary)
	return ok && b.op == o.op && b.left.Equal(o.left) && b.right.Equal(o.right)
}

// ============================================================
// Operator constructors
// ============================================================

func AddOf(l, r Expr) Expr { return binary(OpAdd, Simplify(l), Simplify(r)) }
func SubOf(l, r Expr) Expr { return binary(OpSub, Simplify(l), Simplify(r)) }
func MulOf(l, r Expr) Expr { return binary(OpMul, Simplify(l), Simplify(r)) }
func PowOf(l, r Expr) Expr { return binary(OpPow, Simplify(l), Simplify(r)) }

// DivOf returns l/r. It panics with *DivisionByZeroError when r simplifies to
// the constant 0; see SafeDivOf and Guard.
func DivOf(l, r Expr) Expr { return binary(OpDiv, Simplify(l), Simplify(r)) }

// SafeDivOf is DivOf returning the division by zero as an error.
func SafeDivOf(l, r Expr) (Expr, error) {
	return Guard(func() Expr { return DivOf(l, r) })
}

func NegOf(arg Expr) Expr  { return unary(OpNeg, Simplify(arg)) }
func SinOf(arg Expr) Expr  { return unary(OpSin, Simplify(arg)) }
func CosOf(arg Expr) Expr  { return unary(OpCos, Simplify(arg)) }
func SqrtOf(arg Expr) Expr { return unary(OpSqrt, Simplify(arg)) }
func LnOf(arg Expr) Expr   { return unary(OpLn, Simplify(arg)) }

// ============================================================
// Free variables
// ============================================================

func freeVarsOf(e Expr) []string {
	switch v := e.(type) {
	case *Var:
		return v.vars
	case *Unary:
		return v.vars
	case *Binary:
		return v.vars
	}
	return nil
}

// mergeVars merges two sorted, duplicate-free name lists.
func mergeVars(a, b []string) []string {
	if len(a) == 0 {
		return b
	}
	if len(b) == 0 {
		return a
	}
	out := make([]string, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] == b[j]:
			out = append(out, a[i])
			i++
			j++
		case a[i] < b[j]:
			out = append(out, a[i])
			i++
		default:
			out = append(out, b[j])
			j++
		}
	}
	out = append(out, a[i:]...)
	return append(out, b[j:]...)
}

func cloneVars(vars []string) []string {
	if vars == nil {
		return nil
	}
	return append([]string(nil), vars...)
}

// FreeVarsOf returns the sorted union of the free variables of exprs.
func FreeVarsOf(exprs ...Expr) []string {
	var out []string
	for _, e := range exprs {
		out = mergeVars(out, freeVarsOf(e))
	}
	return cloneVars(out)
}

// recomputeVars walks the tree instead of trusting the cached sets.
func recomputeVars(e Expr) []string {
	seen := map[string]struct{}{}
	var walk func(Expr)
	walk = func(e Expr) {
		switch v := e.(type) {
		case *Var:
			seen[v.name] = struct{}{}
		case *Unary:
			walk(v.arg)
		case *Binary:
			walk(v.left)
			walk(v.right)
		}
	}
	walk(e)
	names := make([]string, 0, len(seen))
	for n := range seen {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

package symplot

import "math"

// ============================================================
// Rewrite rules
// ============================================================

// Simplify re-resolves e bottom-up through the rule table. Expressions built
// with the operator constructors are already normal, so for them Simplify is
// an identity up to structural equality.
func Simplify(e Expr) Expr {
	switch v := e.(type) {
	case *Unary:
		return unary(v.op, Simplify(v.arg))
	case *Binary:
		return binary(v.op, Simplify(v.left), Simplify(v.right))
	}
	return e
}

// unary applies the rule table to a normal operand.
func unary(op Op, arg Expr) Expr {
	fn, ok := unaryFuncs[op]
	if !ok {
		panic("symplot: unknown unary operator " + op.String())
	}
	if c, ok := arg.(*Const); ok {
		return C(fn(c.val))
	}
	return newUnary(op, arg)
}

// binary applies the rule table to two normal operands. Rules are tried in
// order and the first match wins.
func binary(op Op, l, r Expr) Expr {
	switch op {
	case OpAdd:
		return simplifyAdd(l, r)
	case OpSub:
		return simplifySub(l, r)
	case OpMul:
		return simplifyMul(l, r)
	case OpDiv:
		return simplifyDiv(l, r)
	case OpPow:
		return simplifyPow(l, r)
	}
	panic("symplot: unknown binary operator " + op.String())
}

func simplifyAdd(l, r Expr) Expr {
	switch {
	case isZero(l):
		return r
	case isZero(r):
		return l
	case sameVar(l, r):
		return newBinary(OpMul, C(2), l)
	}
	if a, b, ok := constPair(l, r); ok {
		return C(a + b)
	}
	return newBinary(OpAdd, l, r)
}

func simplifySub(l, r Expr) Expr {
	switch {
	case isZero(l):
		return unary(OpNeg, r)
	case isZero(r):
		return l
	case sameVar(l, r):
		return C(0)
	}
	if a, b, ok := constPair(l, r); ok {
		return C(a - b)
	}
	return newBinary(OpSub, l, r)
}

func simplifyMul(l, r Expr) Expr {
	switch {
	case isZero(l), isZero(r):
		return C(0)
	case isOne(l):
		return r
	case isOne(r):
		return l
	}
	if a, b, ok := constPair(l, r); ok {
		return C(a * b)
	}
	return newBinary(OpMul, l, r)
}

func simplifyDiv(l, r Expr) Expr {
	switch {
	case isZero(r):
		panic(&DivisionByZeroError{Numerator: l})
	case isZero(l):
		return C(0)
	case isOne(r):
		return l
	case sameVar(l, r):
		return C(1)
	}
	if a, b, ok := constPair(l, r); ok {
		return C(a / b)
	}
	return newBinary(OpDiv, l, r)
}

// simplifyPow checks the zero base before the zero exponent, so 0^0 is 0.
func simplifyPow(l, r Expr) Expr {
	switch {
	case isZero(l):
		return C(0)
	case isZero(r):
		return C(1)
	case isOne(r):
		return l
	}
	if a, b, ok := constPair(l, r); ok {
		return C(math.Pow(a, b))
	}
	return newBinary(OpPow, l, r)
}

var unaryFuncs = map[Op]func(float64) float64{
	OpSin:  math.Sin,
	OpCos:  math.Cos,
	OpSqrt: math.Sqrt,
	OpLn:   math.Log,
	OpNeg:  negate,
}

func negate(v float64) float64 {
	if v == 0 {
		return 0 // no -0 constants
	}
	return -v
}

func isZero(e Expr) bool {
	c, ok := e.(*Const)
	return ok && c.IsZero()
}

func isOne(e Expr) bool {
	c, ok := e.(*Const)
	return ok && c.IsOne()
}

func sameVar(l, r Expr) bool {
	lv, ok := l.(*Var)
	return ok && lv.Equal(r)
}

func constPair(l, r Expr) (a, b float64, ok bool) {
	lc, lok := l.(*Const)
	rc, rok := r.(*Const)
	if !lok || !rok {
		return 0, 0, false
	}
	return lc.val, rc.val, true
}

package symplot

import (
	"math"
	"strconv"
)

// ============================================================
// Display strings
// ============================================================

// Binding strength of a node when printed infix.
type precedence int

const (
	precAdd precedence = iota + 1
	precMul
	precNeg
	precPow
	precAtom
)

func precedenceOf(e Expr) precedence {
	switch v := e.(type) {
	case *Const:
		if v.val < 0 || math.IsInf(v.val, -1) {
			return precNeg
		}
	case *Unary:
		if v.op == OpNeg {
			return precNeg
		}
	case *Binary:
		switch v.op {
		case OpAdd, OpSub:
			return precAdd
		case OpMul, OpDiv:
			return precMul
		case OpPow:
			return precPow
		}
	}
	return precAtom
}

// String spells +Inf as "Inf" so that Parse reads every constant back.
func (c *Const) String() string {
	if math.IsInf(c.val, 1) {
		return "Inf"
	}
	return strconv.FormatFloat(c.val, 'g', -1, 64)
}

func (v *Var) String() string { return v.name }

func (u *Unary) String() string {
	if u.op == OpNeg {
		return "-" + wrap(u.arg, precedenceOf(u.arg) <= precNeg)
	}
	return u.op.String() + "(" + u.arg.String() + ")"
}

// String parenthesizes an operand only when precedence or associativity
// requires it: "^" groups to the right, "-" and "/" to the left. A negated
// right operand is always wrapped, giving "x*(-y)" rather than "x*-y".
func (b *Binary) String() string {
	p := precedenceOf(b)
	lp, rp := precedenceOf(b.left), precedenceOf(b.right)
	var left, right string
	if b.op == OpPow {
		left = wrap(b.left, lp <= p)
		right = wrap(b.right, rp < p || rp == precNeg)
	} else {
		left = wrap(b.left, lp < p)
		right = wrap(b.right, rp < p || rp == precNeg || (rp == p && (b.op == OpSub || b.op == OpDiv)))
	}
	switch b.op {
	case OpAdd, OpSub:
		return left + " " + b.op.String() + " " + right
	}
	return left + b.op.String() + right
}

func wrap(e Expr, paren bool) string {
	if paren {
		return "(" + e.String() + ")"
	}
	return e.String()
}

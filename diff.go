package symplot

// ============================================================
// Symbolic differentiation
// ============================================================

func (c *Const) Diff(string) (Expr, error) { return C(0), nil }

func (v *Var) Diff(varName string) (Expr, error) {
	if v.name == varName {
		return C(1), nil
	}
	return C(0), nil
}

func (u *Unary) Diff(varName string) (Expr, error) {
	if u.op == OpLn {
		return nil, &UnsupportedDifferentiationError{Expr: u, Reason: "no derivative rule for ln"}
	}
	du, err := u.arg.Diff(varName)
	if err != nil {
		return nil, err
	}
	switch u.op {
	case OpSin:
		return MulOf(CosOf(u.arg), du), nil
	case OpCos:
		return MulOf(NegOf(SinOf(u.arg)), du), nil
	case OpSqrt:
		// The divisor is sqrt of a non-constant, never the constant 0.
		return DivOf(du, MulOf(C(2), SqrtOf(u.arg))), nil
	case OpNeg:
		return NegOf(du), nil
	}
	panic("symplot: unknown unary operator " + u.op.String())
}

func (b *Binary) Diff(varName string) (Expr, error) {
	if b.op == OpPow {
		return b.diffPow(varName)
	}
	dl, err := b.left.Diff(varName)
	if err != nil {
		return nil, err
	}
	dr, err := b.right.Diff(varName)
	if err != nil {
		return nil, err
	}
	switch b.op {
	case OpAdd:
		return AddOf(dl, dr), nil
	case OpSub:
		return SubOf(dl, dr), nil
	case OpMul:
		return AddOf(MulOf(b.left, dr), MulOf(b.right, dl)), nil
	case OpDiv:
		// A constant divisor is never squared: c^2 can underflow to 0.
		if _, ok := b.right.(*Const); ok {
			return DivOf(dl, b.right), nil
		}
		return SafeDivOf(
			SubOf(MulOf(dl, b.right), MulOf(b.left, dr)),
			PowOf(b.right, C(2)),
		)
	}
	panic("symplot: unknown binary operator " + b.op.String())
}

func (b *Binary) diffPow(varName string) (Expr, error) {
	if n, ok := b.right.(*Const); ok {
		dl, err := b.left.Diff(varName)
		if err != nil {
			return nil, err
		}
		return MulOf(MulOf(n, PowOf(b.left, C(n.val-1))), dl), nil
	}
	if _, ok := b.left.(*Const); ok {
		dr, err := b.right.Diff(varName)
		if err != nil {
			return nil, err
		}
		return MulOf(MulOf(b, LnOf(b.left)), dr), nil
	}
	return nil, &UnsupportedDifferentiationError{Expr: b, Reason: "both base and exponent are non-constant"}
}

// DiffN differentiates e n times with respect to varName.
func DiffN(e Expr, varName string, n int) (Expr, error) {
	var err error
	for i := 0; i < n; i++ {
		if e, err = e.Diff(varName); err != nil {
			return nil, err
		}
	}
	return e, nil
}

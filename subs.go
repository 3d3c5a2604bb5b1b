package symplot

// Subs replaces every occurrence of the variable varName in e with value and
// renormalizes the result. Substitution can expose a zero divisor, which is
// returned as *DivisionByZeroError.
func Subs(e Expr, varName string, value Expr) (Expr, error) {
	return Guard(func() Expr { return subs(e, varName, value) })
}

func subs(e Expr, varName string, value Expr) Expr {
	switch v := e.(type) {
	case *Var:
		if v.name == varName {
			return value
		}
	case *Unary:
		return unary(v.op, subs(v.arg, varName, value))
	case *Binary:
		return binary(v.op, subs(v.left, varName, value), subs(v.right, varName, value))
	}
	return e
}

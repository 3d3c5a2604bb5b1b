package symplot

import (
	"errors"
	"fmt"
	"strings"
)

// ============================================================
// Error taxonomy
// ============================================================

// UnboundVariableError is returned by Eval when a variable has no binding.
type UnboundVariableError struct {
	Name string
}

func (e *UnboundVariableError) Error() string {
	return fmt.Sprintf("symplot: unbound variable %q", e.Name)
}

// DivisionByZeroError is raised when a divisor simplifies to the constant 0.
// DivOf panics with it; Guard and SafeDivOf return it.
type DivisionByZeroError struct {
	Numerator Expr
}

func (e *DivisionByZeroError) Error() string {
	if e.Numerator == nil {
		return "symplot: division by zero"
	}
	return fmt.Sprintf("symplot: division by zero in %s/0", e.Numerator)
}

// DimensionMismatchError reports a vector operation over incompatible
// dimensions.
type DimensionMismatchError struct {
	Op          string
	Left, Right int
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("symplot: %s: dimension mismatch (%d vs %d)", e.Op, e.Left, e.Right)
}

// ArityViolationError reports an expression whose number of free variables
// does not fit the consumer that received it.
type ArityViolationError struct {
	Op   string
	Want int
	Got  int
	Vars []string
}

func (e *ArityViolationError) Error() string {
	return fmt.Sprintf("symplot: %s: want %d free variable(s), got %d [%s]",
		e.Op, e.Want, e.Got, strings.Join(e.Vars, ", "))
}

// UnsupportedDifferentiationError is returned by Diff for expressions that
// have no derivative rule.
type UnsupportedDifferentiationError struct {
	Expr   Expr
	Reason string
}

func (e *UnsupportedDifferentiationError) Error() string {
	return fmt.Sprintf("symplot: cannot differentiate %s: %s", e.Expr, e.Reason)
}

// ErrNonConstantScalar is returned by Vector.Scale when the factor is not a
// constant.
var ErrNonConstantScalar = errors.New("symplot: vector scale factor must be a constant")

// RequireArity returns an *ArityViolationError unless e has exactly n free
// variables.
func RequireArity(e Expr, n int, op string) error {
	if e.Arity() == n {
		return nil
	}
	return &ArityViolationError{Op: op, Want: n, Got: e.Arity(), Vars: e.FreeVars()}
}

// Guard runs build and converts a construction panic raised by the rule
// table (currently only *DivisionByZeroError) into a returned error. Other
// panics propagate.
func Guard(build func() Expr) (e Expr, err error) {
	defer func() {
		if r := recover(); r != nil {
			dz, ok := r.(*DivisionByZeroError)
			if !ok {
				panic(r)
			}
			e, err = nil, dz
		}
	}()
	return build(), nil
}

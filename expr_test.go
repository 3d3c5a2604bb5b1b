package symplot_test

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/njchilds90/symplot"
)

var (
	x    = symplot.V("x")
	y    = symplot.V("y")
	z    = symplot.V("z")
	tvar = symplot.V("t")
)

func assertExpr(t *testing.T, want, got symplot.Expr) {
	t.Helper()
	if !want.Equal(got) {
		t.Errorf("want %s, got %s", want, got)
	}
}

// ============================================================
// Rewrite rule tests
// ============================================================

func TestIdentityLaws(t *testing.T) {
	assertExpr(t, x, symplot.AddOf(x, symplot.C(0)))
	assertExpr(t, x, symplot.AddOf(symplot.C(0), x))
	assertExpr(t, x, symplot.SubOf(x, symplot.C(0)))
	assertExpr(t, x, symplot.MulOf(x, symplot.C(1)))
	assertExpr(t, x, symplot.MulOf(symplot.C(1), x))
	assertExpr(t, x, symplot.DivOf(x, symplot.C(1)))
	assertExpr(t, x, symplot.PowOf(x, symplot.C(1)))
	assertExpr(t, symplot.C(1), symplot.PowOf(x, symplot.C(0)))
}

func TestZeroRules(t *testing.T) {
	assertExpr(t, symplot.C(0), symplot.MulOf(symplot.C(0), x))
	assertExpr(t, symplot.C(0), symplot.MulOf(x, symplot.C(0)))
	assertExpr(t, symplot.C(0), symplot.DivOf(symplot.C(0), x))
	assertExpr(t, symplot.C(0), symplot.PowOf(symplot.C(0), x))
	assertExpr(t, symplot.NegOf(x), symplot.SubOf(symplot.C(0), x))
	// zero absorption wins over a non-finite operand
	assertExpr(t, symplot.C(0), symplot.MulOf(symplot.C(0), symplot.C(math.Inf(1))))
}

func TestZeroToTheZeroIsZero(t *testing.T) {
	assertExpr(t, symplot.C(0), symplot.PowOf(symplot.C(0), symplot.C(0)))
}

func TestSameVariableRules(t *testing.T) {
	assertExpr(t, symplot.MulOf(symplot.C(2), x), symplot.AddOf(x, x))
	assertExpr(t, symplot.C(0), symplot.SubOf(x, x))
	assertExpr(t, symplot.C(1), symplot.DivOf(x, x))

	// only bare variables fuse
	xy := symplot.MulOf(x, y)
	if _, ok := symplot.AddOf(xy, xy).(*symplot.Binary); !ok {
		t.Errorf("x*y + x*y should stay a binary node")
	}
	if got := symplot.AddOf(x, y).String(); got != "x + y" {
		t.Errorf("want x + y, got %s", got)
	}
}

func TestConstantFolding(t *testing.T) {
	tests := []struct {
		name string
		e    symplot.Expr
		want float64
	}{
		{"add", symplot.AddOf(symplot.C(2), symplot.C(3)), 5},
		{"sub", symplot.SubOf(symplot.C(2), symplot.C(3)), -1},
		{"mul", symplot.MulOf(symplot.C(2), symplot.C(3)), 6},
		{"div", symplot.DivOf(symplot.C(3), symplot.C(2)), 1.5},
		{"pow", symplot.PowOf(symplot.C(2), symplot.C(10)), 1024},
		{"sin", symplot.SinOf(symplot.C(0)), 0},
		{"cos", symplot.CosOf(symplot.C(0)), 1},
		{"sqrt", symplot.SqrtOf(symplot.C(16)), 4},
		{"ln", symplot.LnOf(symplot.C(1)), 0},
		{"neg", symplot.NegOf(symplot.C(2)), -2},
		{"nested", symplot.MulOf(symplot.AddOf(symplot.C(1), symplot.C(2)), symplot.PowOf(symplot.C(2), symplot.C(2))), 12},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, ok := tt.e.(*symplot.Const)
			if !ok {
				t.Fatalf("want a constant, got %s", tt.e)
			}
			if c.Value() != tt.want {
				t.Errorf("want %g, got %g", tt.want, c.Value())
			}
		})
	}
}

func TestNoNegativeZero(t *testing.T) {
	c := symplot.NegOf(symplot.C(0)).(*symplot.Const)
	if math.Signbit(c.Value()) {
		t.Errorf("negating 0 should give +0")
	}
}

func TestNaNConstantsAreEqual(t *testing.T) {
	if !symplot.C(math.NaN()).Equal(symplot.C(math.NaN())) {
		t.Errorf("NaN constants should be structurally equal")
	}
	if symplot.C(1).Equal(x) {
		t.Errorf("a constant is never equal to a variable")
	}
}

// ============================================================
// Division by zero
// ============================================================

func TestDivOf_PanicsOnZeroDivisor(t *testing.T) {
	defer func() {
		r := recover()
		dz, ok := r.(*symplot.DivisionByZeroError)
		if !ok {
			t.Fatalf("want *DivisionByZeroError panic, got %v", r)
		}
		assertExpr(t, x, dz.Numerator)
	}()
	symplot.DivOf(x, symplot.SubOf(y, y))
}

func TestSafeDivOf(t *testing.T) {
	_, err := symplot.SafeDivOf(x, symplot.C(0))
	var dz *symplot.DivisionByZeroError
	if !errors.As(err, &dz) {
		t.Fatalf("want *DivisionByZeroError, got %v", err)
	}

	q, err := symplot.SafeDivOf(x, y)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.String() != "x/y" {
		t.Errorf("want x/y, got %s", q)
	}
}

func TestGuard_RepanicsOtherValues(t *testing.T) {
	defer func() {
		if r := recover(); r != "boom" {
			t.Errorf("want boom, got %v", r)
		}
	}()
	symplot.Guard(func() symplot.Expr { panic("boom") })
	t.Errorf("Guard should not swallow foreign panics")
}

// ============================================================
// Normal form invariants
// ============================================================

func sampleExprs() []symplot.Expr {
	return []symplot.Expr{
		symplot.C(3),
		x,
		symplot.AddOf(x, x),
		symplot.SqrtOf(symplot.AddOf(symplot.PowOf(x, symplot.C(2)), symplot.PowOf(y, symplot.C(2)))),
		symplot.DivOf(symplot.SinOf(x), symplot.AddOf(symplot.C(1), symplot.MulOf(y, z))),
		symplot.NegOf(symplot.SubOf(symplot.LnOf(x), symplot.CosOf(tvar))),
		symplot.PowOf(symplot.C(2), symplot.MulOf(x, symplot.C(3))),
	}
}

func TestSimplify_Idempotent(t *testing.T) {
	for _, e := range sampleExprs() {
		once := symplot.Simplify(e)
		twice := symplot.Simplify(once)
		if !once.Equal(twice) {
			t.Errorf("simplify not idempotent: %s -> %s", once, twice)
		}
		if !e.Equal(once) {
			t.Errorf("constructor output should be normal: %s -> %s", e, once)
		}
	}
}

func TestFreeVars_MatchTree(t *testing.T) {
	for _, e := range sampleExprs() {
		if diff := cmp.Diff(symplot.RecomputeVars(e), e.FreeVars(), cmpopts.EquateEmpty()); diff != "" {
			t.Errorf("%s: free vars mismatch (-walk +cached):\n%s", e, diff)
		}
		if e.Arity() != len(e.FreeVars()) {
			t.Errorf("%s: arity %d, free vars %v", e, e.Arity(), e.FreeVars())
		}
	}
}

func TestFreeVars_SortedAndCopied(t *testing.T) {
	e := symplot.AddOf(z, symplot.MulOf(symplot.V("a"), symplot.SubOf(symplot.V("m"), z)))
	want := []string{"a", "m", "z"}
	if diff := cmp.Diff(want, e.FreeVars()); diff != "" {
		t.Errorf("FreeVars mismatch (-want +got):\n%s", diff)
	}
	e.FreeVars()[0] = "changed"
	if diff := cmp.Diff(want, e.FreeVars()); diff != "" {
		t.Errorf("FreeVars should return a copy (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(want, symplot.FreeVarsOf(symplot.V("m"), z, symplot.V("a"))); diff != "" {
		t.Errorf("FreeVarsOf mismatch (-want +got):\n%s", diff)
	}
}

func TestFreeVars_DropWithSimplification(t *testing.T) {
	e := symplot.AddOf(x, symplot.MulOf(y, symplot.C(0)))
	if diff := cmp.Diff([]string{"x"}, e.FreeVars()); diff != "" {
		t.Errorf("FreeVars mismatch (-want +got):\n%s", diff)
	}
	if symplot.SubOf(y, y).Arity() != 0 {
		t.Errorf("y - y should have arity 0")
	}
}

func TestRequireArity(t *testing.T) {
	e := symplot.MulOf(x, y)
	if err := symplot.RequireArity(e, 2, "implicit2d"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	err := symplot.RequireArity(e, 3, "implicit3d")
	var av *symplot.ArityViolationError
	if !errors.As(err, &av) {
		t.Fatalf("want *ArityViolationError, got %v", err)
	}
	if av.Want != 3 || av.Got != 2 || av.Op != "implicit3d" {
		t.Errorf("unexpected error fields: %+v", av)
	}
}

// ============================================================
// Substitution
// ============================================================

func TestSubs(t *testing.T) {
	e := symplot.AddOf(symplot.MulOf(symplot.C(2), x), y)
	got, err := symplot.Subs(e, "x", symplot.C(5))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.String() != "10 + y" {
		t.Errorf("want 10 + y, got %s", got)
	}

	got, err = symplot.Subs(e, "y", symplot.C(3))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v, _ := symplot.EvalAt(got, 1)
	if v != 5 {
		t.Errorf("want 5, got %g", v)
	}

	same, _ := symplot.Subs(e, "w", symplot.C(1))
	assertExpr(t, e, same)
}

func TestSubs_ExposesDivisionByZero(t *testing.T) {
	_, err := symplot.Subs(symplot.DivOf(x, y), "y", symplot.SubOf(x, x))
	var dz *symplot.DivisionByZeroError
	if !errors.As(err, &dz) {
		t.Errorf("want *DivisionByZeroError, got %v", err)
	}
}

package symplot_test

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/njchilds90/symplot"
)

func TestParse(t *testing.T) {
	tests := []struct {
		src  string
		want symplot.Expr
	}{
		{"42", symplot.C(42)},
		{"1.5e3", symplot.C(1500)},
		{"pi", symplot.C(math.Pi)},
		{"Inf", symplot.C(math.Inf(1))},
		{"-Inf", symplot.C(math.Inf(-1))},
		{"NaN", symplot.C(math.NaN())},
		{"inf", symplot.V("inf")},
		{"x", x},
		{"x + 0", x},
		{"2^-1", symplot.C(0.5)},
		{"2*x + 3", symplot.AddOf(symplot.MulOf(symplot.C(2), x), symplot.C(3))},
		{"a - b - c", symplot.SubOf(symplot.SubOf(symplot.V("a"), symplot.V("b")), symplot.V("c"))},
		{"x^2^3", symplot.PowOf(x, symplot.C(8))},
		{"-x^2", symplot.NegOf(symplot.PowOf(x, symplot.C(2)))},
		{"sqrt(x^2 + y^2)", radius()},
		{"sin(x)*cos(y)/ln(z)", symplot.DivOf(symplot.MulOf(symplot.SinOf(x), symplot.CosOf(y)), symplot.LnOf(z))},
		{"  x\t*\n y ", symplot.MulOf(x, y)},
		{"velocity_1 * 2", symplot.MulOf(symplot.V("velocity_1"), symplot.C(2))},
	}
	for _, tt := range tests {
		got, err := symplot.Parse(tt.src)
		if err != nil {
			t.Errorf("Parse(%q): %v", tt.src, err)
			continue
		}
		if !got.Equal(tt.want) {
			t.Errorf("Parse(%q): want %s, got %s", tt.src, tt.want, got)
		}
	}
}

func TestParse_SyntaxErrors(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"", "unexpected end of input"},
		{"x +", "unexpected end of input"},
		{"(x", "expected \")\""},
		{"sin x", "expected \"(\""},
		{"x y", "unexpected \"y\""},
		{"x $ 1", "unexpected \"$\""},
		{"*x", "unexpected \"*\""},
	}
	for _, tt := range tests {
		_, err := symplot.Parse(tt.src)
		if err == nil {
			t.Errorf("Parse(%q): want error", tt.src)
			continue
		}
		if !strings.Contains(err.Error(), tt.want) || !strings.Contains(err.Error(), "parse: column") {
			t.Errorf("Parse(%q): want %q in error, got %v", tt.src, tt.want, err)
		}
	}
}

func TestParse_DivisionByZero(t *testing.T) {
	_, err := symplot.Parse("x/(y - y)")
	var dz *symplot.DivisionByZeroError
	if !errors.As(err, &dz) {
		t.Errorf("want *DivisionByZeroError, got %v", err)
	}

	// the syntax error is reported, not the zero placeholder it leaves
	_, err = symplot.Parse("x/)")
	if errors.As(err, &dz) || err == nil {
		t.Errorf("want a syntax error, got %v", err)
	}
}

func TestParseVector(t *testing.T) {
	v, err := symplot.ParseVector("(cos(t), sin(t), t/2)")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := symplot.Vec(symplot.CosOf(tvar), symplot.SinOf(tvar), symplot.DivOf(tvar, symplot.C(2)))
	if !v.Equal(want) {
		t.Errorf("want %s, got %s", want, v)
	}

	for _, src := range []string{"cos(t), sin(t)", "(t, t", "()", "(t,)", "(t) t"} {
		if _, err := symplot.ParseVector(src); err == nil {
			t.Errorf("ParseVector(%q): want error", src)
		}
	}
}

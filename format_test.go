package symplot_test

import (
	"math"
	"testing"

	"github.com/njchilds90/symplot"
)

func displayCases() []struct {
	e    symplot.Expr
	want string
} {
	return []struct {
		e    symplot.Expr
		want string
	}{
		{symplot.C(0.5), "0.5"},
		{symplot.C(1e21), "1e+21"},
		{symplot.AddOf(x, y), "x + y"},
		{symplot.SubOf(x, symplot.AddOf(y, z)), "x - (y + z)"},
		{symplot.SubOf(symplot.AddOf(x, y), z), "x + y - z"},
		{symplot.SubOf(x, symplot.SubOf(y, z)), "x - (y - z)"},
		{symplot.MulOf(symplot.AddOf(x, y), z), "(x + y)*z"},
		{symplot.DivOf(x, symplot.MulOf(y, z)), "x/(y*z)"},
		{symplot.DivOf(symplot.MulOf(x, y), z), "x*y/z"},
		{symplot.PowOf(x, symplot.PowOf(y, z)), "x^y^z"},
		{symplot.PowOf(symplot.PowOf(x, y), z), "(x^y)^z"},
		{symplot.PowOf(x, symplot.C(-1)), "x^(-1)"},
		{symplot.NegOf(x), "-x"},
		{symplot.NegOf(symplot.NegOf(x)), "-(-x)"},
		{symplot.NegOf(symplot.AddOf(x, y)), "-(x + y)"},
		{symplot.MulOf(x, symplot.NegOf(y)), "x*(-y)"},
		{symplot.PowOf(symplot.NegOf(x), symplot.C(2)), "(-x)^2"},
		{symplot.NegOf(symplot.PowOf(x, symplot.C(2))), "-x^2"},
		{symplot.MulOf(symplot.C(-2), x), "-2*x"},
		{symplot.AddOf(x, symplot.C(-3)), "x + (-3)"},
		{symplot.SinOf(symplot.AddOf(x, y)), "sin(x + y)"},
		{symplot.SqrtOf(symplot.DivOf(symplot.C(1), x)), "sqrt(1/x)"},
		{symplot.LnOf(symplot.CosOf(x)), "ln(cos(x))"},
		{symplot.C(math.Inf(1)), "Inf"},
		{symplot.AddOf(x, symplot.C(math.Inf(-1))), "x + (-Inf)"},
		{symplot.MulOf(symplot.C(math.NaN()), x), "NaN*x"},
	}
}

func TestString(t *testing.T) {
	for _, tt := range displayCases() {
		if got := tt.e.String(); got != tt.want {
			t.Errorf("want %s, got %s", tt.want, got)
		}
	}
}

// Display strings read back to the same tree.
func TestString_ParseRoundTrip(t *testing.T) {
	for _, tt := range displayCases() {
		back, err := symplot.Parse(tt.e.String())
		if err != nil {
			t.Errorf("Parse(%q): %v", tt.e, err)
			continue
		}
		if !back.Equal(tt.e) {
			t.Errorf("round trip of %s gave %s", tt.e, back)
		}
	}
}

func TestString_NonFinite(t *testing.T) {
	if got := symplot.C(math.Inf(1)).String(); got != "Inf" {
		t.Errorf("want Inf, got %s", got)
	}
	if got := symplot.C(math.Inf(-1)).String(); got != "-Inf" {
		t.Errorf("want -Inf, got %s", got)
	}
	if got := symplot.C(math.NaN()).String(); got != "NaN" {
		t.Errorf("want NaN, got %s", got)
	}
}

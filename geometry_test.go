package symplot_test

import (
	"errors"
	"math"
	"testing"

	"github.com/njchilds90/symplot"
)

func mustParseVector(t *testing.T, src string) *symplot.Vector {
	t.Helper()
	v, err := symplot.ParseVector(src)
	if err != nil {
		t.Fatalf("ParseVector(%q): %v", src, err)
	}
	return v
}

func evalNear(t *testing.T, e symplot.Expr, want float64, point ...float64) {
	t.Helper()
	got, err := symplot.EvalAt(e, point...)
	if err != nil {
		t.Fatalf("eval %s: %v", e, err)
	}
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("%s at %v: want %g, got %g", e, point, want, got)
	}
}

func TestCurve_Helix(t *testing.T) {
	helix, err := symplot.NewCurve(mustParseVector(t, "(cos(t), sin(t), t)"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if helix.Param != "t" {
		t.Errorf("want param t, got %s", helix.Param)
	}
	k, err := helix.Curvature()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tau, err := helix.Torsion()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	speed, err := helix.Speed()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, at := range []float64{0, 0.4, 2.2} {
		evalNear(t, k, 0.5, at)
		evalNear(t, tau, 0.5, at)
		evalNear(t, speed, math.Sqrt2, at)
	}
}

func TestCurve_CircleCurvature(t *testing.T) {
	circle, err := symplot.NewCurve(mustParseVector(t, "(3*cos(t), 3*sin(t))"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	k, err := circle.Curvature()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, at := range []float64{0, 1, 4} {
		evalNear(t, k, 1.0/3, at)
	}

	_, err = circle.Torsion()
	var dm *symplot.DimensionMismatchError
	if !errors.As(err, &dm) {
		t.Errorf("torsion of a plane curve: want *DimensionMismatchError, got %v", err)
	}
}

func TestCurve_StraightLineHasZeroCurvature(t *testing.T) {
	line, err := symplot.NewCurve(mustParseVector(t, "(2*t, 3*t, 1 - t)"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	k, err := line.Curvature()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertExpr(t, symplot.C(0), k)

	// the cross product vanishes symbolically
	_, err = line.Torsion()
	var dz *symplot.DivisionByZeroError
	if !errors.As(err, &dz) {
		t.Errorf("want *DivisionByZeroError, got %v", err)
	}
}

func TestNewCurve_Rejects(t *testing.T) {
	var dm *symplot.DimensionMismatchError
	if _, err := symplot.NewCurve(mustParseVector(t, "(t, t, t, t)")); !errors.As(err, &dm) {
		t.Errorf("want *DimensionMismatchError, got %v", err)
	}
	var av *symplot.ArityViolationError
	if _, err := symplot.NewCurve(mustParseVector(t, "(s, t)")); !errors.As(err, &av) {
		t.Errorf("want *ArityViolationError, got %v", err)
	}
}

func sphere(t *testing.T) *symplot.Surface {
	t.Helper()
	s, err := symplot.NewSurface(mustParseVector(t, "(sin(u)*cos(v), sin(u)*sin(v), cos(u))"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return s
}

func TestSurface_SphereUnitNormal(t *testing.T) {
	s := sphere(t)
	if s.U != "u" || s.V != "v" {
		t.Errorf("want params u, v; got %s, %s", s.U, s.V)
	}
	n, err := s.UnitNormal()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, p := range [][2]float64{{1, 2}, {0.3, -1}, {2.5, 4}} {
		got, err := n.EvalAt(p[0], p[1])
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want, _ := s.R.EvalAt(p[0], p[1])
		for i := range want {
			if math.Abs(got[i]-want[i]) > 1e-12 {
				t.Errorf("at %v component %d: want %g, got %g", p, i, want[i], got[i])
			}
		}
	}
}

func TestSurface_TangentPlane(t *testing.T) {
	s := sphere(t)
	u0, v0 := math.Pi/4, math.Pi/3
	plane, err := s.TangentPlane(u0, v0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	p0, _ := s.R.EvalAt(u0, v0)
	evalNear(t, plane, 0, p0...)
	// n0 = sin(u0) * p0 and |p0| = 1
	evalNear(t, plane, -math.Sin(u0), 0, 0, 0)
}

func TestNewSurface_Rejects(t *testing.T) {
	var dm *symplot.DimensionMismatchError
	if _, err := symplot.NewSurface(mustParseVector(t, "(u, v)")); !errors.As(err, &dm) {
		t.Errorf("want *DimensionMismatchError, got %v", err)
	}
	var av *symplot.ArityViolationError
	if _, err := symplot.NewSurface(mustParseVector(t, "(u, u, u)")); !errors.As(err, &av) {
		t.Errorf("want *ArityViolationError, got %v", err)
	}
}

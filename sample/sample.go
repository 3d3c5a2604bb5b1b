// Package sample evaluates symplot expressions over regular grids.
//
// It is the numeric boundary between the expression algebra and whatever
// renders the result: curves become n×dim matrices, parametric surfaces
// three coordinate matrices, implicit functions a scalar field whose zero
// level set is the curve or surface. Arity is checked here, before any
// evaluation, and reported as *symplot.ArityViolationError.
package sample

import (
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/njchilds90/symplot"
)

// Range is a closed interval sampled at N evenly spaced points.
type Range struct {
	Lo, Hi float64
	N      int
}

func (r Range) validate(name string) error {
	if r.N < 2 {
		return errors.Errorf("%s: need at least 2 points, got %d", name, r.N)
	}
	if !(r.Lo < r.Hi) {
		return errors.Errorf("%s: empty interval [%g, %g]", name, r.Lo, r.Hi)
	}
	return nil
}

// Values returns the sample points of r.
func (r Range) Values() []float64 { return Linspace(r.Lo, r.Hi, r.N) }

// Linspace returns n evenly spaced values from lo to hi inclusive.
func Linspace(lo, hi float64, n int) []float64 {
	if n < 2 {
		return []float64{lo}
	}
	return floats.Span(make([]float64, n), lo, hi)
}

// Sampler evaluates grids. The zero value is sequential and unbounded.
type Sampler struct {
	// MaxPoints bounds the number of evaluations per call; 0 means no limit.
	MaxPoints int
	// Workers is the number of goroutines evaluating grid rows; values
	// below 2 evaluate sequentially.
	Workers int
}

var defaultSampler Sampler

func Curve(v *symplot.Vector, t Range) (*mat.Dense, error) { return defaultSampler.Curve(v, t) }

func Surface(v *symplot.Vector, u, w Range) (*SurfaceGrid, error) {
	return defaultSampler.Surface(v, u, w)
}

func Implicit2D(e symplot.Expr, x, y Range) (*mat.Dense, error) {
	return defaultSampler.Implicit2D(e, x, y)
}

func Implicit3D(e symplot.Expr, x, y, z Range) (*Volume, error) {
	return defaultSampler.Implicit3D(e, x, y, z)
}

func (s Sampler) budget(points int) error {
	if s.MaxPoints > 0 && points > s.MaxPoints {
		return errors.Errorf("grid of %d points exceeds the limit of %d", points, s.MaxPoints)
	}
	return nil
}

// rows calls fn for every row index in [0, n), spreading rows over
// s.Workers goroutines. All row errors are returned combined.
func (s Sampler) rows(n int, fn func(i int) error) error {
	if s.Workers < 2 {
		for i := 0; i < n; i++ {
			if err := fn(i); err != nil {
				return err
			}
		}
		return nil
	}
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs error
	)
	next := make(chan int)
	for w := 0; w < s.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range next {
				if err := fn(i); err != nil {
					mu.Lock()
					errs = multierr.Append(errs, err)
					mu.Unlock()
				}
			}
		}()
	}
	for i := 0; i < n; i++ {
		next <- i
	}
	close(next)
	wg.Wait()
	return errs
}

// Curve samples a curve with exactly one parameter. Row i of the result is
// the point at the i-th parameter value.
func (s Sampler) Curve(v *symplot.Vector, t Range) (*mat.Dense, error) {
	if v.Arity() != 1 {
		return nil, &symplot.ArityViolationError{Op: "sample curve", Want: 1, Got: v.Arity(), Vars: v.FreeVars()}
	}
	if err := t.validate("t"); err != nil {
		return nil, err
	}
	if err := s.budget(t.N); err != nil {
		return nil, err
	}
	param := v.FreeVars()[0]
	ts := t.Values()
	out := mat.NewDense(t.N, v.Dim(), nil)
	err := s.rows(t.N, func(i int) error {
		p, err := v.Eval(map[string]float64{param: ts[i]})
		if err != nil {
			return errors.Wrapf(err, "sample curve at %s=%g", param, ts[i])
		}
		out.SetRow(i, p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// SurfaceGrid holds the coordinates of a sampled parametric surface.
// Element (i, j) of X, Y and Z is the point at (U[i], V[j]).
type SurfaceGrid struct {
	X, Y, Z *mat.Dense
	U, V    []float64
}

// Surface samples a 3-dimensional vector with exactly two parameters, the
// lexicographically first one over u and the second over w.
func (s Sampler) Surface(v *symplot.Vector, u, w Range) (*SurfaceGrid, error) {
	if v.Dim() != 3 {
		return nil, &symplot.DimensionMismatchError{Op: "sample surface", Left: v.Dim(), Right: 3}
	}
	if v.Arity() != 2 {
		return nil, &symplot.ArityViolationError{Op: "sample surface", Want: 2, Got: v.Arity(), Vars: v.FreeVars()}
	}
	if err := multierr.Combine(u.validate("u"), w.validate("v")); err != nil {
		return nil, err
	}
	if err := s.budget(u.N * w.N); err != nil {
		return nil, err
	}
	names := v.FreeVars()
	g := &SurfaceGrid{
		X: mat.NewDense(u.N, w.N, nil),
		Y: mat.NewDense(u.N, w.N, nil),
		Z: mat.NewDense(u.N, w.N, nil),
		U: u.Values(),
		V: w.Values(),
	}
	err := s.rows(u.N, func(i int) error {
		at := map[string]float64{names[0]: g.U[i]}
		for j, vj := range g.V {
			at[names[1]] = vj
			p, err := v.Eval(at)
			if err != nil {
				return errors.Wrapf(err, "sample surface at (%g, %g)", g.U[i], vj)
			}
			g.X.Set(i, j, p[0])
			g.Y.Set(i, j, p[1])
			g.Z.Set(i, j, p[2])
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return g, nil
}

// Implicit2D samples a function of exactly two variables. Element (i, j) of
// the result is the value at (x[j], y[i]); the first free variable runs
// along x.
func (s Sampler) Implicit2D(e symplot.Expr, x, y Range) (*mat.Dense, error) {
	if err := symplot.RequireArity(e, 2, "sample implicit2d"); err != nil {
		return nil, err
	}
	if err := multierr.Combine(x.validate("x"), y.validate("y")); err != nil {
		return nil, err
	}
	if err := s.budget(x.N * y.N); err != nil {
		return nil, err
	}
	names := e.FreeVars()
	xs, ys := x.Values(), y.Values()
	out := mat.NewDense(y.N, x.N, nil)
	err := s.rows(y.N, func(i int) error {
		at := map[string]float64{names[1]: ys[i]}
		for j, xj := range xs {
			at[names[0]] = xj
			f, err := e.Eval(at)
			if err != nil {
				return errors.Wrapf(err, "sample implicit2d at (%g, %g)", xj, ys[i])
			}
			out.Set(i, j, f)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Volume is a scalar field sampled on an Nx×Ny×Nz grid.
type Volume struct {
	Nx, Ny, Nz int
	Data       []float64
}

func (v *Volume) index(i, j, k int) int { return (i*v.Ny+j)*v.Nz + k }

// At returns the value at grid index (i, j, k).
func (v *Volume) At(i, j, k int) float64 { return v.Data[v.index(i, j, k)] }

// Implicit3D samples a function of exactly three variables; the free
// variables in order run along x, y and z.
func (s Sampler) Implicit3D(e symplot.Expr, x, y, z Range) (*Volume, error) {
	if err := symplot.RequireArity(e, 3, "sample implicit3d"); err != nil {
		return nil, err
	}
	if err := multierr.Combine(x.validate("x"), y.validate("y"), z.validate("z")); err != nil {
		return nil, err
	}
	if err := s.budget(x.N * y.N * z.N); err != nil {
		return nil, err
	}
	names := e.FreeVars()
	xs, ys, zs := x.Values(), y.Values(), z.Values()
	vol := &Volume{Nx: x.N, Ny: y.N, Nz: z.N, Data: make([]float64, x.N*y.N*z.N)}
	err := s.rows(x.N, func(i int) error {
		at := map[string]float64{names[0]: xs[i]}
		for j, yj := range ys {
			at[names[1]] = yj
			for k, zk := range zs {
				at[names[2]] = zk
				f, err := e.Eval(at)
				if err != nil {
					return errors.Wrapf(err, "sample implicit3d at (%g, %g, %g)", xs[i], yj, zk)
				}
				vol.Data[vol.index(i, j, k)] = f
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return vol, nil
}

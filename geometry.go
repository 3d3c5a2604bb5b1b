package symplot

// ============================================================
// Differential geometry of curves and surfaces
// ============================================================

// Curve is a parametric curve t -> R(t) in the plane or in space.
type Curve struct {
	R     *Vector
	Param string
}

// NewCurve checks that r is 2 or 3 dimensional and depends on exactly one
// parameter.
func NewCurve(r *Vector) (*Curve, error) {
	if r.Dim() != 2 && r.Dim() != 3 {
		return nil, &DimensionMismatchError{Op: "curve", Left: r.Dim(), Right: 3}
	}
	if r.Arity() != 1 {
		return nil, &ArityViolationError{Op: "curve", Want: 1, Got: r.Arity(), Vars: r.FreeVars()}
	}
	return &Curve{R: r, Param: r.vars[0]}, nil
}

func (c *Curve) Velocity() (*Vector, error) { return c.derivative(1) }

func (c *Curve) Acceleration() (*Vector, error) { return c.derivative(2) }

func (c *Curve) Jerk() (*Vector, error) { return c.derivative(3) }

func (c *Curve) derivative(n int) (*Vector, error) {
	v := c.R
	var err error
	for i := 0; i < n; i++ {
		if v, err = v.Diff(c.Param); err != nil {
			return nil, err
		}
	}
	return v, nil
}

// Speed returns |R'(t)|.
func (c *Curve) Speed() (Expr, error) {
	v, err := c.Velocity()
	if err != nil {
		return nil, err
	}
	return v.Norm(), nil
}

// Curvature returns |R' x R''| / |R'|^3. Plane curves are lifted into z = 0.
func (c *Curve) Curvature() (Expr, error) {
	d1, err := c.Velocity()
	if err != nil {
		return nil, err
	}
	d2, err := c.Acceleration()
	if err != nil {
		return nil, err
	}
	cr, err := d1.Lift(3).Cross(d2.Lift(3))
	if err != nil {
		return nil, err
	}
	return SafeDivOf(cr.Norm(), PowOf(d1.Norm(), C(3)))
}

// Torsion returns (R' x R'')·R''' / |R' x R''|^2 for space curves.
func (c *Curve) Torsion() (Expr, error) {
	if c.R.Dim() != 3 {
		return nil, &DimensionMismatchError{Op: "torsion", Left: c.R.Dim(), Right: 3}
	}
	d1, err := c.Velocity()
	if err != nil {
		return nil, err
	}
	d2, err := c.Acceleration()
	if err != nil {
		return nil, err
	}
	d3, err := c.Jerk()
	if err != nil {
		return nil, err
	}
	cr, err := d1.Cross(d2)
	if err != nil {
		return nil, err
	}
	num, err := cr.Dot(d3)
	if err != nil {
		return nil, err
	}
	den, err := cr.Dot(cr)
	if err != nil {
		return nil, err
	}
	return SafeDivOf(num, den)
}

// Surface is a parametric surface (u, v) -> R(u, v) in space. U and V are
// the parameter names in lexicographic order.
type Surface struct {
	R    *Vector
	U, V string
}

// NewSurface checks that r is 3 dimensional with exactly two parameters.
func NewSurface(r *Vector) (*Surface, error) {
	if r.Dim() != 3 {
		return nil, &DimensionMismatchError{Op: "surface", Left: r.Dim(), Right: 3}
	}
	if r.Arity() != 2 {
		return nil, &ArityViolationError{Op: "surface", Want: 2, Got: r.Arity(), Vars: r.FreeVars()}
	}
	return &Surface{R: r, U: r.vars[0], V: r.vars[1]}, nil
}

func (s *Surface) PartialU() (*Vector, error) { return s.R.Diff(s.U) }
func (s *Surface) PartialV() (*Vector, error) { return s.R.Diff(s.V) }

// Normal returns R_u x R_v.
func (s *Surface) Normal() (*Vector, error) {
	ru, err := s.PartialU()
	if err != nil {
		return nil, err
	}
	rv, err := s.PartialV()
	if err != nil {
		return nil, err
	}
	return ru.Cross(rv)
}

// UnitNormal returns Normal divided by its norm.
func (s *Surface) UnitNormal() (*Vector, error) {
	n, err := s.Normal()
	if err != nil {
		return nil, err
	}
	norm := n.Norm()
	out := make([]Expr, n.Dim())
	for i, e := range n.elems {
		if out[i], err = SafeDivOf(e, norm); err != nil {
			return nil, err
		}
	}
	return Vec(out...), nil
}

// TangentPlane returns the plane through R(u0, v0) orthogonal to the normal
// there, as the implicit function n·((x, y, z) - R(u0, v0)) in x, y, z.
func (s *Surface) TangentPlane(u0, v0 float64) (Expr, error) {
	n, err := s.Normal()
	if err != nil {
		return nil, err
	}
	at := map[string]float64{s.U: u0, s.V: v0}
	n0, err := n.Eval(at)
	if err != nil {
		return nil, err
	}
	p0, err := s.R.Eval(at)
	if err != nil {
		return nil, err
	}
	coords := []Expr{V("x"), V("y"), V("z")}
	var plane Expr = C(0)
	for i := range coords {
		plane = AddOf(plane, MulOf(C(n0[i]), SubOf(coords[i], C(p0[i]))))
	}
	return plane, nil
}

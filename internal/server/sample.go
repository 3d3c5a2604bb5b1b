package server

import (
	"math"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"github.com/njchilds90/symplot"
	"github.com/njchilds90/symplot/sample"
)

// SampleRequest asks for an expression to be evaluated over a grid. Curves
// and surfaces take a vector in Vector ("(cos(t), sin(t))"), implicit
// fields a scalar in Expr. Ranges lists one range per free variable, in
// lexicographic variable order; a zero N takes the configured resolution.
type SampleRequest struct {
	Kind   string      `json:"kind"`
	Expr   string      `json:"expr,omitempty"`
	Vector string      `json:"vector,omitempty"`
	Ranges []RangeSpec `json:"ranges"`
}

// RangeSpec is the wire form of sample.Range.
type RangeSpec struct {
	Lo float64 `json:"lo"`
	Hi float64 `json:"hi"`
	N  int     `json:"n,omitempty"`
}

// SampleResponse carries the sampled values. Non-finite values are encoded
// as null.
type SampleResponse struct {
	Kind        string          `json:"kind"`
	Vars        []string        `json:"vars"`
	Shape       []int           `json:"shape"`
	Points      [][]interface{} `json:"points,omitempty"`
	X           [][]interface{} `json:"x,omitempty"`
	Y           [][]interface{} `json:"y,omitempty"`
	Z           [][]interface{} `json:"z,omitempty"`
	Values      []interface{}   `json:"values,omitempty"`
	SignChanges int             `json:"sign_changes,omitempty"`
	Summary     *sample.Summary `json:"summary,omitempty"`
}

func (s *Server) handleSample(c *gin.Context) {
	var req SampleRequest
	if err := decodeStrict(c, &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	resp, points, err := s.sample(req)
	if err != nil {
		status := http.StatusBadRequest
		var av *symplot.ArityViolationError
		if errors.As(err, &av) {
			status = http.StatusUnprocessableEntity
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	s.metrics.GridPoints.Add(float64(points))
	c.JSON(http.StatusOK, resp)
}

func (s *Server) ranges(specs []RangeSpec, want, defaultN int) ([]sample.Range, error) {
	if len(specs) != want {
		return nil, errors.Errorf("want %d ranges, got %d", want, len(specs))
	}
	out := make([]sample.Range, want)
	for i, r := range specs {
		n := r.N
		if n == 0 {
			n = defaultN
		}
		out[i] = sample.Range{Lo: r.Lo, Hi: r.Hi, N: n}
	}
	return out, nil
}

// sample runs req and reports the number of evaluated points.
func (s *Server) sample(req SampleRequest) (*SampleResponse, int, error) {
	cfg := s.config.Sampling
	switch req.Kind {
	case "curve":
		v, err := symplot.ParseVector(req.Vector)
		if err != nil {
			return nil, 0, err
		}
		rs, err := s.ranges(req.Ranges, 1, cfg.CurvePoints)
		if err != nil {
			return nil, 0, err
		}
		m, err := s.sampler.Curve(v, rs[0])
		if err != nil {
			return nil, 0, err
		}
		r, dim := m.Dims()
		return &SampleResponse{
			Kind:   req.Kind,
			Vars:   v.FreeVars(),
			Shape:  []int{r, dim},
			Points: jsonRows(m),
		}, r, nil

	case "surface":
		v, err := symplot.ParseVector(req.Vector)
		if err != nil {
			return nil, 0, err
		}
		rs, err := s.ranges(req.Ranges, 2, cfg.SurfacePoints)
		if err != nil {
			return nil, 0, err
		}
		g, err := s.sampler.Surface(v, rs[0], rs[1])
		if err != nil {
			return nil, 0, err
		}
		r, cols := g.X.Dims()
		return &SampleResponse{
			Kind:  req.Kind,
			Vars:  v.FreeVars(),
			Shape: []int{r, cols},
			X:     jsonRows(g.X),
			Y:     jsonRows(g.Y),
			Z:     jsonRows(g.Z),
		}, r * cols, nil

	case "implicit2d":
		e, err := symplot.Parse(req.Expr)
		if err != nil {
			return nil, 0, err
		}
		rs, err := s.ranges(req.Ranges, 2, cfg.Implicit2DPoints)
		if err != nil {
			return nil, 0, err
		}
		m, err := s.sampler.Implicit2D(e, rs[0], rs[1])
		if err != nil {
			return nil, 0, err
		}
		r, cols := m.Dims()
		summary := sample.SummarizeDense(m)
		return &SampleResponse{
			Kind:        req.Kind,
			Vars:        e.FreeVars(),
			Shape:       []int{r, cols},
			Points:      jsonRows(m),
			SignChanges: sample.SignChanges(m),
			Summary:     &summary,
		}, r * cols, nil

	case "implicit3d":
		e, err := symplot.Parse(req.Expr)
		if err != nil {
			return nil, 0, err
		}
		rs, err := s.ranges(req.Ranges, 3, cfg.Implicit3DPoints)
		if err != nil {
			return nil, 0, err
		}
		vol, err := s.sampler.Implicit3D(e, rs[0], rs[1], rs[2])
		if err != nil {
			return nil, 0, err
		}
		summary := vol.Summary()
		return &SampleResponse{
			Kind:        req.Kind,
			Vars:        e.FreeVars(),
			Shape:       []int{vol.Nx, vol.Ny, vol.Nz},
			Values:      jsonValues(vol.Data),
			SignChanges: vol.SignChanges(),
			Summary:     &summary,
		}, len(vol.Data), nil
	}
	return nil, 0, errors.Errorf("unknown sample kind %q", req.Kind)
}

func jsonValues(data []float64) []interface{} {
	out := make([]interface{}, len(data))
	for i, v := range data {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			out[i] = v
		}
	}
	return out
}

func jsonRows(m *mat.Dense) [][]interface{} {
	r, _ := m.Dims()
	out := make([][]interface{}, r)
	for i := range out {
		out[i] = jsonValues(m.RawRowView(i))
	}
	return out
}

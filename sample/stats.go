package sample

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Summary describes the finite values of a sampled field. NonFinite counts
// the NaN and ±Inf values left out of the other figures.
type Summary struct {
	Count     int     `json:"count" yaml:"count"`
	NonFinite int     `json:"non_finite" yaml:"non_finite"`
	Min       float64 `json:"min" yaml:"min"`
	Max       float64 `json:"max" yaml:"max"`
	Mean      float64 `json:"mean" yaml:"mean"`
	StdDev    float64 `json:"stddev" yaml:"stddev"`
}

// Summarize computes a Summary of data.
func Summarize(data []float64) Summary {
	finite := make([]float64, 0, len(data))
	for _, v := range data {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			finite = append(finite, v)
		}
	}
	s := Summary{Count: len(finite), NonFinite: len(data) - len(finite)}
	switch len(finite) {
	case 0:
		return s
	case 1:
		s.Min, s.Max, s.Mean = finite[0], finite[0], finite[0]
		return s
	}
	s.Min = floats.Min(finite)
	s.Max = floats.Max(finite)
	s.Mean, s.StdDev = stat.MeanStdDev(finite, nil)
	return s
}

// SummarizeDense summarizes every element of m.
func SummarizeDense(m *mat.Dense) Summary {
	r, c := m.Dims()
	data := make([]float64, 0, r*c)
	for i := 0; i < r; i++ {
		data = append(data, m.RawRowView(i)...)
	}
	return Summarize(data)
}

func sign(v float64) int {
	switch {
	case math.IsNaN(v):
		return 0
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

// straddles reports whether the zero level set passes through a cell with
// the given corner values: some corner is zero, or two corners differ in
// sign. Cells touching a NaN never count.
func straddles(corners ...float64) bool {
	pos, neg, zero := false, false, false
	for _, v := range corners {
		if math.IsNaN(v) {
			return false
		}
		switch sign(v) {
		case 1:
			pos = true
		case -1:
			neg = true
		default:
			zero = true
		}
	}
	return zero || (pos && neg)
}

// SignChanges counts the grid cells of an implicit 2D field crossed by its
// zero contour.
func SignChanges(m *mat.Dense) int {
	r, c := m.Dims()
	n := 0
	for i := 0; i+1 < r; i++ {
		for j := 0; j+1 < c; j++ {
			if straddles(m.At(i, j), m.At(i, j+1), m.At(i+1, j), m.At(i+1, j+1)) {
				n++
			}
		}
	}
	return n
}

// Summary summarizes every value of v.
func (v *Volume) Summary() Summary { return Summarize(v.Data) }

// SignChanges counts the grid cubes crossed by the zero level surface.
func (v *Volume) SignChanges() int {
	n := 0
	for i := 0; i+1 < v.Nx; i++ {
		for j := 0; j+1 < v.Ny; j++ {
			for k := 0; k+1 < v.Nz; k++ {
				if straddles(
					v.At(i, j, k), v.At(i, j, k+1), v.At(i, j+1, k), v.At(i, j+1, k+1),
					v.At(i+1, j, k), v.At(i+1, j, k+1), v.At(i+1, j+1, k), v.At(i+1, j+1, k+1),
				) {
					n++
				}
			}
		}
	}
	return n
}

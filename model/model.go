package model

import "math"

// Point is one 2-d location on an embedding or along a curve.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (p Point) DistanceTo(other Point) float64 {
	dx, dy := p.X-other.X, p.Y-other.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Histogram is one density-normalized binning of a sample array.
// The json names match the column names the rendering layer binds
// quad glyphs to.
type Histogram struct {
	LeftEdges  []float64 `json:"l_edges"`
	RightEdges []float64 `json:"r_edges"`
	Density    []float64 `json:"hist"`
	Counts     []int     `json:"counts,omitempty"`
}

func (h *Histogram) Bins() int {
	if h == nil {
		return 0
	}
	return len(h.Density)
}

// Mass integrates the density over the binned range, ~1 by construction.
func (h *Histogram) Mass() float64 {
	if h == nil {
		return 0
	}
	var mass float64
	for j := range h.Density {
		mass += h.Density[j] * (h.RightEdges[j] - h.LeftEdges[j])
	}
	return mass
}

// SmoothCurve is a smoothed prediction over a fixed grid, with an
// optional per-point variance when the smoother provides one.
type SmoothCurve struct {
	Grid     []float64 `json:"x_test"`
	Mean     []float64 `json:"x_mean"`
	Variance []float64 `json:"x_var,omitempty"`
}

func (c *SmoothCurve) IsEmpty() bool {
	if c == nil {
		return true
	}
	return len(c.Grid) == 0
}

// ConfidenceBand returns lower and upper curves at z standard
// deviations around the mean. Returns nil slices when no variance
// was computed.
func (c *SmoothCurve) ConfidenceBand(z float64) ([]float64, []float64) {
	if c == nil || len(c.Variance) != len(c.Mean) {
		return nil, nil
	}
	lower := make([]float64, len(c.Mean))
	upper := make([]float64, len(c.Mean))
	for i := range c.Mean {
		spread := z * math.Sqrt(c.Variance[i])
		lower[i] = c.Mean[i] - spread
		upper[i] = c.Mean[i] + spread
	}
	return lower, upper
}

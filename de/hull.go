package de

import (
	"sort"

	"github.com/scviz/singlecell-plotting/model"
)

// ConvexHull returns the hull vertices of points in counter-clockwise
// order using Andrew's monotone chain. Fewer than three distinct
// points yield the deduplicated input in sorted order.
func ConvexHull(points []model.Point) []model.Point {
	sorted := make([]model.Point, len(points))
	copy(sorted, points)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].X != sorted[j].X {
			return sorted[i].X < sorted[j].X
		}
		return sorted[i].Y < sorted[j].Y
	})

	// drop duplicates, they break the chain invariants
	distinct := sorted[:0]
	for i, p := range sorted {
		if i == 0 || p != sorted[i-1] {
			distinct = append(distinct, p)
		}
	}
	if len(distinct) < 3 {
		out := make([]model.Point, len(distinct))
		copy(out, distinct)
		return out
	}

	var lower []model.Point
	for _, p := range distinct {
		for len(lower) >= 2 && cross(lower[len(lower)-2], lower[len(lower)-1], p) <= 0 {
			lower = lower[:len(lower)-1]
		}
		lower = append(lower, p)
	}

	var upper []model.Point
	for i := len(distinct) - 1; i >= 0; i-- {
		p := distinct[i]
		for len(upper) >= 2 && cross(upper[len(upper)-2], upper[len(upper)-1], p) <= 0 {
			upper = upper[:len(upper)-1]
		}
		upper = append(upper, p)
	}

	// each chain's last point starts the other chain
	return append(lower[:len(lower)-1], upper[:len(upper)-1]...)
}

// cross is the z component of (b-a) x (c-a): positive for a left turn.
func cross(a, b, c model.Point) float64 {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}

package linked

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/scviz/singlecell-plotting/common"
	"github.com/scviz/singlecell-plotting/model"
)

// DistanceMatrix computes pairwise Euclidean distances between rows,
// using the first nFeatures entries of each row (nFeatures <= 0 uses
// every entry).
func DistanceMatrix(rows [][]float64, nFeatures int) (*mat.SymDense, error) {
	n := len(rows)
	if n == 0 {
		return nil, fmt.Errorf("%w: no rows", common.ErrorInvalidValue)
	}
	width := len(rows[0])
	if nFeatures > 0 && nFeatures < width {
		width = nFeatures
	}
	for i, row := range rows {
		if len(row) < width {
			return nil, fmt.Errorf("%w: row %v has %v features, need %v",
				common.ErrorInvalidValue, i, len(row), width)
		}
	}

	dist := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			dist.SetSym(i, j, floats.Distance(rows[i][:width], rows[j][:width], 2))
		}
	}
	return dist, nil
}

// HoverMask reproduces the hover-callback recoloring: a copy of the
// hovered cell's distance row with every entry above threshold replaced
// by NaN (rendered as "no color"). The input row is left untouched.
func HoverMask(row []float64, threshold float64) []float64 {
	masked := make([]float64, len(row))
	for i, v := range row {
		if math.IsNaN(v) || v > threshold {
			masked[i] = math.NaN()
		} else {
			masked[i] = v
		}
	}
	return masked
}

// Views links two embeddings of the same cells through a shared
// distance matrix. Hover events and slider changes arrive as explicit
// calls; the last call wins, matching the widget's display model.
type Views struct {
	First     []model.Point
	Second    []model.Point
	dist      *mat.SymDense
	threshold float64
}

// NewViews builds the linked pair from two embeddings plus the feature
// rows the distance matrix is computed over (the first nFeatures
// columns, typically the top genes).
func NewViews(first, second []model.Point, features [][]float64, nFeatures int, threshold float64) (*Views, error) {
	if len(first) != len(second) || len(first) != len(features) {
		return nil, fmt.Errorf("%w: embeddings and features must cover the same cells (%v, %v, %v)",
			common.ErrorInvalidValue, len(first), len(second), len(features))
	}
	dist, err := DistanceMatrix(features, nFeatures)
	if err != nil {
		return nil, err
	}
	return &Views{First: first, Second: second, dist: dist, threshold: threshold}, nil
}

// SetThreshold handles a slider change.
func (v *Views) SetThreshold(threshold float64) {
	v.threshold = threshold
}

// Hover handles a hover event on cell i of either view: both scatter
// plots recolor by masked distance to the hovered cell.
func (v *Views) Hover(i int) ([]float64, error) {
	n := v.dist.SymmetricDim()
	if i < 0 || i >= n {
		return nil, fmt.Errorf("%w: cell index %v out of range [0, %v)", common.ErrorInvalidValue, i, n)
	}
	row := make([]float64, n)
	for j := 0; j < n; j++ {
		row[j] = v.dist.At(i, j)
	}
	return HoverMask(row, v.threshold), nil
}

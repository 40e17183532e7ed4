package velo_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scviz/singlecell-plotting/common"
	"github.com/scviz/singlecell-plotting/model"
	"github.com/scviz/singlecell-plotting/velo"
)

func curve(xs, ys []float64) []model.Point {
	points := make([]model.Point, len(xs))
	for i := range xs {
		points[i] = model.Point{X: xs[i], Y: ys[i]}
	}
	return points
}

func TestCurveDistance_IdenticalCurvesScoreZero(t *testing.T) {
	a := curve([]float64{0, 1, 2}, []float64{0, 1, 4})

	score, err := velo.CurveDistance(a, a, nil)
	require.NoError(t, err)
	assert.Equal(t, 0.0, score)
}

func TestCurveDistance_WarpingAbsorbsRepeats(t *testing.T) {
	a := curve([]float64{0, 1, 2}, []float64{0, 1, 2})
	b := curve([]float64{0, 1, 1, 2}, []float64{0, 1, 1, 2})

	score, err := velo.CurveDistance(a, b, nil)
	require.NoError(t, err)
	assert.Equal(t, 0.0, score, "a repeated point warps onto its twin at no cost")
}

func TestCurveDistance_DivergentCurvesScorePositive(t *testing.T) {
	a := curve([]float64{0, 1, 2}, []float64{0, 0, 0})
	b := curve([]float64{0, 1, 2}, []float64{1, 1, 1})

	score, err := velo.CurveDistance(a, b, nil)
	require.NoError(t, err)
	assert.InDelta(t, 3.0, score, 1e-12, "three matches one unit apart")
}

func TestCurveDistance_WeightsScaleCost(t *testing.T) {
	a := curve([]float64{0, 1, 2}, []float64{0, 0, 0})
	b := curve([]float64{0, 1, 2}, []float64{1, 1, 1})

	weighted, err := velo.CurveDistance(a, b, []float64{0.5, 0.5, 0.5})
	require.NoError(t, err)
	assert.InDelta(t, 1.5, weighted, 1e-12)
}

func TestCurveDistance_Errors(t *testing.T) {
	a := curve([]float64{0}, []float64{0})

	_, err := velo.CurveDistance(nil, a, nil)
	assert.ErrorIs(t, err, common.ErrorInvalidValue, "empty observed curve")

	_, err = velo.CurveDistance(a, nil, nil)
	assert.ErrorIs(t, err, common.ErrorInvalidValue, "empty theoretical curve")

	_, err = velo.CurveDistance(a, a, []float64{1, 2})
	assert.ErrorIs(t, err, common.ErrorInvalidValue, "weight length mismatch")
}

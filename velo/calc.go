package velo

import (
	"fmt"

	"gonum.org/v1/gonum/integrate"
	"gonum.org/v1/gonum/stat"

	"github.com/scviz/singlecell-plotting/common"
)

// Gradient differentiates y sampled at uniform spacing h: central
// differences in the interior, one-sided differences at the ends.
func Gradient(y []float64, h float64) []float64 {
	n := len(y)
	grad := make([]float64, n)
	if n < 2 || h == 0 {
		return grad
	}
	grad[0] = (y[1] - y[0]) / h
	grad[n-1] = (y[n-1] - y[n-2]) / h
	for i := 1; i < n-1; i++ {
		grad[i] = (y[i+1] - y[i-1]) / (2 * h)
	}
	return grad
}

// PredictExpression integrates smoothed velocity over the grid,
// yielding the predicted expression level at every grid point (Simpson
// rule once enough points accumulate, trapezoid before that).
func PredictExpression(grid, velocity []float64) ([]float64, error) {
	if len(grid) != len(velocity) {
		return nil, fmt.Errorf("%w: %v grid points for %v velocity values",
			common.ErrorInvalidValue, len(grid), len(velocity))
	}
	if len(grid) == 0 {
		return nil, fmt.Errorf("%w: empty grid", common.ErrorInvalidValue)
	}

	predicted := make([]float64, len(grid))
	for i := range grid {
		switch {
		case i == 0:
			predicted[i] = 0
		case i == 1:
			predicted[i] = integrate.Trapezoidal(grid[:2], velocity[:2])
		default:
			predicted[i] = integrate.Simpsons(grid[:i+1], velocity[:i+1])
		}
	}
	return predicted, nil
}

// ShiftScale finds the least-squares slope and intercept mapping
// observed values onto theoretical ones, accounting for an unknown
// scaling factor between the two. fitIntercept=false forces the fit
// through the origin.
func ShiftScale(obs, theo []float64, fitIntercept bool) (slope, intercept float64, err error) {
	if len(obs) == 0 || len(obs) != len(theo) {
		return 0, 0, fmt.Errorf("%w: %v observed values for %v theoretical values",
			common.ErrorInvalidValue, len(obs), len(theo))
	}
	intercept, slope = stat.LinearRegression(obs, theo, nil, !fitIntercept)
	return slope, intercept, nil
}

package velo

import (
	"fmt"
	"math"

	"github.com/scviz/singlecell-plotting/common"
	"github.com/scviz/singlecell-plotting/model"
)

// CurveDistance scores how well an observed point cloud follows a
// theoretical curve using dynamic time warping over the 2-d points.
// Lower is better; identical curves score 0.
//
// weights, when non-nil, holds one entry per theoretical point and
// scales the pointwise match cost, so uncertain stretches of the curve
// (large smoothing variance) contribute less.
//
// The DP keeps only two rows, O(min-memory) in the curve length.
func CurveDistance(obs, theo []model.Point, weights []float64) (float64, error) {
	n, m := len(obs), len(theo)
	if n == 0 || m == 0 {
		return 0, fmt.Errorf("%w: empty curve (%v observed, %v theoretical points)",
			common.ErrorInvalidValue, n, m)
	}
	if weights != nil && len(weights) != m {
		return 0, fmt.Errorf("%w: %v weights for %v theoretical points",
			common.ErrorInvalidValue, len(weights), m)
	}

	inf := math.Inf(1)
	prev := make([]float64, m+1)
	curr := make([]float64, m+1)
	for j := 1; j <= m; j++ {
		prev[j] = inf
	}

	for i := 1; i <= n; i++ {
		curr[0] = inf
		for j := 1; j <= m; j++ {
			cost := obs[i-1].DistanceTo(theo[j-1])
			if weights != nil {
				cost *= weights[j-1]
			}
			curr[j] = cost + min3(prev[j], curr[j-1], prev[j-1])
		}
		prev, curr = curr, prev
	}
	return prev[m], nil
}

func min3(a, b, c float64) float64 {
	if a < b {
		if a < c {
			return a
		}
		return c
	}
	if b < c {
		return b
	}
	return c
}

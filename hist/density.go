package hist

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/scviz/singlecell-plotting/common"
	"github.com/scviz/singlecell-plotting/model"
	"github.com/scviz/singlecell-plotting/utils"
)

// grid extension past the sample range, in bandwidths, so the kernel
// tails go to zero
const densityCut = 3.0

// DensityOverlay estimates a smooth Gaussian kernel density over the
// sample range, for drawing on top of a binned histogram. The grid
// extends densityCut bandwidths past the extremes; gridSize <= 0
// defaults to max(len(samples), 100) points.
//
// Bandwidth is the normal-reference rule over the robust spread
// min(stddev, IQR/1.349).
func DensityOverlay(samples []float64, gridSize int) ([]model.Point, error) {
	if len(samples) == 0 {
		return nil, common.ErrorEmptySampleSet
	}

	sorted := make([]float64, len(samples))
	copy(sorted, samples)
	sort.Float64s(sorted)

	lo, hi := sorted[0], sorted[len(sorted)-1]
	if lo == hi {
		return nil, fmt.Errorf("%w: all %v samples equal %v", common.ErrorDegenerateRange, len(sorted), lo)
	}

	bw := normalReferenceBandwidth(sorted)
	if bw <= 0 || math.IsNaN(bw) {
		return nil, fmt.Errorf("%w: bandwidth %v for %v samples", common.ErrorInvalidValue, bw, len(sorted))
	}

	if gridSize <= 0 {
		gridSize = len(sorted)
		if gridSize < 100 {
			gridSize = 100
		}
	}

	grid := utils.Linspace(lo-densityCut*bw, hi+densityCut*bw, gridSize)
	n := float64(len(sorted))

	curve := make([]model.Point, len(grid))
	for i, g := range grid {
		var sum float64
		for _, x := range sorted {
			sum += gaussShape((x - g) / bw)
		}
		curve[i] = model.Point{X: g, Y: sum / (n * bw)}
	}
	return curve, nil
}

// gaussShape is the standard normal pdf.
func gaussShape(u float64) float64 {
	return 0.3989422804014327 * math.Exp(-u*u/2)
}

// normalReferenceBandwidth is Silverman's rule over a robust spread
// estimate; sorted must be ascending.
func normalReferenceBandwidth(sorted []float64) float64 {
	return 0.9 * selectSigma(sorted) * math.Pow(float64(len(sorted)), -0.2)
}

func selectSigma(sorted []float64) float64 {
	const normalize = 1.349

	q75 := stat.Quantile(0.75, stat.Empirical, sorted, nil)
	q25 := stat.Quantile(0.25, stat.Empirical, sorted, nil)
	iqr := (q75 - q25) / normalize

	stdDev := stat.StdDev(sorted, nil)

	if iqr > 0 && iqr < stdDev {
		return iqr
	}
	return stdDev
}

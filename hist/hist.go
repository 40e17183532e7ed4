package hist

import (
	"fmt"
	"sort"

	"github.com/scviz/singlecell-plotting/common"
	"github.com/scviz/singlecell-plotting/model"
)

// Rebin builds a density-normalized histogram of samples over nBins
// equal-width bins spanning [min(samples), max(samples)].
//
// The output only depends on the inputs, so an interactive widget can
// call Rebin again on every bin-count change against the same retained
// sample array and get the identical initial-render result back for the
// same count. Density is normalized so the integral over the full
// range is 1 (counts[j] / binWidth / total).
//
// A sample sitting exactly on an internal edge belongs to the lower of
// the two adjacent bins: membership is the smallest j with
// x <= RightEdges[j].
func Rebin(samples []float64, nBins int) (*model.Histogram, error) {
	if nBins <= 0 {
		return nil, fmt.Errorf("%w: expected nBins >= 1, got %v", common.ErrorInvalidBinCount, nBins)
	}
	if len(samples) == 0 {
		return nil, common.ErrorEmptySampleSet
	}

	sorted := make([]float64, len(samples))
	copy(sorted, samples)
	sort.Float64s(sorted)

	lo, hi := sorted[0], sorted[len(sorted)-1]
	if lo == hi {
		// all mass would land in a zero-width bin, the density is undefined
		return nil, fmt.Errorf("%w: all %v samples equal %v", common.ErrorDegenerateRange, len(sorted), lo)
	}

	binWidth := (hi - lo) / float64(nBins)
	left := make([]float64, nBins)
	right := make([]float64, nBins)
	for j := 0; j < nBins; j++ {
		left[j] = lo + binWidth*float64(j)
		right[j] = lo + binWidth*float64(j+1)
	}

	counts := make([]int, nBins)
	for _, x := range sorted {
		// right edges are ascending, so the binary search finds the
		// same bin the increasing linear scan would
		j := sort.Search(nBins, func(j int) bool { return x <= right[j] })
		if j == nBins {
			return nil, fmt.Errorf("%w: sample %v above last edge %v",
				common.ErrorBinningInvariant, x, right[nBins-1])
		}
		counts[j]++
	}

	total := float64(len(sorted))
	density := make([]float64, nBins)
	for j := 0; j < nBins; j++ {
		delta := right[j] - left[j]
		density[j] = float64(counts[j]) / delta / total
	}

	return &model.Histogram{
		LeftEdges:  left,
		RightEdges: right,
		Density:    density,
		Counts:     counts,
	}, nil
}

package hist

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/scviz/singlecell-plotting/common"
	"github.com/scviz/singlecell-plotting/model"
	"github.com/scviz/singlecell-plotting/utils"
)

// Explorer drives one interactive histogram widget. It retains an
// immutable copy of the raw sample array for the lifetime of the widget
// and recomputes the binned result from scratch on every bin-count
// change, so displayed state always derives from an explicit SetBins
// call and never from shared mutable globals.
//
// Calls are expected to be sequential per widget; the last SetBins wins.
type Explorer struct {
	samples []float64
	minBins int
	maxBins int
	bins    int
	current *model.Histogram
}

// NewExplorer validates the bin bounds, copies samples and computes the
// initial histogram at bins.
func NewExplorer(samples []float64, bins, minBins, maxBins int) (*Explorer, error) {
	if minBins < 1 {
		return nil, fmt.Errorf("%w: expected minBins >= 1, got minBins=%v",
			common.ErrorInvalidBinCount, minBins)
	}
	if maxBins < minBins {
		return nil, fmt.Errorf("%w: expected minBins <= maxBins, got minBins=%v, maxBins=%v",
			common.ErrorInvalidBinCount, minBins, maxBins)
	}
	if bins < minBins || bins > maxBins {
		return nil, fmt.Errorf("%w: expected minBins <= bins <= maxBins, got minBins=%v, bins=%v, maxBins=%v",
			common.ErrorInvalidBinCount, minBins, bins, maxBins)
	}

	retained := make([]float64, len(samples))
	copy(retained, samples)

	current, err := Rebin(retained, bins)
	if err != nil {
		return nil, err
	}

	return &Explorer{
		samples: retained,
		minBins: minBins,
		maxBins: maxBins,
		bins:    bins,
		current: current,
	}, nil
}

// SetBins handles one control-change event: it validates the requested
// bin count against the widget bounds and recomputes the histogram from
// the retained samples. On failure the displayed histogram is left
// unchanged.
func (e *Explorer) SetBins(ctx context.Context, bins int) (*model.Histogram, error) {
	logger := utils.GetLogger(ctx)

	if bins < e.minBins || bins > e.maxBins {
		return nil, fmt.Errorf("%w: expected %v <= bins <= %v, got %v",
			common.ErrorInvalidBinCount, e.minBins, e.maxBins, bins)
	}

	current, err := Rebin(e.samples, bins)
	if err != nil {
		logger.Error("rebin failed", zap.Error(err), zap.Int("bins", bins))
		return nil, err
	}

	e.bins = bins
	e.current = current
	return current, nil
}

func (e *Explorer) Bins() int {
	return e.bins
}

func (e *Explorer) Bounds() (minBins, maxBins int) {
	return e.minBins, e.maxBins
}

// Histogram returns the last computed result.
func (e *Explorer) Histogram() *model.Histogram {
	return e.current
}

package hist_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scviz/singlecell-plotting/common"
	"github.com/scviz/singlecell-plotting/hist"
)

func TestNewExplorer_BoundsValidation(t *testing.T) {
	samples := []float64{1, 2, 3, 4}

	_, err := hist.NewExplorer(samples, 10, 0, 100)
	assert.ErrorIs(t, err, common.ErrorInvalidBinCount, "minBins < 1")

	_, err = hist.NewExplorer(samples, 10, 50, 20)
	assert.ErrorIs(t, err, common.ErrorInvalidBinCount, "maxBins < minBins")

	_, err = hist.NewExplorer(samples, 200, 1, 100)
	assert.ErrorIs(t, err, common.ErrorInvalidBinCount, "bins above maxBins")

	_, err = hist.NewExplorer(samples, 2, 3, 100)
	assert.ErrorIs(t, err, common.ErrorInvalidBinCount, "bins below minBins")
}

func TestExplorer_SetBinsRecomputesFromRetainedSamples(t *testing.T) {
	ctx := context.Background()
	samples := []float64{1, 1, 2, 3, 3, 3, 4, 5}

	e, err := hist.NewExplorer(samples, 4, 1, 100)
	require.NoError(t, err)
	assert.Equal(t, 4, e.Bins())

	direct, err := hist.Rebin(samples, 8)
	require.NoError(t, err)

	rebinned, err := e.SetBins(ctx, 8)
	require.NoError(t, err)
	assert.Equal(t, direct, rebinned, "SetBins must match a direct Rebin of the same samples")
	assert.Equal(t, 8, e.Bins())
	assert.Equal(t, rebinned, e.Histogram())

	// mutating the caller's slice must not leak into later recomputes
	samples[0] = 100
	again, err := e.SetBins(ctx, 8)
	require.NoError(t, err)
	assert.Equal(t, direct, again, "explorer must work on its own copy")
}

func TestExplorer_SetBinsOutOfRangeKeepsState(t *testing.T) {
	ctx := context.Background()

	e, err := hist.NewExplorer([]float64{1, 2, 3, 4, 5}, 4, 2, 10)
	require.NoError(t, err)
	before := e.Histogram()

	_, err = e.SetBins(ctx, 11)
	assert.ErrorIs(t, err, common.ErrorInvalidBinCount)
	_, err = e.SetBins(ctx, 1)
	assert.ErrorIs(t, err, common.ErrorInvalidBinCount)

	assert.Equal(t, 4, e.Bins(), "failed SetBins must not change the bin count")
	assert.Equal(t, before, e.Histogram(), "failed SetBins must not change the display")

	minBins, maxBins := e.Bounds()
	assert.Equal(t, 2, minBins)
	assert.Equal(t, 10, maxBins)
}

func TestSplitGroups_NoKeysYieldsAll(t *testing.T) {
	values := []float64{1, 2, 3}

	groups, err := hist.SplitGroups(values, nil, nil, false)
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, "all", groups[0].Legend)
	assert.Equal(t, values, groups[0].Values)
}

func TestSplitGroups_CombinationsAndAll(t *testing.T) {
	values := []float64{10, 20, 30, 40}
	labels := map[string][]string{
		"plate": {"a", "a", "b", "b"},
		"day":   {"1", "2", "1", "1"},
	}

	groups, err := hist.SplitGroups(values, labels, []string{"plate", "day"}, true)
	require.NoError(t, err)

	// (a,b)x(1,2) minus the empty b/2 combination, plus "all"
	require.Len(t, groups, 4)
	assert.Equal(t, "plate: a, day: 1", groups[0].Legend)
	assert.Equal(t, []float64{10}, groups[0].Values)
	assert.Equal(t, "plate: a, day: 2", groups[1].Legend)
	assert.Equal(t, []float64{20}, groups[1].Values)
	assert.Equal(t, "plate: b, day: 1", groups[2].Legend)
	assert.Equal(t, []float64{30, 40}, groups[2].Values)
	assert.Equal(t, "all", groups[3].Legend)
	assert.Equal(t, values, groups[3].Values)
}

func TestSplitGroups_MissingKey(t *testing.T) {
	_, err := hist.SplitGroups([]float64{1}, map[string][]string{"plate": {"a"}}, []string{"day"}, false)
	assert.ErrorIs(t, err, common.ErrorInvalidValue)

	_, err = hist.SplitGroups([]float64{1, 2}, map[string][]string{"plate": {"a"}}, []string{"plate"}, false)
	assert.ErrorIs(t, err, common.ErrorInvalidValue, "label column shorter than values")
}

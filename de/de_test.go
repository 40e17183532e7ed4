package de_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scviz/singlecell-plotting/common"
	"github.com/scviz/singlecell-plotting/de"
	"github.com/scviz/singlecell-plotting/model"
)

func TestGroupHulls_SplitsByLabelAndAttachesDE(t *testing.T) {
	points := []model.Point{
		// cluster "0": unit square
		{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}, {X: 0.5, Y: 0.5},
		// cluster "1": triangle far away
		{X: 10, Y: 10}, {X: 12, Y: 10}, {X: 11, Y: 12},
	}
	labels := []string{"0", "0", "0", "0", "0", "1", "1", "1"}
	ranks := map[string]de.DERank{
		"0": {
			"names":  []string{"Actb", "Gapdh", "Cd4", "Cd8a"},
			"scores": []string{"9.1", "7.4", "3.3", "1.2"},
		},
	}

	groups, err := de.GroupHulls(points, labels, ranks, 2)
	require.NoError(t, err)
	require.Len(t, groups, 2)

	square := groups[0]
	assert.Equal(t, "0", square.Label)
	assert.Len(t, square.Xs, 4, "interior point stays out of the hull")
	assert.True(t, square.HasDE)
	assert.Equal(t, []string{"Actb", "Gapdh"}, square.TopDE["names"], "ranking truncated to topN")
	assert.Equal(t, []string{"9.1", "7.4"}, square.TopDE["scores"])

	triangle := groups[1]
	assert.Equal(t, "1", triangle.Label)
	assert.Len(t, triangle.Xs, 3)
	assert.False(t, triangle.HasDE, "no ranking for this cluster")
	assert.Nil(t, triangle.TopDE)
}

func TestGroupHulls_TopNLargerThanRanking(t *testing.T) {
	points := []model.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}}
	labels := []string{"a", "a", "a"}
	ranks := map[string]de.DERank{"a": {"names": []string{"Actb"}}}

	groups, err := de.GroupHulls(points, labels, ranks, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"Actb"}, groups[0].TopDE["names"])
}

func TestGroupHulls_Validation(t *testing.T) {
	points := []model.Point{{X: 0, Y: 0}}

	_, err := de.GroupHulls(points, []string{"a", "b"}, nil, 3)
	assert.ErrorIs(t, err, common.ErrorInvalidValue, "label/point length mismatch")

	_, err = de.GroupHulls(points, []string{"a"}, nil, -1)
	assert.ErrorIs(t, err, common.ErrorInvalidValue, "negative topN")
}

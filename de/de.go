package de

import (
	"fmt"
	"sort"

	"github.com/scviz/singlecell-plotting/common"
	"github.com/scviz/singlecell-plotting/model"
)

// DERank holds the ranked differential-expression outputs for one
// group: statistic name ("names", "scores", "pvals_adj", ...) to
// values ordered best-first, already stringified for tooltips.
type DERank map[string][]string

// HullGroup is the render-ready patch geometry for one cluster on an
// embedding, plus its top differential-expression table when the
// cluster has DE results.
type HullGroup struct {
	Label  string
	Xs, Ys []float64
	HasDE  bool
	TopDE  map[string][]string
}

// GroupHulls computes a convex-hull polygon per cluster label over the
// embedding and attaches the top-N entries of each cluster's DE ranking
// where one exists. Groups come back in sorted label order, so repeated
// calls line up with a stable color mapping.
func GroupHulls(points []model.Point, labels []string, ranks map[string]DERank, topN int) ([]HullGroup, error) {
	if len(labels) != len(points) {
		return nil, fmt.Errorf("%w: %v labels for %v points", common.ErrorInvalidValue, len(labels), len(points))
	}
	if topN < 0 {
		return nil, fmt.Errorf("%w: topN must not be negative, got %v", common.ErrorInvalidValue, topN)
	}

	byLabel := map[string][]model.Point{}
	for i, p := range points {
		byLabel[labels[i]] = append(byLabel[labels[i]], p)
	}

	ordered := make([]string, 0, len(byLabel))
	for label := range byLabel {
		ordered = append(ordered, label)
	}
	sort.Strings(ordered)

	groups := make([]HullGroup, 0, len(ordered))
	for _, label := range ordered {
		hull := ConvexHull(byLabel[label])
		group := HullGroup{
			Label: label,
			Xs:    make([]float64, len(hull)),
			Ys:    make([]float64, len(hull)),
		}
		for i, p := range hull {
			group.Xs[i] = p.X
			group.Ys[i] = p.Y
		}

		if rank, ok := ranks[label]; ok {
			group.HasDE = true
			group.TopDE = map[string][]string{}
			for stat, values := range rank {
				n := topN
				if n > len(values) {
					n = len(values)
				}
				top := make([]string, n)
				copy(top, values[:n])
				group.TopDE[stat] = top
			}
		}
		groups = append(groups, group)
	}
	return groups, nil
}

package hist

import (
	"fmt"
	"sort"
	"strings"

	"github.com/scviz/singlecell-plotting/common"
)

// Group is one sample subset produced by SplitGroups, tagged with the
// "key: value" legend entries that select it.
type Group struct {
	Legend string
	Values []float64
}

// SplitGroups partitions values by every combination of observed label
// values across the given keys, e.g. 3 plates and 2 time points yield
// up to 6 groups. Combinations with no samples are dropped. When
// displayAll is true (or no keys are given) a final "all" group holding
// every sample is appended.
//
// labels maps a key to one label per sample; every requested key must
// be present with the same length as values.
func SplitGroups(values []float64, labels map[string][]string, keys []string, displayAll bool) ([]Group, error) {
	all := Group{Legend: "all", Values: values}
	if len(keys) == 0 {
		return []Group{all}, nil
	}

	distinct := make([][]string, len(keys))
	for i, key := range keys {
		column, ok := labels[key]
		if !ok {
			return nil, fmt.Errorf("%w: the key %q does not exist in the labels", common.ErrorInvalidValue, key)
		}
		if len(column) != len(values) {
			return nil, fmt.Errorf("%w: key %q has %v labels for %v samples",
				common.ErrorInvalidValue, key, len(column), len(values))
		}
		seen := map[string]bool{}
		for _, v := range column {
			if !seen[v] {
				seen[v] = true
				distinct[i] = append(distinct[i], v)
			}
		}
		sort.Strings(distinct[i])
	}

	var groups []Group
	combo := make([]string, len(keys))
	var walk func(depth int)
	walk = func(depth int) {
		if depth == len(keys) {
			var members []float64
			for i := range values {
				match := true
				for k, key := range keys {
					if labels[key][i] != combo[k] {
						match = false
						break
					}
				}
				if match {
					members = append(members, values[i])
				}
			}
			if len(members) == 0 {
				return
			}
			parts := make([]string, len(keys))
			for k, key := range keys {
				parts[k] = key + ": " + combo[k]
			}
			groups = append(groups, Group{
				Legend: strings.Join(parts, ", "),
				Values: members,
			})
			return
		}
		for _, v := range distinct[depth] {
			combo[depth] = v
			walk(depth + 1)
		}
	}
	walk(0)

	if displayAll {
		groups = append(groups, all)
	}
	return groups, nil
}

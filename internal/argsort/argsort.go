// Package argsort produces index permutations that order a distance vector.
package argsort

import "sort"

// Sort returns a permutation p of 0..len(dists)-1 such that dists[p[0]],
// dists[p[1]], ... is ascending, or descending when desc is set. The
// permutation is not stable across equal distances; callers that care about
// tie order must resolve it themselves.
func Sort(dists []float32, desc bool) []int {
	idx := make([]int, len(dists))
	for i := range idx {
		idx[i] = i
	}
	if desc {
		sort.Slice(idx, func(a, b int) bool {
			return dists[idx[a]] > dists[idx[b]]
		})
	} else {
		sort.Slice(idx, func(a, b int) bool {
			return dists[idx[a]] < dists[idx[b]]
		})
	}
	return idx
}

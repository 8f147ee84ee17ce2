package stats

import (
	"math"
	"sort"
)

// NearestRank calculates the p-th percentile (0-100) of values using
// nearest-rank selection: with k samples, rank r = ceil(p/100 * k)
// (1-indexed), clamped to [1, k]. The second return value is false when
// the sample set is empty; the percentile is undefined in that case.
func NearestRank(values []int64, p float64) (int64, bool) {
	k := len(values)
	if k == 0 {
		return 0, false
	}

	sorted := make([]int64, k)
	copy(sorted, values)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	rank := int(math.Ceil(p / 100.0 * float64(k)))
	if rank < 1 {
		rank = 1
	}
	if rank > k {
		rank = k
	}

	return sorted[rank-1], true
}

// NearestRanks calculates multiple percentiles over one sorted copy.
func NearestRanks(values []int64, ps []float64) ([]int64, bool) {
	k := len(values)
	if k == 0 {
		return make([]int64, len(ps)), false
	}

	sorted := make([]int64, k)
	copy(sorted, values)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	results := make([]int64, len(ps))
	for i, p := range ps {
		rank := int(math.Ceil(p / 100.0 * float64(k)))
		if rank < 1 {
			rank = 1
		}
		if rank > k {
			rank = k
		}
		results[i] = sorted[rank-1]
	}

	return results, true
}

package report

import (
	"sort"

	"github.com/tiUlisses/securityvision-presence-backend/internal/models"
)

// RankMetric selects the primary ordering metric of a top-N ranking.
type RankMetric string

// RankMetric constants
const (
	RankByDwell    RankMetric = "dwell"
	RankBySessions RankMetric = "sessions"
)

// TopN returns the n highest-ranked entries ordered descending by the
// requested metric, ties broken by the other metric descending, final
// ties by id ascending. The ordering is total, so equal inputs always
// produce identical output. An empty input yields an empty sequence.
func TopN(entries []models.EntityRank, metric RankMetric, n int) []models.EntityRank {
	if n <= 0 || len(entries) == 0 {
		return []models.EntityRank{}
	}

	sorted := make([]models.EntityRank, len(entries))
	copy(sorted, entries)

	sort.Slice(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		first, second := a.DwellSeconds, b.DwellSeconds
		tie1, tie2 := a.Sessions, b.Sessions
		if metric == RankBySessions {
			first, second = a.Sessions, b.Sessions
			tie1, tie2 = a.DwellSeconds, b.DwellSeconds
		}
		if first != second {
			return first > second
		}
		if tie1 != tie2 {
			return tie1 > tie2
		}
		return a.ID < b.ID
	})

	if n > len(sorted) {
		n = len(sorted)
	}
	return sorted[:n]
}

// GroupBy rolls up normalized intervals into per-key dwell and session
// totals. The key function picks the grouping axis (device id, owning
// person id).
func GroupBy(intervals []models.Interval, key func(models.Interval) string) []models.EntityRank {
	agg := make(map[string]*models.EntityRank)
	for _, iv := range intervals {
		k := key(iv)
		if k == "" {
			continue
		}
		r, ok := agg[k]
		if !ok {
			r = &models.EntityRank{ID: k}
			agg[k] = r
		}
		r.DwellSeconds += iv.ClippedDuration()
		r.Sessions++
	}

	out := make([]models.EntityRank, 0, len(agg))
	for _, r := range agg {
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

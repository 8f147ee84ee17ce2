package report

import (
	"time"

	"github.com/tiUlisses/securityvision-presence-backend/internal/models"
	"github.com/tiUlisses/securityvision-presence-backend/internal/stats"
)

// Engine computes presence rollups over fetched dwell sessions. All
// computations are pure functions of their inputs; the engine holds no
// state beyond the bucketing timezone, so one instance serves all
// requests.
type Engine struct {
	loc *time.Location
}

// NewEngine creates an engine that buckets calendar and cyclical
// dimensions in the given timezone.
func NewEngine(loc *time.Location) *Engine {
	if loc == nil {
		loc = time.UTC
	}
	return &Engine{loc: loc}
}

// Location returns the bucketing timezone.
func (e *Engine) Location() *time.Location {
	return e.loc
}

// NormalizeAll clips the intervals to the window and drops the ones
// filtered out by models.Normalize. Every downstream computation
// operates on the returned set; nothing re-filters.
func (e *Engine) NormalizeAll(intervals []models.Interval, w models.Window) []models.Interval {
	out := make([]models.Interval, 0, len(intervals))
	for _, iv := range intervals {
		if n, ok := models.Normalize(iv, w); ok {
			out = append(out, n)
		}
	}
	return out
}

// Fold accumulates normalized intervals under one granularity.
func (e *Engine) Fold(normalized []models.Interval, w models.Window, g models.Granularity) *Accumulator {
	acc := NewAccumulator(w, g, e.loc)
	for _, iv := range normalized {
		acc.Add(iv)
	}
	return acc
}

// Summary computes window-level aggregates directly from a normalized
// interval set, without bucketization.
func (e *Engine) Summary(normalized []models.Interval) models.WindowSummary {
	entities := make(map[string]struct{})
	var totalDwell int64
	for _, iv := range normalized {
		totalDwell += iv.ClippedDuration()
		entities[iv.EntityID] = struct{}{}
	}

	s := models.WindowSummary{
		TotalSessions:     int64(len(normalized)),
		TotalDwellSeconds: totalDwell,
		UniqueEntities:    len(entities),
	}
	if s.TotalSessions > 0 {
		avg := float64(totalDwell) / float64(s.TotalSessions)
		s.AvgDwellSeconds = &avg
	}
	return s
}

// Durations returns the per-session clipped durations of a normalized
// interval set, the sample multiset for percentile statistics.
func (e *Engine) Durations(normalized []models.Interval) []int64 {
	out := make([]int64, 0, len(normalized))
	for _, iv := range normalized {
		out = append(out, iv.ClippedDuration())
	}
	return out
}

// Stats computes nearest-rank p50/p95 over the per-session clipped
// durations of a normalized interval set. Both figures are nil when the
// set is empty.
func (e *Engine) Stats(normalized []models.Interval) models.DwellStats {
	ps, ok := stats.NearestRanks(e.Durations(normalized), []float64{50, 95})
	if !ok {
		return models.DwellStats{}
	}
	return models.DwellStats{
		P50DwellSeconds: &ps[0],
		P95DwellSeconds: &ps[1],
	}
}

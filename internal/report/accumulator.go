package report

import (
	"sort"
	"time"

	"github.com/tiUlisses/securityvision-presence-backend/internal/models"
	"github.com/tiUlisses/securityvision-presence-backend/internal/stats"
)

// Accumulator folds normalized intervals into per-bucket and
// window-level aggregates. All folds are commutative and associative,
// so intervals may be added in any order. Bucket-level dwell figures
// are not additive back to the window summary: a session crossing a
// bucket boundary counts once in every bucket it touches.
type Accumulator struct {
	window models.Window
	gran   models.Granularity
	loc    *time.Location

	buckets map[string]*bucketState

	// Window-level figures, computed from the normalized
	// pre-bucketization interval set.
	totalDwell int64
	durations  []int64
	entities   map[string]struct{}
}

type bucketState struct {
	start    int64
	dwell    int64
	sessions map[int64]struct{}
	entities map[string]struct{}
}

// NewAccumulator creates an accumulator for one window and granularity.
func NewAccumulator(w models.Window, g models.Granularity, loc *time.Location) *Accumulator {
	return &Accumulator{
		window:   w,
		gran:     g,
		loc:      loc,
		buckets:  make(map[string]*bucketState),
		entities: make(map[string]struct{}),
	}
}

// Add folds one normalized interval into the accumulator. The interval
// must already have passed models.Normalize; zero-duration intervals
// never reach a bucket.
func (a *Accumulator) Add(iv models.Interval) {
	duration := iv.ClippedDuration()
	if duration <= 0 {
		return
	}

	a.totalDwell += duration
	a.durations = append(a.durations, duration)
	a.entities[iv.EntityID] = struct{}{}

	for _, span := range Assign(iv, a.window, a.gran, a.loc) {
		b, ok := a.buckets[span.Key]
		if !ok {
			b = &bucketState{
				start:    span.Start,
				sessions: make(map[int64]struct{}),
				entities: make(map[string]struct{}),
			}
			a.buckets[span.Key] = b
		}
		b.dwell += span.Seconds
		b.sessions[iv.ID] = struct{}{}
		b.entities[iv.EntityID] = struct{}{}
	}
}

// Buckets returns the per-bucket rollups ordered by bucket start.
func (a *Accumulator) Buckets() []models.BucketRollup {
	out := make([]models.BucketRollup, 0, len(a.buckets))
	for key, b := range a.buckets {
		out = append(out, models.BucketRollup{
			Key:            key,
			BucketStart:    b.start,
			DwellSeconds:   b.dwell,
			Sessions:       int64(len(b.sessions)),
			UniqueEntities: len(b.entities),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].BucketStart != out[j].BucketStart {
			return out[i].BucketStart < out[j].BucketStart
		}
		return out[i].Key < out[j].Key
	})
	return out
}

// Summary returns the window-level aggregates. They are computed from
// the normalized interval set directly and are identical under every
// granularity.
func (a *Accumulator) Summary() models.WindowSummary {
	s := models.WindowSummary{
		TotalSessions:     int64(len(a.durations)),
		TotalDwellSeconds: a.totalDwell,
		UniqueEntities:    len(a.entities),
	}
	if s.TotalSessions > 0 {
		avg := float64(a.totalDwell) / float64(s.TotalSessions)
		s.AvgDwellSeconds = &avg
	}
	return s
}

// Stats returns nearest-rank percentiles over the per-session clipped
// durations. Both figures are nil when no sessions were added.
func (a *Accumulator) Stats() models.DwellStats {
	ps, ok := stats.NearestRanks(a.durations, []float64{50, 95})
	if !ok {
		return models.DwellStats{}
	}
	return models.DwellStats{
		P50DwellSeconds: &ps[0],
		P95DwellSeconds: &ps[1],
	}
}

// Peak returns the bucket with the highest unique-entity count, ties
// broken by earliest bucket start. It returns nil when no bucket was
// touched.
func (a *Accumulator) Peak() *models.BucketRollup {
	var peak *models.BucketRollup
	for _, b := range a.Buckets() {
		b := b
		if peak == nil ||
			b.UniqueEntities > peak.UniqueEntities ||
			(b.UniqueEntities == peak.UniqueEntities && b.BucketStart < peak.BucketStart) {
			peak = &b
		}
	}
	return peak
}

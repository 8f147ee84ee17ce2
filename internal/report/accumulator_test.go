package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tiUlisses/securityvision-presence-backend/internal/models"
)

func TestAccumulatorHourOfDayCrossing(t *testing.T) {
	loc := time.UTC
	engine := NewEngine(loc)
	w := models.Window{
		FromTime: ts(2024, 3, 4, 0, 0, loc),
		ToTime:   ts(2024, 3, 4, 3, 0, loc),
	}
	normalized := engine.NormalizeAll([]models.Interval{
		interval(1, "E", "D1", ts(2024, 3, 4, 1, 30, loc), ts(2024, 3, 4, 2, 30, loc)),
	}, w)
	require.Len(t, normalized, 1)

	acc := engine.Fold(normalized, w, models.GranularityHourOfDay)

	buckets := acc.Buckets()
	require.Len(t, buckets, 2)
	for _, b := range buckets {
		require.Equal(t, int64(1800), b.DwellSeconds)
		require.Equal(t, int64(1), b.Sessions)
		require.Equal(t, 1, b.UniqueEntities)
	}
	require.Equal(t, "01", buckets[0].Key)
	require.Equal(t, "02", buckets[1].Key)

	// Window figures come from the pre-bucket set: the session counts
	// once even though it touched two buckets.
	summary := acc.Summary()
	require.Equal(t, int64(1), summary.TotalSessions)
	require.Equal(t, int64(3600), summary.TotalDwellSeconds)
	require.Equal(t, 1, summary.UniqueEntities)
	require.NotNil(t, summary.AvgDwellSeconds)
	require.Equal(t, float64(3600), *summary.AvgDwellSeconds)
}

func TestSummaryIdenticalUnderEveryGranularity(t *testing.T) {
	loc := time.UTC
	engine := NewEngine(loc)
	w := models.Window{
		FromTime: ts(2024, 3, 1, 0, 0, loc),
		ToTime:   ts(2024, 3, 15, 0, 0, loc),
	}
	normalized := engine.NormalizeAll([]models.Interval{
		interval(1, "A", "D1", ts(2024, 3, 4, 9, 0, loc), ts(2024, 3, 4, 10, 30, loc)),
		interval(2, "A", "D2", ts(2024, 3, 5, 23, 0, loc), ts(2024, 3, 6, 2, 0, loc)),
		interval(3, "B", "D1", ts(2024, 3, 9, 22, 45, loc), ts(2024, 3, 11, 1, 15, loc)),
		interval(4, "C", "D2", ts(2024, 3, 14, 23, 50, loc), ts(2024, 3, 16, 0, 0, loc)),
	}, w)

	want := engine.Summary(normalized)
	require.Equal(t, int64(4), want.TotalSessions)
	require.Equal(t, 3, want.UniqueEntities)

	granularities := []models.Granularity{
		models.GranularityDay,
		models.GranularityWeek,
		models.GranularityMonth,
		models.GranularityYear,
		models.GranularityHourOfDay,
		models.GranularityDayOfWeek,
		models.GranularityHour,
	}
	for _, g := range granularities {
		t.Run(string(g), func(t *testing.T) {
			acc := engine.Fold(normalized, w, g)
			require.Equal(t, want, acc.Summary())
			require.Equal(t, engine.Stats(normalized), acc.Stats())

			// Per-bucket dwell partitions the total exactly.
			var dwell int64
			for _, b := range acc.Buckets() {
				dwell += b.DwellSeconds
				require.LessOrEqual(t, b.UniqueEntities, want.UniqueEntities)
				require.LessOrEqual(t, b.Sessions, want.TotalSessions)
			}
			require.Equal(t, want.TotalDwellSeconds, dwell)
		})
	}
}

func TestSessionCountedInEveryTouchedBucket(t *testing.T) {
	loc := time.UTC
	engine := NewEngine(loc)
	w := models.Window{
		FromTime: ts(2024, 3, 4, 0, 0, loc),
		ToTime:   ts(2024, 3, 8, 0, 0, loc),
	}
	// One session spanning three days.
	normalized := engine.NormalizeAll([]models.Interval{
		interval(1, "A", "D1", ts(2024, 3, 4, 12, 0, loc), ts(2024, 3, 6, 12, 0, loc)),
	}, w)

	acc := engine.Fold(normalized, w, models.GranularityDay)
	buckets := acc.Buckets()
	require.Len(t, buckets, 3)
	var bucketSessions int64
	for _, b := range buckets {
		require.Equal(t, int64(1), b.Sessions)
		bucketSessions += b.Sessions
	}
	// Bucket session counts over-count relative to the window total.
	require.Greater(t, bucketSessions, acc.Summary().TotalSessions)
}

func TestCyclicalBucketsMergeAcrossDays(t *testing.T) {
	loc := time.UTC
	engine := NewEngine(loc)
	w := models.Window{
		FromTime: ts(2024, 3, 4, 0, 0, loc),
		ToTime:   ts(2024, 3, 6, 0, 0, loc),
	}
	// Two sessions in the same clock hour on different days fold into
	// one hour-of-day bucket.
	normalized := engine.NormalizeAll([]models.Interval{
		interval(1, "A", "D1", ts(2024, 3, 4, 9, 0, loc), ts(2024, 3, 4, 9, 30, loc)),
		interval(2, "B", "D1", ts(2024, 3, 5, 9, 15, loc), ts(2024, 3, 5, 9, 45, loc)),
	}, w)

	acc := engine.Fold(normalized, w, models.GranularityHourOfDay)
	buckets := acc.Buckets()
	require.Len(t, buckets, 1)
	require.Equal(t, "09", buckets[0].Key)
	require.Equal(t, int64(3600), buckets[0].DwellSeconds)
	require.Equal(t, int64(2), buckets[0].Sessions)
	require.Equal(t, 2, buckets[0].UniqueEntities)
}

func TestFoldIsIdempotent(t *testing.T) {
	loc := time.UTC
	engine := NewEngine(loc)
	w := models.Window{
		FromTime: ts(2024, 3, 1, 0, 0, loc),
		ToTime:   ts(2024, 3, 31, 0, 0, loc),
	}
	normalized := engine.NormalizeAll([]models.Interval{
		interval(1, "A", "D1", ts(2024, 3, 4, 9, 0, loc), ts(2024, 3, 4, 17, 0, loc)),
		interval(2, "B", "D2", ts(2024, 3, 9, 22, 0, loc), ts(2024, 3, 10, 6, 0, loc)),
		interval(3, "A", "D2", ts(2024, 3, 15, 8, 0, loc), ts(2024, 3, 15, 8, 45, loc)),
	}, w)

	first := engine.Fold(normalized, w, models.GranularityDay)
	second := engine.Fold(normalized, w, models.GranularityDay)
	require.Equal(t, first.Buckets(), second.Buckets())
	require.Equal(t, first.Summary(), second.Summary())
	require.Equal(t, first.Stats(), second.Stats())
	require.Equal(t, first.Peak(), second.Peak())
}

func TestPeakBucket(t *testing.T) {
	loc := time.UTC
	engine := NewEngine(loc)
	w := models.Window{
		FromTime: ts(2024, 3, 4, 0, 0, loc),
		ToTime:   ts(2024, 3, 7, 0, 0, loc),
	}
	// Day 2 has two distinct entities, days 1 and 3 one each.
	normalized := engine.NormalizeAll([]models.Interval{
		interval(1, "A", "D1", ts(2024, 3, 4, 9, 0, loc), ts(2024, 3, 4, 10, 0, loc)),
		interval(2, "A", "D1", ts(2024, 3, 5, 9, 0, loc), ts(2024, 3, 5, 10, 0, loc)),
		interval(3, "B", "D1", ts(2024, 3, 5, 11, 0, loc), ts(2024, 3, 5, 12, 0, loc)),
		interval(4, "B", "D1", ts(2024, 3, 6, 9, 0, loc), ts(2024, 3, 6, 10, 0, loc)),
	}, w)

	peak := engine.Fold(normalized, w, models.GranularityDay).Peak()
	require.NotNil(t, peak)
	require.Equal(t, "2024-03-05", peak.Key)
	require.Equal(t, 2, peak.UniqueEntities)
}

func TestPeakTieBreaksOnEarliestBucket(t *testing.T) {
	loc := time.UTC
	engine := NewEngine(loc)
	w := models.Window{
		FromTime: ts(2024, 3, 4, 0, 0, loc),
		ToTime:   ts(2024, 3, 6, 0, 0, loc),
	}
	normalized := engine.NormalizeAll([]models.Interval{
		interval(1, "A", "D1", ts(2024, 3, 4, 9, 0, loc), ts(2024, 3, 4, 10, 0, loc)),
		interval(2, "A", "D1", ts(2024, 3, 5, 9, 0, loc), ts(2024, 3, 5, 10, 0, loc)),
	}, w)

	peak := engine.Fold(normalized, w, models.GranularityDay).Peak()
	require.NotNil(t, peak)
	require.Equal(t, "2024-03-04", peak.Key)
}

func TestEmptyAccumulator(t *testing.T) {
	engine := NewEngine(time.UTC)
	w := models.Window{FromTime: 0, ToTime: 86400}

	acc := engine.Fold(nil, w, models.GranularityDay)
	require.Empty(t, acc.Buckets())
	require.Nil(t, acc.Peak())

	summary := acc.Summary()
	require.Equal(t, int64(0), summary.TotalSessions)
	require.Equal(t, int64(0), summary.TotalDwellSeconds)
	require.Equal(t, 0, summary.UniqueEntities)
	require.Nil(t, summary.AvgDwellSeconds)

	stats := acc.Stats()
	require.Nil(t, stats.P50DwellSeconds)
	require.Nil(t, stats.P95DwellSeconds)
}

func TestMinDurationFiltersShortSessions(t *testing.T) {
	loc := time.UTC
	engine := NewEngine(loc)
	w := models.Window{
		FromTime:           ts(2024, 3, 4, 0, 0, loc),
		ToTime:             ts(2024, 3, 5, 0, 0, loc),
		MinDurationSeconds: 60,
	}
	normalized := engine.NormalizeAll([]models.Interval{
		interval(1, "A", "D1", ts(2024, 3, 4, 9, 0, loc), ts(2024, 3, 4, 9, 0, loc)+30),
		interval(2, "B", "D1", ts(2024, 3, 4, 10, 0, loc), ts(2024, 3, 4, 11, 0, loc)),
	}, w)
	require.Len(t, normalized, 1)
	require.Equal(t, "B", normalized[0].EntityID)

	summary := engine.Fold(normalized, w, models.GranularityDay).Summary()
	require.Equal(t, int64(1), summary.TotalSessions)
	require.Equal(t, 1, summary.UniqueEntities)
}

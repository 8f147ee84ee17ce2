package report

import (
	"fmt"
	"strconv"
	"time"

	"github.com/tiUlisses/securityvision-presence-backend/internal/models"
)

// BucketSpan is one sub-span of an interval attributed to a single
// bucket. For calendar and fixed-width granularities Start is the
// bucket's unix start; for cyclical granularities it is the bucket
// ordinal (hour 0-23, weekday 0-6).
type BucketSpan struct {
	Key     string
	Start   int64
	Seconds int64
}

// Assign partitions a normalized interval at the bucket boundaries of
// the granularity and returns one span per touched bucket. The span
// durations sum exactly to the interval's clipped duration. Boundaries
// are left-closed: a session starting exactly on a boundary belongs to
// the bucket it enters.
func Assign(iv models.Interval, w models.Window, g models.Granularity, loc *time.Location) []BucketSpan {
	if iv.EndTime == nil {
		return nil
	}

	var spans []BucketSpan
	cur := iv.StartTime
	end := *iv.EndTime

	for cur < end {
		next := nextBoundary(cur, w, g, loc)
		if next > end {
			next = end
		}
		key, start := bucketKey(cur, w, g, loc)
		spans = append(spans, BucketSpan{Key: key, Start: start, Seconds: next - cur})
		cur = next
	}

	return spans
}

// nextBoundary returns the unix timestamp of the first bucket boundary
// strictly after ts.
func nextBoundary(ts int64, w models.Window, g models.Granularity, loc *time.Location) int64 {
	if g == models.GranularityHour {
		// Fixed-width buckets anchored to the window start, independent
		// of the calendar.
		idx := (ts - w.FromTime) / 3600
		return w.FromTime + (idx+1)*3600
	}

	t := time.Unix(ts, 0).In(loc)
	y, m, d := t.Date()

	switch g {
	case models.GranularityHourOfDay:
		return time.Date(y, m, d, t.Hour()+1, 0, 0, 0, loc).Unix()
	case models.GranularityDay, models.GranularityDayOfWeek:
		return time.Date(y, m, d+1, 0, 0, 0, 0, loc).Unix()
	case models.GranularityWeek:
		days := (8 - int(t.Weekday())) % 7
		if days == 0 {
			days = 7
		}
		return time.Date(y, m, d+days, 0, 0, 0, 0, loc).Unix()
	case models.GranularityMonth:
		return time.Date(y, m+1, 1, 0, 0, 0, 0, loc).Unix()
	case models.GranularityYear:
		return time.Date(y+1, 1, 1, 0, 0, 0, 0, loc).Unix()
	}

	return w.ToTime
}

// bucketKey returns the bucket key and ordering start for the bucket
// containing ts.
func bucketKey(ts int64, w models.Window, g models.Granularity, loc *time.Location) (string, int64) {
	if g == models.GranularityHour {
		idx := (ts - w.FromTime) / 3600
		start := w.FromTime + idx*3600
		return time.Unix(start, 0).In(loc).Format("2006-01-02T15:04"), start
	}

	t := time.Unix(ts, 0).In(loc)
	y, m, d := t.Date()

	switch g {
	case models.GranularityHourOfDay:
		return fmt.Sprintf("%02d", t.Hour()), int64(t.Hour())
	case models.GranularityDayOfWeek:
		return strconv.Itoa(int(t.Weekday())), int64(t.Weekday())
	case models.GranularityDay:
		start := time.Date(y, m, d, 0, 0, 0, 0, loc)
		return start.Format("2006-01-02"), start.Unix()
	case models.GranularityWeek:
		// Weeks start on Monday.
		back := (int(t.Weekday()) + 6) % 7
		start := time.Date(y, m, d-back, 0, 0, 0, 0, loc)
		return start.Format("2006-01-02"), start.Unix()
	case models.GranularityMonth:
		start := time.Date(y, m, 1, 0, 0, 0, 0, loc)
		return start.Format("2006-01"), start.Unix()
	case models.GranularityYear:
		start := time.Date(y, 1, 1, 0, 0, 0, 0, loc)
		return start.Format("2006"), start.Unix()
	}

	return "", ts
}

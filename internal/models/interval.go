package models

// Interval represents a dwell session of a tracked entity at a gateway.
// The span is half-open [StartTime, EndTime); EndTime is nil while the
// session is still in progress.
type Interval struct {
	ID          int64  `json:"id" db:"id"`
	EntityID    string `json:"entityId" db:"entity_id"`   // Tag UUID
	DeviceID    string `json:"deviceId" db:"device_id"`   // Gateway UUID
	StartTime   int64  `json:"startTime" db:"start_ts"`   // Unix timestamp
	EndTime     *int64 `json:"endTime" db:"end_ts"`       // Unix timestamp, nil if ongoing
	SampleCount int    `json:"sampleCount" db:"sample_count"`
}

// Window represents a half-open query window [FromTime, ToTime).
// MinDurationSeconds drops sessions shorter than the threshold before
// any aggregation happens.
type Window struct {
	FromTime           int64 `json:"fromTime"`
	ToTime             int64 `json:"toTime"`
	MinDurationSeconds int64 `json:"minDurationSeconds,omitempty"`
}

// Valid reports whether the window spans a positive duration and the
// duration filter is non-negative.
func (w Window) Valid() bool {
	return w.ToTime > w.FromTime && w.MinDurationSeconds >= 0
}

// Normalize clips the interval to the window and applies the minimum
// duration filter. It returns the clipped interval and true, or the zero
// value and false when the interval is dropped. An open-ended interval
// is clipped to the window's upper bound. This is the single filtering
// point: no other component re-filters intervals.
func Normalize(iv Interval, w Window) (Interval, bool) {
	start := iv.StartTime
	if start < w.FromTime {
		start = w.FromTime
	}

	end := w.ToTime
	if iv.EndTime != nil && *iv.EndTime < end {
		end = *iv.EndTime
	}

	duration := end - start
	if duration <= 0 || duration < w.MinDurationSeconds {
		return Interval{}, false
	}

	clipped := iv
	clipped.StartTime = start
	clipped.EndTime = &end
	return clipped, true
}

// ClippedDuration returns the duration in seconds of a normalized
// interval. It is only meaningful after Normalize.
func (iv Interval) ClippedDuration() int64 {
	if iv.EndTime == nil {
		return 0
	}
	return *iv.EndTime - iv.StartTime
}

package models

// ReportFilter represents the common query parameters of report
// endpoints.
type ReportFilter struct {
	FromTime    int64       `form:"from"`        // Unix timestamp, inclusive
	ToTime      int64       `form:"to"`          // Unix timestamp, exclusive
	MinDuration int64       `form:"minDuration"` // Seconds
	Granularity Granularity `form:"granularity"`
	Limit       int         `form:"limit"`     // Top-N size
	MaxEvents   int         `form:"maxEvents"` // Alert sample list cap
}

// Window builds the query window from the filter.
func (f ReportFilter) Window() Window {
	return Window{
		FromTime:           f.FromTime,
		ToTime:             f.ToTime,
		MinDurationSeconds: f.MinDuration,
	}
}

// AlertFilter represents filter parameters for listing alert events.
type AlertFilter struct {
	FromTime  int64  `form:"from"`
	ToTime    int64  `form:"to"`
	EventType string `form:"eventType"`
	DeviceID  string `form:"deviceId"`
	EntityID  string `form:"entityId"`
	Limit     int    `form:"limit"`
}

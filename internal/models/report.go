package models

// Granularity selects the temporal partitioning scheme for a time
// distribution report.
type Granularity string

// Granularity constants
const (
	GranularityDay       Granularity = "day"       // Calendar days
	GranularityWeek      Granularity = "week"      // Calendar weeks (Monday start)
	GranularityMonth     Granularity = "month"     // Calendar months
	GranularityYear      Granularity = "year"      // Calendar years
	GranularityHourOfDay Granularity = "hourOfDay" // Cyclical, 00-23
	GranularityDayOfWeek Granularity = "dayOfWeek" // Cyclical, 0=Sunday..6=Saturday
	GranularityHour      Granularity = "hour"      // Fixed-width hour buckets over the window span
)

// ValidGranularity reports whether g is a supported granularity.
func ValidGranularity(g Granularity) bool {
	switch g {
	case GranularityDay, GranularityWeek, GranularityMonth, GranularityYear,
		GranularityHourOfDay, GranularityDayOfWeek, GranularityHour:
		return true
	}
	return false
}

// Scope constants
const (
	ScopePerson   = "person"
	ScopeGroup    = "group"
	ScopeGateway  = "gateway"
	ScopeBuilding = "building"
)

// BucketRollup holds the per-bucket aggregates of one time bucket.
// Bucket dwell figures are not additive back to the window summary:
// a session crossing a bucket boundary is counted in every bucket it
// touches.
type BucketRollup struct {
	Key            string `json:"key"`
	BucketStart    int64  `json:"bucketStart"` // Unix timestamp; bucket ordinal for cyclical granularities
	DwellSeconds   int64  `json:"dwellSeconds"`
	Sessions       int64  `json:"sessions"`
	UniqueEntities int    `json:"uniqueEntities"`
}

// WindowSummary holds the window-level aggregates, computed once over
// the normalized interval set and independent of any bucketization.
type WindowSummary struct {
	TotalSessions     int64    `json:"totalSessions"`
	TotalDwellSeconds int64    `json:"totalDwellSeconds"`
	UniqueEntities    int      `json:"uniqueEntities"`
	AvgDwellSeconds   *float64 `json:"avgDwellSeconds"` // nil when no sessions
}

// DwellStats holds percentile statistics over per-session clipped
// durations. Values are nil when the sample set is empty.
type DwellStats struct {
	P50DwellSeconds *int64 `json:"p50DwellSeconds"`
	P95DwellSeconds *int64 `json:"p95DwellSeconds"`
}

// EntityRank is one entry of a deterministic top-N ranking.
type EntityRank struct {
	ID           string `json:"id"`
	Name         string `json:"name,omitempty"`
	DwellSeconds int64  `json:"dwellSeconds"`
	Sessions     int64  `json:"sessions"`
}

// OverviewReport summarizes presence across all gateways for a window.
type OverviewReport struct {
	Window       Window        `json:"window"`
	Summary      WindowSummary `json:"summary"`
	UniquePeople int           `json:"uniquePeople"`
	TotalAlerts  int64         `json:"totalAlerts"`
	TopGateways  []EntityRank  `json:"topGateways"`
}

// PersonSummaryReport summarizes one person's presence for a window.
type PersonSummaryReport struct {
	Person        Person        `json:"person"`
	Window        Window        `json:"window"`
	Summary       WindowSummary `json:"summary"`
	DwellByDevice []EntityRank  `json:"dwellByDevice"`
}

// GroupSummaryReport summarizes a group's presence for a window.
type GroupSummaryReport struct {
	Group         PersonGroup   `json:"group"`
	Window        Window        `json:"window"`
	Summary       WindowSummary `json:"summary"`
	UniquePeople  int           `json:"uniquePeople"`
	DwellByPerson []EntityRank  `json:"dwellByPerson"`
}

// TimeDistributionReport holds a bucketized rollup for a scope under
// one granularity.
type TimeDistributionReport struct {
	Scope       string         `json:"scope"`
	ScopeID     string         `json:"scopeId"`
	Window      Window         `json:"window"`
	Granularity Granularity    `json:"granularity"`
	Summary     WindowSummary  `json:"summary"`
	Buckets     []BucketRollup `json:"buckets"`
}

// GatewayHourDistribution is one gateway's hour-of-day rollup inside an
// hour-by-gateway report.
type GatewayHourDistribution struct {
	DeviceID     string         `json:"deviceId"`
	DeviceName   string         `json:"deviceName"`
	DwellSeconds int64          `json:"dwellSeconds"`
	Sessions     int64          `json:"sessions"`
	Buckets      []BucketRollup `json:"buckets"`
}

// HourByGatewayReport holds per-gateway hour-of-day rollups for a
// person or group scope.
type HourByGatewayReport struct {
	Scope    string                    `json:"scope"`
	ScopeID  string                    `json:"scopeId"`
	Window   Window                    `json:"window"`
	Summary  WindowSummary             `json:"summary"`
	Gateways []GatewayHourDistribution `json:"gateways"`
}

// AlertsReport summarizes alert events for a scope and window.
// Events is a sample list capped at the requested maximum, sorted most
// recent first; the cap never affects TotalAlerts.
type AlertsReport struct {
	Scope          string           `json:"scope"`
	ScopeID        string           `json:"scopeId"`
	Window         Window           `json:"window"`
	TotalAlerts    int64            `json:"totalAlerts"`
	CountsByType   map[string]int64 `json:"countsByType"`
	CountsByDevice map[string]int64 `json:"countsByDevice,omitempty"`
	FirstAlertAt   *int64           `json:"firstAlertAt"`
	LastAlertAt    *int64           `json:"lastAlertAt"`
	Events         []AlertEvent     `json:"events"`
}

// GatewaySummaryReport summarizes usage of one gateway for a window.
type GatewaySummaryReport struct {
	Device  Device        `json:"device"`
	Window  Window        `json:"window"`
	Summary WindowSummary `json:"summary"`
	Stats   DwellStats    `json:"stats"`
}

// OccupancyReport holds fixed-width hour-bucket occupancy for one
// gateway, with the peak bucket and duration percentiles.
type OccupancyReport struct {
	Device  Device         `json:"device"`
	Window  Window         `json:"window"`
	Summary WindowSummary  `json:"summary"`
	Stats   DwellStats     `json:"stats"`
	Buckets []BucketRollup `json:"buckets"`
	Peak    *BucketRollup  `json:"peak"` // nil when no sessions
}

// BuildingSummaryReport summarizes presence across a building, with two
// top-gateway rankings local to the building.
type BuildingSummaryReport struct {
	Building              Building      `json:"building"`
	Window                Window        `json:"window"`
	Summary               WindowSummary `json:"summary"`
	TopGatewaysBySessions []EntityRank  `json:"topGatewaysBySessions"`
	TopGatewaysByDwell    []EntityRank  `json:"topGatewaysByDwell"`
}

package models

// AlertEvent represents a discrete alert raised for an entity at a
// gateway. Structurally an interval with a classification tag, but it is
// counted as a whole occurrence, never duration-weighted.
type AlertEvent struct {
	ID        string `json:"id" db:"id"`
	EventType string `json:"eventType" db:"event_type"`
	EntityID  string `json:"entityId" db:"entity_id"`
	DeviceID  string `json:"deviceId" db:"device_id"`
	StartTime int64  `json:"startTime" db:"start_ts"`
	EndTime   *int64 `json:"endTime" db:"end_ts"`
}

// EventType constants
const (
	EventTypeLowBattery  = "LOW_BATTERY"
	EventTypeManDown     = "MAN_DOWN"
	EventTypePanicButton = "PANIC_BUTTON"
	EventTypeNoMovement  = "NO_MOVEMENT"
	EventTypeZoneBreach  = "ZONE_BREACH"
	EventTypeTagOffline  = "TAG_OFFLINE"
)

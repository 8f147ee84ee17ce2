package report

import (
	"sort"

	"github.com/tiUlisses/securityvision-presence-backend/internal/models"
)

// AlertRollup summarizes a set of alert events. Events are counted as
// whole occurrences; there is no duration weighting and no
// bucketization.
type AlertRollup struct {
	Total          int64
	CountsByType   map[string]int64
	CountsByDevice map[string]int64
	FirstAlertAt   *int64
	LastAlertAt    *int64
	Events         []models.AlertEvent
}

// RollupAlerts classifies alert events by type and, when byDevice is
// set, by device. First/last timestamps are the min/max StartTime of
// the set. The returned Events list is sorted by StartTime descending
// (most recent first) and capped at maxEvents; the cap never affects
// Total. A maxEvents of zero or less means no cap.
func RollupAlerts(events []models.AlertEvent, maxEvents int, byDevice bool) AlertRollup {
	r := AlertRollup{
		Total:        int64(len(events)),
		CountsByType: make(map[string]int64),
	}
	if byDevice {
		r.CountsByDevice = make(map[string]int64)
	}

	for _, ev := range events {
		r.CountsByType[ev.EventType]++
		if byDevice {
			r.CountsByDevice[ev.DeviceID]++
		}
		if r.FirstAlertAt == nil || ev.StartTime < *r.FirstAlertAt {
			ts := ev.StartTime
			r.FirstAlertAt = &ts
		}
		if r.LastAlertAt == nil || ev.StartTime > *r.LastAlertAt {
			ts := ev.StartTime
			r.LastAlertAt = &ts
		}
	}

	sorted := make([]models.AlertEvent, len(events))
	copy(sorted, events)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].StartTime != sorted[j].StartTime {
			return sorted[i].StartTime > sorted[j].StartTime
		}
		return sorted[i].ID < sorted[j].ID
	})

	if maxEvents > 0 && len(sorted) > maxEvents {
		sorted = sorted[:maxEvents]
	}
	r.Events = sorted

	return r
}

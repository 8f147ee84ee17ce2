package report

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tiUlisses/securityvision-presence-backend/internal/models"
)

func alertEvent(id, eventType, device string, start int64) models.AlertEvent {
	return models.AlertEvent{ID: id, EventType: eventType, EntityID: "E", DeviceID: device, StartTime: start}
}

func TestRollupAlerts(t *testing.T) {
	events := []models.AlertEvent{
		alertEvent("a1", models.EventTypeLowBattery, "D1", 100),
		alertEvent("a2", models.EventTypePanicButton, "D2", 300),
		alertEvent("a3", models.EventTypeLowBattery, "D1", 200),
	}

	r := RollupAlerts(events, 0, true)
	require.Equal(t, int64(3), r.Total)
	require.Equal(t, int64(2), r.CountsByType[models.EventTypeLowBattery])
	require.Equal(t, int64(1), r.CountsByType[models.EventTypePanicButton])
	require.Equal(t, int64(2), r.CountsByDevice["D1"])
	require.Equal(t, int64(1), r.CountsByDevice["D2"])
	require.NotNil(t, r.FirstAlertAt)
	require.Equal(t, int64(100), *r.FirstAlertAt)
	require.NotNil(t, r.LastAlertAt)
	require.Equal(t, int64(300), *r.LastAlertAt)

	// Most recent first, id ascending on equal timestamps.
	require.Len(t, r.Events, 3)
	require.Equal(t, "a2", r.Events[0].ID)
	require.Equal(t, "a3", r.Events[1].ID)
	require.Equal(t, "a1", r.Events[2].ID)
}

func TestRollupAlertsCapDoesNotAffectTotal(t *testing.T) {
	events := []models.AlertEvent{
		alertEvent("a1", models.EventTypeManDown, "D1", 10),
		alertEvent("a2", models.EventTypeManDown, "D1", 20),
		alertEvent("a3", models.EventTypeManDown, "D1", 30),
	}

	r := RollupAlerts(events, 2, false)
	require.Equal(t, int64(3), r.Total)
	require.Equal(t, int64(3), r.CountsByType[models.EventTypeManDown])
	require.Len(t, r.Events, 2)
	require.Equal(t, "a3", r.Events[0].ID)
	require.Equal(t, "a2", r.Events[1].ID)
	require.Nil(t, r.CountsByDevice)
}

func TestRollupAlertsTimestampTie(t *testing.T) {
	events := []models.AlertEvent{
		alertEvent("b", models.EventTypeZoneBreach, "D1", 100),
		alertEvent("a", models.EventTypeZoneBreach, "D2", 100),
	}

	r := RollupAlerts(events, 0, false)
	require.Equal(t, "a", r.Events[0].ID)
	require.Equal(t, "b", r.Events[1].ID)
}

func TestRollupAlertsEmpty(t *testing.T) {
	r := RollupAlerts(nil, 10, true)
	require.Equal(t, int64(0), r.Total)
	require.Empty(t, r.CountsByType)
	require.Empty(t, r.CountsByDevice)
	require.Nil(t, r.FirstAlertAt)
	require.Nil(t, r.LastAlertAt)
	require.Empty(t, r.Events)
}

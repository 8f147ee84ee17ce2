package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tiUlisses/securityvision-presence-backend/internal/database"
	"github.com/tiUlisses/securityvision-presence-backend/internal/models"
)

func testAlertRepo(t *testing.T) *AlertRepository {
	t.Helper()
	db, err := database.Open(filepath.Join(t.TempDir(), "presence.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := NewAlertRepository(db)
	ctx := context.Background()
	for _, ev := range []models.AlertEvent{
		{ID: "a1", EventType: models.EventTypeLowBattery, EntityID: "T1", DeviceID: "D1", StartTime: 100},
		{ID: "a2", EventType: models.EventTypePanicButton, EntityID: "T2", DeviceID: "D2", StartTime: 200},
		{ID: "a3", EventType: models.EventTypeLowBattery, EntityID: "T1", DeviceID: "D2", StartTime: 300},
	} {
		_, err := repo.CreateAlert(ctx, ev)
		require.NoError(t, err)
	}
	return repo
}

func TestGetAlertsWindow(t *testing.T) {
	repo := testAlertRepo(t)
	ctx := context.Background()

	// Half-open window on the start timestamp.
	got, err := repo.GetAlerts(ctx, models.Window{FromTime: 100, ToTime: 300}, ScopeFilter{})
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "a2", got[0].ID)
	require.Equal(t, "a1", got[1].ID)

	got, err = repo.GetAlerts(ctx, models.Window{FromTime: 100, ToTime: 300}, ScopeFilter{EntityIDs: []string{"T1"}})
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "a1", got[0].ID)
}

func TestListAlerts(t *testing.T) {
	repo := testAlertRepo(t)
	ctx := context.Background()

	got, err := repo.ListAlerts(ctx, models.AlertFilter{EventType: models.EventTypeLowBattery})
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "a3", got[0].ID)

	got, err = repo.ListAlerts(ctx, models.AlertFilter{DeviceID: "D2", Limit: 1})
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "a3", got[0].ID)
}

func TestCreateAlertGeneratesID(t *testing.T) {
	repo := testAlertRepo(t)

	id, err := repo.CreateAlert(context.Background(), models.AlertEvent{
		EventType: models.EventTypeManDown, EntityID: "T3", DeviceID: "D1", StartTime: 400,
	})
	require.NoError(t, err)
	require.NotEmpty(t, id)
}

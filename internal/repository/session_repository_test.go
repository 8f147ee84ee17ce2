package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tiUlisses/securityvision-presence-backend/internal/database"
	"github.com/tiUlisses/securityvision-presence-backend/internal/models"
)

func int64Ptr(v int64) *int64 { return &v }

func testDB(t *testing.T) *SessionRepository {
	t.Helper()
	db, err := database.Open(filepath.Join(t.TempDir(), "presence.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewSessionRepository(db)
}

func TestGetSessionsOverlapSemantics(t *testing.T) {
	repo := testDB(t)
	ctx := context.Background()

	sessions := []models.Interval{
		{EntityID: "T1", DeviceID: "D1", StartTime: 100, EndTime: int64Ptr(200)},  // before window
		{EntityID: "T1", DeviceID: "D1", StartTime: 900, EndTime: int64Ptr(1100)}, // straddles lower bound
		{EntityID: "T2", DeviceID: "D1", StartTime: 1200, EndTime: int64Ptr(1300)},
		{EntityID: "T2", DeviceID: "D2", StartTime: 1900, EndTime: int64Ptr(2500)}, // straddles upper bound
		{EntityID: "T3", DeviceID: "D2", StartTime: 2000, EndTime: int64Ptr(2100)}, // at window end, excluded
		{EntityID: "T3", DeviceID: "D1", StartTime: 1500, EndTime: nil},            // still open
	}
	for _, iv := range sessions {
		_, err := repo.CreateSession(ctx, iv)
		require.NoError(t, err)
	}

	w := models.Window{FromTime: 1000, ToTime: 2000}
	got, err := repo.GetSessions(ctx, w, ScopeFilter{})
	require.NoError(t, err)
	require.Len(t, got, 4)
	// Ordered by start timestamp.
	require.Equal(t, int64(900), got[0].StartTime)
	require.Equal(t, int64(1200), got[1].StartTime)
	require.Equal(t, int64(1500), got[2].StartTime)
	require.Nil(t, got[2].EndTime)
	require.Equal(t, int64(1900), got[3].StartTime)
}

func TestGetSessionsScopeFilter(t *testing.T) {
	repo := testDB(t)
	ctx := context.Background()

	for _, iv := range []models.Interval{
		{EntityID: "T1", DeviceID: "D1", StartTime: 100, EndTime: int64Ptr(200)},
		{EntityID: "T2", DeviceID: "D1", StartTime: 100, EndTime: int64Ptr(200)},
		{EntityID: "T1", DeviceID: "D2", StartTime: 100, EndTime: int64Ptr(200)},
	} {
		_, err := repo.CreateSession(ctx, iv)
		require.NoError(t, err)
	}

	w := models.Window{FromTime: 0, ToTime: 1000}

	got, err := repo.GetSessions(ctx, w, ScopeFilter{EntityIDs: []string{"T1"}})
	require.NoError(t, err)
	require.Len(t, got, 2)

	got, err = repo.GetSessions(ctx, w, ScopeFilter{EntityIDs: []string{"T1"}, DeviceIDs: []string{"D2"}})
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "D2", got[0].DeviceID)

	got, err = repo.GetSessions(ctx, w, ScopeFilter{EntityIDs: []string{"T9"}})
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestCloseSession(t *testing.T) {
	repo := testDB(t)
	ctx := context.Background()

	id, err := repo.CreateSession(ctx, models.Interval{EntityID: "T1", DeviceID: "D1", StartTime: 100})
	require.NoError(t, err)

	require.NoError(t, repo.CloseSession(ctx, id, 500))

	got, err := repo.GetSessions(ctx, models.Window{FromTime: 0, ToTime: 1000}, ScopeFilter{})
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.NotNil(t, got[0].EndTime)
	require.Equal(t, int64(500), *got[0].EndTime)

	// Closing an already closed session is a not-found.
	err = repo.CloseSession(ctx, id, 600)
	require.ErrorIs(t, err, models.ErrNotFound)
}

package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/tiUlisses/securityvision-presence-backend/internal/models"
)

// ScopeFilter narrows a store fetch to a set of entities and/or
// devices. Empty slices mean no restriction on that axis.
type ScopeFilter struct {
	EntityIDs []string
	DeviceIDs []string
}

// SessionRepository implements the session-store boundary over sqlite.
// Fetches return a bounded, materialized sequence; window and scope
// predicates are pushed into SQL.
type SessionRepository struct {
	db *sql.DB
}

// NewSessionRepository creates a new session repository.
func NewSessionRepository(db *sql.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// GetSessions retrieves dwell sessions overlapping the half-open
// window, filtered by scope. Sessions still in progress (end_ts NULL)
// are included when they started before the window's upper bound.
func (r *SessionRepository) GetSessions(ctx context.Context, w models.Window, f ScopeFilter) ([]models.Interval, error) {
	query := `SELECT id, entity_id, device_id, start_ts, end_ts, sample_count
		FROM dwell_sessions
		WHERE start_ts < ? AND (end_ts IS NULL OR end_ts > ?)`
	args := []interface{}{w.ToTime, w.FromTime}

	if len(f.EntityIDs) > 0 {
		query += " AND entity_id IN (" + placeholders(len(f.EntityIDs)) + ")"
		for _, id := range f.EntityIDs {
			args = append(args, id)
		}
	}
	if len(f.DeviceIDs) > 0 {
		query += " AND device_id IN (" + placeholders(len(f.DeviceIDs)) + ")"
		for _, id := range f.DeviceIDs {
			args = append(args, id)
		}
	}
	query += " ORDER BY start_ts"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query dwell sessions: %v", models.ErrUpstreamUnavailable, err)
	}
	defer rows.Close()

	var sessions []models.Interval
	for rows.Next() {
		var iv models.Interval
		var end sql.NullInt64
		if err := rows.Scan(&iv.ID, &iv.EntityID, &iv.DeviceID, &iv.StartTime, &end, &iv.SampleCount); err != nil {
			return nil, fmt.Errorf("%w: failed to scan dwell session: %v", models.ErrUpstreamUnavailable, err)
		}
		if end.Valid {
			iv.EndTime = &end.Int64
		}
		sessions = append(sessions, iv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: error iterating dwell sessions: %v", models.ErrUpstreamUnavailable, err)
	}

	return sessions, nil
}

// CreateSession inserts a dwell session and returns its id.
func (r *SessionRepository) CreateSession(ctx context.Context, iv models.Interval) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO dwell_sessions (entity_id, device_id, start_ts, end_ts, sample_count)
		 VALUES (?, ?, ?, ?, ?)`,
		iv.EntityID, iv.DeviceID, iv.StartTime, nullableInt64(iv.EndTime), iv.SampleCount,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert dwell session: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read session id: %w", err)
	}
	return id, nil
}

// CloseSession sets the end timestamp of an open session.
func (r *SessionRepository) CloseSession(ctx context.Context, id int64, endTS int64) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE dwell_sessions SET end_ts = ? WHERE id = ? AND end_ts IS NULL", endTS, id)
	if err != nil {
		return fmt.Errorf("failed to close dwell session: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: open session %d", models.ErrNotFound, id)
	}
	return nil
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}

func nullableInt64(v *int64) interface{} {
	if v == nil {
		return nil
	}
	return *v
}

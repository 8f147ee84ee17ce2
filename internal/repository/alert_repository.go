package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/tiUlisses/securityvision-presence-backend/internal/models"
)

// AlertRepository handles database operations for alert events.
type AlertRepository struct {
	db *sql.DB
}

// NewAlertRepository creates a new alert repository.
func NewAlertRepository(db *sql.DB) *AlertRepository {
	return &AlertRepository{db: db}
}

// GetAlerts retrieves alert events whose start falls in the half-open
// window, filtered by scope.
func (r *AlertRepository) GetAlerts(ctx context.Context, w models.Window, f ScopeFilter) ([]models.AlertEvent, error) {
	query := `SELECT id, event_type, entity_id, device_id, start_ts, end_ts
		FROM alert_events
		WHERE start_ts >= ? AND start_ts < ?`
	args := []interface{}{w.FromTime, w.ToTime}

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
	query += " ORDER BY start_ts DESC"

	return r.scanAlerts(ctx, query, args)
}

// ListAlerts retrieves alert events with listing filters, most recent
// first.
func (r *AlertRepository) ListAlerts(ctx context.Context, f models.AlertFilter) ([]models.AlertEvent, error) {
	query := `SELECT id, event_type, entity_id, device_id, start_ts, end_ts
		FROM alert_events WHERE 1=1`
	var args []interface{}

	if f.FromTime > 0 {
		query += " AND start_ts >= ?"
		args = append(args, f.FromTime)
	}
	if f.ToTime > 0 {
		query += " AND start_ts < ?"
		args = append(args, f.ToTime)
	}
	if f.EventType != "" {
		query += " AND event_type = ?"
		args = append(args, f.EventType)
	}
	if f.DeviceID != "" {
		query += " AND device_id = ?"
		args = append(args, f.DeviceID)
	}
	if f.EntityID != "" {
		query += " AND entity_id = ?"
		args = append(args, f.EntityID)
	}

	query += " ORDER BY start_ts DESC"
	if f.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, f.Limit)
	}

	return r.scanAlerts(ctx, query, args)
}

// CreateAlert inserts an alert event, generating an id when absent.
func (r *AlertRepository) CreateAlert(ctx context.Context, ev models.AlertEvent) (string, error) {
	if ev.ID == "" {
		ev.ID = uuid.NewString()
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO alert_events (id, event_type, entity_id, device_id, start_ts, end_ts)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		ev.ID, ev.EventType, ev.EntityID, ev.DeviceID, ev.StartTime, nullableInt64(ev.EndTime),
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert alert event: %w", err)
	}
	return ev.ID, nil
}

func (r *AlertRepository) scanAlerts(ctx context.Context, query string, args []interface{}) ([]models.AlertEvent, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query alert events: %v", models.ErrUpstreamUnavailable, err)
	}
	defer rows.Close()

	var events []models.AlertEvent
	for rows.Next() {
		var ev models.AlertEvent
		var end sql.NullInt64
		if err := rows.Scan(&ev.ID, &ev.EventType, &ev.EntityID, &ev.DeviceID, &ev.StartTime, &end); err != nil {
			return nil, fmt.Errorf("%w: failed to scan alert event: %v", models.ErrUpstreamUnavailable, err)
		}
		if end.Valid {
			ev.EndTime = &end.Int64
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: error iterating alert events: %v", models.ErrUpstreamUnavailable, err)
	}

	return events, nil
}

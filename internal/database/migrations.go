package database

import (
	"database/sql"
	"fmt"
	"log"
)

// Migration represents one schema migration.
type Migration struct {
	Version int
	Name    string
	SQL     string
}

var migrations = []Migration{
	{
		Version: 1,
		Name:    "directory_tables",
		SQL: `
			CREATE TABLE IF NOT EXISTS buildings (
				id   TEXT PRIMARY KEY,
				name TEXT NOT NULL
			);
			CREATE TABLE IF NOT EXISTS floors (
				id          TEXT PRIMARY KEY,
				name        TEXT NOT NULL,
				building_id TEXT NOT NULL REFERENCES buildings(id)
			);
			CREATE TABLE IF NOT EXISTS devices (
				id            TEXT PRIMARY KEY,
				name          TEXT NOT NULL,
				mac_address   TEXT NOT NULL DEFAULT '',
				floor_id      TEXT NOT NULL REFERENCES floors(id),
				floor_plan_id TEXT NOT NULL DEFAULT ''
			);
			CREATE TABLE IF NOT EXISTS people (
				id   TEXT PRIMARY KEY,
				name TEXT NOT NULL
			);
			CREATE TABLE IF NOT EXISTS tags (
				id        TEXT PRIMARY KEY,
				person_id TEXT NOT NULL REFERENCES people(id)
			);
			CREATE TABLE IF NOT EXISTS person_groups (
				id   TEXT PRIMARY KEY,
				name TEXT NOT NULL
			);
			CREATE TABLE IF NOT EXISTS group_members (
				group_id  TEXT NOT NULL REFERENCES person_groups(id),
				person_id TEXT NOT NULL REFERENCES people(id),
				PRIMARY KEY (group_id, person_id)
			);
		`,
	},
	{
		Version: 2,
		Name:    "dwell_sessions",
		SQL: `
			CREATE TABLE IF NOT EXISTS dwell_sessions (
				id           INTEGER PRIMARY KEY AUTOINCREMENT,
				entity_id    TEXT NOT NULL,
				device_id    TEXT NOT NULL,
				start_ts     INTEGER NOT NULL,
				end_ts       INTEGER,
				sample_count INTEGER NOT NULL DEFAULT 0
			);
			CREATE INDEX IF NOT EXISTS idx_sessions_device_start ON dwell_sessions(device_id, start_ts);
			CREATE INDEX IF NOT EXISTS idx_sessions_entity_start ON dwell_sessions(entity_id, start_ts);
			CREATE INDEX IF NOT EXISTS idx_sessions_start ON dwell_sessions(start_ts);
		`,
	},
	{
		Version: 3,
		Name:    "alert_events",
		SQL: `
			CREATE TABLE IF NOT EXISTS alert_events (
				id         TEXT PRIMARY KEY,
				event_type TEXT NOT NULL,
				entity_id  TEXT NOT NULL,
				device_id  TEXT NOT NULL,
				start_ts   INTEGER NOT NULL,
				end_ts     INTEGER
			);
			CREATE INDEX IF NOT EXISTS idx_alerts_device_start ON alert_events(device_id, start_ts);
			CREATE INDEX IF NOT EXISTS idx_alerts_entity_start ON alert_events(entity_id, start_ts);
			CREATE INDEX IF NOT EXISTS idx_alerts_type ON alert_events(event_type);
		`,
	},
}

// Migrate applies all pending migrations in version order.
func Migrate(db *sql.DB) error {
	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS migrations (
			version    INTEGER PRIMARY KEY,
			name       TEXT NOT NULL,
			applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	applied, err := appliedVersions(db)
	if err != nil {
		return err
	}

	for _, m := range migrations {
		if applied[m.Version] {
			continue
		}

		err := Transaction(db, func(tx *sql.Tx) error {
			if _, err := tx.Exec(m.SQL); err != nil {
				return fmt.Errorf("failed to apply migration %d (%s): %w", m.Version, m.Name, err)
			}
			if _, err := tx.Exec("INSERT INTO migrations (version, name) VALUES (?, ?)", m.Version, m.Name); err != nil {
				return fmt.Errorf("failed to record migration %d: %w", m.Version, err)
			}
			return nil
		})
		if err != nil {
			return err
		}

		log.Printf("[Database] Applied migration %d: %s", m.Version, m.Name)
	}

	return nil
}

func appliedVersions(db *sql.DB) (map[int]bool, error) {
	rows, err := db.Query("SELECT version FROM migrations ORDER BY version")
	if err != nil {
		return nil, fmt.Errorf("failed to query migrations: %w", err)
	}
	defer rows.Close()

	applied := make(map[int]bool)
	for rows.Next() {
		var version int
		if err := rows.Scan(&version); err != nil {
			return nil, fmt.Errorf("failed to scan migration version: %w", err)
		}
		applied[version] = true
	}
	return applied, rows.Err()
}

package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// migrations are executed in order on every startup. Statements must be
// idempotent (CREATE IF NOT EXISTS) or tolerated via the duplicate-column
// check below, since the whole list re-runs against existing databases.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS accounts (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		manager_id TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS demands (
		id            TEXT PRIMARY KEY,
		account_id    TEXT NOT NULL REFERENCES accounts(id),
		manager_id    TEXT NOT NULL DEFAULT '',
		title         TEXT NOT NULL,
		description   TEXT NOT NULL DEFAULT '',
		budget_cents  INTEGER,
		creative_link TEXT NOT NULL DEFAULT '',
		due_date      TEXT,
		due_time      TEXT NOT NULL DEFAULT '',
		priority      TEXT NOT NULL DEFAULT 'medium'
		              CHECK(priority IN ('low','medium','high')),
		status        TEXT NOT NULL DEFAULT 'pending'
		              CHECK(status IN ('pending','in_progress','done')),
		created_at    TEXT NOT NULL,
		started_at    TEXT,
		updated_at    TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS demand_events (
		id          TEXT PRIMARY KEY,
		demand_id   TEXT NOT NULL REFERENCES demands(id) ON DELETE CASCADE,
		kind        TEXT NOT NULL,
		from_status TEXT NOT NULL DEFAULT '',
		to_status   TEXT NOT NULL DEFAULT '',
		at          TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_demands_account ON demands(account_id)`,
	`CREATE INDEX IF NOT EXISTS idx_demands_status ON demands(status)`,
	`CREATE INDEX IF NOT EXISTS idx_demand_events_demand ON demand_events(demand_id)`,
}

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

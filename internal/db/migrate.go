package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate applies every schema statement. Statements are idempotent so the
// whole list re-runs on each open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// ALTER TABLE ADD COLUMN has no IF NOT EXISTS form.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS projects (
		id          TEXT PRIMARY KEY,
		short_id    TEXT NOT NULL,
		name        TEXT NOT NULL,
		client      TEXT NOT NULL DEFAULT '',
		status      TEXT NOT NULL DEFAULT 'active'
		            CHECK(status IN ('active','archived')),
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_projects_short_id ON projects(short_id)`,

	`CREATE TABLE IF NOT EXISTS milestones (
		id          TEXT PRIMARY KEY,
		project_id  TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		title       TEXT NOT NULL,
		order_index INTEGER NOT NULL DEFAULT 0,
		due_date    TEXT
	)`,
	`CREATE INDEX IF NOT EXISTS idx_milestones_project ON milestones(project_id)`,

	`CREATE TABLE IF NOT EXISTS tasks (
		id           TEXT PRIMARY KEY,
		milestone_id TEXT NOT NULL REFERENCES milestones(id) ON DELETE CASCADE,
		title        TEXT NOT NULL,
		order_index  INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_milestone ON tasks(milestone_id)`,

	`CREATE TABLE IF NOT EXISTS people (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		created_at TEXT NOT NULL
	)`,

	// One JSON document per project; the engine works on the whole aggregate.
	`CREATE TABLE IF NOT EXISTS project_pricing (
		project_id TEXT PRIMARY KEY,
		status     TEXT NOT NULL
		           CHECK(status IN ('not-priced','in-progress','priced')),
		currency   TEXT NOT NULL,
		document   TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS tracked_projects (
		project_id     TEXT PRIMARY KEY REFERENCES projects(id) ON DELETE CASCADE,
		status         TEXT NOT NULL DEFAULT 'untracked'
		               CHECK(status IN ('untracked','active','closed')),
		contract_value TEXT NOT NULL DEFAULT '0',
		currency       TEXT NOT NULL DEFAULT 'USD',
		activated_at   TEXT,
		closed_at      TEXT,
		updated_at     TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS assignments (
		id         TEXT PRIMARY KEY,
		person_id  TEXT NOT NULL REFERENCES people(id) ON DELETE CASCADE,
		project_id TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		hours      REAL NOT NULL CHECK(hours >= 0),
		cost_rate  TEXT NOT NULL,
		start_date TEXT NOT NULL,
		end_date   TEXT NOT NULL,
		created_at TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_assignments_person ON assignments(person_id)`,
	`CREATE INDEX IF NOT EXISTS idx_assignments_project ON assignments(project_id)`,

	// People gained a job title after the first release.
	`ALTER TABLE people ADD COLUMN title TEXT NOT NULL DEFAULT ''`,
}

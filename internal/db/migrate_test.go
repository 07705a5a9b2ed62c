package db

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db))
}

func TestMigrate_CreatesAllTables(t *testing.T) {
	db := openTestDB(t)

	expected := []string{"projects", "milestones", "tasks", "people", "project_pricing", "tracked_projects", "assignments"}
	for _, table := range expected {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
		assert.Equal(t, table, name)
	}
}

func TestMigrate_CreatesIndexes(t *testing.T) {
	db := openTestDB(t)

	expected := []string{
		"idx_projects_short_id",
		"idx_milestones_project",
		"idx_tasks_milestone",
		"idx_assignments_person",
		"idx_assignments_project",
	}
	for _, idx := range expected {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='index' AND name=?`, idx).Scan(&name)
		require.NoError(t, err, "index %s should exist", idx)
	}
}

func TestMigrate_ForeignKeysEnabled(t *testing.T) {
	db := openTestDB(t)

	var fk int
	require.NoError(t, db.QueryRow(`PRAGMA foreign_keys`).Scan(&fk))
	assert.Equal(t, 1, fk)
}

func TestMigrate_PricingStatusConstraint(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO project_pricing (project_id, status, currency, document, updated_at)
		VALUES ('p1', 'done', 'USD', '{}', '2025-01-01T00:00:00Z')`)
	assert.Error(t, err, "unknown pricing status must be rejected")
}

func TestMigrate_CascadeFromProject(t *testing.T) {
	db := openTestDB(t)
	now := "2025-01-01T00:00:00Z"

	_, err := db.Exec(`INSERT INTO projects (id, short_id, name, created_at, updated_at) VALUES ('pr1', 'ACM01', 'Acme', ?, ?)`, now, now)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO milestones (id, project_id, title) VALUES ('m1', 'pr1', 'Kickoff')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO tasks (id, milestone_id, title) VALUES ('t1', 'm1', 'Interviews')`)
	require.NoError(t, err)

	_, err = db.Exec(`DELETE FROM projects WHERE id = 'pr1'`)
	require.NoError(t, err)

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM tasks`).Scan(&n))
	assert.Zero(t, n)
}

// A database created before people carried a title gains the column with
// existing rows intact.
func TestMigrate_UpgradeAddsPersonTitle(t *testing.T) {
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(`CREATE TABLE people (id TEXT PRIMARY KEY, name TEXT NOT NULL, created_at TEXT NOT NULL)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO people (id, name, created_at) VALUES ('p1', 'Dana', '2024-01-01T00:00:00Z')`)
	require.NoError(t, err)

	require.NoError(t, Migrate(db))

	var name, title string
	require.NoError(t, db.QueryRow(`SELECT name, title FROM people WHERE id = 'p1'`).Scan(&name, &title))
	assert.Equal(t, "Dana", name)
	assert.Empty(t, title)
}

package db

import (
	"database/sql"
	"fmt"
)

// EnsureSchema creates the schema in a database that has no work_items
// table yet, as fresh and test databases do. A database the web app already
// set up is not touched.
func EnsureSchema(db *sql.DB) error {
	var n int
	err := db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'work_items'`).Scan(&n)
	if err != nil {
		return fmt.Errorf("inspecting schema: %w", err)
	}
	if n > 0 {
		return nil
	}
	return Migrate(db)
}

// Migrate creates the tables the editor reads and their indexes. Statements
// are idempotent.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS projects (
		project_id  INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id     INTEGER,
		name        TEXT NOT NULL,
		description TEXT,
		start_date  TEXT,
		end_date    TEXT
	)`,

	`CREATE TABLE IF NOT EXISTS work_items (
		item_id        INTEGER PRIMARY KEY AUTOINCREMENT,
		project_id     INTEGER NOT NULL REFERENCES projects(project_id) ON DELETE CASCADE,
		parent_item_id INTEGER REFERENCES work_items(item_id) ON DELETE CASCADE,
		name           TEXT NOT NULL,
		description    TEXT,
		due_date       TEXT,
		is_completed   INTEGER NOT NULL DEFAULT 0,
		display_order  INTEGER NOT NULL DEFAULT 0,
		planned_hours  REAL,
		is_minimized   INTEGER NOT NULL DEFAULT 0
	)`,

	`CREATE INDEX IF NOT EXISTS idx_work_items_project ON work_items(project_id)`,
	`CREATE INDEX IF NOT EXISTS idx_work_items_parent ON work_items(parent_item_id)`,
}

package testutil

import (
	"context"
	"database/sql"
	"strconv"
	"testing"

	"github.com/alexanderramin/lifemap/internal/db"
	"github.com/alexanderramin/lifemap/internal/domain"
)

// NewTestDB creates an in-memory SQLite database with the schema applied.
// The database is closed when the test completes.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		database.Close()
	})
	return database
}

// NewTestUoW creates a UnitOfWork backed by the given test database.
func NewTestUoW(database *sql.DB) db.UnitOfWork {
	return db.NewSQLiteUnitOfWork(database)
}

// SeedTree stores a project named name whose task tree is root, the way the
// web app lays it out: root is the row without a parent and every task's
// display_order is its sibling position. It returns the project and a map
// from fixture ids to stored ids.
func SeedTree(t *testing.T, database *sql.DB, name string, root *domain.TaskNode) (*domain.Project, map[string]string) {
	t.Helper()
	ctx := context.Background()

	res, err := database.ExecContext(ctx, `INSERT INTO projects (user_id, name) VALUES (1, ?)`, name)
	if err != nil {
		t.Fatalf("seeding project: %v", err)
	}
	projectID, _ := res.LastInsertId()

	ids := make(map[string]string)
	var store func(n *domain.TaskNode, parent any, order int)
	store = func(n *domain.TaskNode, parent any, order int) {
		var due, hours any
		if n.DueDate != "" {
			due = n.DueDate
		}
		if n.PlannedHours != nil {
			hours = *n.PlannedHours
		}
		res, err := database.ExecContext(ctx, `INSERT INTO work_items (project_id, parent_item_id, name,
			description, due_date, is_completed, display_order, planned_hours, is_minimized)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			projectID, parent, n.Name, n.Description, due, n.IsCompleted, order, hours, n.IsMinimized)
		if err != nil {
			t.Fatalf("seeding task %s: %v", n.ID, err)
		}
		id, _ := res.LastInsertId()
		ids[n.ID] = strconv.FormatInt(id, 10)
		for i, c := range n.Children {
			store(c, id, i)
		}
	}
	store(root, nil, 0)

	return &domain.Project{
		ID:     strconv.FormatInt(projectID, 10),
		Name:   name,
		RootID: ids[root.ID],
	}, ids
}

package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/alexanderramin/lifemap/internal/db"
	"github.com/alexanderramin/lifemap/internal/domain"
)

// workItemColumns is the canonical SELECT column list for work_items.
const workItemColumns = `item_id, parent_item_id, name, description, due_date,
		is_completed, display_order, planned_hours, is_minimized`

// SQLiteWorkItemRepo implements WorkItemRepo over the web app's work_items table.
type SQLiteWorkItemRepo struct {
	db db.DBTX
}

func NewSQLiteWorkItemRepo(db db.DBTX) *SQLiteWorkItemRepo {
	return &SQLiteWorkItemRepo{db: db}
}

// Create inserts n under projectID and sets n.ID from the generated key.
// n.ParentID must be empty (the project root) or a stored item id.
func (r *SQLiteWorkItemRepo) Create(ctx context.Context, projectID string, n *domain.TaskNode) error {
	pid, err := parseID("project", projectID)
	if err != nil {
		return err
	}
	parent, err := nullableParent(n.ParentID)
	if err != nil {
		return err
	}
	query := `INSERT INTO work_items (project_id, parent_item_id, name, description, due_date,
		is_completed, display_order, planned_hours, is_minimized)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query,
		pid,
		parent,
		n.Name,
		nullableString(n.Description),
		nullableString(n.DueDate),
		boolToInt(n.IsCompleted),
		n.DisplayOrder,
		nullableFloat(n.PlannedHours),
		boolToInt(n.IsMinimized),
	)
	if err != nil {
		return fmt.Errorf("inserting work item: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading work item id: %w", err)
	}
	n.ID = formatID(id)
	return nil
}

// ListByProject returns the project's rows in display order.
func (r *SQLiteWorkItemRepo) ListByProject(ctx context.Context, projectID string) ([]*domain.TaskNode, error) {
	pid, err := parseID("project", projectID)
	if err != nil {
		return nil, err
	}
	query := `SELECT ` + workItemColumns + ` FROM work_items
		WHERE project_id = ? ORDER BY display_order, item_id`
	rows, err := r.db.QueryContext(ctx, query, pid)
	if err != nil {
		return nil, fmt.Errorf("listing work items by project: %w", err)
	}
	defer rows.Close()

	var nodes []*domain.TaskNode
	for rows.Next() {
		n, err := scanWorkItem(rows)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating work items: %w", err)
	}
	return nodes, nil
}

func scanWorkItem(s scanner) (*domain.TaskNode, error) {
	var (
		id               int64
		parent           sql.NullInt64
		name, desc, due  sql.NullString
		completed, order sql.NullInt64
		minimized        sql.NullInt64
		hours            any
	)
	err := s.Scan(&id, &parent, &name, &desc, &due, &completed, &order, &hours, &minimized)
	if err != nil {
		return nil, fmt.Errorf("scanning work item row: %w", err)
	}

	n := &domain.TaskNode{
		ID:           formatID(id),
		Name:         name.String,
		Description:  desc.String,
		DueDate:      strings.TrimSpace(due.String),
		IsCompleted:  nullIntToBool(completed),
		IsMinimized:  nullIntToBool(minimized),
		PlannedHours: hoursFromColumn(hours),
		DisplayOrder: int(order.Int64),
	}
	if parent.Valid {
		n.ParentID = formatID(parent.Int64)
	}
	return n, nil
}

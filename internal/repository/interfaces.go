package repository

import (
	"context"
	"errors"

	"github.com/alexanderramin/lifemap/internal/domain"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("not found")

type ProjectRepo interface {
	Create(ctx context.Context, p *domain.Project, userID int64) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context) ([]*domain.Project, error)
}

// WorkItemRepo reads the rows of a project's task tree. Rows come back
// unlinked: Children is empty and Level is left for the tree builder.
type WorkItemRepo interface {
	Create(ctx context.Context, projectID string, n *domain.TaskNode) error
	ListByProject(ctx context.Context, projectID string) ([]*domain.TaskNode, error)
}

package service

import (
	"context"
	"fmt"

	"github.com/alexanderramin/lifemap/internal/db"
	"github.com/alexanderramin/lifemap/internal/domain"
	"github.com/alexanderramin/lifemap/internal/repository"
)

type repositorySource struct {
	uow db.UnitOfWork
}

// NewRepositorySource reads projects from the web app's SQLite database.
// The project and its rows are read in one transaction so a concurrent
// save in the web app cannot tear the tree.
func NewRepositorySource(uow db.UnitOfWork) TreeSource {
	return &repositorySource{uow: uow}
}

func (s *repositorySource) LoadProject(ctx context.Context, projectID string) (*domain.Project, []*domain.TaskNode, error) {
	var (
		project *domain.Project
		rows    []*domain.TaskNode
	)
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		var err error
		project, err = repository.NewSQLiteProjectRepo(tx).GetByID(ctx, projectID)
		if err != nil {
			return err
		}
		rows, err = repository.NewSQLiteWorkItemRepo(tx).ListByProject(ctx, projectID)
		if err != nil {
			return fmt.Errorf("listing tasks: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return project, rows, nil
}

package importer

import (
	"context"
	"errors"
	"fmt"

	"github.com/alexanderramin/lifemap/internal/domain"
)

var (
	// ErrInvalidSnapshot wraps the validation errors of a snapshot file.
	ErrInvalidSnapshot = errors.New("invalid snapshot")

	// ErrProjectMismatch means the requested project is not the one in the file.
	ErrProjectMismatch = errors.New("snapshot holds a different project")
)

// FileSource serves the tree stored in a snapshot file. The file is read on
// every load so a reload picks up external changes.
type FileSource struct {
	Path string
}

// NewFileSource returns a source backed by the file at path.
func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path}
}

// LoadProject reads, validates and flattens the snapshot. An empty
// projectID accepts whatever project the file holds.
func (s *FileSource) LoadProject(_ context.Context, projectID string) (*domain.Project, []*domain.TaskNode, error) {
	snap, err := LoadSnapshot(s.Path)
	if err != nil {
		return nil, nil, err
	}
	if errs := ValidateSnapshot(snap); len(errs) > 0 {
		return nil, nil, fmt.Errorf("%w %s: %w", ErrInvalidSnapshot, s.Path, errors.Join(errs...))
	}
	if projectID != "" && projectID != snap.ProjectID {
		return nil, nil, fmt.Errorf("%w: want %s, file has %s", ErrProjectMismatch, projectID, snap.ProjectID)
	}
	project, rows := Convert(snap)
	return project, rows, nil
}

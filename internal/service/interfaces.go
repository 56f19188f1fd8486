package service

import (
	"context"

	"github.com/alexanderramin/lifemap/internal/contract"
	"github.com/alexanderramin/lifemap/internal/domain"
	"github.com/alexanderramin/lifemap/internal/tree"
)

// TreeSource supplies a project and its task rows, root included. Rows
// carry ID, ParentID and DisplayOrder; children are linked by the session.
type TreeSource interface {
	LoadProject(ctx context.Context, projectID string) (*domain.Project, []*domain.TaskNode, error)
}

// Saver sends a save payload to the backend.
type Saver interface {
	Save(ctx context.Context, req contract.SaveRequest) (*contract.SaveResponse, error)
}

// EditorService is one editing session over a project's task tree. It owns
// the local id counter, the deletion set and the save state. Methods are not
// safe for concurrent use, except Send.
type EditorService interface {
	Load(ctx context.Context, projectID string) error
	Reload(ctx context.Context) error

	Project() *domain.Project
	Root() *domain.TaskNode
	Node(id string) (*domain.TaskNode, error)

	AddChild(ctx context.Context, parentID string) (*domain.TaskNode, error)
	DeleteNode(ctx context.Context, id string) error
	Reparent(ctx context.Context, id, newParentID string) error
	Move(ctx context.Context, id, newParentID string, index int) error
	MoveUp(ctx context.Context, id string) error
	MoveDown(ctx context.Context, id string) error
	Indent(ctx context.Context, id string) error
	Outdent(ctx context.Context, id string) error

	SetName(ctx context.Context, id, name string) error
	SetDescription(ctx context.Context, id, description string) error
	SetHours(ctx context.Context, id, input string) error
	SetDueDate(ctx context.Context, id, input string) error
	SetCompletion(ctx context.Context, id string, completed bool) error
	ToggleMinimized(ctx context.Context, id string) (bool, error)

	Summary() tree.Summary
	DeletedIDs() []string
	Payload() contract.SaveRequest
	Validate() []*tree.DueDateError
	Dirty() bool
	Saving() bool

	// PrepareSave runs the submit gate, freezes the tree and returns the
	// payload to send. CompleteSave must follow, with the outcome of Send.
	PrepareSave(ctx context.Context) (contract.SaveRequest, error)
	Send(ctx context.Context, req contract.SaveRequest) (*contract.SaveResponse, error)
	CompleteSave(ctx context.Context, resp *contract.SaveResponse, sendErr error) error

	// Submit runs PrepareSave, Send and CompleteSave in sequence.
	Submit(ctx context.Context) (*contract.SaveResponse, error)
}

package service

import (
	"context"
	"testing"

	"github.com/alexanderramin/lifemap/internal/contract"
	"github.com/alexanderramin/lifemap/internal/domain"
	"github.com/alexanderramin/lifemap/internal/testutil"
	"github.com/stretchr/testify/require"
)

// memSource serves a fixed tree; every load gets fresh copies of the rows.
type memSource struct {
	project domain.Project
	root    *domain.TaskNode
	loads   int
}

func (s *memSource) LoadProject(_ context.Context, projectID string) (*domain.Project, []*domain.TaskNode, error) {
	s.loads++
	p := s.project
	p.ID = projectID
	return &p, testutil.Flatten(s.root), nil
}

type fakeSaver struct {
	resp  *contract.SaveResponse
	err   error
	calls int
	last  contract.SaveRequest
}

func (f *fakeSaver) Save(_ context.Context, req contract.SaveRequest) (*contract.SaveResponse, error) {
	f.calls++
	f.last = req
	if f.err != nil {
		return nil, f.err
	}
	if f.resp != nil {
		return f.resp, nil
	}
	return &contract.SaveResponse{Message: "Tasks saved successfully!"}, nil
}

type recordingObserver struct {
	events []UseCaseEvent
}

func (o *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	o.events = append(o.events, e)
}

// sampleTree is the tree most tests start from:
//
//	r
//	├── 10 Plan (due 2024-06-10)
//	│   ├── 11 Outline 2h
//	│   └── 12 Draft 3h
//	└── 20 Review
func sampleTree() *domain.TaskNode {
	root := testutil.NewTestRoot("1")
	plan := testutil.AddTask(root, "10", testutil.WithName("Plan"), testutil.WithDueDate("2024-06-10"))
	testutil.AddTask(plan, "11", testutil.WithName("Outline"), testutil.WithHours(2))
	testutil.AddTask(plan, "12", testutil.WithName("Draft"), testutil.WithHours(3))
	testutil.AddTask(root, "20", testutil.WithName("Review"))
	return root
}

func newTestEditor(t *testing.T, root *domain.TaskNode, opts ...EditorOption) (EditorService, *fakeSaver, *memSource) {
	t.Helper()
	src := &memSource{project: domain.Project{Name: "Thesis"}, root: root}
	saver := &fakeSaver{}
	svc := NewEditorService(src, saver, opts...)
	require.NoError(t, svc.Load(context.Background(), "3"))
	return svc, saver, src
}

func mustNode(t *testing.T, svc EditorService, id string) *domain.TaskNode {
	t.Helper()
	n, err := svc.Node(id)
	require.NoError(t, err)
	return n
}

func hoursOf(t *testing.T, svc EditorService, id string) float64 {
	t.Helper()
	n := mustNode(t, svc, id)
	require.NotNil(t, n.PlannedHours, "hours of %s", id)
	return *n.PlannedHours
}

package cli

import (
	"context"
	"testing"

	"github.com/alexanderramin/lifemap/internal/domain"
	"github.com/alexanderramin/lifemap/internal/service"
	"github.com/alexanderramin/lifemap/internal/teatest"
	"github.com/alexanderramin/lifemap/internal/testutil"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"
)

// TestDriver wraps teatest.Driver with editor-specific inspection methods.
// It reaches into appModel internals (view stack, session, alert line)
// that the generic driver can't see.
type TestDriver struct {
	*teatest.Driver
	Saver *fakeSaver
}

// memSource serves a fixed tree; every load gets fresh copies of the rows.
type memSource struct {
	root *domain.TaskNode
}

func (s *memSource) LoadProject(_ context.Context, projectID string) (*domain.Project, []*domain.TaskNode, error) {
	return &domain.Project{ID: projectID, Name: "Thesis"}, testutil.Flatten(s.root), nil
}

// sampleTree is the tree most editor tests start from:
//
//	1
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

// NewTestDriver loads root into a fresh session, builds the appModel at
// 120x40 and drains Init.
func NewTestDriver(t *testing.T, root *domain.TaskNode) *TestDriver {
	t.Helper()

	app, saver := testApp(t)
	ctx := context.Background()
	session := service.NewEditorService(&memSource{root: root}, saver)
	require.NoError(t, session.Load(ctx, "3"))

	d := teatest.New(t, newAppModel(ctx, app, session), teatest.WithSize(120, 40))
	d.DrainInit()
	return &TestDriver{Driver: d, Saver: saver}
}

func (d *TestDriver) appModel() appModel {
	return d.Model.(appModel)
}

// ActiveViewID returns the ViewID of the top view on the stack.
func (d *TestDriver) ActiveViewID() ViewID {
	m := d.appModel()
	v := m.activeView()
	if v == nil {
		return ViewID(-1)
	}
	return v.ID()
}

// ViewStackLen returns the number of views on the stack.
func (d *TestDriver) ViewStackLen() int {
	return len(d.appModel().viewStack)
}

// Session returns the editing session behind the model.
func (d *TestDriver) Session() service.EditorService {
	return d.appModel().state.Session
}

// Node resolves id in the session or fails the test.
func (d *TestDriver) Node(id string) *domain.TaskNode {
	d.T.Helper()
	n, err := d.Session().Node(id)
	require.NoError(d.T, err)
	return n
}

// SelectedID returns the id of the task under the tree cursor.
func (d *TestDriver) SelectedID() string {
	for _, v := range d.appModel().viewStack {
		if tv, ok := v.(*treeView); ok {
			return tv.currentID()
		}
	}
	return ""
}

// IsQuitting returns whether the app has signaled a quit.
func (d *TestDriver) IsQuitting() bool {
	return d.appModel().quitting || d.Quitting
}

// Alert returns the alert line without styling.
func (d *TestDriver) Alert() string {
	return ansi.Strip(d.appModel().alert)
}

package service

import (
	"context"
	"errors"
	"testing"

	"github.com/alexanderramin/lifemap/internal/contract"
	"github.com/alexanderramin/lifemap/internal/domain"
	"github.com/alexanderramin/lifemap/internal/saveclient"
	"github.com/alexanderramin/lifemap/internal/testutil"
	"github.com/alexanderramin/lifemap/internal/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEditor_Load_DerivesParentHours(t *testing.T) {
	root := sampleTree()
	plan := root.Children[0]
	plan.PlannedHours = domain.Float64Ptr(99)

	svc, _, _ := newTestEditor(t, root)

	assert.Equal(t, "1", svc.Project().RootID)
	assert.Equal(t, 5.0, hoursOf(t, svc, "10"))
	assert.True(t, mustNode(t, svc, "10").HoursLocked)
	assert.False(t, svc.Dirty())
	assert.Empty(t, svc.DeletedIDs())
}

func TestEditor_BeforeLoad(t *testing.T) {
	svc := NewEditorService(&memSource{}, &fakeSaver{})
	ctx := context.Background()

	_, err := svc.AddChild(ctx, "")
	assert.ErrorIs(t, err, ErrNotLoaded)
	assert.ErrorIs(t, svc.Reload(ctx), ErrNotLoaded)
	assert.Nil(t, svc.Root())
	assert.False(t, svc.Dirty())
}

func TestEditor_AddChild_LocalIDsAndExpand(t *testing.T) {
	root := sampleTree()
	root.Children[0].IsMinimized = true
	svc, _, _ := newTestEditor(t, root)
	ctx := context.Background()

	a, err := svc.AddChild(ctx, "10")
	require.NoError(t, err)
	b, err := svc.AddChild(ctx, "")
	require.NoError(t, err)

	assert.Equal(t, "new-1", a.ID)
	assert.Equal(t, "new-2", b.ID)
	assert.Equal(t, 2, a.Level)
	assert.Equal(t, 1, b.Level)
	assert.Equal(t, "1", b.ParentID)

	plan := mustNode(t, svc, "10")
	assert.Same(t, a, plan.Children[len(plan.Children)-1])
	assert.False(t, plan.IsMinimized)
	assert.True(t, svc.Dirty())
}

func TestEditor_AddChild_LeafBecomesDerived(t *testing.T) {
	root := testutil.NewTestRoot("1")
	testutil.AddTask(root, "5", testutil.WithHours(4))
	svc, _, _ := newTestEditor(t, root)

	_, err := svc.AddChild(context.Background(), "5")
	require.NoError(t, err)

	assert.Equal(t, 0.0, hoursOf(t, svc, "5"))
	assert.True(t, mustNode(t, svc, "5").HoursLocked)
}

func TestEditor_AddChild_DepthLimit(t *testing.T) {
	root := testutil.NewTestRoot("1")
	chain := testutil.Chain(root, "c", 6)
	svc, _, _ := newTestEditor(t, root)
	ctx := context.Background()

	n, err := svc.AddChild(ctx, chain[4].ID)
	require.NoError(t, err)
	assert.Equal(t, 6, n.Level)

	before := len(mustNode(t, svc, chain[5].ID).Children)
	_, err = svc.AddChild(ctx, chain[5].ID)
	require.ErrorIs(t, err, ErrDepthLimit)
	w, ok := AsWarning(err)
	require.True(t, ok)
	assert.Equal(t, "You can only create up to 6 levels of subtasks.", w.Message)
	assert.Len(t, mustNode(t, svc, chain[5].ID).Children, before)
}

func TestEditor_AddChild_UnknownParentIsSilent(t *testing.T) {
	svc, _, _ := newTestEditor(t, sampleTree())

	_, err := svc.AddChild(context.Background(), "404")
	assert.ErrorIs(t, err, ErrNodeNotFound)
	_, isWarning := AsWarning(err)
	assert.False(t, isWarning)
	assert.False(t, svc.Dirty())
}

func TestEditor_DeleteNode_TombstonesPersisted(t *testing.T) {
	svc, _, _ := newTestEditor(t, sampleTree())
	ctx := context.Background()

	require.NoError(t, svc.DeleteNode(ctx, "10"))

	assert.Equal(t, []string{"10"}, svc.DeletedIDs())
	for _, id := range []string{"10", "11", "12"} {
		_, err := svc.Node(id)
		assert.ErrorIs(t, err, ErrNodeNotFound, id)
	}
	assert.Equal(t, []string{"10"}, svc.Payload().DeletedItemIDs)
}

func TestEditor_DeleteNode_LocalLeavesNoTombstone(t *testing.T) {
	svc, _, _ := newTestEditor(t, sampleTree())
	ctx := context.Background()

	n, err := svc.AddChild(ctx, "20")
	require.NoError(t, err)
	require.NoError(t, svc.DeleteNode(ctx, n.ID))

	assert.Empty(t, svc.DeletedIDs())
	assert.True(t, mustNode(t, svc, "20").IsLeaf())
}

func TestEditor_DeleteNode_UpdatesParentHours(t *testing.T) {
	svc, _, _ := newTestEditor(t, sampleTree())

	assert.Equal(t, "5.0", tree.FormatField(mustNode(t, svc, "10")))
	require.NoError(t, svc.DeleteNode(context.Background(), "12"))
	assert.Equal(t, "2.0", tree.FormatField(mustNode(t, svc, "10")))
}

func TestEditor_DeleteNode_RootRefused(t *testing.T) {
	svc, _, _ := newTestEditor(t, sampleTree())

	err := svc.DeleteNode(context.Background(), "1")
	assert.ErrorIs(t, err, ErrNodeNotFound)
	assert.NotNil(t, svc.Root())
}

func TestEditor_SetHours(t *testing.T) {
	svc, _, _ := newTestEditor(t, sampleTree())
	ctx := context.Background()

	require.NoError(t, svc.SetHours(ctx, "11", "2.25"))
	assert.Equal(t, 5.3, hoursOf(t, svc, "10"))

	require.NoError(t, svc.SetHours(ctx, "11", ""))
	assert.Nil(t, mustNode(t, svc, "11").PlannedHours)
	assert.Equal(t, 3.0, hoursOf(t, svc, "10"))

	err := svc.SetHours(ctx, "10", "8")
	assert.ErrorIs(t, err, ErrReadOnlyHours)
	assert.Equal(t, 3.0, hoursOf(t, svc, "10"))

	err = svc.SetHours(ctx, "12", "-1")
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.ErrorIs(t, err, domain.ErrInvalidHours)
	assert.Equal(t, 3.0, hoursOf(t, svc, "12"))
}

func TestEditor_SetDueDate_LaterThanParentIsCleared(t *testing.T) {
	root := testutil.NewTestRoot("1")
	a := testutil.AddTask(root, "2", testutil.WithDueDate("2024-06-10"))
	testutil.AddTask(a, "3", testutil.WithDueDate("2024-06-01"))
	svc, _, _ := newTestEditor(t, root)

	err := svc.SetDueDate(context.Background(), "3", "2024-06-15")

	w, ok := AsWarning(err)
	require.True(t, ok)
	assert.Equal(t, "A subtask's due date cannot be later than its parent's due date.", w.Message)
	var dueErr *tree.DueDateError
	require.ErrorAs(t, err, &dueErr)
	assert.Equal(t, "2024-06-15", dueErr.DueDate)
	assert.Empty(t, mustNode(t, svc, "3").DueDate)
}

func TestEditor_SetDueDate(t *testing.T) {
	svc, _, _ := newTestEditor(t, sampleTree())
	ctx := context.Background()

	require.NoError(t, svc.SetDueDate(ctx, "11", " 2024-06-10 "))
	assert.Equal(t, "2024-06-10", mustNode(t, svc, "11").DueDate)

	err := svc.SetDueDate(ctx, "11", "10/06/2024")
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Equal(t, "2024-06-10", mustNode(t, svc, "11").DueDate, "malformed input is not stored")

	require.NoError(t, svc.SetDueDate(ctx, "11", ""))
	assert.Empty(t, mustNode(t, svc, "11").DueDate)
}

func TestEditor_SetCompletion(t *testing.T) {
	svc, _, _ := newTestEditor(t, sampleTree())
	ctx := context.Background()

	require.NoError(t, svc.SetCompletion(ctx, "10", true))
	for _, id := range []string{"10", "11", "12"} {
		assert.True(t, mustNode(t, svc, id).IsCompleted, id)
	}
	assert.Equal(t, 0.0, svc.Summary().Remaining)
	assert.True(t, svc.Summary().Done())

	require.NoError(t, svc.SetCompletion(ctx, "12", false))
	assert.False(t, mustNode(t, svc, "10").IsCompleted)
	assert.True(t, mustNode(t, svc, "11").IsCompleted)
	assert.Equal(t, "3.0hrs", svc.Summary().Display())

	assert.ErrorIs(t, svc.SetCompletion(ctx, "1", true), ErrNodeNotFound)
}

func TestEditor_ToggleMinimized(t *testing.T) {
	svc, _, _ := newTestEditor(t, sampleTree())
	ctx := context.Background()

	minimized, err := svc.ToggleMinimized(ctx, "10")
	require.NoError(t, err)
	assert.True(t, minimized)
	assert.True(t, mustNode(t, svc, "11").IsMinimized)

	minimized, err = svc.ToggleMinimized(ctx, "10")
	require.NoError(t, err)
	assert.False(t, minimized)
	assert.True(t, mustNode(t, svc, "11").IsMinimized)
}

func TestEditor_SetNameAndDescription(t *testing.T) {
	svc, _, _ := newTestEditor(t, sampleTree())
	ctx := context.Background()

	require.NoError(t, svc.SetName(ctx, "20", "Peer review"))
	require.NoError(t, svc.SetDescription(ctx, "20", "Ask **two** people"))

	n := mustNode(t, svc, "20")
	assert.Equal(t, "Peer review", n.Name)
	assert.Equal(t, "Ask **two** people", n.Description)
	assert.True(t, svc.Dirty())

	require.NoError(t, svc.SetName(ctx, "20", "Review"))
	require.NoError(t, svc.SetDescription(ctx, "20", ""))
	assert.False(t, svc.Dirty(), "reverting every edit leaves nothing to save")
}

func TestEditor_Observer(t *testing.T) {
	obs := &recordingObserver{}
	svc, _, _ := newTestEditor(t, sampleTree(), WithObserver(obs))

	_ = svc.SetHours(context.Background(), "10", "1")

	require.Len(t, obs.events, 2)
	assert.Equal(t, "load-project", obs.events[0].Name)
	assert.True(t, obs.events[0].Success)
	assert.Equal(t, 4, obs.events[0].Fields["task_count"])
	assert.Equal(t, "set-hours", obs.events[1].Name)
	assert.False(t, obs.events[1].Success)
	assert.ErrorIs(t, obs.events[1].Err, ErrReadOnlyHours)
}

func TestEditor_Load_ContinuesLocalNumbering(t *testing.T) {
	root := sampleTree()
	testutil.AddTask(root, "new-4")
	svc, _, _ := newTestEditor(t, root)

	n, err := svc.AddChild(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "new-5", n.ID)
}

func TestEditor_Load_SourceErrors(t *testing.T) {
	svc := NewEditorService(&memSource{root: testutil.NewTestTask("orphan", testutil.WithParent("x"))}, &fakeSaver{})

	err := svc.Load(context.Background(), "3")
	assert.ErrorIs(t, err, tree.ErrNoRoot)
	assert.Nil(t, svc.Root())
}

func TestSaveWarning(t *testing.T) {
	rejected := &saveclient.RejectedError{StatusCode: 403, Message: "Project not found or not owned by user."}
	assert.Equal(t, "Failed to save tasks: Project not found or not owned by user.", saveWarning(rejected).Message)
	assert.Equal(t, "Failed to save tasks: Unknown error", saveWarning(&saveclient.RejectedError{StatusCode: 500}).Message)
	assert.Equal(t, "Error saving tasks. Please check your connection.", saveWarning(saveclient.ErrUnavailable).Message)
	assert.Equal(t, "Error saving tasks. Please check your connection.", saveWarning(errors.New("decode")).Message)
}

func TestEditor_Payload(t *testing.T) {
	svc, _, _ := newTestEditor(t, sampleTree())

	req := svc.Payload()
	assert.Equal(t, "3", req.ProjectID)
	assert.Equal(t, 4, contract.CountTasks(req.Tasks))
	require.NotNil(t, req.Tasks[0].PlannedHours)
	assert.Equal(t, "5.0", *req.Tasks[0].PlannedHours)
	assert.Equal(t, []string{}, req.DeletedItemIDs)
}

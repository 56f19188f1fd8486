package tree

import (
	"testing"

	"github.com/alexanderramin/lifemap/internal/domain"
	"github.com/alexanderramin/lifemap/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func childIDs(n *domain.TaskNode) []string {
	ids := []string{}
	for _, c := range n.Children {
		ids = append(ids, c.ID)
	}
	return ids
}

func TestAssemble_LinksRowsAndDerivesLevels(t *testing.T) {
	rows := []*domain.TaskNode{
		{ID: "12", ParentID: "11", DisplayOrder: 0},
		{ID: "10"},
		{ID: "11", ParentID: "10", DisplayOrder: 1},
		{ID: "13", ParentID: "10", DisplayOrder: 0, Level: 5},
	}

	asm, err := Assemble(rows)
	require.NoError(t, err)
	assert.Empty(t, asm.Orphans)

	tr := asm.Tree
	assert.Equal(t, "10", tr.Root.ID)
	assert.Equal(t, []string{"13", "11"}, childIDs(tr.Root))
	assert.Equal(t, 3, tr.Len())

	n, ok := tr.Lookup("12")
	require.True(t, ok)
	assert.Equal(t, 2, n.Level)
	assert.Equal(t, "11", n.Parent().ID)

	n, _ = tr.Lookup("13")
	assert.Equal(t, 1, n.Level)
}

func TestAssemble_TiesOrderedNumerically(t *testing.T) {
	rows := []*domain.TaskNode{
		{ID: "1"},
		{ID: "10", ParentID: "1"},
		{ID: "9", ParentID: "1"},
		{ID: "b", ParentID: "1"},
		{ID: "a", ParentID: "1"},
	}
	asm, err := Assemble(rows)
	require.NoError(t, err)
	assert.Equal(t, []string{"9", "10", "a", "b"}, childIDs(asm.Tree.Root))
}

func TestAssemble_DropsOrphansAndCycles(t *testing.T) {
	rows := []*domain.TaskNode{
		{ID: "1"},
		{ID: "2", ParentID: "1"},
		{ID: "3", ParentID: "99"},
		{ID: "4", ParentID: "5"},
		{ID: "5", ParentID: "4"},
	}
	asm, err := Assemble(rows)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"3", "4", "5"}, asm.Orphans)
	assert.Equal(t, 1, asm.Tree.Len())
	_, ok := asm.Tree.Lookup("4")
	assert.False(t, ok)
}

func TestAssemble_RootErrors(t *testing.T) {
	_, err := Assemble([]*domain.TaskNode{{ID: "2", ParentID: "1"}})
	assert.ErrorIs(t, err, ErrNoRoot)

	_, err = Assemble([]*domain.TaskNode{{ID: "1"}, {ID: "2"}})
	assert.ErrorIs(t, err, ErrMultipleRoots)

	_, err = Assemble([]*domain.TaskNode{{ID: "1"}, {ID: "2", ParentID: "1"}, {ID: "2", ParentID: "1"}})
	assert.ErrorIs(t, err, ErrDuplicateID)
}

func TestAssemble_RoundTripsFlattenedTree(t *testing.T) {
	root := testutil.NewTestRoot("r")
	b := testutil.AddTask(root, "b")
	testutil.AddTask(b, "b2")
	testutil.AddTask(b, "b1")
	testutil.AddTask(root, "a")
	root.Walk(func(n *domain.TaskNode) bool {
		for i, c := range n.Children {
			c.DisplayOrder = i
		}
		return true
	})

	rows := testutil.Flatten(root)
	for i, j := 0, len(rows)-1; i < j; i, j = i+1, j-1 {
		rows[i], rows[j] = rows[j], rows[i]
	}

	asm, err := Assemble(rows)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a"}, childIDs(asm.Tree.Root))
	got, _ := asm.Tree.Lookup("b")
	assert.Equal(t, []string{"b2", "b1"}, childIDs(got))
	assert.Equal(t, 2, got.Children[0].Level)
}

func TestTree_RegisterUnregisterRename(t *testing.T) {
	root := testutil.NewTestRoot("r")
	a := testutil.AddTask(root, "new-1")
	testutil.AddTask(a, "new-2")
	tr := New(root)
	assert.Equal(t, 2, tr.Len())

	tr.Rename(a, "42")
	_, ok := tr.Lookup("new-1")
	assert.False(t, ok)
	got, ok := tr.Lookup("42")
	require.True(t, ok)
	assert.Equal(t, "42", got.Children[0].ParentID)

	root.RemoveChild(a)
	tr.Unregister(a)
	assert.Equal(t, 0, tr.Len())
	assert.Empty(t, tr.Tasks())
}

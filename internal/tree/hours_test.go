package tree

import (
	"testing"

	"github.com/alexanderramin/lifemap/internal/domain"
	"github.com/alexanderramin/lifemap/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// assertSums checks every non-leaf below the root holds the sum of its children.
func assertSums(t *testing.T, root *domain.TaskNode) {
	t.Helper()
	for _, n := range root.Descendants() {
		if n.IsLeaf() {
			assert.False(t, n.HoursLocked, n.ID)
			continue
		}
		require.NotNil(t, n.PlannedHours, n.ID)
		assert.Equal(t, SumChildren(n), *n.PlannedHours, n.ID)
		assert.True(t, n.HoursLocked, n.ID)
	}
}

func TestRecomputeAncestors_ParentShowsSum(t *testing.T) {
	root := testutil.NewTestRoot("r")
	a := testutil.AddTask(root, "a")
	testutil.AddTask(a, "b", testutil.WithHours(2))
	c := testutil.AddTask(a, "c", testutil.WithHours(3))

	RecomputeAncestors(c)
	require.NotNil(t, a.PlannedHours)
	assert.Equal(t, "5.0", FormatField(a))
	assert.True(t, a.HoursLocked)

	a.RemoveChild(c)
	RecomputeAncestors(a)
	assert.Equal(t, "2.0", FormatField(a))
	assert.Nil(t, root.PlannedHours, "root is never summed")
}

func TestRecomputeAncestors_CascadesToTop(t *testing.T) {
	root := testutil.NewTestRoot("r")
	chain := testutil.Chain(root, "n", 5)
	leaf := chain[4]
	testutil.AddTask(chain[0], "side", testutil.WithHours(1.3))
	leaf.PlannedHours = domain.Float64Ptr(0.1)
	RecomputeAll(root)

	leaf.PlannedHours = domain.Float64Ptr(0.2)
	RecomputeAncestors(leaf)

	assertSums(t, root)
	assert.Equal(t, 1.5, *chain[0].PlannedHours)
	assert.Equal(t, 0.2, *chain[3].PlannedHours)
}

func TestRecomputeAncestors_UnsetChildrenCountAsZero(t *testing.T) {
	root := testutil.NewTestRoot("r")
	a := testutil.AddTask(root, "a", testutil.WithHours(9))
	testutil.AddTask(a, "b")
	testutil.AddTask(a, "c", testutil.WithHours(0.5))

	RecomputeAll(root)
	assert.Equal(t, 0.5, *a.PlannedHours)
}

func TestRecomputeAncestors_LeafKeepsValueAndUnlocks(t *testing.T) {
	root := testutil.NewTestRoot("r")
	a := testutil.AddTask(root, "a", testutil.WithHours(4))
	a.HoursLocked = true

	RecomputeAncestors(a)
	assert.False(t, a.HoursLocked)
	assert.Equal(t, 4.0, *a.PlannedHours)
}

func TestProjectRemaining_CountsLeavesOnly(t *testing.T) {
	root := testutil.NewTestRoot("r")
	a := testutil.AddTask(root, "a")
	testutil.AddTask(a, "b", testutil.WithHours(2), testutil.WithCompleted())
	testutil.AddTask(a, "c", testutil.WithHours(3))
	testutil.AddTask(root, "d", testutil.WithHours(1.5))
	testutil.AddTask(root, "e")
	RecomputeAll(root)

	s := ProjectRemaining(root)
	assert.Equal(t, 6.5, s.Total)
	assert.Equal(t, 4.5, s.Remaining)
	assert.False(t, s.Done())
	assert.Equal(t, "4.5hrs", s.Display())
}

func TestSummary_Done(t *testing.T) {
	assert.True(t, Summary{Total: 3, Remaining: 0}.Done())
	assert.False(t, Summary{Total: 0, Remaining: 0}.Done())
	assert.Equal(t, "0.0hrs", Summary{}.Display())
}

package domain

import "strings"

// MaxSubtaskLevel is the deepest level a task may occupy.
// The project root sits at level 0 and its direct tasks at level 1.
const MaxSubtaskLevel = 6

// UntitledTask is shown wherever a task has a blank name.
const UntitledTask = "Untitled Task"

// TaskNode is one task in a project's hierarchy. The level-0 node is the
// project container; it is never rendered or serialized as a task.
type TaskNode struct {
	ID          string
	ParentID    string // empty only for the level-0 root
	Level       int
	Name        string
	Description string
	DueDate     string // YYYY-MM-DD, empty when unset
	IsCompleted bool
	IsMinimized bool

	// PlannedHours is user-entered on leaves and derived from the children
	// on every other node. HoursLocked marks the derived case.
	PlannedHours *float64
	HoursLocked  bool

	// DisplayOrder is the sibling position reported by the source. Child
	// order is authoritative once the tree is assembled.
	DisplayOrder int
	Children     []*TaskNode

	parent *TaskNode
}

// Parent returns the owning node, or nil for the root.
func (n *TaskNode) Parent() *TaskNode {
	return n.parent
}

// IsRoot reports whether n is the level-0 project container.
func (n *TaskNode) IsRoot() bool {
	return n.Level == 0
}

// IsLeaf reports whether n has no children.
func (n *TaskNode) IsLeaf() bool {
	return len(n.Children) == 0
}

// IsLocal reports whether n was created in this session and has never been saved.
func (n *TaskNode) IsLocal() bool {
	return IsLocalID(n.ID)
}

// DisplayName returns the trimmed name, or UntitledTask when blank.
func (n *TaskNode) DisplayName() string {
	return CoalesceStr(strings.TrimSpace(n.Name), UntitledTask)
}

// HoursOrZero returns the planned hours, treating unset as 0.
func (n *TaskNode) HoursOrZero() float64 {
	return Float64FromPtrWithDefault(0, n.PlannedHours)
}

// AppendChild adds c as the last child of n.
func (n *TaskNode) AppendChild(c *TaskNode) {
	n.InsertChild(c, len(n.Children))
}

// InsertChild places c at index among n's children. Out-of-range indexes
// are clamped. c's parent reference and level are updated; levels of c's
// own descendants are left to Relevel.
func (n *TaskNode) InsertChild(c *TaskNode, index int) {
	if index < 0 {
		index = 0
	}
	if index > len(n.Children) {
		index = len(n.Children)
	}
	n.Children = append(n.Children, nil)
	copy(n.Children[index+1:], n.Children[index:])
	n.Children[index] = c
	c.parent = n
	c.ParentID = n.ID
	c.Level = n.Level + 1
}

// RemoveChild detaches c from n and returns the index it occupied,
// or -1 when c is not a child of n.
func (n *TaskNode) RemoveChild(c *TaskNode) int {
	idx := n.ChildIndex(c)
	if idx < 0 {
		return -1
	}
	n.Children = append(n.Children[:idx], n.Children[idx+1:]...)
	c.parent = nil
	return idx
}

// ChildIndex returns the position of c among n's children, or -1.
func (n *TaskNode) ChildIndex(c *TaskNode) int {
	for i, child := range n.Children {
		if child == c {
			return i
		}
	}
	return -1
}

// Relevel recomputes Level and ParentID for every descendant of n from
// n's own level.
func (n *TaskNode) Relevel() {
	for _, c := range n.Children {
		c.parent = n
		c.ParentID = n.ID
		c.Level = n.Level + 1
		c.Relevel()
	}
}

// Walk visits n and its descendants in pre-order. Returning false from fn
// skips the node's subtree.
func (n *TaskNode) Walk(fn func(*TaskNode) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// Descendants returns every node below n in pre-order.
func (n *TaskNode) Descendants() []*TaskNode {
	var out []*TaskNode
	for _, c := range n.Children {
		c.Walk(func(d *TaskNode) bool {
			out = append(out, d)
			return true
		})
	}
	return out
}

// Contains reports whether other is n or one of its descendants.
func (n *TaskNode) Contains(other *TaskNode) bool {
	for cur := other; cur != nil; cur = cur.parent {
		if cur == n {
			return true
		}
	}
	return false
}

// Height returns how many levels the subtree spans below n (0 for a leaf).
func (n *TaskNode) Height() int {
	h := 0
	for _, c := range n.Children {
		if ch := c.Height() + 1; ch > h {
			h = ch
		}
	}
	return h
}

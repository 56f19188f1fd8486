package testutil

import (
	"fmt"

	"github.com/alexanderramin/lifemap/internal/domain"
)

// Task options
type TaskOption func(*domain.TaskNode)

func WithName(name string) TaskOption {
	return func(n *domain.TaskNode) {
		n.Name = name
	}
}

func WithDescription(d string) TaskOption {
	return func(n *domain.TaskNode) {
		n.Description = d
	}
}

func WithHours(h float64) TaskOption {
	return func(n *domain.TaskNode) {
		n.PlannedHours = &h
	}
}

func WithDueDate(d string) TaskOption {
	return func(n *domain.TaskNode) {
		n.DueDate = d
	}
}

func WithCompleted() TaskOption {
	return func(n *domain.TaskNode) {
		n.IsCompleted = true
	}
}

func WithMinimized() TaskOption {
	return func(n *domain.TaskNode) {
		n.IsMinimized = true
	}
}

func WithDisplayOrder(i int) TaskOption {
	return func(n *domain.TaskNode) {
		n.DisplayOrder = i
	}
}

func WithParent(id string) TaskOption {
	return func(n *domain.TaskNode) {
		n.ParentID = id
	}
}

// NewTestRoot returns a level-0 project container.
func NewTestRoot(id string) *domain.TaskNode {
	return &domain.TaskNode{ID: id, Name: "Project root", Level: 0}
}

// NewTestTask returns a detached task named after its id.
func NewTestTask(id string, opts ...TaskOption) *domain.TaskNode {
	n := &domain.TaskNode{ID: id, Name: "Task " + id}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// AddTask appends a new task under parent and returns it.
func AddTask(parent *domain.TaskNode, id string, opts ...TaskOption) *domain.TaskNode {
	n := NewTestTask(id, opts...)
	parent.AppendChild(n)
	return n
}

// Chain hangs a single-child chain of depth tasks under parent, ids
// prefix1..prefixN, and returns them top-down.
func Chain(parent *domain.TaskNode, prefix string, depth int) []*domain.TaskNode {
	out := make([]*domain.TaskNode, 0, depth)
	cur := parent
	for i := 1; i <= depth; i++ {
		cur = AddTask(cur, fmt.Sprintf("%s%d", prefix, i))
		out = append(out, cur)
	}
	return out
}

// Flatten returns root and its descendants in pre-order, detached from
// each other, as a source would report them.
func Flatten(root *domain.TaskNode) []*domain.TaskNode {
	var rows []*domain.TaskNode
	root.Walk(func(n *domain.TaskNode) bool {
		cp := *n
		cp.Children = nil
		rows = append(rows, &cp)
		return true
	})
	return rows
}

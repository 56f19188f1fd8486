package cli

import (
	"time"

	"github.com/alexanderramin/lifemap/internal/cli/formatter"
	"github.com/alexanderramin/lifemap/internal/domain"
	"github.com/alexanderramin/lifemap/internal/tree"
)

// visibleNodes lists the tasks under root in display order. Subtasks of a
// minimized task are hidden unless all is set.
func visibleNodes(root *domain.TaskNode, all bool) []*domain.TaskNode {
	var out []*domain.TaskNode
	if root == nil {
		return out
	}
	for _, c := range root.Children {
		c.Walk(func(n *domain.TaskNode) bool {
			out = append(out, n)
			return all || !n.IsMinimized
		})
	}
	return out
}

func isLastChild(n *domain.TaskNode) bool {
	p := n.Parent()
	return p == nil || p.ChildIndex(n) == len(p.Children)-1
}

// treeItems maps nodes to formatter rows.
func treeItems(nodes []*domain.TaskNode, selectedID string, today time.Time) []formatter.TreeItem {
	items := make([]formatter.TreeItem, 0, len(nodes))
	for _, n := range nodes {
		items = append(items, formatter.TreeItem{
			Title:       n.DisplayName(),
			Level:       n.Level,
			IsLast:      isLastChild(n),
			Completed:   n.IsCompleted,
			Selected:    n.ID == selectedID,
			HasChildren: !n.IsLeaf(),
			Collapsed:   n.IsMinimized,
			Hours:       tree.FormatField(n),
			Derived:     n.HoursLocked,
			DueDate:     n.DueDate,
			Overdue:     formatter.Overdue(n.DueDate, n.IsCompleted, today),
		})
	}
	return items
}

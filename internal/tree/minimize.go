package tree

import "github.com/alexanderramin/lifemap/internal/domain"

// SetMinimized sets n's display state. Minimizing cascades to every
// descendant; expanding affects n alone.
func SetMinimized(n *domain.TaskNode, minimized bool) {
	n.IsMinimized = minimized
	if !minimized {
		return
	}
	for _, d := range n.Descendants() {
		d.IsMinimized = true
	}
}

// ToggleMinimized flips n's display state and returns the new value.
func ToggleMinimized(n *domain.TaskNode) bool {
	SetMinimized(n, !n.IsMinimized)
	return n.IsMinimized
}

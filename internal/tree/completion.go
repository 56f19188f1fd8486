package tree

import "github.com/alexanderramin/lifemap/internal/domain"

// SetCompletion sets n's completion and restores the completion invariants:
// completing a task completes every descendant, and un-completing a task
// un-completes every ancestor up to the root. It returns the number of
// nodes whose value changed, n included.
func SetCompletion(n *domain.TaskNode, completed bool) int {
	changed := 0
	if n.IsCompleted != completed {
		n.IsCompleted = completed
		changed++
	}

	if completed {
		for _, d := range n.Descendants() {
			if !d.IsCompleted {
				d.IsCompleted = true
				changed++
			}
		}
		return changed
	}

	// An already-incomplete ancestor does not end the walk: a completed
	// grandparent above it still has to be cleared.
	for p := n.Parent(); p != nil && !p.IsRoot(); p = p.Parent() {
		if p.IsCompleted {
			p.IsCompleted = false
			changed++
		}
	}
	return changed
}

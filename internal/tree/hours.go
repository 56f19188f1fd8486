package tree

import "github.com/alexanderramin/lifemap/internal/domain"

// RecomputeAncestors re-derives planned hours for n and each ancestor below
// the root. A node with children gets the one-decimal sum of its children
// and is locked; a childless node is unlocked and keeps its value.
func RecomputeAncestors(n *domain.TaskNode) {
	for cur := n; cur != nil && !cur.IsRoot(); cur = cur.Parent() {
		recompute(cur)
	}
}

// RecomputeAll re-derives every node's hours bottom-up. Used after loading,
// where stored values of parent tasks may be stale.
func RecomputeAll(root *domain.TaskNode) {
	var post func(n *domain.TaskNode)
	post = func(n *domain.TaskNode) {
		for _, c := range n.Children {
			post(c)
		}
		if !n.IsRoot() {
			recompute(n)
		}
	}
	post(root)
}

func recompute(n *domain.TaskNode) {
	if n.IsLeaf() {
		n.HoursLocked = false
		return
	}
	sum := SumChildren(n)
	n.PlannedHours = &sum
	n.HoursLocked = true
}

// SumChildren returns the one-decimal sum of n's children's hours, unset
// values counting as 0.
func SumChildren(n *domain.TaskNode) float64 {
	total := 0.0
	for _, c := range n.Children {
		total += c.HoursOrZero()
	}
	return domain.RoundHours(total)
}

// Summary is the project-wide hour tally. Only leaves count, since parent
// hours already fold in their children.
type Summary struct {
	Total     float64
	Remaining float64
}

// Done reports whether all planned work is complete.
func (s Summary) Done() bool {
	return s.Remaining <= 0 && s.Total > 0
}

// Display renders the remaining hours, e.g. "12.5hrs".
func (s Summary) Display() string {
	return domain.FormatHours(s.Remaining) + "hrs"
}

// ProjectRemaining tallies total and remaining leaf hours under root.
func ProjectRemaining(root *domain.TaskNode) Summary {
	var s Summary
	for _, n := range root.Descendants() {
		if !n.IsLeaf() || n.PlannedHours == nil {
			continue
		}
		s.Total += *n.PlannedHours
		if !n.IsCompleted {
			s.Remaining += *n.PlannedHours
		}
	}
	s.Total = domain.RoundHours(s.Total)
	s.Remaining = domain.RoundHours(s.Remaining)
	return s
}

package tree

import (
	"fmt"

	"github.com/alexanderramin/lifemap/internal/domain"
)

// DueDateError reports a task due after its parent.
type DueDateError struct {
	Node          *domain.TaskNode
	DueDate       string
	ParentDueDate string
}

func (e *DueDateError) Error() string {
	return fmt.Sprintf("Validation Error: Task %q cannot be due after its parent.", e.Node.DisplayName())
}

// CheckDueDate returns a *DueDateError when n is due later than its parent.
// Tasks without a parent, without a date, or under an undated parent pass.
func CheckDueDate(n *domain.TaskNode) *DueDateError {
	p := n.Parent()
	if p == nil {
		return nil
	}
	if !domain.DateAfter(n.DueDate, p.DueDate) {
		return nil
	}
	return &DueDateError{Node: n, DueDate: n.DueDate, ParentDueDate: p.DueDate}
}

// ValidateAll checks every task under root once and returns the violations
// in pre-order.
func ValidateAll(root *domain.TaskNode) []*DueDateError {
	var errs []*DueDateError
	for _, n := range root.Descendants() {
		if err := CheckDueDate(n); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

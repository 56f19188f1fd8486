package tree

import (
	"sort"

	"github.com/alexanderramin/lifemap/internal/contract"
	"github.com/alexanderramin/lifemap/internal/domain"
)

// Serialize walks the children of container depth-first into nested task
// payloads. DisplayOrder is the 0-based position among siblings at call
// time. The tree is not modified.
func Serialize(container *domain.TaskNode) []contract.TaskPayload {
	out := make([]contract.TaskPayload, 0, len(container.Children))
	for i, n := range container.Children {
		out = append(out, contract.TaskPayload{
			ItemID:       n.ID,
			ParentItemID: optional(n.ParentID),
			Name:         n.Name,
			Description:  n.Description,
			DueDate:      optional(n.DueDate),
			IsCompleted:  n.IsCompleted,
			IsMinimized:  n.IsMinimized,
			PlannedHours: hoursField(n),
			DisplayOrder: i,
			Subtasks:     Serialize(n),
		})
	}
	return out
}

// BuildSaveRequest wraps the serialized tree with the project id and the
// deletion set (sorted).
func BuildSaveRequest(projectID string, root *domain.TaskNode, deleted []string) contract.SaveRequest {
	ids := append([]string{}, deleted...)
	sort.Strings(ids)
	return contract.SaveRequest{
		ProjectID:      projectID,
		Tasks:          Serialize(root),
		DeletedItemIDs: ids,
	}
}

// FormatField renders a node's hours field: derived values with one
// decimal, entered values in canonical form, "" when unset.
func FormatField(n *domain.TaskNode) string {
	if n.PlannedHours == nil {
		return ""
	}
	if n.HoursLocked {
		return domain.FormatHours(*n.PlannedHours)
	}
	return domain.FormatHoursInput(*n.PlannedHours)
}

func hoursField(n *domain.TaskNode) *string {
	return optional(FormatField(n))
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

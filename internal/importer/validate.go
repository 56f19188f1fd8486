package importer

import (
	"fmt"

	"github.com/alexanderramin/lifemap/internal/domain"
)

// DefaultRootID names the level-0 node when a snapshot does not say.
const DefaultRootID = "root"

// ResolvedRootID returns root_id, else the parent id the first top-level
// task points at, else DefaultRootID.
func (s *Snapshot) ResolvedRootID() string {
	if s.RootID != "" {
		return s.RootID
	}
	if len(s.Tasks) > 0 && s.Tasks[0].ParentItemID != nil && *s.Tasks[0].ParentItemID != "" {
		return *s.Tasks[0].ParentItemID
	}
	return DefaultRootID
}

// ValidateSnapshot checks a snapshot before conversion.
// Returns a slice of all validation errors found.
func ValidateSnapshot(snap *Snapshot) []error {
	var errs []error

	if snap.ProjectID == "" {
		errs = append(errs, fmt.Errorf("project_id is required"))
	}

	rootID := snap.ResolvedRootID()
	seen := map[string]bool{rootID: true}
	errs = append(errs, validateTasks("tasks", snap.Tasks, rootID, 1, seen)...)

	return errs
}

func validateTasks(prefix string, tasks []TaskImport, parentID string, level int, seen map[string]bool) []error {
	var errs []error

	for i, t := range tasks {
		field := fmt.Sprintf("%s[%d]", prefix, i)

		if t.ItemID == "" {
			errs = append(errs, fmt.Errorf("%s.item_id is required", field))
		} else if seen[t.ItemID] {
			errs = append(errs, fmt.Errorf("%s.item_id: duplicate id %q", field, t.ItemID))
		} else {
			seen[t.ItemID] = true
		}

		if t.ParentItemID != nil && *t.ParentItemID != "" && *t.ParentItemID != parentID {
			errs = append(errs, fmt.Errorf("%s.parent_item_id: %q does not match enclosing task %q", field, *t.ParentItemID, parentID))
		}

		if level > domain.MaxSubtaskLevel {
			errs = append(errs, fmt.Errorf("%s: level %d exceeds the maximum of %d", field, level, domain.MaxSubtaskLevel))
		}

		if t.DueDate != nil {
			if _, err := domain.NormalizeDate(*t.DueDate); err != nil {
				errs = append(errs, fmt.Errorf("%s.due_date: %w", field, err))
			}
		}

		if t.PlannedHours != nil {
			if _, err := domain.ParseHours(string(*t.PlannedHours)); err != nil {
				errs = append(errs, fmt.Errorf("%s.planned_hours: %w", field, err))
			}
		}

		if t.DisplayOrder != nil && *t.DisplayOrder < 0 {
			errs = append(errs, fmt.Errorf("%s.display_order must not be negative", field))
		}

		errs = append(errs, validateTasks(field+".subtasks", t.Subtasks, t.ItemID, level+1, seen)...)
	}

	return errs
}

package importer

import (
	"github.com/alexanderramin/lifemap/internal/contract"
	"github.com/alexanderramin/lifemap/internal/domain"
	"github.com/alexanderramin/lifemap/internal/tree"
)

// Convert flattens a validated snapshot into a project and source rows, the
// same shape the SQLite source produces. The level-0 root is synthesized
// from the project. Call ValidateSnapshot first; Convert treats malformed
// dates and hours as unset.
func Convert(snap *Snapshot) (*domain.Project, []*domain.TaskNode) {
	rootID := snap.ResolvedRootID()
	project := &domain.Project{
		ID:     snap.ProjectID,
		Name:   snap.ProjectName,
		RootID: rootID,
	}

	rows := []*domain.TaskNode{{ID: rootID, Name: snap.ProjectName}}
	var flatten func(tasks []TaskImport, parentID string)
	flatten = func(tasks []TaskImport, parentID string) {
		for i, t := range tasks {
			order := i
			if t.DisplayOrder != nil {
				order = *t.DisplayOrder
			}
			rows = append(rows, &domain.TaskNode{
				ID:           t.ItemID,
				ParentID:     parentID,
				Name:         t.Name,
				Description:  t.Description,
				DueDate:      dateOrEmpty(t.DueDate),
				IsCompleted:  t.IsCompleted,
				IsMinimized:  t.IsMinimized,
				PlannedHours: hoursOrNil(t.PlannedHours),
				DisplayOrder: order,
			})
			flatten(t.Subtasks, t.ItemID)
		}
	}
	flatten(snap.Tasks, rootID)

	return project, rows
}

func dateOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	d, err := domain.NormalizeDate(*s)
	if err != nil {
		return ""
	}
	return d
}

func hoursOrNil(h *HoursValue) *float64 {
	if h == nil {
		return nil
	}
	v, err := domain.ParseHours(string(*h))
	if err != nil {
		return nil
	}
	return v
}

// FromTree builds a snapshot of a live tree. Hours fields carry the same
// text the save payload would.
func FromTree(project *domain.Project, root *domain.TaskNode, deleted []string) *Snapshot {
	return &Snapshot{
		ProjectID:      project.ID,
		ProjectName:    project.Name,
		RootID:         root.ID,
		Tasks:          fromPayload(tree.Serialize(root)),
		DeletedItemIDs: deleted,
	}
}

func fromPayload(tasks []contract.TaskPayload) []TaskImport {
	out := make([]TaskImport, 0, len(tasks))
	for _, p := range tasks {
		order := p.DisplayOrder
		t := TaskImport{
			ItemID:       p.ItemID,
			ParentItemID: p.ParentItemID,
			Name:         p.Name,
			Description:  p.Description,
			DueDate:      p.DueDate,
			IsCompleted:  p.IsCompleted,
			IsMinimized:  p.IsMinimized,
			DisplayOrder: &order,
		}
		if p.PlannedHours != nil {
			h := HoursValue(*p.PlannedHours)
			t.PlannedHours = &h
		}
		if len(p.Subtasks) > 0 {
			t.Subtasks = fromPayload(p.Subtasks)
		}
		out = append(out, t)
	}
	return out
}

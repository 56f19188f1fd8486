package contract

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// SaveRequest is the body of POST /save-tasks.
type SaveRequest struct {
	ProjectID      string        `json:"project_id"`
	Tasks          []TaskPayload `json:"tasks"`
	DeletedItemIDs []string      `json:"deleted_item_ids"`
}

// TaskPayload is one serialized task. Subtasks is never nil so it encodes as [].
type TaskPayload struct {
	ItemID       string        `json:"item_id"`
	ParentItemID *string       `json:"parent_item_id"`
	Name         string        `json:"name"`
	Description  string        `json:"description"`
	DueDate      *string       `json:"due_date"`
	IsCompleted  bool          `json:"is_completed"`
	IsMinimized  bool          `json:"is_minimized"`
	PlannedHours *string       `json:"planned_hours"`
	DisplayOrder int           `json:"display_order"`
	Subtasks     []TaskPayload `json:"subtasks"`
}

// SaveResponse is the success body of POST /save-tasks. NewIDs maps the
// local ids of inserted tasks to the ids the backend assigned.
type SaveResponse struct {
	Message string            `json:"message"`
	NewIDs  map[string]ItemID `json:"new_ids_map,omitempty"`
}

// ErrorResponse is the failure body of POST /save-tasks.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// ItemID is a task id as sent by the backend, which uses JSON numbers for
// database ids. Both numbers and strings decode into it.
type ItemID string

func (id *ItemID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ItemID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("item id: %w", err)
	}
	if i, err := n.Int64(); err == nil {
		*id = ItemID(strconv.FormatInt(i, 10))
		return nil
	}
	*id = ItemID(n.String())
	return nil
}

// CountTasks returns the number of tasks in tasks and all nested subtasks.
func CountTasks(tasks []TaskPayload) int {
	n := 0
	for _, t := range tasks {
		n += 1 + CountTasks(t.Subtasks)
	}
	return n
}

package service

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/lifemap/internal/domain"
)

var (
	// ErrNodeNotFound is returned when an id does not resolve to a task.
	ErrNodeNotFound = errors.New("task not found")

	// ErrDepthLimit is returned when an edit would place a task below
	// domain.MaxSubtaskLevel.
	ErrDepthLimit = errors.New("subtask depth limit reached")

	// ErrReadOnlyHours is returned when hours are set on a task with subtasks.
	ErrReadOnlyHours = errors.New("planned hours of a parent task are derived")

	// ErrInvalidMove is returned for moves into the task's own subtree.
	ErrInvalidMove = errors.New("invalid move")

	// ErrInvalidInput is returned for malformed field values.
	ErrInvalidInput = errors.New("invalid input")

	// ErrValidation is returned when the submit gate finds due-date violations.
	ErrValidation = errors.New("validation failed")

	// ErrSaveInFlight is returned while a save is waiting for its response.
	ErrSaveInFlight = errors.New("save in progress")

	// ErrNotLoaded is returned before a project has been loaded.
	ErrNotLoaded = errors.New("no project loaded")
)

// User-facing warning texts.
var (
	msgDepthLimit       = fmt.Sprintf("You can only create up to %d levels of subtasks.", domain.MaxSubtaskLevel)
	msgMoveDepth        = fmt.Sprintf("Moving this task would create more than %d levels of subtasks.", domain.MaxSubtaskLevel)
	msgMoveIntoSelf     = "A task cannot be moved under itself or one of its subtasks."
	msgDueAfterParent   = "A subtask's due date cannot be later than its parent's due date."
	msgInvalidDate      = "Due dates must be written as YYYY-MM-DD."
	msgInvalidHours     = "Planned hours must be a non-negative number."
	msgReadOnlyHours    = "Planned hours of a task with subtasks are the sum of its subtasks."
	msgSaveInFlight     = "Tasks are being saved. Wait for the save to finish."
	msgSaveFailedPrefix = "Failed to save tasks: "
	msgSaveUnknown      = "Unknown error"
	msgSaveConnection   = "Error saving tasks. Please check your connection."
)

// Warning is an error meant to be shown to the user as is. Err carries the
// underlying cause for errors.Is and errors.As.
type Warning struct {
	Message string
	// Details lists further problems when several were found at once.
	Details []string
	Err     error
}

func (w *Warning) Error() string {
	return w.Message
}

func (w *Warning) Unwrap() error {
	return w.Err
}

func warn(msg string, err error) *Warning {
	return &Warning{Message: msg, Err: err}
}

// AsWarning extracts a *Warning from err's chain.
func AsWarning(err error) (*Warning, bool) {
	var w *Warning
	if errors.As(err, &w) {
		return w, true
	}
	return nil, false
}

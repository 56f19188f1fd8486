package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/lifemap/internal/contract"
	"github.com/alexanderramin/lifemap/internal/domain"
	"github.com/alexanderramin/lifemap/internal/saveclient"
	"github.com/alexanderramin/lifemap/internal/tree"
)

type editorService struct {
	source   TreeSource
	saver    Saver
	observer UseCaseObserver
	logger   *slog.Logger

	reloadAfterSave bool

	project   *domain.Project
	tree      *tree.Tree
	nextLocal int
	deleted   map[string]struct{}
	clean     string
	saving    bool
}

// EditorOption configures an editor session.
type EditorOption func(*editorService)

// WithObserver reports every use case to obs.
func WithObserver(obs UseCaseObserver) EditorOption {
	return func(s *editorService) {
		if obs != nil {
			s.observer = obs
		}
	}
}

// WithLogger sets the logger for conditions that abort an operation
// without a user-facing warning.
func WithLogger(l *slog.Logger) EditorOption {
	return func(s *editorService) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithReloadAfterSave reloads the tree from the source after every
// successful save. Use it when the source reads the backend's own store.
func WithReloadAfterSave() EditorOption {
	return func(s *editorService) {
		s.reloadAfterSave = true
	}
}

func NewEditorService(source TreeSource, saver Saver, opts ...EditorOption) EditorService {
	s := &editorService{
		source:   source,
		saver:    saver,
		observer: NoopUseCaseObserver{},
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		deleted:  make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// observe reports a finished use case. Call it deferred with a pointer to
// the named error result.
func (s *editorService) observe(ctx context.Context, name string, startedAt time.Time, fields map[string]any, errp *error) {
	var err error
	if errp != nil {
		err = *errp
	}
	s.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:      name,
		StartedAt: startedAt,
		Duration:  time.Since(startedAt),
		Success:   err == nil,
		Err:       err,
		Fields:    fields,
	})
}

func (s *editorService) Load(ctx context.Context, projectID string) (err error) {
	startedAt := time.Now()
	fields := map[string]any{"project": projectID}
	defer s.observe(ctx, "load-project", startedAt, fields, &err)

	project, rows, err := s.source.LoadProject(ctx, projectID)
	if err != nil {
		return fmt.Errorf("loading project %s: %w", projectID, err)
	}
	asm, err := tree.Assemble(rows)
	if err != nil {
		return fmt.Errorf("building task tree for project %s: %w", projectID, err)
	}
	if len(asm.Orphans) > 0 {
		s.logger.WarnContext(ctx, "dropped orphan tasks", "project", projectID, "ids", asm.Orphans)
	}
	tree.RecomputeAll(asm.Tree.Root)

	project.RootID = asm.Tree.Root.ID
	s.project = project
	s.tree = asm.Tree
	s.deleted = make(map[string]struct{})
	s.saving = false
	s.nextLocal = nextLocalID(asm.Tree)
	s.markClean()

	fields["task_count"] = asm.Tree.Len()
	fields["orphan_count"] = len(asm.Orphans)
	return nil
}

// nextLocalID continues numbering after any local ids already in the tree,
// as found in snapshots exported before a save.
func nextLocalID(t *tree.Tree) int {
	next := 1
	for _, n := range t.Tasks() {
		if !n.IsLocal() {
			continue
		}
		v, err := strconv.Atoi(strings.TrimPrefix(n.ID, domain.LocalIDPrefix))
		if err == nil && v >= next {
			next = v + 1
		}
	}
	return next
}

func (s *editorService) Reload(ctx context.Context) error {
	if s.project == nil {
		return ErrNotLoaded
	}
	if s.saving {
		return warn(msgSaveInFlight, ErrSaveInFlight)
	}
	return s.Load(ctx, s.project.ID)
}

func (s *editorService) Project() *domain.Project {
	return s.project
}

func (s *editorService) Root() *domain.TaskNode {
	if s.tree == nil {
		return nil
	}
	return s.tree.Root
}

func (s *editorService) Node(id string) (*domain.TaskNode, error) {
	if s.tree == nil {
		return nil, ErrNotLoaded
	}
	n, ok := s.tree.Lookup(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNodeNotFound, id)
	}
	return n, nil
}

// resolve looks up any node, root included. Unresolvable ids are logged.
func (s *editorService) resolve(ctx context.Context, op, id string) (*domain.TaskNode, error) {
	n, err := s.Node(id)
	if err != nil {
		s.logger.WarnContext(ctx, "operation aborted", "op", op, "id", id, "error", err)
		return nil, err
	}
	return n, nil
}

// task looks up an editable task. The level-0 root is not one.
func (s *editorService) task(ctx context.Context, op, id string) (*domain.TaskNode, error) {
	n, err := s.resolve(ctx, op, id)
	if err != nil {
		return nil, err
	}
	if n.IsRoot() {
		err = fmt.Errorf("%w: %s is the project root", ErrNodeNotFound, id)
		s.logger.WarnContext(ctx, "operation aborted", "op", op, "id", id, "error", err)
		return nil, err
	}
	return n, nil
}

// parentOrRoot maps an empty parent id to the level-0 root.
func (s *editorService) parentOrRoot(ctx context.Context, op, id string) (*domain.TaskNode, error) {
	if id == "" {
		if s.tree == nil {
			return nil, ErrNotLoaded
		}
		return s.tree.Root, nil
	}
	return s.resolve(ctx, op, id)
}

func (s *editorService) editable() error {
	if s.tree == nil {
		return ErrNotLoaded
	}
	if s.saving {
		return warn(msgSaveInFlight, ErrSaveInFlight)
	}
	return nil
}

func (s *editorService) AddChild(ctx context.Context, parentID string) (child *domain.TaskNode, err error) {
	startedAt := time.Now()
	fields := map[string]any{"parent": parentID}
	defer s.observe(ctx, "add-child", startedAt, fields, &err)

	if err = s.editable(); err != nil {
		return nil, err
	}
	parent, err := s.parentOrRoot(ctx, "add-child", parentID)
	if err != nil {
		return nil, err
	}
	if parent.Level+1 > domain.MaxSubtaskLevel {
		return nil, warn(msgDepthLimit, ErrDepthLimit)
	}

	child = &domain.TaskNode{ID: domain.LocalID(s.nextLocal)}
	s.nextLocal++
	parent.AppendChild(child)
	parent.IsMinimized = false
	s.tree.Register(child)
	tree.RecomputeAncestors(child)

	fields["id"] = child.ID
	fields["level"] = child.Level
	return child, nil
}

func (s *editorService) DeleteNode(ctx context.Context, id string) (err error) {
	startedAt := time.Now()
	fields := map[string]any{"id": id}
	defer s.observe(ctx, "delete-task", startedAt, fields, &err)

	if err = s.editable(); err != nil {
		return err
	}
	n, err := s.task(ctx, "delete-task", id)
	if err != nil {
		return err
	}

	parent := n.Parent()
	fields["subtree_size"] = len(n.Descendants()) + 1
	parent.RemoveChild(n)
	s.tree.Unregister(n)
	if !n.IsLocal() {
		s.deleted[n.ID] = struct{}{}
		fields["tombstoned"] = true
	}
	tree.RecomputeAncestors(parent)
	return nil
}

// Reparent makes a task the last child of newParentID. Naming the task's
// current parent leaves it in place.
func (s *editorService) Reparent(ctx context.Context, id, newParentID string) (err error) {
	startedAt := time.Now()
	fields := map[string]any{"id": id, "parent": newParentID}
	defer s.observe(ctx, "reparent-task", startedAt, fields, &err)

	if err = s.editable(); err != nil {
		return err
	}
	n, err := s.task(ctx, "reparent-task", id)
	if err != nil {
		return err
	}
	target, err := s.parentOrRoot(ctx, "reparent-task", newParentID)
	if err != nil {
		return err
	}
	if target == n.Parent() {
		fields["moved"] = false
		return nil
	}
	return s.move(n, target, -1)
}

// Move places a task at index among newParentID's children; a negative index
// appends. The index counts siblings after the task has left its old place.
func (s *editorService) Move(ctx context.Context, id, newParentID string, index int) (err error) {
	startedAt := time.Now()
	fields := map[string]any{"id": id, "parent": newParentID, "index": index}
	defer s.observe(ctx, "move-task", startedAt, fields, &err)

	if err = s.editable(); err != nil {
		return err
	}
	n, err := s.task(ctx, "move-task", id)
	if err != nil {
		return err
	}
	target, err := s.parentOrRoot(ctx, "move-task", newParentID)
	if err != nil {
		return err
	}
	return s.move(n, target, index)
}

func (s *editorService) move(n, target *domain.TaskNode, index int) error {
	if n.Contains(target) {
		return warn(msgMoveIntoSelf, ErrInvalidMove)
	}
	if target.Level+1+n.Height() > domain.MaxSubtaskLevel {
		return warn(msgMoveDepth, fmt.Errorf("%w: %w", ErrInvalidMove, ErrDepthLimit))
	}

	old := n.Parent()
	old.RemoveChild(n)
	if index < 0 {
		index = len(target.Children)
	}
	target.InsertChild(n, index)
	n.Relevel()

	tree.RecomputeAncestors(old)
	if target != old {
		tree.RecomputeAncestors(target)
	}
	return nil
}

func (s *editorService) MoveUp(ctx context.Context, id string) error {
	return s.shift(ctx, "move-up", id, func(n *domain.TaskNode) (*domain.TaskNode, int, bool) {
		p := n.Parent()
		idx := p.ChildIndex(n)
		return p, idx - 1, idx > 0
	})
}

func (s *editorService) MoveDown(ctx context.Context, id string) error {
	return s.shift(ctx, "move-down", id, func(n *domain.TaskNode) (*domain.TaskNode, int, bool) {
		p := n.Parent()
		idx := p.ChildIndex(n)
		return p, idx + 1, idx < len(p.Children)-1
	})
}

// Indent makes the task the last child of its previous sibling, which is
// expanded once the move has gone through.
func (s *editorService) Indent(ctx context.Context, id string) error {
	var prev *domain.TaskNode
	err := s.shift(ctx, "indent", id, func(n *domain.TaskNode) (*domain.TaskNode, int, bool) {
		p := n.Parent()
		idx := p.ChildIndex(n)
		if idx <= 0 {
			return nil, 0, false
		}
		prev = p.Children[idx-1]
		return prev, len(prev.Children), true
	})
	if err == nil && prev != nil {
		prev.IsMinimized = false
	}
	return err
}

// Outdent makes the task the next sibling of its parent.
func (s *editorService) Outdent(ctx context.Context, id string) error {
	return s.shift(ctx, "outdent", id, func(n *domain.TaskNode) (*domain.TaskNode, int, bool) {
		p := n.Parent()
		if p.IsRoot() {
			return nil, 0, false
		}
		grand := p.Parent()
		return grand, grand.ChildIndex(p) + 1, true
	})
}

// shift runs a keyboard move. pick returns the target parent and index, or
// false when the task is already at the edge and nothing moves.
func (s *editorService) shift(ctx context.Context, op, id string, pick func(*domain.TaskNode) (*domain.TaskNode, int, bool)) (err error) {
	startedAt := time.Now()
	fields := map[string]any{"id": id}
	defer s.observe(ctx, op, startedAt, fields, &err)

	if err = s.editable(); err != nil {
		return err
	}
	n, err := s.task(ctx, op, id)
	if err != nil {
		return err
	}
	target, index, ok := pick(n)
	fields["moved"] = ok
	if !ok {
		return nil
	}
	return s.move(n, target, index)
}

// edit runs a single-field change on an editable task.
func (s *editorService) edit(ctx context.Context, op, id string, fn func(n *domain.TaskNode) error) (err error) {
	startedAt := time.Now()
	fields := map[string]any{"id": id}
	defer s.observe(ctx, op, startedAt, fields, &err)

	if err = s.editable(); err != nil {
		return err
	}
	n, err := s.task(ctx, op, id)
	if err != nil {
		return err
	}
	return fn(n)
}

func (s *editorService) SetName(ctx context.Context, id, name string) error {
	return s.edit(ctx, "set-name", id, func(n *domain.TaskNode) error {
		n.Name = name
		return nil
	})
}

func (s *editorService) SetDescription(ctx context.Context, id, description string) error {
	return s.edit(ctx, "set-description", id, func(n *domain.TaskNode) error {
		n.Description = description
		return nil
	})
}

func (s *editorService) SetHours(ctx context.Context, id, input string) error {
	return s.edit(ctx, "set-hours", id, func(n *domain.TaskNode) error {
		if !n.IsLeaf() {
			return warn(msgReadOnlyHours, ErrReadOnlyHours)
		}
		v, err := domain.ParseHours(input)
		if err != nil {
			return warn(msgInvalidHours, fmt.Errorf("%w: %w", ErrInvalidInput, err))
		}
		n.PlannedHours = v
		tree.RecomputeAncestors(n)
		return nil
	})
}

func (s *editorService) SetDueDate(ctx context.Context, id, input string) error {
	return s.edit(ctx, "set-due-date", id, func(n *domain.TaskNode) error {
		d, err := domain.NormalizeDate(input)
		if err != nil {
			return warn(msgInvalidDate, fmt.Errorf("%w: %w", ErrInvalidInput, err))
		}
		n.DueDate = d
		if violation := tree.CheckDueDate(n); violation != nil {
			n.DueDate = ""
			return warn(msgDueAfterParent, violation)
		}
		return nil
	})
}

func (s *editorService) SetCompletion(ctx context.Context, id string, completed bool) error {
	return s.edit(ctx, "set-completion", id, func(n *domain.TaskNode) error {
		tree.SetCompletion(n, completed)
		return nil
	})
}

func (s *editorService) ToggleMinimized(ctx context.Context, id string) (minimized bool, err error) {
	err = s.edit(ctx, "toggle-minimized", id, func(n *domain.TaskNode) error {
		minimized = tree.ToggleMinimized(n)
		return nil
	})
	return minimized, err
}

func (s *editorService) Summary() tree.Summary {
	if s.tree == nil {
		return tree.Summary{}
	}
	return tree.ProjectRemaining(s.tree.Root)
}

func (s *editorService) DeletedIDs() []string {
	ids := make([]string, 0, len(s.deleted))
	for id := range s.deleted {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (s *editorService) Payload() contract.SaveRequest {
	if s.tree == nil {
		return contract.SaveRequest{Tasks: []contract.TaskPayload{}, DeletedItemIDs: []string{}}
	}
	return tree.BuildSaveRequest(s.project.ID, s.tree.Root, s.DeletedIDs())
}

func (s *editorService) Validate() []*tree.DueDateError {
	if s.tree == nil {
		return nil
	}
	return tree.ValidateAll(s.tree.Root)
}

func (s *editorService) fingerprint() string {
	fp, err := contract.Fingerprint(s.Payload())
	if err != nil {
		// Payloads hold only strings, numbers and bools.
		return ""
	}
	return fp
}

func (s *editorService) markClean() {
	s.clean = s.fingerprint()
}

func (s *editorService) Dirty() bool {
	if s.tree == nil {
		return false
	}
	return s.fingerprint() != s.clean
}

func (s *editorService) Saving() bool {
	return s.saving
}

func (s *editorService) PrepareSave(ctx context.Context) (req contract.SaveRequest, err error) {
	startedAt := time.Now()
	fields := map[string]any{}
	defer s.observe(ctx, "prepare-save", startedAt, fields, &err)

	if err = s.editable(); err != nil {
		return contract.SaveRequest{}, err
	}
	if violations := s.Validate(); len(violations) > 0 {
		w := warn(violations[0].Error(), fmt.Errorf("%w: %w", ErrValidation, violations[0]))
		for _, v := range violations[1:] {
			w.Details = append(w.Details, v.Error())
		}
		fields["violations"] = len(violations)
		return contract.SaveRequest{}, w
	}

	req = s.Payload()
	fields["project"] = req.ProjectID
	fields["task_count"] = contract.CountTasks(req.Tasks)
	fields["deleted_count"] = len(req.DeletedItemIDs)
	s.saving = true
	return req, nil
}

func (s *editorService) Send(ctx context.Context, req contract.SaveRequest) (*contract.SaveResponse, error) {
	return s.saver.Save(ctx, req)
}

func (s *editorService) CompleteSave(ctx context.Context, resp *contract.SaveResponse, sendErr error) (err error) {
	startedAt := time.Now()
	fields := map[string]any{}
	defer s.observe(ctx, "complete-save", startedAt, fields, &err)

	s.saving = false
	if sendErr != nil {
		return saveWarning(sendErr)
	}

	mapped := 0
	if resp != nil {
		for local, serverID := range resp.NewIDs {
			n, ok := s.tree.Lookup(local)
			if !ok {
				continue
			}
			s.tree.Rename(n, string(serverID))
			mapped++
		}
	}
	fields["mapped_ids"] = mapped
	s.deleted = make(map[string]struct{})

	if s.reloadAfterSave {
		if err = s.Reload(ctx); err != nil {
			return fmt.Errorf("reloading after save: %w", err)
		}
		return nil
	}
	s.markClean()
	return nil
}

// saveWarning maps a save failure to the text shown to the user.
func saveWarning(err error) *Warning {
	var rejected *saveclient.RejectedError
	if errors.As(err, &rejected) {
		return warn(msgSaveFailedPrefix+domain.CoalesceStr(rejected.Message, msgSaveUnknown), err)
	}
	return warn(msgSaveConnection, err)
}

func (s *editorService) Submit(ctx context.Context) (*contract.SaveResponse, error) {
	req, err := s.PrepareSave(ctx)
	if err != nil {
		return nil, err
	}
	resp, sendErr := s.Send(ctx, req)
	if err := s.CompleteSave(ctx, resp, sendErr); err != nil {
		return nil, err
	}
	return resp, nil
}

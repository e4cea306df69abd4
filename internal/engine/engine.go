// Package engine keeps tasks, epics and subtasks mutually consistent.
//
// The Engine owns the three entity stores, the timeline index and the view
// history. It enforces foreign keys between subtasks and epics, derives epic
// status and time windows from their children, cascades removals, and rejects
// scheduled items whose time window overlaps another.
//
// Structural problems (nil input, invalid fields, unknown IDs, dangling epic
// references) are absorbed as no-ops that return a nil result. A time overlap
// is the only failure returned as an error, always a *domain.OverlapError.
//
// Engine is not safe for concurrent use; the host serializes access.
package engine

import (
	"slices"

	"github.com/runoshun/kanban/internal/domain"
	"github.com/runoshun/kanban/internal/history"
	"github.com/runoshun/kanban/internal/store"
	"github.com/runoshun/kanban/internal/timeline"
)

// Engine is the consistency engine for work items.
type Engine struct {
	alloc    *store.Allocator
	tasks    *store.EntityStore[domain.Task, *domain.Task]
	epics    *store.EntityStore[domain.Epic, *domain.Epic]
	subtasks *store.EntityStore[domain.Subtask, *domain.Subtask]
	timeline *timeline.Index
	history  *history.Cache
}

// Option configures an Engine.
type Option func(*Engine)

// WithHistoryLimit bounds the view history to n entries. 0 means unbounded.
func WithHistoryLimit(n int) Option {
	return func(e *Engine) {
		e.history = history.New(n)
	}
}

// WithAllocator makes the engine draw IDs from alloc.
func WithAllocator(alloc *store.Allocator) Option {
	return func(e *Engine) {
		if alloc != nil {
			e.alloc = alloc
		}
	}
}

// New creates an empty Engine with an unbounded history.
func New(opts ...Option) *Engine {
	e := &Engine{
		alloc:    store.NewAllocator(),
		timeline: timeline.New(),
		history:  history.New(0),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.tasks = store.NewEntityStore[domain.Task](e.alloc)
	e.epics = store.NewEntityStore[domain.Epic](e.alloc)
	e.subtasks = store.NewEntityStore[domain.Subtask](e.alloc)
	return e
}

// CreateTask stores t with a fresh ID and status NEW and returns t.
// Invalid input yields (nil, nil). A scheduled task overlapping another item
// yields a *domain.OverlapError and nothing is stored.
func (e *Engine) CreateTask(t *domain.Task) (*domain.Task, error) {
	if t == nil || t.Validate() != nil {
		return nil, nil
	}
	if err := e.checkOverlap(t, t.Name); err != nil {
		return nil, err
	}
	created := e.tasks.Create(t)
	e.timeline.Insert(created)
	return created, nil
}

// CreateEpic stores ep with a fresh ID and returns it. Subtask IDs and time
// fields supplied by the caller are discarded; an epic starts empty and NEW.
func (e *Engine) CreateEpic(ep *domain.Epic) (*domain.Epic, error) {
	if ep == nil || ep.Validate() != nil {
		return nil, nil
	}
	ep.SubtaskIDs = nil
	ep.Apply(domain.ComputeAggregate(nil))
	return e.epics.Create(ep), nil
}

// CreateSubtask stores s under its epic and recomputes the epic.
// A subtask naming an unknown epic yields (nil, nil).
func (e *Engine) CreateSubtask(s *domain.Subtask) (*domain.Subtask, error) {
	if s == nil || s.Validate() != nil {
		return nil, nil
	}
	parent, ok := e.epics.Get(s.EpicID)
	if !ok {
		return nil, nil
	}
	if err := e.checkOverlap(s, s.Name); err != nil {
		return nil, err
	}

	created := e.subtasks.Create(s)
	e.timeline.Insert(created)

	parent.SubtaskIDs = append(parent.SubtaskIDs, created.ID)
	e.epics.Update(parent)
	e.recompute(parent.ID)
	return created, nil
}

// UpdateTask replaces the stored task with t and returns a copy of the result.
func (e *Engine) UpdateTask(t *domain.Task) (*domain.Task, error) {
	if t == nil || !e.tasks.Exists(t.ID) || !validForUpdate(t) {
		return nil, nil
	}
	if err := e.checkOverlap(t, t.Name); err != nil {
		return nil, err
	}
	e.tasks.Update(t)
	e.timeline.Replace(t)
	return t.Clone(), nil
}

// UpdateEpic changes the epic's name and description. Status, time fields and
// the child list stay derived. If ep lists subtask IDs, every one must already
// belong to the epic or the update is a no-op.
func (e *Engine) UpdateEpic(ep *domain.Epic) (*domain.Epic, error) {
	if ep == nil || ep.Validate() != nil {
		return nil, nil
	}
	current, ok := e.epics.Get(ep.ID)
	if !ok {
		return nil, nil
	}
	for _, id := range ep.SubtaskIDs {
		if !current.HasSubtask(id) {
			return nil, nil
		}
	}

	current.Name = ep.Name
	current.Description = ep.Description
	e.epics.Update(current)
	return current, nil
}

// UpdateSubtask replaces the stored subtask with s. Moving it to another epic
// detaches it from the old one; both epics are recomputed.
func (e *Engine) UpdateSubtask(s *domain.Subtask) (*domain.Subtask, error) {
	if s == nil || !validForUpdate(&s.Task) {
		return nil, nil
	}
	old, ok := e.subtasks.Get(s.ID)
	if !ok || !e.epics.Exists(s.EpicID) {
		return nil, nil
	}
	if err := e.checkOverlap(s, s.Name); err != nil {
		return nil, err
	}

	e.subtasks.Update(s)
	e.timeline.Replace(s)

	if old.EpicID != s.EpicID {
		e.detach(old.EpicID, s.ID)
		if parent, ok := e.epics.Get(s.EpicID); ok {
			parent.SubtaskIDs = append(parent.SubtaskIDs, s.ID)
			e.epics.Update(parent)
		}
		e.recompute(old.EpicID)
	}
	e.recompute(s.EpicID)
	return s.Clone(), nil
}

// RemoveTask deletes the task with the given ID.
func (e *Engine) RemoveTask(id int) bool {
	if !e.tasks.Remove(id) {
		return false
	}
	e.timeline.Remove(id)
	e.history.Remove(id)
	return true
}

// RemoveEpic deletes the epic and, first, each of its subtasks in order.
func (e *Engine) RemoveEpic(id int) bool {
	ep, ok := e.epics.Get(id)
	if !ok {
		return false
	}
	for _, sid := range ep.SubtaskIDs {
		e.dropSubtask(sid)
	}
	e.epics.Remove(id)
	e.history.Remove(id)
	return true
}

// RemoveSubtask deletes the subtask and recomputes its epic.
func (e *Engine) RemoveSubtask(id int) bool {
	s, ok := e.subtasks.Get(id)
	if !ok {
		return false
	}
	e.dropSubtask(id)
	e.detach(s.EpicID, id)
	e.recompute(s.EpicID)
	return true
}

// Task returns a copy of the task and records the view in history.
func (e *Engine) Task(id int) (*domain.Task, bool) {
	t, ok := e.tasks.Get(id)
	if ok {
		e.history.Touch(t)
	}
	return t, ok
}

// Epic returns a copy of the epic and records the view in history.
func (e *Engine) Epic(id int) (*domain.Epic, bool) {
	ep, ok := e.epics.Get(id)
	if ok {
		e.history.Touch(ep)
	}
	return ep, ok
}

// Subtask returns a copy of the subtask and records the view in history.
func (e *Engine) Subtask(id int) (*domain.Subtask, bool) {
	s, ok := e.subtasks.Get(id)
	if ok {
		e.history.Touch(s)
	}
	return s, ok
}

// Find returns a copy of the item with the given ID, whatever its kind,
// without recording a view.
func (e *Engine) Find(id int) (domain.Item, bool) {
	if t, ok := e.tasks.Get(id); ok {
		return t, true
	}
	if ep, ok := e.epics.Get(id); ok {
		return ep, true
	}
	if s, ok := e.subtasks.Get(id); ok {
		return s, true
	}
	return nil, false
}

// Tasks returns copies of all tasks ordered by ID.
func (e *Engine) Tasks() []*domain.Task {
	return sortedByID(e.tasks.All())
}

// Epics returns copies of all epics ordered by ID.
func (e *Engine) Epics() []*domain.Epic {
	return sortedByID(e.epics.All())
}

// Subtasks returns copies of all subtasks ordered by ID.
func (e *Engine) Subtasks() []*domain.Subtask {
	return sortedByID(e.subtasks.All())
}

// SubtasksOf returns copies of the epic's subtasks ordered by ID.
// An unknown epic yields an empty slice.
func (e *Engine) SubtasksOf(epicID int) []*domain.Subtask {
	out := make([]*domain.Subtask, 0)
	for _, s := range e.subtasks.All() {
		if s.EpicID == epicID {
			out = append(out, s)
		}
	}
	return sortedByID(out)
}

// Items returns copies of every task, epic and subtask ordered by ID.
func (e *Engine) Items() []domain.Item {
	out := make([]domain.Item, 0, e.tasks.Len()+e.epics.Len()+e.subtasks.Len())
	for _, t := range e.tasks.All() {
		out = append(out, t)
	}
	for _, ep := range e.epics.All() {
		out = append(out, ep)
	}
	for _, s := range e.subtasks.All() {
		out = append(out, s)
	}
	slices.SortFunc(out, func(a, b domain.Item) int {
		return a.ItemID() - b.ItemID()
	})
	return out
}

// Prioritized returns copies of the scheduled tasks and subtasks in timeline order.
func (e *Engine) Prioritized() []domain.Item {
	entries := e.timeline.Entries()
	out := make([]domain.Item, 0, len(entries))
	for _, entry := range entries {
		switch entry.Kind {
		case domain.KindTask:
			if t, ok := e.tasks.Get(entry.ID); ok {
				out = append(out, t)
			}
		case domain.KindSubtask:
			if s, ok := e.subtasks.Get(entry.ID); ok {
				out = append(out, s)
			}
		}
	}
	return out
}

// History returns the viewed items, most recent first.
func (e *Engine) History() []domain.Snapshot {
	return e.history.List()
}

// HistoryLimit returns the history capacity (0 = unbounded).
func (e *Engine) HistoryLimit() int {
	return e.history.MaxSize()
}

// NextID reports the ID the next created item will receive.
func (e *Engine) NextID() int {
	return e.alloc.Peek()
}

// checkOverlap returns a *domain.OverlapError if item's window collides with
// an indexed item other than itself.
func (e *Engine) checkOverlap(item domain.Item, name string) error {
	conflict, ok := e.timeline.Overlapping(item)
	if !ok {
		return nil
	}
	return &domain.OverlapError{
		Name:       name,
		Kind:       item.ItemKind(),
		ID:         item.ItemID(),
		ConflictID: conflict,
	}
}

// dropSubtask removes a subtask from the store, timeline and history without
// touching its epic.
func (e *Engine) dropSubtask(id int) {
	e.subtasks.Remove(id)
	e.timeline.Remove(id)
	e.history.Remove(id)
}

// detach removes subtaskID from the epic's child list.
func (e *Engine) detach(epicID, subtaskID int) {
	ep, ok := e.epics.Get(epicID)
	if !ok {
		return
	}
	ep.SubtaskIDs = slices.DeleteFunc(ep.SubtaskIDs, func(id int) bool {
		return id == subtaskID
	})
	e.epics.Update(ep)
}

// recompute derives the epic's status and time window from its current
// subtasks and writes them back.
func (e *Engine) recompute(epicID int) {
	ep, ok := e.epics.Get(epicID)
	if !ok {
		return
	}
	children := make([]*domain.Subtask, 0, len(ep.SubtaskIDs))
	for _, id := range ep.SubtaskIDs {
		if s, ok := e.subtasks.Get(id); ok {
			children = append(children, s)
		}
	}
	ep.Apply(domain.ComputeAggregate(children))
	e.epics.Update(ep)
}

// validForUpdate requires a valid explicit status in addition to Validate.
func validForUpdate(t *domain.Task) bool {
	return t.Validate() == nil && t.Status.IsValid()
}

type identified interface {
	ItemID() int
}

func sortedByID[T identified](items []T) []T {
	slices.SortFunc(items, func(a, b T) int {
		return a.ItemID() - b.ItemID()
	})
	return items
}

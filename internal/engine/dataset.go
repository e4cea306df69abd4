package engine

import (
	"slices"

	"github.com/runoshun/kanban/internal/domain"
)

// Export returns copies of every item, each kind ordered by ID.
func (e *Engine) Export() *domain.Dataset {
	return &domain.Dataset{
		Tasks:    e.Tasks(),
		Epics:    e.Epics(),
		Subtasks: e.Subtasks(),
	}
}

// Restore builds an Engine from a persisted dataset.
//
// Epic child lists are rebuilt from each subtask's EpicID; subtasks whose
// epic is missing are dropped. The allocator resumes after the highest ID in
// data, the timeline is rebuilt and every epic is recomputed. Persisted time
// windows are trusted and not re-checked for overlaps.
func Restore(data *domain.Dataset, opts ...Option) *Engine {
	e := New(opts...)
	if data == nil {
		return e
	}

	for _, t := range data.Tasks {
		if t == nil {
			continue
		}
		e.tasks.Load(t)
		e.timeline.Insert(t)
	}

	for _, ep := range data.Epics {
		if ep == nil {
			continue
		}
		c := ep.Clone()
		c.SubtaskIDs = nil
		e.epics.Load(c)
	}

	subtasks := slices.Clone(data.Subtasks)
	subtasks = slices.DeleteFunc(subtasks, func(s *domain.Subtask) bool {
		return s == nil || s.ID <= 0
	})
	slices.SortFunc(subtasks, func(a, b *domain.Subtask) int {
		return a.ID - b.ID
	})
	for _, s := range subtasks {
		parent, ok := e.epics.Get(s.EpicID)
		if !ok {
			continue
		}
		e.subtasks.Load(s)
		e.timeline.Insert(s)
		parent.SubtaskIDs = append(parent.SubtaskIDs, s.ID)
		e.epics.Update(parent)
	}

	for _, ep := range e.epics.All() {
		e.recompute(ep.ID)
	}

	// A shared allocator may already be ahead of the dataset.
	if maxID := data.MaxID(); maxID >= e.alloc.Peek() {
		e.alloc.ResumeFrom(maxID)
	}
	return e
}

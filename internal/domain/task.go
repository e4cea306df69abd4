// Package domain contains core business entities and interfaces.
package domain

import (
	"slices"
	"time"
)

// Kind identifies which of the three work item types a value is.
type Kind string

const (
	KindTask    Kind = "TASK"    // Standalone task
	KindEpic    Kind = "EPIC"    // Composite item derived from its subtasks
	KindSubtask Kind = "SUBTASK" // Task owned by exactly one epic
)

// IsValid returns true if the kind is a known value.
func (k Kind) IsValid() bool {
	return k == KindTask || k == KindEpic || k == KindSubtask
}

// Display returns a human-readable representation of the kind.
func (k Kind) Display() string {
	switch k {
	case KindTask:
		return "task"
	case KindEpic:
		return "epic"
	case KindSubtask:
		return "subtask"
	default:
		return string(k)
	}
}

// Item is the capability view shared by tasks, epics and subtasks.
type Item interface {
	ItemID() int
	ItemKind() Kind
	// Start returns the start time if set.
	Start() (time.Time, bool)
	// End returns the end time if it can be determined.
	End() (time.Time, bool)
}

// Task represents a standalone work item.
// Fields are ordered to minimize memory padding.
type Task struct {
	StartTime   *time.Time     // Scheduled start (optional)
	Duration    *time.Duration // Planned duration (optional)
	Name        string         // Name
	Description string         // Description (optional)
	Status      Status         // Current status
	ID          int            // Assigned on creation
}

// ItemID returns the task ID.
func (t *Task) ItemID() int { return t.ID }

// ItemKind returns KindTask.
func (t *Task) ItemKind() Kind { return KindTask }

// SetID sets the task ID.
func (t *Task) SetID(id int) { t.ID = id }

// SetStatus sets the task status.
func (t *Task) SetStatus(s Status) { t.Status = s }

// Start returns the start time if set.
func (t *Task) Start() (time.Time, bool) {
	if t.StartTime == nil {
		return time.Time{}, false
	}
	return *t.StartTime, true
}

// End returns StartTime + Duration when both are set.
func (t *Task) End() (time.Time, bool) {
	if t.StartTime == nil || t.Duration == nil {
		return time.Time{}, false
	}
	return t.StartTime.Add(*t.Duration), true
}

// IsScheduled returns true if the task carries both a start time and a duration,
// which is what places it on the timeline.
func (t *Task) IsScheduled() bool {
	return t.StartTime != nil && t.Duration != nil
}

// Validate checks the caller-settable fields.
func (t *Task) Validate() error {
	if t.Name == "" {
		return ErrEmptyName
	}
	if t.Status != "" && !t.Status.IsValid() {
		return ErrInvalidStatus
	}
	// Durations are stored as whole minutes.
	if t.Duration != nil && (*t.Duration < 0 || *t.Duration%time.Minute != 0) {
		return ErrInvalidInput
	}
	return nil
}

// Clone returns a deep copy of the task.
func (t *Task) Clone() *Task {
	c := *t
	c.StartTime = cloneTime(t.StartTime)
	c.Duration = cloneDuration(t.Duration)
	return &c
}

// Epic is a composite work item. Its status and time window are derived from
// its subtasks and never taken from callers.
// Fields are ordered to minimize memory padding.
type Epic struct {
	EndTime    *time.Time // Latest subtask end (derived)
	SubtaskIDs []int      // Child subtask IDs in attach order (engine-maintained)
	Task
}

// ItemKind returns KindEpic.
func (e *Epic) ItemKind() Kind { return KindEpic }

// End returns the derived end time.
func (e *Epic) End() (time.Time, bool) {
	if e.EndTime == nil {
		return time.Time{}, false
	}
	return *e.EndTime, true
}

// HasSubtask returns true if id is one of the epic's children.
func (e *Epic) HasSubtask(id int) bool {
	return slices.Contains(e.SubtaskIDs, id)
}

// Clone returns a deep copy of the epic.
func (e *Epic) Clone() *Epic {
	return &Epic{
		Task:       *e.Task.Clone(),
		EndTime:    cloneTime(e.EndTime),
		SubtaskIDs: slices.Clone(e.SubtaskIDs),
	}
}

// Subtask is a task owned by exactly one epic.
// Fields are ordered to minimize memory padding.
type Subtask struct {
	Task
	EpicID int // Owning epic (required)
}

// ItemKind returns KindSubtask.
func (s *Subtask) ItemKind() Kind { return KindSubtask }

// Clone returns a deep copy of the subtask.
func (s *Subtask) Clone() *Subtask {
	return &Subtask{
		Task:   *s.Task.Clone(),
		EpicID: s.EpicID,
	}
}

// CloneItem returns a deep copy of any work item.
func CloneItem(item Item) Item {
	switch v := item.(type) {
	case *Task:
		return v.Clone()
	case *Epic:
		return v.Clone()
	case *Subtask:
		return v.Clone()
	default:
		return item
	}
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}

func cloneDuration(d *time.Duration) *time.Duration {
	if d == nil {
		return nil
	}
	c := *d
	return &c
}

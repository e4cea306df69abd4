package domain

import (
	"slices"
	"time"
)

// Snapshot is a read-only copy of a work item captured at a point in time.
// It has no exported fields or setters; later changes to the item it was
// taken from are not reflected.
// Fields are ordered to minimize memory padding.
type Snapshot struct {
	start       time.Time
	end         time.Time
	subtaskIDs  []int
	name        string
	description string
	kind        Kind
	status      Status
	duration    time.Duration
	id          int
	epicID      int
	hasStart    bool
	hasEnd      bool
	hasDuration bool
}

// NewSnapshot freezes the current state of item.
func NewSnapshot(item Item) Snapshot {
	s := Snapshot{
		id:   item.ItemID(),
		kind: item.ItemKind(),
	}
	s.start, s.hasStart = item.Start()
	s.end, s.hasEnd = item.End()

	var base *Task
	switch v := item.(type) {
	case *Task:
		base = v
	case *Epic:
		base = &v.Task
		s.subtaskIDs = slices.Clone(v.SubtaskIDs)
	case *Subtask:
		base = &v.Task
		s.epicID = v.EpicID
	}
	if base != nil {
		s.name = base.Name
		s.description = base.Description
		s.status = base.Status
		if base.Duration != nil {
			s.duration = *base.Duration
			s.hasDuration = true
		}
	}
	return s
}

// ID returns the item ID.
func (s Snapshot) ID() int { return s.id }

// Kind returns the item kind.
func (s Snapshot) Kind() Kind { return s.kind }

// Name returns the item name.
func (s Snapshot) Name() string { return s.name }

// Description returns the item description.
func (s Snapshot) Description() string { return s.description }

// Status returns the item status.
func (s Snapshot) Status() Status { return s.status }

// StartTime returns the start time if it was set.
func (s Snapshot) StartTime() (time.Time, bool) { return s.start, s.hasStart }

// Duration returns the duration if it was set.
func (s Snapshot) Duration() (time.Duration, bool) { return s.duration, s.hasDuration }

// EndTime returns the end time if it was known.
func (s Snapshot) EndTime() (time.Time, bool) { return s.end, s.hasEnd }

// EpicID returns the owning epic for subtasks, 0 otherwise.
func (s Snapshot) EpicID() int { return s.epicID }

// SubtaskIDs returns a copy of the child IDs for epics, nil otherwise.
func (s Snapshot) SubtaskIDs() []int { return slices.Clone(s.subtaskIDs) }

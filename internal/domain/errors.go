package domain

import (
	"errors"
	"fmt"
)

// Domain errors.
var (
	ErrItemNotFound   = errors.New("item not found")
	ErrEpicNotFound   = errors.New("epic not found")
	ErrInvalidInput   = errors.New("invalid input")
	ErrInvalidStatus  = errors.New("invalid status")
	ErrEmptyName      = errors.New("name cannot be empty")
	ErrOverlap        = errors.New("time window overlaps another item")
	ErrNotInitialized = errors.New("kanban not initialized (run 'kanban init' first)")
	ErrConfigExists   = errors.New("config file already exists")
	ErrUnknownFormat  = errors.New("unknown store format")
	ErrCorruptRecord  = errors.New("corrupt store record")
)

// OverlapError reports that a time-bounded item was rejected because its
// window intersects an item already on the timeline.
// Fields are ordered to minimize memory padding.
type OverlapError struct {
	Name       string // Name of the rejected item
	Kind       Kind   // Kind of the rejected item
	ID         int    // ID of the rejected item (0 when it was being created)
	ConflictID int    // ID of the item already occupying the window
}

// Error implements error.
func (e *OverlapError) Error() string {
	if e.ID > 0 {
		return fmt.Sprintf("%s #%d %q overlaps with item #%d", e.Kind.Display(), e.ID, e.Name, e.ConflictID)
	}
	return fmt.Sprintf("%s %q overlaps with item #%d", e.Kind.Display(), e.Name, e.ConflictID)
}

// Is makes errors.Is(err, ErrOverlap) match any *OverlapError.
func (e *OverlapError) Is(target error) bool {
	return target == ErrOverlap
}

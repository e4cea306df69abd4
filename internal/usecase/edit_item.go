package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/runoshun/kanban/internal/domain"
	"github.com/runoshun/kanban/internal/engine"
)

// EditItemInput contains the parameters for updating a work item.
// Nil fields are left unchanged.
// Fields are ordered to minimize memory padding.
type EditItemInput struct {
	StartTime     *time.Time     // New start time
	Duration      *time.Duration // New duration
	Name          *string        // New name
	Description   *string        // New description
	Status        *domain.Status // New status (tasks and subtasks)
	EpicID        *int           // New owning epic (subtasks)
	Kind          domain.Kind    // Expected kind (optional; mismatch is not found)
	SubtaskIDs    []int          // Expected children (epics; every ID must belong to the epic)
	ID            int            // Item ID (required)
	ClearSchedule bool           // Drop start time and duration
}

// EditItemOutput contains the result of updating a work item.
type EditItemOutput struct {
	Item domain.Item // The item after the update
}

// EditItem is the use case for updating a task, epic or subtask.
type EditItem struct {
	board *Board
}

// NewEditItem creates a new EditItem use case.
func NewEditItem(board *Board) *EditItem {
	return &EditItem{board: board}
}

// Execute applies the changes. It returns domain.ErrItemNotFound for unknown
// IDs, domain.ErrEpicNotFound for a missing target epic, an error matching
// domain.ErrOverlap for time conflicts and domain.ErrInvalidInput when the
// engine rejects the change.
func (uc *EditItem) Execute(_ context.Context, in EditItemInput) (*EditItemOutput, error) {
	if in.Status != nil && !in.Status.IsValid() {
		return nil, domain.ErrInvalidStatus
	}
	if in.Name != nil && *in.Name == "" {
		return nil, domain.ErrEmptyName
	}

	var updated domain.Item
	err := uc.board.mutate(func(e *engine.Engine) error {
		current, ok := e.Find(in.ID)
		if !ok || (in.Kind != "" && current.ItemKind() != in.Kind) {
			return domain.ErrItemNotFound
		}

		var err error
		switch item := current.(type) {
		case *domain.Task:
			in.apply(item)
			var t *domain.Task
			if t, err = e.UpdateTask(item); t != nil {
				updated = t
			}
		case *domain.Epic:
			in.apply(&item.Task)
			item.SubtaskIDs = in.SubtaskIDs
			var ep *domain.Epic
			if ep, err = e.UpdateEpic(item); ep != nil {
				updated = ep
			}
		case *domain.Subtask:
			in.apply(&item.Task)
			if in.EpicID != nil {
				if !isEpic(e, *in.EpicID) {
					return domain.ErrEpicNotFound
				}
				item.EpicID = *in.EpicID
			}
			var s *domain.Subtask
			if s, err = e.UpdateSubtask(item); s != nil {
				updated = s
			}
		}
		if err != nil {
			return err
		}
		if updated == nil {
			return domain.ErrInvalidInput
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrOverlap) {
			uc.board.logger.Warn(in.ID, in.Kind.Display(), fmt.Sprintf("rejected: %v", err))
		}
		return nil, err
	}

	uc.board.logger.Info(updated.ItemID(), updated.ItemKind().Display(), "updated")
	return &EditItemOutput{Item: updated}, nil
}

// apply copies the set fields onto t.
func (in EditItemInput) apply(t *domain.Task) {
	if in.Name != nil {
		t.Name = *in.Name
	}
	if in.Description != nil {
		t.Description = *in.Description
	}
	if in.Status != nil {
		t.Status = *in.Status
	}
	if in.ClearSchedule {
		t.StartTime = nil
		t.Duration = nil
	}
	if in.StartTime != nil {
		start := *in.StartTime
		t.StartTime = &start
	}
	if in.Duration != nil {
		d := *in.Duration
		t.Duration = &d
	}
}

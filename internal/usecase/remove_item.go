package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/kanban/internal/domain"
	"github.com/runoshun/kanban/internal/engine"
)

// RemoveItemInput contains the parameters for removing a work item.
type RemoveItemInput struct {
	Kind domain.Kind // Expected kind (optional; mismatch is not found)
	ID   int         // Item ID (required)
}

// RemoveItemOutput contains the result of removing a work item.
type RemoveItemOutput struct {
	Removed []int // IDs removed, subtasks of a removed epic first
}

// RemoveItem is the use case for removing a task, epic or subtask.
// Removing an epic removes its subtasks.
type RemoveItem struct {
	board *Board
}

// NewRemoveItem creates a new RemoveItem use case.
func NewRemoveItem(board *Board) *RemoveItem {
	return &RemoveItem{board: board}
}

// Execute removes the item.
func (uc *RemoveItem) Execute(_ context.Context, in RemoveItemInput) (*RemoveItemOutput, error) {
	var out RemoveItemOutput
	var kind domain.Kind
	err := uc.board.mutate(func(e *engine.Engine) error {
		current, ok := e.Find(in.ID)
		if !ok || (in.Kind != "" && current.ItemKind() != in.Kind) {
			return domain.ErrItemNotFound
		}
		kind = current.ItemKind()

		switch kind {
		case domain.KindTask:
			e.RemoveTask(in.ID)
		case domain.KindEpic:
			for _, s := range e.SubtasksOf(in.ID) {
				out.Removed = append(out.Removed, s.ID)
			}
			e.RemoveEpic(in.ID)
		case domain.KindSubtask:
			e.RemoveSubtask(in.ID)
		}
		out.Removed = append(out.Removed, in.ID)
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.board.logger.Info(in.ID, kind.Display(), fmt.Sprintf("removed (%d item(s))", len(out.Removed)))
	return &out, nil
}

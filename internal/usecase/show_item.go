package usecase

import (
	"context"

	"github.com/runoshun/kanban/internal/domain"
	"github.com/runoshun/kanban/internal/engine"
)

// ShowItemInput contains the parameters for showing a work item.
type ShowItemInput struct {
	Kind domain.Kind // Expected kind (optional; mismatch is not found)
	ID   int         // Item ID (required)
}

// ShowItemOutput contains the item and, for epics, its subtasks.
type ShowItemOutput struct {
	Item     domain.Item
	Subtasks []*domain.Subtask
}

// ShowItem is the use case for viewing one work item. A successful view is
// recorded in the history.
type ShowItem struct {
	board *Board
}

// NewShowItem creates a new ShowItem use case.
func NewShowItem(board *Board) *ShowItem {
	return &ShowItem{board: board}
}

// Execute returns the item or domain.ErrItemNotFound.
func (uc *ShowItem) Execute(_ context.Context, in ShowItemInput) (*ShowItemOutput, error) {
	var out *ShowItemOutput
	uc.board.view(func(e *engine.Engine) {
		found, ok := e.Find(in.ID)
		if !ok || (in.Kind != "" && found.ItemKind() != in.Kind) {
			return
		}
		// Go through the typed getters so the view is recorded.
		switch found.ItemKind() {
		case domain.KindTask:
			t, _ := e.Task(in.ID)
			out = &ShowItemOutput{Item: t}
		case domain.KindEpic:
			ep, _ := e.Epic(in.ID)
			out = &ShowItemOutput{Item: ep, Subtasks: e.SubtasksOf(in.ID)}
		case domain.KindSubtask:
			s, _ := e.Subtask(in.ID)
			out = &ShowItemOutput{Item: s}
		}
	})
	if out == nil {
		return nil, domain.ErrItemNotFound
	}
	return out, nil
}

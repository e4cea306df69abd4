package usecase

import (
	"context"

	"github.com/runoshun/kanban/internal/domain"
	"github.com/runoshun/kanban/internal/engine"
)

// ListItemsInput contains the parameters for listing work items.
type ListItemsInput struct {
	Kind   domain.Kind // Restrict to one kind (optional)
	EpicID int         // Restrict to the subtasks of this epic (optional)
}

// ListItemsOutput contains the listed items ordered by ID.
type ListItemsOutput struct {
	Items []domain.Item
}

// ListItems is the use case for listing work items. Listing does not record views.
type ListItems struct {
	board *Board
}

// NewListItems creates a new ListItems use case.
func NewListItems(board *Board) *ListItems {
	return &ListItems{board: board}
}

// Execute returns the matching items. Listing the subtasks of an unknown
// epic returns domain.ErrEpicNotFound.
func (uc *ListItems) Execute(_ context.Context, in ListItemsInput) (*ListItemsOutput, error) {
	var out ListItemsOutput
	var err error
	uc.board.view(func(e *engine.Engine) {
		if in.EpicID != 0 {
			if !isEpic(e, in.EpicID) {
				err = domain.ErrEpicNotFound
				return
			}
			out.Items = asItems(e.SubtasksOf(in.EpicID))
			return
		}
		switch in.Kind {
		case domain.KindTask:
			out.Items = asItems(e.Tasks())
		case domain.KindEpic:
			out.Items = asItems(e.Epics())
		case domain.KindSubtask:
			out.Items = asItems(e.Subtasks())
		case "":
			out.Items = e.Items()
		default:
			err = domain.ErrInvalidInput
		}
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func asItems[T domain.Item](items []T) []domain.Item {
	out := make([]domain.Item, 0, len(items))
	for _, item := range items {
		out = append(out, item)
	}
	return out
}

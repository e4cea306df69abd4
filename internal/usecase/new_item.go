package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/runoshun/kanban/internal/domain"
	"github.com/runoshun/kanban/internal/engine"
)

// NewItemInput contains the parameters for creating a work item.
// Fields are ordered to minimize memory padding.
type NewItemInput struct {
	StartTime   *time.Time     // Scheduled start (optional, ignored for epics)
	Duration    *time.Duration // Planned duration (optional, ignored for epics)
	Kind        domain.Kind    // Item kind (required)
	Name        string         // Name (required)
	Description string         // Description (optional)
	EpicID      int            // Owning epic (required for subtasks)
}

// NewItemOutput contains the result of creating a work item.
type NewItemOutput struct {
	Item domain.Item // The created item
}

// NewItem is the use case for creating a task, epic or subtask.
type NewItem struct {
	board *Board
}

// NewNewItem creates a new NewItem use case.
func NewNewItem(board *Board) *NewItem {
	return &NewItem{board: board}
}

// Execute creates the item. A time window that overlaps another item returns
// an error matching domain.ErrOverlap.
func (uc *NewItem) Execute(_ context.Context, in NewItemInput) (*NewItemOutput, error) {
	if in.Name == "" {
		return nil, domain.ErrEmptyName
	}
	base := domain.Task{
		Name:        in.Name,
		Description: in.Description,
		StartTime:   in.StartTime,
		Duration:    in.Duration,
	}

	var created domain.Item
	err := uc.board.mutate(func(e *engine.Engine) error {
		var err error
		switch in.Kind {
		case domain.KindTask:
			var t *domain.Task
			t, err = e.CreateTask(&base)
			if t != nil {
				created = t
			}
		case domain.KindEpic:
			var ep *domain.Epic
			ep, err = e.CreateEpic(&domain.Epic{Task: base})
			if ep != nil {
				created = ep
			}
		case domain.KindSubtask:
			if !isEpic(e, in.EpicID) {
				return domain.ErrEpicNotFound
			}
			var s *domain.Subtask
			s, err = e.CreateSubtask(&domain.Subtask{Task: base, EpicID: in.EpicID})
			if s != nil {
				created = s
			}
		default:
			return fmt.Errorf("%w: unknown kind %q", domain.ErrInvalidInput, in.Kind)
		}
		if err != nil {
			return err
		}
		if created == nil {
			return domain.ErrInvalidInput
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrOverlap) {
			uc.board.logger.Warn(0, in.Kind.Display(), fmt.Sprintf("rejected: %v", err))
		}
		return nil, err
	}

	uc.board.logger.Info(created.ItemID(), in.Kind.Display(), fmt.Sprintf("created: %q", in.Name))
	return &NewItemOutput{Item: created}, nil
}

// isEpic reports whether id names an epic.
func isEpic(e *engine.Engine, id int) bool {
	item, ok := e.Find(id)
	return ok && item.ItemKind() == domain.KindEpic
}

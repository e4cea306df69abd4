package usecase

import (
	"context"

	"github.com/runoshun/kanban/internal/domain"
	"github.com/runoshun/kanban/internal/engine"
)

// PrioritizedInput contains the parameters for the Prioritized use case.
type PrioritizedInput struct{}

// PrioritizedOutput contains the scheduled tasks and subtasks by start time.
type PrioritizedOutput struct {
	Items []domain.Item
}

// Prioritized is the use case for the timeline view.
type Prioritized struct {
	board *Board
}

// NewPrioritized creates a new Prioritized use case.
func NewPrioritized(board *Board) *Prioritized {
	return &Prioritized{board: board}
}

// Execute returns the scheduled items in timeline order.
func (uc *Prioritized) Execute(_ context.Context, _ PrioritizedInput) (*PrioritizedOutput, error) {
	var out PrioritizedOutput
	uc.board.view(func(e *engine.Engine) {
		out.Items = e.Prioritized()
	})
	return &out, nil
}

package usecase

import (
	"context"

	"github.com/runoshun/kanban/internal/domain"
	"github.com/runoshun/kanban/internal/engine"
)

// ShowHistoryInput contains the parameters for the ShowHistory use case.
type ShowHistoryInput struct{}

// ShowHistoryOutput contains the recently viewed items, most recent first.
type ShowHistoryOutput struct {
	Entries []domain.Snapshot
	Limit   int // History capacity (0 = unbounded)
}

// ShowHistory is the use case for the recently viewed list.
type ShowHistory struct {
	board *Board
}

// NewShowHistory creates a new ShowHistory use case.
func NewShowHistory(board *Board) *ShowHistory {
	return &ShowHistory{board: board}
}

// Execute returns the history snapshots.
func (uc *ShowHistory) Execute(_ context.Context, _ ShowHistoryInput) (*ShowHistoryOutput, error) {
	var out ShowHistoryOutput
	uc.board.view(func(e *engine.Engine) {
		out.Entries = e.History()
		out.Limit = e.HistoryLimit()
	})
	return &out, nil
}

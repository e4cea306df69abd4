package usecase

import (
	"context"

	"github.com/runoshun/kanban/internal/domain"
	"github.com/runoshun/kanban/internal/engine"
)

// ExportDataInput contains the parameters for the ExportData use case.
type ExportDataInput struct{}

// ExportDataOutput contains a copy of every stored item.
type ExportDataOutput struct {
	Data *domain.Dataset
}

// ExportData is the use case for dumping the dataset, e.g. in another format.
type ExportData struct {
	board *Board
}

// NewExportData creates a new ExportData use case.
func NewExportData(board *Board) *ExportData {
	return &ExportData{board: board}
}

// Execute returns the current dataset.
func (uc *ExportData) Execute(_ context.Context, _ ExportDataInput) (*ExportDataOutput, error) {
	var out ExportDataOutput
	uc.board.view(func(e *engine.Engine) {
		out.Data = e.Export()
	})
	return &out, nil
}

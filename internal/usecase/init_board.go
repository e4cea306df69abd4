package usecase

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/runoshun/kanban/internal/domain"
)

// InitBoardInput contains the input parameters for InitBoard.
type InitBoardInput struct {
	Config    *domain.Config // Values rendered into the repository config
	KanbanDir string         // Path to .kanban directory
}

// InitBoardOutput contains the output from InitBoard.
type InitBoardOutput struct {
	KanbanDir          string // Path to the kanban directory
	AlreadyInitialized bool   // True if the data file already existed
	ConfigCreated      bool   // True if a repository config was written
}

// InitBoard prepares a project directory: the .kanban directory, its logs
// directory, a repository config and an empty data file.
type InitBoard struct {
	storeInit     domain.StoreInitializer
	configManager domain.ConfigManager
}

// NewInitBoard creates a new InitBoard use case.
func NewInitBoard(storeInit domain.StoreInitializer, configManager domain.ConfigManager) *InitBoard {
	return &InitBoard{storeInit: storeInit, configManager: configManager}
}

// Execute initializes the board. Running it again leaves existing data and
// config untouched.
func (uc *InitBoard) Execute(_ context.Context, in InitBoardInput) (*InitBoardOutput, error) {
	alreadyInitialized := uc.storeInit.IsInitialized()

	if err := os.MkdirAll(filepath.Join(in.KanbanDir, "logs"), 0o750); err != nil {
		return nil, fmt.Errorf("create kanban directory: %w", err)
	}

	configCreated := false
	if uc.configManager != nil {
		err := uc.configManager.InitRepoConfig(in.Config)
		switch {
		case err == nil:
			configCreated = true
		case !errors.Is(err, domain.ErrConfigExists):
			return nil, fmt.Errorf("create config: %w", err)
		}
	}

	if err := uc.storeInit.Initialize(); err != nil {
		return nil, fmt.Errorf("initialize store: %w", err)
	}

	return &InitBoardOutput{
		KanbanDir:          in.KanbanDir,
		AlreadyInitialized: alreadyInitialized,
		ConfigCreated:      configCreated,
	}, nil
}

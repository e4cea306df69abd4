// Package app provides the dependency injection container for the application.
package app

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/runoshun/kanban/internal/domain"
	"github.com/runoshun/kanban/internal/engine"
	"github.com/runoshun/kanban/internal/infra/config"
	"github.com/runoshun/kanban/internal/infra/filestore"
	"github.com/runoshun/kanban/internal/infra/logging"
	"github.com/runoshun/kanban/internal/usecase"
)

// Config holds the application paths.
type Config struct {
	ProjectRoot string // Directory kanban was started in
	KanbanDir   string // Path to .kanban directory
	StorePath   string // Path to the data file
	StoreFormat string // Data file format
}

// newConfig derives the paths for a project root and the loaded settings.
func newConfig(root string, appCfg *domain.Config) Config {
	kanbanDir := domain.ProjectKanbanDir(root)
	return Config{
		ProjectRoot: root,
		KanbanDir:   kanbanDir,
		StorePath:   domain.StorePath(kanbanDir, appCfg.Store.File),
		StoreFormat: appCfg.Store.Format,
	}
}

// Container provides dependency injection for the application.
// It holds all port implementations and provides factory methods for use cases.
type Container struct {
	// Ports (interfaces bound to implementations)
	Store            domain.DatasetStore
	StoreInitializer domain.StoreInitializer
	ConfigLoader     domain.ConfigLoader
	ConfigManager    domain.ConfigManager
	Logger           domain.Logger

	// Pointer fields
	AppConfig *domain.Config
	board     *usecase.Board
	closeLog  func() error

	// Configuration
	Config Config

	boardMu sync.Mutex
}

// New creates a new Container for the project rooted at dir.
func New(dir string) (*Container, error) {
	root, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve project root: %w", err)
	}
	kanbanDir := domain.ProjectKanbanDir(root)

	configLoader := config.NewLoader(kanbanDir)
	appCfg, err := configLoader.Load()
	if err != nil {
		return nil, err
	}
	cfg := newConfig(root, appCfg)
	store, err := filestore.New(cfg.StorePath, cfg.StoreFormat)
	if err != nil {
		return nil, err
	}

	logger := logging.New(kanbanDir, logging.ParseLevel(appCfg.Log.Level))

	return &Container{
		Store:            store,
		StoreInitializer: store,
		ConfigLoader:     configLoader,
		ConfigManager:    config.NewManager(kanbanDir),
		Logger:           logger,
		AppConfig:        appCfg,
		closeLog:         logger.Close,
		Config:           cfg,
	}, nil
}

// NewWithDeps creates a new Container with custom dependencies for testing.
func NewWithDeps(cfg Config, appCfg *domain.Config, store domain.DatasetStore, storeInit domain.StoreInitializer, logger domain.Logger) *Container {
	if appCfg == nil {
		appCfg = domain.NewDefaultConfig()
	}
	return &Container{
		Store:            store,
		StoreInitializer: storeInit,
		Logger:           logger,
		AppConfig:        appCfg,
		Config:           cfg,
	}
}

// Board returns the board, loading the dataset on first use.
// It returns domain.ErrNotInitialized until InitBoard has run.
func (c *Container) Board() (*usecase.Board, error) {
	c.boardMu.Lock()
	defer c.boardMu.Unlock()

	if c.board != nil {
		return c.board, nil
	}
	board, err := usecase.NewBoard(c.Store, c.Logger, engine.WithHistoryLimit(c.AppConfig.History.MaxSize))
	if err != nil {
		return nil, err
	}
	c.board = board
	return board, nil
}

// Close releases log files.
func (c *Container) Close() error {
	if c.closeLog == nil {
		return nil
	}
	return c.closeLog()
}

// MirrorLogs copies log lines to stderr, for foreground commands like serve.
func (c *Container) MirrorLogs() {
	if l, ok := c.Logger.(*logging.Logger); ok {
		l.SetMirror(os.Stderr)
	}
}

// UseCase factory methods

// InitBoardUseCase returns a new InitBoard use case.
func (c *Container) InitBoardUseCase() *usecase.InitBoard {
	return usecase.NewInitBoard(c.StoreInitializer, c.ConfigManager)
}

// ShowConfigUseCase returns a new ShowConfig use case.
func (c *Container) ShowConfigUseCase() *usecase.ShowConfig {
	return usecase.NewShowConfig(c.ConfigManager, c.ConfigLoader)
}

// InitConfigUseCase returns a new InitConfig use case.
func (c *Container) InitConfigUseCase() *usecase.InitConfig {
	return usecase.NewInitConfig(c.ConfigManager)
}

package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/kanban/internal/domain"
)

// InitConfigInput selects where the config file goes and what it starts with.
type InitConfigInput struct {
	Config *domain.Config // Starting values; nil means domain.NewDefaultConfig()
	Global bool           // Write ~/.config/kanban/config.toml instead of .kanban/config.toml
}

// InitConfigOutput describes the written file.
type InitConfigOutput struct {
	Path           string // Written config file
	StoreFormat    string // store.format as written ("" renders the csv default)
	HistoryMaxSize int    // history.max_size as written
}

// InitConfig writes a config.toml for the board or for the user.
type InitConfig struct {
	configManager domain.ConfigManager
}

// NewInitConfig creates a new InitConfig use case.
func NewInitConfig(configManager domain.ConfigManager) *InitConfig {
	return &InitConfig{
		configManager: configManager,
	}
}

// Execute checks the history and store settings, then writes them out.
// An existing file is left alone and domain.ErrConfigExists is returned.
func (uc *InitConfig) Execute(_ context.Context, in InitConfigInput) (*InitConfigOutput, error) {
	cfg := in.Config
	if cfg == nil {
		cfg = domain.NewDefaultConfig()
	}
	if cfg.History.MaxSize < 0 {
		return nil, fmt.Errorf("%w: history.max_size must not be negative", domain.ErrInvalidInput)
	}
	if cfg.Store.Format != "" && !domain.IsValidFormat(cfg.Store.Format) {
		return nil, fmt.Errorf("%w: store.format %q", domain.ErrUnknownFormat, cfg.Store.Format)
	}

	write, info := uc.configManager.InitRepoConfig, uc.configManager.GetRepoConfigInfo()
	if in.Global {
		write, info = uc.configManager.InitGlobalConfig, uc.configManager.GetGlobalConfigInfo()
	}
	if err := write(cfg); err != nil {
		return nil, err
	}

	return &InitConfigOutput{
		Path:           info.Path,
		StoreFormat:    cfg.Store.Format,
		HistoryMaxSize: cfg.History.MaxSize,
	}, nil
}

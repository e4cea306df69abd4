package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/runoshun/kanban/internal/domain"
	"github.com/runoshun/kanban/internal/testutil"
	"github.com/runoshun/kanban/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShowConfig_Execute(t *testing.T) {
	t.Run("returns both config infos and effective config", func(t *testing.T) {
		manager := testutil.NewMockConfigManager()
		manager.RepoConfigInfo = domain.ConfigInfo{
			Path:    "/test/.kanban/config.toml",
			Content: "[store]\nformat = \"json\"",
			Exists:  true,
		}
		manager.GlobalConfigInfo = domain.ConfigInfo{
			Path:    "/home/test/.config/kanban/config.toml",
			Content: "[log]\nlevel = \"debug\"",
			Exists:  true,
		}

		loader := testutil.NewMockConfigLoader()
		loader.Config.Store.Format = domain.FormatJSON

		uc := usecase.NewShowConfig(manager, loader)
		out, err := uc.Execute(context.Background(), usecase.ShowConfigInput{})

		require.NoError(t, err)
		assert.Equal(t, "/test/.kanban/config.toml", out.RepoConfig.Path)
		assert.Equal(t, "[store]\nformat = \"json\"", out.RepoConfig.Content)
		assert.True(t, out.RepoConfig.Exists)
		assert.Equal(t, "/home/test/.config/kanban/config.toml", out.GlobalConfig.Path)
		assert.Equal(t, "[log]\nlevel = \"debug\"", out.GlobalConfig.Content)
		assert.True(t, out.GlobalConfig.Exists)
		require.NotNil(t, out.EffectiveConfig)
		assert.Equal(t, domain.FormatJSON, out.EffectiveConfig.Store.Format)
	})

	t.Run("handles non-existent files", func(t *testing.T) {
		manager := testutil.NewMockConfigManager()
		loader := testutil.NewMockConfigLoader()

		uc := usecase.NewShowConfig(manager, loader)
		out, err := uc.Execute(context.Background(), usecase.ShowConfigInput{})

		require.NoError(t, err)
		assert.False(t, out.RepoConfig.Exists)
		assert.False(t, out.GlobalConfig.Exists)
		assert.Empty(t, out.RepoConfig.Content)
		assert.Empty(t, out.GlobalConfig.Content)
		assert.NotNil(t, out.EffectiveConfig)
	})

	t.Run("ignores global config when flag is set", func(t *testing.T) {
		manager := testutil.NewMockConfigManager()
		manager.GlobalConfigInfo.Exists = true

		uc := usecase.NewShowConfig(manager, testutil.NewMockConfigLoader())
		out, err := uc.Execute(context.Background(), usecase.ShowConfigInput{IgnoreGlobal: true})

		require.NoError(t, err)
		assert.Empty(t, out.GlobalConfig.Path)
		assert.False(t, out.GlobalConfig.Exists)
		assert.Equal(t, "/test/.kanban/config.toml", out.RepoConfig.Path)
	})

	t.Run("ignores repo config when flag is set", func(t *testing.T) {
		manager := testutil.NewMockConfigManager()

		uc := usecase.NewShowConfig(manager, testutil.NewMockConfigLoader())
		out, err := uc.Execute(context.Background(), usecase.ShowConfigInput{IgnoreRepo: true})

		require.NoError(t, err)
		assert.Empty(t, out.RepoConfig.Path)
		assert.Equal(t, "/home/test/.config/kanban/config.toml", out.GlobalConfig.Path)
	})

	t.Run("returns load error", func(t *testing.T) {
		loader := testutil.NewMockConfigLoader()
		loader.LoadErr = errors.New("parse failed")

		uc := usecase.NewShowConfig(testutil.NewMockConfigManager(), loader)
		_, err := uc.Execute(context.Background(), usecase.ShowConfigInput{})

		require.Error(t, err)
		assert.ErrorIs(t, err, loader.LoadErr)
	})
}

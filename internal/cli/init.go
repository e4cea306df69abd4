package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/runoshun/kanban/internal/app"
	"github.com/runoshun/kanban/internal/usecase"
)

// newInitCommand creates the init command.
func newInitCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize a kanban board in the current directory",
		Long: `Initialize a kanban board in the current directory.

This command creates the .kanban/ directory with:
- config.toml: repository configuration (kept if present)
- the data file named by [store].file (empty, kept if present)
- logs/: directory for log files

Running init again is safe; existing files are left alone.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			uc := c.InitBoardUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.InitBoardInput{
				Config:    c.AppConfig,
				KanbanDir: c.Config.KanbanDir,
			})
			if err != nil {
				return err
			}

			if out.AlreadyInitialized {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "kanban already initialized in %s\n", out.KanbanDir)
				return nil
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Initialized kanban in %s\n", out.KanbanDir)
			return nil
		},
	}
}

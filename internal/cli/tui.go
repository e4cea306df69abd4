package cli

import (
	"github.com/spf13/cobra"

	"github.com/runoshun/kanban/internal/app"
)

// newTUICommand creates the tui command for launching the interactive board.
// Running kanban without arguments does the same.
func newTUICommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Launch interactive board",
		Long: `Launch the interactive terminal board.

Panes: Items (every item by ID), Prioritized (scheduled items by start
time) and History (recently viewed). Press ? for keys.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return launchTUIFunc(c)
		},
	}
}

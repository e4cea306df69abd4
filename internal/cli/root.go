// Package cli provides the command-line interface for kanban.
package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/runoshun/kanban/internal/app"
	"github.com/runoshun/kanban/internal/tui"
)

// Command group IDs.
const (
	groupSetup = "setup"
	groupItems = "items"
	groupView  = "view"
)

// launchTUIFunc is a function variable for launching the TUI, allowing it to be mocked in tests.
var launchTUIFunc = launchTUI

// NewRootCommand creates the root command for kanban.
// It receives the container for dependency injection and version for display.
func NewRootCommand(c *app.Container, version string) *cobra.Command {
	root := &cobra.Command{
		Use:   "kanban",
		Short: "Schedule tasks, epics and subtasks without overlaps",
		Long: `kanban keeps a board of work items in the .kanban directory.

Tasks and subtasks may carry a start time and a duration; two scheduled
items never overlap. An epic groups subtasks and takes its status, start
and duration from them.

Running kanban without a command opens the interactive board.`,
		Version: version,
		// SilenceUsage prevents usage from being printed on errors
		SilenceUsage: true,
		// SilenceErrors prevents Cobra from printing errors (we handle it in main)
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			// Skip if container is nil (e.g. in tests)
			if c == nil || c.AppConfig == nil {
				return
			}
			for _, w := range c.AppConfig.Warnings {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s\n", w)
			}
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			return launchTUIFunc(c)
		},
	}

	root.AddGroup(
		&cobra.Group{ID: groupSetup, Title: "Setup Commands:"},
		&cobra.Group{ID: groupItems, Title: "Work Items:"},
		&cobra.Group{ID: groupView, Title: "Views:"},
	)

	// Setup commands
	initCmd := newInitCommand(c)
	initCmd.GroupID = groupSetup

	configCmd := newConfigCommand(c)
	configCmd.GroupID = groupSetup

	serveCmd := newServeCommand(c)
	serveCmd.GroupID = groupSetup

	// Work item commands
	taskCmd := newTaskCommand(c)
	taskCmd.GroupID = groupItems

	epicCmd := newEpicCommand(c)
	epicCmd.GroupID = groupItems

	subtaskCmd := newSubtaskCommand(c)
	subtaskCmd.GroupID = groupItems

	// Views
	prioritizedCmd := newPrioritizedCommand(c)
	prioritizedCmd.GroupID = groupView

	historyCmd := newHistoryCommand(c)
	historyCmd.GroupID = groupView

	exportCmd := newExportCommand(c)
	exportCmd.GroupID = groupView

	tuiCmd := newTUICommand(c)
	tuiCmd.GroupID = groupView

	root.AddCommand(
		initCmd,
		configCmd,
		serveCmd,
		taskCmd,
		epicCmd,
		subtaskCmd,
		prioritizedCmd,
		historyCmd,
		exportCmd,
		tuiCmd,
	)

	return root
}

// launchTUI runs the interactive board until the user quits.
func launchTUI(c *app.Container) error {
	board, err := c.Board()
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(tui.New(board), tea.WithAltScreen()).Run()
	return err
}

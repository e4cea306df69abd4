package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/runoshun/kanban/internal/app"
	"github.com/runoshun/kanban/internal/domain"
	"github.com/runoshun/kanban/internal/infra/filestore"
	"github.com/runoshun/kanban/internal/usecase"
)

// newPrioritizedCommand creates the prioritized command.
func newPrioritizedCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "prioritized",
		Short: "List scheduled tasks and subtasks by start time",
		Long: `List every scheduled task and subtask ordered by start time.
Items with the same start are ordered by ID. Unscheduled items and epics
are not shown.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			board, err := c.Board()
			if err != nil {
				return err
			}

			out, err := usecase.NewPrioritized(board).Execute(cmd.Context(), usecase.PrioritizedInput{})
			if err != nil {
				return err
			}

			printItemList(cmd.OutOrStdout(), out.Items)
			return nil
		},
	}
}

// newHistoryCommand creates the history command.
func newHistoryCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "List recently viewed items",
		Long: `List recently viewed items, most recent first.

Each row shows the item as it was when it was viewed. The number of
entries kept is set by [history].max_size (0 = unbounded).

Note: the history lives in memory, so a single CLI invocation only sees
what it viewed itself. Use the TUI or the HTTP server for a shared history.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			board, err := c.Board()
			if err != nil {
				return err
			}

			out, err := usecase.NewShowHistory(board).Execute(cmd.Context(), usecase.ShowHistoryInput{})
			if err != nil {
				return err
			}

			printSnapshots(cmd.OutOrStdout(), out.Entries)
			return nil
		},
	}
}

// newExportCommand creates the export command.
func newExportCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Format string
		Output string
	}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the whole board in csv, json or yaml",
		Long: `Write every task, epic and subtask to stdout or a file.

Examples:
  kanban export --format json
  kanban export --format yaml --output board.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format := opts.Format
			if format == "" {
				format = c.Config.StoreFormat
			}
			if !domain.IsValidFormat(format) {
				return fmt.Errorf("%w: %s", domain.ErrUnknownFormat, format)
			}

			board, err := c.Board()
			if err != nil {
				return err
			}

			out, err := usecase.NewExportData(board).Execute(cmd.Context(), usecase.ExportDataInput{})
			if err != nil {
				return err
			}

			var w io.Writer = cmd.OutOrStdout()
			if opts.Output != "" {
				f, err := os.Create(opts.Output)
				if err != nil {
					return fmt.Errorf("create output file: %w", err)
				}
				defer func() { _ = f.Close() }()
				w = f
			}
			return filestore.Encode(w, format, out.Data)
		},
	}

	cmd.Flags().StringVar(&opts.Format, "format", "", "Output format: csv, json or yaml (default: store format)")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "Write to file instead of stdout")

	return cmd
}

package cli

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/runoshun/kanban/internal/app"
	"github.com/runoshun/kanban/internal/domain"
	"github.com/runoshun/kanban/internal/usecase"
)

// newTaskCommand creates the task command group.
func newTaskCommand(c *app.Container) *cobra.Command {
	return newItemCommand(c, domain.KindTask)
}

// newEpicCommand creates the epic command group, which also lists an epic's subtasks.
func newEpicCommand(c *app.Container) *cobra.Command {
	cmd := newItemCommand(c, domain.KindEpic)
	cmd.AddCommand(newEpicSubtasksCommand(c))
	return cmd
}

// newSubtaskCommand creates the subtask command group.
func newSubtaskCommand(c *app.Container) *cobra.Command {
	return newItemCommand(c, domain.KindSubtask)
}

// newItemCommand creates the new/edit/rm/show/list commands for one kind.
func newItemCommand(c *app.Container, kind domain.Kind) *cobra.Command {
	noun := kind.Display()
	cmd := &cobra.Command{
		Use:   noun,
		Short: fmt.Sprintf("Manage %ss", noun),
		// No RunE: shows subcommand list when called without arguments
	}

	cmd.AddCommand(
		newItemNewCommand(c, kind),
		newItemEditCommand(c, kind),
		newItemRmCommand(c, kind),
		newItemShowCommand(c, kind),
		newItemListCommand(c, kind),
	)
	return cmd
}

// scheduleFlags holds the raw --start/--duration values.
type scheduleFlags struct {
	Start    string
	Duration string
}

func (f *scheduleFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.Start, "start", "", `Start time ("2006-01-02 15:04" or RFC3339)`)
	cmd.Flags().StringVar(&f.Duration, "duration", "", `Duration (e.g. "30m", "1h30m")`)
}

// parse returns the start and duration that were given on the command line.
func (f *scheduleFlags) parse(cmd *cobra.Command) (*time.Time, *time.Duration, error) {
	var start *time.Time
	var dur *time.Duration
	if cmd.Flags().Changed("start") {
		t, err := parseTime(f.Start)
		if err != nil {
			return nil, nil, err
		}
		start = &t
	}
	if cmd.Flags().Changed("duration") {
		d, err := time.ParseDuration(f.Duration)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid duration %q: %w", f.Duration, domain.ErrInvalidInput)
		}
		if d < 0 || d%time.Minute != 0 {
			return nil, nil, fmt.Errorf("duration %q must be a whole number of minutes: %w", f.Duration, domain.ErrInvalidInput)
		}
		dur = &d
	}
	return start, dur, nil
}

// newItemNewCommand creates the new command for one kind.
func newItemNewCommand(c *app.Container, kind domain.Kind) *cobra.Command {
	var opts struct {
		Name        string
		Description string
		EpicID      int
	}
	var sched scheduleFlags
	noun := kind.Display()

	cmd := &cobra.Command{
		Use:   "new",
		Short: fmt.Sprintf("Create a new %s", noun),
		Long: fmt.Sprintf(`Create a new %s with status NEW.

A scheduled item occupies [start, start+duration). Creating an item whose
window overlaps another scheduled task or subtask fails.

Examples:
  kanban task new --name "Write report" --start "2025-06-02 09:00" --duration 1h
  kanban epic new --name "Release 1.2"
  kanban subtask new --epic 2 --name "Tag build" --start "2025-06-02 11:00" --duration 30m`, noun),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			start, dur, err := sched.parse(cmd)
			if err != nil {
				return err
			}

			board, err := c.Board()
			if err != nil {
				return err
			}

			out, err := usecase.NewNewItem(board).Execute(cmd.Context(), usecase.NewItemInput{
				Kind:        kind,
				Name:        opts.Name,
				Description: opts.Description,
				StartTime:   start,
				Duration:    dur,
				EpicID:      opts.EpicID,
			})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created %s #%d\n", noun, out.Item.ItemID())
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Name, "name", "", "Name (required)")
	cmd.Flags().StringVar(&opts.Description, "desc", "", "Description")
	_ = cmd.MarkFlagRequired("name")
	if kind != domain.KindEpic {
		sched.register(cmd)
	}
	if kind == domain.KindSubtask {
		cmd.Flags().IntVar(&opts.EpicID, "epic", 0, "Owning epic ID (required)")
		_ = cmd.MarkFlagRequired("epic")
	}

	return cmd
}

// newItemEditCommand creates the edit command for one kind.
func newItemEditCommand(c *app.Container, kind domain.Kind) *cobra.Command {
	var opts struct {
		Name          string
		Description   string
		Status        string
		EpicID        int
		ClearSchedule bool
	}
	var sched scheduleFlags
	noun := kind.Display()

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: fmt.Sprintf("Edit a %s", noun),
		Long: fmt.Sprintf(`Edit an existing %s. Only the given fields change.

Examples:
  kanban task edit 1 --status IN_PROGRESS
  kanban task edit 1 --start "2025-06-02 13:00" --duration 45m
  kanban task edit 1 --clear-schedule
  kanban subtask edit 3 --epic 5`, noun),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseItemID(args[0])
			if err != nil {
				return err
			}

			in := usecase.EditItemInput{
				Kind:          kind,
				ID:            id,
				ClearSchedule: opts.ClearSchedule,
			}
			if cmd.Flags().Changed("name") {
				in.Name = &opts.Name
			}
			if cmd.Flags().Changed("desc") {
				in.Description = &opts.Description
			}
			if cmd.Flags().Changed("status") {
				status := domain.Status(strings.ToUpper(opts.Status))
				in.Status = &status
			}
			if cmd.Flags().Changed("epic") {
				in.EpicID = &opts.EpicID
			}
			if in.StartTime, in.Duration, err = sched.parse(cmd); err != nil {
				return err
			}

			board, err := c.Board()
			if err != nil {
				return err
			}

			out, err := usecase.NewEditItem(board).Execute(cmd.Context(), in)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Updated %s #%d\n", noun, out.Item.ItemID())
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Name, "name", "", "New name")
	cmd.Flags().StringVar(&opts.Description, "desc", "", "New description")
	if kind != domain.KindEpic {
		cmd.Flags().StringVar(&opts.Status, "status", "", "New status (NEW, IN_PROGRESS, DONE)")
		cmd.Flags().BoolVar(&opts.ClearSchedule, "clear-schedule", false, "Remove start time and duration")
		sched.register(cmd)
	}
	if kind == domain.KindSubtask {
		cmd.Flags().IntVar(&opts.EpicID, "epic", 0, "Move to another epic")
	}

	return cmd
}

// newItemRmCommand creates the rm command for one kind.
func newItemRmCommand(c *app.Container, kind domain.Kind) *cobra.Command {
	noun := kind.Display()
	long := fmt.Sprintf("Remove a %s.", noun)
	if kind == domain.KindEpic {
		long = "Remove an epic together with all of its subtasks."
	}

	return &cobra.Command{
		Use:   "rm <id>",
		Short: fmt.Sprintf("Remove a %s", noun),
		Long:  long,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseItemID(args[0])
			if err != nil {
				return err
			}

			board, err := c.Board()
			if err != nil {
				return err
			}

			out, err := usecase.NewRemoveItem(board).Execute(cmd.Context(), usecase.RemoveItemInput{
				Kind: kind,
				ID:   id,
			})
			if err != nil {
				return err
			}

			if n := len(out.Removed) - 1; n > 0 {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Removed %s #%d and %d subtask(s)\n", noun, id, n)
				return nil
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Removed %s #%d\n", noun, id)
			return nil
		},
	}
}

// newItemShowCommand creates the show command for one kind.
func newItemShowCommand(c *app.Container, kind domain.Kind) *cobra.Command {
	var opts struct {
		JSON bool
	}
	noun := kind.Display()

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: fmt.Sprintf("Show %s details", noun),
		Long: fmt.Sprintf(`Show the details of a %s.

Viewing an item adds it to the history (see 'kanban history').`, noun),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseItemID(args[0])
			if err != nil {
				return err
			}

			board, err := c.Board()
			if err != nil {
				return err
			}

			out, err := usecase.NewShowItem(board).Execute(cmd.Context(), usecase.ShowItemInput{
				Kind: kind,
				ID:   id,
			})
			if err != nil {
				return err
			}

			if opts.JSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(newJSONItem(out.Item))
			}

			printItemDetails(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().BoolVar(&opts.JSON, "json", false, "Output in JSON format")

	return cmd
}

// newItemListCommand creates the list command for one kind.
func newItemListCommand(c *app.Container, kind domain.Kind) *cobra.Command {
	var opts struct {
		Status string
	}
	noun := kind.Display()

	cmd := &cobra.Command{
		Use:   "list",
		Short: fmt.Sprintf("List %ss", noun),
		Long: fmt.Sprintf(`List every %s ordered by ID.

Output columns: ID, TYPE, STATUS, START, END, NAME`, noun),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var status domain.Status
			if opts.Status != "" {
				status = domain.Status(strings.ToUpper(opts.Status))
				if !status.IsValid() {
					return domain.ErrInvalidStatus
				}
			}

			board, err := c.Board()
			if err != nil {
				return err
			}

			out, err := usecase.NewListItems(board).Execute(cmd.Context(), usecase.ListItemsInput{Kind: kind})
			if err != nil {
				return err
			}

			printItemList(cmd.OutOrStdout(), filterByStatus(out.Items, status))
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Status, "status", "", "Show only items with this status")

	return cmd
}

// newEpicSubtasksCommand creates the epic subtasks command.
func newEpicSubtasksCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "subtasks <id>",
		Short: "List the subtasks of an epic",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseItemID(args[0])
			if err != nil {
				return err
			}

			board, err := c.Board()
			if err != nil {
				return err
			}

			out, err := usecase.NewListItems(board).Execute(cmd.Context(), usecase.ListItemsInput{EpicID: id})
			if err != nil {
				return err
			}

			printItemList(cmd.OutOrStdout(), out.Items)
			return nil
		},
	}
}

func filterByStatus(items []domain.Item, status domain.Status) []domain.Item {
	if status == "" {
		return items
	}
	var out []domain.Item
	for _, item := range items {
		if domain.NewSnapshot(item).Status() == status {
			out = append(out, item)
		}
	}
	return out
}

// parseItemID parses an item ID string to int.
func parseItemID(s string) (int, error) {
	// Remove leading # if present
	s = strings.TrimPrefix(s, "#")
	var id int
	if _, err := fmt.Sscanf(s, "%d", &id); err != nil {
		return 0, fmt.Errorf("invalid item ID %q", s)
	}
	if id <= 0 {
		return 0, fmt.Errorf("item ID must be positive")
	}
	return id, nil
}

// parseTime accepts RFC3339 or "2006-01-02 15:04" in local time.
func parseTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation(timeLayout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid start time %q: %w", s, domain.ErrInvalidInput)
	}
	return t, nil
}

package cli

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/runoshun/kanban/internal/domain"
	"github.com/runoshun/kanban/internal/usecase"
)

const timeLayout = "2006-01-02 15:04"

// printItemList prints items in TSV format.
func printItemList(w io.Writer, items []domain.Item) {
	snaps := make([]domain.Snapshot, len(items))
	for i, item := range items {
		snaps[i] = domain.NewSnapshot(item)
	}
	printSnapshots(w, snaps)
}

// printSnapshots prints one row per snapshot in TSV format.
func printSnapshots(w io.Writer, snaps []domain.Snapshot) {
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	defer func() { _ = tw.Flush() }()

	_, _ = fmt.Fprintln(tw, "ID\tTYPE\tSTATUS\tSTART\tEND\tNAME")

	for _, s := range snaps {
		start, hasStart := s.StartTime()
		end, hasEnd := s.EndTime()
		_, _ = fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
			s.ID(),
			s.Kind(),
			s.Status(),
			formatTime(start, hasStart),
			formatTime(end, hasEnd),
			s.Name(),
		)
	}
}

func formatTime(t time.Time, ok bool) string {
	if !ok {
		return "-"
	}
	return t.Format(timeLayout)
}

// printItemDetails prints one item and, for epics, its subtasks.
func printItemDetails(w io.Writer, out *usecase.ShowItemOutput) {
	s := domain.NewSnapshot(out.Item)

	_, _ = fmt.Fprintf(w, "# %s %d: %s\n\n", s.Kind(), s.ID(), s.Name())

	if s.Description() != "" {
		_, _ = fmt.Fprintf(w, "%s\n\n", s.Description())
	}

	_, _ = fmt.Fprintf(w, "Status: %s\n", s.Status())

	if s.EpicID() != 0 {
		_, _ = fmt.Fprintf(w, "Epic: #%d\n", s.EpicID())
	}

	start, hasStart := s.StartTime()
	end, hasEnd := s.EndTime()
	_, _ = fmt.Fprintf(w, "Start: %s\n", formatTime(start, hasStart))
	_, _ = fmt.Fprintf(w, "End: %s\n", formatTime(end, hasEnd))
	if d, ok := s.Duration(); ok {
		_, _ = fmt.Fprintf(w, "Duration: %s\n", d.Truncate(time.Minute))
	}

	if s.Kind() == domain.KindEpic {
		if len(out.Subtasks) == 0 {
			_, _ = fmt.Fprintln(w, "\nSubtasks: none")
			return
		}
		_, _ = fmt.Fprintln(w, "\nSubtasks:")
		for _, sub := range out.Subtasks {
			_, _ = fmt.Fprintf(w, "  #%d [%s] %s\n", sub.ID, sub.Status, sub.Name)
		}
	}
}

// jsonItem is the --json shape of an item. Durations are whole minutes.
type jsonItem struct {
	StartTime   *time.Time    `json:"startTime,omitempty"`
	EndTime     *time.Time    `json:"endTime,omitempty"`
	Duration    *int64        `json:"duration,omitempty"`
	Type        domain.Kind   `json:"type"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Status      domain.Status `json:"status"`
	SubtaskIDs  []int         `json:"subtasks,omitempty"`
	ID          int           `json:"id"`
	EpicID      int           `json:"epic,omitempty"`
}

func newJSONItem(item domain.Item) jsonItem {
	s := domain.NewSnapshot(item)
	j := jsonItem{
		Type:        s.Kind(),
		Name:        s.Name(),
		Description: s.Description(),
		Status:      s.Status(),
		SubtaskIDs:  s.SubtaskIDs(),
		ID:          s.ID(),
		EpicID:      s.EpicID(),
	}
	if t, ok := s.StartTime(); ok {
		j.StartTime = &t
	}
	if t, ok := s.EndTime(); ok {
		j.EndTime = &t
	}
	if d, ok := s.Duration(); ok {
		minutes := int64(d / time.Minute)
		j.Duration = &minutes
	}
	return j
}

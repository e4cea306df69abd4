package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/runoshun/kanban/internal/domain"
)

const timeLayout = "2006-01-02 15:04"

// View renders the TUI.
func (m *Model) View() string {
	switch m.mode {
	case ModeHelp:
		return m.styles.App.Render(m.viewHelp())
	case ModeDetail:
		return m.styles.App.Render(m.viewDetail())
	case ModeNormal, ModeInputName, ModeConfirm:
	}

	var b strings.Builder
	b.WriteString(m.viewHeader())
	b.WriteString("\n\n")
	b.WriteString(m.viewPane())
	b.WriteString("\n")

	switch m.mode {
	case ModeInputName:
		b.WriteString("\n")
		b.WriteString(m.viewInput())
	case ModeConfirm:
		b.WriteString("\n")
		b.WriteString(m.viewConfirm())
	case ModeNormal, ModeHelp, ModeDetail:
	}

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(m.styles.ErrorMsg.Render("Error: " + m.err.Error()))
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Footer.Render(m.help.ShortHelpView(m.keys.ShortHelp())))
	return m.styles.App.Render(b.String())
}

// viewHeader renders the title and pane tabs.
func (m *Model) viewHeader() string {
	tabs := make([]string, 0, paneCount)
	for p := Pane(0); p < paneCount; p++ {
		style := m.styles.PaneTab
		if p == m.pane {
			style = m.styles.PaneTabActive
		}
		tabs = append(tabs, style.Render(p.String()))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		m.styles.Header.Render("kanban"), "  ",
		lipgloss.JoinHorizontal(lipgloss.Top, tabs...),
	)
}

// viewPane renders the rows of the active pane.
func (m *Model) viewPane() string {
	var rows []domain.Snapshot
	switch m.pane {
	case PaneItems:
		rows = snapshots(m.items)
	case PanePrioritized:
		rows = snapshots(m.prioritized)
	case PaneHistory:
		rows = m.history
	}

	if len(rows) == 0 {
		return m.styles.Empty.Render(m.emptyText())
	}

	lines := make([]string, 0, len(rows))
	for i, s := range rows {
		lines = append(lines, m.viewRow(s, i == m.cursor))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) emptyText() string {
	switch m.pane {
	case PanePrioritized:
		return "No scheduled items."
	case PaneHistory:
		return "Nothing viewed yet. Press enter on an item."
	case PaneItems:
	}
	return "No items yet. Press n to create a task."
}

// viewRow renders "#ID KIND STATUS name [start -> end]".
func (m *Model) viewRow(s domain.Snapshot, selected bool) string {
	cursor := "  "
	nameStyle := m.styles.ItemNormal
	if selected {
		cursor = m.styles.Cursor.Render("> ")
		nameStyle = m.styles.ItemSelected
	}

	status := m.styles.StatusStyle(s.Status()).Render(StatusIcon(s.Status()) + " " + s.Status().Display())
	row := cursor +
		m.styles.ItemID.Render(fmt.Sprintf("#%d", s.ID())) +
		m.styles.ItemKind.Render(s.Kind().Display()) +
		status + "  " +
		nameStyle.Render(s.Name())

	if w := window(s); w != "" {
		row += "  " + m.styles.ItemWindow.Render(w)
	}
	return row
}

// viewInput renders the name prompt for a new item.
func (m *Model) viewInput() string {
	label := "New " + m.newKind.Display()
	if m.newKind == domain.KindSubtask {
		label += fmt.Sprintf(" in epic #%d", m.newEpicID)
	}
	return m.styles.Dialog.Render(
		m.styles.InputPrompt.Render(label) + "\n" + m.nameInput.View(),
	)
}

// viewConfirm renders the delete confirmation.
func (m *Model) viewConfirm() string {
	msg := fmt.Sprintf("Delete #%d? Subtasks of an epic are deleted too.", m.confirmID)
	return m.styles.Dialog.Render(msg + "\n\n" + m.styles.Footer.Render("y: confirm  any other key: cancel"))
}

// viewHelp renders the full key listing.
func (m *Model) viewHelp() string {
	return m.styles.Help.Render(
		m.styles.Header.Render("Keys") + "\n\n" + m.help.FullHelpView(m.keys.FullHelp()),
	)
}

// viewDetail renders the item opened with enter.
func (m *Model) viewDetail() string {
	if m.detail == nil {
		return ""
	}
	s := domain.NewSnapshot(m.detail)

	var b strings.Builder
	b.WriteString(m.styles.DetailTitle.Render(fmt.Sprintf("#%d %s", s.ID(), s.Name())))
	b.WriteString("\n")

	field := func(label, value string) {
		b.WriteString(m.styles.DetailLabel.Render(label))
		b.WriteString(m.styles.DetailValue.Render(value))
		b.WriteString("\n")
	}
	field("Type", s.Kind().Display())
	field("Status", m.styles.StatusStyle(s.Status()).Render(s.Status().Display()))
	if start, ok := s.StartTime(); ok {
		field("Start", start.Format(timeLayout))
	}
	if end, ok := s.EndTime(); ok {
		field("End", end.Format(timeLayout))
	}
	if d, ok := s.Duration(); ok {
		field("Duration", d.Truncate(time.Minute).String())
	}
	if s.EpicID() != 0 {
		field("Epic", fmt.Sprintf("#%d", s.EpicID()))
	}

	if s.Description() != "" {
		b.WriteString(m.styles.DetailDesc.Render(s.Description()))
		b.WriteString("\n")
	}

	if s.Kind() == domain.KindEpic {
		b.WriteString("\n")
		b.WriteString(m.styles.DetailLabel.Render("Subtasks"))
		b.WriteString("\n")
		if len(m.detailSubtasks) == 0 {
			b.WriteString(m.styles.Empty.Render("none"))
			b.WriteString("\n")
		}
		for _, sub := range m.detailSubtasks {
			b.WriteString(m.viewRow(domain.NewSnapshot(sub), false))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Footer.Render("esc: back"))
	return b.String()
}

func snapshots(items []domain.Item) []domain.Snapshot {
	out := make([]domain.Snapshot, len(items))
	for i, item := range items {
		out[i] = domain.NewSnapshot(item)
	}
	return out
}

// window formats the scheduled window, or "" when the item has no start.
func window(s domain.Snapshot) string {
	start, ok := s.StartTime()
	if !ok {
		return ""
	}
	if end, ok := s.EndTime(); ok {
		return fmt.Sprintf("[%s → %s]", start.Format(timeLayout), end.Format(timeLayout))
	}
	return fmt.Sprintf("[%s]", start.Format(timeLayout))
}

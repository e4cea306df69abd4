package tui

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/runoshun/kanban/internal/domain"
	"github.com/runoshun/kanban/internal/usecase"
)

var (
	errNoEpicSelected = errors.New("select an epic or one of its subtasks first")
	errDerivedStatus  = errors.New("epic status is derived from its subtasks")
)

// Model is the main bubbletea model for the TUI.
type Model struct {
	// Dependencies (pointers first for alignment)
	board *usecase.Board
	err   error

	// State (slices - contain pointers)
	items          []domain.Item
	prioritized    []domain.Item
	history        []domain.Snapshot
	detail         domain.Item
	detailSubtasks []*domain.Subtask

	// Components (structs with pointers)
	keys      KeyMap
	styles    Styles
	help      help.Model
	nameInput textinput.Model

	// Numeric state (smaller types last)
	newKind       domain.Kind
	mode          Mode
	pane          Pane
	confirmAction ConfirmAction
	width         int
	height        int
	cursor        int
	confirmID     int
	newEpicID     int
}

// New creates a new TUI Model for the board.
func New(board *usecase.Board) *Model {
	ni := textinput.New()
	ni.Placeholder = "Name"
	ni.CharLimit = 200

	return &Model{
		board:     board,
		mode:      ModeNormal,
		pane:      PaneItems,
		keys:      DefaultKeyMap(),
		styles:    DefaultStyles(),
		help:      help.New(),
		nameInput: ni,
	}
}

// Init initializes the model and returns the initial command.
func (m *Model) Init() tea.Cmd {
	return m.loadBoard()
}

// loadBoard returns a command that reads every pane.
func (m *Model) loadBoard() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		items, err := usecase.NewListItems(m.board).Execute(ctx, usecase.ListItemsInput{})
		if err != nil {
			return MsgError{Err: err}
		}
		prioritized, err := usecase.NewPrioritized(m.board).Execute(ctx, usecase.PrioritizedInput{})
		if err != nil {
			return MsgError{Err: err}
		}
		history, err := usecase.NewShowHistory(m.board).Execute(ctx, usecase.ShowHistoryInput{})
		if err != nil {
			return MsgError{Err: err}
		}
		return MsgBoardLoaded{
			Items:       items.Items,
			Prioritized: prioritized.Items,
			History:     history.Entries,
		}
	}
}

// createItem returns a command that creates an item of the pending kind.
func (m *Model) createItem(kind domain.Kind, name string, epicID int) tea.Cmd {
	return func() tea.Msg {
		out, err := usecase.NewNewItem(m.board).Execute(context.Background(), usecase.NewItemInput{
			Kind:   kind,
			Name:   name,
			EpicID: epicID,
		})
		if err != nil {
			return MsgError{Err: err}
		}
		return MsgItemCreated{ItemID: out.Item.ItemID()}
	}
}

// removeItem returns a command that removes an item.
func (m *Model) removeItem(id int) tea.Cmd {
	return func() tea.Msg {
		out, err := usecase.NewRemoveItem(m.board).Execute(context.Background(), usecase.RemoveItemInput{ID: id})
		if err != nil {
			return MsgError{Err: err}
		}
		return MsgItemRemoved{Removed: out.Removed}
	}
}

// setStatus returns a command that changes an item's status.
func (m *Model) setStatus(id int, status domain.Status) tea.Cmd {
	return func() tea.Msg {
		_, err := usecase.NewEditItem(m.board).Execute(context.Background(), usecase.EditItemInput{
			ID:     id,
			Status: &status,
		})
		if err != nil {
			return MsgError{Err: err}
		}
		return MsgStatusUpdated{ItemID: id, Status: status}
	}
}

// showItem returns a command that opens an item, recording the view.
func (m *Model) showItem(id int) tea.Cmd {
	return func() tea.Msg {
		out, err := usecase.NewShowItem(m.board).Execute(context.Background(), usecase.ShowItemInput{ID: id})
		if err != nil {
			return MsgError{Err: err}
		}
		return MsgDetailLoaded{Item: out.Item, Subtasks: out.Subtasks}
	}
}

// paneLen returns the number of rows in the active pane.
func (m *Model) paneLen() int {
	switch m.pane {
	case PaneItems:
		return len(m.items)
	case PanePrioritized:
		return len(m.prioritized)
	case PaneHistory:
		return len(m.history)
	}
	return 0
}

// selectedID returns the ID under the cursor, or 0 if the pane is empty.
func (m *Model) selectedID() int {
	if m.cursor < 0 || m.cursor >= m.paneLen() {
		return 0
	}
	switch m.pane {
	case PaneItems:
		return m.items[m.cursor].ItemID()
	case PanePrioritized:
		return m.prioritized[m.cursor].ItemID()
	case PaneHistory:
		return m.history[m.cursor].ID()
	}
	return 0
}

// SelectedItem returns the item under the cursor in the items or prioritized
// pane, or nil.
func (m *Model) SelectedItem() domain.Item {
	if m.cursor < 0 || m.cursor >= m.paneLen() {
		return nil
	}
	switch m.pane {
	case PaneItems:
		return m.items[m.cursor]
	case PanePrioritized:
		return m.prioritized[m.cursor]
	case PaneHistory:
		return nil
	}
	return nil
}

// epicForNewSubtask returns the epic a new subtask should join, based on the
// selection.
func (m *Model) epicForNewSubtask() (int, bool) {
	switch item := m.SelectedItem().(type) {
	case *domain.Epic:
		return item.ID, true
	case *domain.Subtask:
		return item.EpicID, true
	}
	return 0, false
}

// nextStatus cycles NEW -> IN_PROGRESS -> DONE -> NEW.
func nextStatus(s domain.Status) domain.Status {
	switch s {
	case domain.StatusNew:
		return domain.StatusInProgress
	case domain.StatusInProgress:
		return domain.StatusDone
	default:
		return domain.StatusNew
	}
}

func (m *Model) clampCursor() {
	if n := m.paneLen(); m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/runoshun/kanban/internal/domain"
)

// Update handles messages and updates the model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case MsgBoardLoaded:
		m.items = msg.Items
		m.prioritized = msg.Prioritized
		m.history = msg.History
		m.clampCursor()
		return m, nil

	case MsgItemCreated:
		m.mode = ModeNormal
		m.nameInput.Reset()
		return m, m.loadBoard()

	case MsgItemRemoved:
		m.mode = ModeNormal
		m.confirmAction = ConfirmNone
		return m, m.loadBoard()

	case MsgStatusUpdated:
		return m, m.loadBoard()

	case MsgDetailLoaded:
		m.detail = msg.Item
		m.detailSubtasks = msg.Subtasks
		m.mode = ModeDetail
		// Opening an item changes the history pane.
		return m, m.loadBoard()

	case MsgError:
		m.err = msg.Err
		m.mode = ModeNormal
		m.confirmAction = ConfirmNone
		return m, nil

	case MsgClearError:
		m.err = nil
		return m, nil
	}

	if m.mode.IsInputMode() {
		var cmd tea.Cmd
		m.nameInput, cmd = m.nameInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleKeyMsg handles keyboard input based on current mode.
func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case ModeNormal:
		return m.handleNormalMode(msg)
	case ModeInputName:
		return m.handleInputNameMode(msg)
	case ModeConfirm:
		return m.handleConfirmMode(msg)
	case ModeHelp, ModeDetail:
		if key.Matches(msg, m.keys.Escape, m.keys.Enter, m.keys.Help, m.keys.Quit) {
			m.mode = ModeNormal
			m.detail = nil
			m.detailSubtasks = nil
		}
		return m, nil
	}
	return m, nil
}

// handleNormalMode handles keys in normal navigation mode.
func (m *Model) handleNormalMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Any key dismisses a shown error.
	m.err = nil

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.cursor < m.paneLen()-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.NextPane):
		m.pane = (m.pane + 1) % paneCount
		m.cursor = 0
		return m, nil

	case key.Matches(msg, m.keys.PrevPane):
		m.pane = (m.pane + paneCount - 1) % paneCount
		m.cursor = 0
		return m, nil

	case key.Matches(msg, m.keys.Enter):
		if id := m.selectedID(); id != 0 {
			return m, m.showItem(id)
		}
		return m, nil

	case key.Matches(msg, m.keys.NewTask):
		return m, m.startInput(domain.KindTask, 0)

	case key.Matches(msg, m.keys.NewEpic):
		return m, m.startInput(domain.KindEpic, 0)

	case key.Matches(msg, m.keys.NewSubtask):
		epicID, ok := m.epicForNewSubtask()
		if !ok {
			m.err = errNoEpicSelected
			return m, nil
		}
		return m, m.startInput(domain.KindSubtask, epicID)

	case key.Matches(msg, m.keys.Delete):
		if item := m.SelectedItem(); item != nil {
			m.mode = ModeConfirm
			m.confirmAction = ConfirmDelete
			m.confirmID = item.ItemID()
		}
		return m, nil

	case key.Matches(msg, m.keys.CycleStatus):
		switch item := m.SelectedItem().(type) {
		case *domain.Task:
			return m, m.setStatus(item.ID, nextStatus(item.Status))
		case *domain.Subtask:
			return m, m.setStatus(item.ID, nextStatus(item.Status))
		case *domain.Epic:
			m.err = errDerivedStatus
		}
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		return m, m.loadBoard()

	case key.Matches(msg, m.keys.Help):
		m.mode = ModeHelp
		return m, nil
	}
	return m, nil
}

// startInput switches to name input for a new item of kind.
func (m *Model) startInput(kind domain.Kind, epicID int) tea.Cmd {
	m.mode = ModeInputName
	m.newKind = kind
	m.newEpicID = epicID
	m.nameInput.Reset()
	return m.nameInput.Focus()
}

// handleInputNameMode handles keys while typing a new item name.
func (m *Model) handleInputNameMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.mode = ModeNormal
		m.nameInput.Reset()
		m.nameInput.Blur()
		return m, nil

	case msg.Type == tea.KeyEnter:
		name := m.nameInput.Value()
		m.nameInput.Blur()
		if name == "" {
			m.mode = ModeNormal
			return m, nil
		}
		return m, m.createItem(m.newKind, name, m.newEpicID)
	}

	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)
	return m, cmd
}

// handleConfirmMode handles keys in the confirmation dialog.
func (m *Model) handleConfirmMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Confirm) && m.confirmAction == ConfirmDelete {
		return m, m.removeItem(m.confirmID)
	}
	m.mode = ModeNormal
	m.confirmAction = ConfirmNone
	m.confirmID = 0
	return m, nil
}

package tui

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/kanban/internal/domain"
	"github.com/runoshun/kanban/internal/engine"
	"github.com/runoshun/kanban/internal/usecase"
)

func newTestModel(t *testing.T) (*Model, *usecase.Board) {
	t.Helper()
	board, err := usecase.NewBoard(nil, nil, engine.WithHistoryLimit(5))
	require.NoError(t, err)
	m := New(board)
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return m, board
}

func seed(t *testing.T, board *usecase.Board, kind domain.Kind, name string, epicID int) int {
	t.Helper()
	out, err := usecase.NewNewItem(board).Execute(context.Background(), usecase.NewItemInput{
		Kind:   kind,
		Name:   name,
		EpicID: epicID,
	})
	require.NoError(t, err)
	return out.Item.ItemID()
}

func seedScheduled(t *testing.T, board *usecase.Board, name string, start time.Time, minutes int) int {
	t.Helper()
	d := time.Duration(minutes) * time.Minute
	out, err := usecase.NewNewItem(board).Execute(context.Background(), usecase.NewItemInput{
		Kind:      domain.KindTask,
		Name:      name,
		StartTime: &start,
		Duration:  &d,
	})
	require.NoError(t, err)
	return out.Item.ItemID()
}

// run executes cmd and feeds the resulting board messages back into the
// model until no command is left. Commands that do not produce a board
// message (cursor blink, quit) stop the chain.
func run(t *testing.T, m *Model, cmd tea.Cmd) {
	t.Helper()
	for cmd != nil {
		msg, ok := cmd().(Msg)
		if !ok {
			return
		}
		_, cmd = m.Update(msg)
	}
}

func press(m *Model, k string) tea.Cmd {
	var msg tea.KeyMsg
	switch k {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		msg = tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		msg = tea.KeyMsg{Type: tea.KeyShiftTab}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
	_, cmd := m.Update(msg)
	return cmd
}

func itemIDs(items []domain.Item) []int {
	ids := make([]int, len(items))
	for i, item := range items {
		ids[i] = item.ItemID()
	}
	return ids
}

func TestModel_Init_LoadsBoard(t *testing.T) {
	// Setup
	m, board := newTestModel(t)
	seed(t, board, domain.KindTask, "first", 0)
	seed(t, board, domain.KindEpic, "release", 0)

	// Execute
	run(t, m, m.Init())

	// Assert
	assert.Equal(t, []int{1, 2}, itemIDs(m.items))
	assert.Empty(t, m.prioritized)
	assert.Empty(t, m.history)
}

func TestModel_Navigation(t *testing.T) {
	// Setup
	m, board := newTestModel(t)
	for _, name := range []string{"a", "b", "c"} {
		seed(t, board, domain.KindTask, name, 0)
	}
	run(t, m, m.Init())

	// Execute / Assert
	press(m, "j")
	press(m, "j")
	press(m, "j")
	assert.Equal(t, 2, m.cursor, "cursor stops at the last row")
	assert.Equal(t, 3, m.selectedID())

	press(m, "k")
	assert.Equal(t, 1, m.cursor)

	press(m, "tab")
	assert.Equal(t, PanePrioritized, m.pane)
	assert.Equal(t, 0, m.cursor)
	assert.Equal(t, 0, m.selectedID(), "prioritized pane is empty")

	press(m, "shift+tab")
	press(m, "shift+tab")
	assert.Equal(t, PaneHistory, m.pane)
}

func TestModel_CreateTask(t *testing.T) {
	// Setup
	m, _ := newTestModel(t)
	run(t, m, m.Init())

	// Execute
	press(m, "n")
	require.Equal(t, ModeInputName, m.mode)
	assert.Equal(t, domain.KindTask, m.newKind)
	press(m, "write docs")
	run(t, m, press(m, "enter"))

	// Assert
	assert.Equal(t, ModeNormal, m.mode)
	require.Len(t, m.items, 1)
	task, ok := m.items[0].(*domain.Task)
	require.True(t, ok)
	assert.Equal(t, "write docs", task.Name)
	assert.Equal(t, domain.StatusNew, task.Status)
}

func TestModel_CreateInput_EscapeAndEmpty(t *testing.T) {
	m, _ := newTestModel(t)
	run(t, m, m.Init())

	press(m, "N")
	assert.Equal(t, domain.KindEpic, m.newKind)
	press(m, "esc")
	assert.Equal(t, ModeNormal, m.mode)

	press(m, "n")
	cmd := press(m, "enter")
	assert.Nil(t, cmd)
	assert.Equal(t, ModeNormal, m.mode)
	assert.Empty(t, m.items)
}

func TestModel_CreateSubtask(t *testing.T) {
	t.Run("needs an epic selected", func(t *testing.T) {
		m, board := newTestModel(t)
		seed(t, board, domain.KindTask, "plain", 0)
		run(t, m, m.Init())

		press(m, "s")

		assert.Equal(t, ModeNormal, m.mode)
		assert.ErrorIs(t, m.err, errNoEpicSelected)
	})

	t.Run("joins the selected epic", func(t *testing.T) {
		// Setup
		m, board := newTestModel(t)
		epicID := seed(t, board, domain.KindEpic, "release", 0)
		run(t, m, m.Init())

		// Execute
		press(m, "s")
		require.Equal(t, ModeInputName, m.mode)
		press(m, "tag")
		run(t, m, press(m, "enter"))

		// Assert
		require.Len(t, m.items, 2)
		sub, ok := m.items[1].(*domain.Subtask)
		require.True(t, ok)
		assert.Equal(t, epicID, sub.EpicID)
		assert.Equal(t, []int{sub.ID}, m.items[0].(*domain.Epic).SubtaskIDs)
	})

	t.Run("sibling of the selected subtask", func(t *testing.T) {
		m, board := newTestModel(t)
		epicID := seed(t, board, domain.KindEpic, "release", 0)
		seed(t, board, domain.KindSubtask, "tag", epicID)
		run(t, m, m.Init())
		press(m, "j")

		press(m, "s")

		assert.Equal(t, epicID, m.newEpicID)
	})
}

func TestModel_DeleteEpic(t *testing.T) {
	// Setup
	m, board := newTestModel(t)
	epicID := seed(t, board, domain.KindEpic, "release", 0)
	seed(t, board, domain.KindSubtask, "tag", epicID)
	keep := seed(t, board, domain.KindTask, "keep", 0)
	run(t, m, m.Init())

	// Execute
	press(m, "d")
	require.Equal(t, ModeConfirm, m.mode)
	assert.Equal(t, epicID, m.confirmID)
	run(t, m, press(m, "y"))

	// Assert
	assert.Equal(t, ModeNormal, m.mode)
	assert.Equal(t, []int{keep}, itemIDs(m.items))
}

func TestModel_DeleteCancelled(t *testing.T) {
	m, board := newTestModel(t)
	seed(t, board, domain.KindTask, "keep", 0)
	run(t, m, m.Init())

	press(m, "d")
	cmd := press(m, "n")

	assert.Nil(t, cmd)
	assert.Equal(t, ModeNormal, m.mode)
	assert.Equal(t, ConfirmNone, m.confirmAction)
	assert.Len(t, m.items, 1)
}

func TestModel_CycleStatus(t *testing.T) {
	// Setup
	m, board := newTestModel(t)
	seed(t, board, domain.KindTask, "t", 0)
	seed(t, board, domain.KindEpic, "e", 0)
	run(t, m, m.Init())

	// Execute / Assert
	want := []domain.Status{domain.StatusInProgress, domain.StatusDone, domain.StatusNew}
	for _, status := range want {
		run(t, m, press(m, "e"))
		assert.Equal(t, status, m.items[0].(*domain.Task).Status)
	}

	press(m, "j")
	cmd := press(m, "e")
	assert.Nil(t, cmd)
	assert.ErrorIs(t, m.err, errDerivedStatus)
}

func TestModel_DetailRecordsHistory(t *testing.T) {
	// Setup
	m, board := newTestModel(t)
	seed(t, board, domain.KindTask, "first", 0)
	seed(t, board, domain.KindTask, "second", 0)
	run(t, m, m.Init())

	// Execute
	press(m, "j")
	run(t, m, press(m, "enter"))

	// Assert
	assert.Equal(t, ModeDetail, m.mode)
	require.NotNil(t, m.detail)
	assert.Equal(t, 2, m.detail.ItemID())
	require.Len(t, m.history, 1)
	assert.Equal(t, 2, m.history[0].ID())

	press(m, "esc")
	assert.Equal(t, ModeNormal, m.mode)
	assert.Nil(t, m.detail)
}

func TestModel_PrioritizedPane(t *testing.T) {
	// Setup
	m, board := newTestModel(t)
	base := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	late := seedScheduled(t, board, "late", base.Add(2*time.Hour), 30)
	early := seedScheduled(t, board, "early", base, 30)
	seed(t, board, domain.KindTask, "unscheduled", 0)

	// Execute
	run(t, m, m.Init())

	// Assert
	assert.Equal(t, []int{early, late}, itemIDs(m.prioritized))
}

func TestModel_ErrorMessages(t *testing.T) {
	m, _ := newTestModel(t)

	m.Update(MsgError{Err: domain.ErrItemNotFound})
	assert.ErrorIs(t, m.err, domain.ErrItemNotFound)

	m.Update(MsgClearError{})
	assert.NoError(t, m.err)
}

func TestModel_HelpAndQuit(t *testing.T) {
	m, _ := newTestModel(t)

	press(m, "?")
	assert.Equal(t, ModeHelp, m.mode)
	press(m, "?")
	assert.Equal(t, ModeNormal, m.mode)

	cmd := press(m, "q")
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestNextStatus(t *testing.T) {
	tests := []struct {
		in   domain.Status
		want domain.Status
	}{
		{domain.StatusNew, domain.StatusInProgress},
		{domain.StatusInProgress, domain.StatusDone},
		{domain.StatusDone, domain.StatusNew},
	}

	for _, tt := range tests {
		t.Run(string(tt.in), func(t *testing.T) {
			assert.Equal(t, tt.want, nextStatus(tt.in))
		})
	}
}

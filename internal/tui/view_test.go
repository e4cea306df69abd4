package tui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/runoshun/kanban/internal/domain"
)

func TestView_EmptyBoard(t *testing.T) {
	m, _ := newTestModel(t)
	run(t, m, m.Init())

	out := m.View()

	assert.Contains(t, out, "kanban")
	assert.Contains(t, out, "Items")
	assert.Contains(t, out, "Prioritized")
	assert.Contains(t, out, "History")
	assert.Contains(t, out, "No items yet")
}

func TestView_Rows(t *testing.T) {
	// Setup
	m, board := newTestModel(t)
	start := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	seedScheduled(t, board, "standup", start, 15)
	seed(t, board, domain.KindEpic, "release", 0)
	run(t, m, m.Init())

	// Execute
	out := m.View()

	// Assert
	assert.Contains(t, out, "#1")
	assert.Contains(t, out, "standup")
	assert.Contains(t, out, "[2025-06-02 09:00 → 2025-06-02 09:15]")
	assert.Contains(t, out, "#2")
	assert.Contains(t, out, "epic")
	assert.Contains(t, out, "release")
}

func TestView_Overlays(t *testing.T) {
	tests := []struct {
		setup func(m *Model)
		name  string
		want  string
	}{
		{
			name:  "new task prompt",
			setup: func(m *Model) { press(m, "n") },
			want:  "New task",
		},
		{
			name:  "delete confirmation",
			setup: func(m *Model) { press(m, "d") },
			want:  "Delete #1?",
		},
		{
			name:  "help",
			setup: func(m *Model) { press(m, "?") },
			want:  "cycle status",
		},
		{
			name:  "error",
			setup: func(m *Model) { m.Update(MsgError{Err: errDerivedStatus}) },
			want:  "Error: epic status is derived from its subtasks",
		},
		{
			name:  "history empty",
			setup: func(m *Model) { press(m, "shift+tab") },
			want:  "Nothing viewed yet",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, board := newTestModel(t)
			seed(t, board, domain.KindTask, "only", 0)
			run(t, m, m.Init())

			tt.setup(m)

			assert.Contains(t, m.View(), tt.want)
		})
	}
}

func TestView_Detail(t *testing.T) {
	// Setup
	m, board := newTestModel(t)
	epicID := seed(t, board, domain.KindEpic, "release", 0)
	seed(t, board, domain.KindSubtask, "tag build", epicID)
	run(t, m, m.Init())

	// Execute
	run(t, m, press(m, "enter"))
	out := m.View()

	// Assert
	assert.Contains(t, out, "#1 release")
	assert.Contains(t, out, "Subtasks")
	assert.Contains(t, out, "tag build")
	assert.Contains(t, out, "esc: back")
}

func TestMode_String(t *testing.T) {
	assert.Equal(t, "normal", ModeNormal.String())
	assert.Equal(t, "input_name", ModeInputName.String())
	assert.Equal(t, "detail", ModeDetail.String())
	assert.True(t, ModeInputName.IsInputMode())
	assert.False(t, ModeConfirm.IsInputMode())
	assert.Equal(t, "History", PaneHistory.String())
	assert.Equal(t, "delete", ConfirmDelete.String())
}

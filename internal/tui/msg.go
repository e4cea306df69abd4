package tui

import "github.com/runoshun/kanban/internal/domain"

// Msg is the sealed interface for all TUI messages.
//
// go-sumtype:decl Msg
type Msg interface {
	sealed()
}

// MsgBoardLoaded carries a fresh read of every pane.
type MsgBoardLoaded struct {
	Items       []domain.Item
	Prioritized []domain.Item
	History     []domain.Snapshot
}

func (MsgBoardLoaded) sealed() {}

// MsgItemCreated is sent when a new item is created.
type MsgItemCreated struct {
	ItemID int
}

func (MsgItemCreated) sealed() {}

// MsgItemRemoved is sent when an item (and, for an epic, its subtasks) is removed.
type MsgItemRemoved struct {
	Removed []int
}

func (MsgItemRemoved) sealed() {}

// MsgStatusUpdated is sent when an item's status is changed.
type MsgStatusUpdated struct {
	Status domain.Status
	ItemID int
}

func (MsgStatusUpdated) sealed() {}

// MsgDetailLoaded carries the item opened in the detail view.
type MsgDetailLoaded struct {
	Item     domain.Item
	Subtasks []*domain.Subtask
}

func (MsgDetailLoaded) sealed() {}

// MsgError is sent when an error occurs.
type MsgError struct {
	Err error
}

func (MsgError) sealed() {}

// MsgClearError is sent to clear the current error message.
type MsgClearError struct{}

func (MsgClearError) sealed() {}

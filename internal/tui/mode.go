// Package tui provides the terminal board for kanban.
package tui

// Mode represents the current UI mode.
type Mode int

const (
	ModeNormal    Mode = iota // Default navigation mode
	ModeInputName             // Name input mode (for a new item)
	ModeConfirm               // Confirmation dialog mode
	ModeHelp                  // Help overlay mode
	ModeDetail                // Item detail view mode
)

// String returns the string representation of the mode.
func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "normal"
	case ModeInputName:
		return "input_name"
	case ModeConfirm:
		return "confirm"
	case ModeHelp:
		return "help"
	case ModeDetail:
		return "detail"
	default:
		return "unknown"
	}
}

// IsInputMode returns true if the mode accepts text input.
func (m Mode) IsInputMode() bool {
	return m == ModeInputName
}

// Pane identifies which list the board shows.
type Pane int

const (
	PaneItems       Pane = iota // Every item by ID
	PanePrioritized             // Scheduled items by start time
	PaneHistory                 // Recently viewed, most recent first
	paneCount
)

// String returns the pane title.
func (p Pane) String() string {
	switch p {
	case PaneItems:
		return "Items"
	case PanePrioritized:
		return "Prioritized"
	case PaneHistory:
		return "History"
	default:
		return "unknown"
	}
}

// ConfirmAction represents the type of action requiring confirmation.
type ConfirmAction int

const (
	ConfirmNone   ConfirmAction = iota
	ConfirmDelete               // Delete item (and an epic's subtasks)
)

// String returns a human-readable description of the action.
func (a ConfirmAction) String() string {
	switch a {
	case ConfirmDelete:
		return "delete"
	case ConfirmNone:
		return ""
	}
	return ""
}

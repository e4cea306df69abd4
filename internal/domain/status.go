package domain

// Status represents the progress state of a work item.
type Status string

const (
	StatusNew        Status = "NEW"         // Created, not started
	StatusInProgress Status = "IN_PROGRESS" // Work has started
	StatusDone       Status = "DONE"        // Finished
)

// AllStatuses returns all valid status values.
func AllStatuses() []Status {
	return []Status{
		StatusNew,
		StatusInProgress,
		StatusDone,
	}
}

// IsValid returns true if the status is a known valid value.
func (s Status) IsValid() bool {
	switch s {
	case StatusNew, StatusInProgress, StatusDone:
		return true
	default:
		return false
	}
}

// Display returns a human-readable representation of the status.
func (s Status) Display() string {
	switch s {
	case StatusNew:
		return "New"
	case StatusInProgress:
		return "In Progress"
	case StatusDone:
		return "Done"
	default:
		return string(s)
	}
}

// ParseStatus parses a status string. Lowercase input and the "in-progress"
// spelling used on the command line are accepted.
func ParseStatus(s string) (Status, error) {
	switch s {
	case "NEW", "new":
		return StatusNew, nil
	case "IN_PROGRESS", "in_progress", "in-progress":
		return StatusInProgress, nil
	case "DONE", "done":
		return StatusDone, nil
	default:
		return "", ErrInvalidStatus
	}
}

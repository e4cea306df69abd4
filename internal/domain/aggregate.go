package domain

import "time"

// Aggregate holds the values an epic derives from its subtasks.
// Fields are ordered to minimize memory padding.
type Aggregate struct {
	StartTime *time.Time     // Earliest subtask start, nil if none set
	EndTime   *time.Time     // Latest subtask end, nil if none known
	Duration  *time.Duration // Sum of set subtask durations, nil if none set
	Status    Status
}

// ComputeAggregate derives an epic's status and time window from its subtasks.
//
//	status: NEW when there are no subtasks or all are NEW,
//	        DONE when all are DONE, IN_PROGRESS otherwise.
//	time:   unset subtask values are ignored.
func ComputeAggregate(subtasks []*Subtask) Aggregate {
	agg := Aggregate{Status: aggregateStatus(subtasks)}

	for _, s := range subtasks {
		if s.Duration != nil {
			sum := *s.Duration
			if agg.Duration != nil {
				sum += *agg.Duration
			}
			agg.Duration = &sum
		}
		if start, ok := s.Start(); ok {
			if agg.StartTime == nil || start.Before(*agg.StartTime) {
				agg.StartTime = &start
			}
		}
		if end, ok := s.End(); ok {
			if agg.EndTime == nil || end.After(*agg.EndTime) {
				agg.EndTime = &end
			}
		}
	}
	return agg
}

func aggregateStatus(subtasks []*Subtask) Status {
	if len(subtasks) == 0 {
		return StatusNew
	}
	allNew, allDone := true, true
	for _, s := range subtasks {
		if s.Status != StatusNew {
			allNew = false
		}
		if s.Status != StatusDone {
			allDone = false
		}
	}
	switch {
	case allNew:
		return StatusNew
	case allDone:
		return StatusDone
	default:
		return StatusInProgress
	}
}

// Apply writes the aggregate into the epic's derived fields.
func (e *Epic) Apply(agg Aggregate) {
	e.Status = agg.Status
	e.StartTime = agg.StartTime
	e.EndTime = agg.EndTime
	e.Duration = agg.Duration
}

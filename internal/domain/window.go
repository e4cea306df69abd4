package domain

import "time"

// Window is a half-open time interval [Start, End).
type Window struct {
	Start time.Time
	End   time.Time
}

// WindowOf returns the window of a scheduled item.
// ok is false when the item lacks a start or a duration.
func WindowOf(item Item) (Window, bool) {
	start, ok := item.Start()
	if !ok {
		return Window{}, false
	}
	end, ok := item.End()
	if !ok {
		return Window{}, false
	}
	return Window{Start: start, End: end}, true
}

// Overlaps returns true if the two windows share an interior point.
// Windows that only touch (one ends exactly where the other starts) do not overlap.
func (w Window) Overlaps(other Window) bool {
	return w.Start.Before(other.End) && other.Start.Before(w.End)
}

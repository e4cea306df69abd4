// Package timeline provides an index of scheduled work items ordered by start time.
package timeline

import (
	"time"

	"github.com/emirpasic/gods/trees/redblacktree"

	"github.com/runoshun/kanban/internal/domain"
)

// Entry is a scheduled item as seen by the index.
// Fields are ordered to minimize memory padding.
type Entry struct {
	Window domain.Window
	Kind   domain.Kind
	ID     int
}

// key orders entries by start time, then by ID for equal starts.
type key struct {
	start time.Time
	id    int
}

func compareKeys(a, b interface{}) int {
	ka := a.(key)
	kb := b.(key)
	switch {
	case ka.start.Before(kb.start):
		return -1
	case ka.start.After(kb.start):
		return 1
	case ka.id < kb.id:
		return -1
	case ka.id > kb.id:
		return 1
	default:
		return 0
	}
}

// Index holds every scheduled (start and duration set) task and subtask,
// ordered by start time. Insert, Remove and Replace are O(log n).
type Index struct {
	tree *redblacktree.Tree
	keys map[int]key
}

// New creates an empty Index.
func New() *Index {
	return &Index{
		tree: redblacktree.NewWith(compareKeys),
		keys: make(map[int]key),
	}
}

// Insert adds item to the index. Items without a full time window, or with a
// non-positive ID, are ignored. An existing entry for the same ID is replaced.
func (x *Index) Insert(item domain.Item) {
	if item == nil || item.ItemID() <= 0 {
		return
	}
	w, ok := domain.WindowOf(item)
	if !ok {
		x.Remove(item.ItemID())
		return
	}
	x.Remove(item.ItemID())
	k := key{start: w.Start, id: item.ItemID()}
	x.tree.Put(k, Entry{ID: item.ItemID(), Kind: item.ItemKind(), Window: w})
	x.keys[item.ItemID()] = k
}

// Replace updates the entry for item. If the new value has no full time window
// the old entry is dropped.
func (x *Index) Replace(item domain.Item) {
	x.Insert(item)
}

// Remove drops the entry with the given ID, if any.
func (x *Index) Remove(id int) {
	k, ok := x.keys[id]
	if !ok {
		return
	}
	x.tree.Remove(k)
	delete(x.keys, id)
}

// Contains reports whether an entry exists for id.
func (x *Index) Contains(id int) bool {
	_, ok := x.keys[id]
	return ok
}

// Len returns the number of indexed entries.
func (x *Index) Len() int {
	return x.tree.Size()
}

// Overlapping reports whether candidate's window intersects any indexed entry
// other than the one sharing candidate's ID, and returns that entry's ID.
// Candidates without a full time window never overlap.
func (x *Index) Overlapping(candidate domain.Item) (int, bool) {
	if candidate == nil {
		return 0, false
	}
	w, ok := domain.WindowOf(candidate)
	if !ok {
		return 0, false
	}

	it := x.tree.Iterator()
	for it.Next() {
		e := it.Value().(Entry)
		// Entries are sorted by start; none from here on can reach into w.
		if !e.Window.Start.Before(w.End) {
			break
		}
		if e.ID == candidate.ItemID() {
			continue
		}
		if e.Window.Overlaps(w) {
			return e.ID, true
		}
	}
	return 0, false
}

// Entries returns all entries in timeline order.
func (x *Index) Entries() []Entry {
	out := make([]Entry, 0, x.tree.Size())
	it := x.tree.Iterator()
	for it.Next() {
		out = append(out, it.Value().(Entry))
	}
	return out
}

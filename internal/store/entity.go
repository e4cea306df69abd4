package store

import "github.com/runoshun/kanban/internal/domain"

// Record is the pointer constraint for values held by an EntityStore.
// *domain.Task, *domain.Epic and *domain.Subtask satisfy it.
type Record[T any] interface {
	*T
	ItemID() int
	SetID(id int)
	SetStatus(s domain.Status)
	Clone() *T
}

// EntityStore owns the canonical copies of one kind of work item, keyed by ID.
// Values go in and come out as independent copies, so callers can never
// mutate stored state through a pointer they hold.
type EntityStore[T any, P Record[T]] struct {
	items map[int]P
	alloc *Allocator
}

// NewEntityStore creates an empty store drawing IDs from alloc.
func NewEntityStore[T any, P Record[T]](alloc *Allocator) *EntityStore[T, P] {
	return &EntityStore[T, P]{
		items: make(map[int]P),
		alloc: alloc,
	}
}

// Create assigns a new ID and status NEW to item, stores a copy and returns item.
// A nil item is rejected and nil is returned.
func (s *EntityStore[T, P]) Create(item *T) *T {
	if item == nil {
		return nil
	}
	p := P(item)
	p.SetID(s.alloc.Next())
	p.SetStatus(domain.StatusNew)
	s.items[p.ItemID()] = P(p.Clone())
	return item
}

// Get returns a copy of the item with the given ID.
func (s *EntityStore[T, P]) Get(id int) (*T, bool) {
	p, ok := s.items[id]
	if !ok {
		return nil, false
	}
	return p.Clone(), true
}

// Update replaces the stored copy of item. It does nothing and returns false
// unless item is non-nil and its ID is already present.
func (s *EntityStore[T, P]) Update(item *T) bool {
	if item == nil {
		return false
	}
	p := P(item)
	if !s.Exists(p.ItemID()) {
		return false
	}
	s.items[p.ItemID()] = P(p.Clone())
	return true
}

// Remove deletes the item with the given ID. Non-positive or unknown IDs are ignored.
func (s *EntityStore[T, P]) Remove(id int) bool {
	if !s.Exists(id) {
		return false
	}
	delete(s.items, id)
	return true
}

// Exists reports whether an item with the given positive ID is stored.
func (s *EntityStore[T, P]) Exists(id int) bool {
	if id <= 0 {
		return false
	}
	_, ok := s.items[id]
	return ok
}

// All returns copies of every stored item in unspecified order.
func (s *EntityStore[T, P]) All() []*T {
	out := make([]*T, 0, len(s.items))
	for _, p := range s.items {
		out = append(out, p.Clone())
	}
	return out
}

// Len returns the number of stored items.
func (s *EntityStore[T, P]) Len() int {
	return len(s.items)
}

// Load stores copies of items under their existing IDs without allocating.
// Items with non-positive IDs are skipped. Used when restoring persisted state.
func (s *EntityStore[T, P]) Load(items ...*T) {
	for _, item := range items {
		if item == nil {
			continue
		}
		p := P(item)
		if p.ItemID() <= 0 {
			continue
		}
		s.items[p.ItemID()] = P(p.Clone())
	}
}

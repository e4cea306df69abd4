// Package store provides the in-memory entity stores and the shared ID allocator.
package store

// Allocator issues unique, strictly increasing item IDs starting at 1.
// One Allocator is shared by all entity stores so IDs never collide across kinds.
type Allocator struct {
	next int
}

// NewAllocator creates an Allocator whose first ID is 1.
func NewAllocator() *Allocator {
	return &Allocator{next: 1}
}

// Next returns a new ID.
func (a *Allocator) Next() int {
	id := a.next
	a.next++
	return id
}

// Peek returns the ID the next call to Next will return.
func (a *Allocator) Peek() int {
	return a.next
}

// ResumeFrom makes the next issued ID follow n. Negative n is ignored.
// Used when restoring persisted state, with n the highest ID seen.
func (a *Allocator) ResumeFrom(n int) {
	if n < 0 {
		return
	}
	a.next = n + 1
}

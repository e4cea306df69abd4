// Package history keeps a bounded, most-recent-first list of viewed work items.
package history

import "github.com/runoshun/kanban/internal/domain"

// nilSlot marks the absence of a neighbor, head or tail.
const nilSlot = -1

// node is one arena slot of the doubly linked list.
type node struct {
	snap domain.Snapshot
	prev int
	next int
}

// Cache is a recency-ordered list of item snapshots with O(1) touch, remove
// and eviction. The list is threaded through a flat arena of nodes by index;
// freed slots are reused.
//
// Cache is not safe for concurrent use.
type Cache struct {
	nodes   []node
	free    []int
	slots   map[int]int // item ID -> arena slot
	head    int
	tail    int
	maxSize int
}

// New creates a Cache holding at most maxSize entries. maxSize <= 0 means unbounded.
func New(maxSize int) *Cache {
	if maxSize < 0 {
		maxSize = 0
	}
	return &Cache{
		slots:   make(map[int]int),
		head:    nilSlot,
		tail:    nilSlot,
		maxSize: maxSize,
	}
}

// MaxSize returns the capacity (0 = unbounded).
func (c *Cache) MaxSize() int {
	return c.maxSize
}

// Touch records a view of item: any previous entry for the same ID is dropped
// and a frozen snapshot is placed at the front. The oldest entry is evicted
// when the cache is over capacity. Nil items and items without an ID are ignored.
func (c *Cache) Touch(item domain.Item) {
	if item == nil || item.ItemID() <= 0 {
		return
	}
	c.Remove(item.ItemID())

	slot := c.alloc(node{snap: domain.NewSnapshot(item), prev: nilSlot, next: c.head})
	if c.head != nilSlot {
		c.nodes[c.head].prev = slot
	}
	c.head = slot
	if c.tail == nilSlot {
		c.tail = slot
	}
	c.slots[item.ItemID()] = slot

	if c.maxSize > 0 && len(c.slots) > c.maxSize {
		c.Remove(c.nodes[c.tail].snap.ID())
	}
}

// Remove drops the entry for id, if any.
func (c *Cache) Remove(id int) {
	slot, ok := c.slots[id]
	if !ok {
		return
	}
	delete(c.slots, id)

	n := c.nodes[slot]
	if n.prev != nilSlot {
		c.nodes[n.prev].next = n.next
	} else {
		c.head = n.next
	}
	if n.next != nilSlot {
		c.nodes[n.next].prev = n.prev
	} else {
		c.tail = n.prev
	}

	c.nodes[slot] = node{prev: nilSlot, next: nilSlot}
	c.free = append(c.free, slot)
}

// Contains reports whether id is in the cache.
func (c *Cache) Contains(id int) bool {
	_, ok := c.slots[id]
	return ok
}

// Len returns the number of entries.
func (c *Cache) Len() int {
	return len(c.slots)
}

// List returns the snapshots from most to least recently viewed.
// The returned slice is a fresh copy.
func (c *Cache) List() []domain.Snapshot {
	out := make([]domain.Snapshot, 0, len(c.slots))
	for slot := c.head; slot != nilSlot; slot = c.nodes[slot].next {
		out = append(out, c.nodes[slot].snap)
	}
	return out
}

// Clear drops every entry.
func (c *Cache) Clear() {
	c.nodes = nil
	c.free = nil
	c.slots = make(map[int]int)
	c.head = nilSlot
	c.tail = nilSlot
}

// alloc stores n in a free slot, growing the arena if none is available.
func (c *Cache) alloc(n node) int {
	if last := len(c.free) - 1; last >= 0 {
		slot := c.free[last]
		c.free = c.free[:last]
		c.nodes[slot] = n
		return slot
	}
	c.nodes = append(c.nodes, n)
	return len(c.nodes) - 1
}

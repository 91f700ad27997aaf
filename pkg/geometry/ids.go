package geometry

import "sync/atomic"

// ID identifies a shape within a World. IDs are never reused by the allocator that issued them.
type ID uint64

// IDAllocator hands out monotonically increasing shape IDs. It is safe for concurrent use.
type IDAllocator struct {
	last atomic.Uint64
}

// NewIDAllocator creates an allocator whose first ID is 1
func NewIDAllocator() *IDAllocator {
	return &IDAllocator{}
}

// Next returns a fresh ID
func (a *IDAllocator) Next() ID {
	return ID(a.last.Add(1))
}

// Package slab implements the lock-free checkout engine shared by the fixed
// and growable pool flavors: slots, storage, and the free-list controller
// layered over storage. Nothing in this package knows about the public
// Pool/Owned/Shared API; it only knows how to hand out and reclaim slot
// indices safely under contention.
package slab

import "sync/atomic"

// Slot is a single addressable cell: a stored value plus the concurrency
// state needed to check it in and out of a free list. The zero value is a
// free, unacquired slot with next == 0, which is why Storage implementations
// must always set idx explicitly at construction time.
type Slot[T any] struct {
	value T

	// idx is this slot's position in its containing Storage. It never
	// changes after the slot is created.
	idx uint32

	// refCount is 0 when the slot is free, >=1 when checked out. Exactly
	// one Owned, or any number of Shared, may hold a nonzero refCount.
	refCount atomic.Int32

	// next is only meaningful while the slot sits on the free list; it is
	// otherwise stale and must not be read.
	next atomic.Uint32
}

// Init assigns this slot's stable index. Called exactly once, when the
// containing Storage creates the slot.
func (s *Slot[T]) Init(idx uint32) {
	s.idx = idx
}

// Idx returns this slot's stable index within its Storage.
func (s *Slot[T]) Idx() uint32 {
	return s.idx
}

// Value returns a pointer to the stored value. Callers are responsible for
// only mutating through this pointer while holding exclusive (Owned) access.
func (s *Slot[T]) Value() *T {
	return &s.value
}

// Next returns the slot's free-list successor. Valid only while the slot is
// on the free list.
func (s *Slot[T]) Next() uint32 {
	return s.next.Load()
}

// SetNext stores the slot's free-list successor.
func (s *Slot[T]) SetNext(next uint32) {
	s.next.Store(next)
}

// TryAcquire attempts to transition refCount from 0 to 1. It reports whether
// the transition succeeded; failure means some other checkout already
// claimed this slot and the caller should retry elsewhere.
func (s *Slot[T]) TryAcquire() bool {
	return s.refCount.CompareAndSwap(0, 1)
}

// CloneRef increments the reference count. It is only safe to call while the
// caller already holds a live reference to this slot — that existing
// reference, not this increment, is what establishes safety.
func (s *Slot[T]) CloneRef() {
	s.refCount.Add(1)
}

// Release decrements the reference count and reports whether the count
// transitioned from 1 to 0. When it does, the caller (the owning Slab) must
// push this slot's index back onto the free list.
func (s *Slot[T]) Release() bool {
	return s.refCount.Add(-1) == 0
}

// RefCount returns the current reference count. Exposed for debug-assertion
// and testing use only; it is not meaningful for correctness decisions
// outside the Slot itself.
func (s *Slot[T]) RefCount() int32 {
	return s.refCount.Load()
}

// TryUpgrade attempts to claim exclusive ownership of a slot currently held
// by a single Shared reference. It succeeds only if refCount is exactly 1 at
// the moment of the swap, meaning the caller's Shared handle is the only
// live reference; the CompareAndSwap is the linearization point, so a
// concurrent CloneRef on a second, independently-held Shared handle for this
// slot cannot race with it undetected (that handle could only exist if
// refCount was already >=2). The count is left at 1, matching the invariant
// TryAcquire establishes for exclusive access.
func (s *Slot[T]) TryUpgrade() bool {
	return s.refCount.CompareAndSwap(1, 1)
}

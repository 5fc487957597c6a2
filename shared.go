package pool

import "github.com/fmstephe/pool/internal/slab"

// Shared is a reference-counted, read-oriented handle to a checked-out
// value. Any number of Shared handles may exist for the same slot
// simultaneously; the slot returns to the pool only once every clone has
// been released. Like Owned, Shared has no destructor — Release must be
// called explicitly for every clone, including the original.
type Shared[T any, PT PtrClearable[T]] struct {
	slot    *slab.Slot[T]
	slab    *slab.Slab[T]
	factory func() T
}

// Value returns a pointer to the checked-out value, valid until this
// particular handle is released. Concurrent Shared holders may read through
// their own Value pointer simultaneously; nothing in Shared enforces that
// they refrain from mutating it, so callers sharing a value across
// goroutines are responsible for treating it as read-only.
func (s Shared[T, PT]) Value() *T {
	return s.slot.Value()
}

// Clone returns a new Shared handle referring to the same slot, incrementing
// the reference count. Both the original and the clone must eventually be
// released independently.
func (s Shared[T, PT]) Clone() Shared[T, PT] {
	s.slot.CloneRef()
	return Shared[T, PT]{slot: s.slot, slab: s.slab, factory: s.factory}
}

// TryUpgrade attempts to reclaim exclusive ownership of the slot, succeeding
// only if this is the single outstanding Shared reference to it. On success
// it consumes this handle and returns a live Owned in its place; on failure
// it returns false and this Shared handle remains valid and must still be
// released normally.
func (s Shared[T, PT]) TryUpgrade() (Owned[T, PT], bool) {
	if !s.slot.TryUpgrade() {
		return Owned[T, PT]{}, false
	}
	return Owned[T, PT]{slot: s.slot, slab: s.slab, factory: s.factory}, true
}

// Release decrements the slot's reference count. Once the last Shared (or
// the Owned that originally downgraded into the first of them) releases,
// the slot returns to the pool's free list.
func (s Shared[T, PT]) Release() {
	if s.slot.Release() {
		s.slab.Release(s.slot)
	}
}

package pool

import "github.com/fmstephe/pool/internal/slab"

// Owned is an exclusive handle to a checked-out value. Only one Owned can
// exist for a given slot at a time. Go has no destructors, so unlike a
// RAII-based handle, Release must be called explicitly: an Owned left
// unreleased does not leak memory the way a raw pointer would, but it does
// leave its slot checked out forever, starving the pool of that slot.
type Owned[T any, PT PtrClearable[T]] struct {
	slot    *slab.Slot[T]
	slab    *slab.Slab[T]
	factory func() T
}

// Value returns a pointer to the checked-out value, valid until Release is
// called, or until Detach/DetachWith replaces it.
func (o Owned[T, PT]) Value() *T {
	return o.slot.Value()
}

// Downgrade converts this exclusive handle into the first of potentially
// many Shared ones. The reference count is unchanged — Owned and a lone
// Shared both represent a single outstanding reference, so no CloneRef is
// needed, only a change in what the reference permits. The Owned must not
// be used again afterwards; Downgrade consumes it. Call Clone on the
// returned Shared to create additional concurrent readers.
func (o Owned[T, PT]) Downgrade() Shared[T, PT] {
	return Shared[T, PT]{slot: o.slot, slab: o.slab, factory: o.factory}
}

// Detach replaces the checked-out value with a freshly constructed one (from
// the pool's own factory) and returns the value it replaced. The slot
// remains checked out — this Owned is still live and must still be
// Released — so the returned value is the only handle left to the old data,
// free to outlive whatever the pool does to the slot next. DetachWith is the
// general form; Detach is DetachWith(factory).
func (o Owned[T, PT]) Detach() T {
	return o.DetachWith(o.factory)
}

// DetachWith replaces the checked-out value with fn's result, returning the
// value it replaced. The slot remains checked out; this Owned is still live
// and must still be Released once the caller is done with it. Use this
// instead of copying o.Value() directly whenever T holds resources that a
// plain copy would alias rather than duplicate (e.g. a Slice sharing its
// backing array with whatever the slot is reused for next).
func (o Owned[T, PT]) DetachWith(fn func() T) T {
	old := *o.slot.Value()
	*o.slot.Value() = fn()
	return old
}

// Release returns the slot to the pool's free list. After Release, this
// Owned (and any *T obtained from Value) must not be used again.
func (o Owned[T, PT]) Release() {
	if o.slot.Release() {
		o.slab.Release(o.slot)
	}
}

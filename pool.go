// Package pool implements a concurrent, two-tier checkout pool for
// reusable, heavy-to-construct values. Consumers check a value out of the
// Pool, use it through an Owned (exclusive) or Shared (reference-counted,
// read-only) handle, and explicitly Release it when done; the underlying
// slot returns to the pool's free list for the next checkout.
//
// Two flavors share the same Pool/Owned/Shared API: a fixed pool of static
// capacity (Builder.Fixed), whose checkout blocks until a slot frees once
// full, and a growable pool (Builder.Growable) that extends its storage
// on demand.
//
//	values := pool.NewBuilder[pool.Bytes](pool.NewBytes(4096)).WithCapacity(64).Growable()
//
//	owned := values.Checkout()
//	owned.Value().Append([]byte("hello"))
//	owned.Release()
//
// Pooled values must implement Clearable (through a pointer receiver) so
// checkout can restore them to an empty state before handing them to the
// next caller; see clear.go for ready-made adapters (Bytes, Slice,
// StringBuilder, Map, Set).
package pool

import (
	"runtime"

	"github.com/fmstephe/pool/internal/slab"
)

// Pool is a handle to a shared slab of pooled values. Pool handles are
// cheap to copy by value — every copy refers to the same underlying slab —
// so a Pool can be passed around or stored in a struct field the way the
// teacher's own *offheap.Store is.
//
// T is the value type stored in each slot; PT is the pointer type
// implementing Clearable for T (see PtrClearable). Both New, NewFixed and
// NewBuilder infer PT from the factory's return type, so callers only name
// T explicitly.
type Pool[T any, PT PtrClearable[T]] struct {
	slab     *slab.Slab[T]
	factory  func() T
	growable bool
	growth   GrowthPolicy
}

func newFixedPool[T any, PT PtrClearable[T]](capacity uint32, factory func() T) *Pool[T, PT] {
	store := slab.NewArrayStore[T](capacity, factory)
	return &Pool[T, PT]{
		slab:    slab.NewSlab[T](store),
		factory: factory,
	}
}

func newGrowablePool[T any, PT PtrClearable[T]](capacity uint32, factory func() T, growth GrowthPolicy) *Pool[T, PT] {
	store := slab.NewBlockList[T](capacity, factory)
	return &Pool[T, PT]{
		slab:     slab.NewSlab[T](store),
		factory:  factory,
		growable: true,
		growth:   growth,
	}
}

// New builds a growable Pool with the default capacity (256) and growth
// policy (GrowDouble). It is equivalent to
// NewBuilder[T](factory).Growable().
func New[T any, PT PtrClearable[T]](factory func() T) *Pool[T, PT] {
	return NewBuilder[T, PT](factory).Growable()
}

// NewFixed builds a fixed-capacity Pool with the default capacity (256).
// It is equivalent to NewBuilder[T](factory).Fixed().
func NewFixed[T any, PT PtrClearable[T]](factory func() T) *Pool[T, PT] {
	return NewBuilder[T, PT](factory).Fixed()
}

// Size returns the pool's total capacity.
func (p *Pool[T, PT]) Size() int {
	return int(p.slab.Capacity())
}

// Used returns the number of currently checked-out slots. This is
// eventually consistent under concurrent use: it is provided for
// observability, not for making correctness decisions.
func (p *Pool[T, PT]) Used() int {
	return int(p.slab.Used())
}

// Remaining returns Size() - Used().
func (p *Pool[T, PT]) Remaining() int {
	return p.Size() - p.Used()
}

// TryCheckout attempts to check a value out of the pool without growing it.
// It returns false immediately if the pool is at capacity, regardless of
// pool flavor.
func (p *Pool[T, PT]) TryCheckout() (Owned[T, PT], bool) {
	for {
		slot, err := p.slab.TryCheckout(clearFunc[T, PT]())
		if err == nil {
			return Owned[T, PT]{slot: slot, slab: p.slab, factory: p.factory}, true
		}
		if err == slab.ErrAtCapacity {
			return Owned[T, PT]{}, false
		}
		// Transient CAS race: retry.
		runtime.Gosched()
	}
}

// Checkout checks a value out of the pool, blocking (spinning) on a fixed
// pool until a slot frees, or extending storage on a growable pool. It
// never fails.
func (p *Pool[T, PT]) Checkout() Owned[T, PT] {
	for {
		slot, err := p.slab.TryCheckout(clearFunc[T, PT]())
		if err == nil {
			return Owned[T, PT]{slot: slot, slab: p.slab, factory: p.factory}
		}

		if err == slab.ErrAtCapacity {
			if p.growable {
				p.slab.ExtendWith(p.growth.apply)
			}
			// A fixed pool just spins until a concurrent release
			// frees a slot; a growable pool spins until its own
			// extension (or a racing one) becomes visible.
		}

		runtime.Gosched()
	}
}

func clearFunc[T any, PT PtrClearable[T]]() func(*T) {
	return func(v *T) {
		PT(v).Clear()
	}
}

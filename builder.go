package pool

const defaultCapacity = 256

// Builder configures a Pool before construction: capacity, value factory,
// and (for growable pools) growth policy. Builder mirrors the teacher's own
// configuration surfaces (pointerstore.AllocConfig, offheap.NewSized) in
// spirit: every field is set through a chained method and the pool itself is
// only built once, by a terminal Fixed()/Growable() call.
//
// T is the value type stored in each slot (e.g. Bytes); PT is the pointer
// type that actually implements Clearable (e.g. *Bytes) — see PtrClearable.
// Callers only ever need to name T explicitly; PT is inferred.
type Builder[T any, PT PtrClearable[T]] struct {
	capacity uint32
	factory  func() T
	growth   GrowthPolicy
}

// NewBuilder starts a Builder with the default capacity (256) and the
// default growth policy (GrowDouble). factory constructs one fresh T per
// slot; it must produce values already in their empty state (i.e. Clear()
// on a freshly constructed value must be a no-op).
func NewBuilder[T any, PT PtrClearable[T]](factory func() T) *Builder[T, PT] {
	return &Builder[T, PT]{
		capacity: defaultCapacity,
		factory:  factory,
		growth:   GrowDouble(),
	}
}

// WithCapacity sets the pool's initial capacity. A growable pool rounds a
// nonzero capacity up to the next power of two and may grow beyond it later;
// a fixed pool uses it as given and never grows. Negative values are clamped to 0
// rather than rejected. A growable pool is allowed to start at capacity 0
// (it simply grows on first checkout); Fixed additionally clamps 0 up to 1,
// since a fixed pool can never grow out of an unusable zero-slot state.
func (b *Builder[T, PT]) WithCapacity(capacity int) *Builder[T, PT] {
	if capacity < 0 {
		capacity = 0
	}
	b.capacity = uint32(capacity)
	return b
}

// WithGrowth sets the growth policy used by a growable pool. It has no
// effect on a fixed pool.
func (b *Builder[T, PT]) WithGrowth(g GrowthPolicy) *Builder[T, PT] {
	b.growth = g
	return b
}

// Fixed builds a fixed-capacity Pool: checkout blocks (spins) once the pool
// is full instead of growing.
func (b *Builder[T, PT]) Fixed() *Pool[T, PT] {
	capacity := b.capacity
	if capacity == 0 {
		capacity = 1
	}
	return newFixedPool[T, PT](capacity, b.factory)
}

// Growable builds a Pool that extends its storage, using the configured
// GrowthPolicy, whenever checkout finds it full.
func (b *Builder[T, PT]) Growable() *Pool[T, PT] {
	return newGrowablePool[T, PT](b.capacity, b.factory, b.growth)
}

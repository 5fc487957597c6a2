package pool

// GrowthPolicy decides how many logical slots a growable Pool asks its
// BlockList to add when checkout finds the pool at capacity. The amount
// function is given the capacity of the block most recently appended (0 if
// the BlockList is still empty) and returns the number of new slots to
// request; BlockList separately rounds that request up to the next power of
// two for the new block's actual physical size.
type GrowthPolicy struct {
	amount func(tailCapacity uint32) uint32
}

// GrowDouble doubles the size of the most recently appended block on every
// extension (or adds one slot if the pool is currently empty). This is the
// default, and the policy under which the BlockList grows geometrically:
// each new block ends up twice the size of the one before it.
func GrowDouble() GrowthPolicy {
	return GrowthPolicy{amount: func(tailCapacity uint32) uint32 {
		if tailCapacity == 0 {
			return 1
		}
		return tailCapacity * 2
	}}
}

// GrowHalf adds half the size of the most recently appended block on every
// extension (or one slot if the pool is currently empty).
func GrowHalf() GrowthPolicy {
	return GrowthPolicy{amount: func(tailCapacity uint32) uint32 {
		if tailCapacity == 0 {
			return 1
		}
		return tailCapacity / 2
	}}
}

// GrowFixed requests n slots on every extension, regardless of the existing
// tail's size; the BlockList rounds n up to the next power of two (and a
// request of 0 to 1), so that is the number of slots actually added.
func GrowFixed(n uint32) GrowthPolicy {
	return GrowthPolicy{amount: func(tailCapacity uint32) uint32 {
		return n
	}}
}

func (g GrowthPolicy) apply(tailCapacity uint32) uint32 {
	n := g.amount(tailCapacity)
	if n == 0 {
		n = 1
	}
	return n
}

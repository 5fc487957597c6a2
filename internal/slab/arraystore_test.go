package slab

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestArrayStoreBoundsChecking(t *testing.T) {
	store := NewArrayStore[string](3, func() string { return "" })

	assert.Equal(t, uint32(3), store.Capacity())

	var seen []uint32
	for i := uint32(0); i < 5; i++ {
		ok := store.WithSlot(i, func(s *Slot[string]) {
			seen = append(seen, s.Idx())
		})
		assert.Equal(t, i < 3, ok)
	}
	assert.Equal(t, []uint32{0, 1, 2}, seen)
}

func TestArrayStoreFactoryRunsOncePerSlot(t *testing.T) {
	calls := 0
	store := NewArrayStore[int](4, func() int {
		calls++
		return calls
	})

	assert.Equal(t, 4, calls)

	var values []int
	for i := uint32(0); i < 4; i++ {
		store.WithSlot(i, func(s *Slot[int]) {
			values = append(values, *s.Value())
		})
	}
	assert.Equal(t, []int{1, 2, 3, 4}, values)
}

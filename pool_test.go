package pool

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Demonstrate that checking a value out of a fresh fixed pool, filling it
// completely, releasing everything, and checking out again reuses every
// slot rather than growing or erroring.
func Test_Pool_Fixed_FillAndReuse(t *testing.T) {
	const capacity = 4
	p := NewBuilder[Bytes](NewBytes(8)).WithCapacity(capacity).Fixed()

	owned := make([]Owned[Bytes, *Bytes], 0, capacity)
	for i := 0; i < capacity; i++ {
		o, ok := p.TryCheckout()
		require.True(t, ok)
		owned = append(owned, o)
	}

	_, ok := p.TryCheckout()
	require.False(t, ok)

	for _, o := range owned {
		o.Release()
	}
	assert.Equal(t, 0, p.Used())

	for i := 0; i < capacity; i++ {
		o, ok := p.TryCheckout()
		require.True(t, ok)
		o.Release()
	}
	assert.Equal(t, capacity, p.Size())
}

// Demonstrate TryCheckout/Checkout behaviour at capacity for a fixed pool:
// TryCheckout fails fast, Checkout blocks until a release frees a slot.
func Test_Pool_Fixed_TryCheckoutFailsAtCapacity(t *testing.T) {
	p := NewBuilder[Bytes](NewBytes(8)).WithCapacity(2).Fixed()

	o1, ok := p.TryCheckout()
	require.True(t, ok)
	_, ok = p.TryCheckout()
	require.True(t, ok)

	_, ok = p.TryCheckout()
	assert.False(t, ok)

	o1.Release()

	o3, ok := p.TryCheckout()
	require.True(t, ok)
	o3.Release()
}

// Demonstrate that a fixed pool's Checkout blocks (spins) until a
// concurrent Release frees a slot, rather than growing.
func Test_Pool_Fixed_CheckoutBlocksUntilRelease(t *testing.T) {
	p := NewBuilder[Bytes](NewBytes(8)).WithCapacity(1).Fixed()

	first := p.Checkout()

	done := make(chan struct{})
	go func() {
		second := p.Checkout()
		second.Release()
		close(done)
	}()

	select {
	case <-done:
		t.Fatal("Checkout returned before the only slot was released")
	default:
	}

	first.Release()
	<-done

	assert.Equal(t, 1, p.Size())
}

// Demonstrate that a growable pool extends its storage instead of blocking
// once it runs out of room, and that the new capacity is visible
// immediately afterwards.
func Test_Pool_Growable_ExtendsOnDemand(t *testing.T) {
	p := NewBuilder[Bytes](NewBytes(8)).WithCapacity(1).Growable()

	o1 := p.Checkout()
	assert.Equal(t, 1, p.Size())

	o2 := p.Checkout()
	assert.Greater(t, p.Size(), 1)

	o1.Release()
	o2.Release()
}

// Demonstrate that a growable pool started at zero capacity still succeeds
// on its very first checkout.
func Test_Pool_Growable_StartsFromZero(t *testing.T) {
	p := NewBuilder[Bytes](NewBytes(8)).WithCapacity(0).Growable()
	assert.Equal(t, 0, p.Size())

	o := p.Checkout()
	assert.GreaterOrEqual(t, p.Size(), 1)
	o.Release()
}

// Demonstrate that a growable pool does not extend storage while slack
// remains: releasing and re-checking-out should not change Size.
func Test_Pool_Growable_NoGrowthWhileSlackRemains(t *testing.T) {
	p := NewBuilder[Bytes](NewBytes(8)).WithCapacity(4).Growable()

	sizeBefore := p.Size()
	o := p.Checkout()
	o.Release()
	o = p.Checkout()
	o.Release()

	assert.Equal(t, sizeBefore, p.Size())
}

// Demonstrate that every value handed out by Checkout has already been
// Cleared, regardless of what a previous holder left in it.
func Test_Pool_ChecksOutClearedValues(t *testing.T) {
	p := NewBuilder[Bytes](NewBytes(8)).WithCapacity(1).Fixed()

	o := p.Checkout()
	o.Value().Append([]byte("dirty"))
	o.Release()

	o2 := p.Checkout()
	assert.Equal(t, 0, o2.Value().Len())
	o2.Release()
}

// Demonstrate that many goroutines concurrently checking out and releasing
// against a small fixed pool never observe two live handles to the same
// slot at once, and that Used() returns to zero once all work completes.
func Test_Pool_ConcurrentCheckoutExclusivity(t *testing.T) {
	const slots = 4
	const perGoroutine = 2000

	p := NewBuilder[Bytes](NewBytes(8)).WithCapacity(slots).Fixed()

	var wg sync.WaitGroup
	for g := 0; g < slots*2; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perGoroutine; i++ {
				o := p.Checkout()
				o.Value().Append([]byte("x"))
				o.Release()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 0, p.Used())
	assert.Equal(t, slots, p.Size())
}

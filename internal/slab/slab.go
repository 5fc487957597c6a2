package slab

import (
	"errors"
	"sync/atomic"
)

// ErrAtCapacity means the free list is empty: every slot in the storage is
// currently checked out. Callers decide what to do about it — a fixed pool
// spins until a slot frees, a growable pool extends storage and retries.
var ErrAtCapacity = errors.New("slab: at capacity")

// errShouldRetry means a CAS in the free-list protocol lost a race.
// TryCheckout returns it without retrying; being unexported, callers outside
// this package see it only as an error other than ErrAtCapacity and retry.
var errShouldRetry = errors.New("slab: should retry")

// emptyIdx marks the end of the free list. It must never be a value that a
// growable Storage can later hand out as a real slot index, so "current
// capacity" (as BlockList.Capacity once was used) will not do: a terminator
// baked into a slot's next field is fixed at link time, but capacity can grow
// afterwards, so a stale terminator can end up numerically below the new
// capacity and be mistaken for a live index. A fixed value outside any
// realistic slot count sidesteps that entirely.
const emptyIdx uint32 = ^uint32(0)

// Slab owns one Storage plus the free-list controller layered over it: an
// atomic free-list head (a slot index, or emptyIdx meaning "empty") and an
// eventually-consistent used counter. The free list is a Treiber-style
// lock-free stack of slot indices, linked through each slot's next field.
type Slab[T any] struct {
	storage Storage[T]

	// head is the top of the free-list stack: a slot index, or emptyIdx.
	head atomic.Uint32

	// used counts slots with refCount > 0. It exists purely for
	// observability — nothing about the free-list protocol depends on
	// its exact value.
	used atomic.Int64
}

// NewSlab builds a Slab over storage, with every slot initially free: slot k
// has next = k+1, the last slot's next is emptyIdx, and head starts at 0 (or
// emptyIdx if storage is empty).
func NewSlab[T any](storage Storage[T]) *Slab[T] {
	capacity := storage.Capacity()
	for i := uint32(0); i < capacity; i++ {
		next := i + 1
		if next == capacity {
			next = emptyIdx
		}
		storage.WithSlot(i, func(s *Slot[T]) {
			s.SetNext(next)
		})
	}
	s := &Slab[T]{storage: storage}
	if capacity == 0 {
		s.head.Store(emptyIdx)
	} else {
		s.head.Store(0)
	}
	return s
}

// Storage returns the underlying storage, for callers (the growable pool)
// that need to extend it.
func (s *Slab[T]) Storage() Storage[T] {
	return s.storage
}

// Used returns the eventually-consistent count of currently checked-out
// slots.
func (s *Slab[T]) Used() int64 {
	return s.used.Load()
}

// Capacity returns the total number of slots backing this Slab.
func (s *Slab[T]) Capacity() uint32 {
	return s.storage.Capacity()
}

// TryCheckout attempts to pop one slot off the free list and claim it. It
// returns ErrAtCapacity if the free list is empty, or errShouldRetry if a
// transient CAS race needs to be retried by the caller.
func (s *Slab[T]) TryCheckout(clear func(*T)) (*Slot[T], error) {
	head := s.head.Load()
	if head == emptyIdx {
		return nil, ErrAtCapacity
	}

	var claimed *Slot[T]
	present := s.storage.WithSlot(head, func(slot *Slot[T]) {
		claimed = slot
	})
	if !present {
		return nil, ErrAtCapacity
	}

	if !claimed.TryAcquire() {
		return nil, errShouldRetry
	}

	next := claimed.Next()
	if !s.head.CompareAndSwap(head, next) {
		// Someone else already popped from under us. Undo our claim and
		// let the caller retry.
		claimed.Release()
		return nil, errShouldRetry
	}

	if clear != nil {
		clear(claimed.Value())
	}
	s.used.Add(1)

	return claimed, nil
}

// Release pushes slot's index back onto the free list. Callers must only
// call this once a slot's reference count has actually reached zero (see
// Slot.Release).
//
// This is the textbook Treiber push, not the swap-then-store sequence: we
// write this slot's next field *before* publishing its index as the new
// head. Publishing first and writing next second would leave a window where
// a concurrent TryCheckout could observe the new head, win TryAcquire (the
// slot's ref count is already 0), and read next before this goroutine has
// stored it — handing out a stale successor. Storing next first and only
// then CAS-installing the head closes that window while preserving the same
// external ordering guarantees.
func (s *Slab[T]) Release(slot *Slot[T]) {
	idx := slot.Idx()
	for {
		prev := s.head.Load()
		slot.SetNext(prev)
		if s.head.CompareAndSwap(prev, idx) {
			break
		}
	}
	s.used.Add(-1)
}

// ExtendWith grows the underlying storage and splices the newly created
// slots onto the free list, using policy to decide how many logical slots
// to add given the BlockList's current tail size. It only applies to
// BlockList-backed slabs (the growable pool); it is a no-op for an
// ArrayStore-backed slab, since a fixed pool's capacity never changes.
func (s *Slab[T]) ExtendWith(policy func(tailCapacity uint32) uint32) {
	bl, ok := s.storage.(*BlockList[T])
	if !ok {
		return
	}

	start, end, extended := bl.Extend(policy)
	if !extended {
		return
	}

	s.linkNewSlots(start, end)
}

// linkNewSlots chains slot indices [start, end) into a free sublist and
// splices that sublist onto the top of the free stack in a single CAS, the
// same way a Treiber stack pushes any node: write the new range's tail
// pointer at the existing head before publishing the new head.
func (s *Slab[T]) linkNewSlots(start, end uint32) {
	if start >= end {
		return
	}

	for i := start; i < end-1; i++ {
		i := i
		s.storage.WithSlot(i, func(slot *Slot[T]) {
			slot.SetNext(i + 1)
		})
	}

	for {
		prevHead := s.head.Load()
		s.storage.WithSlot(end-1, func(slot *Slot[T]) {
			slot.SetNext(prevHead)
		})
		if s.head.CompareAndSwap(prevHead, start) {
			return
		}
	}
}

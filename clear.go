package pool

import "bytes"

// Clearable is the capability a pooled value must provide: resetting itself
// to an empty state while retaining whatever capacity it has already
// allocated. Checkout calls Clear on every handed-out value before it
// reaches the caller, so the freshness-on-checkout property (spec.md §8,
// property 1) holds regardless of what the previous holder left behind.
//
// Implementations must retain their allocation. A type whose Clear()
// equivalent releases its backing storage (a map that nils itself out, say)
// must not implement this interface — pooling such a type would defeat the
// entire purpose, since every checkout would pay full allocation cost again.
type Clearable interface {
	Clear()
}

// PtrClearable ties a value type T to a pointer type that implements
// Clearable. It exists because Clear must mutate its receiver in place to
// retain allocated capacity (truncating a slice, clearing a map), which
// requires a pointer receiver — so T itself (Bytes, Slice[E], ...) never
// satisfies Clearable directly, only *T does. Pool, Builder, Owned and
// Shared all carry T and PT as a pair so that the pool can store plain
// values (T) while still being able to call Clear() on them (via PT),
// without forcing every pooled type to be written as a pointer type.
type PtrClearable[T any] interface {
	*T
	Clearable
}

// Bytes is a pooled, growable byte buffer. Clear truncates the buffer to
// length zero without releasing its backing array, so repeated
// append/Clear/checkout cycles reuse the same allocation once it has grown
// large enough.
type Bytes struct {
	buf []byte
}

// NewBytes returns a factory suitable for NewBuilder, producing
// Bytes values whose backing array starts at the given capacity.
func NewBytes(capacity int) func() Bytes {
	return func() Bytes {
		return Bytes{buf: make([]byte, 0, capacity)}
	}
}

// B returns the buffer's current contents.
func (b *Bytes) B() []byte {
	return b.buf
}

// Append appends p to the buffer, growing it if necessary.
func (b *Bytes) Append(p []byte) {
	b.buf = append(b.buf, p...)
}

// Len returns the number of bytes currently in the buffer.
func (b *Bytes) Len() int {
	return len(b.buf)
}

// Clear truncates the buffer to zero length, retaining its capacity.
func (b *Bytes) Clear() {
	b.buf = b.buf[:0]
}

// Slice is a pooled, growable sequence of elements of type T. Like Bytes,
// Clear truncates rather than deallocates.
type Slice[T any] struct {
	items []T
}

// NewSlice returns a factory producing Slice values whose backing array
// starts at the given capacity.
func NewSlice[T any](capacity int) func() Slice[T] {
	return func() Slice[T] {
		return Slice[T]{items: make([]T, 0, capacity)}
	}
}

// Items returns the slice's current contents.
func (s *Slice[T]) Items() []T {
	return s.items
}

// Append appends v to the sequence.
func (s *Slice[T]) Append(v T) {
	s.items = append(s.items, v)
}

// Len returns the number of elements currently in the sequence.
func (s *Slice[T]) Len() int {
	return len(s.items)
}

// Clear truncates the sequence to zero length, retaining its capacity.
func (s *Slice[T]) Clear() {
	s.items = s.items[:0]
}

// StringBuilder is a pooled string buffer adapting bytes.Buffer to
// Clearable. bytes.Buffer.Reset truncates without releasing its backing
// array (strings.Builder.Reset drops it), so this is a thin wrapper.
type StringBuilder struct {
	bytes.Buffer
}

// Clear resets the builder to empty, retaining its capacity.
func (s *StringBuilder) Clear() {
	s.Reset()
}

// Map is a pooled hash map. Clear removes every entry using the clear
// builtin, which (unlike reassigning the map to nil, or to a fresh
// make(map...)) retains the runtime's existing bucket allocation.
type Map[K comparable, V any] struct {
	m map[K]V
}

// NewMap returns a factory producing Map values with the given initial
// bucket-size hint.
func NewMap[K comparable, V any](sizeHint int) func() Map[K, V] {
	return func() Map[K, V] {
		return Map[K, V]{m: make(map[K]V, sizeHint)}
	}
}

// M returns the underlying map for reading and writing.
func (m *Map[K, V]) M() map[K]V {
	return m.m
}

// Clear removes every entry, retaining the map's allocation.
func (m *Map[K, V]) Clear() {
	clear(m.m)
}

// Set is a pooled hash set. Clear removes every member, retaining
// allocation, for the same reason as Map.
type Set[K comparable] struct {
	m map[K]struct{}
}

// NewSet returns a factory producing Set values with the given initial
// bucket-size hint.
func NewSet[K comparable](sizeHint int) func() Set[K] {
	return func() Set[K] {
		return Set[K]{m: make(map[K]struct{}, sizeHint)}
	}
}

// Add inserts k into the set.
func (s *Set[K]) Add(k K) {
	s.m[k] = struct{}{}
}

// Contains reports whether k is in the set.
func (s *Set[K]) Contains(k K) bool {
	_, ok := s.m[k]
	return ok
}

// Len returns the number of members in the set.
func (s *Set[K]) Len() int {
	return len(s.m)
}

// Clear removes every member, retaining the set's allocation.
func (s *Set[K]) Clear() {
	clear(s.m)
}

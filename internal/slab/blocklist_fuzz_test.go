package slab

import "testing"

// FuzzBlockListGrowthAndAddressing drives a BlockList through an arbitrary
// interleaving of extensions and slot writes/reads, checking that every slot
// ever handed a value by WithSlot keeps reporting that same value no matter
// how many blocks have been appended since. This is the free-list/block-list
// index arithmetic the geometric growth scheme depends on: an indexing bug
// here would show up as a later block's offset math colliding with an
// earlier block's, silently corrupting live values.
func FuzzBlockListGrowthAndAddressing(f *testing.F) {
	f.Add([]byte{0, 1, 2, 3, 4, 5, 6, 7})
	f.Add([]byte{1, 1, 1, 1, 1, 1})
	f.Add([]byte{0, 0, 0, 0, 0, 0, 0, 0, 0, 0})
	f.Add([]byte{9, 200, 3, 77, 0, 255, 16, 2})

	f.Fuzz(func(t *testing.T, data []byte) {
		bl := NewBlockList[uint32](0, func() uint32 { return 0 })
		written := make(map[uint32]uint32)

		for i := 0; i+1 < len(data); i += 2 {
			op := data[i]
			arg := data[i+1]

			if op%2 == 0 || bl.Capacity() == 0 {
				amount := uint32(arg)
				if amount == 0 {
					amount = 1
				}
				bl.Extend(func(tailCapacity uint32) uint32 {
					return amount
				})
				continue
			}

			capacity := bl.Capacity()
			idx := uint32(arg) % capacity
			value := written[idx] + 1

			ok := bl.WithSlot(idx, func(s *Slot[uint32]) {
				*s.Value() = value
			})
			if !ok {
				t.Fatalf("WithSlot(%d) reported out of range at capacity %d", idx, capacity)
			}
			written[idx] = value

			for checkIdx, want := range written {
				var got uint32
				ok := bl.WithSlot(checkIdx, func(s *Slot[uint32]) {
					got = *s.Value()
				})
				if !ok {
					t.Fatalf("WithSlot(%d) became unreachable after growth to capacity %d", checkIdx, bl.Capacity())
				}
				if got != want {
					t.Fatalf("slot %d: want %d, got %d (capacity %d)", checkIdx, want, got, bl.Capacity())
				}
			}
		}
	})
}

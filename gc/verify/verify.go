package verify

import (
	"fmt"
	"slices"

	"github.com/joshuapare/gengc/gc"
	"github.com/joshuapare/gengc/gc/alloc"
	"github.com/joshuapare/gengc/gc/roots"
	"github.com/joshuapare/gengc/internal/format"
)

// ValidationError describes a violated invariant.
type ValidationError struct {
	Type    string
	Message string
	Offset  int
	Details map[string]any
}

func (e *ValidationError) Error() string {
	if e.Offset >= 0 {
		return fmt.Sprintf("%s at offset 0x%X: %s", e.Type, e.Offset, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// AllInvariants validates every invariant that holds between collections.
// Returns the first error encountered, or nil if all checks pass.
func AllInvariants(c *gc.Collector) error {
	if err := ChunkChain(c.OldGen()); err != nil {
		return err
	}
	if err := NurserySlots(c.Nursery()); err != nil {
		return err
	}
	if err := RootRegistry(c.Roots()); err != nil {
		return err
	}
	return RememberedSet(c)
}

// ChunkChain validates that old-generation chunks tile the arena exactly.
func ChunkChain(g *alloc.OldGen) error {
	data := g.Bytes()
	off := 0
	for off < len(data) {
		size, err := format.CheckChunk(data, off)
		if err != nil {
			return &ValidationError{
				Type:    "ChunkChain",
				Message: err.Error(),
				Offset:  off,
			}
		}
		if s := format.StateOf(data, off); s == format.Gray {
			return &ValidationError{
				Type:    "ChunkChain",
				Message: "gray chunk outside a major collection",
				Offset:  off,
				Details: map[string]any{"size": size},
			}
		}
		off += size
	}
	if off != len(data) {
		return &ValidationError{
			Type:    "ChunkChain",
			Message: fmt.Sprintf("chunks end at 0x%X, arena is 0x%X bytes", off, len(data)),
			Offset:  -1,
		}
	}
	return nil
}

// NurserySlots validates the headers of allocated nursery slots.
func NurserySlots(n *alloc.Nursery) error {
	if n.Used() > n.Capacity() {
		return &ValidationError{
			Type:    "NurserySlots",
			Message: fmt.Sprintf("%d slots used, capacity %d", n.Used(), n.Capacity()),
			Offset:  -1,
		}
	}
	for i := range n.Used() {
		ch := n.Chunk(i)
		if ch.Size < format.MinChunkSize || !format.IsAligned(ch.Size) || ch.Size > n.SlotSize() {
			return &ValidationError{
				Type:    "NurserySlots",
				Message: fmt.Sprintf("slot %d: bad chunk size %d (slot size %d)", i, ch.Size, n.SlotSize()),
				Offset:  ch.Off,
				Details: map[string]any{"slot": i, "size": ch.Size},
			}
		}
	}
	return nil
}

// RootRegistry validates registry bookkeeping: the live count, trailing
// slots, and that no two live ranges overlap.
func RootRegistry(r *roots.Registry) error {
	type bound struct {
		begin, end uintptr
		slot       int
	}
	var live []bound
	slots := r.Slots()
	for i, s := range slots {
		if s.Empty() {
			continue
		}
		b, e := s.Bounds()
		live = append(live, bound{b, e, i})
	}

	if len(live) != r.Len() {
		return &ValidationError{
			Type:    "RootRegistry",
			Message: fmt.Sprintf("%d live slots, count says %d", len(live), r.Len()),
			Offset:  -1,
		}
	}
	if n := len(slots); n > 0 && slots[n-1].Empty() {
		return &ValidationError{
			Type:    "RootRegistry",
			Message: "trailing empty slot",
			Offset:  n - 1,
		}
	}

	slices.SortFunc(live, func(a, b bound) int {
		switch {
		case a.begin < b.begin:
			return -1
		case a.begin > b.begin:
			return 1
		}
		return 0
	})
	for k := 1; k < len(live); k++ {
		if live[k].begin < live[k-1].end {
			return &ValidationError{
				Type:    "RootRegistry",
				Message: fmt.Sprintf("slots %d and %d overlap", live[k-1].slot, live[k].slot),
				Offset:  live[k].slot,
			}
		}
	}
	return nil
}

// RememberedSet validates that every old-generation word pointing into the
// nursery was recorded by the write barrier. Words written through Payload
// bypass the barrier and fail this check.
func RememberedSet(c *gc.Collector) error {
	remembered := c.Remembered()
	var verr error
	err := eachOldWord(c.OldGen(), func(off int, w gc.Word) bool {
		if c.Generation(w) != gc.GenNursery {
			return true
		}
		if _, found := slices.BinarySearch(remembered, off); !found {
			verr = &ValidationError{
				Type:    "RememberedSet",
				Message: fmt.Sprintf("nursery pointer %#x not remembered", uint64(w)),
				Offset:  off,
			}
			return false
		}
		return true
	})
	if err != nil {
		return &ValidationError{Type: "RememberedSet", Message: err.Error(), Offset: -1}
	}
	return verr
}

// NoNurseryPointers validates that no root and no allocated old-generation
// word points into the nursery. It holds right after a minor collection.
func NoNurseryPointers(c *gc.Collector) error {
	var verr error
	slot := 0
	c.Roots().Each(func(w *gc.Word) {
		if verr == nil && c.Generation(*w) == gc.GenNursery {
			verr = &ValidationError{
				Type:    "NoNurseryPointers",
				Message: fmt.Sprintf("root word %d holds nursery pointer %#x", slot, uint64(*w)),
				Offset:  -1,
			}
		}
		slot++
	})
	if verr != nil {
		return verr
	}

	err := eachOldWord(c.OldGen(), func(off int, w gc.Word) bool {
		if c.Generation(w) == gc.GenNursery {
			verr = &ValidationError{
				Type:    "NoNurseryPointers",
				Message: fmt.Sprintf("old-generation word holds nursery pointer %#x", uint64(w)),
				Offset:  off,
			}
			return false
		}
		return true
	})
	if err != nil {
		return &ValidationError{Type: "NoNurseryPointers", Message: err.Error(), Offset: -1}
	}
	return verr
}

// eachOldWord calls fn with the offset and value of every payload word of
// every allocated old-generation chunk until fn returns false.
func eachOldWord(g *alloc.OldGen, fn func(off int, w gc.Word) bool) error {
	return g.Walk(func(ch alloc.Chunk) bool {
		if ch.State == format.Free {
			return true
		}
		for k := range ch.Words() {
			off := ch.WordOff(k)
			if !fn(off, g.Word(off)) {
				return false
			}
		}
		return true
	})
}

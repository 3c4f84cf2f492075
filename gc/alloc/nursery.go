package alloc

import (
	"fmt"

	"github.com/joshuapare/gengc/internal/format"
)

// Nursery is the minor heap: a bump allocator over fixed-size slots.
//
// Key characteristics:
//   - O(1) allocation: write a header at the next slot, advance the counter
//   - No free list: slots are reclaimed only by Reset after a minor collection
//   - Slot lookup by address arithmetic: (addr - base) / SlotSize
type Nursery struct {
	data     []byte
	span     format.Span
	slotSize int
	slots    int

	// next is the bump counter: the index of the next free slot. Slots
	// [0, next) are allocated.
	next int

	allocs int
}

// NewNursery builds a nursery over data, addressed from base. slotSize is
// the header-inclusive maximum object size.
func NewNursery(data []byte, base format.Word, slotSize int) (*Nursery, error) {
	if slotSize < format.HeaderSize+format.WordSize || !format.IsAligned(slotSize) {
		return nil, fmt.Errorf("nursery slot size %d: %w", slotSize, ErrBadArena)
	}
	if len(data) < slotSize {
		return nil, fmt.Errorf("nursery size %d smaller than slot size %d: %w", len(data), slotSize, ErrBadArena)
	}
	if base == format.Nil || !format.IsAligned(int(base)) {
		return nil, fmt.Errorf("nursery base %#x: %w", uint64(base), ErrBadArena)
	}
	return &Nursery{
		data:     data,
		span:     format.Span{Base: base, Len: len(data) / slotSize * slotSize},
		slotSize: slotSize,
		slots:    len(data) / slotSize,
	}, nil
}

// Alloc reserves the next slot for a payload of size bytes and returns the
// payload address. It never collects: a full nursery reports ErrNurseryFull.
func (n *Nursery) Alloc(size int) (format.Word, error) {
	if size <= 0 {
		return format.Nil, ErrZeroSize
	}
	if size > n.slotSize-format.HeaderSize {
		return format.Nil, ErrTooLarge
	}
	need := format.ChunkSize(size)
	if need > n.slotSize {
		return format.Nil, ErrTooLarge
	}
	if n.next >= n.slots {
		return format.Nil, ErrNurseryFull
	}

	off := n.next * n.slotSize
	n.next++
	n.allocs++

	format.PutHeader(n.data, off, format.MakeHeader(need, format.Free))
	clear(n.data[off+format.HeaderSize : off+need])

	return n.span.Addr(off + format.HeaderSize), nil
}

// Reset abandons every slot. Called once survivors have been promoted.
func (n *Nursery) Reset() {
	n.next = 0
}

// Span returns the address span of the nursery.
func (n *Nursery) Span() format.Span { return n.span }

// SlotSize returns the slot size.
func (n *Nursery) SlotSize() int { return n.slotSize }

// Capacity returns the number of slots.
func (n *Nursery) Capacity() int { return n.slots }

// Used returns the number of allocated slots.
func (n *Nursery) Used() int { return n.next }

// Allocs returns the number of successful allocations since creation.
func (n *Nursery) Allocs() int { return n.allocs }

// Bytes exposes the arena.
func (n *Nursery) Bytes() []byte { return n.data }

// SlotOf returns the index of the allocated slot containing w. ok is false
// when w is not a candidate nursery pointer or the slot is not allocated.
func (n *Nursery) SlotOf(w format.Word) (int, bool) {
	if !n.span.Points(w) {
		return 0, false
	}
	i := n.span.Offset(w) / n.slotSize
	if i >= n.next {
		return 0, false
	}
	return i, true
}

// SlotOff returns the arena offset of slot i.
func (n *Nursery) SlotOff(i int) int { return i * n.slotSize }

// Chunk describes slot i. Only the mark bit of the state is meaningful.
func (n *Nursery) Chunk(i int) Chunk {
	off := n.SlotOff(i)
	h := format.ReadHeader(n.data, off)
	return Chunk{Off: off, Size: h.Size(), State: h.State()}
}

// Mark sets the mark bit of slot i and reports whether it was clear.
func (n *Nursery) Mark(i int) bool {
	off := n.SlotOff(i)
	if format.Marked(n.data, off) {
		return false
	}
	format.Mark(n.data, off)
	return true
}

// Marked reports whether slot i is marked.
func (n *Nursery) Marked(i int) bool { return format.Marked(n.data, n.SlotOff(i)) }

// Unmark clears the mark bit of slot i.
func (n *Nursery) Unmark(i int) { format.Unmark(n.data, n.SlotOff(i)) }

// Word reads the word at arena offset off.
func (n *Nursery) Word(off int) format.Word { return format.ReadWord(n.data, off) }

// SetWord writes the word at arena offset off.
func (n *Nursery) SetWord(off int, w format.Word) { format.PutWord(n.data, off, w) }

// Locate resolves an address inside the payload of an allocated slot to
// its chunk.
func (n *Nursery) Locate(w format.Word) (Chunk, bool) {
	if !n.span.Contains(w) {
		return Chunk{}, false
	}
	off := n.span.Offset(w)
	i := off / n.slotSize
	if i >= n.next {
		return Chunk{}, false
	}
	c := n.Chunk(i)
	if off < c.PayloadOff() || off >= c.End() {
		return Chunk{}, false
	}
	return c, true
}

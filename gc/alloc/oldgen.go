package alloc

import (
	"fmt"

	"github.com/joshuapare/gengc/internal/format"
)

// OldGen is the major heap: a fixed-capacity arena of variable-size chunks
// walked through their headers.
type OldGen struct {
	data []byte
	span format.Span

	stats OldGenStats
}

// OldGenStats holds allocator counters.
type OldGenStats struct {
	AllocCalls     int   // Successful allocations
	AllocFailures  int   // Requests that found no free chunk
	SplitCount     int   // Allocations that split a free chunk
	BytesAllocated int64 // Total bytes handed out (including headers)
	ScanSteps      int64 // Chunks visited by first-fit scans
}

// NewOldGen builds an old generation over data, addressed from base. The
// arena starts as a single free chunk.
func NewOldGen(data []byte, base format.Word) (*OldGen, error) {
	if len(data) < format.MinChunkSize || !format.IsAligned(len(data)) {
		return nil, fmt.Errorf("old generation size %d: %w", len(data), ErrBadArena)
	}
	if base == format.Nil || !format.IsAligned(int(base)) {
		return nil, fmt.Errorf("old generation base %#x: %w", uint64(base), ErrBadArena)
	}
	g := &OldGen{
		data: data,
		span: format.Span{Base: base, Len: len(data)},
	}
	format.PutHeader(g.data, 0, format.MakeHeader(len(data), format.Free))
	return g, nil
}

// Alloc allocates a chunk for a payload of size bytes and returns the
// payload address.
func (g *OldGen) Alloc(size int) (format.Word, error) {
	if size <= 0 {
		return format.Nil, ErrZeroSize
	}
	if size > len(g.data)-format.HeaderSize {
		g.stats.AllocFailures++
		return format.Nil, ErrNoSpace
	}
	off, err := g.AllocChunk(format.ChunkSize(size))
	if err != nil {
		return format.Nil, err
	}
	return g.span.Addr(off + format.HeaderSize), nil
}

// AllocChunk finds the first free chunk of at least need bytes (header
// included, aligned), splits it and returns the offset of the new White
// chunk. The payload is zeroed.
func (g *OldGen) AllocChunk(need int) (int, error) {
	if need < format.MinChunkSize || !format.IsAligned(need) {
		return 0, fmt.Errorf("chunk size %d: %w", need, ErrBadArena)
	}
	for off := 0; off < len(g.data); {
		size, err := format.CheckChunk(g.data, off)
		if err != nil {
			return 0, err
		}
		g.stats.ScanSteps++
		if format.StateOf(g.data, off) == format.Free && size >= need {
			g.split(off, size, need)
			clear(g.data[off+format.HeaderSize : off+need])
			g.stats.AllocCalls++
			g.stats.BytesAllocated += int64(need)
			return off, nil
		}
		off += size
	}
	g.stats.AllocFailures++
	return 0, ErrNoSpace
}

// split carves need bytes off the front of the free chunk at off. The
// remainder, when non-empty, becomes a new free chunk.
func (g *OldGen) split(off, size, need int) {
	rem := size - need
	if rem < format.MinChunkSize {
		format.PutHeader(g.data, off, format.MakeHeader(size, format.White))
		return
	}
	format.PutHeader(g.data, off, format.MakeHeader(need, format.White))
	format.PutHeader(g.data, off+need, format.MakeHeader(rem, format.Free))
	g.stats.SplitCount++
}

// Release marks the chunk at off free without coalescing.
func (g *OldGen) Release(off int) {
	format.SetState(g.data, off, format.Free)
}

// Walk calls fn for every chunk in arena order until fn returns false. A
// malformed header stops the walk with an error.
func (g *OldGen) Walk(fn func(c Chunk) bool) error {
	for off := 0; off < len(g.data); {
		size, err := format.CheckChunk(g.data, off)
		if err != nil {
			return err
		}
		if !fn(Chunk{Off: off, Size: size, State: format.StateOf(g.data, off)}) {
			return nil
		}
		off += size
	}
	return nil
}

// Find returns the chunk containing off by a linear walk from the arena
// start.
func (g *OldGen) Find(off int) (Chunk, bool) {
	var found Chunk
	ok := false
	_ = g.Walk(func(c Chunk) bool {
		if c.Contains(off) {
			found, ok = c, true
			return false
		}
		return c.Off <= off
	})
	return found, ok
}

// Locate resolves an address inside the payload of an allocated chunk.
func (g *OldGen) Locate(w format.Word) (Chunk, bool) {
	if !g.span.Contains(w) {
		return Chunk{}, false
	}
	off := g.span.Offset(w)
	c, ok := g.Find(off)
	if !ok || c.State == format.Free || off < c.PayloadOff() {
		return Chunk{}, false
	}
	return c, true
}

// State returns the color of the chunk at off.
func (g *OldGen) State(off int) format.State { return format.StateOf(g.data, off) }

// SetState recolors the chunk at off.
func (g *OldGen) SetState(off int, s format.State) { format.SetState(g.data, off, s) }

// Word reads the word at arena offset off.
func (g *OldGen) Word(off int) format.Word { return format.ReadWord(g.data, off) }

// SetWord writes the word at arena offset off.
func (g *OldGen) SetWord(off int, w format.Word) { format.PutWord(g.data, off, w) }

// Span returns the address span of the old generation.
func (g *OldGen) Span() format.Span { return g.span }

// Bytes exposes the arena.
func (g *OldGen) Bytes() []byte { return g.data }

// Stats returns allocator counters.
func (g *OldGen) Stats() OldGenStats { return g.stats }

// Usage sums chunk sizes by state. largestFree is the biggest single free
// chunk, the largest request Alloc can satisfy.
func (g *OldGen) Usage() (used, free, largestFree int, err error) {
	err = g.Walk(func(c Chunk) bool {
		if c.State == format.Free {
			free += c.Size
			largestFree = max(largestFree, c.Size)
		} else {
			used += c.Size
		}
		return true
	})
	return used, free, largestFree, err
}

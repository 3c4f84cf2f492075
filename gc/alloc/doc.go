// Package alloc provides the two arenas managed by the collector: the
// nursery, a bump allocator over fixed-size slots, and the old generation, a
// first-fit allocator over variable-size chunks.
//
// # Addressing
//
// Each arena occupies a virtual address span (format.Span). Allocation
// returns the address of the chunk payload, eight bytes past the header.
// Traversal always works on arena offsets; addresses only appear at the API
// boundary and inside payload words.
//
// # Nursery
//
// The nursery is divided into SlotSize-byte slots. Alloc writes a header at
// the next free slot and advances a counter; there is no free list. When the
// counter reaches capacity Alloc fails with ErrNurseryFull and the caller is
// expected to run a minor collection, which promotes survivors and calls
// Reset. Requests whose chunk exceeds SlotSize fail with ErrTooLarge.
//
// # Old Generation
//
// The old generation is an implicit linked sequence of chunks: the header of
// each chunk gives its size, and the next chunk starts at off+size. Free
// chunks are found by a linear first-fit scan and split on allocation:
//
//	before:  [ free 256                      ]
//	Alloc(40):
//	after:   [ white 48 ][ free 208          ]
//
// Adjacent free chunks are never coalesced, so repeated alloc/free cycles
// fragment the arena.
//
// # Thread Safety
//
// Nursery and OldGen instances are not thread-safe.
package alloc

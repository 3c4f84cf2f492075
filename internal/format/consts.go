// Package format holds the chunk encoding shared by both heaps: the header
// word that prefixes every chunk, the chunk states, alignment rules and the
// tag test that decides whether a word may be a pointer into managed memory.
//
// Chunk layout (little-endian):
//
//	Offset  Size  Description
//	0x00    8     Header: size | state. size includes the header and is a
//	              multiple of 8, so the low 2 bits hold the state.
//	0x08    ...   Payload, scanned as a sequence of 8-byte words.
package format

const (
	// WordSize is the width of a payload word and of a pointer.
	WordSize = 8

	// HeaderSize is the width of the chunk header.
	HeaderSize = 8

	// Alignment is the granularity of every chunk size and chunk offset.
	Alignment = 8

	// AlignmentMask is Alignment-1.
	AlignmentMask = Alignment - 1

	// MinChunkSize is the smallest legal chunk: a header with no payload.
	MinChunkSize = HeaderSize

	// stateMask selects the state bits of a header.
	stateMask = 0x3

	// markBit is the nursery mark flag.
	markBit = 0x1

	// tagBit is set on every non-pointer scalar stored inline.
	tagBit = 0x1
)

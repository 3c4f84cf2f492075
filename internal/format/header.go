package format

import "fmt"

// Word is a machine word stored in a root range or a chunk payload. Words
// with the low bit clear that fall inside a managed arena are treated as
// pointers; everything else is an opaque scalar.
type Word uint64

// Nil is the zero pointer.
const Nil Word = 0

// IsTagged reports whether w carries the scalar tag (odd value).
func (w Word) IsTagged() bool {
	return w&tagBit != 0
}

// State is the 2-bit state field of a chunk header.
//
// Old-generation chunks use the four colors. Nursery chunks only use bit 0
// as a mark flag; a marked nursery header therefore reads as White, which is
// the color a promoted chunk starts with.
type State uint8

const (
	Free  State = 0 // unallocated
	White State = 1 // allocated, not yet proven reachable this cycle
	Black State = 2 // reachable, children scanned
	Gray  State = 3 // reachable, children pending
)

func (s State) String() string {
	switch s {
	case Free:
		return "free"
	case White:
		return "white"
	case Black:
		return "black"
	case Gray:
		return "gray"
	}
	return fmt.Sprintf("state(%d)", uint8(s))
}

// Header is the decoded form of a chunk header word.
type Header uint64

// MakeHeader packs size and state. size must be aligned.
func MakeHeader(size int, s State) Header {
	return Header(uint64(size)&^stateMask | uint64(s)&stateMask)
}

// Size returns the chunk size including the header.
func (h Header) Size() int {
	return int(uint64(h) &^ stateMask)
}

// State returns the state bits.
func (h Header) State() State {
	return State(uint64(h) & stateMask)
}

// Marked reports whether the nursery mark bit is set.
func (h Header) Marked() bool {
	return uint64(h)&markBit != 0
}

// ReadHeader decodes the header of the chunk at off.
func ReadHeader(b []byte, off int) Header {
	return Header(ReadU64(b, off))
}

// PutHeader encodes h at off.
func PutHeader(b []byte, off int, h Header) {
	PutU64(b, off, uint64(h))
}

// SizeOf returns the size of the chunk at off, state bits masked off.
func SizeOf(b []byte, off int) int {
	return ReadHeader(b, off).Size()
}

// StateOf returns the state of the chunk at off.
func StateOf(b []byte, off int) State {
	return ReadHeader(b, off).State()
}

// SetState rewrites the state of the chunk at off, preserving its size.
func SetState(b []byte, off int, s State) {
	PutHeader(b, off, MakeHeader(SizeOf(b, off), s))
}

// Mark sets the nursery mark bit of the chunk at off.
func Mark(b []byte, off int) {
	PutU64(b, off, ReadU64(b, off)|markBit)
}

// Unmark clears the nursery mark bit of the chunk at off.
func Unmark(b []byte, off int) {
	PutU64(b, off, ReadU64(b, off)&^markBit)
}

// Marked reports whether the chunk at off carries the nursery mark bit.
func Marked(b []byte, off int) bool {
	return ReadHeader(b, off).Marked()
}

// CheckChunk validates the header at off against the bounds of b and
// returns the chunk size.
func CheckChunk(b []byte, off int) (int, error) {
	if off < 0 || off+HeaderSize > len(b) {
		return 0, fmt.Errorf("chunk at %#x: %w", off, ErrTruncated)
	}
	size := SizeOf(b, off)
	if size < MinChunkSize || !IsAligned(size) {
		return 0, fmt.Errorf("chunk at %#x: size %d: %w", off, size, ErrBadSize)
	}
	if off+size > len(b) {
		return 0, fmt.Errorf("chunk at %#x: size %d: %w", off, size, ErrTruncated)
	}
	return size, nil
}

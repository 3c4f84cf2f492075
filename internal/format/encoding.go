package format

import "encoding/binary"

// PutU64 writes a uint64 value to the buffer at the specified offset in little-endian format.
func PutU64(b []byte, off int, v uint64) {
	binary.LittleEndian.PutUint64(b[off:off+8], v)
}

// ReadU64 reads a uint64 value from the buffer at the specified offset in little-endian format.
func ReadU64(b []byte, off int) uint64 {
	return binary.LittleEndian.Uint64(b[off : off+8])
}

// PutWord writes w at off.
func PutWord(b []byte, off int, w Word) {
	PutU64(b, off, uint64(w))
}

// ReadWord reads the word at off.
func ReadWord(b []byte, off int) Word {
	return Word(ReadU64(b, off))
}

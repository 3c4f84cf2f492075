package roots

import (
	"unsafe"

	"github.com/joshuapare/gengc/internal/format"
)

// bounds returns the host address interval covered by words. Addresses are
// only compared, never dereferenced; the slice itself is what gets scanned.
func bounds(words []format.Word) (begin, end uintptr) {
	begin = uintptr(unsafe.Pointer(unsafe.SliceData(words)))
	return begin, begin + uintptr(len(words))*format.WordSize
}

// Single returns a one-word range aliasing *p.
func Single(p *format.Word) []format.Word {
	return unsafe.Slice(p, 1)
}

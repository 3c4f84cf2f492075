package mmarena

// Heap allocates n zeroed bytes on the Go heap. It is used when the caller
// asks for heap backing explicitly.
func Heap(n int) ([]byte, func() error, error) {
	return make([]byte, n), func() error { return nil }, nil
}

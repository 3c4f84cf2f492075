//go:build !unix

// Package mmarena provides platform-specific backing storage for collector
// arenas.
package mmarena

import "fmt"

// Map allocates n zeroed bytes on the Go heap when anonymous mappings are not
// available.
func Map(n int) ([]byte, func() error, error) {
	if n < 0 {
		return nil, nil, fmt.Errorf("mmarena: negative size %d", n)
	}
	return make([]byte, n), func() error { return nil }, nil
}

// Mapped reports whether Map returns OS mappings on this platform.
func Mapped() bool { return false }

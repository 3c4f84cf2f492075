//go:build unix

// Package mmarena provides platform-specific backing storage for collector
// arenas. On unix the arena is an anonymous private mapping, which keeps
// managed memory off the Go heap and zero-filled by the OS.
package mmarena

import (
	"errors"
	"fmt"

	"golang.org/x/sys/unix"
)

// Map returns n zeroed bytes of anonymous memory and a release function.
func Map(n int) ([]byte, func() error, error) {
	if n < 0 {
		return nil, nil, fmt.Errorf("mmarena: negative size %d", n)
	}
	if n == 0 {
		return []byte{}, func() error { return nil }, nil
	}
	data, err := unix.Mmap(-1, 0, n, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, nil, fmt.Errorf("mmarena: mmap %d bytes: %w", n, err)
	}
	released := false
	release := func() error {
		if released {
			return nil
		}
		released = true
		err := unix.Munmap(data)
		if errors.Is(err, unix.EINVAL) {
			// Treat double-unmap as no-op for callers.
			return nil
		}
		return err
	}
	return data, release, nil
}

// Mapped reports whether Map returns OS mappings on this platform.
func Mapped() bool { return true }

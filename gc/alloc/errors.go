package alloc

import "errors"

var (
	// ErrZeroSize indicates a zero-size request.
	ErrZeroSize = errors.New("alloc: zero-size request")

	// ErrTooLarge indicates the request does not fit in a nursery slot.
	ErrTooLarge = errors.New("alloc: request exceeds nursery object size")

	// ErrNurseryFull indicates every nursery slot is in use.
	ErrNurseryFull = errors.New("alloc: nursery full")

	// ErrNoSpace indicates that no free chunk large enough was found.
	ErrNoSpace = errors.New("alloc: no free chunk large enough")

	// ErrBadArena indicates an arena size or base that cannot be used.
	ErrBadArena = errors.New("alloc: bad arena geometry")
)

package roots

import "errors"

var (
	// ErrTableFull indicates every slot in the registry is occupied.
	ErrTableFull = errors.New("roots: root table full")

	// ErrOverlap indicates a range partially overlaps a registered range.
	ErrOverlap = errors.New("roots: range partially overlaps a registered range")
)

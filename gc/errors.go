package gc

import "github.com/brickingsoft/errors"

var (
	// ErrZeroSize indicates a zero-size allocation request.
	ErrZeroSize = errors.Define("gc: zero-size allocation")

	// ErrOldGenExhausted indicates the old generation has no free chunk
	// large enough for a request or for the survivors of a minor collection.
	ErrOldGenExhausted = errors.Define("gc: old generation exhausted")

	// ErrRootTableFull indicates every root registry slot is in use.
	ErrRootTableFull = errors.Define("gc: root table full")

	// ErrRangeOverlap indicates a root range partially overlaps a registered range.
	ErrRangeOverlap = errors.Define("gc: root range overlaps a registered range")

	// ErrBadPointer indicates an address outside the payload of any
	// allocated chunk.
	ErrBadPointer = errors.Define("gc: not a pointer into an allocated chunk")

	// ErrCorrupt indicates a malformed chunk header.
	ErrCorrupt = errors.Define("gc: heap corrupt")

	// ErrBadOptions indicates invalid collector options.
	ErrBadOptions = errors.Define("gc: invalid options")

	// ErrClosed indicates use of a closed collector.
	ErrClosed = errors.Define("gc: collector closed")
)

const (
	errMetaPkgKey = "pkg"
	errMetaPkgVal = "gc"
)

const (
	errMetaOpKey     = "op"
	errMetaOpNew     = "new"
	errMetaOpAlloc   = "alloc"
	errMetaOpAddRoot = "add_root"
	errMetaOpMinor   = "minor"
	errMetaOpMajor   = "major"
	errMetaOpAccess  = "access"
)

// opError tags sentinel with the failing operation and wraps cause.
func opError(op string, sentinel error, cause error) error {
	if cause == nil {
		return errors.From(
			sentinel,
			errors.WithMeta(errMetaPkgKey, errMetaPkgVal),
			errors.WithMeta(errMetaOpKey, op),
		)
	}
	return errors.From(
		sentinel,
		errors.WithMeta(errMetaPkgKey, errMetaPkgVal),
		errors.WithMeta(errMetaOpKey, op),
		errors.WithWrap(cause),
	)
}

// IsOldGenExhausted reports whether err is an old-generation capacity failure.
func IsOldGenExhausted(err error) bool {
	return errors.Is(err, ErrOldGenExhausted)
}

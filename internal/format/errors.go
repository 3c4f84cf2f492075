package format

import "errors"

var (
	// ErrTruncated indicates a chunk header points past the end of its arena.
	ErrTruncated = errors.New("format: truncated chunk")
	// ErrBadSize indicates a chunk header carries an impossible size.
	ErrBadSize = errors.New("format: bad chunk size")
)

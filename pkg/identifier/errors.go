package identifier

import "errors"

// Construction errors. Both are programmer errors per the spec: malformed
// identifiers are rejected at build time, never at use.
var (
	// ErrEmptyIdentifier is returned by New when given zero positions.
	ErrEmptyIdentifier = errors.New("identifier: empty path")

	// ErrIndexOutOfRange is returned by New when a position's Index does
	// not fit in the width of its depth.
	ErrIndexOutOfRange = errors.New("identifier: index out of range for depth")
)

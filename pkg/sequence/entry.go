package sequence

import "github.com/lseqkit/lseq/pkg/identifier"

// Entry is a single stored element: its identifier (the primary key used
// for ordering and lookup), the dot that created it, and its payload.
type Entry[T any] struct {
	ID      identifier.Identifier
	Dot     Dot
	Payload T
}

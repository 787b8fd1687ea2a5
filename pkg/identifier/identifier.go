package identifier

import "fmt"

// Identifier is an immutable, non-empty path of positions from the root of
// the exponential tree to a leaf. Position k of the path lives at depth k
// in this package's zero-based numbering (the root itself is never
// addressed).
//
// The zero value is not a valid Identifier; use New, Begin, or End.
type Identifier struct {
	path []Position
}

// New builds an Identifier from a path of positions, depth 0 first.
// Rejects an empty path and any position whose Index is out of range for
// its depth.
func New(path []Position) (Identifier, error) {
	if len(path) == 0 {
		return Identifier{}, ErrEmptyIdentifier
	}

	for depth, pos := range path {
		if pos.Index >= Width(depth) {
			return Identifier{}, fmt.Errorf("%w: depth %d index %d width %d",
				ErrIndexOutOfRange, depth, pos.Index, Width(depth))
		}
	}

	cp := make([]Position, len(path))
	copy(cp, path)

	return Identifier{path: cp}, nil
}

// Begin returns the lower sentinel: a single position at depth 0 with the
// minimum index (0) and the reserved site. No real identifier equals it.
func Begin() Identifier {
	return Identifier{path: []Position{{Index: 0, Site: ReservedSite}}}
}

// End returns the upper sentinel: a single position at depth 0 with the
// maximum index (Width(0)-1) and the reserved site. No real identifier
// equals it.
func End() Identifier {
	return Identifier{path: []Position{{Index: Width(0) - 1, Site: ReservedSite}}}
}

// Depth reports the number of positions in the path.
func (id Identifier) Depth() int {
	return len(id.path)
}

// At returns the position at the given depth and whether the identifier
// has a position that deep.
func (id Identifier) At(depth int) (Position, bool) {
	if depth < 0 || depth >= len(id.path) {
		return Position{}, false
	}

	return id.path[depth], true
}

// Path returns a copy of the underlying positions, depth 0 first.
func (id Identifier) Path() []Position {
	cp := make([]Position, len(id.path))
	copy(cp, id.path)

	return cp
}

// Compare orders two identifiers lexicographically by position. A strict
// prefix of another identifier is less than it. Returns -1, 0, or 1.
func (id Identifier) Compare(other Identifier) int {
	n := min(len(id.path), len(other.path))

	for i := range n {
		if c := id.path[i].Compare(other.path[i]); c != 0 {
			return c
		}
	}

	switch {
	case len(id.path) < len(other.path):
		return -1
	case len(id.path) > len(other.path):
		return 1
	default:
		return 0
	}
}

// Less reports whether id sorts strictly before other.
func (id Identifier) Less(other Identifier) bool {
	return id.Compare(other) < 0
}

// Equal reports whether id and other denote the same path.
func (id Identifier) Equal(other Identifier) bool {
	return id.Compare(other) == 0
}

// String renders the identifier as a dotted list of index@site pairs, for
// diagnostics only; it is not a wire format.
func (id Identifier) String() string {
	s := ""

	for i, pos := range id.path {
		if i > 0 {
			s += "."
		}

		s += fmt.Sprintf("%d@%d", pos.Index, pos.Site)
	}

	return s
}

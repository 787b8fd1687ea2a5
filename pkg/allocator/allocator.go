package allocator

import (
	"errors"
	"fmt"

	"github.com/lseqkit/lseq/pkg/identifier"
)

// Boundary bounds how far from the chosen edge of a gap a new index may
// land. A small boundary keeps identifiers dense near the edge that was
// picked for a depth instead of spreading uniformly across the whole gap,
// which is what keeps average identifier depth logarithmic under
// one-sided editing (see package doc).
const Boundary = 10

// ErrReservedSite is returned by New when asked to allocate on behalf of
// the reserved site id (0), which is embedded in the BEGIN/END sentinels
// and must never be used by a real site.
var ErrReservedSite = errors.New("allocator: site 0 is reserved for sentinels")

// Allocator is a per-site, stateful identifier generator. It is not safe
// for concurrent use; callers that share one across goroutines must
// serialize access externally, matching the single-owner replica model.
type Allocator struct {
	site       uint32
	rand       Source
	strategies strategyTable
}

// New creates an Allocator for the given site, using src for all
// randomness decisions (edge strategy sampling and step selection).
func New(site uint32, src Source) (*Allocator, error) {
	if site == identifier.ReservedSite {
		return nil, ErrReservedSite
	}

	if src == nil {
		src = DefaultSource()
	}

	return &Allocator{site: site, rand: src}, nil
}

// Alloc returns a fresh identifier r such that p < r < q. p and q may be
// the Begin/End sentinels. The result embeds this allocator's site so
// that identifiers from distinct sites never collide even when both pick
// the same numeric index at the same depth. No record of earlier results
// is kept: two calls with the same p and q can return the same identifier.
func (a *Allocator) Alloc(p, q identifier.Identifier) (identifier.Identifier, error) {
	if !p.Less(q) {
		return identifier.Identifier{}, fmt.Errorf("%w: p=%s q=%s", ErrInvalidBounds, p, q)
	}

	prefix := make([]identifier.Position, 0, 4)

	// bounded reports whether prefix still equals q's path; once it sorts
	// below q, q no longer bounds the deeper depths.
	bounded := true

	for depth := 0; ; depth++ {
		lo := lowerIndexAt(p, depth)

		hi := identifier.Width(depth) - 1
		if bounded {
			hi = upperIndexAt(q, depth)
		}

		if hi > lo+1 {
			strategy := a.strategyFor(depth)

			gap := hi - lo - 1

			maxStep := uint64(Boundary)
			if gap < maxStep {
				maxStep = gap
			}

			step := uint64(a.rand.Intn(int(maxStep))) + 1

			var newIndex uint64
			if strategy == StrategyPlus {
				newIndex = lo + step
			} else {
				newIndex = hi - step
			}

			prefix = append(prefix, identifier.Position{Index: newIndex, Site: a.site})

			return identifier.New(prefix)
		}

		pos, ok := p.At(depth)
		if !ok {
			pos = identifier.Position{Index: 0, Site: identifier.ReservedSite}
		}

		if qPos, ok := q.At(depth); !ok || qPos != pos {
			bounded = false
		}

		prefix = append(prefix, pos)
	}
}

// strategyFor returns the sticky strategy for depth, sampling and storing
// one uniformly at random the first time this depth is used.
func (a *Allocator) strategyFor(depth int) Strategy {
	if s, ok := a.strategies.get(depth); ok {
		return s
	}

	s := Strategy(a.rand.Intn(2))
	a.strategies.setAt(depth, s)

	return s
}

// lowerIndexAt returns id's index at depth, or 0 if id has no position
// that deep (id is a strict prefix ending above this depth).
func lowerIndexAt(id identifier.Identifier, depth int) uint64 {
	if pos, ok := id.At(depth); ok {
		return pos.Index
	}

	return 0
}

// upperIndexAt returns id's index at depth, or Width(depth)-1 if id has no
// position that deep — the reserved last slot, which serves as the open
// upper bound the same way End's index does at depth 0.
func upperIndexAt(id identifier.Identifier, depth int) uint64 {
	if pos, ok := id.At(depth); ok {
		return pos.Index
	}

	return identifier.Width(depth) - 1
}

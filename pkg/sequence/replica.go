package sequence

import (
	"errors"
	"fmt"
	"sort"

	"github.com/lseqkit/lseq/pkg/allocator"
	"github.com/lseqkit/lseq/pkg/identifier"
)

// Seq is the iterator type returned by All; it matches the shape of
// iter.Seq[T] so callers can use slices.Collect(iter.Seq[T](seq)) without
// this package depending on the iter package directly.
type Seq[T any] func(yield func(T) bool)

// Replica is the ordered, per-site container of (identifier, dot,
// payload) entries. It is single-owner and not safe for concurrent use;
// an embedder sharing one across goroutines must serialize access
// externally.
type Replica[T any] struct {
	site    uint32
	entries []Entry[T]
	alloc   *allocator.Allocator
	counter uint64
}

// NewReplica creates an empty replica for the given site, using src for
// the allocator's randomness. A nil src uses allocator.DefaultSource.
func NewReplica[T any](site uint32, src allocator.Source) (*Replica[T], error) {
	a, err := allocator.New(site, src)
	if err != nil {
		if errors.Is(err, allocator.ErrReservedSite) {
			return nil, ErrReservedSite
		}

		return nil, err
	}

	return &Replica[T]{site: site, alloc: a}, nil
}

// Site returns this replica's site id.
func (r *Replica[T]) Site() uint32 {
	return r.site
}

// Len reports the number of live entries.
func (r *Replica[T]) Len() int {
	return len(r.entries)
}

// At returns the entry at index i and whether i was in range.
func (r *Replica[T]) At(i int) (Entry[T], bool) {
	if i < 0 || i >= len(r.entries) {
		return Entry[T]{}, false
	}

	return r.entries[i], true
}

// Entries returns a copy of the live entries in order, for diagnostics.
func (r *Replica[T]) Entries() []Entry[T] {
	cp := make([]Entry[T], len(r.entries))
	copy(cp, r.entries)

	return cp
}

// All iterates live payloads in order.
func (r *Replica[T]) All() Seq[T] {
	return func(yield func(T) bool) {
		for _, e := range r.entries {
			if !yield(e.Payload) {
				return
			}
		}
	}
}

// InsertAt performs a local insertion of payload at index i, clamping i
// into [0, Len()] (an i past the end appends). It mints a fresh
// identifier strictly between the neighbours at i-1 and i (BEGIN/END at
// the edges), applies the resulting Insert locally, and returns it for
// broadcast to other replicas.
func (r *Replica[T]) InsertAt(i int, payload T) (Op[T], error) {
	if i < 0 {
		i = 0
	}

	if i > len(r.entries) {
		i = len(r.entries)
	}

	left := identifier.Begin()
	if i > 0 {
		left = r.entries[i-1].ID
	}

	right := identifier.End()
	if i < len(r.entries) {
		right = r.entries[i].ID
	}

	id, err := r.alloc.Alloc(left, right)
	if err != nil {
		return Op[T]{}, fmt.Errorf("sequence: insert_at(%d): %w", i, err)
	}

	op := Op[T]{
		Kind:    KindInsert,
		ID:      id,
		Dot:     Dot{Site: r.site, Counter: r.counter},
		Payload: payload,
	}

	r.counter++
	r.applyInsert(op)

	return op, nil
}

// DeleteAt performs a local deletion of the entry at index i. If i is out
// of range, it reports false and produces no operation — a caller must
// not synthesize a delete it did not request (see spec section 7).
func (r *Replica[T]) DeleteAt(i int) (Op[T], bool) {
	if i < 0 || i >= len(r.entries) {
		return Op[T]{}, false
	}

	entry := r.entries[i]

	op := Op[T]{
		Kind:      KindDelete,
		ID:        entry.ID,
		Dot:       Dot{Site: r.site, Counter: r.counter},
		RemoteDot: entry.Dot,
	}

	r.counter++
	r.applyDelete(op)

	return op, true
}

// Apply applies a (possibly remote) operation. Insert is a no-op if the
// identifier is already present; Delete is a no-op if it is absent. Both
// are unconditionally safe: applying the same operation twice, or
// deleting an identifier never inserted, never errors. It reports
// whether the entry set actually changed.
func (r *Replica[T]) Apply(op Op[T]) bool {
	switch op.Kind {
	case KindInsert:
		return r.applyInsert(op)
	case KindDelete:
		return r.applyDelete(op)
	default:
		return false
	}
}

func (r *Replica[T]) applyInsert(op Op[T]) bool {
	idx, found := r.search(op.ID)
	if found {
		return false
	}

	r.entries = append(r.entries, Entry[T]{})
	copy(r.entries[idx+1:], r.entries[idx:])
	r.entries[idx] = Entry[T]{ID: op.ID, Dot: op.Dot, Payload: op.Payload}

	return true
}

func (r *Replica[T]) applyDelete(op Op[T]) bool {
	idx, found := r.search(op.ID)
	if !found {
		return false
	}

	r.entries = append(r.entries[:idx], r.entries[idx+1:]...)

	return true
}

// ResyncCounter scans the current entries and advances the local dot
// counter past the highest counter found on a live entry created by this
// replica's own site. Call this after restoring a replica from a persisted
// snapshot (via repeated Apply) so the next local InsertAt/DeleteAt does
// not reuse any of those dots. Dots of deleted entries and of delete
// operations are not in the entry set, so they are not taken into account.
func (r *Replica[T]) ResyncCounter() {
	for _, e := range r.entries {
		if e.Dot.Site == r.site && e.Dot.Counter >= r.counter {
			r.counter = e.Dot.Counter + 1
		}
	}
}

// search returns the index where id is, or where it would be inserted to
// keep entries sorted, and whether it was found.
func (r *Replica[T]) search(id identifier.Identifier) (int, bool) {
	n := len(r.entries)
	idx := sort.Search(n, func(i int) bool {
		return !r.entries[i].ID.Less(id)
	})

	if idx < n && r.entries[idx].ID.Equal(id) {
		return idx, true
	}

	return idx, false
}

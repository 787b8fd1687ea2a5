package testutil

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/lseqkit/lseq/pkg/allocator"
	"github.com/lseqkit/lseq/pkg/sequence"
)

// Harness wires together two independent replicas for convergence
// testing.
//
// This is intentionally small: it exists to share setup and provide
// a single place to hang helper methods for convergence tests.
type Harness struct {
	TB testing.TB
	A  *sequence.Replica[rune]
	B  *sequence.Replica[rune]
}

// NewHarness creates two replicas, site 1 and site 2, seeded with
// distinct (but deterministic) allocator randomness derived from seed.
func NewHarness(tb testing.TB, seed uint64) *Harness {
	tb.Helper()

	a, err := sequence.NewReplica[rune](1, allocator.NewSeededSource(seed))
	if err != nil {
		tb.Fatalf("testutil.NewHarness: replica A: %v", err)
	}

	b, err := sequence.NewReplica[rune](2, allocator.NewSeededSource(seed+1))
	if err != nil {
		tb.Fatalf("testutil.NewHarness: replica B: %v", err)
	}

	return &Harness{TB: tb, A: a, B: b}
}

// StepLocal performs op against the origin replica (A when originIsA,
// otherwise B) and immediately applies the resulting operation, if any,
// to the other replica. This simulates synchronous causal delivery: the
// origin always applies its own edit before anyone else observes it, so
// a delete is never delivered ahead of the insert it targets.
func (h *Harness) StepLocal(op SeqOp, originIsA bool) {
	origin, other := h.A, h.B
	if !originIsA {
		origin, other = h.B, h.A
	}

	result, ok := op.Apply(origin)
	if !ok {
		return
	}

	other.Apply(result)
}

// AssertConverged fails the test if A and B have not converged to the
// same ordered entry set. It compares full entries (identifier, dot, and
// payload), not just the collected payload string, so a divergence in
// identifiers or dots that happens not to change the visible text is
// still caught.
func (h *Harness) AssertConverged() {
	h.TB.Helper()

	if diff := cmp.Diff(h.A.Entries(), h.B.Entries()); diff != "" {
		h.TB.Fatalf("replicas diverged (site %d vs site %d, -A +B):\n%s", h.A.Site(), h.B.Site(), diff)
	}
}

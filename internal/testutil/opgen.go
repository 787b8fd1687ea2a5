package testutil

import "github.com/lseqkit/lseq/pkg/sequence"

// OpGenConfig configures the operation generator.
type OpGenConfig struct {
	// InsertRate is the percentage of ops that insert a new element
	// (0-100). The remainder delete an existing one.
	InsertRate int
}

// DefaultOpGenConfig returns a configuration biased toward inserts (60%)
// so a run has something to delete later. The rate stays fixed as the
// sequence grows; NextOp only overrides it to always insert into an empty
// replica.
func DefaultOpGenConfig() OpGenConfig {
	return OpGenConfig{InsertRate: 60}
}

// SeqOp is a single generated, site-scoped operation: either insert at an
// index with a generated payload, or delete at an index.
type SeqOp struct {
	Delete bool
	Index  int
	Value  rune
}

// OpGenerator generates deterministic SeqOps from a byte stream, scaled
// to the current length of the replica it targets so indices are always
// in range.
type OpGenerator struct {
	stream *ByteStream
	config OpGenConfig
}

// NewOpGenerator creates a generator over fuzzBytes using cfg.
func NewOpGenerator(fuzzBytes []byte, cfg OpGenConfig) *OpGenerator {
	return &OpGenerator{stream: NewByteStream(fuzzBytes), config: cfg}
}

// HasMore reports whether more operations can be generated.
func (g *OpGenerator) HasMore() bool {
	return g.stream.HasMore()
}

// NextOp generates the next operation for a replica currently holding
// curLen entries. Delete is never chosen when curLen is 0.
func (g *OpGenerator) NextOp(curLen int) SeqOp {
	insertRate := g.config.InsertRate
	if curLen == 0 {
		insertRate = 100
	}

	if int(g.stream.NextByte())%100 < insertRate {
		idx := 0
		if curLen > 0 {
			idx = g.stream.NextInt(curLen + 1)
		}

		return SeqOp{Index: idx, Value: g.stream.NextRune()}
	}

	return SeqOp{Delete: true, Index: g.stream.NextInt(curLen)}
}

// Apply performs op against r, returning the resulting sequence.Op for
// broadcast to other replicas. Returns ok=false for a delete that landed
// out of range (possible if curLen passed to NextOp is stale).
func (op SeqOp) Apply(r *sequence.Replica[rune]) (sequence.Op[rune], bool) {
	if op.Delete {
		return r.DeleteAt(op.Index)
	}

	result, err := r.InsertAt(op.Index, op.Value)

	return result, err == nil
}

package sequence_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lseqkit/lseq/pkg/allocator"
	"github.com/lseqkit/lseq/pkg/sequence"
)

func newReplica(t *testing.T, site uint32, seed uint64) *sequence.Replica[rune] {
	t.Helper()

	r, err := sequence.NewReplica[rune](site, allocator.NewSeededSource(seed))
	require.NoError(t, err)

	return r
}

func collect(r *sequence.Replica[rune]) string {
	out := make([]rune, 0, r.Len())
	for v := range r.All() {
		out = append(out, v)
	}

	return string(out)
}

func TestNewReplica_RejectsReservedSite(t *testing.T) {
	t.Parallel()

	_, err := sequence.NewReplica[rune](0, allocator.NewSeededSource(1))
	require.ErrorIs(t, err, sequence.ErrReservedSite)
}

// TestReplica_S1_OutOfOrderLocalInserts is scenario S1.
func TestReplica_S1_OutOfOrderLocalInserts(t *testing.T) {
	t.Parallel()

	site := newReplica(t, 1, 1)

	_, err := site.InsertAt(0, 'a')
	require.NoError(t, err)
	_, err = site.InsertAt(1, 'c')
	require.NoError(t, err)
	_, err = site.InsertAt(1, 'b')
	require.NoError(t, err)

	assert.Equal(t, "abc", collect(site))
}

// TestReplica_S2_TwoSiteAppendInterleaving is scenario S2.
func TestReplica_S2_TwoSiteAppendInterleaving(t *testing.T) {
	t.Parallel()

	site0 := newReplica(t, 1, 1)
	site1 := newReplica(t, 2, 2)

	op1, err := site0.InsertAt(0, 'x')
	require.NoError(t, err)
	site1.Apply(op1)

	op2, err := site1.InsertAt(1, 'y')
	require.NoError(t, err)
	site0.Apply(op2)

	assert.Equal(t, "xy", collect(site0))
	assert.Equal(t, "xy", collect(site1))
}

// TestReplica_S3_ConcurrentSameIndexInsert is scenario S3.
func TestReplica_S3_ConcurrentSameIndexInsert(t *testing.T) {
	t.Parallel()

	site0 := newReplica(t, 1, 10)
	site1 := newReplica(t, 2, 20)

	opA, err := site0.InsertAt(0, 'A')
	require.NoError(t, err)

	opB, err := site1.InsertAt(0, 'B')
	require.NoError(t, err)

	site0.Apply(opB)
	site1.Apply(opA)

	result0 := collect(site0)
	result1 := collect(site1)

	assert.Equal(t, result0, result1, "both replicas must converge to the same order")
	assert.Contains(t, []string{"AB", "BA"}, result0)
}

// TestReplica_S4_DeleteOfUnseenInsert is scenario S4: causal violation is
// tolerated, not masked.
func TestReplica_S4_DeleteOfUnseenInsert(t *testing.T) {
	t.Parallel()

	producer := newReplica(t, 1, 5)
	consumer := newReplica(t, 2, 6)

	insertOp, err := producer.InsertAt(0, 'x')
	require.NoError(t, err)

	deleteOp, ok := producer.DeleteAt(0)
	require.True(t, ok)

	// consumer never saw the insert; applying the delete first is a no-op.
	changed := consumer.Apply(deleteOp)
	assert.False(t, changed)
	assert.Equal(t, 0, consumer.Len())

	// Applying the insert afterward leaves it present: the hazard is
	// visible, not masked, per spec section 8 / 9.
	consumer.Apply(insertOp)
	assert.Equal(t, 1, consumer.Len())
	assert.Equal(t, "x", collect(consumer))
}

func TestReplica_DeleteAt_OutOfRangeReturnsAbsence(t *testing.T) {
	t.Parallel()

	r := newReplica(t, 1, 1)

	_, err := r.InsertAt(0, 'a')
	require.NoError(t, err)

	_, ok := r.DeleteAt(5)
	assert.False(t, ok, "out-of-range delete must report absence, not clamp")
	assert.Equal(t, 1, r.Len())
}

func TestReplica_InsertDeleteRoundTrip(t *testing.T) {
	t.Parallel()

	r := newReplica(t, 1, 1)

	_, err := r.InsertAt(0, 'a')
	require.NoError(t, err)
	_, err = r.InsertAt(1, 'c')
	require.NoError(t, err)

	before := collect(r)

	_, err = r.InsertAt(1, 'b')
	require.NoError(t, err)

	_, ok := r.DeleteAt(1)
	require.True(t, ok)

	assert.Equal(t, before, collect(r))
}

func TestReplica_ApplyIsIdempotent(t *testing.T) {
	t.Parallel()

	producer := newReplica(t, 1, 1)
	consumer := newReplica(t, 2, 2)

	op, err := producer.InsertAt(0, 'z')
	require.NoError(t, err)

	consumer.Apply(op)
	consumer.Apply(op)

	assert.Equal(t, 1, consumer.Len())
	assert.Equal(t, "z", collect(consumer))

	del, ok := producer.DeleteAt(0)
	require.True(t, ok)

	consumer.Apply(del)
	consumer.Apply(del)

	assert.Equal(t, 0, consumer.Len())
}

func TestReplica_ApplyCommutesForIndependentOps(t *testing.T) {
	t.Parallel()

	site0 := newReplica(t, 1, 1)
	site1 := newReplica(t, 2, 2)

	op1, err := site0.InsertAt(0, 'm')
	require.NoError(t, err)

	op2, err := site1.InsertAt(0, 'n')
	require.NoError(t, err)

	order1 := newReplica(t, 3, 3)
	order1.Apply(op1)
	order1.Apply(op2)

	order2 := newReplica(t, 4, 4)
	order2.Apply(op2)
	order2.Apply(op1)

	assert.Equal(t, collect(order1), collect(order2))
}

func TestReplica_OrderingInvariant(t *testing.T) {
	t.Parallel()

	r := newReplica(t, 1, 123)

	for i := range 50 {
		_, err := r.InsertAt(i%3, rune('a'+i%26))
		require.NoError(t, err)
	}

	entries := r.Entries()
	for i := 1; i < len(entries); i++ {
		assert.True(t, entries[i-1].ID.Less(entries[i].ID), "entries must be strictly increasing at index %d", i)
	}
}

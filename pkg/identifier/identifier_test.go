package identifier_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lseqkit/lseq/pkg/identifier"
)

func TestNew_RejectsEmptyPath(t *testing.T) {
	t.Parallel()

	_, err := identifier.New(nil)
	require.ErrorIs(t, err, identifier.ErrEmptyIdentifier)
}

func TestNew_RejectsOutOfRangeIndex(t *testing.T) {
	t.Parallel()

	// depth 0 has width 8: indices 0..7 are valid, 8 is not.
	_, err := identifier.New([]identifier.Position{{Index: 8, Site: 1}})
	require.ErrorIs(t, err, identifier.ErrIndexOutOfRange)
}

func TestNew_AcceptsBoundaryIndices(t *testing.T) {
	t.Parallel()

	id, err := identifier.New([]identifier.Position{{Index: 7, Site: 1}})
	require.NoError(t, err)
	assert.Equal(t, 1, id.Depth())
}

func TestBeginEnd_BracketEverything(t *testing.T) {
	t.Parallel()

	begin := identifier.Begin()
	end := identifier.End()

	assert.True(t, begin.Less(end))

	mid, err := identifier.New([]identifier.Position{{Index: 4, Site: 1}})
	require.NoError(t, err)

	assert.True(t, begin.Less(mid))
	assert.True(t, mid.Less(end))
}

func TestCompare_PrefixIsSmaller(t *testing.T) {
	t.Parallel()

	short, err := identifier.New([]identifier.Position{{Index: 4, Site: 1}})
	require.NoError(t, err)

	long, err := identifier.New([]identifier.Position{
		{Index: 4, Site: 1},
		{Index: 2, Site: 1},
	})
	require.NoError(t, err)

	assert.True(t, short.Less(long))
	assert.False(t, long.Less(short))
	assert.Equal(t, 0, short.Compare(short))
}

func TestCompare_IndexThenSiteTiebreak(t *testing.T) {
	t.Parallel()

	a, err := identifier.New([]identifier.Position{{Index: 4, Site: 1}})
	require.NoError(t, err)

	b, err := identifier.New([]identifier.Position{{Index: 4, Site: 2}})
	require.NoError(t, err)

	assert.True(t, a.Less(b))

	c, err := identifier.New([]identifier.Position{{Index: 5, Site: 1}})
	require.NoError(t, err)

	assert.True(t, b.Less(c))
}

func TestWidth_DoublesPerDepth(t *testing.T) {
	t.Parallel()

	assert.Equal(t, uint64(8), identifier.Width(0))
	assert.Equal(t, uint64(16), identifier.Width(1))
	assert.Equal(t, uint64(32), identifier.Width(2))
}

func TestAt_ReportsAbsencePastDepth(t *testing.T) {
	t.Parallel()

	id, err := identifier.New([]identifier.Position{{Index: 4, Site: 1}})
	require.NoError(t, err)

	pos, ok := id.At(0)
	require.True(t, ok)
	assert.Equal(t, uint64(4), pos.Index)

	_, ok = id.At(1)
	assert.False(t, ok)
}

func TestPath_ReturnsIndependentCopy(t *testing.T) {
	t.Parallel()

	id, err := identifier.New([]identifier.Position{{Index: 4, Site: 1}})
	require.NoError(t, err)

	p := id.Path()
	p[0].Index = 99

	pos, _ := id.At(0)
	assert.Equal(t, uint64(4), pos.Index, "mutating the returned slice must not affect the identifier")
}

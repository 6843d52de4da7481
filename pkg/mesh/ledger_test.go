package mesh

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEdgeIsUnordered(t *testing.T) {
	assert.Equal(t, NewEdge(3, 7), NewEdge(7, 3))
	assert.Equal(t, Edge{A: 3, B: 7}, NewEdge(7, 3))
}

func TestLedgerRecordAndRelease(t *testing.T) {
	l := NewEdgeLedger()

	require.NoError(t, l.RecordUse(1, 2))
	assert.Equal(t, 1, l.UseCount(2, 1))
	require.NoError(t, l.RecordUse(2, 1))
	assert.Equal(t, 2, l.UseCount(1, 2))
	assert.Equal(t, 0, l.SingleCount())
	assert.Equal(t, 1, l.DoubleCount())

	err := l.RecordUse(1, 2)
	assert.ErrorIs(t, err, ErrEdgeOverflow)
	assert.Equal(t, 2, l.UseCount(1, 2))

	require.NoError(t, l.ReleaseUse(1, 2))
	assert.Equal(t, 1, l.UseCount(1, 2))
	require.NoError(t, l.ReleaseUse(1, 2))
	assert.Equal(t, 0, l.UseCount(1, 2))

	assert.ErrorIs(t, l.ReleaseUse(1, 2), ErrEdgeUnderflow)
}

func TestLedgerCorruptionIsOverflow(t *testing.T) {
	l := NewEdgeLedger()
	e := NewEdge(4, 5)
	l.single[e] = struct{}{}
	l.double[e] = struct{}{}

	assert.Equal(t, 3, l.UseCount(4, 5))
	assert.ErrorIs(t, l.ReleaseUse(4, 5), ErrEdgeOverflow)
}

func TestLedgerTriangleIsAllOrNothing(t *testing.T) {
	l := NewEdgeLedger()
	require.NoError(t, l.RecordTriangle([3]int{0, 1, 2}))
	require.NoError(t, l.RecordTriangle([3]int{0, 1, 3}))

	// 0-1 is full, so 1-4 and 4-0 must not be recorded either
	err := l.RecordTriangle([3]int{1, 0, 4})
	assert.ErrorIs(t, err, ErrEdgeOverflow)
	assert.Equal(t, 0, l.UseCount(1, 4))
	assert.Equal(t, 0, l.UseCount(4, 0))

	err = l.ReleaseTriangle([3]int{0, 1, 9})
	assert.ErrorIs(t, err, ErrEdgeUnderflow)
	assert.Equal(t, 2, l.UseCount(0, 1))
}

func TestLedgerQueriesAreSorted(t *testing.T) {
	l := NewEdgeLedger()
	require.NoError(t, l.RecordTriangle([3]int{5, 2, 0}))

	assert.Equal(t, []Edge{{0, 2}, {0, 5}, {2, 5}}, l.Single())
	assert.Empty(t, l.Double())

	c := l.Clone()
	require.NoError(t, c.RecordUse(0, 2))
	assert.Equal(t, 1, l.UseCount(0, 2))
	assert.Equal(t, 2, c.UseCount(0, 2))
}

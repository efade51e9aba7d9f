package costtable

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCursor(t *testing.T) {
	cursor := NewTable(map[uint64]uint64{10: 2, 100: 5}, nil, nil).InstructionCursor()

	_, ok := cursor.Next()
	require.False(t, ok)

	cost, moved := cursor.Cost(0)
	require.Equal(t, uint64(1), cost)
	require.False(t, moved, "first lookup is not a move")
	next, ok := cursor.Next()
	require.True(t, ok)
	require.Equal(t, uint64(10), next)

	for counter := uint64(1); counter < 10; counter++ {
		cost, moved = cursor.Cost(counter)
		require.Equal(t, uint64(1), cost)
		require.False(t, moved)
	}

	cost, moved = cursor.Cost(10)
	require.Equal(t, uint64(2), cost)
	require.True(t, moved)

	cost, moved = cursor.Cost(99)
	require.Equal(t, uint64(2), cost)
	require.False(t, moved)

	cost, moved = cursor.Cost(1000)
	require.Equal(t, uint64(5), cost)
	require.True(t, moved)
	_, ok = cursor.Next()
	require.False(t, ok)

	cost, moved = cursor.Cost(1 << 50)
	require.Equal(t, uint64(5), cost)
	require.False(t, moved)

	// counters such as stack height go down as well
	cost, moved = cursor.Cost(5)
	require.Equal(t, uint64(1), cost)
	require.True(t, moved)
}

func TestCursorAgreesWithLookup(t *testing.T) {
	table := NewTable(nil, map[uint64]uint64{3: 1, 7: 2, 8: 3, 50: 4}, nil)
	cursor := table.StackHeightCursor()
	for _, counter := range []uint64{0, 6, 7, 8, 9, 49, 50, 51, 2, 8, 7, 100, 0} {
		expected, _, _ := table.StackHeightTier(counter)
		cost, _ := cursor.Cost(counter)
		require.Equal(t, expected, cost, "counter %d", counter)
	}
}

func TestCursorEmptyTiers(t *testing.T) {
	cursor := NewTable(nil, nil, nil).StackSizeCursor()
	for _, counter := range []uint64{0, 100, 1 << 60} {
		cost, moved := cursor.Cost(counter)
		require.Equal(t, StackSizeTierDefault, cost)
		require.False(t, moved)
	}
}

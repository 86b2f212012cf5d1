package index

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPutGetDelete(t *testing.T) {
	idx := New()

	_, ok := idx.Get("a")
	require.False(t, ok)

	idx.Put("a", Location{Segment: 1, ValueOffset: 10, ValueSize: 3})
	loc, ok := idx.Get("a")
	require.True(t, ok)
	require.Equal(t, Location{Segment: 1, ValueOffset: 10, ValueSize: 3}, loc)
	require.Equal(t, 1, idx.Len())

	require.True(t, idx.Delete("a"))
	require.False(t, idx.Delete("a"))
	_, ok = idx.Get("a")
	require.False(t, ok)
	require.Equal(t, 0, idx.Len())
}

func TestPutReplacesExistingLocation(t *testing.T) {
	idx := New()
	idx.Put("a", Location{Segment: 1, ValueOffset: 0, ValueSize: 1})
	idx.Put("a", Location{Segment: 2, ValueOffset: 5, ValueSize: 2})

	loc, ok := idx.Get("a")
	require.True(t, ok)
	require.Equal(t, uint32(2), loc.Segment)
	require.Equal(t, 1, idx.Len())
}

func TestSnapshotIsPointInTime(t *testing.T) {
	idx := New()
	idx.Put("a", Location{Segment: 1})
	idx.Put("b", Location{Segment: 1})

	snap := idx.Snapshot()
	idx.Put("c", Location{Segment: 2})

	require.Len(t, snap, 2)
	require.Equal(t, 3, idx.Len())
}

package segment

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ignitedb/ignite/internal/index"
	"github.com/ignitedb/ignite/pkg/logger"
	"github.com/stretchr/testify/require"
)

func openTestLog(t *testing.T, segmentSize int64) (*Log, string) {
	t.Helper()
	dir := t.TempDir()
	l, err := Open(dir, segmentSize, logger.Nop())
	require.NoError(t, err)
	return l, dir
}

func TestWriteThenReadValue(t *testing.T) {
	l, _ := openTestLog(t, 1024)

	loc, err := l.Write([]byte("a"), []byte("1"))
	require.NoError(t, err)

	value, err := l.ReadValue(loc)
	require.NoError(t, err)
	require.Equal(t, []byte("1"), value)
}

func TestTombstoneHasZeroSizeLocation(t *testing.T) {
	l, _ := openTestLog(t, 1024)

	loc, err := l.Write([]byte("a"), nil)
	require.NoError(t, err)
	require.EqualValues(t, 0, loc.ValueSize)
}

func TestRolloverCreatesNewSegmentPastThreshold(t *testing.T) {
	l, dir := openTestLog(t, 32)

	for i := 0; i < 20; i++ {
		_, err := l.Write([]byte("key"), []byte("0123456789"))
		require.NoError(t, err)
	}

	entries, err := os.ReadDir(filepath.Join(dir, LogDirName))
	require.NoError(t, err)
	require.Greater(t, len(entries), 1, "expected rollover to produce multiple segments")
}

func TestReplayReconstructsIndex(t *testing.T) {
	l, dir := openTestLog(t, 1024)

	_, err := l.Write([]byte("a"), []byte("1"))
	require.NoError(t, err)
	_, err = l.Write([]byte("a"), []byte("2"))
	require.NoError(t, err)
	_, err = l.Write([]byte("b"), []byte("3"))
	require.NoError(t, err)
	_, err = l.Write([]byte("b"), nil) // tombstone
	require.NoError(t, err)
	require.NoError(t, l.Close())

	l2, err := Open(dir, 1024, logger.Nop())
	require.NoError(t, err)

	idx := index.New()
	count, err := l2.Replay(idx)
	require.NoError(t, err)
	require.Equal(t, 4, count)
	require.Equal(t, 1, idx.Len())

	loc, ok := idx.Get("a")
	require.True(t, ok)
	value, err := l2.ReadValue(loc)
	require.NoError(t, err)
	require.Equal(t, []byte("2"), value)

	_, ok = idx.Get("b")
	require.False(t, ok)
}

func TestReplayTruncatedTailIsTolerated(t *testing.T) {
	l, dir := openTestLog(t, 1024)

	_, err := l.Write([]byte("a"), []byte("1"))
	require.NoError(t, err)
	_, err = l.Write([]byte("b"), []byte("2"))
	require.NoError(t, err)
	require.NoError(t, l.Close())

	segments, err := os.ReadDir(filepath.Join(dir, LogDirName))
	require.NoError(t, err)
	require.Len(t, segments, 1)

	segPath := filepath.Join(dir, LogDirName, segments[0].Name())
	info, err := os.Stat(segPath)
	require.NoError(t, err)
	require.NoError(t, os.Truncate(segPath, info.Size()-1))

	l2, err := Open(dir, 1024, logger.Nop())
	require.NoError(t, err)

	idx := index.New()
	count, err := l2.Replay(idx)
	require.NoError(t, err)
	require.Equal(t, 1, count, "only the untruncated first record should survive")

	loc, ok := idx.Get("a")
	require.True(t, ok)
	value, err := l2.ReadValue(loc)
	require.NoError(t, err)
	require.Equal(t, []byte("1"), value)

	_, ok = idx.Get("b")
	require.False(t, ok)
}

func TestCompactShrinksSegmentCountAndPreservesValues(t *testing.T) {
	l, dir := openTestLog(t, 128)
	idx := index.New()

	const keys = 100
	for i := 0; i < keys; i++ {
		key := []byte(padKey(i))
		loc, err := l.Write(key, []byte("initial-value-aaaaaa"))
		require.NoError(t, err)
		idx.Put(string(key), loc)
	}

	entriesBefore, err := os.ReadDir(filepath.Join(dir, LogDirName))
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(entriesBefore), 10)

	for i := 0; i < keys; i++ {
		key := []byte(padKey(i))
		loc, err := l.Write(key, []byte("overwritten"))
		require.NoError(t, err)
		idx.Put(string(key), loc)
	}

	entriesBefore, err = os.ReadDir(filepath.Join(dir, LogDirName))
	require.NoError(t, err)

	require.NoError(t, l.Compact(idx))

	entriesAfter, err := os.ReadDir(filepath.Join(dir, LogDirName))
	require.NoError(t, err)
	require.Less(t, len(entriesAfter), len(entriesBefore))

	for i := 0; i < keys; i++ {
		key := string(padKey(i))
		loc, ok := idx.Get(key)
		require.True(t, ok)
		value, err := l.ReadValue(loc)
		require.NoError(t, err)
		require.Equal(t, "overwritten", string(value))
	}
}

func padKey(i int) string {
	return "key-" + string(rune('a'+i%26)) + string(rune('0'+i/26))
}

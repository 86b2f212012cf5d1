package record

import (
	"bufio"
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	buf := Encode([]byte("hello"), []byte("world"))
	r := bufio.NewReader(bytes.NewReader(buf))

	entry, offset, err := ReadEntry(r, 0)
	require.NoError(t, err)
	require.Equal(t, "hello", entry.Key)
	require.False(t, entry.Tombstone)
	require.EqualValues(t, len("world"), entry.ValueSize)
	require.Equal(t, int64(len(buf)), offset)

	value := buf[entry.ValueOffset:]
	decoded, err := DecodeValue(value)
	require.NoError(t, err)
	require.Equal(t, "world", decoded)
}

func TestEncodeTombstone(t *testing.T) {
	buf := EncodeTombstone([]byte("gone"))
	r := bufio.NewReader(bytes.NewReader(buf))

	entry, offset, err := ReadEntry(r, 0)
	require.NoError(t, err)
	require.Equal(t, "gone", entry.Key)
	require.True(t, entry.Tombstone)
	require.EqualValues(t, 0, entry.ValueSize)
	require.Equal(t, int64(len(buf)), offset)
}

func TestReadEntryTruncatedHeaderIsTolerated(t *testing.T) {
	full := Encode([]byte("k"), []byte("v"))
	truncated := full[:Header{}.Size()-1]
	r := bufio.NewReader(bytes.NewReader(truncated))

	_, _, err := ReadEntry(r, 0)
	require.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestReadEntryTruncatedKeyIsTolerated(t *testing.T) {
	full := Encode([]byte("key"), []byte("value"))
	truncated := full[:Header{}.Size()+1]
	r := bufio.NewReader(bytes.NewReader(truncated))

	_, _, err := ReadEntry(r, 0)
	require.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestReadEntryAtCleanBoundaryReturnsEOF(t *testing.T) {
	r := bufio.NewReader(bytes.NewReader(nil))
	_, _, err := ReadEntry(r, 0)
	require.ErrorIs(t, err, io.EOF)
}

func TestDecodeValueRejectsInvalidUTF8(t *testing.T) {
	_, err := DecodeValue([]byte{0xff, 0xfe})
	require.Error(t, err)
}

// Package record implements the on-disk entry format shared by every
// segment in the log: a native-width, native-endian size pair followed
// by the key bytes and, unless the entry is a tombstone, the value
// bytes.
//
// The format deliberately does not version, checksum, or byte-order
// itself. It is meant to be read back only on the host that wrote it,
// by the single process that owns the log directory.
package record

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math/bits"
	"unicode/utf8"
)

// wordSize is the width, in bytes, of the ksz/vsz size prefixes. It
// tracks the platform's native uint width so the format matches
// whatever `usize`/`uint` the host would naturally use.
const wordSize = bits.UintSize / 8

// Header is the fixed-width prefix of every on-disk record.
type Header struct {
	KeySize   uint
	ValueSize uint
}

// Size returns the number of bytes Header occupies on disk.
func (Header) Size() int { return 2 * wordSize }

// Encode renders a record with the given key and value into a single
// contiguous buffer suitable for a single Write call. A nil or
// zero-length value produces a tombstone: ValueSize is encoded as 0
// and no value bytes follow.
func Encode(key, value []byte) []byte {
	buf := make([]byte, Header{}.Size()+len(key)+len(value))
	putWord(buf[0:wordSize], uint(len(key)))
	putWord(buf[wordSize:2*wordSize], uint(len(value)))
	n := copy(buf[2*wordSize:], key)
	copy(buf[2*wordSize+n:], value)
	return buf
}

// EncodeTombstone renders a removal record for key: a header whose
// ValueSize is zero, followed by the key and no value payload.
func EncodeTombstone(key []byte) []byte {
	return Encode(key, nil)
}

// DecodedEntry is what ReadEntry recovers from a single on-disk
// record during replay: enough to update the index without ever
// reading the value bytes themselves.
type DecodedEntry struct {
	Key         string
	ValueOffset int64
	ValueSize   uint
	Tombstone   bool
}

// ReadEntry decodes one record from r, which must be positioned at the
// start of a header. On success it returns the decoded entry and
// advances r past the value payload (without reading it). If r runs
// out of bytes anywhere in the record, ReadEntry returns
// io.ErrUnexpectedEOF or io.EOF (io.EOF when the stream ended exactly
// at a record boundary, right after the header, or inside the value
// payload) so callers can tell a torn tail apart from a genuine decode
// failure.
func ReadEntry(r *bufio.Reader, offset int64) (DecodedEntry, int64, error) {
	header := make([]byte, Header{}.Size())
	if _, err := io.ReadFull(r, header); err != nil {
		return DecodedEntry{}, offset, err
	}
	offset += int64(len(header))

	ksz := getWord(header[0:wordSize])
	vsz := getWord(header[wordSize:2*wordSize])

	key := make([]byte, ksz)
	if _, err := io.ReadFull(r, key); err != nil {
		return DecodedEntry{}, offset, err
	}
	offset += int64(ksz)

	if !utf8.Valid(key) {
		return DecodedEntry{}, offset, fmt.Errorf("record: key at offset %d is not valid UTF-8", offset-int64(ksz))
	}

	valueOffset := offset
	if vsz > 0 {
		if _, err := io.CopyN(io.Discard, r, int64(vsz)); err != nil {
			return DecodedEntry{}, offset, err
		}
		offset += int64(vsz)
	}

	return DecodedEntry{
		Key:         string(key),
		ValueOffset: valueOffset,
		ValueSize:   vsz,
		Tombstone:   vsz == 0,
	}, offset, nil
}

// DecodeValue validates that raw, the bytes read from a value
// location, form a valid UTF-8 string and returns it. Values are
// treated as text everywhere above the log engine.
func DecodeValue(raw []byte) (string, error) {
	if !utf8.Valid(raw) {
		return "", fmt.Errorf("record: value is not valid UTF-8")
	}
	return string(raw), nil
}

func putWord(b []byte, v uint) {
	if wordSize == 8 {
		binary.NativeEndian.PutUint64(b, uint64(v))
		return
	}
	binary.NativeEndian.PutUint32(b, uint32(v))
}

func getWord(b []byte) uint {
	if wordSize == 8 {
		return uint(binary.NativeEndian.Uint64(b))
	}
	return uint(binary.NativeEndian.Uint32(b))
}

// Package errors defines the closed taxonomy of failure kinds the log
// engine can produce: I/O errors from the filesystem, and decode
// errors from malformed records. It mirrors the teacher repository's
// fluent, code-carrying error style but trims it to exactly the kinds
// spec.md §7 names — there is no validation or index error type here
// because nothing in this store validates request shape beyond
// "key not found", which is its own sentinel rather than a structured
// type.
package errors

import stdErrors "errors"

// ErrKeyNotFound is returned by Remove (never Get) when the key is
// absent from the index. It is a plain sentinel, not a structured
// error, because it carries no context beyond "this key isn't here".
var ErrKeyNotFound = stdErrors.New("key not found")

// ErrorCode categorizes a failure programmatically, without requiring
// callers to parse error strings.
type ErrorCode string

const (
	// ErrorCodeIO covers any underlying filesystem failure: open,
	// read, write, seek, or delete.
	ErrorCodeIO ErrorCode = "IO_ERROR"

	// ErrorCodeDecode covers a byte sequence that failed to decode as
	// a valid key or value, or a size prefix that could not be read
	// in full outside of a replay pass (where a truncated tail is
	// tolerated rather than surfaced).
	ErrorCodeDecode ErrorCode = "DECODE_ERROR"
)

// StorageError reports a failure talking to the segment directory or
// one of its files.
type StorageError struct {
	*baseError
	segment string
	path    string
}

// NewStorageError wraps cause as a StorageError with the given message.
func NewStorageError(cause error, msg string) *StorageError {
	return &StorageError{baseError: newBaseError(cause, ErrorCodeIO, msg)}
}

// WithSegment records which segment file was involved.
func (e *StorageError) WithSegment(name string) *StorageError {
	e.segment = name
	return e
}

// WithPath records the full path that was being accessed.
func (e *StorageError) WithPath(path string) *StorageError {
	e.path = path
	return e
}

// Segment returns the segment filename associated with the error, if any.
func (e *StorageError) Segment() string { return e.segment }

// Path returns the full path associated with the error, if any.
func (e *StorageError) Path() string { return e.path }

// DecodeError reports a record that could not be parsed: invalid
// UTF-8 in a key or value, or (outside replay) a size prefix that ran
// off the end of the file.
type DecodeError struct {
	*baseError
	segment string
	offset  int64
}

// NewDecodeError wraps cause as a DecodeError with the given message.
func NewDecodeError(cause error, msg string) *DecodeError {
	return &DecodeError{baseError: newBaseError(cause, ErrorCodeDecode, msg)}
}

// WithSegment records which segment file the bad record lives in.
func (e *DecodeError) WithSegment(name string) *DecodeError {
	e.segment = name
	return e
}

// WithOffset records the byte offset at which decoding failed.
func (e *DecodeError) WithOffset(offset int64) *DecodeError {
	e.offset = offset
	return e
}

// Segment returns the segment filename associated with the error.
func (e *DecodeError) Segment() string { return e.segment }

// Offset returns the byte offset at which decoding failed.
func (e *DecodeError) Offset() int64 { return e.offset }

// IsStorageError reports whether err is, or wraps, a *StorageError.
func IsStorageError(err error) bool {
	var se *StorageError
	return stdErrors.As(err, &se)
}

// IsDecodeError reports whether err is, or wraps, a *DecodeError.
func IsDecodeError(err error) bool {
	var de *DecodeError
	return stdErrors.As(err, &de)
}

// Package kv is the public entry point for embedding an Ignite store in
// a Go program. It wraps internal/store.Store the same way the teacher
// repository's pkg/ignite wrapped internal/engine.Engine: a thin,
// context-accepting façade that owns construction and teardown so
// callers never import anything under internal/.
package kv

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/ignitedb/ignite/internal/store"
	kverrors "github.com/ignitedb/ignite/pkg/errors"
	"github.com/ignitedb/ignite/pkg/logger"
	"github.com/ignitedb/ignite/pkg/options"
	"go.uber.org/zap"
)

// ErrKeyNotFound is re-exported from pkg/errors so callers of this
// package never need to import anything under internal/ to check for
// it.
var ErrKeyNotFound = kverrors.ErrKeyNotFound

// ErrClosed is returned by every method once Close has been called.
var ErrClosed = errors.New("kv: operation attempted on a closed store")

// DB is a single open Ignite store. It is safe for concurrent use by
// multiple goroutines within one process; opening a second DB against
// the same directory concurrently is not supported (spec.md §5).
type DB struct {
	store  *store.Store
	log    *zap.SugaredLogger
	closed atomic.Bool
}

// Open initializes a DB rooted at dataDir, replaying any existing log
// directory under it before returning. service names the logger the
// same way the teacher repository's NewInstance does, so log lines
// from an embedded store are attributable to the program that opened
// it.
func Open(_ context.Context, dataDir, service string, opts ...options.OptionFunc) (*DB, error) {
	log := logger.New(service)
	return open(dataDir, log, opts...)
}

// OpenWithLogger is Open with a caller-supplied logger, used by the CLI
// so command-line output and structured logs can be configured
// independently of each other.
func OpenWithLogger(dataDir string, log *zap.SugaredLogger, opts ...options.OptionFunc) (*DB, error) {
	return open(dataDir, log, opts...)
}

func open(dataDir string, log *zap.SugaredLogger, opts ...options.OptionFunc) (*DB, error) {
	o := options.Apply(dataDir, opts...)
	s, err := store.Open(o, log)
	if err != nil {
		return nil, err
	}
	return &DB{store: s, log: log}, nil
}

// Set stores value under key, replacing any existing value. The write
// is durable once Set returns: the record has already been appended to
// the active segment.
func (db *DB) Set(_ context.Context, key, value string) error {
	if db.closed.Load() {
		return ErrClosed
	}
	return db.store.Set(key, value)
}

// Get retrieves the current value for key. ok is false, with a nil
// error, if key has never been set or was removed.
func (db *DB) Get(_ context.Context, key string) (value string, ok bool, err error) {
	if db.closed.Load() {
		return "", false, ErrClosed
	}
	return db.store.Get(key)
}

// Delete removes key. It returns ErrKeyNotFound if key is not
// currently present.
func (db *DB) Delete(_ context.Context, key string) error {
	if db.closed.Load() {
		return ErrClosed
	}
	return db.store.Remove(key)
}

// Close releases the DB's file handles. Further calls on db return
// ErrClosed.
func (db *DB) Close(_ context.Context) error {
	if !db.closed.CompareAndSwap(false, true) {
		return ErrClosed
	}
	return db.store.Close()
}

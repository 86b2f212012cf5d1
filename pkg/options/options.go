// Package options configures an Ignite store: where it keeps its log
// directory, how large a segment grows before rollover, and the
// compaction trigger ratio. It keeps the teacher repository's
// functional-options shape (OptionFunc, With* constructors) but drops
// the fields spec.md's design doesn't call for — there is no
// CompactInterval here, because compaction in this store is triggered
// synchronously after each Set (spec.md §4.3), not on a timer.
package options

import "strings"

// Options holds every tunable parameter of a Store.
type Options struct {
	// DataDir is the base directory under which the store manages
	// <DataDir>/.log/. Required.
	DataDir string

	// SegmentSize is the rollover trigger from spec.md §4.2: once the
	// active segment reaches this many bytes, the next write goes to
	// a freshly allocated segment. A segment may exceed this by up to
	// one full record.
	SegmentSize int64

	// CompactionThreshold is the live_keys/opsCount ratio at or below
	// which compaction runs after a Set (spec.md §4.3).
	CompactionThreshold float64
}

const (
	// DefaultSegmentSize matches the 1024-byte figure spec.md §4.2
	// cites as one of the two design-constant snapshots it saw.
	DefaultSegmentSize int64 = 1024

	// DefaultCompactionThreshold is spec.md §4.3's COMPACTION_THRESHOLD.
	DefaultCompactionThreshold = 0.7
)

// NewDefaultOptions returns an Options with every field set to its
// spec.md default except DataDir, which callers must supply.
func NewDefaultOptions(dataDir string) Options {
	return Options{
		DataDir:             dataDir,
		SegmentSize:         DefaultSegmentSize,
		CompactionThreshold: DefaultCompactionThreshold,
	}
}

// OptionFunc mutates an Options in place; it is the functional-options
// building block every With* constructor below returns.
type OptionFunc func(*Options)

// WithSegmentSize overrides the rollover threshold. Non-positive
// values are ignored.
func WithSegmentSize(size int64) OptionFunc {
	return func(o *Options) {
		if size > 0 {
			o.SegmentSize = size
		}
	}
}

// WithCompactionThreshold overrides the compaction trigger ratio.
// Values outside (0, 1] are ignored.
func WithCompactionThreshold(threshold float64) OptionFunc {
	return func(o *Options) {
		if threshold > 0 && threshold <= 1 {
			o.CompactionThreshold = threshold
		}
	}
}

// WithDataDir overrides the base directory. Blank values are ignored.
func WithDataDir(dir string) OptionFunc {
	return func(o *Options) {
		dir = strings.TrimSpace(dir)
		if dir != "" {
			o.DataDir = dir
		}
	}
}

// Apply runs every OptionFunc over a copy of defaults and returns the
// resulting Options.
func Apply(dataDir string, opts ...OptionFunc) Options {
	o := NewDefaultOptions(dataDir)
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Package compaction holds the space-amplification heuristic that
// decides when the store should rewrite live state into fresh
// segments. It is deliberately free of any disk I/O so the trigger
// logic can be tested in isolation from the segment log; the actual
// rewrite procedure lives in internal/segment, since it is the
// component that owns segment files.
package compaction

// Policy decides, after each mutating operation, whether compaction
// should run.
type Policy struct {
	// Threshold is the live_keys/opsCount ratio at or below which
	// compaction triggers. spec.md fixes this at 0.7.
	Threshold float64
}

// DefaultThreshold is the COMPACTION_THRESHOLD constant from spec.md §4.3.
const DefaultThreshold = 0.7

// NewDefaultPolicy returns the Policy spec.md describes.
func NewDefaultPolicy() Policy {
	return Policy{Threshold: DefaultThreshold}
}

// ShouldRun reports whether compaction should run given the current
// index cardinality (liveKeys) and the total number of append
// operations observed since the store was opened (opsCount), including
// those folded in during replay.
//
// opsCount is never reset after compaction (see spec.md §9's open
// question; this repo follows the original Rust implementation, which
// does not reset it either) — once enough operations accumulate, the
// ratio stays at or below Threshold and compaction runs on
// essentially every subsequent write. That is the documented, if
// surprising, behavior this policy implements.
func (p Policy) ShouldRun(liveKeys, opsCount int) bool {
	if opsCount <= 0 {
		return false
	}
	return float64(liveKeys)/float64(opsCount) <= p.Threshold
}

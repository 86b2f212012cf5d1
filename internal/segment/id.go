package segment

import "github.com/google/uuid"

// segmentSuffix is the file extension that marks a regular file in the
// log directory as a segment; everything else in the directory is
// ignored, per spec.md §6.
const segmentSuffix = ".log"

// newSegmentName mints a fresh, time-ordered segment identifier. A
// UUIDv7 embeds a millisecond timestamp in its leading bits, so
// lexicographic sort of filenames (directory listing order) matches
// creation order without any bespoke timestamp formatting — exactly
// the property spec.md §3 requires of a segment identifier.
func newSegmentName() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return id.String() + segmentSuffix, nil
}

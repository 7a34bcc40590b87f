package combine

import (
	"time"

	"torrent-combine/core/merge"
	"torrent-combine/core/scan"
)

// Classification is the terminal state of one processed group.
type Classification string

const (
	// ClassMerged means at least one member was brought up to the union
	// (or would be, under dry-run).
	ClassMerged Classification = "merged"
	// ClassSkipped means every member already held the union content.
	ClassSkipped Classification = "skipped"
	// ClassFailed means the members disagreed on a non-zero byte and the
	// group was left untouched.
	ClassFailed Classification = "failed"
	// ClassError means the group could not be processed at all, for
	// example because a member vanished or changed size mid-run.
	ClassError Classification = "error"
)

// Outcome describes how one group resolved.
type Outcome struct {
	// Key identifies the group.
	Key scan.Key
	// Class is the terminal state.
	Class Classification
	// Bytes is the volume the engine actually read across all members.
	// Groups it never reads, or stops reading at a conflict, count only
	// what was consumed.
	Bytes int64
	// Updated is the number of members that now hold the union content,
	// or that would under dry-run.
	Updated int
	// Sidecars lists sidecar files created for this group.
	Sidecars []string
	// Conflict carries the disagreement details for failed groups.
	Conflict *merge.Conflict
	// Err is the group-level error for ClassError outcomes.
	Err error
	// Elapsed is the wall time spent on the group.
	Elapsed time.Duration
}

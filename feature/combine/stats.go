package combine

import (
	"sync/atomic"
	"time"
)

// runStats aggregates cross-group counters for one run. Workers touch it
// concurrently through atomic increments only, so no outcome ordering is
// assumed.
type runStats struct {
	total int

	processed atomic.Int64
	merged    atomic.Int64
	skipped   atomic.Int64
	failed    atomic.Int64
	errors    atomic.Int64
	updated   atomic.Int64
	sidecars  atomic.Int64
	bytes     atomic.Int64
}

func newRunStats(total int) *runStats {
	return &runStats{total: total}
}

// observe folds one outcome into the counters and returns the fraction
// of groups processed so far.
func (s *runStats) observe(o Outcome) float64 {
	s.bytes.Add(o.Bytes)
	s.updated.Add(int64(o.Updated))
	s.sidecars.Add(int64(len(o.Sidecars)))

	switch o.Class {
	case ClassMerged:
		s.merged.Add(1)
	case ClassSkipped:
		s.skipped.Add(1)
	case ClassFailed:
		s.failed.Add(1)
	case ClassError:
		s.errors.Add(1)
	}

	done := s.processed.Add(1)
	if s.total == 0 {
		return 1
	}
	return float64(done) / float64(s.total)
}

// Summary is the immutable end-of-run snapshot of a run's counters.
type Summary struct {
	// Total is the number of groups handed to the run.
	Total int
	// Processed counts groups that reached a terminal state.
	Processed int64
	// Merged, Skipped, Failed and Errors partition Processed.
	Merged  int64
	Skipped int64
	Failed  int64
	Errors  int64
	// Updated counts members brought up to the union across all groups.
	Updated int64
	// Sidecars counts sidecar files created across all groups.
	Sidecars int64
	// Bytes is the total volume the engine read across all groups.
	Bytes int64
	// Elapsed is the wall time of the whole run.
	Elapsed time.Duration
}

func (s *runStats) summary(elapsed time.Duration) Summary {
	return Summary{
		Total:     s.total,
		Processed: s.processed.Load(),
		Merged:    s.merged.Load(),
		Skipped:   s.skipped.Load(),
		Failed:    s.failed.Load(),
		Errors:    s.errors.Load(),
		Updated:   s.updated.Load(),
		Sidecars:  s.sidecars.Load(),
		Bytes:     s.bytes.Load(),
		Elapsed:   elapsed,
	}
}

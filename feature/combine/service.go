package combine

import (
	"context"
	"fmt"
	"math"
	"runtime"
	"time"

	"torrent-combine/core/merge"
	"torrent-combine/core/scan"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Options configures a merge run.
type Options struct {
	// Replace overwrites incomplete members in place instead of writing
	// sidecar files.
	Replace bool
	// DryRun classifies and reports groups without writing anything.
	DryRun bool
	// Workers caps concurrent group processing; non-positive means one
	// worker per CPU.
	Workers int
}

// Service drives file groups through the merge engine and the apply
// step on a bounded worker pool.
type Service struct {
	engine *merge.Engine
	log    *zap.Logger
	opts   Options
}

// NewService creates a new combine service.
func NewService(engine *merge.Engine, log *zap.Logger, opts Options) *Service {
	if opts.Workers <= 0 {
		opts.Workers = runtime.NumCPU()
	}
	return &Service{engine: engine, log: log, opts: opts}
}

// Run processes every group and returns the aggregated summary. Groups
// are independent: a conflict or error in one is logged and counted but
// never stops the others. Group order in the result counters is
// irrelevant, so outcomes may land in any order.
func (s *Service) Run(ctx context.Context, groups []scan.Group) Summary {
	start := time.Now()
	stats := newRunStats(len(groups))

	g := new(errgroup.Group)
	g.SetLimit(s.opts.Workers)
	for _, grp := range groups {
		g.Go(func() error {
			out := s.processGroup(ctx, grp)
			fraction := stats.observe(out)
			s.logOutcome(out, fraction)
			return nil
		})
	}
	// Workers never return errors; Wait only gates completion.
	_ = g.Wait()

	return stats.summary(time.Since(start))
}

func (s *Service) processGroup(ctx context.Context, grp scan.Group) Outcome {
	start := time.Now()
	out := Outcome{Key: grp.Key}
	paths := grp.Paths()

	rep, err := s.engine.Build(ctx, paths)
	if err != nil {
		out.Class = ClassError
		out.Err = err
		out.Elapsed = time.Since(start)
		return out
	}
	defer rep.Close()

	out.Bytes = rep.Bytes

	switch {
	case rep.HasConflict():
		out.Class = ClassFailed
		out.Conflict = rep.Conflict

	case rep.AllComplete():
		out.Class = ClassSkipped

	default:
		incomplete := rep.Incomplete()
		out.Class = ClassMerged
		if s.opts.DryRun {
			out.Updated = len(incomplete)
			break
		}

		targets := make([]string, len(incomplete))
		for i, idx := range incomplete {
			targets[i] = paths[idx]
		}
		applied, err := merge.Apply(ctx, rep.Union(), targets, merge.ApplyOptions{Replace: s.opts.Replace})
		out.Updated = len(applied)
		if !s.opts.Replace {
			out.Sidecars = applied
		}
		if err != nil {
			out.Class = ClassError
			out.Err = err
		}
	}

	out.Elapsed = time.Since(start)
	return out
}

func (s *Service) logOutcome(out Outcome, fraction float64) {
	fields := []zap.Field{
		zap.String("group", out.Key.String()),
		zap.String("progress", fmt.Sprintf("%.0f%%", fraction*100)),
		zap.Duration("elapsed", out.Elapsed),
	}

	switch out.Class {
	case ClassMerged:
		fields = append(fields,
			zap.Int("updated", out.Updated),
			zap.String("throughput", throughput(out.Bytes, out.Elapsed)),
		)
		if len(out.Sidecars) > 0 {
			fields = append(fields, zap.Strings("sidecars", out.Sidecars))
		}
		if s.opts.DryRun {
			s.log.Info("group would be merged", fields...)
			return
		}
		s.log.Info("group merged", fields...)

	case ClassSkipped:
		s.log.Info("group already complete", fields...)

	case ClassFailed:
		fields = append(fields,
			zap.Int64("offset", out.Conflict.Offset),
			zap.String("member", out.Conflict.Path),
			zap.Uint8("got", out.Conflict.Got),
			zap.Uint8("want", out.Conflict.Want),
		)
		s.log.Warn("group members conflict, leaving all copies untouched", fields...)

	case ClassError:
		fields = append(fields, zap.Error(out.Err))
		s.log.Error("group not processed", fields...)
	}
}

// throughput renders engine volume over elapsed time for log lines.
func throughput(bytes int64, elapsed time.Duration) string {
	if elapsed <= 0 {
		return "n/a"
	}
	bps := float64(bytes) / elapsed.Seconds()
	// Sub-microsecond runs can push the ratio past uint64 range, where
	// the conversion is undefined. Clamp before converting.
	if bps > math.MaxInt64 {
		bps = math.MaxInt64
	}
	return humanize.IBytes(uint64(bps)) + "/s"
}

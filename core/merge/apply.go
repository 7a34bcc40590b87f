package merge

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// SidecarSuffix is appended to a member's name when merged content is
// written alongside it instead of replacing it.
const SidecarSuffix = ".merged"

// ApplyOptions controls how merged content is materialized.
type ApplyOptions struct {
	// Replace overwrites each target in place when true; otherwise a
	// sidecar file is created next to it.
	Replace bool
}

// Apply materializes src at every target path and returns the paths that
// now hold the merged content: the targets themselves when replacing,
// their sidecar paths otherwise.
//
// Each destination is written through a temporary file in the target's
// directory, synced, and renamed into place, so a destination either
// keeps its previous content or holds the complete merged content.
// Apply stops at the first failing target; the returned slice covers
// only what was applied.
func Apply(ctx context.Context, src Source, targets []string, opts ApplyOptions) ([]string, error) {
	applied := make([]string, 0, len(targets))
	for _, target := range targets {
		if err := ctx.Err(); err != nil {
			return applied, err
		}
		dest := target
		if !opts.Replace {
			dest = target + SidecarSuffix
		}
		if err := applyOne(src, target, dest); err != nil {
			return applied, fmt.Errorf("materializing %s: %w", dest, err)
		}
		applied = append(applied, dest)
	}
	return applied, nil
}

func applyOne(src Source, target, dest string) error {
	r, err := src.Open()
	if err != nil {
		return err
	}
	defer r.Close()

	// The temp file lives next to the target so the final rename never
	// crosses a filesystem boundary.
	tmp, err := os.CreateTemp(filepath.Dir(target), "."+filepath.Base(target)+".merge-")
	if err != nil {
		return err
	}
	name := tmp.Name()

	n, err := io.Copy(tmp, r)
	if err == nil && n != src.Size() {
		err = fmt.Errorf("union content is %d bytes, want %d", n, src.Size())
	}
	if err == nil {
		err = tmp.Sync()
	}
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err == nil {
		err = os.Rename(name, dest)
	}
	if err != nil {
		os.Remove(name)
		return err
	}
	return nil
}

package merge

import (
	"errors"
	"io"
	"os"
)

// Conflict records the first position at which a member carried a
// non-zero byte that disagrees with the union. One conflict invalidates
// the whole group.
type Conflict struct {
	// Offset is the absolute byte offset of the disagreement.
	Offset int64
	// Path names the member whose byte contradicted the union.
	Path string
	// Got is the member's byte at Offset.
	Got byte
	// Want is the union byte at Offset.
	Want byte
}

// Report is the outcome of streaming one file group through the engine.
//
// When Conflict is non-nil the group must not be merged: Complete is nil
// and no union content exists. Otherwise Complete holds one entry per
// member, true where the member already equals the union, and the union
// content is readable through Union.
type Report struct {
	// Size is the shared member length in bytes.
	Size int64
	// Bytes counts the bytes actually read across all members. A
	// conflict stops the scan, so it can fall short of Size times the
	// member count.
	Bytes int64
	// Complete flags, per member in input order, whether the member
	// already equals the union.
	Complete []bool
	// Conflict is set when two members disagreed on a non-zero byte.
	Conflict *Conflict

	union string
}

// HasConflict reports whether the group disagreed on a non-zero byte.
func (r *Report) HasConflict() bool { return r.Conflict != nil }

// AllComplete reports whether every member already equals the union, in
// which case there is nothing to write.
func (r *Report) AllComplete() bool {
	if r.HasConflict() {
		return false
	}
	for _, c := range r.Complete {
		if !c {
			return false
		}
	}
	return true
}

// Incomplete returns the input-order indices of members that differ
// from the union.
func (r *Report) Incomplete() []int {
	var idx []int
	for i, c := range r.Complete {
		if !c {
			idx = append(idx, i)
		}
	}
	return idx
}

// Union exposes the synthesized content for the apply step. It must not
// be used after Close, or when the report carries a conflict.
func (r *Report) Union() Source {
	return unionFile{path: r.union, size: r.Size}
}

// Close releases the temporary file backing the union content. It is
// safe to call on reports that never produced one.
func (r *Report) Close() error {
	if r.union == "" {
		return nil
	}
	err := os.Remove(r.union)
	r.union = ""
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Source provides independent sequential readers over merged content.
type Source interface {
	// Open returns a fresh reader positioned at the start of the content.
	Open() (io.ReadCloser, error)
	// Size returns the content length in bytes.
	Size() int64
}

type unionFile struct {
	path string
	size int64
}

func (u unionFile) Open() (io.ReadCloser, error) {
	if u.path == "" {
		return nil, errors.New("no union content")
	}
	return os.Open(u.path)
}

func (u unionFile) Size() int64 { return u.size }

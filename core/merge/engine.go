package merge

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
)

// DefaultChunkSize is the streaming chunk size used when none is
// configured.
const DefaultChunkSize = 1 << 20

// ErrSizeMismatch reports that the members of a group do not share one
// byte length, so no byte-wise merge is defined for them.
var ErrSizeMismatch = errors.New("group members differ in size")

// Engine streams the members of a file group in lockstep and
// synthesizes the byte-wise union of their contents.
type Engine struct {
	chunkSize int
	bufs      *bufferPool
}

// NewEngine returns an engine streaming in chunks of the given size.
// Non-positive sizes fall back to DefaultChunkSize.
func NewEngine(chunkSize int) *Engine {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	return &Engine{
		chunkSize: chunkSize,
		bufs:      newBufferPool(chunkSize),
	}
}

// Build streams every path in lockstep and produces a Report carrying
// the union of all non-zero bytes, the per-member completeness vector
// and, when two members disagree on a non-zero byte, the conflict that
// invalidates the group.
//
// All members must share one byte length; Build re-checks the sizes and
// returns ErrSizeMismatch when they have drifted since discovery. No
// member is ever written. The caller owns the report and must Close it
// to release the union temp file.
func (e *Engine) Build(ctx context.Context, paths []string) (*Report, error) {
	if len(paths) == 0 {
		return &Report{Complete: []bool{}}, nil
	}

	size, err := commonSize(paths)
	if err != nil {
		return nil, err
	}

	// Zero-length members carry nothing to merge, and a single member is
	// trivially identical to its own union. Neither needs a read.
	if size == 0 || len(paths) == 1 {
		return &Report{Size: size, Complete: allTrue(len(paths))}, nil
	}

	readers := make([]*os.File, 0, len(paths))
	defer func() {
		for _, f := range readers {
			f.Close()
		}
	}()
	for _, p := range paths {
		f, err := os.Open(p)
		if err != nil {
			return nil, fmt.Errorf("opening %s: %w", p, err)
		}
		readers = append(readers, f)
	}

	union, err := os.CreateTemp("", "torrent-combine-union-")
	if err != nil {
		return nil, fmt.Errorf("creating union temp file: %w", err)
	}
	// The temp file survives only a clean, conflict-free pass.
	keep := false
	defer func() {
		if !keep {
			union.Close()
			os.Remove(union.Name())
		}
	}()
	w := bufio.NewWriter(union)

	chunks := make([][]byte, len(paths))
	for i := range chunks {
		chunks[i] = e.bufs.get()
		defer e.bufs.put(chunks[i])
	}
	unionChunk := e.bufs.get()
	defer e.bufs.put(unionChunk)

	complete := allTrue(len(paths))
	var read int64

	for offset := int64(0); offset < size; offset += int64(e.chunkSize) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		n := e.chunkSize
		if rem := size - offset; rem < int64(n) {
			n = int(rem)
		}

		for i, f := range readers {
			if _, err := io.ReadFull(f, chunks[i][:n]); err != nil {
				return nil, fmt.Errorf("reading %s at offset %d: %w", paths[i], offset, err)
			}
		}
		read += int64(n) * int64(len(readers))

		u := unionChunk[:n]
		copy(u, chunks[0][:n])
		for i := 1; i < len(chunks); i++ {
			orBytes(u, chunks[i][:n])
		}

		for i := range chunks {
			identical, pos := checkChunk(chunks[i][:n], u)
			if pos >= 0 {
				return &Report{
					Size:  size,
					Bytes: read,
					Conflict: &Conflict{
						Offset: offset + int64(pos),
						Path:   paths[i],
						Got:    chunks[i][pos],
						Want:   u[pos],
					},
				}, nil
			}
			if !identical {
				complete[i] = false
			}
		}

		if _, err := w.Write(u); err != nil {
			return nil, fmt.Errorf("writing union chunk: %w", err)
		}
	}

	if err := w.Flush(); err != nil {
		return nil, fmt.Errorf("flushing union content: %w", err)
	}
	if err := union.Close(); err != nil {
		return nil, fmt.Errorf("closing union content: %w", err)
	}

	keep = true
	return &Report{Size: size, Bytes: read, Complete: complete, union: union.Name()}, nil
}

// commonSize stats every path and returns the shared length, or
// ErrSizeMismatch when the members disagree.
func commonSize(paths []string) (int64, error) {
	var size int64
	for i, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return 0, fmt.Errorf("stat %s: %w", p, err)
		}
		if i == 0 {
			size = info.Size()
			continue
		}
		if info.Size() != size {
			return 0, fmt.Errorf("%w: %s is %d bytes, want %d", ErrSizeMismatch, p, info.Size(), size)
		}
	}
	return size, nil
}

func allTrue(n int) []bool {
	v := make([]bool, n)
	for i := range v {
		v[i] = true
	}
	return v
}

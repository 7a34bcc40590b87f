package merge_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"torrent-combine/core/merge"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSource serves canned content and can cut the reader off partway
// through, standing in for an I/O failure while the union is copied.
type fakeSource struct {
	data      []byte
	size      int64
	failAfter int // bytes served before reads fail, -1 to never fail
}

func (f fakeSource) Size() int64 { return f.size }

func (f fakeSource) Open() (io.ReadCloser, error) {
	if f.failAfter < 0 {
		return io.NopCloser(bytes.NewReader(f.data)), nil
	}
	return io.NopCloser(&failingReader{remaining: f.data[:f.failAfter]}), nil
}

type failingReader struct {
	remaining []byte
}

func (r *failingReader) Read(p []byte) (int, error) {
	if len(r.remaining) == 0 {
		return 0, errors.New("simulated read failure")
	}
	n := copy(p, r.remaining)
	r.remaining = r.remaining[n:]
	return n, nil
}

func goodSource(data []byte) fakeSource {
	return fakeSource{data: data, size: int64(len(data)), failAfter: -1}
}

func TestApplySidecar(t *testing.T) {
	dir := t.TempDir()
	payload := []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	a := writeFile(t, dir, "a.bin", []byte{1, 2, 3, 4, 5, 0, 0, 0, 0, 0})
	b := writeFile(t, dir, "b.bin", []byte{0, 0, 0, 0, 0, 6, 7, 8, 9, 10})

	rep, err := merge.NewEngine(4).Build(context.Background(), []string{a, b})
	require.NoError(t, err)
	defer rep.Close()
	require.False(t, rep.HasConflict())

	applied, err := merge.Apply(context.Background(), rep.Union(), []string{a, b}, merge.ApplyOptions{})
	require.NoError(t, err)

	assert.Equal(t, []string{a + merge.SidecarSuffix, b + merge.SidecarSuffix}, applied)
	assert.Equal(t, payload, readFile(t, a+merge.SidecarSuffix))
	assert.Equal(t, payload, readFile(t, b+merge.SidecarSuffix))

	assert.Equal(t, []byte{1, 2, 3, 4, 5, 0, 0, 0, 0, 0}, readFile(t, a), "sidecar mode must not touch members")
	assert.Equal(t, []byte{0, 0, 0, 0, 0, 6, 7, 8, 9, 10}, readFile(t, b))
}

func TestApplyReplace(t *testing.T) {
	dir := t.TempDir()
	payload := []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	a := writeFile(t, dir, "a.bin", []byte{1, 2, 3, 4, 5, 0, 0, 0, 0, 0})
	b := writeFile(t, dir, "b.bin", []byte{0, 0, 0, 0, 0, 6, 7, 8, 9, 10})

	rep, err := merge.NewEngine(4).Build(context.Background(), []string{a, b})
	require.NoError(t, err)
	defer rep.Close()

	applied, err := merge.Apply(context.Background(), rep.Union(), []string{a, b}, merge.ApplyOptions{Replace: true})
	require.NoError(t, err)

	assert.Equal(t, []string{a, b}, applied)
	assert.Equal(t, payload, readFile(t, a))
	assert.Equal(t, payload, readFile(t, b))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2, "replace mode must not add files")
}

func TestApplyFailingSourceLeavesTargetUntouched(t *testing.T) {
	old := []byte{9, 9, 9, 9}
	src := fakeSource{data: []byte{1, 2, 3, 4, 5, 6, 7, 8}, size: 8, failAfter: 3}

	tests := []struct {
		name string
		opts merge.ApplyOptions
	}{
		{name: "sidecar", opts: merge.ApplyOptions{}},
		{name: "replace", opts: merge.ApplyOptions{Replace: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			target := writeFile(t, dir, "member.bin", old)

			applied, err := merge.Apply(context.Background(), src, []string{target}, tt.opts)
			require.Error(t, err)
			assert.Empty(t, applied)

			assert.Equal(t, old, readFile(t, target))
			assert.NoFileExists(t, target+merge.SidecarSuffix)

			entries, err := os.ReadDir(dir)
			require.NoError(t, err)
			assert.Len(t, entries, 1, "failed applies must not leave temp files behind")
		})
	}
}

func TestApplyShortSource(t *testing.T) {
	dir := t.TempDir()
	target := writeFile(t, dir, "member.bin", []byte{9, 9})

	// The source claims eight bytes but the reader only has five.
	src := fakeSource{data: []byte{1, 2, 3, 4, 5}, size: 8, failAfter: -1}

	_, err := merge.Apply(context.Background(), src, []string{target}, merge.ApplyOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "want 8")
	assert.NoFileExists(t, target+merge.SidecarSuffix)
}

func TestApplyStopsAtFirstFailure(t *testing.T) {
	dir := t.TempDir()
	payload := []byte{1, 2, 3}
	first := writeFile(t, dir, "first.bin", []byte{0, 0, 0})
	missing := filepath.Join(dir, "gone", "second.bin")
	third := writeFile(t, dir, "third.bin", []byte{0, 0, 0})

	applied, err := merge.Apply(context.Background(), goodSource(payload), []string{first, missing, third}, merge.ApplyOptions{})
	require.Error(t, err)

	assert.Equal(t, []string{first + merge.SidecarSuffix}, applied)
	assert.Equal(t, payload, readFile(t, first+merge.SidecarSuffix))
	assert.NoFileExists(t, third+merge.SidecarSuffix)
}

func TestApplyCanceledContext(t *testing.T) {
	dir := t.TempDir()
	target := writeFile(t, dir, "member.bin", []byte{9})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	applied, err := merge.Apply(ctx, goodSource([]byte{1}), []string{target}, merge.ApplyOptions{})
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, applied)
	assert.Equal(t, []byte{9}, readFile(t, target))
}

func TestApplyErrorNamesDestination(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "gone", "member.bin")

	_, err := merge.Apply(context.Background(), goodSource([]byte{1}), []string{target}, merge.ApplyOptions{})
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), merge.SidecarSuffix))
}

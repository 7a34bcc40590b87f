package scan

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// Candidate is a regular file eligible for merging.
type Candidate struct {
	// Path is the location of the file on disk.
	Path string `json:"path"`
	// Size is the file length in bytes.
	Size int64 `json:"size"`
}

// Collect walks the tree rooted at root and returns every regular file
// strictly larger than minSize, in an unspecified order.
//
// An unreadable root is fatal. Unreadable subtrees or entries below the
// root are logged and skipped so one bad directory cannot abort
// discovery of the rest of the tree.
func Collect(root string, minSize int64, log *zap.Logger) ([]Candidate, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("cannot access root %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("root %s is not a directory", root)
	}
	// WalkDir lstats its argument and will not descend into a symlinked
	// root, so hand it the resolved path instead.
	if fi, err := os.Lstat(root); err == nil && fi.Mode()&fs.ModeSymlink != 0 {
		resolved, err := filepath.EvalSymlinks(root)
		if err != nil {
			return nil, fmt.Errorf("cannot resolve root %s: %w", root, err)
		}
		root = resolved
	}

	var candidates []Candidate
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			log.Warn("skipping unreadable path",
				zap.String("path", path),
				zap.Error(err))
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		fi, err := d.Info()
		if err != nil {
			log.Warn("skipping entry without metadata",
				zap.String("path", path),
				zap.Error(err))
			return nil
		}
		if fi.Size() > minSize {
			candidates = append(candidates, Candidate{Path: path, Size: fi.Size()})
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", root, err)
	}
	return candidates, nil
}

// Package fs provides the small amount of direct filesystem access the
// engine needs: untracked files have no diff output, so their content is
// read as raw worktree bytes.
package fs

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// ReadCapped reads the worktree file at root/path, up to cap bytes. Files
// larger than the cap return an error so callers can degrade to a bare
// entry instead of rendering megabytes of synthetic hunk.
func ReadCapped(root, path string, cap int64) ([]byte, error) {
	full := filepath.Join(root, path)

	info, err := os.Stat(full)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s: is a directory", path)
	}
	if info.Size() > cap {
		return nil, fmt.Errorf("%s: %d bytes exceeds cap %d", path, info.Size(), cap)
	}

	f, err := os.Open(full)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	// The size can grow between stat and read; the cap still holds.
	return io.ReadAll(io.LimitReader(f, cap))
}

// Package trash implements the deletion executor: a dry-run reporter and a
// live remover that relocates directories into a holding area.
package trash

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"time"

	"github.com/Jarcho/cargo-ci-precache/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

var _ ports.Remover = (*Trash)(nil)

// Trash removes files in place and relocates directories into a per-run
// holding area instead of deleting them recursively. The rename keeps the
// sweep fast and ensures no scan can ever observe a half-deleted directory;
// the actual recursive removal happens in Flush after the sweep.
type Trash struct {
	hold    string
	counter uint32
}

// New creates the holding area under temp. Directories relocated during one
// run are named by an incrementing counter, so the holding area itself is
// named from the current time to keep successive runs from colliding.
func New(temp string) (*Trash, error) {
	hold := filepath.Join(temp, strconv.FormatInt(time.Now().UnixNano(), 10))
	if err := os.MkdirAll(hold, 0o750); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to create holding area"), "path", hold)
	}
	return &Trash{hold: hold}, nil
}

// Remove deletes the file or relocates the directory at path. A path that no
// longer exists is success. Cross-filesystem renames fail for that item;
// the caller reports and continues.
func (t *Trash) Remove(path string) error {
	info, err := os.Lstat(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil
	case err != nil:
		return zerr.With(zerr.Wrap(err, "failed to stat"), "path", path)
	}

	if !info.IsDir() {
		return t.removeFile(path, info)
	}

	dest := filepath.Join(t.hold, strconv.FormatUint(uint64(t.counter), 10))
	t.counter++
	if err := os.Rename(path, dest); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to relocate directory"), "path", path)
	}
	return nil
}

func (t *Trash) removeFile(path string, info fs.FileInfo) error {
	err := os.Remove(path)
	if err == nil {
		return nil
	}

	// Read-only files fail removal with permission denied on some
	// platforms (notably Windows). Clear the attribute and try once more.
	if errors.Is(err, fs.ErrPermission) {
		if chmodErr := os.Chmod(path, info.Mode().Perm()|0o200); chmodErr == nil {
			if err = os.Remove(path); err == nil {
				return nil
			}
		}
	}
	return zerr.With(zerr.Wrap(err, "failed to remove file"), "path", path)
}

// Flush recursively deletes everything relocated into the holding area,
// bounded-parallel, then the holding area itself. Best effort: the caller
// logs the error and the leftover directory is in temp storage anyway.
func (t *Trash) Flush() error {
	entries, err := os.ReadDir(t.hold)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to read holding area"), "path", t.hold)
	}

	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())
	for _, e := range entries {
		path := filepath.Join(t.hold, e.Name())
		g.Go(func() error {
			return os.RemoveAll(path)
		})
	}
	if err := g.Wait(); err != nil {
		return zerr.Wrap(err, "failed to clear holding area")
	}
	return os.Remove(t.hold)
}

// Hold returns the holding area path. Exposed for tests and diagnostics.
func (t *Trash) Hold() string {
	return t.hold
}

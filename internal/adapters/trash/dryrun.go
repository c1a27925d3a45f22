package trash

import (
	"fmt"
	"io"

	"github.com/Jarcho/cargo-ci-precache/internal/core/ports"
)

var _ ports.Remover = (*DryRun)(nil)

// DryRun reports each path that would be deleted, one per line, and never
// touches the filesystem.
type DryRun struct {
	W io.Writer
}

// NewDryRun creates a reporter writing to w.
func NewDryRun(w io.Writer) *DryRun {
	return &DryRun{W: w}
}

// Remove prints the path.
func (d *DryRun) Remove(path string) error {
	_, err := fmt.Fprintln(d.W, path)
	return err
}

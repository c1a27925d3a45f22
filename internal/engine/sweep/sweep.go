// Package sweep walks the global cargo cache and the per-project target
// directory and hands every entry no longer referenced by the current
// dependency resolution to a remover.
package sweep

import (
	"github.com/Jarcho/cargo-ci-precache/internal/core/ports"
	"go.trai.ch/zerr"
)

// Sweeper runs the cache and target sweeps. Removal failures are per-item:
// they are logged and the sweep keeps going, since every remaining deletion
// is still worth doing.
type Sweeper struct {
	log ports.Logger
}

// New creates a Sweeper.
func New(log ports.Logger) *Sweeper {
	return &Sweeper{log: log}
}

func (s *Sweeper) remove(rm ports.Remover, path string) {
	if err := rm.Remove(path); err != nil {
		s.log.Error(zerr.Wrap(err, "failed to remove cache entry"))
	}
}

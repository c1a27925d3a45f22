package sweep

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/Jarcho/cargo-ci-precache/internal/core/domain"
	"github.com/Jarcho/cargo-ci-precache/internal/core/ports"
	"go.trai.ch/zerr"
)

// ClearCache sweeps the global cache under cargoHome: git checkouts, unpacked
// registry sources and downloaded registry archives. An entry whose directory
// name is absent from the inventory is removed; a two-level entry whose parent
// is still referenced keeps the parent and removes only the stale children.
//
// A cache root that does not exist is fine, the machine simply has no
// dependencies of that kind. The git databases (git/db) are left alone: they
// are cheap to keep and expensive to re-fetch.
func (s *Sweeper) ClearCache(inv *domain.Inventory, cargoHome string, rm ports.Remover) error {
	if err := s.sweepTwoLevel(
		filepath.Join(cargoHome, "git", "checkouts"),
		inv.HasRepo,
		func(parent, child string) bool { _, ok := inv.RepoRevision(parent, child); return ok },
		rm,
	); err != nil {
		return err
	}

	if err := s.sweepTwoLevel(
		filepath.Join(cargoHome, "registry", "src"),
		inv.HasRegistry,
		func(parent, child string) bool { _, ok := inv.RegistryPackage(parent, child); return ok },
		rm,
	); err != nil {
		return err
	}

	// Archives are named {package}.crate under the same registry directory
	// names as the unpacked sources.
	return s.sweepTwoLevel(
		filepath.Join(cargoHome, "registry", "cache"),
		inv.HasRegistry,
		func(parent, child string) bool {
			_, ok := inv.RegistryPackage(parent, strings.TrimSuffix(child, ".crate"))
			return ok
		},
		rm,
	)
}

// sweepTwoLevel prunes a root laid out as {root}/{parent}/{child}. Unknown
// parents are removed whole; known parents keep only their known children.
func (s *Sweeper) sweepTwoLevel(root string, hasParent func(string) bool, hasChild func(parent, child string) bool, rm ports.Remover) error {
	entries, err := os.ReadDir(root)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil
	case err != nil:
		return zerr.With(zerr.Wrap(err, "failed to read cache root"), "path", root)
	}

	for _, parent := range entries {
		parentPath := filepath.Join(root, parent.Name())
		if !hasParent(parent.Name()) {
			s.remove(rm, parentPath)
			continue
		}

		children, err := os.ReadDir(parentPath)
		if err != nil {
			return zerr.With(zerr.Wrap(err, "failed to read cache entry"), "path", parentPath)
		}
		for _, child := range children {
			if !hasChild(parent.Name(), child.Name()) {
				s.remove(rm, filepath.Join(parentPath, child.Name()))
			}
		}
	}
	return nil
}

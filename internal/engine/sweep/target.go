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

// ClearTarget sweeps target/debug down to the artifacts still reachable from
// the current resolution.
//
// Staleness is decided in two steps. Dep-info files under deps/ and in the
// build script directories under build/ seed the decision: a unit whose first
// source path no longer resolves to a current cache entry is outdated, and a
// unit whose package resolved but with a different feature set than the
// stored record is outdated too. The seeds then
// propagate through the fingerprint reverse-dependency graph, so everything
// built on top of an outdated unit is swept with it.
//
// deps/ and .fingerprint/ must exist, a target directory without them has
// nothing trustworthy to sweep. build/ may be missing when no package has a
// build script.
func (s *Sweeper) ClearTarget(meta *domain.Metadata, inv *domain.Inventory, cargoHome string, rm ports.Remover) error {
	debugDir := filepath.Join(meta.TargetDir, "debug")
	buildDir := filepath.Join(debugDir, "build")
	depsDir := filepath.Join(debugDir, "deps")
	fingerprintDir := filepath.Join(debugDir, ".fingerprint")

	if err := s.sweepTopLevel(debugDir, rm); err != nil {
		return err
	}

	seeds := newSeedScan(inv, meta, cargoHome)
	if err := seeds.scanDeps(depsDir); err != nil {
		return err
	}
	if err := seeds.scanBuild(buildDir); err != nil {
		return err
	}

	units, err := loadUnits(fingerprintDir)
	if err != nil {
		return err
	}

	marked := domain.NewGraph(units).Mark(func(u domain.Unit) bool {
		if seeds.outdated[u.MetaHash] {
			return true
		}
		want, ok := seeds.current[u.MetaHash]
		return ok && want != u.Record.Features
	})

	for _, dir := range []string{buildDir, depsDir, fingerprintDir} {
		if err := s.sweepMarked(dir, marked, rm); err != nil {
			return err
		}
	}
	return nil
}

// sweepTopLevel removes the plain files at the top of target/debug, the final
// linked binaries and their dep-info. They are relinked from deps/ on the next
// build, so keeping them buys nothing. .cargo-lock stays, cargo owns it.
func (s *Sweeper) sweepTopLevel(debugDir string, rm ports.Remover) error {
	entries, err := os.ReadDir(debugDir)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to read target directory"), "path", debugDir)
	}
	for _, e := range entries {
		if e.IsDir() || e.Name() == ".cargo-lock" {
			continue
		}
		s.remove(rm, filepath.Join(debugDir, e.Name()))
	}
	return nil
}

// seedScan classifies dep-info files by their first source path: metadata
// hashes whose source no longer resolves land in outdated, and for those that
// do resolve, current records the feature string the resolution activates for
// the owning package.
type seedScan struct {
	inv       *domain.Inventory
	meta      *domain.Metadata
	cargoHome string

	outdated map[string]bool
	current  map[string]string
}

func newSeedScan(inv *domain.Inventory, meta *domain.Metadata, cargoHome string) *seedScan {
	return &seedScan{
		inv:       inv,
		meta:      meta,
		cargoHome: cargoHome,
		outdated:  make(map[string]bool),
		current:   make(map[string]string),
	}
}

func (sc *seedScan) classify(hash, path string) error {
	contents, err := os.ReadFile(path)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to read dep-info file"), "path", path)
	}
	dep, err := domain.FirstDep(string(contents))
	if err != nil {
		return zerr.With(err, "path", path)
	}

	if id, ok := sc.inv.LookupDep(sc.cargoHome, dep); ok {
		sc.current[hash] = sc.meta.Features[id]
	} else {
		sc.outdated[hash] = true
	}
	return nil
}

// scanDeps seeds from the dep-info files under deps/, keyed by each file's
// own hash suffix.
func (sc *seedScan) scanDeps(depsDir string) error {
	entries, err := os.ReadDir(depsDir)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to read deps directory"), "path", depsDir)
	}

	for _, e := range entries {
		if filepath.Ext(e.Name()) != ".d" {
			continue
		}
		hash := domain.MetaHashSuffix(strings.TrimSuffix(e.Name(), ".d"))
		if err := sc.classify(hash, filepath.Join(depsDir, e.Name())); err != nil {
			return err
		}
	}
	return nil
}

// scanBuild seeds from the compiled build scripts under build/*/, keyed by
// the unit directory's hash suffix since the dep-info file inside keeps the
// build script's own name.
func (sc *seedScan) scanBuild(buildDir string) error {
	units, err := os.ReadDir(buildDir)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil
	case err != nil:
		return zerr.With(zerr.Wrap(err, "failed to read build directory"), "path", buildDir)
	}

	for _, unit := range units {
		if !unit.IsDir() {
			continue
		}
		unitDir := filepath.Join(buildDir, unit.Name())
		files, err := os.ReadDir(unitDir)
		if err != nil {
			return zerr.With(zerr.Wrap(err, "failed to read build unit directory"), "path", unitDir)
		}

		hash := domain.MetaHashSuffix(unit.Name())
		for _, f := range files {
			if filepath.Ext(f.Name()) != ".d" {
				continue
			}
			if err := sc.classify(hash, filepath.Join(unitDir, f.Name())); err != nil {
				return err
			}
		}
	}
	return nil
}

// sweepMarked removes every entry of dir whose metadata hash suffix is in the
// marked set.
func (s *Sweeper) sweepMarked(dir string, marked map[string]bool, rm ports.Remover) error {
	entries, err := os.ReadDir(dir)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil
	case err != nil:
		return zerr.With(zerr.Wrap(err, "failed to read target directory"), "path", dir)
	}

	for _, e := range entries {
		stem := strings.TrimSuffix(e.Name(), filepath.Ext(e.Name()))
		if marked[domain.MetaHashSuffix(stem)] {
			s.remove(rm, filepath.Join(dir, e.Name()))
		}
	}
	return nil
}

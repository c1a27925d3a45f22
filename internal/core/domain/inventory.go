package domain

import (
	"path/filepath"
	"strings"
)

// Inventory is the set of global-cache entries referenced by the current
// dependency resolution, keyed the way they appear on disk. It is built once
// from the resolved packages and immutable afterwards: presence means "still
// needed", absence means "safe to delete".
type Inventory struct {
	// registry directory name -> package directory name ({name}-{version}) -> package id.
	registry map[string]map[string]string
	// repository directory name -> revision directory name -> package id.
	git map[string]map[string]string
}

// NewInventory derives the inventory from the resolved package set.
//
// Registry and git packages contribute the parent and grandparent directory
// names of their manifest path, which is how cargo lays the cache out
// ($CARGO_HOME/registry/src/{registry}/{package}/Cargo.toml and
// $CARGO_HOME/git/checkouts/{repo}/{rev}/.../Cargo.toml). Local packages have
// no cache presence and contribute nothing. A manifest path too shallow to
// yield both components is skipped; one unusable record must not abort the
// surrounding run.
func NewInventory(pkgs []Package) *Inventory {
	inv := &Inventory{
		registry: make(map[string]map[string]string),
		git:      make(map[string]map[string]string),
	}
	for i := range pkgs {
		p := &pkgs[i]

		var dest map[string]map[string]string
		switch p.SourceKind() {
		case SourceRegistry:
			dest = inv.registry
		case SourceGit:
			dest = inv.git
		case SourceLocal:
			continue
		}

		child := filepath.Dir(p.ManifestPath)
		parent := filepath.Dir(child)
		if child == p.ManifestPath || parent == child {
			continue
		}
		parentName := filepath.Base(parent)
		childName := filepath.Base(child)
		if parentName == string(filepath.Separator) || parentName == "." {
			continue
		}

		m := dest[parentName]
		if m == nil {
			m = make(map[string]string)
			dest[parentName] = m
		}
		m[childName] = p.ID
	}
	return inv
}

// HasRegistry reports whether any current package comes from the named
// registry directory.
func (inv *Inventory) HasRegistry(registry string) bool {
	_, ok := inv.registry[registry]
	return ok
}

// RegistryPackage returns the package id for a registry/package directory
// pair, if that package is currently selected.
func (inv *Inventory) RegistryPackage(registry, pkg string) (string, bool) {
	id, ok := inv.registry[registry][pkg]
	return id, ok
}

// HasRepo reports whether any current package comes from the named repository
// directory.
func (inv *Inventory) HasRepo(repo string) bool {
	_, ok := inv.git[repo]
	return ok
}

// RepoRevision returns the package id for a repository/revision directory
// pair, if that revision is currently checked out by the resolution.
func (inv *Inventory) RepoRevision(repo, rev string) (string, bool) {
	id, ok := inv.git[repo][rev]
	return id, ok
}

// LookupDep classifies a source path from a dep-info file against the
// inventory. Paths under $CARGO_HOME/git/checkouts/{repo}/{rev}/... or
// $CARGO_HOME/registry/src/{registry}/{package}/... resolve to the owning
// package id when that entry is current. Anything else, including sources
// outside the cargo home entirely, is reported as not current.
func (inv *Inventory) LookupDep(cargoHome, dep string) (string, bool) {
	rel, err := filepath.Rel(cargoHome, filepath.Clean(dep))
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}

	parts := strings.Split(rel, string(filepath.Separator))
	if len(parts) < 4 {
		return "", false
	}
	switch parts[0] {
	case "git":
		return inv.RepoRevision(parts[2], parts[3])
	case "registry":
		return inv.RegistryPackage(parts[2], parts[3])
	default:
		return "", false
	}
}

// Package domain contains the core domain models for cache pruning: the
// dependency-resolution metadata view, the cache inventory, fingerprint
// records and the staleness graph built from them.
package domain

import "strings"

// SourceKind classifies where a resolved package's sources come from.
type SourceKind int

const (
	// SourceLocal is a path dependency or the workspace itself. Local
	// packages have no presence in the global cache.
	SourceLocal SourceKind = iota
	// SourceRegistry is a package downloaded from a registry.
	SourceRegistry
	// SourceGit is a package checked out from a git repository.
	SourceGit
)

// Package is one resolved package from `cargo metadata`.
type Package struct {
	// ID is cargo's package identity string.
	ID string
	// Source is the raw source descriptor. Empty for local packages.
	Source string
	// ManifestPath is the absolute path to the package's Cargo.toml.
	ManifestPath string
}

// SourceKind derives the package's source classification from the source
// descriptor prefix.
func (p *Package) SourceKind() SourceKind {
	switch {
	case strings.HasPrefix(p.Source, "registry+"):
		return SourceRegistry
	case strings.HasPrefix(p.Source, "git+"):
		return SourceGit
	default:
		return SourceLocal
	}
}

// Metadata is the typed view over one dependency resolution. It is derived
// once per run and read-only afterwards.
type Metadata struct {
	// Packages are all packages selected by the current resolution.
	Packages []Package
	// TargetDir is the build output root.
	TargetDir string
	// Features maps a package id to its activated feature set, already
	// serialized with FeatureString.
	Features map[string]string
}

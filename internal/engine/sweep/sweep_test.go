package sweep_test

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Jarcho/cargo-ci-precache/internal/core/domain"
	"github.com/stretchr/testify/require"
)

const registryDir = "index.crates.io-6f17d22bba15001f"

// recorder collects removal requests without touching the filesystem.
type recorder struct {
	removed map[string]bool
}

func newRecorder() *recorder {
	return &recorder{removed: make(map[string]bool)}
}

func (r *recorder) Remove(path string) error {
	r.removed[path] = true
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(string) {}
func (nopLogger) Warn(string) {}
func (nopLogger) Error(error) {}

// newRecord builds a fingerprint record whose canonical hash is unique per
// seed, so units can be linked together by their real hashes.
func newRecord(seed uint64, features string, deps ...domain.DepFingerprint) *domain.Fingerprint {
	return &domain.Fingerprint{
		Rustc:    17,
		Features: features,
		Path:     seed,
		Deps:     deps,
		Local: []domain.LocalFingerprint{
			{Kind: domain.LocalCheckDepInfo, DepInfo: "dep-lib-x"},
		},
	}
}

func dependOn(name string, rec *domain.Fingerprint) domain.DepFingerprint {
	return domain.DepFingerprint{PkgID: 1, Name: name, Public: true, Fingerprint: rec.Hash()}
}

// recordJSON renders a record in the on-disk format, deps as tuples and local
// triggers externally tagged.
func recordJSON(f *domain.Fingerprint) string {
	deps := make([]string, len(f.Deps))
	for i, d := range f.Deps {
		deps[i] = fmt.Sprintf(`[%d,%q,%t,%d]`, d.PkgID, d.Name, d.Public, d.Fingerprint)
	}
	return fmt.Sprintf(
		`{"rustc":%d,"features":%q,"target":%d,"profile":%d,"path":%d,"deps":[%s],"local":[{"CheckDepInfo":{"dep_info":%q}}],"rustflags":[],"metadata":%d,"config":%d}`,
		f.Rustc, f.Features, f.Target, f.Profile, f.Path,
		strings.Join(deps, ","), f.Local[0].DepInfo, f.Metadata, f.Config,
	)
}

// fixture is a synthetic cargo home plus target directory, populated through
// the helpers below.
type fixture struct {
	t         *testing.T
	cargoHome string
	meta      *domain.Metadata
}

func newFixture(t *testing.T) *fixture {
	f := &fixture{
		t:         t,
		cargoHome: t.TempDir(),
		meta: &domain.Metadata{
			TargetDir: t.TempDir(),
			Features:  make(map[string]string),
		},
	}
	for _, dir := range []string{"deps", ".fingerprint", "build"} {
		require.NoError(t, os.MkdirAll(filepath.Join(f.debugDir(), dir), 0o755))
	}
	return f
}

func (f *fixture) debugDir() string {
	return filepath.Join(f.meta.TargetDir, "debug")
}

func (f *fixture) inventory() *domain.Inventory {
	return domain.NewInventory(f.meta.Packages)
}

// addRegistryPackage registers a resolved registry package and returns the
// source path its dep-info files should reference.
func (f *fixture) addRegistryPackage(pkg, features string) (srcPath string) {
	id := "registry+https://github.com/rust-lang/crates.io-index#" + pkg
	dir := filepath.Join(f.cargoHome, "registry", "src", registryDir, pkg)
	require.NoError(f.t, os.MkdirAll(filepath.Join(dir, "src"), 0o755))
	srcPath = filepath.Join(dir, "src", "lib.rs")
	require.NoError(f.t, os.WriteFile(srcPath, nil, 0o644))

	f.meta.Packages = append(f.meta.Packages, domain.Package{
		ID:           id,
		Source:       "registry+https://github.com/rust-lang/crates.io-index",
		ManifestPath: filepath.Join(dir, "Cargo.toml"),
	})
	f.meta.Features[id] = features
	return srcPath
}

// stalePath is a source path under the cargo home for a package version the
// resolution no longer selects. Nothing needs to exist on disk, seed
// classification only inspects the path.
func (f *fixture) stalePath(pkg string) string {
	return filepath.Join(f.cargoHome, "registry", "src", registryDir, pkg, "src", "lib.rs")
}

// addUnit writes the on-disk footprint of one built unit: its dep-info file
// and compiled artifact under deps/, and its fingerprint record.
func (f *fixture) addUnit(name, hash string, rec *domain.Fingerprint, srcPath string) {
	debug := f.debugDir()
	depInfo := fmt.Sprintf("%s: %s\n", filepath.Join(debug, "deps", "lib"+name+".rmeta"), srcPath)
	require.NoError(f.t, os.WriteFile(filepath.Join(debug, "deps", name+"-"+hash+".d"), []byte(depInfo), 0o644))
	require.NoError(f.t, os.WriteFile(filepath.Join(debug, "deps", "lib"+name+"-"+hash+".rlib"), []byte("x"), 0o644))

	unitDir := filepath.Join(debug, ".fingerprint", name+"-"+hash)
	require.NoError(f.t, os.MkdirAll(unitDir, 0o755))
	require.NoError(f.t, os.WriteFile(filepath.Join(unitDir, "lib-"+name+".json"), []byte(recordJSON(rec)), 0o644))
}

func (f *fixture) unitPaths(name, hash string) []string {
	debug := f.debugDir()
	return []string{
		filepath.Join(debug, "deps", name+"-"+hash+".d"),
		filepath.Join(debug, "deps", "lib"+name+"-"+hash+".rlib"),
		filepath.Join(debug, ".fingerprint", name+"-"+hash),
	}
}

func requireSwept(t *testing.T, rec *recorder, paths ...string) {
	t.Helper()
	for _, p := range paths {
		require.True(t, rec.removed[p], "expected %s to be removed", p)
	}
}

func requireKept(t *testing.T, rec *recorder, paths ...string) {
	t.Helper()
	for _, p := range paths {
		require.False(t, rec.removed[p], "expected %s to be kept", p)
	}
}

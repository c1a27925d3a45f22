package app_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/Jarcho/cargo-ci-precache/internal/app"
	"github.com/Jarcho/cargo-ci-precache/internal/core/domain"
	"github.com/Jarcho/cargo-ci-precache/internal/core/ports"
	"github.com/Jarcho/cargo-ci-precache/internal/engine/sweep"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	meta  *domain.Metadata
	query ports.MetadataQuery
}

func (f *fakeSource) Load(_ context.Context, query ports.MetadataQuery) (*domain.Metadata, error) {
	f.query = query
	return f.meta, nil
}

type nopLogger struct{}

func (nopLogger) Info(string) {}
func (nopLogger) Warn(string) {}
func (nopLogger) Error(error) {}

// setupCache builds a cargo home with one current registry package and one
// stale one.
func setupCache(t *testing.T) (cargoHome, stale string, meta *domain.Metadata) {
	t.Helper()
	cargoHome = t.TempDir()
	const registry = "index.crates.io-6f17d22bba15001f"

	current := filepath.Join(cargoHome, "registry", "src", registry, "serde-1.0.0")
	stale = filepath.Join(cargoHome, "registry", "src", registry, "old-0.1.0")
	require.NoError(t, os.MkdirAll(current, 0o755))
	require.NoError(t, os.MkdirAll(stale, 0o755))

	meta = &domain.Metadata{
		Packages: []domain.Package{{
			ID:           "registry+https://github.com/rust-lang/crates.io-index#serde-1.0.0",
			Source:       "registry+https://github.com/rust-lang/crates.io-index",
			ManifestPath: filepath.Join(current, "Cargo.toml"),
		}},
		Features: map[string]string{},
	}
	return cargoHome, stale, meta
}

func TestClearCache_DryRunReportsWithoutDeleting(t *testing.T) {
	cargoHome, stale, meta := setupCache(t)

	var buf bytes.Buffer
	a := app.New(&fakeSource{meta: meta}, sweep.New(nopLogger{}), nopLogger{}, domain.Settings{}, app.WithOutput(&buf))

	err := a.ClearCache(context.Background(), app.Options{DryRun: true, CargoHome: cargoHome})
	require.NoError(t, err)

	require.Contains(t, buf.String(), stale)
	require.DirExists(t, stale)
}

func TestClearCache_RemovesStaleEntries(t *testing.T) {
	cargoHome, stale, meta := setupCache(t)

	a := app.New(&fakeSource{meta: meta}, sweep.New(nopLogger{}), nopLogger{}, domain.Settings{})

	err := a.ClearCache(context.Background(), app.Options{CargoHome: cargoHome, Temp: t.TempDir()})
	require.NoError(t, err)

	require.NoDirExists(t, stale)
	require.DirExists(t, filepath.Dir(stale))
}

func TestClearCache_SettingsDryRun(t *testing.T) {
	cargoHome, stale, meta := setupCache(t)

	var buf bytes.Buffer
	a := app.New(&fakeSource{meta: meta}, sweep.New(nopLogger{}), nopLogger{}, domain.Settings{DryRun: true}, app.WithOutput(&buf))

	err := a.ClearCache(context.Background(), app.Options{CargoHome: cargoHome})
	require.NoError(t, err)
	require.DirExists(t, stale)
}

func TestClearCache_ForwardsQuery(t *testing.T) {
	cargoHome, _, meta := setupCache(t)

	source := &fakeSource{meta: meta}
	a := app.New(source, sweep.New(nopLogger{}), nopLogger{}, domain.Settings{})

	query := ports.MetadataQuery{ManifestPath: "sub/Cargo.toml", AllFeatures: true}
	err := a.ClearCache(context.Background(), app.Options{Query: query, CargoHome: cargoHome, Temp: t.TempDir()})
	require.NoError(t, err)
	require.Equal(t, query, source.query)
}

func TestClearTarget(t *testing.T) {
	cargoHome, _, meta := setupCache(t)
	meta.TargetDir = t.TempDir()

	debug := filepath.Join(meta.TargetDir, "debug")
	for _, dir := range []string{"deps", ".fingerprint"} {
		require.NoError(t, os.MkdirAll(filepath.Join(debug, dir), 0o755))
	}
	record := `{"rustc":1,"features":"[]","target":0,"profile":0,"path":2,"deps":[],"local":[{"Precalculated":"x"}],"rustflags":[],"metadata":0,"config":0}`
	unitDir := filepath.Join(debug, ".fingerprint", "home-aaaa1111")
	require.NoError(t, os.MkdirAll(unitDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(unitDir, "lib-home.json"), []byte(record), 0o644))
	depInfo := filepath.Join(debug, "deps", "home-aaaa1111.d")
	require.NoError(t, os.WriteFile(depInfo, []byte("lib.rmeta: /src/main.rs\n"), 0o644))

	a := app.New(&fakeSource{meta: meta}, sweep.New(nopLogger{}), nopLogger{}, domain.Settings{})

	err := a.ClearTarget(context.Background(), app.Options{CargoHome: cargoHome, Temp: t.TempDir()})
	require.NoError(t, err)

	require.NoFileExists(t, depInfo)
	require.NoDirExists(t, unitDir)
}

// Package app implements the application layer for the cache pruner.
package app

import (
	"context"
	"io"
	"os"

	"github.com/Jarcho/cargo-ci-precache/internal/adapters/cargo"
	"github.com/Jarcho/cargo-ci-precache/internal/adapters/trash"
	"github.com/Jarcho/cargo-ci-precache/internal/core/domain"
	"github.com/Jarcho/cargo-ci-precache/internal/core/ports"
	"github.com/Jarcho/cargo-ci-precache/internal/engine/sweep"
	"go.trai.ch/zerr"
)

// Options carries the per-invocation choices from the CLI. Zero values fall
// back to the loaded settings file.
type Options struct {
	Query     ports.MetadataQuery
	DryRun    bool
	Temp      string
	CargoHome string
}

// App wires the metadata source and the sweeper into the two user-facing
// operations.
type App struct {
	source   ports.MetadataSource
	sweeper  *sweep.Sweeper
	log      ports.Logger
	settings domain.Settings
	out      io.Writer
}

// New creates a new App instance.
func New(source ports.MetadataSource, sweeper *sweep.Sweeper, log ports.Logger, settings domain.Settings, opts ...func(*App)) *App {
	a := &App{
		source:   source,
		sweeper:  sweeper,
		log:      log,
		settings: settings,
		out:      os.Stdout,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// WithOutput redirects the dry-run report. Used for testing.
func WithOutput(w io.Writer) func(*App) {
	return func(a *App) { a.out = w }
}

// ClearCache prunes the global cargo cache down to the entries the current
// resolution references.
func (a *App) ClearCache(ctx context.Context, opts Options) error {
	meta, cargoHome, err := a.resolve(ctx, opts)
	if err != nil {
		return err
	}

	rm, flush, err := a.newRemover(opts)
	if err != nil {
		return err
	}
	defer flush()

	return a.sweeper.ClearCache(domain.NewInventory(meta.Packages), cargoHome, rm)
}

// ClearTarget prunes the project's target directory down to the artifacts
// still reachable from the current resolution.
func (a *App) ClearTarget(ctx context.Context, opts Options) error {
	meta, cargoHome, err := a.resolve(ctx, opts)
	if err != nil {
		return err
	}

	rm, flush, err := a.newRemover(opts)
	if err != nil {
		return err
	}
	defer flush()

	return a.sweeper.ClearTarget(meta, domain.NewInventory(meta.Packages), cargoHome, rm)
}

func (a *App) resolve(ctx context.Context, opts Options) (*domain.Metadata, string, error) {
	meta, err := a.source.Load(ctx, opts.Query)
	if err != nil {
		return nil, "", zerr.Wrap(err, "failed to load dependency metadata")
	}

	home := opts.CargoHome
	if home == "" {
		home = a.settings.CargoHome
	}
	cargoHome, err := cargo.Home(home)
	if err != nil {
		return nil, "", err
	}
	return meta, cargoHome, nil
}

// newRemover picks the deletion executor for this run. Dry runs report to
// stdout; live runs relocate directories into a holding area under the temp
// directory and flush it after the sweep.
func (a *App) newRemover(opts Options) (ports.Remover, func(), error) {
	if opts.DryRun || a.settings.DryRun {
		return trash.NewDryRun(a.out), func() {}, nil
	}

	temp := opts.Temp
	if temp == "" {
		temp = a.settings.Temp
	}
	if temp == "" {
		temp = os.TempDir()
	}
	if temp == "" {
		return nil, nil, domain.ErrNoTempDir
	}

	tr, err := trash.New(temp)
	if err != nil {
		return nil, nil, err
	}
	flush := func() {
		if err := tr.Flush(); err != nil {
			a.log.Error(zerr.Wrap(err, "failed to flush holding area"))
		}
	}
	return tr, flush, nil
}

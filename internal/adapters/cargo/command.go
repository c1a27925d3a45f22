// Package cargo obtains dependency-resolution metadata by invoking the
// cargo binary, and resolves the cargo home directory.
package cargo

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/Jarcho/cargo-ci-precache/internal/core/domain"
	"github.com/Jarcho/cargo-ci-precache/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.MetadataSource = (*MetadataCommand)(nil)

// MetadataCommand runs `cargo metadata --format-version 1` and decodes its
// output into the domain model.
type MetadataCommand struct{}

// NewMetadataCommand creates a new MetadataCommand.
func NewMetadataCommand() *MetadataCommand {
	return &MetadataCommand{}
}

// Load executes the metadata query. The binary comes from $CARGO when set,
// matching how cargo invokes subcommands, so the same toolchain that built
// the cache answers the query.
func (c *MetadataCommand) Load(ctx context.Context, query ports.MetadataQuery) (*domain.Metadata, error) {
	bin := os.Getenv("CARGO")
	if bin == "" {
		bin = "cargo"
	}

	args := []string{"metadata", "--format-version", "1"}
	if query.ManifestPath != "" {
		args = append(args, "--manifest-path", query.ManifestPath)
	}
	if query.Features != "" {
		args = append(args, "--features", query.Features)
	}
	if query.FilterPlatform != "" {
		args = append(args, "--filter-platform", query.FilterPlatform)
	}
	if query.AllFeatures {
		args = append(args, "--all-features")
	}
	if query.NoDefaultFeatures {
		args = append(args, "--no-default-features")
	}

	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Stdin = nil
	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil, zerr.With(zerr.With(ErrExec(err), "exit_code", exitErr.ExitCode()), "stderr", string(exitErr.Stderr))
		}
		return nil, ErrExec(err)
	}

	meta, err := decodeMetadata(out)
	if err != nil {
		return nil, zerr.Wrap(err, "error parsing cargo metadata")
	}
	return meta, nil
}

// ErrExec wraps a subprocess failure with the metadata sentinel.
func ErrExec(err error) error {
	return zerr.Wrap(err, domain.ErrMetadataCommand.Error())
}

// Home resolves the cargo home directory: the override if given, else
// $CARGO_HOME, else ~/.cargo.
func Home(override string) (string, error) {
	if override != "" {
		return override, nil
	}
	if env := os.Getenv("CARGO_HOME"); env != "" {
		return env, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", zerr.Wrap(err, "cannot resolve cargo home")
	}
	return filepath.Join(home, ".cargo"), nil
}

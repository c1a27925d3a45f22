package ports

import (
	"context"

	"github.com/Jarcho/cargo-ci-precache/internal/core/domain"
)

// MetadataQuery carries the pass-through options for the dependency
// resolution query.
type MetadataQuery struct {
	// ManifestPath points at Cargo.toml; empty means the current directory.
	ManifestPath string
	// Features is a comma separated list of features to activate.
	Features string
	// FilterPlatform restricts the resolution to one target triple.
	FilterPlatform    string
	AllFeatures       bool
	NoDefaultFeatures bool
}

// MetadataSource obtains dependency-resolution metadata from the build tool.
//
//go:generate go run go.uber.org/mock/mockgen -source=metadata.go -destination=mocks/mock_metadata.go -package=mocks
type MetadataSource interface {
	Load(ctx context.Context, query MetadataQuery) (*domain.Metadata, error)
}

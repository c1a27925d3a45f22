package cargo

import (
	"encoding/json"

	"github.com/Jarcho/cargo-ci-precache/internal/core/domain"
	"go.trai.ch/zerr"
)

// rawMetadata mirrors the subset of `cargo metadata --format-version 1`
// output this tool consumes.
type rawMetadata struct {
	Packages        []rawPackage `json:"packages"`
	TargetDirectory string       `json:"target_directory"`
	Resolve         *rawResolve  `json:"resolve"`
}

type rawPackage struct {
	ID           string `json:"id"`
	Source       string `json:"source"`
	ManifestPath string `json:"manifest_path"`
}

type rawResolve struct {
	Nodes []rawNode `json:"nodes"`
}

type rawNode struct {
	ID       string   `json:"id"`
	Features []string `json:"features"`
}

func decodeMetadata(data []byte) (*domain.Metadata, error) {
	var raw rawMetadata
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, zerr.Wrap(err, "undecodable metadata document")
	}

	meta := &domain.Metadata{
		Packages:  make([]domain.Package, len(raw.Packages)),
		TargetDir: raw.TargetDirectory,
		Features:  make(map[string]string),
	}
	for i, p := range raw.Packages {
		meta.Packages[i] = domain.Package{
			ID:           p.ID,
			Source:       p.Source,
			ManifestPath: p.ManifestPath,
		}
	}
	if raw.Resolve != nil {
		for _, n := range raw.Resolve.Nodes {
			meta.Features[n.ID] = domain.FeatureString(n.Features)
		}
	}
	return meta, nil
}

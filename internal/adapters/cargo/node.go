package cargo

import (
	"context"

	"github.com/Jarcho/cargo-ci-precache/internal/core/ports"
	"github.com/grindlemire/graft"
)

const NodeID graft.ID = "adapter.cargo_metadata"

func init() {
	graft.Register(graft.Node[ports.MetadataSource]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.MetadataSource, error) {
			return NewMetadataCommand(), nil
		},
	})
}

package config

import (
	"context"

	"github.com/Jarcho/cargo-ci-precache/internal/core/domain"
	"github.com/grindlemire/graft"
)

const NodeID graft.ID = "adapter.settings"

func init() {
	graft.Register(graft.Node[domain.Settings]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (domain.Settings, error) {
			return NewLoader().Load(".")
		},
	})
}

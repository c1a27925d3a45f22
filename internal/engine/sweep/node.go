package sweep

import (
	"context"

	"github.com/Jarcho/cargo-ci-precache/internal/adapters/logger"
	"github.com/Jarcho/cargo-ci-precache/internal/core/ports"
	"github.com/grindlemire/graft"
)

const NodeID graft.ID = "engine.sweeper"

func init() {
	graft.Register(graft.Node[*Sweeper]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (*Sweeper, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return New(log), nil
		},
	})
}

package app

import (
	"context"

	"github.com/Jarcho/cargo-ci-precache/internal/adapters/cargo"
	"github.com/Jarcho/cargo-ci-precache/internal/adapters/config"
	"github.com/Jarcho/cargo-ci-precache/internal/adapters/logger"
	"github.com/Jarcho/cargo-ci-precache/internal/core/domain"
	"github.com/Jarcho/cargo-ci-precache/internal/core/ports"
	"github.com/Jarcho/cargo-ci-precache/internal/engine/sweep"
	"github.com/grindlemire/graft"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			cargo.NodeID,
			sweep.NodeID,
			logger.NodeID,
			config.NodeID,
		},
		Run: func(ctx context.Context) (*App, error) {
			source, err := graft.Dep[ports.MetadataSource](ctx)
			if err != nil {
				return nil, err
			}

			sweeper, err := graft.Dep[*sweep.Sweeper](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			settings, err := graft.Dep[domain.Settings](ctx)
			if err != nil {
				return nil, err
			}

			return New(source, sweeper, log, settings), nil
		},
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			application, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return &Components{App: application, Logger: log}, nil
		},
	})
}

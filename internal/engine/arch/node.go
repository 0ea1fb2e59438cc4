package arch

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/sketchsense/internal/adapters/logger" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/sketchsense/internal/core/ports"
)

// NodeID is the unique identifier for the architecture resolver Graft node.
const NodeID graft.ID = "engine.arch"

func init() {
	graft.Register(graft.Node[*Resolver]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (*Resolver, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewResolver(log), nil
		},
	})
}

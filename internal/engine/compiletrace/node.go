package compiletrace

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/sketchsense/internal/adapters/logger" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/sketchsense/internal/core/ports"
)

// NodeID is the unique identifier for the trace parser Graft node.
const NodeID graft.ID = "engine.compiletrace"

func init() {
	graft.Register(graft.Node[*Parser]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (*Parser, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewParser(log), nil
		},
	})
}

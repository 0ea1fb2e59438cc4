package macros

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/sketchsense/internal/adapters/logger"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/sketchsense/internal/adapters/shell"     //nolint:depguard // Wired in engine wiring
	"go.trai.ch/sketchsense/internal/adapters/telemetry" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/sketchsense/internal/core/ports"
)

// NodeID is the unique identifier for the define discovery Graft node.
const NodeID graft.ID = "engine.macros"

func init() {
	graft.Register(graft.Node[*Discoverer]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{shell.NodeID, logger.NodeID, telemetry.TracerNodeID},
		Run: func(ctx context.Context) (*Discoverer, error) {
			runner, err := graft.Dep[ports.CommandRunner](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}
			return NewDiscoverer(runner, log, tracer), nil
		},
	})
}

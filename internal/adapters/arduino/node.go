package arduino

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/sketchsense/internal/adapters/logger"
	"go.trai.ch/sketchsense/internal/adapters/shell"
	"go.trai.ch/sketchsense/internal/core/ports"
)

// NodeID is the unique identifier for the sketch builder Graft node.
const NodeID graft.ID = "adapter.builder"

func init() {
	graft.Register(graft.Node[ports.SketchBuilder]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{shell.NodeID, logger.NodeID},
		Run: func(ctx context.Context) (ports.SketchBuilder, error) {
			runner, err := graft.Dep[ports.CommandRunner](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewBuilder(runner, log), nil
		},
	})
}

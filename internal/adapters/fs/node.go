package fs

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/sketchsense/internal/adapters/logger"
	"go.trai.ch/sketchsense/internal/core/ports"
)

const (
	WalkerNodeID graft.ID = "adapter.fs.walker"
	StagerNodeID graft.ID = "adapter.fs.stager"
)

func init() {
	graft.Register(graft.Node[*Walker]{
		ID:        WalkerNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Walker, error) {
			return NewWalker(), nil
		},
	})

	graft.Register(graft.Node[ports.SketchStager]{
		ID:        StagerNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{WalkerNodeID, logger.NodeID},
		Run: func(ctx context.Context) (ports.SketchStager, error) {
			walker, err := graft.Dep[*Walker](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewStager(walker, log), nil
		},
	})
}

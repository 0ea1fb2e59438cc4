package config

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/sketchsense/internal/adapters/logger"
	"go.trai.ch/sketchsense/internal/core/ports"
)

const (
	SettingsNodeID graft.ID = "adapter.settings_loader"
	BoardNodeID    graft.ID = "adapter.board_loader"
)

func init() {
	graft.Register(graft.Node[ports.SettingsLoader]{
		ID:        SettingsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.SettingsLoader, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewSettingsLoader(log), nil
		},
	})

	graft.Register(graft.Node[ports.BoardConfigLoader]{
		ID:        BoardNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.BoardConfigLoader, error) {
			return NewBoardLoader(), nil
		},
	})
}

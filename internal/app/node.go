package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/sketchsense/internal/adapters/cas"          //nolint:depguard // Wired in app layer
	"go.trai.ch/sketchsense/internal/adapters/config"       //nolint:depguard // Wired in app layer
	adapterfs "go.trai.ch/sketchsense/internal/adapters/fs" //nolint:depguard // Wired in app layer
	"go.trai.ch/sketchsense/internal/adapters/logger"       //nolint:depguard // Wired in app layer
	"go.trai.ch/sketchsense/internal/adapters/watcher"      //nolint:depguard // Wired in app layer
	"go.trai.ch/sketchsense/internal/core/ports"
	"go.trai.ch/sketchsense/internal/engine/derivation"
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
			derivation.NodeID,
			watcher.NodeID,
			config.SettingsNodeID,
			cas.NodeID,
			adapterfs.WalkerNodeID,
			logger.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			a, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return &Components{App: a, Logger: log}, nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	engine, err := graft.Dep[*derivation.Engine](ctx)
	if err != nil {
		return nil, err
	}
	w, err := graft.Dep[ports.Watcher](ctx)
	if err != nil {
		return nil, err
	}
	settings, err := graft.Dep[ports.SettingsLoader](ctx)
	if err != nil {
		return nil, err
	}
	store, err := graft.Dep[ports.DerivationStore](ctx)
	if err != nil {
		return nil, err
	}
	walker, err := graft.Dep[*adapterfs.Walker](ctx)
	if err != nil {
		return nil, err
	}
	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}
	return New(engine, w, settings, store, walker, log), nil
}

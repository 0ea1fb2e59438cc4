package derivation

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/sketchsense/internal/adapters/arduino"   //nolint:depguard // Wired in engine wiring
	"go.trai.ch/sketchsense/internal/adapters/cas"       //nolint:depguard // Wired in engine wiring
	"go.trai.ch/sketchsense/internal/adapters/config"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/sketchsense/internal/adapters/fs"        //nolint:depguard // Wired in engine wiring
	"go.trai.ch/sketchsense/internal/adapters/logger"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/sketchsense/internal/adapters/telemetry" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/sketchsense/internal/adapters/vscode"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/sketchsense/internal/core/ports"
	"go.trai.ch/sketchsense/internal/engine/arch"
	"go.trai.ch/sketchsense/internal/engine/compiletrace"
	"go.trai.ch/sketchsense/internal/engine/macros"
)

// NodeID is the unique identifier for the derivation engine Graft node.
const NodeID graft.ID = "engine.derivation"

func init() {
	graft.Register(graft.Node[*Engine]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			fs.StagerNodeID,
			arduino.NodeID,
			compiletrace.NodeID,
			arch.NodeID,
			macros.NodeID,
			config.BoardNodeID,
			config.SettingsNodeID,
			cas.NodeID,
			vscode.NodeID,
			telemetry.TracerNodeID,
			logger.NodeID,
		},
		Run: runEngineNode,
	})
}

//nolint:cyclop // one lookup per dependency
func runEngineNode(ctx context.Context) (*Engine, error) {
	stager, err := graft.Dep[ports.SketchStager](ctx)
	if err != nil {
		return nil, err
	}
	builder, err := graft.Dep[ports.SketchBuilder](ctx)
	if err != nil {
		return nil, err
	}
	parser, err := graft.Dep[*compiletrace.Parser](ctx)
	if err != nil {
		return nil, err
	}
	resolver, err := graft.Dep[*arch.Resolver](ctx)
	if err != nil {
		return nil, err
	}
	discoverer, err := graft.Dep[*macros.Discoverer](ctx)
	if err != nil {
		return nil, err
	}
	boards, err := graft.Dep[ports.BoardConfigLoader](ctx)
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
	writer, err := graft.Dep[ports.ConfigWriter](ctx)
	if err != nil {
		return nil, err
	}
	tracer, err := graft.Dep[ports.Tracer](ctx)
	if err != nil {
		return nil, err
	}
	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return NewEngine(
		NewRegistry(),
		stager,
		builder,
		parser,
		resolver,
		discoverer,
		boards,
		settings,
		store,
		writer,
		tracer,
		log,
	), nil
}

package vscode

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/sketchsense/internal/core/ports"
)

// NodeID is the unique identifier for the editor configuration writer Graft node.
const NodeID graft.ID = "adapter.config_writer"

func init() {
	graft.Register(graft.Node[ports.ConfigWriter]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ConfigWriter, error) {
			return NewWriter(), nil
		},
	})
}

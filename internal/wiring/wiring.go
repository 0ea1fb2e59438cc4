// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/sketchsense/internal/adapters/arduino"
	_ "go.trai.ch/sketchsense/internal/adapters/cas"
	_ "go.trai.ch/sketchsense/internal/adapters/config"
	_ "go.trai.ch/sketchsense/internal/adapters/fs"
	_ "go.trai.ch/sketchsense/internal/adapters/logger"
	_ "go.trai.ch/sketchsense/internal/adapters/shell"
	_ "go.trai.ch/sketchsense/internal/adapters/telemetry"
	_ "go.trai.ch/sketchsense/internal/adapters/vscode"
	_ "go.trai.ch/sketchsense/internal/adapters/watcher"
	// Register app and engine nodes.
	_ "go.trai.ch/sketchsense/internal/app"
	_ "go.trai.ch/sketchsense/internal/engine/arch"
	_ "go.trai.ch/sketchsense/internal/engine/compiletrace"
	_ "go.trai.ch/sketchsense/internal/engine/derivation"
	_ "go.trai.ch/sketchsense/internal/engine/macros"
)

package ports

import "go.trai.ch/sketchsense/internal/core/domain"

// ConfigWriter defines the interface for publishing derived properties to the editor.
//
//go:generate mockgen -source=editor_config.go -destination=mocks/mock_editor_config.go -package=mocks
type ConfigWriter interface {
	// Write replaces the editor configuration under root.
	Write(root, boardID string, props domain.BoardProperties) error
}

package ports

import "go.trai.ch/sketchsense/internal/core/domain"

// BoardConfigLoader defines the interface for reading the active board of a workspace.
//
//go:generate mockgen -source=board.go -destination=mocks/mock_board.go -package=mocks
type BoardConfigLoader interface {
	// Load reads the board configuration under root.
	Load(root string) (domain.BoardConfig, error)
}

// SettingsLoader defines the interface for reading user settings.
type SettingsLoader interface {
	// Load returns the settings applying to the workspace at root.
	Load(root string) (domain.Settings, error)
}

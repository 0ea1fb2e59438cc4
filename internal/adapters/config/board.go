package config

import (
	"encoding/json"
	"os"
	"strings"

	"go.trai.ch/sketchsense/internal/core/domain"
	"go.trai.ch/zerr"
)

// BoardLoader implements ports.BoardConfigLoader for .vscode/arduino.json.
type BoardLoader struct{}

// NewBoardLoader creates a new BoardLoader.
func NewBoardLoader() *BoardLoader {
	return &BoardLoader{}
}

// Load reads the board configuration of the workspace at root.
func (l *BoardLoader) Load(root string) (domain.BoardConfig, error) {
	path := domain.BoardConfigPath(root)

	// #nosec G304 -- path is fixed below the workspace root
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.BoardConfig{}, zerr.With(domain.Wrap(err, domain.ErrBoardConfigReadFailed), "path", path)
	}

	var cfg domain.BoardConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return domain.BoardConfig{}, zerr.With(domain.Wrap(err, domain.ErrBoardConfigParseFailed), "path", path)
	}

	cfg.Board = strings.TrimSpace(cfg.Board)
	if cfg.Board == "" {
		return domain.BoardConfig{}, zerr.With(zerr.Wrap(domain.ErrBoardMissing, "invalid board configuration"), "path", path)
	}
	return cfg, nil
}

// Package config provides the settings and board configuration loaders.
package config

import (
	"os"
	"path/filepath"

	"go.trai.ch/sketchsense/internal/core/domain"
	"go.trai.ch/sketchsense/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// SettingsLoader implements ports.SettingsLoader using a YAML file.
type SettingsLoader struct {
	Logger ports.Logger
}

// NewSettingsLoader creates a new SettingsLoader with the given logger.
func NewSettingsLoader(logger ports.Logger) *SettingsLoader {
	return &SettingsLoader{Logger: logger}
}

// Load returns the settings of the nearest settings file at or above root.
// Without a settings file the defaults apply.
func (l *SettingsLoader) Load(root string) (domain.Settings, error) {
	path, ok := findSettings(root)
	if !ok {
		return domain.DefaultSettings(), nil
	}

	l.Logger.Debug("using settings from " + path)

	var file SettingsFile
	if err := readAndUnmarshalYAML(path, &file); err != nil {
		return domain.Settings{}, zerr.With(err, "path", path)
	}
	return file.toDomain(), nil
}

func findSettings(root string) (string, bool) {
	currentDir := root
	for {
		candidate := filepath.Join(currentDir, domain.SettingsFileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return "", false
		}
		currentDir = parentDir
	}
}

// readAndUnmarshalYAML reads a YAML file and unmarshals it into the target struct.
func readAndUnmarshalYAML[T any](path string, target *T) error {
	// #nosec G304 -- path is discovered from the workspace root
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Wrap(err, domain.ErrSettingsReadFailed)
	}

	if parseErr := yaml.Unmarshal(data, target); parseErr != nil {
		return domain.Wrap(parseErr, domain.ErrSettingsParseFailed)
	}
	return nil
}

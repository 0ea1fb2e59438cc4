package config

import (
	"time"

	"go.trai.ch/sketchsense/internal/core/domain"
	"gopkg.in/yaml.v3"
)

// SettingsFile represents the structure of the sketchsense.yaml settings file.
type SettingsFile struct {
	CLI               string              `yaml:"cli"`
	DefaultBoard      string              `yaml:"defaultBoard"`
	Debounce          *Duration           `yaml:"debounce"`
	Timeout           *Duration           `yaml:"timeout"`
	CompilerOverrides map[string][]string `yaml:"compilerOverrides"`
	ExtraArgs         []string            `yaml:"extraArgs"`
}

// Duration is a time.Duration written as a Go duration string ("300ms").
type Duration struct {
	time.Duration
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}

// toDomain overlays the file's fields on the defaults.
func (f *SettingsFile) toDomain() domain.Settings {
	s := domain.DefaultSettings()
	if f.CLI != "" {
		s.CLI = f.CLI
	}
	if f.DefaultBoard != "" {
		s.DefaultBoard = f.DefaultBoard
	}
	if f.Debounce != nil && f.Debounce.Duration > 0 {
		s.Debounce = f.Debounce.Duration
	}
	if f.Timeout != nil {
		s.Timeout = f.Timeout.Duration
	}
	for triple, dirs := range f.CompilerOverrides {
		s.CompilerOverrides[triple] = dirs
	}
	s.ExtraArgs = f.ExtraArgs
	return s
}

package domain

import (
	"slices"
	"strings"
	"time"
)

// Invocation is the compile command extracted from a verbose build trace.
type Invocation struct {
	CompilerPath string
	IncludePaths []string
	// Defines are the raw -D values, NAME or NAME=VALUE.
	Defines []string
	// MCU is the -mmcu value, empty when absent.
	MCU string
	// PrefixBase is the -iprefix directory, empty when absent.
	PrefixBase string
}

// BoardProperties is the derived compiler configuration for a sketch and board.
type BoardProperties struct {
	IncludePaths []string `json:"includePaths"`
	Defines      []string `json:"defines"`
	CompilerPath string   `json:"compilerPath"`
	Family       Family   `json:"family"`
}

// NewBoardProperties builds properties owning copies of the given slices.
func NewBoardProperties(includes, defines []string, compilerPath string, family Family) BoardProperties {
	return BoardProperties{
		IncludePaths: slices.Clone(includes),
		Defines:      slices.Clone(defines),
		CompilerPath: compilerPath,
		Family:       family,
	}
}

// Fingerprint is the newline-joined list of active local include names of a sketch.
type Fingerprint string

// NewFingerprint joins include names in order.
func NewFingerprint(names []string) Fingerprint {
	return Fingerprint(strings.Join(names, "\n"))
}

// Names splits the fingerprint back into include names.
func (f Fingerprint) Names() []string {
	if f == "" {
		return nil
	}
	return strings.Split(string(f), "\n")
}

// CacheEntry is a stored derivation for one sketch.
type CacheEntry struct {
	FileID         string          `json:"fileId"`
	ActiveIncludes Fingerprint     `json:"activeIncludes"`
	BoardID        string          `json:"boardId"`
	Properties     BoardProperties `json:"properties"`
	DerivedAt      time.Time       `json:"derivedAt"`
}

// Matches reports whether the entry is valid for the given state.
func (e *CacheEntry) Matches(includes Fingerprint, boardID string) bool {
	return e != nil && e.ActiveIncludes == includes && e.BoardID == boardID
}

// BuildRequest describes one verbose build of a sketch directory.
type BuildRequest struct {
	SketchDir string
	FQBN      string
	// CLI is the build tool executable.
	CLI       string
	ExtraArgs []string
}

// BoardConfig mirrors the board configuration file.
type BoardConfig struct {
	Board         string `json:"board"`
	Sketch        string `json:"sketch,omitempty"`
	Port          string `json:"port,omitempty"`
	Configuration string `json:"configuration,omitempty"`
}

// FQBN returns the board identifier with the configuration options appended
// the way arduino-cli expects them.
func (c BoardConfig) FQBN() string {
	if c.Configuration == "" {
		return c.Board
	}
	return c.Board + ":" + c.Configuration
}

// Settings holds user-level options.
type Settings struct {
	CLI               string
	DefaultBoard      string
	Debounce          time.Duration
	Timeout           time.Duration
	CompilerOverrides map[string][]string
	ExtraArgs         []string
}

// DefaultSettings returns the settings used when no settings file exists.
func DefaultSettings() Settings {
	return Settings{
		CLI:               DefaultCLI,
		DefaultBoard:      DefaultBoard,
		Debounce:          DefaultDebounce,
		CompilerOverrides: map[string][]string{},
	}
}

// Package detector provides environment detection for log format selection.
package detector

import (
	"os"

	"golang.org/x/term"
)

// LogFormat represents how log records are rendered.
type LogFormat int

const (
	// FormatAuto automatically detects the appropriate format.
	FormatAuto LogFormat = iota
	// FormatPretty renders human-readable lines with icons.
	FormatPretty
	// FormatJSON renders one JSON object per record.
	FormatJSON
)

func (f LogFormat) String() string {
	switch f {
	case FormatPretty:
		return "pretty"
	case FormatJSON:
		return "json"
	default:
		return "auto"
	}
}

// DetectEnvironment returns the recommended log format for output written to f.
// Terminals and CI logs are read by people; anything else gets JSON.
func DetectEnvironment(f *os.File) LogFormat {
	isTTY := f != nil && term.IsTerminal(int(f.Fd()))

	ci := os.Getenv("CI")
	isCI := ci == "true" || ci == "1"

	if isTTY || isCI {
		return FormatPretty
	}
	return FormatJSON
}

// ResolveFormat applies the user's flag to auto-detection.
// userFlag should be one of: "auto", "pretty", "text", "json", or empty.
func ResolveFormat(autoDetected LogFormat, userFlag string) LogFormat {
	switch userFlag {
	case "pretty", "text":
		return FormatPretty
	case "json":
		return FormatJSON
	default:
		return autoDetected
	}
}

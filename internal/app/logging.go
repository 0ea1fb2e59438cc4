package app

import (
	"io"
	"os"

	"go.trai.ch/sketchsense/internal/adapters/detector"
)

// LogOptions configuration for ConfigureLogging.
type LogOptions struct {
	// Format is one of "auto", "pretty", "text" or "json".
	Format  string
	Verbose bool
	// Output receives log records. Nil keeps the logger's current output.
	Output io.Writer
}

type logConfigurer interface {
	SetOutput(w io.Writer)
	SetJSON(enable bool)
	SetVerbose(enable bool)
}

// ConfigureLogging applies opts to the application logger and returns the
// resolved format.
func (a *App) ConfigureLogging(opts LogOptions) detector.LogFormat {
	var target *os.File
	if f, ok := opts.Output.(*os.File); ok {
		target = f
	} else if opts.Output == nil {
		target = os.Stderr
	}

	auto := detector.FormatPretty
	if target != nil {
		auto = detector.DetectEnvironment(target)
	}
	format := detector.ResolveFormat(auto, opts.Format)

	lc, ok := a.logger.(logConfigurer)
	if !ok {
		return format
	}
	if opts.Output != nil {
		lc.SetOutput(opts.Output)
	}
	lc.SetJSON(format == detector.FormatJSON)
	lc.SetVerbose(opts.Verbose)
	return format
}

// Package macros discovers the preprocessor symbols a board contributes on top
// of the generic language environment.
package macros

import (
	"context"
	"strconv"
	"strings"

	"go.trai.ch/sketchsense/internal/core/domain"
	"go.trai.ch/sketchsense/internal/core/ports"
	"go.trai.ch/zerr"
)

const definePrefix = "#define "

// dumpArgs makes the compiler print every macro after preprocessing a C++
// translation unit read from stdin.
var dumpArgs = []string{"-dM", "-E", "-x", "c++"}

// Discoverer runs the two macro-dump passes against a compiler.
type Discoverer struct {
	runner ports.CommandRunner
	logger ports.Logger
	tracer ports.Tracer
}

// NewDiscoverer creates a new Discoverer.
func NewDiscoverer(runner ports.CommandRunner, logger ports.Logger, tracer ports.Tracer) *Discoverer {
	return &Discoverer{runner: runner, logger: logger, tracer: tracer}
}

// Discover returns inv's raw defines merged with the hardware-only macro names
// of profile. includePaths is the complete include set of the derivation.
//
// The baseline pass completes before the hardware output is filtered. A
// failed pass contributes nothing; Discover itself never fails.
func (d *Discoverer) Discover(
	ctx context.Context,
	inv *domain.Invocation,
	profile domain.ArchitectureProfile,
	includePaths []string,
) []string {
	baseline := d.dump(ctx, "baseline", inv.CompilerPath, nil, domain.BaselineSource())
	if len(ParseMacroNames(baseline)) == 0 {
		d.logger.Warn("baseline macro pass produced no macros; check the toolchain at " + inv.CompilerPath)
	}

	flags := profile.ArchFlags(inv.MCU)
	for _, dir := range includePaths {
		flags = append(flags, "-I"+dir)
	}
	hardware := d.dump(ctx, "hardware", inv.CompilerPath, flags, profile.ProbeSource())

	return Merge(inv.Defines, HardwareOnly(baseline, hardware))
}

func (d *Discoverer) dump(ctx context.Context, pass, compiler string, flags []string, source string) string {
	ctx, span := d.tracer.Start(ctx, "macros."+pass,
		ports.WithAttribute("compiler", compiler),
	)
	defer span.End()

	args := make([]string, 0, len(dumpArgs)+len(flags)+1)
	args = append(args, dumpArgs...)
	args = append(args, flags...)
	args = append(args, "-")

	res, err := d.runner.Run(ctx, compiler, args, source)
	if err != nil {
		span.RecordError(err)
		d.logger.Error(zerr.With(domain.Wrap(err, domain.ErrMacroDumpFailed), "pass", pass))
		return ""
	}
	if res.ExitCode != 0 {
		d.logger.Warn(pass + " macro pass exited with status " + strconv.Itoa(res.ExitCode))
	}
	span.SetAttribute("macros", len(ParseMacroNames(res.Stdout)))
	return res.Stdout
}

// ParseMacroNames returns the names of the #define lines of a macro dump, in
// order. Function-like macros are reported by name without their parameters.
func ParseMacroNames(dump string) []string {
	var names []string
	for line := range strings.SplitSeq(dump, "\n") {
		line = strings.TrimSpace(line)
		rest, ok := strings.CutPrefix(line, definePrefix)
		if !ok {
			continue
		}
		if end := strings.IndexAny(rest, " (\t"); end >= 0 {
			rest = rest[:end]
		}
		if rest != "" {
			names = append(names, rest)
		}
	}
	return names
}

// HardwareOnly returns the macro names present in hardware but not in
// baseline, each exactly once, in order of first appearance.
func HardwareOnly(baseline, hardware string) []string {
	excluded := make(map[string]struct{})
	for _, n := range ParseMacroNames(baseline) {
		excluded[n] = struct{}{}
	}

	var out []string
	for _, n := range ParseMacroNames(hardware) {
		if _, ok := excluded[n]; ok {
			continue
		}
		excluded[n] = struct{}{}
		out = append(out, n)
	}
	return out
}

// Merge joins raw NAME or NAME=VALUE defines with discovered names,
// de-duplicated by macro name. The first occurrence keeps its position; a
// later NAME=VALUE replaces an earlier bare NAME.
func Merge(raw, discovered []string) []string {
	index := make(map[string]int, len(raw)+len(discovered))
	out := make([]string, 0, len(raw)+len(discovered))

	add := func(def string) {
		name, _, hasValue := strings.Cut(def, "=")
		if i, ok := index[name]; ok {
			if hasValue && !strings.Contains(out[i], "=") {
				out[i] = def
			}
			return
		}
		index[name] = len(out)
		out = append(out, def)
	}

	for _, def := range raw {
		add(def)
	}
	for _, def := range discovered {
		add(def)
	}
	return out
}

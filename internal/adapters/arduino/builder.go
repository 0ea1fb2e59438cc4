// Package arduino drives the Arduino command line tool to obtain verbose build traces.
package arduino

import (
	"context"
	"strconv"
	"strings"

	"go.trai.ch/sketchsense/internal/core/domain"
	"go.trai.ch/sketchsense/internal/core/ports"
	"go.trai.ch/zerr"
)

// Builder implements ports.SketchBuilder on top of arduino-cli.
type Builder struct {
	runner ports.CommandRunner
	logger ports.Logger
}

// NewBuilder creates a new Builder.
func NewBuilder(runner ports.CommandRunner, logger ports.Logger) *Builder {
	return &Builder{
		runner: runner,
		logger: logger,
	}
}

// Build runs a verbose compile of req.SketchDir and returns the tool's standard output.
func (b *Builder) Build(ctx context.Context, req domain.BuildRequest) (string, error) {
	cli := req.CLI
	if cli == "" {
		cli = domain.DefaultCLI
	}

	res, err := b.runner.Run(ctx, cli, Args(req), "")
	if err != nil {
		return "", zerr.With(zerr.With(domain.Wrap(err, domain.ErrBuildFailed), "cli", cli), "fqbn", req.FQBN)
	}

	if res.ExitCode != 0 {
		b.logger.Warn(cli + " exited with status " + strconv.Itoa(res.ExitCode) +
			"; using the partial build trace" + lastLine(res.Stderr))
	}

	return res.Stdout, nil
}

// Args returns the command line arguments for a verbose compile.
func Args(req domain.BuildRequest) []string {
	args := make([]string, 0, 5+len(req.ExtraArgs))
	args = append(args, "compile", "--fqbn", req.FQBN, "--verbose")
	args = append(args, req.ExtraArgs...)
	return append(args, req.SketchDir)
}

func lastLine(stderr string) string {
	stderr = strings.TrimSpace(stderr)
	if stderr == "" {
		return ""
	}
	if i := strings.LastIndexByte(stderr, '\n'); i >= 0 {
		stderr = stderr[i+1:]
	}
	return ": " + stderr
}

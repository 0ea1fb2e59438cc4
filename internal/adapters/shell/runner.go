// Package shell runs external processes with captured output.
package shell

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os/exec"
	"strings"

	"go.trai.ch/sketchsense/internal/core/domain"
	"go.trai.ch/sketchsense/internal/core/ports"
	"go.trai.ch/zerr"
)

// Runner implements ports.CommandRunner using os/exec.
type Runner struct {
	logger ports.Logger
}

// NewRunner creates a new Runner. Standard error of every process is
// mirrored to the logger at debug level.
func NewRunner(logger ports.Logger) *Runner {
	return &Runner{
		logger: logger,
	}
}

// Run executes name with args and stdin and waits for it to exit.
func (r *Runner) Run(ctx context.Context, name string, args []string, stdin string) (ports.CommandResult, error) {
	var stdout, stderr bytes.Buffer
	stderrLog := &logWriter{logger: r.logger, prefix: name + ": "}

	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec // compiler and build tool paths are resolved from traces and settings
	cmd.Stdin = strings.NewReader(stdin)
	cmd.Stdout = &stdout
	cmd.Stderr = io.MultiWriter(&stderr, stderrLog)

	r.logger.Debug("running " + name + " " + strings.Join(args, " "))

	err := cmd.Run()
	_ = stderrLog.Close()

	res := ports.CommandResult{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	if err == nil {
		return res, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		res.ExitCode = exitErr.ExitCode()
		if ctxErr := ctx.Err(); ctxErr != nil {
			return res, zerr.With(domain.Wrap(ctxErr, domain.ErrCommandStartFailed), "command", name)
		}
		return res, nil
	}

	res.ExitCode = -1
	return res, zerr.With(domain.Wrap(err, domain.ErrCommandStartFailed), "command", name)
}

// logWriter forwards complete lines to the logger.
type logWriter struct {
	logger ports.Logger
	prefix string
	buf    []byte
}

func (w *logWriter) Write(p []byte) (n int, err error) {
	w.buf = append(w.buf, p...)

	for {
		i := bytes.IndexByte(w.buf, '\n')
		if i < 0 {
			break
		}

		w.logLine(w.buf[:i])
		w.buf = w.buf[i+1:]
	}

	return len(p), nil
}

func (w *logWriter) Close() error {
	if len(w.buf) > 0 {
		w.logLine(w.buf)
		w.buf = nil
	}
	return nil
}

func (w *logWriter) logLine(line []byte) {
	msg := strings.TrimSuffix(string(line), "\r")
	if msg == "" {
		return
	}
	w.logger.Debug(w.prefix + msg)
}

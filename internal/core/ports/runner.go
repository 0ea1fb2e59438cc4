// Package ports defines the core interfaces for the application.
package ports

import "context"

// CommandResult is the captured outcome of an external process.
type CommandResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// CommandRunner defines the interface for running external processes.
//
//go:generate mockgen -source=runner.go -destination=mocks/mock_runner.go -package=mocks
type CommandRunner interface {
	// Run executes name with args, feeding stdin to the process.
	//
	// A non-zero exit status is reported through CommandResult.ExitCode, not as
	// an error. An error means the process could not be started or its streams
	// failed.
	Run(ctx context.Context, name string, args []string, stdin string) (CommandResult, error)
}

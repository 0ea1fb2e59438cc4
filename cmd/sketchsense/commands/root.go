// Package commands implements the CLI commands for sketchsense.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/sketchsense/internal/adapters/detector"
	"go.trai.ch/sketchsense/internal/app"
	"go.trai.ch/sketchsense/internal/build"
	"go.trai.ch/sketchsense/internal/engine/derivation"
)

// CLI represents the command line interface for sketchsense.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
}

// Application represents the application logic interface.
type Application interface {
	Derive(ctx context.Context, path string, opts app.DeriveOptions) (derivation.Result, error)
	Watch(ctx context.Context, root string, opts app.WatchOptions) error
	Clean(ctx context.Context, root string, opts app.CleanOptions) error
	ConfigureLogging(opts app.LogOptions) detector.LogFormat
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	rootCmd := &cobra.Command{
		Use:           "sketchsense",
		Short:         "Editor compiler configuration for Arduino sketches",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	rootCmd.PersistentFlags().String("log-format", "auto", "Log format: auto, pretty, or json")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Show debug output")

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, _ []string) {
		format, _ := cmd.Flags().GetString("log-format")
		verbose, _ := cmd.Flags().GetBool("verbose")
		c.app.ConfigureLogging(app.LogOptions{
			Format:  format,
			Verbose: verbose,
			Output:  cmd.ErrOrStderr(),
		})
	}

	rootCmd.AddCommand(c.newDeriveCmd())
	rootCmd.AddCommand(c.newWatchCmd())
	rootCmd.AddCommand(c.newCleanCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}

// SetInput sets the input stream for the root command. Used for testing.
func (c *CLI) SetInput(in io.Reader) {
	c.rootCmd.SetIn(in)
}

// rootArg returns the project root named on the command line, or the
// working directory when none is given.
func rootArg(args []string) string {
	if len(args) == 0 {
		return "."
	}
	return args[0]
}

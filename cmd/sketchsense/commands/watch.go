package commands

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.trai.ch/sketchsense/internal/adapters/tui"
	"go.trai.ch/sketchsense/internal/app"
)

func (c *CLI) newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch [root]",
		Short: "Keep the compiler configuration current while sketches change",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			board, _ := cmd.Flags().GetString("board")
			skipInitial, _ := cmd.Flags().GetBool("skip-initial")
			dashboard, _ := cmd.Flags().GetBool("tui")

			opts := app.WatchOptions{
				Board:       board,
				SkipInitial: skipInitial,
			}
			if dashboard {
				return c.watchWithDashboard(cmd, rootArg(args), opts)
			}
			return c.app.Watch(cmd.Context(), rootArg(args), opts)
		},
	}
	cmd.Flags().StringP("board", "b", "", "Board identifier overriding .vscode/arduino.json")
	cmd.Flags().Bool("skip-initial", false, "Do not derive existing sketches at startup")
	cmd.Flags().Bool("tui", false, "Show a live dashboard instead of log lines")
	return cmd
}

// watchWithDashboard runs the watch loop behind the terminal dashboard.
// Quitting the dashboard stops the watch.
func (c *CLI) watchWithDashboard(cmd *cobra.Command, root string, opts app.WatchOptions) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	renderer := tui.NewRenderer(tui.NewModel(root),
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithOutput(cmd.OutOrStdout()),
	)
	format, _ := cmd.Flags().GetString("log-format")
	verbose, _ := cmd.Flags().GetBool("verbose")
	c.app.ConfigureLogging(app.LogOptions{Format: "pretty", Verbose: verbose, Output: renderer})
	defer c.app.ConfigureLogging(app.LogOptions{Format: format, Verbose: verbose, Output: cmd.ErrOrStderr()})

	if err := renderer.Start(ctx); err != nil {
		return err
	}
	done := make(chan error, 1)
	go func() {
		done <- renderer.Wait()
		cancel()
	}()

	opts.Reporter = renderer
	err := c.app.Watch(ctx, root, opts)

	_ = renderer.Stop()
	// A program stopped through ctx reports tea.ErrProgramKilled.
	<-done
	return err
}

package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/sketchsense/internal/app"
	"go.trai.ch/sketchsense/internal/ui/style"
	"go.trai.ch/zerr"
)

func (c *CLI) newDeriveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "derive <sketch.ino>",
		Short: "Write the compiler configuration of one sketch",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, _ := cmd.Flags().GetString("root")
			board, _ := cmd.Flags().GetString("board")
			noCache, _ := cmd.Flags().GetBool("no-cache")
			stdin, _ := cmd.Flags().GetBool("stdin")

			opts := app.DeriveOptions{
				Root:    root,
				Board:   board,
				NoCache: noCache,
			}
			if stdin {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return zerr.Wrap(err, "failed to read sketch source from stdin")
				}
				opts.Source = string(data)
			}

			res, err := c.app.Derive(cmd.Context(), args[0], opts)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), style.Success(fmt.Sprintf("%s %s (%s): %d include paths, %d defines",
				res.Status, res.Path, res.BoardID, len(res.Properties.IncludePaths), len(res.Properties.Defines))))
			return nil
		},
	}
	cmd.Flags().StringP("root", "r", "", "Workspace root (defaults to the sketch directory)")
	cmd.Flags().StringP("board", "b", "", "Board identifier overriding .vscode/arduino.json")
	cmd.Flags().BoolP("no-cache", "n", false, "Bypass the derivation cache")
	cmd.Flags().Bool("stdin", false, "Read the sketch source from standard input")
	return cmd
}

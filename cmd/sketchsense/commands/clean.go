package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/sketchsense/internal/app"
)

func (c *CLI) newCleanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean [root]",
		Short: "Remove stored derivations",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			editorConfig, _ := cmd.Flags().GetBool("editor-config")
			return c.app.Clean(cmd.Context(), rootArg(args), app.CleanOptions{EditorConfig: editorConfig})
		},
	}
	cmd.Flags().Bool("editor-config", false, "Also remove the generated editor configuration")
	return cmd
}

package commands

import (
	"github.com/spf13/cobra"

	"github.com/ExecutableBookProject/sphinx-notebook/internal/app"
)

func (c *CLI) newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [notebooks...]",
		Short: "Execute the given notebooks and merge cached outputs",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				// Display command usage help without returning an error
				_ = cmd.Help()
				return nil
			}
			force, _ := cmd.Flags().GetBool("force")
			return c.app.Build(cmd.Context(), args, app.BuildOptions{
				Force: force,
			})
		},
	}
	cmd.Flags().BoolP("force", "f", false, "Re-execute notebooks even when outputs are present")
	return cmd
}

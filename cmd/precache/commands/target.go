package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newTargetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "target",
		Short: "Prune the project's target directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.ClearTarget(cmd.Context(), options(cmd))
		},
	}
}

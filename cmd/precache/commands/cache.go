package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newCacheCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cache",
		Short: "Prune the global cargo cache",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.ClearCache(cmd.Context(), options(cmd))
		},
	}
}

// Package commands implements the CLI commands for the cache pruner.
package commands

import (
	"context"
	"io"

	"github.com/Jarcho/cargo-ci-precache/internal/app"
	"github.com/Jarcho/cargo-ci-precache/internal/build"
	"github.com/Jarcho/cargo-ci-precache/internal/core/ports"
	"github.com/spf13/cobra"
)

// CLI represents the command line interface for precache.
type CLI struct {
	app     *app.App
	rootCmd *cobra.Command
}

// New creates a new CLI instance with the given app.
func New(a *app.App) *CLI {
	rootCmd := &cobra.Command{
		Use:           "cargo-ci-precache",
		Short:         "Prune cargo caches down to what the current build needs",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	rootCmd.PersistentFlags().String("manifest-path", "", "Path to Cargo.toml")
	rootCmd.PersistentFlags().String("features", "", "Comma separated list of features to activate")
	rootCmd.PersistentFlags().String("filter-platform", "", "Only include dependencies matching the given target triple")
	rootCmd.PersistentFlags().Bool("all-features", false, "Activate all available features")
	rootCmd.PersistentFlags().Bool("no-default-features", false, "Do not activate the default feature")
	rootCmd.PersistentFlags().BoolP("dry-run", "n", false, "Report what would be deleted without deleting anything")
	rootCmd.PersistentFlags().String("temp", "", "Directory deleted directories are moved into before removal")
	rootCmd.PersistentFlags().String("cargo-home", "", "Override the cargo home directory")

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	rootCmd.AddCommand(c.newCacheCmd())
	rootCmd.AddCommand(c.newTargetCmd())
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

// SetOut sets the writer for command output. Used for testing.
func (c *CLI) SetOut(w io.Writer) {
	c.rootCmd.SetOut(w)
}

func options(cmd *cobra.Command) app.Options {
	flags := cmd.Flags()
	manifestPath, _ := flags.GetString("manifest-path")
	features, _ := flags.GetString("features")
	filterPlatform, _ := flags.GetString("filter-platform")
	allFeatures, _ := flags.GetBool("all-features")
	noDefaultFeatures, _ := flags.GetBool("no-default-features")
	dryRun, _ := flags.GetBool("dry-run")
	temp, _ := flags.GetString("temp")
	cargoHome, _ := flags.GetString("cargo-home")

	return app.Options{
		Query: ports.MetadataQuery{
			ManifestPath:      manifestPath,
			Features:          features,
			FilterPlatform:    filterPlatform,
			AllFeatures:       allFeatures,
			NoDefaultFeatures: noDefaultFeatures,
		},
		DryRun:    dryRun,
		Temp:      temp,
		CargoHome: cargoHome,
	}
}

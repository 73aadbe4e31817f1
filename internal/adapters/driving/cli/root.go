// Package cli implements the brander command line.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/brander/internal/logger"
)

// version is set at build time with -ldflags "-X .../cli.version=...".
var version = "dev"

var (
	configPath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "brander",
	Short: "Generate branding collateral from a declarative configuration",
	Long: `brander turns a single configuration file into project collateral:
asset files (converted, optimised and packaged images) and Markdown
documents with headers, footers and tables of contents.

The configuration is read from brander.toml, brander.yaml, brander.yml or
brander.json in the working directory unless --config is given.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "configuration file (default: brander.{toml,yaml,yml,json})")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print parse and run details to stderr")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion overrides the reported version.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

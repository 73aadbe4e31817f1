package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init [dir]",
	Short: "Write a starter brander.toml",
	Long: `Writes a starter configuration with a README document and an SVG
optimisation task. The directory defaults to the working directory.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite an existing brander.toml")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	if appConfig == nil || appConfig.InitConfig == nil {
		return errors.New("init not configured")
	}
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}

	path, err := appConfig.InitConfig(dir, initForce)
	if err != nil {
		return fmt.Errorf("init failed: %w", err)
	}
	cmd.Printf("%s Wrote %s\n", styled(cmd.OutOrStdout(), successStyle, "✓"), path)
	return nil
}

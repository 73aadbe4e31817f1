package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

var providersCmd = &cobra.Command{
	Use:   "providers",
	Short: "List document and task types",
	Args:  cobra.NoArgs,
	RunE:  runProviders,
}

func init() {
	rootCmd.AddCommand(providersCmd)
}

func runProviders(cmd *cobra.Command, _ []string) error {
	if appConfig == nil || appConfig.Catalog == nil {
		return errors.New("provider catalog not configured")
	}
	out := cmd.OutOrStdout()

	cmd.Println(styled(out, headingStyle, "Document types:"))
	for _, t := range appConfig.Catalog.DocumentTypes() {
		cmd.Printf("  %s\n", t)
	}
	cmd.Println()
	cmd.Println(styled(out, headingStyle, "Task types:"))
	for _, t := range appConfig.Catalog.TaskTypes() {
		cmd.Printf("  %s\n", t)
	}
	return nil
}

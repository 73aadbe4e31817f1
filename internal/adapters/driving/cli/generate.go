package cli

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/brander/internal/core/ports/driving"
)

var (
	skipAssets bool
	skipDocs   bool
)

var generateCmd = &cobra.Command{
	Use:     "generate",
	Aliases: []string{"gen"},
	Short:   "Generate assets and documents",
	Long: `Runs every configured task, then renders every configured document.
All tasks are parsed before any of them runs, and all documents are parsed
before any of them is rendered.`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().BoolVar(&skipAssets, "skip-assets", false, "skip the task phase")
	generateCmd.Flags().BoolVar(&skipDocs, "skip-docs", false, "skip the document phase")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	session, err := openSession()
	if err != nil {
		return err
	}

	start := time.Now()
	opts := driving.GenerateOptions{SkipAssets: skipAssets, SkipDocs: skipDocs}
	if err := session.Brander.Generate(cmd.Context(), opts); err != nil {
		return fmt.Errorf("generate failed: %w", err)
	}

	out := cmd.OutOrStdout()
	cmd.Printf("%s Generated from %s %s\n",
		styled(out, successStyle, "✓"),
		filepath.Base(session.ConfigPath),
		styled(out, mutedStyle, "in "+time.Since(start).Round(time.Millisecond).String()))
	return nil
}

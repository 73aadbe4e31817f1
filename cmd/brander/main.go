// Command brander generates branding collateral from a declarative
// configuration.
package main

import (
	"context"
	"os"

	"github.com/custodia-labs/brander/internal/adapters/driven/config/file"
	"github.com/custodia-labs/brander/internal/adapters/driven/filesystem"
	"github.com/custodia-labs/brander/internal/adapters/driven/templating"
	"github.com/custodia-labs/brander/internal/adapters/driven/vcs"
	"github.com/custodia-labs/brander/internal/adapters/driving/cli"
	"github.com/custodia-labs/brander/internal/core/services"
	"github.com/custodia-labs/brander/internal/documents"
	"github.com/custodia-labs/brander/internal/logger"
	"github.com/custodia-labs/brander/internal/tasks"
)

func main() {
	fs := filesystem.New()
	templater := templating.New()

	// One registry of each kind for the whole process.
	documentRegistry := services.NewDocumentRegistry(documents.Builtins(fs, templater))
	taskRegistry := services.NewTaskRegistry(tasks.Builtins(fs))

	loader := file.NewLoader("")
	resolver := vcs.NewGitResolver()
	enricher := vcs.NewGitHubEnricher(context.Background(), os.Getenv("GITHUB_TOKEN"))

	cli.SetAppConfig(&cli.AppConfig{
		Open: func(path string) (*cli.Session, error) {
			cfg, err := loader.Load(path)
			if err != nil {
				return nil, err
			}
			logger.Debug("Loaded %s", cfg.Path)
			brander := services.NewBrander(cfg, documentRegistry, taskRegistry, fs, templater, resolver, enricher)
			return &cli.Session{Brander: brander, ConfigPath: cfg.Path}, nil
		},
		Catalog:    services.NewCatalog(documentRegistry, taskRegistry),
		InitConfig: file.WriteStarter,
	})

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

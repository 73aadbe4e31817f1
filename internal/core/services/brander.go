package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/brander/internal/core/domain"
	"github.com/custodia-labs/brander/internal/core/ports/driven"
	"github.com/custodia-labs/brander/internal/core/ports/driving"
	"github.com/custodia-labs/brander/internal/logger"
)

// Ensure Brander implements the interface.
var _ driving.Brander = (*Brander)(nil)

// Scope attribute keys seeded at the start of every generation.
const (
	AttrRunID       = "runId"
	AttrGeneratedAt = "generatedAt"
	AttrRepository  = "repository"
	AttrGitHub      = "github"
)

// Brander sequences the task phase and the document phase against the
// configuration's scope.
type Brander struct {
	cfg       *domain.Config
	documents *Registry[driven.DocumentProvider]
	tasks     *Registry[driven.Task]
	fs        driven.FileSystem
	templater driven.Templater

	// Optional collaborators; nil disables them.
	vcs      driven.VCSResolver
	enricher driven.RepositoryEnricher

	now func() time.Time
}

// NewBrander creates the orchestrator. vcs and enricher may be nil.
func NewBrander(
	cfg *domain.Config,
	documents *Registry[driven.DocumentProvider],
	tasks *Registry[driven.Task],
	fs driven.FileSystem,
	templater driven.Templater,
	vcs driven.VCSResolver,
	enricher driven.RepositoryEnricher,
) *Brander {
	return &Brander{
		cfg:       cfg,
		documents: documents,
		tasks:     tasks,
		fs:        fs,
		templater: templater,
		vcs:       vcs,
		enricher:  enricher,
		now:       time.Now,
	}
}

// Generate runs the task phase and then the document phase. The scope is
// cleared first, so nothing from a previous run is visible.
func (b *Brander) Generate(ctx context.Context, opts driving.GenerateOptions) error {
	if opts.SkipAssets && opts.SkipDocs {
		logger.Warn("Nothing to generate: both assets and docs are skipped")
		return nil
	}

	scope := b.cfg.Scope()
	scope.Clear()
	b.seedAttributes(ctx, scope)

	if !opts.SkipAssets {
		if err := b.generateAssets(ctx); err != nil {
			return err
		}
	}
	if !opts.SkipDocs {
		if err := b.generateDocs(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (b *Brander) seedAttributes(ctx context.Context, scope *domain.Scope) {
	runID := uuid.NewString()
	scope.Set(AttrRunID, runID)
	scope.Set(AttrGeneratedAt, b.now().UTC().Format(time.RFC3339))
	logger.Debug("Run %s", runID)

	repo := b.cfg.Project.Repository
	if repo == "" && b.vcs != nil {
		if url, ok := b.vcs.RemoteURL(ctx, b.cfg.Dir); ok {
			repo = url
			logger.Debug("Resolved repository %s", url)
		} else {
			logger.Debug("Repository URL unavailable")
		}
	}
	if repo == "" {
		return
	}
	scope.Set(AttrRepository, repo)

	if !b.cfg.GitHub || b.enricher == nil {
		return
	}
	attrs, err := b.enricher.Enrich(ctx, repo)
	if err != nil {
		logger.Warn("GitHub metadata unavailable: %v", err)
		return
	}
	scope.Set(AttrGitHub, attrs)
}

func (b *Brander) generateAssets(ctx context.Context) error {
	defer logger.Timed("Assets")()
	scope := b.cfg.Scope()

	parser := NewTaskParser(b.tasks, b.fs, b.templater, b.cfg, b.cfg.Tasks,
		WithParsedHook(func(e ParsedEvent[*domain.TaskContext]) {
			scope.AddAllTasks(e.Contexts)
		}),
	)
	contexts, err := parser.ParseRemaining(ctx)
	if err != nil {
		return fmt.Errorf("parse tasks: %w", err)
	}
	logger.Info("Parsed %d tasks", len(contexts))

	if err := NewTaskRunner(b.tasks).Run(ctx, b.cfg, contexts); err != nil {
		return fmt.Errorf("run tasks: %w", err)
	}
	return nil
}

func (b *Brander) generateDocs(ctx context.Context) error {
	defer logger.Timed("Documents")()
	scope := b.cfg.Scope()

	parser := NewDocumentParser(b.documents, b.cfg, b.cfg.Documents, nil, domain.DocumentTypeRoot,
		WithParsedHook(func(e ParsedEvent[*domain.DocumentContext]) {
			scope.AddAllDocs(e.Contexts)
		}),
	)
	contexts, err := parser.ParseRemaining(ctx)
	if err != nil {
		return fmt.Errorf("parse documents: %w", err)
	}
	logger.Info("Parsed %d documents", len(contexts))

	if _, err := NewDocumentRunner(b.documents, b.fs).Run(ctx, contexts); err != nil {
		return fmt.Errorf("run documents: %w", err)
	}
	return nil
}

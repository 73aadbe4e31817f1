package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/brander/internal/core/domain"
	"github.com/custodia-labs/brander/internal/core/ports/driven"
	"github.com/custodia-labs/brander/internal/logger"
)

// DocumentRunner renders root documents and writes them to their files.
type DocumentRunner struct {
	renderer *DocumentRenderer
	fs       driven.FileSystem
}

// NewDocumentRunner creates a document runner.
func NewDocumentRunner(registry *Registry[driven.DocumentProvider], fs driven.FileSystem) *DocumentRunner {
	return &DocumentRunner{
		renderer: NewDocumentRenderer(registry),
		fs:       fs,
	}
}

// Run renders every document in order and returns the written contents.
// Each file is written as soon as it is rendered, so files from earlier
// documents remain when a later one fails.
func (r *DocumentRunner) Run(ctx context.Context, docs []*domain.DocumentContext) ([]string, error) {
	runner := NewContextRunner[*domain.DocumentContext, string](docs, r.runDocument, func(s string) bool { return s != "" })
	return runner.Run(ctx)
}

func (r *DocumentRunner) runDocument(ctx context.Context, doc *domain.DocumentContext) (string, error) {
	if !doc.IsRoot() {
		logger.Warn("skipping %s document %q: %v", doc.Type(), doc.Title(), domain.ErrDetached)
		return "", nil
	}

	content, err := r.renderer.Render(ctx, doc)
	if err != nil {
		return "", err
	}
	content = strings.TrimRight(content, "\n") + "\n"

	file, _ := doc.File()
	if err := r.fs.WriteString(file.Path(), content); err != nil {
		return "", fmt.Errorf("write %s: %w", file.Path(), err)
	}
	logger.Info("Wrote %s", file.Path())
	return content, nil
}

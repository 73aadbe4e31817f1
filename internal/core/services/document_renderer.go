package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/brander/internal/core/domain"
	"github.com/custodia-labs/brander/internal/core/ports/driven"
)

// Ensure DocumentRenderer implements the interface.
var _ driven.DocumentRenderer = (*DocumentRenderer)(nil)

// DocumentRenderer renders nodes through their registered providers.
type DocumentRenderer struct {
	registry *Registry[driven.DocumentProvider]
}

// NewDocumentRenderer creates a renderer backed by registry.
func NewDocumentRenderer(registry *Registry[driven.DocumentProvider]) *DocumentRenderer {
	return &DocumentRenderer{registry: registry}
}

// Render renders a single node.
func (r *DocumentRenderer) Render(ctx context.Context, doc *domain.DocumentContext) (string, error) {
	provider, err := r.registry.FindByType(doc.Type())
	if err != nil {
		return "", err
	}
	out, err := provider.Render(ctx, doc, r)
	if err != nil {
		return "", fmt.Errorf("render %s %q: %w", doc.Type(), doc.Title(), err)
	}
	return out, nil
}

// RenderChildren renders doc's children in order, separated by blank lines.
func (r *DocumentRenderer) RenderChildren(ctx context.Context, doc *domain.DocumentContext) (string, error) {
	children := doc.Children()
	parts := make([]string, 0, len(children))
	for _, child := range children {
		out, err := r.Render(ctx, child)
		if err != nil {
			return "", err
		}
		out = strings.Trim(out, "\n")
		if out != "" {
			parts = append(parts, out)
		}
	}
	return strings.Join(parts, "\n\n"), nil
}

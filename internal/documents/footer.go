package documents

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/brander/internal/core/domain"
	"github.com/custodia-labs/brander/internal/core/ports/driven"
	"github.com/custodia-labs/brander/internal/markdown"
)

// Ensure FooterProvider implements the interface.
var _ driven.DocumentProvider = (*FooterProvider)(nil)

// FooterProvider renders the attribution block at the end of a root
// document, or a custom template.
type FooterProvider struct {
	templater driven.Templater
}

// NewFooterProvider creates the footer provider.
func NewFooterProvider(templater driven.Templater) *FooterProvider {
	return &FooterProvider{templater: templater}
}

// Type returns "footer".
func (p *FooterProvider) Type() string {
	return "footer"
}

// CreateContext builds the footer node.
func (p *FooterProvider) CreateContext(_ context.Context, req driven.CreateRequest) (*domain.DocumentContext, error) {
	return domain.NewDocumentContext(p.Type(), req.Data, req.Parent, req.Config), nil
}

// Render renders the footer. Nested sections follow the rule and precede
// the note.
func (p *FooterProvider) Render(ctx context.Context, doc *domain.DocumentContext, r driven.DocumentRenderer) (string, error) {
	children, err := r.RenderChildren(ctx, doc)
	if err != nil {
		return "", err
	}
	if tmpl := doc.String("template"); tmpl != "" {
		body, err := p.templater.Render(tmpl, templateVars(doc))
		if err != nil {
			return "", err
		}
		return joinBlocks(markdown.HR, children, strings.Trim(body, "\n")), nil
	}

	note := "_This file was generated by brander. Edit the brander configuration instead of this file._"
	if path := doc.Config().Path; path != "" {
		note = "_This file was generated by brander. Edit `" + filepath.Base(path) + "` instead of this file._"
	}
	return joinBlocks(markdown.HR, children, note), nil
}

package documents

import (
	"context"
	"strings"

	"github.com/custodia-labs/brander/internal/core/domain"
	"github.com/custodia-labs/brander/internal/core/ports/driven"
	"github.com/custodia-labs/brander/internal/markdown"
)

// Ensure HeaderProvider implements the interface.
var _ driven.DocumentProvider = (*HeaderProvider)(nil)

// HeaderProvider renders the block at the top of a root document: the
// project name and description, or a custom template.
type HeaderProvider struct {
	templater driven.Templater
}

// NewHeaderProvider creates the header provider.
func NewHeaderProvider(templater driven.Templater) *HeaderProvider {
	return &HeaderProvider{templater: templater}
}

// Type returns "header".
func (p *HeaderProvider) Type() string {
	return "header"
}

// CreateContext builds the header node.
func (p *HeaderProvider) CreateContext(_ context.Context, req driven.CreateRequest) (*domain.DocumentContext, error) {
	return domain.NewDocumentContext(p.Type(), req.Data, req.Parent, req.Config), nil
}

// Render renders the header, followed by any nested sections.
func (p *HeaderProvider) Render(ctx context.Context, doc *domain.DocumentContext, r driven.DocumentRenderer) (string, error) {
	children, err := r.RenderChildren(ctx, doc)
	if err != nil {
		return "", err
	}
	if tmpl := doc.String("template"); tmpl != "" {
		body, err := p.templater.Render(tmpl, templateVars(doc))
		if err != nil {
			return "", err
		}
		return joinBlocks(strings.Trim(body, "\n"), children), nil
	}

	project := doc.Config().Project
	name := project.Name
	if name == "" {
		if root := doc.Root(); root != nil {
			name = root.Title()
		}
	}
	return joinBlocks(markdown.Heading(1, name), strings.TrimSpace(project.Description), children), nil
}

package documents

import (
	"context"

	"github.com/custodia-labs/brander/internal/core/domain"
	"github.com/custodia-labs/brander/internal/core/ports/driven"
	"github.com/custodia-labs/brander/internal/markdown"
)

// Ensure ContainerProvider implements the interface.
var _ driven.DocumentProvider = (*ContainerProvider)(nil)

// ContainerProvider groups sections under an optional heading.
type ContainerProvider struct{}

// NewContainerProvider creates the container provider.
func NewContainerProvider() *ContainerProvider {
	return &ContainerProvider{}
}

// Type returns "container".
func (p *ContainerProvider) Type() string {
	return "container"
}

// CreateContext builds the container node. Its sections are parsed by the
// caller.
func (p *ContainerProvider) CreateContext(_ context.Context, req driven.CreateRequest) (*domain.DocumentContext, error) {
	return domain.NewDocumentContext(p.Type(), req.Data, req.Parent, req.Config), nil
}

// Render renders the heading and the children.
func (p *ContainerProvider) Render(ctx context.Context, doc *domain.DocumentContext, r driven.DocumentRenderer) (string, error) {
	body, err := r.RenderChildren(ctx, doc)
	if err != nil {
		return "", err
	}
	var heading string
	if doc.Title() != "" {
		heading = markdown.Heading(headingLevel(doc), doc.Title())
	}
	return joinBlocks(heading, body), nil
}

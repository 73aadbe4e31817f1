package driven

import (
	"context"

	"github.com/custodia-labs/brander/internal/core/domain"
)

// CreateRequest carries everything a provider needs to build one node.
type CreateRequest struct {
	// Data is the provider's private copy of the configuration entry.
	Data domain.Data

	// Parent is the enclosing node, nil at the top level.
	Parent *domain.DocumentContext

	// Config is the shared configuration.
	Config *domain.Config

	// Index is the entry's position in its list, for error messages.
	Index int
}

// DocumentProvider builds and renders document contexts of one type.
type DocumentProvider interface {
	// Type returns the provider type identifier (e.g. "root", "toc").
	Type() string

	// CreateContext builds the node for an entry. Children are attached by
	// the caller from the node's "sections" afterwards, so providers may
	// rewrite sections (the root provider injects header and footer).
	CreateContext(ctx context.Context, req CreateRequest) (*domain.DocumentContext, error)

	// Render produces the Markdown for a node. Providers that contain other
	// nodes use the renderer to render their children.
	Render(ctx context.Context, doc *domain.DocumentContext, r DocumentRenderer) (string, error)
}

// DocumentRenderer renders nodes through the provider registered for their
// type.
type DocumentRenderer interface {
	// Render renders a single node.
	Render(ctx context.Context, doc *domain.DocumentContext) (string, error)

	// RenderChildren renders every child of doc in order, joining the
	// non-empty results with blank lines.
	RenderChildren(ctx context.Context, doc *domain.DocumentContext) (string, error)
}

package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/brander/internal/core/domain"
	"github.com/custodia-labs/brander/internal/core/ports/driven"
	"github.com/custodia-labs/brander/internal/logger"
)

// DefaultSectionType is the provider type of untyped entries in a
// document's sections.
const DefaultSectionType = "template"

// DocumentParser parses document entries into document trees.
type DocumentParser = ContextParser[*domain.DocumentContext]

// NewDocumentParser creates a parser over document entries. Top-level
// parsers pass a nil parent and domain.DocumentTypeRoot as the default type.
//
// Each parsed node recursively parses its own "sections" with a fresh
// parser, so a single ParseNext call returns a fully built subtree.
func NewDocumentParser(
	registry *Registry[driven.DocumentProvider],
	cfg *domain.Config,
	entries []any,
	parent *domain.DocumentContext,
	defaultType string,
	opts ...ParserOption[*domain.DocumentContext],
) *DocumentParser {
	b := &treeBuilder{registry: registry, cfg: cfg}
	parse := func(ctx context.Context, data domain.Data, index int) ([]*domain.DocumentContext, error) {
		node, err := b.build(ctx, data, index, parent, defaultType)
		if err != nil {
			return nil, err
		}
		return []*domain.DocumentContext{node}, nil
	}
	return NewContextParser[*domain.DocumentContext](entries, parse, opts...)
}

// treeBuilder builds one node and its subtree.
type treeBuilder struct {
	registry *Registry[driven.DocumentProvider]
	cfg      *domain.Config
}

func (b *treeBuilder) build(
	ctx context.Context,
	data domain.Data,
	index int,
	parent *domain.DocumentContext,
	defaultType string,
) (*domain.DocumentContext, error) {
	typ := data.String("type")
	if typ == "" {
		typ = defaultType
	}
	if typ == "" {
		return nil, fmt.Errorf("%w: document %s: type is required", domain.ErrConfig, position(parent, index))
	}

	provider, err := b.registry.FindByType(typ)
	if err != nil {
		return nil, fmt.Errorf("document %s: %w", position(parent, index), err)
	}

	node, err := provider.CreateContext(ctx, driven.CreateRequest{
		Data:   data,
		Parent: parent,
		Config: b.cfg,
		Index:  index,
	})
	if err != nil {
		return nil, fmt.Errorf("document %s (%s): %w", position(parent, index), provider.Type(), err)
	}
	if node.IsDetached() {
		logger.Warn("%s document %d has no parent and will not be generated", node.Type(), index)
	}

	sections, err := node.Sections()
	if err != nil {
		return nil, fmt.Errorf("document %s: %w", position(parent, index), err)
	}
	if len(sections) == 0 {
		return node, nil
	}

	children, err := NewDocumentParser(b.registry, b.cfg, sections, node, DefaultSectionType).ParseRemaining(ctx)
	if err != nil {
		return nil, err
	}
	for _, child := range children {
		if err := node.AddChild(child); err != nil {
			return nil, fmt.Errorf("document %s: %w", position(parent, index), err)
		}
	}
	return node, nil
}

// position describes where an entry sits, e.g. "README.md/sections[2]".
func position(parent *domain.DocumentContext, index int) string {
	if parent == nil {
		return fmt.Sprintf("[%d]", index)
	}
	return fmt.Sprintf("%q sections[%d]", parent.Title(), index)
}

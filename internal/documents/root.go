package documents

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/brander/internal/core/domain"
	"github.com/custodia-labs/brander/internal/core/ports/driven"
	"github.com/custodia-labs/brander/internal/markdown"
)

// Ensure RootProvider implements the interface.
var _ driven.DocumentProvider = (*RootProvider)(nil)

// RootProvider builds root documents, one per output file.
type RootProvider struct {
	templater driven.Templater
}

// NewRootProvider creates the root provider.
func NewRootProvider(templater driven.Templater) *RootProvider {
	return &RootProvider{templater: templater}
}

// Type returns "root".
func (p *RootProvider) Type() string {
	return domain.DocumentTypeRoot
}

// CreateContext resolves the output file from dir, doc and format and wraps
// the sections with the configured header and footer.
func (p *RootProvider) CreateContext(_ context.Context, req driven.CreateRequest) (*domain.DocumentContext, error) {
	if req.Parent != nil {
		return nil, fmt.Errorf("%w: root documents cannot be nested", domain.ErrConfig)
	}
	data := req.Data
	cfg := req.Config

	name := data.String("doc")
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: doc is required", domain.ErrConfig)
	}
	vars := cfg.TemplateVars()
	name, err := p.templater.Render(name, vars)
	if err != nil {
		return nil, fmt.Errorf("doc: %w", err)
	}
	dir, err := p.templater.Render(data.String("dir"), vars)
	if err != nil {
		return nil, fmt.Errorf("dir: %w", err)
	}
	path := cfg.ResolvePath(filepath.Join(dir, name))

	if err := checkFormat(data, path); err != nil {
		return nil, err
	}

	sections, err := data.List("sections")
	if err != nil {
		return nil, err
	}
	data["sections"] = wrapSections(data, sections)

	return domain.NewRootDocumentContext(data, domain.NewFile(path), cfg), nil
}

// checkFormat fails unless the document resolves to Markdown, either from
// the format field or from the file extension.
func checkFormat(data domain.Data, path string) error {
	if data.Has("format") {
		format, ok := data["format"].(string)
		if !ok {
			return fmt.Errorf("%w: format must be a string", domain.ErrConfig)
		}
		_, err := domain.ParseDocumentFormat(format)
		return err
	}
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return nil
	}
	_, err := domain.ParseDocumentFormat(ext)
	return err
}

// wrapSections injects the header first and the footer last. The footer
// is on by default and disabled with footer = false.
func wrapSections(data domain.Data, sections []any) []any {
	out := make([]any, 0, len(sections)+2)
	if header, ok := blockEntry("header", data["header"], false); ok {
		out = append(out, header)
	}
	out = append(out, sections...)
	if footer, ok := blockEntry("footer", data["footer"], true); ok {
		out = append(out, footer)
	}
	return out
}

// blockEntry turns a header/footer setting into a section entry.
// true selects the default block, a string is a custom template and a
// table is a full entry.
func blockEntry(typ string, v any, enabledByDefault bool) (map[string]any, bool) {
	switch x := v.(type) {
	case nil:
		if !enabledByDefault {
			return nil, false
		}
		return map[string]any{"type": typ}, true
	case bool:
		if !x {
			return nil, false
		}
		return map[string]any{"type": typ}, true
	case string:
		return map[string]any{"type": typ, "template": x}, true
	default:
		entry, ok := domain.AsData(v)
		if !ok {
			return nil, false
		}
		out := map[string]any(entry.Clone())
		out["type"] = typ
		return out, true
	}
}

// Render renders the title (when configured) followed by every section.
func (p *RootProvider) Render(ctx context.Context, doc *domain.DocumentContext, r driven.DocumentRenderer) (string, error) {
	body, err := r.RenderChildren(ctx, doc)
	if err != nil {
		return "", err
	}
	var title string
	if doc.HasExplicitTitle() {
		title = markdown.Heading(1, doc.Title())
	}
	return joinBlocks(title, body), nil
}

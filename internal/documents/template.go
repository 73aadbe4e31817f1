package documents

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/brander/internal/core/domain"
	"github.com/custodia-labs/brander/internal/core/ports/driven"
	"github.com/custodia-labs/brander/internal/markdown"
)

// Ensure TemplateProvider implements the interface.
var _ driven.DocumentProvider = (*TemplateProvider)(nil)

// TemplateProvider renders Markdown fragments through the templating
// engine. The fragment is inline ("template") or read from "file".
type TemplateProvider struct {
	fs        driven.FileSystem
	templater driven.Templater
}

// NewTemplateProvider creates the template provider.
func NewTemplateProvider(fs driven.FileSystem, templater driven.Templater) *TemplateProvider {
	return &TemplateProvider{fs: fs, templater: templater}
}

// Type returns "template".
func (p *TemplateProvider) Type() string {
	return "template"
}

// CreateContext loads the fragment. A fragment file is read here so the
// title can come from its first heading when none is configured.
func (p *TemplateProvider) CreateContext(_ context.Context, req driven.CreateRequest) (*domain.DocumentContext, error) {
	data := req.Data
	if _, ok := data["template"]; ok {
		if _, isString := data["template"].(string); !isString {
			return nil, fmt.Errorf("%w: template must be a string", domain.ErrConfig)
		}
	} else if file := data.String("file"); file != "" {
		content, err := p.fs.ReadFile(req.Config.ResolvePath(file))
		if err != nil {
			return nil, fmt.Errorf("read template %s: %w", file, err)
		}
		data["template"] = string(content)
	}

	doc := domain.NewDocumentContext(p.Type(), data, req.Parent, req.Config)
	if !doc.HasExplicitTitle() {
		doc.SetTitle(markdown.FirstHeading([]byte(data.String("template"))))
	}
	return doc, nil
}

// Render evaluates the fragment, followed by any nested sections. A
// configured title is rendered as a heading; a title taken from the
// fragment is already part of it.
func (p *TemplateProvider) Render(ctx context.Context, doc *domain.DocumentContext, r driven.DocumentRenderer) (string, error) {
	body, err := p.templater.Render(doc.String("template"), templateVars(doc))
	if err != nil {
		return "", err
	}
	body = strings.Trim(body, "\n")

	children, err := r.RenderChildren(ctx, doc)
	if err != nil {
		return "", err
	}

	var heading string
	if doc.HasExplicitTitle() {
		heading = markdown.Heading(headingLevel(doc), doc.Title())
	}
	return joinBlocks(heading, body, children), nil
}

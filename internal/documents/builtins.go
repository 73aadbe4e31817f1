package documents

import (
	"github.com/custodia-labs/brander/internal/core/domain"
	"github.com/custodia-labs/brander/internal/core/ports/driven"
)

// Builtins returns the loader for the built-in providers, for use with
// services.NewDocumentRegistry.
func Builtins(fs driven.FileSystem, templater driven.Templater) func() []driven.DocumentProvider {
	return func() []driven.DocumentProvider {
		return []driven.DocumentProvider{
			NewRootProvider(templater),
			NewContainerProvider(),
			NewTemplateProvider(fs, templater),
			NewTOCProvider(),
			NewHeaderProvider(templater),
			NewFooterProvider(templater),
		}
	}
}

// headingLevel returns the Markdown heading level for a node.
func headingLevel(doc *domain.DocumentContext) int {
	return doc.Depth() + 1
}

// templateVars returns the variables for rendering a node's templates:
// configuration variables, then the entry's own "vars", then the node's
// title and depth.
func templateVars(doc *domain.DocumentContext) map[string]any {
	vars := doc.Config().TemplateVars()
	data := doc.Data()
	if local, ok := data.Map("vars"); ok {
		for k, v := range local {
			vars[k] = v
		}
	}
	vars["title"] = doc.Title()
	vars["depth"] = doc.Depth()
	return vars
}

// joinBlocks joins non-empty blocks with blank lines.
func joinBlocks(blocks ...string) string {
	out := make([]string, 0, len(blocks))
	for _, b := range blocks {
		if b != "" {
			out = append(out, b)
		}
	}
	switch len(out) {
	case 0:
		return ""
	case 1:
		return out[0]
	}
	s := out[0]
	for _, b := range out[1:] {
		s += "\n\n" + b
	}
	return s
}

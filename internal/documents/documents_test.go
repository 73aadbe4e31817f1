package documents

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/brander/internal/adapters/driven/templating"
	"github.com/custodia-labs/brander/internal/core/domain"
	"github.com/custodia-labs/brander/internal/core/services"
)

// --- Mock implementations ---

// memFS implements driven.FileSystem in memory.
type memFS struct {
	files map[string]string
}

func newMemFS(files map[string]string) *memFS {
	if files == nil {
		files = make(map[string]string)
	}
	return &memFS{files: files}
}

func (m *memFS) ReadFile(path string) ([]byte, error) {
	content, ok := m.files[path]
	if !ok {
		return nil, os.ErrNotExist
	}
	return []byte(content), nil
}

func (m *memFS) WriteFile(path string, data []byte) error {
	m.files[path] = string(data)
	return nil
}

func (m *memFS) WriteString(path, content string) error {
	m.files[path] = content
	return nil
}

func (m *memFS) Remove(path string) error {
	delete(m.files, path)
	return nil
}

func (m *memFS) Glob(baseDir string, patterns []string) ([]string, error) {
	var out []string
	for path := range m.files {
		for _, p := range patterns {
			if ok, _ := filepath.Match(filepath.Join(baseDir, p), path); ok {
				out = append(out, path)
				break
			}
		}
	}
	sort.Strings(out)
	return out, nil
}

// --- Helpers ---

type fixture struct {
	cfg      *domain.Config
	fs       *memFS
	renderer *services.DocumentRenderer
	docs     []*domain.DocumentContext
}

func parse(t *testing.T, cfg *domain.Config, fs *memFS, entries ...any) (*fixture, error) {
	t.Helper()
	if cfg == nil {
		cfg = &domain.Config{Dir: "/proj"}
	}
	if fs == nil {
		fs = newMemFS(nil)
	}
	registry := services.NewDocumentRegistry(Builtins(fs, templating.New()))
	parser := services.NewDocumentParser(registry, cfg, entries, nil, domain.DocumentTypeRoot,
		services.WithParsedHook(func(e services.ParsedEvent[*domain.DocumentContext]) {
			cfg.Scope().AddAllDocs(e.Contexts)
		}))
	docs, err := parser.ParseRemaining(context.Background())
	return &fixture{cfg: cfg, fs: fs, renderer: services.NewDocumentRenderer(registry), docs: docs}, err
}

func mustParse(t *testing.T, entries ...any) *fixture {
	t.Helper()
	f, err := parse(t, nil, nil, entries...)
	require.NoError(t, err)
	return f
}

func (f *fixture) render(t *testing.T, doc *domain.DocumentContext) string {
	t.Helper()
	out, err := f.renderer.Render(context.Background(), doc)
	require.NoError(t, err)
	return out
}

func findType(doc *domain.DocumentContext, typ string) *domain.DocumentContext {
	var found *domain.DocumentContext
	doc.Walk(func(n *domain.DocumentContext) {
		if found == nil && n.Type() == typ {
			found = n
		}
	})
	return found
}

// --- Root ---

func TestRoot_ResolvesOutputFile(t *testing.T) {
	f := mustParse(t, map[string]any{"doc": "GUIDE.md", "dir": "docs"})

	require.Len(t, f.docs, 1)
	file, ok := f.docs[0].File()
	require.True(t, ok)
	assert.Equal(t, filepath.Join("/proj", "docs", "GUIDE.md"), file.Path())
	assert.Equal(t, "GUIDE.md", f.docs[0].Title())
}

func TestRoot_TemplatedDocName(t *testing.T) {
	cfg := &domain.Config{Dir: "/proj", Project: domain.Project{Name: "widget"}}
	f, err := parse(t, cfg, nil, map[string]any{"doc": "{{.name}}.md"})
	require.NoError(t, err)

	file, _ := f.docs[0].File()
	assert.Equal(t, filepath.Join("/proj", "widget.md"), file.Path())
}

func TestRoot_RequiresDoc(t *testing.T) {
	_, err := parse(t, nil, nil, map[string]any{"title": "No file"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConfig)
	assert.Contains(t, err.Error(), "doc is required")
}

func TestRoot_UnsupportedFormat(t *testing.T) {
	_, err := parse(t, nil, nil, map[string]any{"doc": "README.md", "format": "pdf"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)
	assert.Contains(t, err.Error(), "pdf")
}

func TestRoot_UnsupportedExtension(t *testing.T) {
	_, err := parse(t, nil, nil, map[string]any{"doc": "README.html"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)
}

func TestRoot_CannotBeNested(t *testing.T) {
	_, err := parse(t, nil, nil, map[string]any{
		"doc": "README.md",
		"sections": []any{
			map[string]any{"type": "root", "doc": "OTHER.md"},
		},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConfig)
}

func TestRoot_FooterByDefault(t *testing.T) {
	f := mustParse(t, map[string]any{"doc": "README.md"})

	children := f.docs[0].Children()
	require.Len(t, children, 1)
	assert.Equal(t, "footer", children[0].Type())
}

func TestRoot_HeaderAndFooterPlacement(t *testing.T) {
	f := mustParse(t, map[string]any{
		"doc":    "README.md",
		"header": true,
		"sections": []any{
			map[string]any{"template": "Body"},
		},
	})

	children := f.docs[0].Children()
	require.Len(t, children, 3)
	assert.Equal(t, "header", children[0].Type())
	assert.Equal(t, "template", children[1].Type())
	assert.Equal(t, "footer", children[2].Type())
}

func TestRoot_FooterDisabled(t *testing.T) {
	f := mustParse(t, map[string]any{
		"doc":      "README.md",
		"footer":   false,
		"sections": []any{map[string]any{"template": "Body"}},
	})

	children := f.docs[0].Children()
	require.Len(t, children, 1)
	assert.Equal(t, "template", children[0].Type())
}

func TestRoot_DoesNotMutateConfiguration(t *testing.T) {
	sections := []any{map[string]any{"template": "Body"}}
	entry := map[string]any{"doc": "README.md", "header": "Custom", "sections": sections}
	mustParse(t, entry)

	assert.Len(t, sections, 1)
	assert.Len(t, entry["sections"], 1)
}

func TestRoot_Render(t *testing.T) {
	cfg := &domain.Config{Dir: "/proj", Project: domain.Project{Name: "widget", Description: "Makes widgets."}}
	f, err := parse(t, cfg, nil, map[string]any{
		"doc":    "README.md",
		"header": true,
		"footer": false,
		"sections": []any{
			map[string]any{"title": "Install", "template": "Run `make`."},
		},
	})
	require.NoError(t, err)

	out := f.render(t, f.docs[0])
	assert.Equal(t, "# widget\n\nMakes widgets.\n\n## Install\n\nRun `make`.", out)
}

func TestRoot_RenderExplicitTitle(t *testing.T) {
	f := mustParse(t, map[string]any{
		"doc":      "README.md",
		"title":    "Handbook",
		"footer":   false,
		"sections": []any{map[string]any{"template": "Hello"}},
	})

	assert.Equal(t, "# Handbook\n\nHello", f.render(t, f.docs[0]))
}

// --- Container / template ---

func TestContainer_NestsHeadingsByDepth(t *testing.T) {
	f := mustParse(t, map[string]any{
		"doc":    "README.md",
		"footer": false,
		"sections": []any{
			map[string]any{
				"type":  "container",
				"title": "Guide",
				"sections": []any{
					map[string]any{"title": "Setup", "template": "Steps."},
				},
			},
		},
	})

	assert.Equal(t, "## Guide\n\n### Setup\n\nSteps.", f.render(t, f.docs[0]))
}

func TestTemplate_TitleFromFirstHeading(t *testing.T) {
	fs := newMemFS(map[string]string{
		filepath.Join("/proj", "intro.md"): "## Welcome\n\nHello {{.name}}.\n",
	})
	cfg := &domain.Config{Dir: "/proj", Project: domain.Project{Name: "widget"}}
	f, err := parse(t, cfg, fs, map[string]any{
		"doc":      "README.md",
		"footer":   false,
		"sections": []any{map[string]any{"file": "intro.md"}},
	})
	require.NoError(t, err)

	section := f.docs[0].Children()[0]
	assert.Equal(t, "Welcome", section.Title())
	assert.False(t, section.HasExplicitTitle())
	assert.Equal(t, "## Welcome\n\nHello widget.", f.render(t, f.docs[0]))
}

func TestTemplate_MissingFile(t *testing.T) {
	_, err := parse(t, nil, nil, map[string]any{
		"doc":      "README.md",
		"sections": []any{map[string]any{"file": "missing.md"}},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestTemplate_LocalVars(t *testing.T) {
	f := mustParse(t, map[string]any{
		"doc":    "README.md",
		"footer": false,
		"sections": []any{
			map[string]any{"template": "{{.greeting}}, {{.title}}", "title": "World", "vars": map[string]any{"greeting": "Hi"}},
		},
	})

	assert.Equal(t, "## World\n\nHi, World", f.render(t, f.docs[0]))
}

func TestTemplate_RendersNestedSections(t *testing.T) {
	f := mustParse(t, map[string]any{
		"doc":    "README.md",
		"footer": false,
		"sections": []any{
			map[string]any{"type": "toc"},
			map[string]any{
				"title":    "Usage",
				"template": "Again.",
				"sections": []any{
					map[string]any{"title": "Deep", "template": "Deeper."},
				},
			},
		},
	})

	out := f.render(t, f.docs[0])
	assert.Contains(t, out, "## Usage\n\nAgain.\n\n### Deep\n\nDeeper.")
	assert.Contains(t, out, "    1. [Deep](README.md#Deep)")
}

func TestHeader_RendersNestedSections(t *testing.T) {
	f := mustParse(t, map[string]any{
		"doc":    "README.md",
		"footer": false,
		"header": map[string]any{
			"template": "# Widget",
			"sections": []any{map[string]any{"title": "Badges", "template": "b"}},
		},
	})

	assert.Equal(t, "# Widget\n\n### Badges\n\nb", f.render(t, f.docs[0]))
}

func TestFooter_RendersNestedSectionsBeforeNote(t *testing.T) {
	f := mustParse(t, map[string]any{
		"doc": "README.md",
		"footer": map[string]any{
			"template": "Bye.",
			"sections": []any{map[string]any{"template": "Credits."}},
		},
	})

	assert.Equal(t, "---\n\nCredits.\n\nBye.", f.render(t, f.docs[0]))
}

func TestFooter_DefaultNote(t *testing.T) {
	cfg := &domain.Config{Dir: "/proj", Path: "/proj/brander.toml"}
	f, err := parse(t, cfg, nil, map[string]any{"doc": "README.md"})
	require.NoError(t, err)

	out := f.render(t, f.docs[0])
	assert.Contains(t, out, "---")
	assert.Contains(t, out, "`brander.toml`")
}

func TestFooter_CustomTemplate(t *testing.T) {
	cfg := &domain.Config{Dir: "/proj", Project: domain.Project{License: "MIT"}}
	f, err := parse(t, cfg, nil, map[string]any{"doc": "README.md", "footer": "Licensed under {{.license}}."})
	require.NoError(t, err)

	assert.Equal(t, "---\n\nLicensed under MIT.", f.render(t, f.docs[0]))
}

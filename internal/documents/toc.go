package documents

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/custodia-labs/brander/internal/core/domain"
	"github.com/custodia-labs/brander/internal/core/ports/driven"
	"github.com/custodia-labs/brander/internal/markdown"
)

// Ensure TOCProvider implements the interface.
var _ driven.DocumentProvider = (*TOCProvider)(nil)

const (
	defaultTOCMinDepth = 1
	defaultTOCMaxDepth = -1
)

// TOCProvider renders a numbered table of contents.
//
// Entries:
//   - minDepth: shallowest depth listed (default 1); shallower nodes are
//     flattened into their parent's list
//   - maxDepth: deepest depth listed, -1 for unlimited (default -1)
//   - docs: root documents to list by file name (default: the enclosing
//     root)
type TOCProvider struct{}

// NewTOCProvider creates the toc provider.
func NewTOCProvider() *TOCProvider {
	return &TOCProvider{}
}

// Type returns "toc".
func (p *TOCProvider) Type() string {
	return "toc"
}

// CreateContext validates the depth bounds and the docs list.
func (p *TOCProvider) CreateContext(_ context.Context, req driven.CreateRequest) (*domain.DocumentContext, error) {
	if _, _, err := tocDepths(req.Data); err != nil {
		return nil, err
	}
	if _, err := req.Data.Strings("docs"); err != nil {
		return nil, err
	}
	return domain.NewDocumentContext(p.Type(), req.Data, req.Parent, req.Config), nil
}

func tocDepths(data domain.Data) (int, int, error) {
	minDepth, err := data.IntOr("minDepth", defaultTOCMinDepth)
	if err != nil {
		return 0, 0, err
	}
	maxDepth, err := data.IntOr("maxDepth", defaultTOCMaxDepth)
	if err != nil {
		return 0, 0, err
	}
	if minDepth < 0 {
		return 0, 0, fmt.Errorf("%w: minDepth must not be negative, got %d", domain.ErrConfig, minDepth)
	}
	if maxDepth < -1 {
		return 0, 0, fmt.Errorf("%w: maxDepth must be -1 or greater, got %d", domain.ErrConfig, maxDepth)
	}
	return minDepth, maxDepth, nil
}

// Render lists the target documents. Targets are resolved at render time
// so a table of contents may list documents declared after it.
func (p *TOCProvider) Render(_ context.Context, doc *domain.DocumentContext, _ driven.DocumentRenderer) (string, error) {
	data := doc.Data()
	minDepth, maxDepth, err := tocDepths(data)
	if err != nil {
		return "", err
	}
	targets, err := p.targets(doc, data)
	if err != nil {
		return "", err
	}

	t := &tocWriter{
		minDepth: minDepth,
		maxDepth: maxDepth,
		baseDir:  p.baseDir(doc),
		titles:   make(map[string]int),
	}
	// The top-level numbering continues across target documents.
	var top int
	for _, target := range targets {
		t.walk(target, []*domain.DocumentContext{target}, 0, &top)
	}

	var heading string
	if doc.Title() != "" {
		heading = markdown.Heading(headingLevel(doc), doc.Title())
	}
	return joinBlocks(heading, strings.Join(t.rows, "\n")), nil
}

func (p *TOCProvider) targets(doc *domain.DocumentContext, data domain.Data) ([]*domain.DocumentContext, error) {
	names, err := data.Strings("docs")
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		root := doc.Root()
		if root == nil {
			return nil, fmt.Errorf("%w: toc is not part of a document", domain.ErrConfig)
		}
		return []*domain.DocumentContext{root}, nil
	}

	scope := doc.Config().Scope()
	targets := make([]*domain.DocumentContext, 0, len(names))
	for i, name := range names {
		root, ok := scope.FindRoot(name)
		if !ok {
			return nil, fmt.Errorf("%w: docs[%d]: no document with file %q", domain.ErrConfig, i, name)
		}
		targets = append(targets, root)
	}
	return targets, nil
}

// baseDir is the directory links are made relative to: the directory of
// the document the table of contents is rendered into.
func (p *TOCProvider) baseDir(doc *domain.DocumentContext) string {
	if root := doc.Root(); root != nil {
		if file, ok := root.File(); ok {
			return filepath.Dir(file.Path())
		}
	}
	return doc.Config().Dir
}

type tocWriter struct {
	minDepth int
	maxDepth int
	baseDir  string

	// titles counts fragment uses across the whole table so repeated
	// titles get distinct anchors.
	titles map[string]int
	rows   []string
}

// walk emits rows for nodes, numbering them with counter. Nodes above
// minDepth are flattened: their children join the same list. Nodes below
// maxDepth are pruned with their subtrees.
func (t *tocWriter) walk(root *domain.DocumentContext, nodes []*domain.DocumentContext, level int, counter *int) {
	for _, n := range nodes {
		depth := n.Depth()
		switch {
		case depth < t.minDepth:
			t.walk(root, n.Children(), level, counter)
		case t.maxDepth == -1 || depth <= t.maxDepth:
			if n.Title() != "" {
				*counter++
				t.rows = append(t.rows, strings.Repeat("    ", level)+strconv.Itoa(*counter)+". "+
					markdown.Link(n.Title(), t.target(root, n)))
			}
			var nested int
			t.walk(root, n.Children(), level+1, &nested)
		}
	}
}

func (t *tocWriter) target(root, n *domain.DocumentContext) string {
	file, _ := root.File()
	path := file.Path()
	if rel, err := filepath.Rel(t.baseDir, path); err == nil {
		path = rel
	}
	path = filepath.ToSlash(path)
	if n == root {
		return markdown.LinkTarget(path, "")
	}
	return markdown.LinkTarget(path, t.fragment(n.Title()))
}

func (t *tocWriter) fragment(title string) string {
	t.titles[title]++
	if n := t.titles[title]; n > 1 {
		return title + "-" + strconv.Itoa(n)
	}
	return title
}

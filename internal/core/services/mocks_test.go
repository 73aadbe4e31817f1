package services

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/custodia-labs/brander/internal/core/domain"
	"github.com/custodia-labs/brander/internal/core/ports/driven"
)

// --- Mock implementations ---

// memFS implements driven.FileSystem in memory. Glob matches patterns with
// filepath.Match against paths relative to the base directory.
type memFS struct {
	mu    sync.Mutex
	files map[string][]byte
}

func newMemFS(files map[string]string) *memFS {
	fs := &memFS{files: make(map[string][]byte)}
	for p, content := range files {
		fs.files[p] = []byte(content)
	}
	return fs
}

func (m *memFS) ReadFile(path string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.files[path]
	if !ok {
		return nil, &os.PathError{Op: "open", Path: path, Err: os.ErrNotExist}
	}
	return data, nil
}

func (m *memFS) WriteFile(path string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[path] = data
	return nil
}

func (m *memFS) WriteString(path, content string) error {
	return m.WriteFile(path, []byte(content))
}

func (m *memFS) Remove(path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.files, path)
	return nil
}

func (m *memFS) Glob(baseDir string, patterns []string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []string
	for p := range m.files {
		rel, err := filepath.Rel(baseDir, p)
		if err != nil || strings.HasPrefix(rel, "..") {
			continue
		}
		for _, pattern := range patterns {
			if ok, _ := filepath.Match(pattern, rel); ok {
				out = append(out, p)
				break
			}
		}
	}
	sort.Strings(out)
	return out, nil
}

func (m *memFS) content(path string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.files[path]
	return string(data), ok
}

// mockTemplater returns templates unchanged.
type mockTemplater struct{}

func (mockTemplater) Render(tmpl string, _ map[string]any) (string, error) {
	return tmpl, nil
}

// mockProvider implements driven.DocumentProvider. Roots take their file
// from "doc"; every node renders its title followed by its children.
type mockProvider struct {
	typ    string
	create func(req driven.CreateRequest) (*domain.DocumentContext, error)
	render func(doc *domain.DocumentContext) (string, error)
}

func (p *mockProvider) Type() string { return p.typ }

func (p *mockProvider) CreateContext(_ context.Context, req driven.CreateRequest) (*domain.DocumentContext, error) {
	if p.create != nil {
		return p.create(req)
	}
	if p.typ == domain.DocumentTypeRoot {
		return domain.NewRootDocumentContext(req.Data, domain.NewFile(req.Config.ResolvePath(req.Data.String("doc"))), req.Config), nil
	}
	return domain.NewDocumentContext(p.typ, req.Data, req.Parent, req.Config), nil
}

func (p *mockProvider) Render(ctx context.Context, doc *domain.DocumentContext, r driven.DocumentRenderer) (string, error) {
	if p.render != nil {
		return p.render(doc)
	}
	children, err := r.RenderChildren(ctx, doc)
	if err != nil {
		return "", err
	}
	if children == "" {
		return doc.Title(), nil
	}
	return doc.Title() + "\n\n" + children, nil
}

func mockProviders(types ...string) func() []driven.DocumentProvider {
	return func() []driven.DocumentProvider {
		out := make([]driven.DocumentProvider, 0, len(types))
		for _, t := range types {
			out = append(out, &mockProvider{typ: t})
		}
		return out
	}
}

// mockTask implements driven.Task and records every hook call.
type mockTask struct {
	typ       domain.TaskType
	supports  func(tc *domain.TaskContext) bool
	execErr   error
	beforeErr error
	log       *[]string
}

func newMockTask(typ domain.TaskType, log *[]string) *mockTask {
	return &mockTask{typ: typ, log: log}
}

func (t *mockTask) record(event string) {
	*t.log = append(*t.log, string(t.typ)+":"+event)
}

func (t *mockTask) Type() domain.TaskType { return t.typ }

func (t *mockTask) Supports(tc *domain.TaskContext) bool {
	if t.supports == nil {
		return true
	}
	return t.supports(tc)
}

func (t *mockTask) Execute(_ context.Context, tc *domain.TaskContext) error {
	t.record("execute " + tc.String("name"))
	return t.execErr
}

func (t *mockTask) Before(_ context.Context, tc *domain.TaskContext) error {
	t.record("before " + tc.String("name"))
	return t.beforeErr
}

func (t *mockTask) After(_ context.Context, tc *domain.TaskContext) error {
	t.record("after " + tc.String("name"))
	return nil
}

func (t *mockTask) BeforeAll(_ context.Context, _ *domain.Config) error {
	t.record("beforeAll")
	return nil
}

func (t *mockTask) AfterAll(_ context.Context, _ *domain.Config) error {
	t.record("afterAll")
	return nil
}

// mockVCS implements driven.VCSResolver.
type mockVCS struct {
	url   string
	calls int
}

func (m *mockVCS) RemoteURL(_ context.Context, _ string) (string, bool) {
	m.calls++
	return m.url, m.url != ""
}

// mockEnricher implements driven.RepositoryEnricher.
type mockEnricher struct {
	attrs map[string]any
	err   error
	urls  []string
}

func (m *mockEnricher) Enrich(_ context.Context, url string) (map[string]any, error) {
	m.urls = append(m.urls, url)
	return m.attrs, m.err
}

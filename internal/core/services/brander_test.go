package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/brander/internal/core/domain"
	"github.com/custodia-labs/brander/internal/core/ports/driven"
	"github.com/custodia-labs/brander/internal/core/ports/driving"
)

type branderFixture struct {
	cfg      *domain.Config
	fs       *memFS
	log      []string
	vcs      *mockVCS
	enricher *mockEnricher
	brander  *Brander
}

// newBranderFixture wires a Brander whose root documents render the number
// of tasks visible in the scope.
func newBranderFixture(documents, tasks []any) *branderFixture {
	f := &branderFixture{
		cfg:      testConfig(documents, tasks),
		fs:       newMemFS(nil),
		vcs:      &mockVCS{},
		enricher: &mockEnricher{},
	}
	docs := NewDocumentRegistry(func() []driven.DocumentProvider {
		return []driven.DocumentProvider{
			&mockProvider{typ: "root", render: func(doc *domain.DocumentContext) (string, error) {
				f.log = append(f.log, "render "+doc.Title())
				return fmt.Sprintf("%s: %d tasks", doc.Title(), len(doc.Config().Scope().Tasks())), nil
			}},
		}
	})
	taskReg := NewTaskRegistry(allTasks(&f.log))
	f.brander = NewBrander(f.cfg, docs, taskReg, f.fs, mockTemplater{}, f.vcs, f.enricher)
	f.brander.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }
	return f
}

func TestBrander_TasksRunBeforeDocuments(t *testing.T) {
	f := newBranderFixture(
		[]any{map[string]any{"doc": "README.md", "title": "Readme"}},
		[]any{map[string]any{"type": "clean", "name": "dist"}},
	)

	err := f.brander.Generate(context.Background(), driving.GenerateOptions{})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"clean:beforeAll",
		"clean:before dist", "clean:execute dist", "clean:after dist",
		"clean:afterAll",
		"render Readme",
	}, f.log)
	content, ok := f.fs.content("/project/README.md")
	require.True(t, ok)
	assert.Equal(t, "Readme: 1 tasks\n", content)
	assert.Len(t, f.cfg.Scope().Docs(), 1)
}

func TestBrander_SkipOptions(t *testing.T) {
	documents := []any{map[string]any{"doc": "README.md", "title": "Readme"}}
	tasks := []any{map[string]any{"type": "clean", "name": "dist"}}

	t.Run("skip assets", func(t *testing.T) {
		f := newBranderFixture(documents, tasks)
		require.NoError(t, f.brander.Generate(context.Background(), driving.GenerateOptions{SkipAssets: true}))
		assert.Equal(t, []string{"render Readme"}, f.log)
	})

	t.Run("skip docs", func(t *testing.T) {
		f := newBranderFixture(documents, tasks)
		require.NoError(t, f.brander.Generate(context.Background(), driving.GenerateOptions{SkipDocs: true}))
		assert.NotContains(t, f.log, "render Readme")
		_, ok := f.fs.content("/project/README.md")
		assert.False(t, ok)
	})

	t.Run("skip both", func(t *testing.T) {
		f := newBranderFixture(documents, tasks)
		f.cfg.Scope().Set("stale", true)
		require.NoError(t, f.brander.Generate(context.Background(), driving.GenerateOptions{SkipAssets: true, SkipDocs: true}))
		assert.Empty(t, f.log)
		_, ok := f.cfg.Scope().Get("stale")
		assert.True(t, ok, "a skipped run leaves the scope alone")
	})
}

func TestBrander_ClearsScopeBetweenRuns(t *testing.T) {
	f := newBranderFixture(
		[]any{map[string]any{"doc": "README.md", "title": "Readme"}},
		[]any{map[string]any{"type": "clean", "name": "dist"}},
	)
	f.cfg.Scope().Set("stale", true)

	require.NoError(t, f.brander.Generate(context.Background(), driving.GenerateOptions{}))
	first, _ := f.cfg.Scope().Get(AttrRunID)
	require.NoError(t, f.brander.Generate(context.Background(), driving.GenerateOptions{}))
	second, _ := f.cfg.Scope().Get(AttrRunID)

	_, ok := f.cfg.Scope().Get("stale")
	assert.False(t, ok)
	assert.NotEqual(t, first, second)
	assert.Len(t, f.cfg.Scope().Docs(), 1)
	assert.Len(t, f.cfg.Scope().Tasks(), 1)
}

func TestBrander_SeedsAttributes(t *testing.T) {
	f := newBranderFixture(nil, nil)
	f.vcs.url = "https://github.com/acme/widget"
	f.cfg.GitHub = true
	f.enricher.attrs = map[string]any{"stars": 42}

	require.NoError(t, f.brander.Generate(context.Background(), driving.GenerateOptions{}))

	scope := f.cfg.Scope()
	runID, ok := scope.Get(AttrRunID)
	require.True(t, ok)
	assert.NotEmpty(t, runID)
	generatedAt, _ := scope.Get(AttrGeneratedAt)
	assert.Equal(t, "2026-01-02T03:04:05Z", generatedAt)
	repo, _ := scope.Get(AttrRepository)
	assert.Equal(t, "https://github.com/acme/widget", repo)
	gh, _ := scope.Get(AttrGitHub)
	assert.Equal(t, map[string]any{"stars": 42}, gh)
	assert.Equal(t, []string{"https://github.com/acme/widget"}, f.enricher.urls)

	vars := f.cfg.TemplateVars()
	assert.Equal(t, "https://github.com/acme/widget", vars[AttrRepository])
}

func TestBrander_ConfiguredRepositoryWins(t *testing.T) {
	f := newBranderFixture(nil, nil)
	f.cfg.Project.Repository = "https://github.com/acme/configured"
	f.vcs.url = "https://github.com/acme/remote"

	require.NoError(t, f.brander.Generate(context.Background(), driving.GenerateOptions{}))

	repo, _ := f.cfg.Scope().Get(AttrRepository)
	assert.Equal(t, "https://github.com/acme/configured", repo)
	assert.Equal(t, 0, f.vcs.calls)
	assert.Empty(t, f.enricher.urls, "enrichment is opt-in")
}

func TestBrander_EnrichmentFailureIsNotFatal(t *testing.T) {
	f := newBranderFixture(nil, nil)
	f.vcs.url = "https://github.com/acme/widget"
	f.cfg.GitHub = true
	f.enricher.err = errors.New("rate limited")

	require.NoError(t, f.brander.Generate(context.Background(), driving.GenerateOptions{}))

	_, ok := f.cfg.Scope().Get(AttrGitHub)
	assert.False(t, ok)
	_, ok = f.cfg.Scope().Get(AttrRepository)
	assert.True(t, ok)
}

func TestBrander_NoRepository(t *testing.T) {
	f := newBranderFixture(nil, nil)
	f.cfg.GitHub = true

	require.NoError(t, f.brander.Generate(context.Background(), driving.GenerateOptions{}))

	_, ok := f.cfg.Scope().Get(AttrRepository)
	assert.False(t, ok)
	assert.Empty(t, f.enricher.urls)
}

func TestBrander_PhaseErrors(t *testing.T) {
	t.Run("task parse", func(t *testing.T) {
		f := newBranderFixture(nil, []any{map[string]any{"type": "resize"}})
		err := f.brander.Generate(context.Background(), driving.GenerateOptions{})
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrConfig)
		assert.Contains(t, err.Error(), "parse tasks")
	})

	t.Run("document parse", func(t *testing.T) {
		f := newBranderFixture([]any{map[string]any{"type": "banner"}}, nil)
		err := f.brander.Generate(context.Background(), driving.GenerateOptions{})
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrProviderNotFound)
		assert.Contains(t, err.Error(), "parse documents")
	})
}

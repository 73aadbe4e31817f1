package vcs

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	gh "github.com/google/go-github/v80/github"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/brander/internal/core/domain"
	"github.com/custodia-labs/brander/internal/core/ports/driven"
)

// Ensure GitHubEnricher implements the interface.
var _ driven.RepositoryEnricher = (*GitHubEnricher)(nil)

const (
	// DefaultTimeout is the HTTP request timeout.
	DefaultTimeout = 15 * time.Second

	// RequestInterval is the minimum spacing between API requests, so watch
	// mode cannot exhaust the unauthenticated quota.
	RequestInterval = 2 * time.Second
)

// GitHubEnricher fetches repository details from the GitHub API.
type GitHubEnricher struct {
	gh      *gh.Client
	limiter *rate.Limiter
}

// NewGitHubEnricher creates an enricher. An empty token uses the
// unauthenticated API.
func NewGitHubEnricher(ctx context.Context, token string) *GitHubEnricher {
	var client *http.Client
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		client = oauth2.NewClient(ctx, ts)
	} else {
		client = &http.Client{}
	}
	client.Timeout = DefaultTimeout
	return NewGitHubEnricherWithClient(gh.NewClient(client))
}

// NewGitHubEnricherWithClient creates an enricher around an existing client.
func NewGitHubEnricherWithClient(client *gh.Client) *GitHubEnricher {
	return &GitHubEnricher{
		gh:      client,
		limiter: rate.NewLimiter(rate.Every(RequestInterval), 1),
	}
}

// Enrich returns template attributes for a github.com repository URL.
func (e *GitHubEnricher) Enrich(ctx context.Context, repoURL string) (map[string]any, error) {
	owner, name, ok := ParseRepository(repoURL)
	if !ok {
		return nil, fmt.Errorf("%w: %q is not a GitHub repository URL", domain.ErrInvalidInput, repoURL)
	}
	if err := e.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	repo, _, err := e.gh.Repositories.Get(ctx, owner, name)
	if err != nil {
		return nil, fmt.Errorf("get repository %s/%s: %w", owner, name, err)
	}

	topics := repo.Topics
	if topics == nil {
		topics = []string{}
	}
	return map[string]any{
		"fullName":      repo.GetFullName(),
		"description":   repo.GetDescription(),
		"homepage":      repo.GetHomepage(),
		"htmlUrl":       repo.GetHTMLURL(),
		"license":       repo.GetLicense().GetSPDXID(),
		"stars":         repo.GetStargazersCount(),
		"forks":         repo.GetForksCount(),
		"defaultBranch": repo.GetDefaultBranch(),
		"topics":        topics,
	}, nil
}

// ParseRepository extracts owner and repository name from a github.com
// web URL.
func ParseRepository(repoURL string) (owner, name string, ok bool) {
	u, err := url.Parse(repoURL)
	if err != nil || !strings.EqualFold(u.Hostname(), "github.com") {
		return "", "", false
	}
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}
	return parts[0], strings.TrimSuffix(parts[1], ".git"), true
}

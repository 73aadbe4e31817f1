package driven

import "context"

// VCSResolver resolves the web URL of the repository containing a directory.
type VCSResolver interface {
	// RemoteURL returns the origin URL, or false when it cannot be resolved
	// (no git binary, not a repository, no remote).
	RemoteURL(ctx context.Context, dir string) (string, bool)
}

// RepositoryEnricher fetches metadata about a hosted repository.
type RepositoryEnricher interface {
	// Enrich returns template attributes (description, homepage, license, ...)
	// for the repository at url.
	Enrich(ctx context.Context, url string) (map[string]any, error)
}

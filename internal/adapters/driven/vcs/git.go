package vcs

import (
	"context"
	"net/url"
	"os/exec"
	"strings"

	"github.com/custodia-labs/brander/internal/core/domain"
	"github.com/custodia-labs/brander/internal/core/ports/driven"
	"github.com/custodia-labs/brander/internal/logger"
)

// Ensure GitResolver implements the interface.
var _ driven.VCSResolver = (*GitResolver)(nil)

// runFunc runs git in dir and returns its standard output.
type runFunc func(ctx context.Context, dir string, args ...string) (string, error)

// GitResolver resolves the origin remote of a git working tree.
type GitResolver struct {
	run runFunc
}

// NewGitResolver creates a resolver that shells out to git.
func NewGitResolver() *GitResolver {
	return &GitResolver{run: runGit}
}

func runGit(ctx context.Context, dir string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	out, err := cmd.Output()
	return string(out), err
}

// RemoteURL returns the web URL of the origin remote. Any failure (git not
// installed, not a repository, no origin) reports the URL as unavailable.
func (r *GitResolver) RemoteURL(ctx context.Context, dir string) (string, bool) {
	out, err := r.run(ctx, dir, "config", "--get", "remote.origin.url")
	if err != nil {
		logger.Debug("%v: %v", domain.ErrVCSUnavailable, err)
		return "", false
	}
	web := NormalizeRemoteURL(strings.TrimSpace(out))
	if web == "" {
		logger.Debug("%v: cannot map remote %q to a web URL", domain.ErrVCSUnavailable, strings.TrimSpace(out))
		return "", false
	}
	return web, true
}

// NormalizeRemoteURL converts a git remote into an https web URL.
// It accepts scp-style (git@host:owner/repo.git), ssh://, git:// and
// http(s):// remotes, dropping credentials and the .git suffix. Local
// remotes return "".
func NormalizeRemoteURL(remote string) string {
	if remote == "" {
		return ""
	}

	// scp-style: [user@]host:path
	if !strings.Contains(remote, "://") {
		at := strings.Index(remote, "@")
		colon := strings.Index(remote, ":")
		if colon <= 0 || colon < at || strings.HasPrefix(remote, "/") {
			return ""
		}
		host := remote[at+1 : colon]
		return buildURL("https", host, remote[colon+1:])
	}

	u, err := url.Parse(remote)
	if err != nil || u.Host == "" {
		return ""
	}
	scheme := "https"
	if u.Scheme == "http" {
		scheme = "http"
	}
	switch u.Scheme {
	case "http", "https", "ssh", "git", "git+ssh":
	default:
		return ""
	}
	return buildURL(scheme, u.Hostname(), u.Path)
}

func buildURL(scheme, host, path string) string {
	path = strings.Trim(path, "/")
	path = strings.TrimSuffix(path, ".git")
	if host == "" || path == "" {
		return ""
	}
	u := url.URL{Scheme: scheme, Host: host, Path: "/" + path}
	return u.String()
}

// Package vcs resolves repository metadata for templates.
//
// Adapters:
//   - GitResolver: reads the origin remote with the git binary
//   - GitHubEnricher: fetches repository details from the GitHub API
package vcs

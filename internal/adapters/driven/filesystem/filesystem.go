// Package filesystem implements driven.FileSystem on the local disk.
package filesystem

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/custodia-labs/brander/internal/core/ports/driven"
)

// Ensure Local implements the interface.
var _ driven.FileSystem = (*Local)(nil)

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// Local is the operating system filesystem.
type Local struct{}

// New creates a local filesystem.
func New() *Local {
	return &Local{}
}

// ReadFile reads a whole file.
func (l *Local) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// WriteFile replaces path, creating parent directories.
func (l *Local) WriteFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return err
	}
	return os.WriteFile(path, data, filePerm)
}

// WriteString replaces path with content.
func (l *Local) WriteString(path, content string) error {
	return l.WriteFile(path, []byte(content))
}

// Remove deletes path recursively. Missing paths are ignored.
func (l *Local) Remove(path string) error {
	return os.RemoveAll(path)
}

// Glob expands patterns relative to baseDir and returns the matching files
// as absolute, sorted, de-duplicated paths. A pattern starting with "!"
// removes its matches from the result.
func (l *Local) Glob(baseDir string, patterns []string) ([]string, error) {
	base, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, err
	}

	included := make(map[string]bool)
	excluded := make(map[string]bool)
	for _, pattern := range patterns {
		pattern = strings.TrimSpace(pattern)
		target := included
		if strings.HasPrefix(pattern, "!") {
			pattern = strings.TrimPrefix(pattern, "!")
			target = excluded
		}
		if pattern == "" {
			continue
		}
		matches, err := glob(base, pattern)
		if err != nil {
			return nil, err
		}
		for _, m := range matches {
			target[m] = true
		}
	}

	out := make([]string, 0, len(included))
	for m := range included {
		if !excluded[m] {
			out = append(out, m)
		}
	}
	sort.Strings(out)
	return out, nil
}

func glob(base, pattern string) ([]string, error) {
	if filepath.IsAbs(pattern) {
		matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("glob %q: %w", pattern, err)
		}
		return matches, nil
	}

	slashed := filepath.ToSlash(filepath.Clean(pattern))
	if !doublestar.ValidatePattern(slashed) {
		return nil, fmt.Errorf("glob %q: %w", pattern, doublestar.ErrBadPattern)
	}
	matches, err := doublestar.Glob(os.DirFS(base), slashed, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("glob %q: %w", pattern, err)
	}
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = filepath.Join(base, filepath.FromSlash(m))
	}
	return out, nil
}

package domain

import (
	"path/filepath"
	"sync"
)

// Project holds the descriptive fields every template can reference.
type Project struct {
	Name        string
	Version     string
	Description string
	Author      string
	License     string
	Repository  string
	Homepage    string
}

// Config is the loaded brander configuration shared by every context.
// Documents and Tasks are the raw, ordered entries exactly as decoded.
type Config struct {
	// Path is the configuration file the entries were read from.
	Path string

	// Dir is the base directory for relative input and output paths.
	Dir string

	Project Project

	// Vars are user-defined template variables.
	Vars Data

	Documents []any
	Tasks     []any

	// GitHub enables repository metadata enrichment through the GitHub API.
	GitHub bool

	once  sync.Once
	scope *Scope
}

// Scope returns the run scope bound to this configuration.
func (c *Config) Scope() *Scope {
	c.once.Do(func() {
		if c.scope == nil {
			c.scope = NewScope()
		}
	})
	return c.scope
}

// ResolvePath anchors a configured path at the configuration directory.
// An empty path resolves to the directory itself.
func (c *Config) ResolvePath(p string) string {
	if p == "" && c.Dir != "" {
		return c.Dir
	}
	if filepath.IsAbs(p) || c.Dir == "" {
		return filepath.Clean(p)
	}
	return filepath.Join(c.Dir, p)
}

// TemplateVars returns the variables visible to templates, lowest priority
// first: project fields, user vars, then scope attributes.
func (c *Config) TemplateVars() map[string]any {
	vars := map[string]any{
		"name":        c.Project.Name,
		"version":     c.Project.Version,
		"description": c.Project.Description,
		"author":      c.Project.Author,
		"license":     c.Project.License,
		"repository":  c.Project.Repository,
		"homepage":    c.Project.Homepage,
	}
	for k, v := range c.Vars {
		vars[k] = CloneValue(v)
	}
	for k, v := range c.Scope().Attributes() {
		vars[k] = v
	}
	return vars
}

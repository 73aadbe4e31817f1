package file

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/brander/internal/core/domain"
	"github.com/custodia-labs/brander/internal/core/ports/driven"
)

// Ensure Loader implements the interface.
var _ driven.ConfigLoader = (*Loader)(nil)

// DefaultFileNames lists the configuration files searched for, in order.
var DefaultFileNames = []string{"brander.toml", "brander.yaml", "brander.yml", "brander.json"}

// Loader reads brander configuration files.
type Loader struct {
	workDir string
}

// NewLoader creates a loader that searches workDir for a default
// configuration file. If workDir is empty, the current directory is used.
func NewLoader(workDir string) *Loader {
	return &Loader{workDir: workDir}
}

// Load reads the configuration at path, or the first default file found
// when path is empty.
func (l *Loader) Load(path string) (*domain.Config, error) {
	if path == "" {
		found, err := l.Find()
		if err != nil {
			return nil, err
		}
		path = found
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	raw, err := decode(abs, data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(abs), err)
	}
	cfg, err := toConfig(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(abs), err)
	}
	cfg.Path = abs
	cfg.Dir = filepath.Dir(abs)
	return cfg, nil
}

// Find returns the first default configuration file in the working
// directory.
func (l *Loader) Find() (string, error) {
	dir := l.workDir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", err
		}
		dir = wd
	}
	for _, name := range DefaultFileNames {
		candidate := filepath.Join(dir, name)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("%w: no brander configuration in %s (looked for %s)",
		domain.ErrNotFound, dir, strings.Join(DefaultFileNames, ", "))
}

// decode parses data according to the file extension.
func decode(path string, data []byte) (map[string]any, error) {
	var raw map[string]any
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if err := toml.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
	case ".json":
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: config file %s (use .toml, .yaml, .yml or .json)",
			domain.ErrUnsupportedFormat, filepath.Base(path))
	}
	if raw == nil {
		raw = make(map[string]any)
	}
	return raw, nil
}

// toConfig maps the decoded document onto domain.Config.
func toConfig(raw map[string]any) (*domain.Config, error) {
	root := domain.Data(raw)
	cfg := &domain.Config{}

	if root.Has("project") {
		project, ok := root.Map("project")
		if !ok {
			return nil, fmt.Errorf("%w: project must be a table", domain.ErrConfig)
		}
		if err := readProject(project, &cfg.Project); err != nil {
			return nil, err
		}
	}

	if root.Has("vars") {
		vars, ok := root.Map("vars")
		if !ok {
			return nil, fmt.Errorf("%w: vars must be a table", domain.ErrConfig)
		}
		cfg.Vars = vars.Clone()
	}

	var err error
	if cfg.Documents, err = root.List("documents"); err != nil {
		return nil, err
	}
	if cfg.Tasks, err = root.List("tasks"); err != nil {
		return nil, err
	}

	if root.Has("github") {
		enabled, ok := root.Bool("github")
		if !ok {
			return nil, fmt.Errorf("%w: github must be true or false", domain.ErrConfig)
		}
		cfg.GitHub = enabled
	}
	return cfg, nil
}

func readProject(d domain.Data, p *domain.Project) error {
	fields := map[string]*string{
		"name":        &p.Name,
		"version":     &p.Version,
		"description": &p.Description,
		"author":      &p.Author,
		"license":     &p.License,
		"repository":  &p.Repository,
		"homepage":    &p.Homepage,
	}
	for key, dst := range fields {
		v, ok := d[key]
		if !ok || v == nil {
			continue
		}
		s, isString := v.(string)
		if !isString {
			return fmt.Errorf("%w: project.%s must be a string, got %T", domain.ErrConfig, key, v)
		}
		*dst = s
	}
	return nil
}

// ErrExists is returned by WriteStarter when the target file exists.
var ErrExists = errors.New("configuration already exists")

type starterProject struct {
	Name        string `toml:"name"`
	Version     string `toml:"version"`
	Description string `toml:"description"`
}

type starterFile struct {
	Project   starterProject   `toml:"project"`
	Documents []map[string]any `toml:"documents"`
	Tasks     []map[string]any `toml:"tasks"`
}

// WriteStarter writes a minimal brander.toml into dir and returns its path.
// An existing file is only replaced when force is set.
func WriteStarter(dir string, force bool) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	path := filepath.Join(abs, DefaultFileNames[0])
	if _, err := os.Stat(path); err == nil && !force {
		return "", fmt.Errorf("%w: %s", ErrExists, path)
	}

	starter := starterFile{
		Project: starterProject{
			Name:        filepath.Base(abs),
			Version:     "0.1.0",
			Description: "",
		},
		Documents: []map[string]any{
			{
				"doc":    "README.md",
				"header": true,
				"sections": []map[string]any{
					{"type": "toc", "title": "Contents"},
					{"title": "Usage", "template": "Describe how to use {{.name}}."},
				},
			},
		},
		Tasks: []map[string]any{
			{"type": "optimize", "input": "assets/**/*.svg"},
		},
	}

	data, err := toml.Marshal(starter)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}

package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/brander/internal/core/domain"
	"github.com/custodia-labs/brander/internal/core/ports/driven"
)

// TaskParser parses task entries into task contexts.
type TaskParser = ContextParser[*domain.TaskContext]

// NewTaskParser creates a parser over task entries. Inputs are glob-expanded
// at parse time; outputs stay templated until a task expands them.
func NewTaskParser(
	registry *Registry[driven.Task],
	fs driven.FileSystem,
	templater driven.Templater,
	cfg *domain.Config,
	entries []any,
	opts ...ParserOption[*domain.TaskContext],
) *TaskParser {
	render := func(pattern string, vars map[string]any) (string, error) {
		merged := cfg.TemplateVars()
		for k, v := range vars {
			merged[k] = v
		}
		out, err := templater.Render(pattern, merged)
		if err != nil {
			return "", err
		}
		return cfg.ResolvePath(out), nil
	}

	parse := func(_ context.Context, data domain.Data, index int) ([]*domain.TaskContext, error) {
		raw := data.String("type")
		if raw == "" {
			return nil, fmt.Errorf("%w: task %d: type is required", domain.ErrConfig, index)
		}
		typ, err := domain.ParseTaskType(raw)
		if err != nil {
			return nil, fmt.Errorf("task %d: %w", index, err)
		}
		if _, err := registry.FindByType(typ.String()); err != nil {
			return nil, fmt.Errorf("task %d: %w", index, err)
		}

		patterns, err := data.Strings("input")
		if err != nil {
			return nil, fmt.Errorf("task %d: %w", index, err)
		}
		paths, err := fs.Glob(cfg.Dir, patterns)
		if err != nil {
			return nil, fmt.Errorf("task %d: expand input: %w", index, err)
		}
		inputs := make([]domain.File, 0, len(paths))
		for _, p := range paths {
			inputs = append(inputs, domain.NewFile(p))
		}

		var output *domain.File
		if data.Has("output") {
			pattern := data.String("output")
			if pattern == "" {
				return nil, fmt.Errorf("%w: task %d: output must be a non-empty string", domain.ErrConfig, index)
			}
			f := domain.NewTemplatedFile(pattern, render)
			output = &f
		}
		if output == nil && typ.RequiresOutput() {
			return nil, fmt.Errorf("%w: task %d (%s): output is required", domain.ErrConfig, index, typ)
		}

		return []*domain.TaskContext{domain.NewTaskContext(typ, data, inputs, output, cfg)}, nil
	}
	return NewContextParser[*domain.TaskContext](entries, parse, opts...)
}

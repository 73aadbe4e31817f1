package tasks

import (
	"context"
	"fmt"

	"github.com/custodia-labs/brander/internal/core/domain"
	"github.com/custodia-labs/brander/internal/core/ports/driven"
	"github.com/custodia-labs/brander/internal/logger"
)

// Builtins returns the loader for the built-in tasks, for use with
// services.NewTaskRegistry.
func Builtins(fs driven.FileSystem) func() []driven.Task {
	return func() []driven.Task {
		return []driven.Task{
			NewCleanTask(fs),
			NewConvertTask(fs),
			NewOptimizeTask(fs),
			NewPackageTask(fs),
		}
	}
}

// counter tracks how many files a task produced during one run.
type counter struct {
	verb  string
	count int
}

// BeforeAll resets the counter.
func (c *counter) BeforeAll(_ context.Context, _ *domain.Config) error {
	c.count = 0
	return nil
}

// AfterAll reports the counter.
func (c *counter) AfterAll(_ context.Context, _ *domain.Config) error {
	logger.Info("%s %d file(s)", c.verb, c.count)
	return nil
}

// Before is a no-op.
func (c *counter) Before(_ context.Context, _ *domain.TaskContext) error {
	return nil
}

// After is a no-op.
func (c *counter) After(_ context.Context, _ *domain.TaskContext) error {
	return nil
}

// outputFor expands the output pattern for one input. The pattern sees the
// input's path, dir, base, name and ext.
func outputFor(tc *domain.TaskContext, input string) (string, error) {
	output, ok := tc.Output()
	if !ok {
		return "", fmt.Errorf("%w: %s task has no output", domain.ErrConfig, tc.Type())
	}
	var vars map[string]any
	if input != "" {
		vars = domain.PathVars(input)
	}
	return output.Expand(vars)
}

func hasFormat(files []domain.File, ok func(domain.Format) bool) bool {
	if len(files) == 0 {
		return false
	}
	for _, f := range files {
		if !ok(f.Format()) {
			return false
		}
	}
	return true
}

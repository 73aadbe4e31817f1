package tasks

import (
	"context"
	"fmt"

	"github.com/custodia-labs/brander/internal/core/domain"
	"github.com/custodia-labs/brander/internal/core/ports/driven"
	"github.com/custodia-labs/brander/internal/logger"
)

// Ensure CleanTask implements the interface.
var _ driven.Task = (*CleanTask)(nil)

// CleanTask removes the matched input files and any configured "paths",
// which may name directories.
type CleanTask struct {
	counter
	fs driven.FileSystem
}

// NewCleanTask creates the clean task.
func NewCleanTask(fs driven.FileSystem) *CleanTask {
	return &CleanTask{counter: counter{verb: "Removed"}, fs: fs}
}

// Type returns domain.TaskClean.
func (t *CleanTask) Type() domain.TaskType {
	return domain.TaskClean
}

// Supports accepts every clean context; nothing to remove is not an error.
func (t *CleanTask) Supports(_ *domain.TaskContext) bool {
	return true
}

// Execute removes the files.
func (t *CleanTask) Execute(ctx context.Context, tc *domain.TaskContext) error {
	paths, err := tc.Data().Strings("paths")
	if err != nil {
		return err
	}
	targets := make([]string, 0, len(tc.Inputs())+len(paths))
	for _, in := range tc.Inputs() {
		targets = append(targets, in.Path())
	}
	for _, p := range paths {
		targets = append(targets, tc.Config().ResolvePath(p))
	}

	for _, target := range targets {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := t.fs.Remove(target); err != nil {
			return fmt.Errorf("remove %s: %w", target, err)
		}
		logger.Debug("Removed %s", target)
		t.count++
	}
	return nil
}

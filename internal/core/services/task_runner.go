package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/custodia-labs/brander/internal/core/domain"
	"github.com/custodia-labs/brander/internal/core/ports/driven"
	"github.com/custodia-labs/brander/internal/logger"
)

// TaskRunner executes task contexts through the task lifecycle.
type TaskRunner struct {
	registry *Registry[driven.Task]
}

// NewTaskRunner creates a task runner.
func NewTaskRunner(registry *Registry[driven.Task]) *TaskRunner {
	return &TaskRunner{registry: registry}
}

// Run executes tasks strictly in order. BeforeAll fires once per task before
// its first context; AfterAll fires once per started task when the run ends,
// including after a failure. The first failure stops the run.
func (r *TaskRunner) Run(ctx context.Context, cfg *domain.Config, tasks []*domain.TaskContext) (err error) {
	var started []driven.Task
	seen := make(map[domain.TaskType]bool)

	defer func() {
		for _, task := range started {
			if afterErr := task.AfterAll(ctx, cfg); afterErr != nil {
				err = errors.Join(err, fmt.Errorf("%s: after all: %w", task.Type(), afterErr))
			}
		}
	}()

	run := func(ctx context.Context, tc *domain.TaskContext) (struct{}, error) {
		task, err := r.registry.FindByType(tc.Type())
		if err != nil {
			return struct{}{}, err
		}
		if !seen[task.Type()] {
			seen[task.Type()] = true
			started = append(started, task)
			if err := task.BeforeAll(ctx, cfg); err != nil {
				return struct{}{}, fmt.Errorf("%s: before all: %w", task.Type(), err)
			}
		}
		return struct{}{}, runTask(ctx, task, tc)
	}

	_, err = NewContextRunner[*domain.TaskContext, struct{}](tasks, run, nil).Run(ctx)
	return err
}

// runTask runs one supported context through Before, Execute and After.
func runTask(ctx context.Context, task driven.Task, tc *domain.TaskContext) error {
	if !task.Supports(tc) {
		logger.Debug("%s task does not support context, skipping", task.Type())
		return nil
	}
	if err := task.Before(ctx, tc); err != nil {
		return fmt.Errorf("%s: before: %w", task.Type(), err)
	}
	execErr := task.Execute(ctx, tc)
	if execErr != nil {
		execErr = fmt.Errorf("%s: %w", task.Type(), execErr)
	}
	if afterErr := task.After(ctx, tc); afterErr != nil {
		return errors.Join(execErr, fmt.Errorf("%s: after: %w", task.Type(), afterErr))
	}
	return execErr
}

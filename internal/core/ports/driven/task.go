package driven

import (
	"context"

	"github.com/custodia-labs/brander/internal/core/domain"
)

// Task executes asset work for task contexts of one type.
//
// The runner calls BeforeAll once before the first context of the task's
// type, then Before, Execute and After for every context the task Supports,
// and AfterAll once at the end of the run, even after a failure.
type Task interface {
	// Type returns the task category handled by this task.
	Type() domain.TaskType

	// Supports reports whether the task can process the context. Unsupported
	// contexts are skipped without error.
	Supports(tc *domain.TaskContext) bool

	// Execute performs the work for one context.
	Execute(ctx context.Context, tc *domain.TaskContext) error

	// Before runs before Execute for a supported context.
	Before(ctx context.Context, tc *domain.TaskContext) error

	// After runs after Execute, even when Execute failed.
	After(ctx context.Context, tc *domain.TaskContext) error

	// BeforeAll runs once before the first context.
	BeforeAll(ctx context.Context, cfg *domain.Config) error

	// AfterAll runs once after the last context, even after a failure.
	AfterAll(ctx context.Context, cfg *domain.Config) error
}

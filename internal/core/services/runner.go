package services

import (
	"context"
	"fmt"
)

// RunFunc runs a single context.
type RunFunc[C, R any] func(ctx context.Context, c C) (R, error)

// ContextRunner runs already-parsed contexts strictly in order. Later
// contexts may depend on side effects of earlier ones, so there is no
// parallelism and the first failure stops the run.
type ContextRunner[C, R any] struct {
	contexts []C
	run      RunFunc[C, R]
	keep     func(R) bool
}

// NewContextRunner creates a runner. keep filters the collected results and
// may be nil to keep everything.
func NewContextRunner[C, R any](contexts []C, run RunFunc[C, R], keep func(R) bool) *ContextRunner[C, R] {
	return &ContextRunner[C, R]{
		contexts: contexts,
		run:      run,
		keep:     keep,
	}
}

// Run executes every context and returns the kept results in order.
func (r *ContextRunner[C, R]) Run(ctx context.Context) ([]R, error) {
	results := make([]R, 0, len(r.contexts))
	for i, c := range r.contexts {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		res, err := r.run(ctx, c)
		if err != nil {
			return results, fmt.Errorf("context %d: %w", i, err)
		}
		if r.keep == nil || r.keep(res) {
			results = append(results, res)
		}
	}
	return results, nil
}

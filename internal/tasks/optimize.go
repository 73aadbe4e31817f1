package tasks

import (
	"context"
	"fmt"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/svg"

	"github.com/custodia-labs/brander/internal/core/domain"
	"github.com/custodia-labs/brander/internal/core/ports/driven"
	"github.com/custodia-labs/brander/internal/logger"
)

// Ensure OptimizeTask implements the interface.
var _ driven.Task = (*OptimizeTask)(nil)

const svgMediaType = "image/svg+xml"

// OptimizeTask minifies SVG files, in place or to "output".
//
// Entries:
//   - precision: significant digits kept in numbers (0 keeps all)
type OptimizeTask struct {
	counter
	fs driven.FileSystem
}

// NewOptimizeTask creates the optimize task.
func NewOptimizeTask(fs driven.FileSystem) *OptimizeTask {
	return &OptimizeTask{counter: counter{verb: "Optimized"}, fs: fs}
}

// Type returns domain.TaskOptimize.
func (t *OptimizeTask) Type() domain.TaskType {
	return domain.TaskOptimize
}

// Supports accepts contexts whose inputs are all SVG.
func (t *OptimizeTask) Supports(tc *domain.TaskContext) bool {
	return hasFormat(tc.Inputs(), func(f domain.Format) bool { return f == domain.FormatSVG })
}

// Execute minifies every input.
func (t *OptimizeTask) Execute(ctx context.Context, tc *domain.TaskContext) error {
	precision, err := tc.Data().IntOr("precision", 0)
	if err != nil {
		return err
	}
	m := minify.New()
	m.Add(svgMediaType, &svg.Minifier{Precision: precision})

	_, hasOutput := tc.Output()
	for _, in := range tc.Inputs() {
		if err := ctx.Err(); err != nil {
			return err
		}
		out := in.Path()
		if hasOutput {
			if out, err = outputFor(tc, in.Path()); err != nil {
				return err
			}
		}

		raw, err := t.fs.ReadFile(in.Path())
		if err != nil {
			return fmt.Errorf("read %s: %w", in.Path(), err)
		}
		minified, err := m.Bytes(svgMediaType, raw)
		if err != nil {
			return fmt.Errorf("minify %s: %w", in.Path(), err)
		}
		if err := t.fs.WriteFile(out, minified); err != nil {
			return fmt.Errorf("write %s: %w", out, err)
		}
		logger.Debug("Optimized %s (%d -> %d bytes)", in.Path(), len(raw), len(minified))
		t.count++
	}
	return nil
}

package tasks

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zip"

	"github.com/custodia-labs/brander/internal/core/domain"
	"github.com/custodia-labs/brander/internal/core/ports/driven"
	"github.com/custodia-labs/brander/internal/logger"
)

// Ensure PackageTask implements the interface.
var _ driven.Task = (*PackageTask)(nil)

// PackageTask bundles the inputs into a zip archive at "output".
//
// Entries:
//   - base: directory archive names are relative to (default: the
//     configuration directory)
type PackageTask struct {
	counter
	fs driven.FileSystem
}

// NewPackageTask creates the package task.
func NewPackageTask(fs driven.FileSystem) *PackageTask {
	return &PackageTask{counter: counter{verb: "Packaged"}, fs: fs}
}

// Type returns domain.TaskPackage.
func (t *PackageTask) Type() domain.TaskType {
	return domain.TaskPackage
}

// Supports accepts contexts with at least one input.
func (t *PackageTask) Supports(tc *domain.TaskContext) bool {
	return len(tc.Inputs()) > 0
}

// Execute writes the archive.
func (t *PackageTask) Execute(ctx context.Context, tc *domain.TaskContext) error {
	out, err := outputFor(tc, "")
	if err != nil {
		return err
	}
	cfg := tc.Config()
	base := cfg.ResolvePath(tc.String("base"))

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, in := range tc.Inputs() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if in.Path() == out {
			continue
		}
		name := archiveName(base, in.Path())
		raw, err := t.fs.ReadFile(in.Path())
		if err != nil {
			return fmt.Errorf("read %s: %w", in.Path(), err)
		}
		w, err := zw.CreateHeader(&zip.FileHeader{Name: name, Method: zip.Deflate})
		if err != nil {
			return fmt.Errorf("add %s: %w", name, err)
		}
		if _, err := w.Write(raw); err != nil {
			return fmt.Errorf("add %s: %w", name, err)
		}
		t.count++
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("close archive: %w", err)
	}

	if err := t.fs.WriteFile(out, buf.Bytes()); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}
	logger.Debug("Packaged %d file(s) into %s", len(tc.Inputs()), out)
	return nil
}

// archiveName returns the slash-separated name of path inside the archive.
// Files outside base keep only their base name.
func archiveName(base, path string) string {
	rel, err := filepath.Rel(base, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return filepath.Base(path)
	}
	return filepath.ToSlash(rel)
}

package domain

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format identifies the content type of an input or output file.
type Format string

// Supported formats.
const (
	FormatUnknown  Format = ""
	FormatMarkdown Format = "markdown"
	FormatSVG      Format = "svg"
	FormatPNG      Format = "png"
	FormatJPEG     Format = "jpeg"
	FormatGIF      Format = "gif"
	FormatBMP      Format = "bmp"
	FormatTIFF     Format = "tiff"
	FormatWEBP     Format = "webp"
	FormatZIP      Format = "zip"
)

var extensionFormats = map[string]Format{
	".md":       FormatMarkdown,
	".markdown": FormatMarkdown,
	".svg":      FormatSVG,
	".png":      FormatPNG,
	".jpg":      FormatJPEG,
	".jpeg":     FormatJPEG,
	".gif":      FormatGIF,
	".bmp":      FormatBMP,
	".tif":      FormatTIFF,
	".tiff":     FormatTIFF,
	".webp":     FormatWEBP,
	".zip":      FormatZIP,
}

// DetectFormat infers a format from a file extension.
func DetectFormat(path string) Format {
	return extensionFormats[strings.ToLower(filepath.Ext(path))]
}

// ParseDocumentFormat resolves a configured document format.
// Markdown is the only format documents can be rendered to.
func ParseDocumentFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "md", "markdown":
		return FormatMarkdown, nil
	default:
		return FormatUnknown, fmt.Errorf("%w: %q (only markdown is supported)", ErrUnsupportedFormat, s)
	}
}

// RenderFunc evaluates a path template against variables.
type RenderFunc func(pattern string, vars map[string]any) (string, error)

// File is a resolved input or output file.
// Output files keep their path pattern and evaluate it on demand because
// the final path usually depends on the input being processed.
type File struct {
	path    string
	format  Format
	pattern string
	render  RenderFunc
}

// NewFile returns a file for a concrete path.
func NewFile(path string) File {
	return File{path: path, format: DetectFormat(path), pattern: path}
}

// NewTemplatedFile returns a file whose path is evaluated lazily.
// The format is detected from the pattern's extension.
func NewTemplatedFile(pattern string, render RenderFunc) File {
	return File{path: pattern, format: DetectFormat(pattern), pattern: pattern, render: render}
}

// Path returns the path, or the raw pattern for templated files.
func (f File) Path() string {
	return f.path
}

// Format returns the detected format.
func (f File) Format() Format {
	return f.format
}

// Pattern returns the unevaluated path template.
func (f File) Pattern() string {
	return f.pattern
}

// IsTemplated reports whether the path must be expanded before use.
func (f File) IsTemplated() bool {
	return f.render != nil
}

// Expand evaluates the path template with vars.
func (f File) Expand(vars map[string]any) (string, error) {
	if f.render == nil {
		return f.path, nil
	}
	out, err := f.render(f.pattern, vars)
	if err != nil {
		return "", fmt.Errorf("expand path %q: %w", f.pattern, err)
	}
	return out, nil
}

// PathVars returns the template variables describing a concrete path:
// dir, base, name (base without extension) and ext (without the dot).
func PathVars(path string) map[string]any {
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	return map[string]any{
		"path": path,
		"dir":  filepath.Dir(path),
		"base": base,
		"name": strings.TrimSuffix(base, ext),
		"ext":  strings.TrimPrefix(ext, "."),
	}
}

package tasks

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp" // registers the WebP decoder

	"github.com/custodia-labs/brander/internal/core/domain"
	"github.com/custodia-labs/brander/internal/core/ports/driven"
	"github.com/custodia-labs/brander/internal/logger"
)

// Ensure ConvertTask implements the interface.
var _ driven.Task = (*ConvertTask)(nil)

const defaultJPEGQuality = 90

// ConvertTask converts raster images between formats, optionally resizing
// them.
//
// Entries:
//   - output: path template per input, e.g. "dist/{{.name}}.png"
//   - format: target format, defaults to the output extension
//   - width, height: target size in pixels; one alone keeps the aspect ratio
//   - quality: JPEG quality 1-100
type ConvertTask struct {
	counter
	fs driven.FileSystem
}

// NewConvertTask creates the convert task.
func NewConvertTask(fs driven.FileSystem) *ConvertTask {
	return &ConvertTask{counter: counter{verb: "Converted"}, fs: fs}
}

// Type returns domain.TaskConvert.
func (t *ConvertTask) Type() domain.TaskType {
	return domain.TaskConvert
}

// Supports accepts contexts whose inputs are all decodable images and whose
// target format can be encoded. An unencodable target is logged as a
// warning.
func (t *ConvertTask) Supports(tc *domain.TaskContext) bool {
	if !hasFormat(tc.Inputs(), decodable) {
		return false
	}
	target := targetFormat(tc)
	if _, ok := encoders[target]; !ok {
		logger.Warn("convert: cannot encode target format %q, skipping %d inputs: %v",
			string(target), len(tc.Inputs()), domain.ErrUnsupportedFormat)
		return false
	}
	return true
}

var decodableFormats = map[domain.Format]bool{
	domain.FormatPNG:  true,
	domain.FormatJPEG: true,
	domain.FormatGIF:  true,
	domain.FormatBMP:  true,
	domain.FormatTIFF: true,
	domain.FormatWEBP: true,
}

func decodable(f domain.Format) bool {
	return decodableFormats[f]
}

type encodeFunc func(w io.Writer, img image.Image, quality int) error

var encoders = map[domain.Format]encodeFunc{
	domain.FormatPNG: func(w io.Writer, img image.Image, _ int) error {
		return png.Encode(w, img)
	},
	domain.FormatJPEG: func(w io.Writer, img image.Image, quality int) error {
		return jpeg.Encode(w, img, &jpeg.Options{Quality: quality})
	},
	domain.FormatGIF: func(w io.Writer, img image.Image, _ int) error {
		return gif.Encode(w, img, nil)
	},
	domain.FormatBMP: func(w io.Writer, img image.Image, _ int) error {
		return bmp.Encode(w, img)
	},
	domain.FormatTIFF: func(w io.Writer, img image.Image, _ int) error {
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	},
}

// targetFormat is the configured format, or the one implied by the output
// pattern's extension.
func targetFormat(tc *domain.TaskContext) domain.Format {
	if f := tc.String("format"); f != "" {
		f = strings.ToLower(strings.TrimSpace(f))
		return domain.DetectFormat("." + f)
	}
	output, ok := tc.Output()
	if !ok {
		return domain.FormatUnknown
	}
	return domain.DetectFormat(output.Pattern())
}

// Execute converts every input.
func (t *ConvertTask) Execute(ctx context.Context, tc *domain.TaskContext) error {
	data := tc.Data()
	width, err := data.IntOr("width", 0)
	if err != nil {
		return err
	}
	height, err := data.IntOr("height", 0)
	if err != nil {
		return err
	}
	quality, err := data.IntOr("quality", defaultJPEGQuality)
	if err != nil {
		return err
	}
	if width < 0 || height < 0 {
		return fmt.Errorf("%w: width and height must not be negative", domain.ErrConfig)
	}
	if quality < 1 || quality > 100 {
		return fmt.Errorf("%w: quality must be between 1 and 100, got %d", domain.ErrConfig, quality)
	}
	encode := encoders[targetFormat(tc)]

	outputs, err := planOutputs(tc)
	if err != nil {
		return err
	}
	for i, in := range tc.Inputs() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := t.convert(in.Path(), outputs[i], width, height, quality, encode); err != nil {
			return err
		}
		logger.Debug("Converted %s -> %s", in.Path(), outputs[i])
		t.count++
	}
	return nil
}

// planOutputs expands the output path of every input, in input order.
// Two inputs sharing an output are rejected before anything is converted.
func planOutputs(tc *domain.TaskContext) ([]string, error) {
	inputs := tc.Inputs()
	outputs := make([]string, 0, len(inputs))
	sources := make(map[string]string, len(inputs))
	for _, in := range inputs {
		out, err := outputFor(tc, in.Path())
		if err != nil {
			return nil, err
		}
		if prev, dup := sources[out]; dup {
			return nil, fmt.Errorf("%w: %s and %s both convert to %s", domain.ErrConfig, prev, in.Path(), out)
		}
		sources[out] = in.Path()
		outputs = append(outputs, out)
	}
	return outputs, nil
}

func (t *ConvertTask) convert(in, out string, width, height, quality int, encode encodeFunc) error {
	raw, err := t.fs.ReadFile(in)
	if err != nil {
		return fmt.Errorf("read %s: %w", in, err)
	}
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("decode %s: %w", in, err)
	}
	img = resize(img, width, height)

	var buf bytes.Buffer
	if err := encode(&buf, img, quality); err != nil {
		return fmt.Errorf("encode %s: %w", out, err)
	}
	if err := t.fs.WriteFile(out, buf.Bytes()); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}
	return nil
}

// resize scales img to width x height. A zero dimension is derived from
// the other one; both zero leaves the image unchanged.
func resize(img image.Image, width, height int) image.Image {
	b := img.Bounds()
	if width == 0 && height == 0 || b.Dx() == 0 || b.Dy() == 0 {
		return img
	}
	if width == 0 {
		width = max(1, b.Dx()*height/b.Dy())
	}
	if height == 0 {
		height = max(1, b.Dy()*width/b.Dx())
	}
	if width == b.Dx() && height == b.Dy() {
		return img
	}
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}

// Package luminance converts a region of an RGBA frame buffer into a
// fixed-size boolean grid. Each grid cell is classified as bright or dark
// by sampling the pixel at the cell's centre and comparing its relative
// luminance against a threshold.
package luminance

import (
	"errors"
	"image"
	"math"
	"time"

	"github.com/tauraamui/xerror"
)

// Relative luminance channel weightings per ITU-R BT.709. These sum to 1
// so a uniform grey pixel's brightness equals its channel value.
const (
	redWeight   = 0.2126
	greenWeight = 0.7152
	blueWeight  = 0.0722
)

var (
	ErrInvalidOffset     = errors.New("sampling window offset must not be negative")
	ErrInvalidWindowSize = errors.New("sampling window dimensions must be greater than zero")
	ErrInvalidMatrixSize = errors.New("matrix dimensions must be greater than zero")
	ErrWindowOutOfBounds = errors.New("sampling window exceeds buffer bounds")
	ErrInvalidThreshold  = errors.New("threshold must be within 0-255 range")
)

// Buffer is an immutable view over interleaved 8-bit RGBA pixel data,
// row-major with origin at the top left. len(Pix) must be Width*Height*4.
type Buffer struct {
	Width, Height int
	Pix           []uint8
}

// BufferFromImage adapts a stdlib RGBA image into a Buffer. The image's
// pixel data is referenced directly when its stride is packed, otherwise
// rows are copied into a packed buffer.
func BufferFromImage(img *image.RGBA) Buffer {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if img.Stride == w*4 {
		return Buffer{Width: w, Height: h, Pix: img.Pix}
	}

	pix := make([]uint8, w*h*4)
	for y := 0; y < h; y++ {
		copy(pix[y*w*4:(y+1)*w*4], img.Pix[y*img.Stride:y*img.Stride+w*4])
	}
	return Buffer{Width: w, Height: h, Pix: pix}
}

// Result holds the boolean grid produced by a single analysis, along with
// the exact configuration used and the instant the analysis completed.
// Results are never mutated after construction.
type Result struct {
	Matrix    [][]bool
	Config    Config
	Timestamp time.Time
}

// BrightCount returns how many cells in the matrix were classified bright.
func (r Result) BrightCount() int {
	count := 0
	for _, row := range r.Matrix {
		for _, bright := range row {
			if bright {
				count++
			}
		}
	}
	return count
}

// Analyze partitions the configured sampling window into a Rows x Columns
// grid of equal-size cells and classifies each cell by the relative
// luminance of the single pixel under the cell's centre point. It is a pure
// function: no internal state, no side effects beyond reading buf, safe to
// invoke concurrently on independent inputs.
//
// Configuration is validated before any sampling occurs; on failure no
// partial result is returned and the error wraps the specific violated
// constraint sentinel.
func Analyze(buf Buffer, cfg Config) (Result, error) {
	if err := validate(buf, cfg); err != nil {
		return Result{}, err
	}

	threshold := cfg.threshold()
	cellWidth := cfg.WindowWidth / float64(cfg.Columns)
	cellHeight := cfg.WindowHeight / float64(cfg.Rows)

	matrix := make([][]bool, cfg.Rows)
	for row := 0; row < cfg.Rows; row++ {
		cells := make([]bool, cfg.Columns)
		for col := 0; col < cfg.Columns; col++ {
			x := int(math.Floor(float64(cfg.OffsetX) + (float64(col)+0.5)*cellWidth))
			y := int(math.Floor(float64(cfg.OffsetY) + (float64(row)+0.5)*cellHeight))
			cells[col] = brightness(buf, x, y) >= threshold
		}
		matrix[row] = cells
	}

	return Result{Matrix: matrix, Config: cfg, Timestamp: time.Now()}, nil
}

func brightness(buf Buffer, x, y int) float64 {
	i := (y*buf.Width + x) * 4
	r := float64(buf.Pix[i])
	g := float64(buf.Pix[i+1])
	b := float64(buf.Pix[i+2])
	return redWeight*r + greenWeight*g + blueWeight*b
}

func validate(buf Buffer, cfg Config) error {
	if cfg.OffsetX < 0 || cfg.OffsetY < 0 {
		return xerror.Errorf("offset (%d,%d): %w", cfg.OffsetX, cfg.OffsetY, ErrInvalidOffset)
	}
	if cfg.WindowWidth <= 0 || cfg.WindowHeight <= 0 {
		return xerror.Errorf("window %gx%g: %w", cfg.WindowWidth, cfg.WindowHeight, ErrInvalidWindowSize)
	}
	if cfg.Rows <= 0 || cfg.Columns <= 0 {
		return xerror.Errorf("matrix %dx%d: %w", cfg.Rows, cfg.Columns, ErrInvalidMatrixSize)
	}
	if float64(cfg.OffsetX)+cfg.WindowWidth > float64(buf.Width) ||
		float64(cfg.OffsetY)+cfg.WindowHeight > float64(buf.Height) {
		return xerror.Errorf(
			"window %gx%g at offset (%d,%d) does not fit within %dx%d buffer: %w",
			cfg.WindowWidth, cfg.WindowHeight, cfg.OffsetX, cfg.OffsetY,
			buf.Width, buf.Height, ErrWindowOutOfBounds,
		)
	}
	if cfg.Threshold != nil && (*cfg.Threshold < 0 || *cfg.Threshold > 255) {
		return xerror.Errorf("threshold %g: %w", *cfg.Threshold, ErrInvalidThreshold)
	}
	return nil
}

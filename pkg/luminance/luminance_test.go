package luminance_test

import (
	"errors"
	"image"
	"testing"

	"github.com/matryer/is"
	"github.com/tauraamui/gridwatch/pkg/luminance"
)

func uniformBuffer(w, h int, v uint8) luminance.Buffer {
	pix := make([]uint8, w*h*4)
	for i := 0; i < len(pix); i += 4 {
		pix[i] = v
		pix[i+1] = v
		pix[i+2] = v
		pix[i+3] = 255
	}
	return luminance.Buffer{Width: w, Height: h, Pix: pix}
}

func checkerboardBuffer(w, h, tile int) luminance.Buffer {
	pix := make([]uint8, w*h*4)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var v uint8
			if ((x/tile)+(y/tile))%2 == 0 {
				v = 255
			}
			i := (y*w + x) * 4
			pix[i] = v
			pix[i+1] = v
			pix[i+2] = v
			pix[i+3] = 255
		}
	}
	return luminance.Buffer{Width: w, Height: h, Pix: pix}
}

func threshold(v float64) *float64 { return &v }

func TestAnalyzeProducesMatrixOfConfiguredShape(t *testing.T) {
	is := is.New(t)
	result, err := luminance.Analyze(uniformBuffer(64, 48, 90), luminance.Config{
		WindowWidth: 64, WindowHeight: 48, Rows: 6, Columns: 9,
	})
	is.NoErr(err)
	is.Equal(len(result.Matrix), 6)
	for _, row := range result.Matrix {
		is.Equal(len(row), 9)
	}
}

func TestAnalyzeUniformBrightBufferMarksEveryCellBright(t *testing.T) {
	is := is.New(t)
	result, err := luminance.Analyze(uniformBuffer(40, 40, 200), luminance.Config{
		WindowWidth: 40, WindowHeight: 40, Rows: 4, Columns: 4,
	})
	is.NoErr(err)
	is.Equal(result.BrightCount(), 16)
}

func TestAnalyzeUniformDarkBufferMarksEveryCellDark(t *testing.T) {
	is := is.New(t)
	result, err := luminance.Analyze(uniformBuffer(40, 40, 50), luminance.Config{
		WindowWidth: 40, WindowHeight: 40, Rows: 4, Columns: 4,
	})
	is.NoErr(err)
	is.Equal(result.BrightCount(), 0)
}

func TestAnalyzeThresholdOverrideChangesClassification(t *testing.T) {
	is := is.New(t)
	buf := uniformBuffer(40, 40, 100)

	result, err := luminance.Analyze(buf, luminance.Config{
		WindowWidth: 40, WindowHeight: 40, Rows: 2, Columns: 2,
		Threshold: threshold(50),
	})
	is.NoErr(err)
	is.Equal(result.BrightCount(), 4)

	result, err = luminance.Analyze(buf, luminance.Config{
		WindowWidth: 40, WindowHeight: 40, Rows: 2, Columns: 2,
		Threshold: threshold(128),
	})
	is.NoErr(err)
	is.Equal(result.BrightCount(), 0)
}

func TestAnalyzeBrightnessAtThresholdBoundaryIsBright(t *testing.T) {
	is := is.New(t)
	result, err := luminance.Analyze(uniformBuffer(10, 10, 128), luminance.Config{
		WindowWidth: 10, WindowHeight: 10, Rows: 1, Columns: 1,
		Threshold: threshold(128),
	})
	is.NoErr(err)
	is.True(result.Matrix[0][0])
}

func TestAnalyzeWeightsChannelsPerBT709(t *testing.T) {
	is := is.New(t)
	green := luminance.Buffer{Width: 1, Height: 1, Pix: []uint8{0, 255, 0, 255}}
	blue := luminance.Buffer{Width: 1, Height: 1, Pix: []uint8{0, 0, 255, 255}}
	cfg := luminance.Config{WindowWidth: 1, WindowHeight: 1, Rows: 1, Columns: 1}

	// 0.7152*255 clears the default threshold, 0.0722*255 does not
	result, err := luminance.Analyze(green, cfg)
	is.NoErr(err)
	is.True(result.Matrix[0][0])

	result, err = luminance.Analyze(blue, cfg)
	is.NoErr(err)
	is.True(!result.Matrix[0][0])
}

func TestAnalyzeSamplesCheckerboardQuadrantsFromCellCentres(t *testing.T) {
	is := is.New(t)
	result, err := luminance.Analyze(checkerboardBuffer(100, 100, 25), luminance.Config{
		OffsetX: 25, OffsetY: 25,
		WindowWidth: 50, WindowHeight: 50,
		Rows: 2, Columns: 2,
	})
	is.NoErr(err)
	is.Equal(result.Matrix, [][]bool{{true, false}, {false, true}})
}

func TestAnalyzeRejectsNegativeOffset(t *testing.T) {
	is := is.New(t)
	buf := uniformBuffer(10, 10, 90)

	_, err := luminance.Analyze(buf, luminance.Config{
		OffsetX: -1, WindowWidth: 5, WindowHeight: 5, Rows: 1, Columns: 1,
	})
	is.True(errors.Is(err, luminance.ErrInvalidOffset))

	_, err = luminance.Analyze(buf, luminance.Config{
		OffsetY: -1, WindowWidth: 5, WindowHeight: 5, Rows: 1, Columns: 1,
	})
	is.True(errors.Is(err, luminance.ErrInvalidOffset))
}

func TestAnalyzeRejectsNonPositiveWindow(t *testing.T) {
	is := is.New(t)
	buf := uniformBuffer(10, 10, 90)

	_, err := luminance.Analyze(buf, luminance.Config{
		WindowWidth: 0, WindowHeight: 5, Rows: 1, Columns: 1,
	})
	is.True(errors.Is(err, luminance.ErrInvalidWindowSize))

	_, err = luminance.Analyze(buf, luminance.Config{
		WindowWidth: 5, WindowHeight: 0, Rows: 1, Columns: 1,
	})
	is.True(errors.Is(err, luminance.ErrInvalidWindowSize))
}

func TestAnalyzeRejectsNonPositiveMatrixDimensions(t *testing.T) {
	is := is.New(t)
	buf := uniformBuffer(10, 10, 90)

	_, err := luminance.Analyze(buf, luminance.Config{
		WindowWidth: 5, WindowHeight: 5, Rows: 0, Columns: 1,
	})
	is.True(errors.Is(err, luminance.ErrInvalidMatrixSize))

	_, err = luminance.Analyze(buf, luminance.Config{
		WindowWidth: 5, WindowHeight: 5, Rows: 1, Columns: 0,
	})
	is.True(errors.Is(err, luminance.ErrInvalidMatrixSize))
}

func TestAnalyzeRejectsWindowExceedingBufferBounds(t *testing.T) {
	is := is.New(t)
	_, err := luminance.Analyze(uniformBuffer(100, 100, 90), luminance.Config{
		OffsetX: 50, OffsetY: 50,
		WindowWidth: 100, WindowHeight: 100,
		Rows: 2, Columns: 2,
	})
	is.True(errors.Is(err, luminance.ErrWindowOutOfBounds))
}

func TestAnalyzeRejectsOutOfRangeThreshold(t *testing.T) {
	is := is.New(t)
	buf := uniformBuffer(10, 10, 90)

	_, err := luminance.Analyze(buf, luminance.Config{
		WindowWidth: 5, WindowHeight: 5, Rows: 1, Columns: 1,
		Threshold: threshold(300),
	})
	is.True(errors.Is(err, luminance.ErrInvalidThreshold))

	_, err = luminance.Analyze(buf, luminance.Config{
		WindowWidth: 5, WindowHeight: 5, Rows: 1, Columns: 1,
		Threshold: threshold(-1),
	})
	is.True(errors.Is(err, luminance.ErrInvalidThreshold))
}

func TestAnalyzeValidationOrderReportsOffsetBeforeLaterFailures(t *testing.T) {
	is := is.New(t)
	// every check would fail here, first one wins
	_, err := luminance.Analyze(uniformBuffer(10, 10, 90), luminance.Config{
		OffsetX: -5, WindowWidth: 0, WindowHeight: 0, Rows: 0, Columns: 0,
		Threshold: threshold(999),
	})
	is.True(errors.Is(err, luminance.ErrInvalidOffset))
}

func TestAnalyzeSupportsBothTinyAndLargeGridsOnSameBuffer(t *testing.T) {
	is := is.New(t)
	buf := uniformBuffer(50, 50, 200)

	result, err := luminance.Analyze(buf, luminance.Config{
		WindowWidth: 50, WindowHeight: 50, Rows: 1, Columns: 1,
	})
	is.NoErr(err)
	is.Equal(len(result.Matrix), 1)
	is.Equal(len(result.Matrix[0]), 1)

	result, err = luminance.Analyze(buf, luminance.Config{
		WindowWidth: 50, WindowHeight: 50, Rows: 10, Columns: 10,
	})
	is.NoErr(err)
	is.Equal(len(result.Matrix), 10)
	is.Equal(len(result.Matrix[9]), 10)
}

func TestAnalyzeIsIdempotentForIdenticalInputs(t *testing.T) {
	is := is.New(t)
	buf := checkerboardBuffer(80, 80, 10)
	cfg := luminance.Config{WindowWidth: 80, WindowHeight: 80, Rows: 8, Columns: 8}

	first, err := luminance.Analyze(buf, cfg)
	is.NoErr(err)
	second, err := luminance.Analyze(buf, cfg)
	is.NoErr(err)

	is.Equal(first.Matrix, second.Matrix)
	is.Equal(first.Config, second.Config)
}

func TestAnalyzeAttachesInputConfigToResult(t *testing.T) {
	is := is.New(t)
	cfg := luminance.Config{
		OffsetX: 2, OffsetY: 3,
		WindowWidth: 20, WindowHeight: 20,
		Rows: 2, Columns: 2,
		Threshold: threshold(90),
	}
	result, err := luminance.Analyze(uniformBuffer(30, 30, 100), cfg)
	is.NoErr(err)
	is.Equal(result.Config, cfg)
	is.True(!result.Timestamp.IsZero())
}

func TestBufferFromImageReferencesPackedPixels(t *testing.T) {
	is := is.New(t)
	img := image.NewRGBA(image.Rect(0, 0, 4, 2))
	img.Pix[0] = 0xFF

	buf := luminance.BufferFromImage(img)
	is.Equal(buf.Width, 4)
	is.Equal(buf.Height, 2)
	is.Equal(len(buf.Pix), 4*2*4)
	is.Equal(buf.Pix[0], uint8(0xFF))
}

func TestBufferFromImageCopiesRowsOfUnpackedImage(t *testing.T) {
	is := is.New(t)
	base := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for i := range base.Pix {
		base.Pix[i] = uint8(i)
	}

	sub, ok := base.SubImage(image.Rect(2, 2, 6, 6)).(*image.RGBA)
	is.True(ok)

	buf := luminance.BufferFromImage(sub)
	is.Equal(buf.Width, 4)
	is.Equal(buf.Height, 4)
	is.Equal(len(buf.Pix), 4*4*4)
	is.Equal(buf.Pix[0], base.Pix[base.PixOffset(2, 2)])
	is.Equal(buf.Pix[4*4], base.Pix[base.PixOffset(2, 3)])
}

func TestDefaultConfigPassesValidationAgainstStatedDimensions(t *testing.T) {
	is := is.New(t)
	cfg := luminance.Default(640, 480)
	result, err := luminance.Analyze(uniformBuffer(640, 480, 200), cfg)
	is.NoErr(err)
	is.Equal(len(result.Matrix), cfg.Rows)
	is.Equal(len(result.Matrix[0]), cfg.Columns)
}

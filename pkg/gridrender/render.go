// Package gridrender turns analysed boolean grids into images and
// terminal-friendly braille previews.
package gridrender

import (
	"image"
	"image/color"
	"io"

	"github.com/kevin-cantwell/dotmatrix"
)

const printScale = 8

// Image renders the grid with one scale x scale block of pixels per cell,
// white for bright cells and black for dark ones.
func Image(cells [][]bool, scale int) *image.RGBA {
	if scale < 1 {
		scale = 1
	}

	rows := len(cells)
	cols := 0
	if rows > 0 {
		cols = len(cells[0])
	}

	img := image.NewRGBA(image.Rect(0, 0, cols*scale, rows*scale))
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			cellColor := color.RGBA{A: 255}
			if cells[r][c] {
				cellColor = color.RGBA{R: 255, G: 255, B: 255, A: 255}
			}
			for y := r * scale; y < (r+1)*scale; y++ {
				for x := c * scale; x < (c+1)*scale; x++ {
					img.SetRGBA(x, y, cellColor)
				}
			}
		}
	}
	return img
}

// Print writes the grid to w as braille dot characters.
func Print(w io.Writer, cells [][]bool) error {
	return dotmatrix.Print(w, Image(cells, printScale))
}

package renderer

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
)

// WritePPM emits the pixel grid as a textual P3 PPM. Row 0 of the grid is
// the bottom of the image, so rows are walked in reverse to produce the
// top-to-bottom order PPM requires.
func WritePPM(w io.Writer, rows [][]RGB) error {
	if len(rows) == 0 {
		return fmt.Errorf("ppm: empty image")
	}

	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "P3\n%d %d\n255\n", len(rows[0]), len(rows)); err != nil {
		return err
	}
	for j := len(rows) - 1; j >= 0; j-- {
		for _, p := range rows[j] {
			if _, err := fmt.Fprintf(bw, "%d %d %d\n", p.R, p.G, p.B); err != nil {
				return err
			}
		}
	}
	return bw.Flush()
}

// ToImage converts the pixel grid to an image.RGBA, flipping rows so
// image y=0 is the top.
func ToImage(rows [][]RGB) *image.RGBA {
	height := len(rows)
	width := 0
	if height > 0 {
		width = len(rows[0])
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for j := 0; j < height; j++ {
		row := rows[j]
		y := height - 1 - j
		for i, p := range row {
			img.SetRGBA(i, y, color.RGBA{R: p.R, G: p.G, B: p.B, A: 255})
		}
	}
	return img
}

// WritePNG encodes the pixel grid as PNG
func WritePNG(w io.Writer, rows [][]RGB) error {
	return png.Encode(w, ToImage(rows))
}

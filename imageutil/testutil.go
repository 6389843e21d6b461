package imageutil

import (
	"image"
	"image/color"
)

// CreateSolidImage creates a solid color image.
func CreateSolidImage(width, height int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

// CreateGradientImage creates an opaque horizontal grayscale gradient.
func CreateGradientImage(width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var v uint8
			if width > 1 {
				v = uint8(255 * x / (width - 1))
			}
			img.SetNRGBA(x, y, color.NRGBA{R: v, G: v, B: v, A: 255})
		}
	}
	return img
}

// CreateCheckerboardImage creates a pattern of opaque squares of color c
// alternating with fully transparent squares. The top-left square is
// opaque.
func CreateCheckerboardImage(width, height, squareSize int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if ((x/squareSize)+(y/squareSize))%2 == 0 {
				img.SetNRGBA(x, y, c)
			}
		}
	}
	return img
}

// CreateColorBarsImage creates opaque vertical bars cycling through
// white, yellow, cyan, green, magenta, red, blue and black.
func CreateColorBarsImage(width, height int) *image.NRGBA {
	colors := []color.NRGBA{
		{255, 255, 255, 255},
		{255, 255, 0, 255},
		{0, 255, 255, 255},
		{0, 255, 0, 255},
		{255, 0, 255, 255},
		{255, 0, 0, 255},
		{0, 0, 255, 255},
		{0, 0, 0, 255},
	}

	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	barWidth := max(width/len(colors), 1)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			idx := min(x/barWidth, len(colors)-1)
			img.SetNRGBA(x, y, colors[idx])
		}
	}
	return img
}

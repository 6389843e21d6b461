package i2a

import (
	"fmt"
	"image"
	"image/color"
)

// Grid is a read-only view over decoded pixel data: Width x Height pixels
// stored row-major, four bytes per pixel in R, G, B, A order. Alpha is
// straight, not premultiplied.
type Grid struct {
	Width  int
	Height int
	Pix    []uint8
}

// NewGrid wraps pix as a width x height grid. It fails when the
// dimensions are negative or pix holds fewer than width*height pixels.
func NewGrid(width, height int, pix []uint8) (Grid, error) {
	if width < 0 || height < 0 {
		return Grid{}, fmt.Errorf("invalid grid size %dx%d", width, height)
	}
	if need := width * height * 4; len(pix) < need {
		return Grid{}, fmt.Errorf(
			"grid %dx%d needs %d bytes, got %d", width, height, need, len(pix))
	}
	return Grid{Width: width, Height: height, Pix: pix}, nil
}

// GridFromImage returns a grid over img. An *image.NRGBA with a packed
// stride is used in place; any other image is converted through
// color.NRGBAModel, so images without an alpha channel read as opaque.
func GridFromImage(img image.Image) Grid {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	if n, ok := img.(*image.NRGBA); ok && n.Stride == width*4 {
		off := n.PixOffset(bounds.Min.X, bounds.Min.Y)
		return Grid{Width: width, Height: height, Pix: n.Pix[off : off+width*height*4]}
	}

	pix := make([]uint8, width*height*4)
	i := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			pix[i], pix[i+1], pix[i+2], pix[i+3] = c.R, c.G, c.B, c.A
			i += 4
		}
	}
	return Grid{Width: width, Height: height, Pix: pix}
}

// Empty reports whether the grid has no pixels.
func (g Grid) Empty() bool {
	return g.Width <= 0 || g.Height <= 0
}

// At returns the pixel at column x, row y.
func (g Grid) At(x, y int) color.NRGBA {
	i := (y*g.Width + x) * 4
	p := g.Pix[i : i+4 : i+4]
	return color.NRGBA{R: p[0], G: p[1], B: p[2], A: p[3]}
}

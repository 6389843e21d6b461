package i2a

import (
	"image"
	"image/color"

	"github.com/wbrown/i2a/imageutil"
)

// PreviewOptions configures RenderPreview.
type PreviewOptions struct {
	// Font supplies glyph bitmaps. nil means BuiltinFont.
	Font *FontBitmaps
	// Scale multiplies the GlyphWidth x GlyphHeight character cell.
	// Values below 1 are treated as 1.
	Scale int
}

// RenderPreview draws encoded cells the way a truecolor terminal would
// show them. Each glyph rune takes one GlyphWidth x GlyphHeight character
// cell. Cells that reset to the default colors leave their pixels
// transparent.
func RenderPreview(cells [][]Cell, opts PreviewOptions) *image.NRGBA {
	fb := opts.Font
	if fb == nil {
		fb = BuiltinFont()
	}
	scale := max(opts.Scale, 1)

	cols := 0
	if len(cells) > 0 {
		for _, c := range cells[0] {
			cols += len([]rune(c.Glyph))
		}
	}
	charW, charH := GlyphWidth*scale, GlyphHeight*scale
	img := image.NewNRGBA(image.Rect(0, 0, cols*charW, len(cells)*charH))

	for row, line := range cells {
		col := 0
		for _, c := range line {
			for _, r := range c.Glyph {
				drawGlyph(img, fb, r, c, col*charW, row*charH, scale)
				col++
			}
		}
	}
	return img
}

// SavePreview renders cells and writes the result as a PNG file.
func SavePreview(cells [][]Cell, filename string, opts PreviewOptions) error {
	return imageutil.SavePNG(RenderPreview(cells, opts), filename)
}

// drawGlyph draws one glyph rune of a cell with its top-left corner at
// (x, y). Runes without a bitmap are drawn as blanks.
func drawGlyph(img *image.NRGBA, fb *FontBitmaps, r rune, c Cell, x, y, scale int) {
	bitmap, _ := fb.GetGlyph(r)

	var fg, bg color.NRGBA
	if rgb, ok := c.Foreground(); ok {
		fg = rgb.toColor()
	}
	if rgb, ok := c.Background(); ok {
		bg = rgb.toColor()
	}

	for gy := 0; gy < GlyphHeight; gy++ {
		for gx := 0; gx < GlyphWidth; gx++ {
			px := bg
			if bitmap.getBit(gx, gy) {
				px = fg
			}
			if px.A == 0 {
				continue
			}
			for sy := 0; sy < scale; sy++ {
				for sx := 0; sx < scale; sx++ {
					img.SetNRGBA(x+gx*scale+sx, y+gy*scale+sy, px)
				}
			}
		}
	}
}

package i2a

import (
	"fmt"
	"image"
	"os"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
)

const (
	// GlyphWidth and GlyphHeight define the character cell size of the
	// preview renderer, in pixels at scale 1.
	GlyphWidth  = 8
	GlyphHeight = 16
)

// GlyphBitmap is an 8x16 character cell, one byte per row. Bit x of row y
// set means the pixel shows the foreground color.
type GlyphBitmap [GlyphHeight]uint8

// previewRunes are the glyph runes the encoder can emit.
var previewRunes = []rune{' ', '█', '▀', '▄'}

// builtinGlyphs are exact geometric renderings of the block elements.
var builtinGlyphs = func() map[rune]GlyphBitmap {
	var solid, upper, lower GlyphBitmap
	for y := 0; y < GlyphHeight; y++ {
		for x := 0; x < GlyphWidth; x++ {
			solid.setBit(x, y, true)
			upper.setBit(x, y, y < GlyphHeight/2)
			lower.setBit(x, y, y >= GlyphHeight/2)
		}
	}
	return map[rune]GlyphBitmap{
		' ': {},
		'█': solid,
		'▀': upper,
		'▄': lower,
	}
}()

// getBit checks if a specific bit is set in the bitmap
func (g GlyphBitmap) getBit(x, y int) bool {
	if x < 0 || x >= GlyphWidth || y < 0 || y >= GlyphHeight {
		return false
	}
	return g[y]&(1<<x) != 0
}

// setBit sets a specific bit in the bitmap
func (g *GlyphBitmap) setBit(x, y int, value bool) {
	if x < 0 || x >= GlyphWidth || y < 0 || y >= GlyphHeight {
		return
	}
	if value {
		g[y] |= 1 << x
	} else {
		g[y] &^= 1 << x
	}
}

// FontBitmaps holds pre-rendered glyph bitmaps used by the preview
// renderer. Runes the font does not cover fall back to the builtin
// geometric bitmaps.
type FontBitmaps struct {
	glyphs map[rune]GlyphBitmap
	name   string
}

// BuiltinFont returns the geometric block-element bitmaps.
func BuiltinFont() *FontBitmaps {
	return &FontBitmaps{glyphs: builtinGlyphs, name: "builtin"}
}

// LoadFontBitmaps rasterizes the encoder's glyphs from a TrueType font.
func LoadFontBitmaps(path string) (*FontBitmaps, error) {
	fontBytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read font: %w", err)
	}
	ttf, err := freetype.ParseFont(fontBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font %s: %w", path, err)
	}

	fb := &FontBitmaps{
		glyphs: make(map[rune]GlyphBitmap, len(previewRunes)),
		name:   path,
	}
	for _, r := range previewRunes {
		// Index 0 is the missing-glyph box.
		if ttf.Index(r) == 0 {
			continue
		}
		bitmap, err := renderGlyphToBitmap(ttf, r)
		if err != nil {
			return nil, fmt.Errorf("failed to render %q: %w", r, err)
		}
		fb.glyphs[r] = bitmap
	}
	return fb, nil
}

// Name returns the font path, or "builtin".
func (fb *FontBitmaps) Name() string {
	return fb.name
}

// GetGlyph returns the bitmap for a character, using the builtin bitmap
// when the font does not cover it.
func (fb *FontBitmaps) GetGlyph(r rune) (GlyphBitmap, bool) {
	if bitmap, ok := fb.glyphs[r]; ok {
		return bitmap, true
	}
	bitmap, ok := builtinGlyphs[r]
	return bitmap, ok
}

// renderGlyphToBitmap renders a single glyph into a GlyphWidth x
// GlyphHeight bitmap. Coverage above 25% counts as foreground so that
// thin anti-aliased strokes survive thresholding.
func renderGlyphToBitmap(ttf *truetype.Font, r rune) (GlyphBitmap, error) {
	face := truetype.NewFace(ttf, &truetype.Options{
		Size:    float64(GlyphHeight),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	defer face.Close()

	img := image.NewAlpha(image.Rect(0, 0, GlyphWidth, GlyphHeight))

	ctx := freetype.NewContext()
	ctx.SetDPI(72)
	ctx.SetFont(ttf)
	ctx.SetFontSize(float64(GlyphHeight))
	ctx.SetClip(img.Bounds())
	ctx.SetDst(img)
	ctx.SetSrc(image.White)
	ctx.SetHinting(font.HintingFull)

	// Place the baseline so ascent+descent spans the cell.
	metrics := face.Metrics()
	ascent := metrics.Ascent.Ceil()
	descent := metrics.Descent.Ceil()
	baselineY := (GlyphHeight + ascent - descent) / 2

	if _, err := ctx.DrawString(string(r), freetype.Pt(0, baselineY)); err != nil {
		return GlyphBitmap{}, err
	}

	var bitmap GlyphBitmap
	for y := 0; y < GlyphHeight; y++ {
		for x := 0; x < GlyphWidth; x++ {
			if img.AlphaAt(x, y).A > 64 {
				bitmap.setBit(x, y, true)
			}
		}
	}
	return bitmap, nil
}

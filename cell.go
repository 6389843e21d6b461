package i2a

// CellKind identifies which glyph/color rule produced a cell.
type CellKind uint8

const (
	// CellClear is a transparent cell: a blank glyph after a full reset.
	CellClear CellKind = iota
	// CellBackground is a blank glyph on a truecolor background (1:1).
	CellBackground
	// CellForeground is a solid block in a truecolor foreground (1:1_fg).
	CellForeground
	// CellUpperPair is an upper half block with the top pixel as
	// foreground and the bottom pixel as background (1:4).
	CellUpperPair
	// CellUpper is an upper half block over the default background,
	// used when only the top pixel is opaque (1:4).
	CellUpper
	// CellLower is a lower half block over the default background, used
	// when only the bottom pixel is opaque (1:4).
	CellLower
)

// Cell is one unit of encoded output: a glyph plus the colors that its
// SGR code sets. FG and BG are meaningful only where the kind uses them.
type Cell struct {
	Kind  CellKind
	Glyph string
	FG    RGB
	BG    RGB
}

// Foreground returns the foreground color the cell sets, if any.
func (c Cell) Foreground() (RGB, bool) {
	switch c.Kind {
	case CellForeground, CellUpperPair, CellUpper, CellLower:
		return c.FG, true
	}
	return RGB{}, false
}

// Background returns the background color the cell sets, if any.
func (c Cell) Background() (RGB, bool) {
	switch c.Kind {
	case CellBackground, CellUpperPair:
		return c.BG, true
	}
	return RGB{}, false
}

// AppendCode appends the cell's SGR code, rendered with prefix, to dst.
func (c Cell) AppendCode(dst []byte, prefix Prefix) []byte {
	dst = append(dst, string(prefix)...)
	switch c.Kind {
	case CellBackground:
		dst = appendTruecolor(dst, false, c.BG)
	case CellForeground:
		dst = appendTruecolor(dst, true, c.FG)
	case CellUpperPair:
		dst = appendTruecolor(dst, true, c.FG)
		dst = append(dst, ';')
		dst = appendTruecolor(dst, false, c.BG)
	case CellUpper, CellLower:
		dst = append(dst, "0;"...)
		dst = appendTruecolor(dst, true, c.FG)
	default:
		dst = append(dst, '0')
	}
	return append(dst, 'm')
}

// Code returns the cell's SGR code rendered with prefix.
func (c Cell) Code(prefix Prefix) string {
	return string(c.AppendCode(nil, prefix))
}

// pixelCell selects the cell for a single pixel in the 1:1 modes.
func pixelCell(px pixel, fg bool) Cell {
	switch {
	case px.A == 0:
		return Cell{Kind: CellClear, Glyph: glyphBlank}
	case fg:
		return Cell{Kind: CellForeground, Glyph: glyphSolid, FG: px.RGB}
	default:
		return Cell{Kind: CellBackground, Glyph: glyphBlank, BG: px.RGB}
	}
}

// pairCell selects the cell for a top/bottom pixel pair in 1:4 mode.
func pairCell(top, bottom pixel) Cell {
	switch {
	case top.A != 0 && bottom.A != 0:
		return Cell{Kind: CellUpperPair, Glyph: glyphUpperHalf, FG: top.RGB, BG: bottom.RGB}
	case top.A != 0:
		return Cell{Kind: CellUpper, Glyph: glyphUpperHalf, FG: top.RGB}
	case bottom.A != 0:
		return Cell{Kind: CellLower, Glyph: glyphLowerHalf, FG: bottom.RGB}
	}
	return Cell{Kind: CellClear, Glyph: glyphSpace}
}

type pixel struct {
	RGB
	A uint8
}

func (g Grid) pixel(x, y int) pixel {
	c := g.At(x, y)
	return pixel{RGB: rgbFromNRGBA(c), A: c.A}
}

// cell returns the cell at column x of output row row.
func (m Mode) cell(g Grid, x, row int) Cell {
	switch m {
	case OneToOne:
		return pixelCell(g.pixel(x, row), false)
	case OneToOneFG:
		return pixelCell(g.pixel(x, row), true)
	}
	var bottom pixel
	if y := 2*row + 1; y < g.Height {
		bottom = g.pixel(x, y)
	}
	return pairCell(g.pixel(x, 2*row), bottom)
}

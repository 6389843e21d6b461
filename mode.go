package i2a

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
)

// ErrUnknownMode is returned by ParseMode for strings that do not name one
// of the three encoding modes.
var ErrUnknownMode = errors.New("unknown mode")

// Mode selects how source pixels are grouped into cells and which glyph
// and color attributes represent each cell. The numeric values match the
// numeric names accepted by ParseMode.
type Mode int

const (
	// OneToFour packs two vertically stacked pixels into one half-block
	// glyph, so a text line covers two pixel rows.
	OneToFour Mode = iota + 1
	// OneToOne paints each pixel as two blank columns with a truecolor
	// background.
	OneToOne
	// OneToOneFG paints each pixel as two solid blocks with a truecolor
	// foreground.
	OneToOneFG
)

const (
	glyphBlank     = "  "
	glyphSolid     = "██"
	glyphUpperHalf = "▀"
	glyphLowerHalf = "▄"
	glyphSpace     = " "
)

// glyphWidth measures glyphs the way truecolor terminals lay out block
// elements: one column per rune.
var glyphWidth = func() *runewidth.Condition {
	c := runewidth.NewCondition()
	c.EastAsianWidth = false
	return c
}()

// ParseMode converts a mode name into a Mode. It accepts the numeric
// names "1", "2", "3" and the ratio names "1:4", "1:1" and "1:1_fg",
// ignoring case and surrounding whitespace.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "1:4":
		return OneToFour, nil
	case "2", "1:1":
		return OneToOne, nil
	case "3", "1:1_fg":
		return OneToOneFG, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// String returns the ratio name of the mode.
func (m Mode) String() string {
	switch m {
	case OneToFour:
		return "1:4"
	case OneToOne:
		return "1:1"
	case OneToOneFG:
		return "1:1_fg"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// Valid reports whether m is one of the three encoding modes.
func (m Mode) Valid() bool {
	return m >= OneToFour && m <= OneToOneFG
}

// Rows returns the number of text lines produced for an image of the
// given pixel height.
func (m Mode) Rows(height int) int {
	if height <= 0 {
		return 0
	}
	if m == OneToFour {
		return (height + 1) / 2
	}
	return height
}

// Dimensions returns the terminal footprint, in character cells, of an
// encoded width x height image.
func Dimensions(width, height int, mode Mode) (cols, rows int) {
	if width <= 0 || height <= 0 {
		return 0, 0
	}
	glyph := glyphUpperHalf
	if mode != OneToFour {
		glyph = glyphSolid
	}
	return width * glyphWidth.StringWidth(glyph), mode.Rows(height)
}

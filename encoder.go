// Package i2a converts decoded RGBA pixel grids into text made of Unicode
// block glyphs colored with 24-bit ANSI SGR escape codes.
//
// Each output line is one row of cells. A cell is either one pixel (the
// 1:1 modes, drawn two columns wide) or a vertical pair of pixels (1:4,
// drawn with half blocks). An SGR code is written only when it differs
// textually from the code of the previous cell on the same line, and every
// line ends with a full reset.
package i2a

import (
	"fmt"
	"io"
	"strings"
)

// Encoder holds the mode and escape prefix used to encode grids. The zero
// value is not useful; use NewEncoder. An Encoder has no mutable state and
// is safe for concurrent use.
type Encoder struct {
	Mode   Mode
	Prefix Prefix
}

// EncoderOption is a functional option for configuring an Encoder.
type EncoderOption func(*Encoder)

// NewEncoder creates an Encoder with the given options.
// Default values: Mode=OneToFour, Prefix=RawPrefix.
func NewEncoder(opts ...EncoderOption) *Encoder {
	e := &Encoder{
		Mode:   OneToFour,
		Prefix: RawPrefix,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// WithMode sets the encoding mode.
func WithMode(mode Mode) EncoderOption {
	return func(e *Encoder) {
		e.Mode = mode
	}
}

// WithPrefix sets the escape prefix.
func WithPrefix(prefix Prefix) EncoderOption {
	return func(e *Encoder) {
		e.Prefix = prefix
	}
}

// Encode returns the text representation of grid.
func (e *Encoder) Encode(grid Grid) string {
	return Encode(grid, e.Mode, e.Prefix)
}

// EncodeTo writes the text representation of grid to w.
func (e *Encoder) EncodeTo(w io.Writer, grid Grid) (int64, error) {
	return EncodeTo(w, grid, e.Mode, e.Prefix)
}

// Encode returns the text representation of grid in the given mode, one
// line per output row, each line terminated by a full reset and "\n".
// An empty grid encodes to "". Modes other than the three defined ones
// are treated as OneToFour.
func Encode(grid Grid, mode Mode, prefix Prefix) string {
	mode = normalize(mode)
	rows := rowCount(grid, mode)
	if rows == 0 {
		return ""
	}

	var sb strings.Builder
	sb.Grow(estimateSize(grid, mode, prefix))
	run := newGlyphRun(&sb, prefix)
	for row := range rows {
		encodeRow(run, grid, mode, row)
	}
	return sb.String()
}

// Lines returns the rows of Encode without their trailing newlines.
func Lines(grid Grid, mode Mode, prefix Prefix) []string {
	mode = normalize(mode)
	rows := rowCount(grid, mode)
	lines := make([]string, 0, rows)

	var sb strings.Builder
	run := newGlyphRun(&sb, prefix)
	for row := range rows {
		sb.Reset()
		encodeRow(run, grid, mode, row)
		lines = append(lines, strings.TrimSuffix(sb.String(), "\n"))
	}
	return lines
}

// EncodeTo writes the output of Encode to w row by row and returns the
// number of bytes written. Errors come only from w.
func EncodeTo(w io.Writer, grid Grid, mode Mode, prefix Prefix) (int64, error) {
	mode = normalize(mode)
	rows := rowCount(grid, mode)

	var total int64
	var sb strings.Builder
	run := newGlyphRun(&sb, prefix)
	for row := range rows {
		sb.Reset()
		encodeRow(run, grid, mode, row)
		n, err := io.WriteString(w, sb.String())
		total += int64(n)
		if err != nil {
			return total, fmt.Errorf("failed to write row %d: %w", row, err)
		}
	}
	return total, nil
}

// Cells returns the cells Encode would write, indexed [row][column].
func Cells(grid Grid, mode Mode) [][]Cell {
	mode = normalize(mode)
	rows := rowCount(grid, mode)
	cells := make([][]Cell, rows)
	for row := range cells {
		cells[row] = make([]Cell, grid.Width)
		for x := range cells[row] {
			cells[row][x] = mode.cell(grid, x, row)
		}
	}
	return cells
}

func encodeRow(run *glyphRun, grid Grid, mode Mode, row int) {
	for x := 0; x < grid.Width; x++ {
		run.put(mode.cell(grid, x, row))
	}
	run.end()
}

func normalize(mode Mode) Mode {
	if !mode.Valid() {
		return OneToFour
	}
	return mode
}

func rowCount(grid Grid, mode Mode) int {
	if grid.Empty() {
		return 0
	}
	return mode.Rows(grid.Height)
}

// estimateSize guesses the output length assuming a color change at
// every cell, which is the worst case for photographs.
func estimateSize(grid Grid, mode Mode, prefix Prefix) int {
	perCell := len(prefix) + len("38;2;255;255;255m") + len(glyphSolid)
	if mode == OneToFour {
		perCell += len(";48;2;255;255;255")
	}
	rows := mode.Rows(grid.Height)
	return rows * (grid.Width*perCell + len(prefix) + len("0m\n"))
}

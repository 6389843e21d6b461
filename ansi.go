package i2a

import (
	"bytes"
	"strconv"
	"strings"
)

// Prefix is the control sequence introducer written in front of every SGR
// code.
type Prefix string

const (
	// RawPrefix is the ESC [ byte sequence understood by terminals.
	RawPrefix Prefix = "\x1b["
	// PrintfPrefix is the backslash-escaped form of RawPrefix, for output
	// that is pasted into printf or echo -e before reaching a terminal.
	PrintfPrefix Prefix = `\033[`
)

// PrefixFor returns PrintfPrefix when printf is set and RawPrefix
// otherwise.
func PrefixFor(printf bool) Prefix {
	if printf {
		return PrintfPrefix
	}
	return RawPrefix
}

// Reset returns the full reset code rendered with p.
func (p Prefix) Reset() string {
	return string(p) + "0m"
}

// appendTruecolor appends a "38;2;R;G;B" (fg) or "48;2;R;G;B" (bg)
// parameter group.
func appendTruecolor(dst []byte, fg bool, c RGB) []byte {
	if fg {
		dst = append(dst, "38;2;"...)
	} else {
		dst = append(dst, "48;2;"...)
	}
	dst = strconv.AppendUint(dst, uint64(c.R), 10)
	dst = append(dst, ';')
	dst = strconv.AppendUint(dst, uint64(c.G), 10)
	dst = append(dst, ';')
	dst = strconv.AppendUint(dst, uint64(c.B), 10)
	return dst
}

// glyphRun accumulates one output line. It remembers the last SGR code it
// wrote so that a cell whose code is textually identical to its left
// neighbour's is written as a bare glyph.
type glyphRun struct {
	out    *strings.Builder
	prefix Prefix

	// code is scratch space for the cell being written, last holds the
	// code most recently written on this line. Empty at line start.
	code []byte
	last []byte
}

func newGlyphRun(out *strings.Builder, prefix Prefix) *glyphRun {
	return &glyphRun{
		out:    out,
		prefix: prefix,
		code:   make([]byte, 0, 64),
		last:   make([]byte, 0, 64),
	}
}

// put writes one cell, preceded by its SGR code unless the code equals
// the previous one.
func (r *glyphRun) put(c Cell) {
	r.code = c.AppendCode(r.code[:0], r.prefix)
	if !bytes.Equal(r.code, r.last) {
		r.out.Write(r.code)
		r.code, r.last = r.last, r.code
	}
	r.out.WriteString(c.Glyph)
}

// end terminates the line with a full reset and a newline. The reset is
// written even when the line already ends in the reset state.
func (r *glyphRun) end() {
	r.out.WriteString(string(r.prefix))
	r.out.WriteString("0m\n")
	r.last = r.last[:0]
}

package i2a

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"strings"
	"sync"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wbrown/i2a/imageutil"
)

var (
	red         = color.NRGBA{R: 255, A: 255}
	blue        = color.NRGBA{B: 255, A: 255}
	transparent = color.NRGBA{}
	allModes    = []Mode{OneToFour, OneToOne, OneToOneFG}
)

// gridOf builds a grid from rows of pixels.
func gridOf(t *testing.T, rows ...[]color.NRGBA) Grid {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, len(rows[0]), len(rows)))
	for y, row := range rows {
		require.Len(t, row, len(rows[0]))
		for x, c := range row {
			img.SetNRGBA(x, y, c)
		}
	}
	return GridFromImage(img)
}

func TestEncodeTwoByOneForeground(t *testing.T) {
	grid := gridOf(t, []color.NRGBA{red, transparent})

	got := Encode(grid, OneToOneFG, RawPrefix)

	want := "\x1b[38;2;255;0;0m██\x1b[0m  \x1b[0m\n"
	assert.Equal(t, want, got)
}

func TestEncodeModeTable(t *testing.T) {
	opaqueTop := color.NRGBA{R: 1, G: 2, B: 3, A: 255}
	opaqueBottom := color.NRGBA{R: 4, G: 5, B: 6, A: 9}

	tests := []struct {
		name string
		mode Mode
		grid [][]color.NRGBA
		want string
	}{
		{
			name: "background opaque",
			mode: OneToOne,
			grid: [][]color.NRGBA{{opaqueTop}},
			want: "\x1b[48;2;1;2;3m  \x1b[0m\n",
		},
		{
			name: "background transparent",
			mode: OneToOne,
			grid: [][]color.NRGBA{{transparent}},
			want: "\x1b[0m  \x1b[0m\n",
		},
		{
			name: "foreground transparent uses blank glyph",
			mode: OneToOneFG,
			grid: [][]color.NRGBA{{transparent}},
			want: "\x1b[0m  \x1b[0m\n",
		},
		{
			name: "half blocks both opaque",
			mode: OneToFour,
			grid: [][]color.NRGBA{{opaqueTop}, {opaqueBottom}},
			want: "\x1b[38;2;1;2;3;48;2;4;5;6m▀\x1b[0m\n",
		},
		{
			name: "half blocks top only",
			mode: OneToFour,
			grid: [][]color.NRGBA{{opaqueTop}, {transparent}},
			want: "\x1b[0;38;2;1;2;3m▀\x1b[0m\n",
		},
		{
			name: "half blocks bottom only",
			mode: OneToFour,
			grid: [][]color.NRGBA{{transparent}, {opaqueBottom}},
			want: "\x1b[0;38;2;4;5;6m▄\x1b[0m\n",
		},
		{
			name: "half blocks both transparent",
			mode: OneToFour,
			grid: [][]color.NRGBA{{transparent}, {transparent}},
			want: "\x1b[0m \x1b[0m\n",
		},
		{
			name: "color of transparent pixel ignored",
			mode: OneToOne,
			grid: [][]color.NRGBA{{{R: 9, G: 9, B: 9, A: 0}}},
			want: "\x1b[0m  \x1b[0m\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Encode(gridOf(t, tt.grid...), tt.mode, RawPrefix)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEncodeSuppressesRepeatedCodes(t *testing.T) {
	const n = 7
	row := make([]color.NRGBA, n)
	for i := range row {
		row[i] = blue
	}

	got := Encode(gridOf(t, row), OneToOne, RawPrefix)

	want := "\x1b[48;2;0;0;255m" + strings.Repeat("  ", n) + "\x1b[0m\n"
	assert.Equal(t, want, got)
	assert.Equal(t, 1, strings.Count(got, "48;2;"))
}

func TestEncodeSuppressionIsTextual(t *testing.T) {
	// A top-only cell and a bottom-only cell of the same color share the
	// code "0;38;2;R;G;B", so the second glyph is written bare.
	grid := gridOf(t,
		[]color.NRGBA{red, transparent},
		[]color.NRGBA{transparent, red},
	)

	got := Encode(grid, OneToFour, RawPrefix)

	assert.Equal(t, "\x1b[0;38;2;255;0;0m▀▄\x1b[0m\n", got)
}

func TestEncodeCodeChangeAfterRun(t *testing.T) {
	grid := gridOf(t, []color.NRGBA{red, red, blue, red})

	got := Encode(grid, OneToOneFG, RawPrefix)

	want := "\x1b[38;2;255;0;0m████" +
		"\x1b[38;2;0;0;255m██" +
		"\x1b[38;2;255;0;0m██" +
		"\x1b[0m\n"
	assert.Equal(t, want, got)
}

func TestEncodeSuppressionResetsPerRow(t *testing.T) {
	grid := gridOf(t,
		[]color.NRGBA{transparent, transparent, transparent},
		[]color.NRGBA{transparent, transparent, transparent},
		[]color.NRGBA{transparent, transparent, transparent},
	)

	oneToOne := Encode(grid, OneToOne, RawPrefix)
	assert.Equal(t, strings.Repeat("\x1b[0m      \x1b[0m\n", 3), oneToOne)

	oneToFour := Encode(grid, OneToFour, RawPrefix)
	assert.Equal(t, strings.Repeat("\x1b[0m   \x1b[0m\n", 2), oneToFour)
}

func TestEncodeTransparentPixelAllModes(t *testing.T) {
	grid := gridOf(t, []color.NRGBA{transparent})
	want := map[Mode]string{
		OneToFour:  "\x1b[0m \x1b[0m\n",
		OneToOne:   "\x1b[0m  \x1b[0m\n",
		OneToOneFG: "\x1b[0m  \x1b[0m\n",
	}
	for _, mode := range allModes {
		assert.Equal(t, want[mode], Encode(grid, mode, RawPrefix), mode.String())
	}
}

func TestEncodeOddHeight(t *testing.T) {
	grid := gridOf(t, []color.NRGBA{red}, []color.NRGBA{blue}, []color.NRGBA{red})

	lines := Lines(grid, OneToFour, RawPrefix)

	require.Len(t, lines, 2)
	assert.Equal(t, "\x1b[38;2;255;0;0;48;2;0;0;255m▀\x1b[0m", lines[0])
	assert.Equal(t, "\x1b[0;38;2;255;0;0m▀\x1b[0m", lines[1])
}

func TestEncodeOddHeightIgnoresTrailingPixelData(t *testing.T) {
	// Bytes past the last row must never be read as a bottom pixel.
	pix := []uint8{
		255, 0, 0, 255,
		0, 0, 255, 255,
		255, 0, 0, 255,
		9, 9, 9, 255,
	}
	grid, err := NewGrid(1, 3, pix)
	require.NoError(t, err)

	lines := Lines(grid, OneToFour, RawPrefix)
	require.Len(t, lines, 2)
	assert.Equal(t, "\x1b[0;38;2;255;0;0m▀\x1b[0m", lines[1])
}

func TestEncodeEmptyGrid(t *testing.T) {
	grids := []Grid{
		{},
		{Width: 0, Height: 5},
		{Width: 5, Height: 0},
		GridFromImage(image.NewNRGBA(image.Rect(0, 0, 0, 0))),
	}
	for _, grid := range grids {
		for _, mode := range allModes {
			assert.Empty(t, Encode(grid, mode, RawPrefix))
			assert.Empty(t, Lines(grid, mode, RawPrefix))
			assert.Empty(t, Cells(grid, mode))
		}
	}
}

func TestEncodeLineProperties(t *testing.T) {
	img := imageutil.CreateCheckerboardImage(9, 7, 2, color.NRGBA{R: 12, G: 200, B: 7, A: 255})
	grid := GridFromImage(img)

	for _, mode := range allModes {
		for _, prefix := range []Prefix{RawPrefix, PrintfPrefix} {
			out := Encode(grid, mode, prefix)
			require.True(t, strings.HasSuffix(out, "\n"))

			lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
			assert.Len(t, lines, mode.Rows(grid.Height), mode.String())
			for _, line := range lines {
				assert.True(t, strings.HasSuffix(line, prefix.Reset()), "line %q", line)
			}
			assert.Equal(t, lines, Lines(grid, mode, prefix))
		}
	}
}

func TestEncodePrintfPrefix(t *testing.T) {
	grid := gridOf(t, []color.NRGBA{red, transparent})

	got := Encode(grid, OneToOneFG, PrintfPrefix)

	assert.Equal(t, `\033[38;2;255;0;0m██\033[0m  \033[0m`+"\n", got)
	assert.NotContains(t, got, "\x1b")
}

func TestEncodeDoesNotMutateGrid(t *testing.T) {
	grid := GridFromImage(imageutil.CreateColorBarsImage(16, 5))
	before := bytes.Clone(grid.Pix)

	for _, mode := range allModes {
		_ = Encode(grid, mode, RawPrefix)
	}
	assert.Equal(t, before, grid.Pix)
}

func TestEncodeInvalidModeFallsBack(t *testing.T) {
	grid := GridFromImage(imageutil.CreateColorBarsImage(8, 3))
	assert.Equal(t, Encode(grid, OneToFour, RawPrefix), Encode(grid, Mode(42), RawPrefix))
}

func TestEncodeTo(t *testing.T) {
	grid := GridFromImage(imageutil.CreateGradientImage(12, 5))

	for _, mode := range allModes {
		var buf bytes.Buffer
		n, err := EncodeTo(&buf, grid, mode, RawPrefix)
		require.NoError(t, err)

		want := Encode(grid, mode, RawPrefix)
		assert.Equal(t, want, buf.String())
		assert.Equal(t, int64(len(want)), n)
	}
}

type failingWriter struct{ after int }

func (w *failingWriter) Write(p []byte) (int, error) {
	if w.after <= 0 {
		return 0, errors.New("disk full")
	}
	w.after--
	return len(p), nil
}

func TestEncodeToWriterError(t *testing.T) {
	grid := GridFromImage(imageutil.CreateGradientImage(4, 4))

	_, err := EncodeTo(&failingWriter{after: 1}, grid, OneToOne, RawPrefix)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 1")
}

func TestEncoderOptions(t *testing.T) {
	enc := NewEncoder()
	assert.Equal(t, OneToFour, enc.Mode)
	assert.Equal(t, RawPrefix, enc.Prefix)

	enc = NewEncoder(WithMode(OneToOneFG), WithPrefix(PrintfPrefix))
	grid := gridOf(t, []color.NRGBA{red, transparent})
	assert.Equal(t, Encode(grid, OneToOneFG, PrintfPrefix), enc.Encode(grid))

	var buf bytes.Buffer
	_, err := enc.EncodeTo(&buf, grid)
	require.NoError(t, err)
	assert.Equal(t, enc.Encode(grid), buf.String())
}

func TestEncodeConcurrent(t *testing.T) {
	grids := []Grid{
		GridFromImage(imageutil.CreateColorBarsImage(24, 9)),
		GridFromImage(imageutil.CreateGradientImage(17, 6)),
		GridFromImage(imageutil.CreateCheckerboardImage(10, 10, 3, red)),
	}
	want := make([]string, len(grids))
	for i, g := range grids {
		want[i] = Encode(g, OneToFour, RawPrefix)
	}

	var wg sync.WaitGroup
	for range 8 {
		for i, g := range grids {
			wg.Add(1)
			go func() {
				defer wg.Done()
				assert.Equal(t, want[i], Encode(g, OneToFour, RawPrefix))
			}()
		}
	}
	wg.Wait()
}

func TestDimensionsMatchRenderedWidth(t *testing.T) {
	grid := GridFromImage(imageutil.CreateCheckerboardImage(11, 5, 2, blue))

	for _, mode := range allModes {
		lines := Lines(grid, mode, RawPrefix)
		cols, rows := Dimensions(grid.Width, grid.Height, mode)

		assert.Equal(t, len(lines), rows, mode.String())
		for _, line := range lines {
			assert.Equal(t, cols, ansi.StringWidth(line), mode.String())
		}
	}
}

func TestEncodeStrippedGlyphs(t *testing.T) {
	grid := gridOf(t,
		[]color.NRGBA{red, transparent, red, transparent},
		[]color.NRGBA{blue, blue, transparent, transparent},
	)

	assert.Equal(t, "▀▄▀ ", ansi.Strip(Lines(grid, OneToFour, RawPrefix)[0]))
	assert.Equal(t, "██  ██  ", ansi.Strip(Lines(grid, OneToOneFG, RawPrefix)[0]))
}

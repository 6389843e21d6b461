package i2a

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGrid(t *testing.T) {
	grid, err := NewGrid(2, 1, []uint8{1, 2, 3, 4, 5, 6, 7, 8})
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{R: 5, G: 6, B: 7, A: 8}, grid.At(1, 0))

	_, err = NewGrid(2, 2, make([]uint8, 12))
	assert.Error(t, err)

	_, err = NewGrid(-1, 2, nil)
	assert.Error(t, err)

	grid, err = NewGrid(0, 0, nil)
	require.NoError(t, err)
	assert.True(t, grid.Empty())
}

func TestGridFromImageUnpremultiplies(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 1, 1))
	src.SetRGBA(0, 0, color.RGBA{R: 100, G: 50, B: 0, A: 100})

	got := GridFromImage(src).At(0, 0)
	assert.Equal(t, uint8(100), got.A)
	assert.Equal(t, uint8(255), got.R)
	assert.InDelta(t, 127, int(got.G), 1)
}

func TestGridFromImageOpaqueWithoutAlpha(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 1, 1))
	src.SetGray(0, 0, color.Gray{Y: 0})

	assert.Equal(t, color.NRGBA{A: 255}, GridFromImage(src).At(0, 0))
}

func TestGridFromImageSubImage(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	src.SetNRGBA(2, 3, color.NRGBA{R: 7, A: 255})

	grid := GridFromImage(src.SubImage(image.Rect(1, 2, 4, 4)))
	require.Equal(t, 3, grid.Width)
	require.Equal(t, 2, grid.Height)
	assert.Equal(t, color.NRGBA{R: 7, A: 255}, grid.At(1, 1))
	assert.Len(t, grid.Pix, 3*2*4)
}

package i2a

import "image/color"

// RGB represents a color in the RGB color space with 8-bit channels,
// where each channel ranges from 0 to 255.
type RGB struct {
	R, G, B uint8
}

// rgbFromNRGBA drops the alpha channel of a straight-alpha pixel.
func rgbFromNRGBA(c color.NRGBA) RGB {
	return RGB{R: c.R, G: c.G, B: c.B}
}

// toColor converts an RGB color to an opaque color.NRGBA.
func (rgb RGB) toColor() color.NRGBA {
	return color.NRGBA{R: rgb.R, G: rgb.G, B: rgb.B, A: 255}
}

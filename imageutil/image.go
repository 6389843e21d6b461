// Package imageutil decodes image files into straight-alpha RGBA pixel
// data and writes preview images back to disk.
package imageutil

import (
	"fmt"
	"image"
)

// ToNRGBA converts any image.Image to a zero-origin *image.NRGBA. Colors
// are converted through the NRGBA model, so premultiplied sources are
// un-premultiplied and sources without alpha become fully opaque.
func ToNRGBA(img image.Image) *image.NRGBA {
	bounds := img.Bounds()
	if n, ok := img.(*image.NRGBA); ok && bounds.Min == (image.Point{}) {
		return n
	}

	nrgba := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			nrgba.Set(x-bounds.Min.X, y-bounds.Min.Y, img.At(x, y))
		}
	}
	return nrgba
}

// ColorMode names the pixel layout of a decoded image, e.g. "RGBA",
// "RGB" or "L" for grayscale.
func ColorMode(img image.Image) string {
	switch img.(type) {
	case *image.NRGBA, *image.RGBA:
		return "RGBA"
	case *image.NRGBA64, *image.RGBA64:
		return "RGBA64"
	case *image.Gray:
		return "L"
	case *image.Gray16:
		return "L16"
	case *image.Alpha, *image.Alpha16:
		return "A"
	case *image.Paletted:
		return "P"
	case *image.YCbCr:
		return "YCbCr"
	case *image.NYCbCrA:
		return "YCbCrA"
	case *image.CMYK:
		return "CMYK"
	}
	return fmt.Sprintf("%T", img)
}

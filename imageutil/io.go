package imageutil

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF decoder
	_ "image/jpeg" // Register JPEG decoder
	"image/png"
	"io"
	"io/fs"
	"os"

	_ "golang.org/x/image/bmp"  // Register BMP decoder
	_ "golang.org/x/image/tiff" // Register TIFF decoder
	_ "golang.org/x/image/webp" // Register WebP decoder
)

var (
	// ErrNotExist is returned by Load when the file does not exist.
	ErrNotExist = errors.New("file does not exist")
	// ErrInvalidImage is returned when the data is not a decodable image.
	ErrInvalidImage = errors.New("not a valid image")
)

// Info describes a decoded source image.
type Info struct {
	Path   string
	Width  int
	Height int
	// Format is the registered decoder name: png, jpeg, gif, bmp, tiff
	// or webp.
	Format string
	// Mode is the source pixel layout as reported by ColorMode.
	Mode string
}

// Decoded is an image converted to straight-alpha RGBA.
type Decoded struct {
	Image *image.NRGBA
	Info  Info
}

// Load decodes the image at path.
// Supports PNG, JPEG, GIF, BMP, TIFF and WebP.
func Load(path string) (*Decoded, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %w", ErrNotExist, err)
		}
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	return Decode(f, path)
}

// Decode decodes an image from r. name is recorded in the returned Info.
func Decode(r io.Reader, name string) (*Decoded, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidImage, name, err)
	}

	bounds := img.Bounds()
	return &Decoded{
		Image: ToNRGBA(img),
		Info: Info{
			Path:   name,
			Width:  bounds.Dx(),
			Height: bounds.Dy(),
			Format: format,
			Mode:   ColorMode(img),
		},
	}, nil
}

// SavePNG saves an image as PNG to the specified path.
func SavePNG(img image.Image, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}

	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode png: %w", err)
	}
	return f.Close()
}

// Package source decodes image files into per-channel float64 grids.
package source

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"os"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"integral/channels"
)

// ErrEmptyImage is returned for images without pixels.
var ErrEmptyImage = errors.New("image has no pixels")

// LoadError reports an input that could not be turned into channels.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("can't load image from %q: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Image is a decoded source split into independent channels.
type Image struct {
	Path     string
	Format   string
	Channels channels.Collection
}

// Load decodes the image at path and splits it into channels.
func Load(path string) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			slog.Error("could not close image", "file", path, "error", closeErr)
		}
	}()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	if img.Bounds().Empty() {
		return nil, &LoadError{Path: path, Err: ErrEmptyImage}
	}

	return &Image{
		Path:     path,
		Format:   format,
		Channels: Split(img),
	}, nil
}

// Package imaging loads, validates, crops and encodes the raster images
// the form accepts for signatures.
package imaging

import (
	"errors"
	"fmt"
	"image"
	"os"

	// Decoders for everything the file picker accepts.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
)

// Acceptance limits for uploaded images.
const (
	MaxFileBytes = 2 << 20 // 2 MiB
	MinWidth     = 500
	MinHeight    = 250
)

var (
	ErrFileTooLarge  = errors.New("image file exceeds 2 MiB")
	ErrImageTooSmall = errors.New("image is smaller than 500x250")
	ErrNoImage       = errors.New("no image loaded")
	ErrEmptyRegion   = errors.New("crop region has zero width or height")
)

// Load reads and decodes an image file, rejecting files over MaxFileBytes
// and rasters under MinWidth x MinHeight. On rejection the caller's previous
// preview state stays whatever it was; Load has no side effects.
func Load(path string) (image.Image, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat image: %w", err)
	}
	if fi.Size() > MaxFileBytes {
		return nil, fmt.Errorf("%w (%d bytes)", ErrFileTooLarge, fi.Size())
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	b := img.Bounds()
	if b.Dx() < MinWidth || b.Dy() < MinHeight {
		return nil, fmt.Errorf("%w (got %dx%d)", ErrImageTooSmall, b.Dx(), b.Dy())
	}
	return img, nil
}

// Package gray allows for loading grayscale images and applying
// image filtering effects on them.
package gray

import (
	"crypto/sha512"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"math"
)

//=============================================================================
// Image struct and methods
//=============================================================================

// Image is a single-channel raster.
// 'Pixels' holds Height*Width values in row-major order (index = row*Width + col).
// obs: filters never modify an Image; each effect returns a new one.
type Image struct {
	Height int     // number of rows
	Width  int     // number of columns
	Pixels []uint8 // row-major pixel values
}

// New returns a black image with the given dimensions.
func New(height, width int) (*Image, error) {
	if height <= 0 || width <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidImageShape, height, width)
	}
	return &Image{Height: height, Width: width, Pixels: make([]uint8, height*width)}, nil
}

// FromPixels returns an image holding a copy of 'pixels'.
func FromPixels(height, width int, pixels []uint8) (*Image, error) {
	im := &Image{Height: height, Width: width, Pixels: pixels}
	if err := im.Validate(); err != nil {
		return nil, err
	}
	return im.Clone(), nil
}

// Validate checks the shape invariant of an image built by hand.
func (im *Image) Validate() error {
	if im == nil {
		return fmt.Errorf("%w: nil image", ErrInvalidImageShape)
	}
	if im.Height <= 0 || im.Width <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidImageShape, im.Height, im.Width)
	}
	if len(im.Pixels) != im.Height*im.Width {
		return fmt.Errorf("%w: %d pixels for %dx%d", ErrInvalidImageShape, len(im.Pixels), im.Height, im.Width)
	}
	return nil
}

// At returns the pixel at (row, col). Panics when out of range; see Sample.
func (im *Image) At(row, col int) uint8 {
	return im.Pixels[row*im.Width+col]
}

// Set sets the pixel at (row, col) to 'v'.
func (im *Image) Set(row, col int, v uint8) {
	im.Pixels[row*im.Width+col] = v
}

// Sample returns the pixel at (row, col) extending edge pixels outward:
// each out of range coordinate is clamped to the nearest valid index.
func (im *Image) Sample(row, col int) uint8 {
	if row < 0 {
		row = 0
	} else if row >= im.Height {
		row = im.Height - 1
	}
	if col < 0 {
		col = 0
	} else if col >= im.Width {
		col = im.Width - 1
	}
	return im.Pixels[row*im.Width+col]
}

// Clone returns a deep copy of the image.
func (im *Image) Clone() *Image {
	pixels := make([]uint8, len(im.Pixels))
	copy(pixels, im.Pixels)
	return &Image{Height: im.Height, Width: im.Width, Pixels: pixels}
}

// blankLike allocates a black image with the shape of 'im'.
func (im *Image) blankLike() *Image {
	return &Image{Height: im.Height, Width: im.Width, Pixels: make([]uint8, len(im.Pixels))}
}

// Equal reports whether both images have the same shape and pixels.
func (im *Image) Equal(other *Image) bool {
	return FirstDiff(im, other) == -1
}

// Hash returns a hex SHA-512 digest of the image shape and pixels.
// Used to check that an effect left its input untouched.
func (im *Image) Hash() string {
	h := sha512.New()
	var dims [16]byte
	binary.LittleEndian.PutUint64(dims[:8], uint64(im.Height))
	binary.LittleEndian.PutUint64(dims[8:], uint64(im.Width))
	h.Write(dims[:])
	h.Write(im.Pixels)
	return hex.EncodeToString(h.Sum(nil))
}

// clamp will clamp 'v' to zero if 'v'<0 or 255 if 'v'>255
func clamp(v float64) uint8 {
	return uint8(math.Min(255, math.Max(0, v)))
}

// quantize rounds 'v' to the nearest integer (half away from zero) and clamps it to [0, 255].
func quantize(v float64) uint8 {
	return clamp(math.Round(v))
}

//============================================================================
// functions for debugging and testing
//============================================================================

// FirstDiff returns the index of the first pixel that differs between 'a' and 'b',
// 0 if their shapes differ, or -1 if they are equal.
func FirstDiff(a, b *Image) int {
	if a.Height != b.Height || a.Width != b.Width || len(a.Pixels) != len(b.Pixels) {
		return 0
	}
	for i := range a.Pixels {
		if a.Pixels[i] != b.Pixels[i] {
			return i
		}
	}
	return -1
}

// String prints the pixels of the image one row per line.
func (im *Image) String() string {
	var s []byte
	for r := 0; r < im.Height; r++ {
		for c := 0; c < im.Width; c++ {
			if c > 0 {
				s = append(s, ' ')
			}
			s = fmt.Appendf(s, "%3d", im.At(r, c))
		}
		s = append(s, '\n')
	}
	return string(s)
}

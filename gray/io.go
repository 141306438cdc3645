package gray

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// Load returns the grayscale Image stored in the PNG, BMP or TIFF file at 'filePath'.
// Gray images are read verbatim, 16-bit gray keeps the high byte, and any other
// color model is converted with round(0.299 R + 0.587 G + 0.114 B), ignoring alpha.
func Load(filePath string) (*Image, error) {
	inReader, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}
	defer inReader.Close()

	// obs: bmp and tiff register themselves with image.Decode when imported
	inOrig, _, err := image.Decode(inReader)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrLoad, filePath, err)
	}
	im := fromImage(inOrig)
	if err := im.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrLoad, filePath, err)
	}
	return im, nil
}

// fromImage converts any decoded image into an Image.
func fromImage(src image.Image) *Image {
	bounds := src.Bounds()
	im := &Image{Height: bounds.Dy(), Width: bounds.Dx(), Pixels: make([]uint8, bounds.Dx()*bounds.Dy())}

	i := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			im.Pixels[i] = luminance(src.At(x, y))
			i++
		}
	}
	return im
}

// luminance returns the 8-bit gray level of 'c'.
func luminance(c color.Color) uint8 {
	switch c := c.(type) {
	case color.Gray:
		return c.Y
	case color.Gray16:
		return uint8(c.Y >> 8)
	}
	// non-premultiplied so that transparent pixels keep their color
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	// integer arithmetic: (299 R + 587 G + 114 B) / 1000 rounded half up
	return uint8((299*uint32(n.R) + 587*uint32(n.G) + 114*uint32(n.B) + 500) / 1000)
}

// Save encodes the image as 8-bit gray into 'filePath'.
// The format is chosen from the extension: .png, .bmp, .tif or .tiff.
func (im *Image) Save(filePath string) error {
	if err := im.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrSave, err)
	}
	ext := strings.ToLower(filepath.Ext(filePath))
	var encode func(f *os.File, m image.Image) error
	switch ext {
	case ".png":
		encode = func(f *os.File, m image.Image) error { return png.Encode(f, m) }
	case ".bmp":
		encode = func(f *os.File, m image.Image) error { return bmp.Encode(f, m) }
	case ".tif", ".tiff":
		encode = func(f *os.File, m image.Image) error { return tiff.Encode(f, m, nil) }
	default:
		return fmt.Errorf("%w: unsupported format %q", ErrSave, ext)
	}

	outWriter, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSave, err)
	}
	if err := encode(outWriter, im.toGray()); err != nil {
		outWriter.Close()
		return fmt.Errorf("%w: %s: %w", ErrSave, filePath, err)
	}
	if err := outWriter.Close(); err != nil {
		return fmt.Errorf("%w: %w", ErrSave, err)
	}
	return nil
}

// toGray copies the pixels into an *image.Gray.
func (im *Image) toGray() *image.Gray {
	g := image.NewGray(image.Rect(0, 0, im.Width, im.Height))
	for r := 0; r < im.Height; r++ {
		copy(g.Pix[r*g.Stride:r*g.Stride+im.Width], im.Pixels[r*im.Width:(r+1)*im.Width])
	}
	return g
}

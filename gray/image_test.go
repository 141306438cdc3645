package gray_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"grayedit/gray"
)

// centeredPixel returns the 11x11 black image with a single 255 pixel at (5, 5).
func centeredPixel(t *testing.T) *gray.Image {
	t.Helper()
	im, err := gray.New(11, 11)
	require.NoError(t, err)
	im.Set(5, 5, 255)
	return im
}

// imageWithValues builds an image from 'pixels', failing the test on a bad shape.
func imageWithValues(t *testing.T, height, width int, pixels ...uint8) *gray.Image {
	t.Helper()
	im, err := gray.FromPixels(height, width, pixels)
	require.NoError(t, err)
	return im
}

// gradient returns a deterministic non-trivial test image.
func gradient(t *testing.T, height, width int) *gray.Image {
	t.Helper()
	im, err := gray.New(height, width)
	require.NoError(t, err)
	for r := 0; r < height; r++ {
		for c := 0; c < width; c++ {
			im.Set(r, c, uint8((r*37+c*91+(r*c)%17)%256))
		}
	}
	return im
}

func TestNew_InvalidShape(t *testing.T) {
	t.Parallel()
	for _, dims := range [][2]int{{0, 3}, {3, 0}, {-1, 2}} {
		im, err := gray.New(dims[0], dims[1])
		require.Nil(t, im)
		require.ErrorIs(t, err, gray.ErrInvalidImageShape)
	}
}

func TestFromPixels(t *testing.T) {
	t.Parallel()

	_, err := gray.FromPixels(2, 2, []uint8{1, 2, 3})
	require.ErrorIs(t, err, gray.ErrInvalidImageShape)

	src := []uint8{1, 2, 3, 4, 5, 6}
	im, err := gray.FromPixels(2, 3, src)
	require.NoError(t, err)
	require.Equal(t, uint8(6), im.At(1, 2))

	// the image owns a copy of the pixels
	src[0] = 99
	require.Equal(t, uint8(1), im.At(0, 0))
}

func TestValidate(t *testing.T) {
	t.Parallel()
	var nilImage *gray.Image
	require.ErrorIs(t, nilImage.Validate(), gray.ErrInvalidImageShape)
	require.ErrorIs(t, (&gray.Image{Height: 2, Width: 2, Pixels: make([]uint8, 3)}).Validate(), gray.ErrInvalidImageShape)
	require.NoError(t, (&gray.Image{Height: 1, Width: 3, Pixels: make([]uint8, 3)}).Validate())
}

func TestSample_EdgeExtension(t *testing.T) {
	t.Parallel()
	im := imageWithValues(t, 2, 3,
		10, 20, 30,
		40, 50, 60)

	cases := []struct {
		name     string
		row, col int
		want     uint8
	}{
		{"inside", 1, 1, 50},
		{"above", -1, 1, 20},
		{"below", 5, 2, 60},
		{"left", 0, -4, 10},
		{"right", 1, 3, 60},
		{"top-left corner", -7, -7, 10},
		{"bottom-right corner", 100, 100, 60},
		{"far above right", -1000000, 1000000, 30},
		{"below left", 2, -1, 40},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, im.Sample(tc.row, tc.col))
		})
	}
}

func TestHashAndEqual(t *testing.T) {
	t.Parallel()
	a := gradient(t, 4, 5)
	b := a.Clone()
	require.True(t, a.Equal(b))
	require.Equal(t, a.Hash(), b.Hash())
	require.Equal(t, -1, gray.FirstDiff(a, b))

	b.Set(2, 3, b.At(2, 3)+1)
	require.False(t, a.Equal(b))
	require.NotEqual(t, a.Hash(), b.Hash())
	require.Equal(t, 2*5+3, gray.FirstDiff(a, b))

	// same pixels, different shape
	c := imageWithValues(t, 5, 4, a.Pixels...)
	require.False(t, a.Equal(c))
	require.NotEqual(t, a.Hash(), c.Hash())
}

func TestString(t *testing.T) {
	t.Parallel()
	im := imageWithValues(t, 2, 2, 0, 255, 7, 42)
	require.Equal(t, "  0 255\n  7  42\n", im.String())
}

package gray_test

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"

	"grayedit/gray"
)

func TestSaveLoad_RoundTrip(t *testing.T) {
	t.Parallel()
	im := gradient(t, 7, 13)
	dir := t.TempDir()

	for _, name := range []string{"out.png", "out.bmp", "out.tif", "OUT.TIFF"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			require.NoError(t, im.Save(path))

			loaded, err := gray.Load(path)
			require.NoError(t, err)
			requireSameImage(t, im, loaded)
		})
	}
}

func TestLoad_CenteredPixelPNG(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "centered_pixel.png")
	require.NoError(t, centeredPixel(t).Save(path))

	loaded, err := gray.Load(path)
	require.NoError(t, err)
	requireSameImage(t, expectedWith(255, 60), loaded)
}

func TestLoad_ConvertsColor(t *testing.T) {
	t.Parallel()
	src := image.NewNRGBA(image.Rect(0, 0, 4, 1))
	src.Set(0, 0, color.NRGBA{R: 255, A: 255})
	src.Set(1, 0, color.NRGBA{G: 255, A: 255})
	src.Set(2, 0, color.NRGBA{B: 255, A: 255})
	src.Set(3, 0, color.NRGBA{R: 100, G: 150, B: 200, A: 128})

	path := filepath.Join(t.TempDir(), "rgb.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, src))
	require.NoError(t, f.Close())

	loaded, err := gray.Load(path)
	require.NoError(t, err)
	require.Equal(t, 1, loaded.Height)
	require.Equal(t, 4, loaded.Width)
	// 0.299*255 = 76.2, 0.587*255 = 149.7, 0.114*255 = 29.1, 29.9+88.05+22.8 = 140.75; alpha ignored
	require.Equal(t, []uint8{76, 150, 29, 141}, loaded.Pixels)
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	_, err := gray.Load(filepath.Join(dir, "missing.png"))
	require.ErrorIs(t, err, gray.ErrLoad)

	garbage := filepath.Join(dir, "garbage.png")
	require.NoError(t, os.WriteFile(garbage, []byte("not an image"), 0o644))
	_, err = gray.Load(garbage)
	require.ErrorIs(t, err, gray.ErrLoad)

	// decodes fine but has no pixels
	empty := filepath.Join(dir, "empty.bmp")
	f, err := os.Create(empty)
	require.NoError(t, err)
	require.NoError(t, bmp.Encode(f, image.NewGray(image.Rect(0, 0, 0, 0))))
	require.NoError(t, f.Close())
	im, err := gray.Load(empty)
	require.Nil(t, im)
	require.ErrorIs(t, err, gray.ErrLoad)
	require.ErrorIs(t, err, gray.ErrInvalidImageShape)
}

func TestSave_Errors(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	im := gradient(t, 2, 2)

	require.ErrorIs(t, im.Save(filepath.Join(dir, "out.jpg")), gray.ErrSave)
	require.ErrorIs(t, im.Save(filepath.Join(dir, "no", "such", "dir.png")), gray.ErrSave)

	bad := &gray.Image{Height: 2, Width: 2, Pixels: []uint8{1}}
	err := bad.Save(filepath.Join(dir, "bad.png"))
	require.ErrorIs(t, err, gray.ErrSave)
	require.ErrorIs(t, err, gray.ErrInvalidImageShape)
}

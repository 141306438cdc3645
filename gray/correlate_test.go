package gray_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"grayedit/gray"
)

func TestCorrelate_IdentityKernel(t *testing.T) {
	t.Parallel()
	im := gradient(t, 6, 7)
	k, err := gray.NewKernel([]float64{0, 0, 0, 0, 1, 0, 0, 0, 0})
	require.NoError(t, err)

	grid, err := gray.Correlate(im, k)
	require.NoError(t, err)
	rows, cols := grid.Dims()
	require.Equal(t, 6, rows)
	require.Equal(t, 7, cols)
	require.True(t, gray.RoundAndClip(grid).Equal(im))
}

func TestCorrelate_IsNotFlipped(t *testing.T) {
	t.Parallel()
	// a kernel picking the right-hand neighbor shifts the image left
	im := imageWithValues(t, 1, 4, 1, 2, 3, 4)
	k, err := gray.NewKernel([]float64{0, 0, 0, 0, 0, 1, 0, 0, 0})
	require.NoError(t, err)

	grid, err := gray.Correlate(im, k)
	require.NoError(t, err)
	// last column samples past the edge and repeats itself
	require.Equal(t, []float64{2, 3, 4, 4}, mat.Row(nil, 0, grid))
}

func TestCorrelate_EdgeExtensionWithLargeKernel(t *testing.T) {
	t.Parallel()
	// a 7x7 kernel on a 1x2 image reaches far outside the bounds
	im := imageWithValues(t, 1, 2, 10, 20)
	values := make([]float64, 49)
	for i := range values {
		values[i] = 1
	}
	k, err := gray.NewKernel(values)
	require.NoError(t, err)

	grid, err := gray.Correlate(im, k)
	require.NoError(t, err)
	// every row of the window is [10 10 10 10 20 20 20] for column 0
	require.Equal(t, 7.0*(4*10+3*20), grid.At(0, 0))
	require.Equal(t, 7.0*(3*10+4*20), grid.At(0, 1))
}

func TestCorrelate_InvalidArguments(t *testing.T) {
	t.Parallel()
	im := gradient(t, 3, 3)

	_, err := gray.Correlate(im, nil)
	require.ErrorIs(t, err, gray.ErrInvalidKernelShape)

	_, err = gray.Correlate(im, &gray.Kernel{})
	require.ErrorIs(t, err, gray.ErrInvalidKernelShape)

	_, err = gray.Correlate(&gray.Image{Height: 2, Width: 2, Pixels: []uint8{1}}, gray.SobelX())
	require.ErrorIs(t, err, gray.ErrInvalidImageShape)
}

func TestRoundAndClip(t *testing.T) {
	t.Parallel()
	grid := mat.NewDense(1, 7, []float64{-3.2, 0.49, 0.5, 27.5, 254.4, 255.6, 1e6})
	im := gray.RoundAndClip(grid)
	require.Equal(t, 1, im.Height)
	require.Equal(t, 7, im.Width)
	require.Equal(t, []uint8{0, 0, 1, 28, 254, 255, 255}, im.Pixels)
}

func TestEngine_SlicesMatchSequential(t *testing.T) {
	t.Parallel()
	im := gradient(t, 23, 17)
	k, err := gray.BoxKernel(5)
	require.NoError(t, err)

	want, err := gray.Correlate(im, k)
	require.NoError(t, err)

	for _, slices := range []int{0, 1, 2, 3, 8, 23, 100} {
		got, err := gray.NewEngine(slices).Correlate(im, k)
		require.NoError(t, err)
		require.True(t, mat.Equal(want, got), "slices=%d", slices)
	}
}

func TestSlicesByRow(t *testing.T) {
	t.Parallel()
	im := gradient(t, 10, 4)

	cases := []struct {
		numSlices int
		wantEnds  []int
	}{
		{1, []int{10}},
		{0, []int{10}},
		{3, []int{4, 8, 10}},
		{4, []int{3, 6, 9, 10}},
		{10, []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}},
		{50, []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}},
	}
	for _, tc := range cases {
		slices := gray.SlicesByRow(im, tc.numSlices)
		require.Len(t, slices, len(tc.wantEnds), "numSlices=%d", tc.numSlices)
		start := 0
		for i, s := range slices {
			require.Equal(t, start, s.YStart)
			require.Equal(t, tc.wantEnds[i], s.YEnd)
			require.Equal(t, 0, s.XStart)
			require.Equal(t, 4, s.XEnd)
			start = s.YEnd
		}
	}
}

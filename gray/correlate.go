package gray

import (
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"
)

// Engine applies effects to images, splitting the per-pixel work of every
// correlation into row slices processed by separate goroutines.
// A zero Engine works like NewEngine(1).
type Engine struct {
	slices int
}

// NewEngine returns an Engine that correlates 'slices' bands of rows in parallel.
// slices <= 1 runs everything on the calling goroutine.
func NewEngine(slices int) *Engine {
	if slices < 1 {
		slices = 1
	}
	return &Engine{slices: slices}
}

// sequential is used by the package level effect functions.
var sequential = NewEngine(1)

// Correlate applies 'kernel' to every pixel of 'img' and returns the unrounded result.
func Correlate(img *Image, kernel *Kernel) (*mat.Dense, error) {
	return sequential.Correlate(img, kernel)
}

// Correlate applies 'kernel' to every pixel of 'img', sampling outside the image
// with edge extension. The kernel is not flipped.
// Fails before touching any pixel if either argument is malformed.
func (e *Engine) Correlate(img *Image, kernel *Kernel) (*mat.Dense, error) {
	if err := kernel.validate(); err != nil {
		return nil, err
	}
	if err := img.Validate(); err != nil {
		return nil, err
	}
	out := mat.NewDense(img.Height, img.Width, nil)

	slices := SlicesByRow(img, e.slices)
	if len(slices) == 1 {
		correlateSlice(img, kernel, out, slices[0])
		return out, nil
	}
	// obs: every goroutine reads 'img' and writes a disjoint band of rows of 'out';
	// the group is only used to fan out and join, no slice can fail
	var g errgroup.Group
	for _, s := range slices {
		g.Go(func() error {
			correlateSlice(img, kernel, out, s)
			return nil
		})
	}
	_ = g.Wait()
	return out, nil
}

// correlateSlice fills the rows and columns of 'out' delimited by 's'.
// @img: image being read
// @kernel: kernel to be applied
// @out: float grid being written
// @s: indexes delimiting the slice of the output to be computed
func correlateSlice(img *Image, kernel *Kernel, out *mat.Dense, s ImageSlice) {
	n := kernel.center
	for r := s.YStart; r < s.YEnd; r++ {
		for c := s.XStart; c < s.XEnd; c++ {
			var sum float64
			// iterate over kernel rows and columns; offsets (i-n, j-n) span [-n, n]
			for i := 0; i < kernel.dim; i++ {
				for j := 0; j < kernel.dim; j++ {
					sum += kernel.values[i*kernel.dim+j] * float64(img.Sample(r+i-n, c+j-n))
				}
			}
			out.Set(r, c, sum)
		}
	}
}

// RoundAndClip rounds every value of 'grid' to the nearest integer and clamps it into [0, 255].
func RoundAndClip(grid *mat.Dense) *Image {
	rows, cols := grid.Dims()
	im := &Image{Height: rows, Width: cols, Pixels: make([]uint8, rows*cols)}
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			im.Pixels[r*cols+c] = quantize(grid.At(r, c))
		}
	}
	return im
}

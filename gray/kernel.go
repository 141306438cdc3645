package gray

import (
	"fmt"
	"math"
)

//=============================================================================
// Kernel struct and methods
//=============================================================================

// Kernel represents a square kernel to be correlated with an image
// @values: kernel weights in row-major order
// @dim: side of the kernel (i.e., dim x dim); always odd
// @center: offset of the center element in each direction (dim / 2)
// obs: weights need not sum to 1
type Kernel struct {
	values []float64
	dim    int
	center int
}

// NewKernel creates a Kernel from 'values' given in row-major order.
// The number of values must be the square of an odd number.
func NewKernel(values []float64) (*Kernel, error) {
	dim := int(math.Sqrt(float64(len(values))))
	if dim*dim != len(values) || dim%2 == 0 {
		return nil, fmt.Errorf("%w: %d values", ErrInvalidKernelShape, len(values))
	}
	k := &Kernel{values: make([]float64, len(values)), dim: dim, center: dim / 2}
	copy(k.values, values)
	return k, nil
}

// NewKernel2D creates a Kernel from a matrix of weights.
func NewKernel2D(rows [][]float64) (*Kernel, error) {
	dim := len(rows)
	values := make([]float64, 0, dim*dim)
	for i, row := range rows {
		if len(row) != dim {
			return nil, fmt.Errorf("%w: row %d has %d columns, want %d", ErrInvalidKernelShape, i, len(row), dim)
		}
		values = append(values, row...)
	}
	return NewKernel(values)
}

// BoxKernel returns a 'size' x 'size' kernel whose weights all equal 1/size².
func BoxKernel(size int) (*Kernel, error) {
	if size <= 0 || size%2 == 0 {
		return nil, fmt.Errorf("%w: box size %d", ErrInvalidKernelShape, size)
	}
	values := make([]float64, size*size)
	w := 1 / float64(size*size)
	for i := range values {
		values[i] = w
	}
	return &Kernel{values: values, dim: size, center: size / 2}, nil
}

// SobelX returns the horizontal gradient kernel.
func SobelX() *Kernel {
	return &Kernel{values: []float64{
		-1, 0, 1,
		-2, 0, 2,
		-1, 0, 1,
	}, dim: 3, center: 1}
}

// SobelY returns the vertical gradient kernel.
func SobelY() *Kernel {
	return &Kernel{values: []float64{
		-1, -2, -1,
		0, 0, 0,
		1, 2, 1,
	}, dim: 3, center: 1}
}

// Dim returns the side of the kernel.
func (k *Kernel) Dim() int { return k.dim }

// At returns the weight at kernel row 'i' and column 'j'.
func (k *Kernel) At(i, j int) float64 {
	return k.values[i*k.dim+j]
}

// validate fails on a nil or zero value Kernel, the only way to get an
// even sided one past the constructors.
func (k *Kernel) validate() error {
	if k == nil || k.dim%2 == 0 || len(k.values) != k.dim*k.dim {
		return ErrInvalidKernelShape
	}
	return nil
}

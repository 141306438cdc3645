package gray

import "errors"

// Every message is prefixed with "gray: ". Callers add context with
// fmt.Errorf("...: %w", ErrX) and match with errors.Is.
var (
	// ErrInvalidKernelShape is returned when a kernel is not square or its side is even.
	// Raised before any pixel is computed.
	ErrInvalidKernelShape = errors.New("gray: invalid kernel shape")

	// ErrInvalidImageShape is returned when len(Pixels) != Height*Width or a dimension is not positive.
	ErrInvalidImageShape = errors.New("gray: invalid image shape")

	// ErrLoad wraps every failure to read or decode an image file.
	ErrLoad = errors.New("gray: cannot load image")

	// ErrSave wraps every failure to encode or write an image file.
	ErrSave = errors.New("gray: cannot save image")

	// ErrUnknownEffect is returned by ParseEffect for names it does not recognize.
	ErrUnknownEffect = errors.New("gray: unknown effect")
)

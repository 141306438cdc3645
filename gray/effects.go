package gray

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// default side of the kernel for the one-letter effect names
const defaultKernelSize = 3

// hashmap of effect names accepted by ParseEffect and the effect they stand for
var effectNames = map[string]string{
	"I": "invert", "invert": "invert",
	"B": "blur", "blur": "blur",
	"S": "sharpen", "sharpen": "sharpen",
	"E": "edges", "edges": "edges",
}

//=============================================================================
// Effect descriptors
//=============================================================================

// Effect names a filter and, for blur and sharpen, the side of its box kernel.
type Effect struct {
	Name string
	Size int
}

func (ef Effect) String() string {
	if ef.Size > 0 {
		return fmt.Sprintf("%s:%d", ef.Name, ef.Size)
	}
	return ef.Name
}

// ParseEffect parses effects such as "invert", "blur:5", "sharpen:9", "edges",
// or the one-letter forms "I", "B", "S", "E" (blur and sharpen default to size 3).
func ParseEffect(s string) (Effect, error) {
	name, sizeStr, hasSize := strings.Cut(strings.TrimSpace(s), ":")
	canonical, ok := effectNames[name]
	if !ok {
		return Effect{}, fmt.Errorf("%w: %q", ErrUnknownEffect, s)
	}
	ef := Effect{Name: canonical}
	switch canonical {
	case "blur", "sharpen":
		ef.Size = defaultKernelSize
		if hasSize {
			size, err := strconv.Atoi(sizeStr)
			if err != nil {
				return Effect{}, fmt.Errorf("%w: kernel size %q", ErrInvalidKernelShape, sizeStr)
			}
			ef.Size = size
		}
	default:
		if hasSize {
			return Effect{}, fmt.Errorf("%w: %q takes no kernel size", ErrUnknownEffect, s)
		}
	}
	return ef, nil
}

// ParseEffects parses every entry of 'names'; see ParseEffect.
func ParseEffects(names []string) ([]Effect, error) {
	effects := make([]Effect, len(names))
	for i, name := range names {
		ef, err := ParseEffect(name)
		if err != nil {
			return nil, err
		}
		effects[i] = ef
	}
	return effects, nil
}

//=============================================================================
// Effect application methods
//=============================================================================

// Apply applies the effect described by 'ef' to 'img' and returns the result.
func (e *Engine) Apply(img *Image, ef Effect) (*Image, error) {
	switch ef.Name {
	case "invert":
		if err := img.Validate(); err != nil {
			return nil, err
		}
		return Inverted(img), nil
	case "blur":
		return e.Blurred(img, ef.Size)
	case "sharpen":
		return e.Sharpened(img, ef.Size)
	case "edges":
		return e.Edges(img)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownEffect, ef.Name)
}

// ApplyAll applies 'effects' in sequence, each one to the output of the previous.
// 'img' is left untouched; with no effects a copy is returned.
func (e *Engine) ApplyAll(img *Image, effects []Effect) (*Image, error) {
	if err := img.Validate(); err != nil {
		return nil, err
	}
	out := img.Clone()
	for _, ef := range effects {
		next, err := e.Apply(out, ef)
		if err != nil {
			return nil, fmt.Errorf("apply %s: %w", ef, err)
		}
		out = next
	}
	return out, nil
}

// Inverted returns the photographic negative of 'img' (255 - p for each pixel).
func Inverted(img *Image) *Image {
	out := img.blankLike()
	for i, p := range img.Pixels {
		out.Pixels[i] = 255 - p
	}
	return out
}

// Blurred returns 'img' box-blurred with a 'size' x 'size' kernel; see Engine.Blurred.
func Blurred(img *Image, size int) (*Image, error) {
	return sequential.Blurred(img, size)
}

// Sharpened returns 'img' with an unsharp mask of side 'size' applied; see Engine.Sharpened.
func Sharpened(img *Image, size int) (*Image, error) {
	return sequential.Sharpened(img, size)
}

// Edges returns the Sobel gradient magnitude of 'img'; see Engine.Edges.
func Edges(img *Image) (*Image, error) {
	return sequential.Edges(img)
}

// Blurred averages every pixel with its 'size' x 'size' neighborhood.
// 'size' must be a positive odd number; a blur of size 1 returns a copy of 'img'.
func (e *Engine) Blurred(img *Image, size int) (*Image, error) {
	kernel, err := BoxKernel(size)
	if err != nil {
		return nil, err
	}
	grid, err := e.Correlate(img, kernel)
	if err != nil {
		return nil, err
	}
	return RoundAndClip(grid), nil
}

// Sharpened computes 2*img - blurred for every pixel, where blurred is the
// already rounded output of Blurred, then clamps into [0, 255].
func (e *Engine) Sharpened(img *Image, size int) (*Image, error) {
	blurred, err := e.Blurred(img, size)
	if err != nil {
		return nil, err
	}
	out := img.blankLike()
	for i, p := range img.Pixels {
		out.Pixels[i] = clamp(2*float64(p) - float64(blurred.Pixels[i]))
	}
	return out, nil
}

// Edges combines the horizontal and vertical Sobel responses into
// round_and_clip(sqrt(Ox² + Oy²)). Ox and Oy are not rounded on their own.
func (e *Engine) Edges(img *Image) (*Image, error) {
	ox, err := e.Correlate(img, SobelX())
	if err != nil {
		return nil, err
	}
	oy, err := e.Correlate(img, SobelY())
	if err != nil {
		return nil, err
	}
	var magnitude mat.Dense
	magnitude.Apply(func(r, c int, x float64) float64 {
		y := oy.At(r, c)
		return math.Sqrt(x*x + y*y)
	}, ox)
	return RoundAndClip(&magnitude), nil
}

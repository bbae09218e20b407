package pool

import "github.com/pkg/errors"

// Sentinel errors for the pooling operator. Call sites attach context with
// errors.Wrapf; callers match with errors.Is.
var (
	// ErrInvalidDimension reports a non-positive kernel, stride or input
	// extent, or a negative explicit padding amount.
	ErrInvalidDimension = errors.New("invalid dimension")

	// ErrPaddingTooLarge reports a reflect padding amount that reaches or
	// exceeds the matching input extent. Mirroring excludes the boundary
	// element, so at most extent-1 values exist to reflect.
	ErrPaddingTooLarge = errors.New("reflect padding too large")

	// ErrShapeMismatch reports an input whose rank is not 4, or companion
	// tensors whose shapes disagree.
	ErrShapeMismatch = errors.New("shape mismatch")

	// ErrUnsupportedDType reports an element type the engines cannot pool.
	ErrUnsupportedDType = errors.New("unsupported dtype")
)

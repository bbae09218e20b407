package pool

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kernel is the pooling window size in pixels.
type Kernel struct {
	H, W int
}

// Square returns a square kernel of side k.
func Square(k int) Kernel {
	return Kernel{H: k, W: k}
}

// Stride is the window step in pixels along each spatial axis.
type Stride struct {
	H, W int
}

// Step returns an equal stride of s along both axes.
func Step(s int) Stride {
	return Stride{H: s, W: s}
}

// Padding is the per-side pad amount in pixels. All four values are >= 0.
type Padding struct {
	Left, Right, Top, Bottom int
}

// nonNegative reports whether all four amounts are valid.
func (p Padding) nonNegative() bool {
	return p.Left >= 0 && p.Right >= 0 && p.Top >= 0 && p.Bottom >= 0
}

// Mode selects how padding amounts are derived.
//
// Explicit uses caller-supplied per-axis amounts, mirrored to both sides.
// Same adapts the amounts so the output size equals ceil(input/stride),
// regardless of kernel size (the TF SAME convention).
type Mode struct {
	same       bool
	padH, padW int
}

// Same returns the adaptive SAME padding mode.
func Same() Mode {
	return Mode{same: true}
}

// Explicit returns the fixed padding mode: padH on top and bottom,
// padW on left and right.
func Explicit(padH, padW int) Mode {
	return Mode{padH: padH, padW: padW}
}

// String names the mode for logs and CLI output.
func (m Mode) String() string {
	if m.same {
		return "same"
	}
	return fmt.Sprintf("explicit(%d,%d)", m.padH, m.padW)
}

// ComputePadding derives the four per-side padding amounts for an input of
// inH x inW pixels. It is a pure function of its arguments.
func ComputePadding(inH, inW int, k Kernel, s Stride, m Mode) (Padding, error) {
	if k.H <= 0 || k.W <= 0 {
		return Padding{}, errors.Wrapf(ErrInvalidDimension, "kernel %dx%d must be positive", k.H, k.W)
	}
	if s.H <= 0 || s.W <= 0 {
		return Padding{}, errors.Wrapf(ErrInvalidDimension, "stride %dx%d must be positive", s.H, s.W)
	}
	if inH <= 0 || inW <= 0 {
		return Padding{}, errors.Wrapf(ErrInvalidDimension, "input %dx%d must be positive", inH, inW)
	}

	if m.same {
		top, bottom := sameAxis(inH, k.H, s.H)
		left, right := sameAxis(inW, k.W, s.W)
		return Padding{Left: left, Right: right, Top: top, Bottom: bottom}, nil
	}

	if m.padH < 0 || m.padW < 0 {
		return Padding{}, errors.Wrapf(ErrInvalidDimension, "explicit padding (%d,%d) must be non-negative", m.padH, m.padW)
	}
	return Padding{Left: m.padW, Right: m.padW, Top: m.padH, Bottom: m.padH}, nil
}

// sameAxis computes the (before, after) pad for one axis so that
// outSize = ceil(in/stride). When the total is odd the extra pixel goes
// after, never before.
func sameAxis(in, kernel, stride int) (before, after int) {
	need := kernel - stride
	if rem := in % stride; rem != 0 {
		need = kernel - rem
	}
	if need < 0 {
		need = 0
	}
	before = need / 2
	return before, need - before
}

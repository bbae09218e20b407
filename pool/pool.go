// Copyright 2026 GridPool Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package pool is the public API for 2-D max pooling over [N, C, H, W]
// tensors with SAME-style or explicit reflect padding.
//
// An Engine does the work; two interchangeable implementations live in
// engine/direct and engine/vector and always produce bit-identical results.
// A Pooler binds an Engine to the padding calculator:
//
//	pooler := pool.New(direct.New())
//	out, idx, err := pooler.MaxPool(in, pool.Square(2), pool.Step(2), pool.Same(), true)
//
// idx is the per-cell in-window argmax offset; feed it to MaxPoolBackward
// to route gradients during backpropagation.
package pool

import (
	"github.com/gridpool-ml/gridpool/internal/pool"
	"github.com/gridpool-ml/gridpool/internal/tensor"
)

// Kernel is the pooling window size in pixels.
type Kernel = pool.Kernel

// Stride is the window step in pixels along each spatial axis.
type Stride = pool.Stride

// Padding is the per-side pad amount in pixels.
type Padding = pool.Padding

// Mode selects how padding amounts are derived: Same or Explicit.
type Mode = pool.Mode

// Engine computes max pooling; see engine/direct and engine/vector.
type Engine = pool.Engine

// Geometry is the resolved spatial arithmetic of one pooling call.
type Geometry = pool.Geometry

// Pooler binds an Engine to the padding calculator.
type Pooler = pool.Pooler

// Option configures a Pooler.
type Option = pool.Option

// Observer is a per-call instrumentation hook.
type Observer = pool.Observer

// Timing collects call durations through the Observer hook.
type Timing = pool.Timing

// Summary describes a collected latency distribution.
type Summary = pool.Summary

// Error values reported by the operator. Match with errors.Is.
var (
	ErrInvalidDimension = pool.ErrInvalidDimension
	ErrPaddingTooLarge  = pool.ErrPaddingTooLarge
	ErrShapeMismatch    = pool.ErrShapeMismatch
	ErrUnsupportedDType = pool.ErrUnsupportedDType
)

// Square returns a square kernel of side k.
func Square(k int) Kernel {
	return pool.Square(k)
}

// Step returns an equal stride of s along both axes.
func Step(s int) Stride {
	return pool.Step(s)
}

// Same returns the adaptive SAME padding mode: output size is always
// ceil(input/stride).
func Same() Mode {
	return pool.Same()
}

// Explicit returns the fixed padding mode: padH on top and bottom, padW on
// left and right.
func Explicit(padH, padW int) Mode {
	return pool.Explicit(padH, padW)
}

// ComputePadding derives the four per-side padding amounts for an input of
// inH x inW pixels.
func ComputePadding(inH, inW int, k Kernel, s Stride, m Mode) (Padding, error) {
	return pool.ComputePadding(inH, inW, k, s, m)
}

// ReflectPad pads the two spatial axes of a [N, C, H, W] tensor by
// mirroring interior values, excluding the boundary element.
func ReflectPad(in *tensor.RawTensor, p Padding) (*tensor.RawTensor, error) {
	return pool.ReflectPad(in, p)
}

// New creates a Pooler that delegates to the given engine.
func New(engine Engine, opts ...Option) *Pooler {
	return pool.New(engine, opts...)
}

// WithObserver installs an instrumentation callback on a Pooler.
func WithObserver(obs Observer) Option {
	return pool.WithObserver(obs)
}

// NewTiming returns an empty latency collector whose Observe method value
// is an Observer.
func NewTiming() *Timing {
	return pool.NewTiming()
}

// MaxPoolBackward scatters an output gradient back through a pooling call
// using the index map the forward pass recorded.
func MaxPoolBackward(grad, indices *tensor.RawTensor, inShape tensor.Shape, k Kernel, s Stride, p Padding) (*tensor.RawTensor, error) {
	return pool.MaxPoolBackward(grad, indices, inShape, k, s, p)
}

// Copyright 2026 GridPool Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the public API for the dense NCHW arrays the
// pooling engines consume and produce.
//
// A RawTensor is row-major, contiguous and owned by whoever allocated it;
// pooling borrows inputs read-only and returns freshly allocated outputs.
//
// Example:
//
//	in, err := tensor.FromFloat32(tensor.Shape{1, 3, 28, 28}, pixels)
//	if err != nil { ... }
//	data := in.AsFloat32()
package tensor

import (
	"math/rand"

	"github.com/gridpool-ml/gridpool/internal/tensor"
)

// DataType represents the element type of a RawTensor.
type DataType = tensor.DataType

// Supported element types.
const (
	Float32 DataType = tensor.Float32
	Float64 DataType = tensor.Float64
	Int64   DataType = tensor.Int64
)

// Shape represents the dimensions of a tensor.
// Pooling inputs use four axes: [batch, channel, height, width].
type Shape = tensor.Shape

// RawTensor is a dense, row-major tensor backed by a flat buffer.
type RawTensor = tensor.RawTensor

// NewRaw creates a zero-initialized RawTensor with the given shape and type.
func NewRaw(shape Shape, dtype DataType) (*RawTensor, error) {
	return tensor.NewRaw(shape, dtype)
}

// FromFloat32 creates a Float32 tensor from a flat row-major slice.
func FromFloat32(shape Shape, data []float32) (*RawTensor, error) {
	return tensor.FromFloat32(shape, data)
}

// FromFloat64 creates a Float64 tensor from a flat row-major slice.
func FromFloat64(shape Shape, data []float64) (*RawTensor, error) {
	return tensor.FromFloat64(shape, data)
}

// Randn creates a float tensor filled with normally distributed values
// drawn from rng.
func Randn(shape Shape, dtype DataType, rng *rand.Rand) (*RawTensor, error) {
	return tensor.Randn(shape, dtype, rng)
}

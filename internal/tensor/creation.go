package tensor

import (
	"fmt"
	"math/rand"
)

// FromFloat32 creates a Float32 tensor from a flat row-major slice.
// The data is copied; the caller keeps ownership of the input slice.
func FromFloat32(shape Shape, data []float32) (*RawTensor, error) {
	raw, err := NewRaw(shape, Float32)
	if err != nil {
		return nil, err
	}
	if len(data) != raw.NumElements() {
		return nil, fmt.Errorf("data length %d does not match shape %v (%d elements)",
			len(data), shape, raw.NumElements())
	}
	copy(raw.AsFloat32(), data)
	return raw, nil
}

// FromFloat64 creates a Float64 tensor from a flat row-major slice.
func FromFloat64(shape Shape, data []float64) (*RawTensor, error) {
	raw, err := NewRaw(shape, Float64)
	if err != nil {
		return nil, err
	}
	if len(data) != raw.NumElements() {
		return nil, fmt.Errorf("data length %d does not match shape %v (%d elements)",
			len(data), shape, raw.NumElements())
	}
	copy(raw.AsFloat64(), data)
	return raw, nil
}

// Randn creates a float tensor filled with normally distributed values
// drawn from rng. Useful for randomized equivalence checks and benchmarks.
func Randn(shape Shape, dtype DataType, rng *rand.Rand) (*RawTensor, error) {
	raw, err := NewRaw(shape, dtype)
	if err != nil {
		return nil, err
	}
	switch dtype {
	case Float32:
		data := raw.AsFloat32()
		for i := range data {
			data[i] = float32(rng.NormFloat64())
		}
	case Float64:
		data := raw.AsFloat64()
		for i := range data {
			data[i] = rng.NormFloat64()
		}
	default:
		return nil, fmt.Errorf("randn: unsupported dtype %s", dtype)
	}
	return raw, nil
}

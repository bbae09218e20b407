package tensor

import "fmt"

// Shape represents the dimensions of a tensor.
// Pooling inputs and outputs use four axes: [batch, channel, height, width].
type Shape []int

// NumElements returns the total number of elements in the tensor.
func (s Shape) NumElements() int {
	n := 1
	for _, dim := range s {
		n *= dim
	}
	return n
}

// Rank returns the number of axes.
func (s Shape) Rank() int {
	return len(s)
}

// Validate checks that every dimension is positive.
func (s Shape) Validate() error {
	if len(s) == 0 {
		return fmt.Errorf("empty shape")
	}
	for i, dim := range s {
		if dim <= 0 {
			return fmt.Errorf("invalid dimension at axis %d: %d (must be > 0)", i, dim)
		}
	}
	return nil
}

// Equal checks if two shapes are equal.
func (s Shape) Equal(other Shape) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// Clone returns a copy of the shape.
func (s Shape) Clone() Shape {
	clone := make(Shape, len(s))
	copy(clone, s)
	return clone
}

// Strides calculates row-major strides for the shape:
// stride[i] = product of all dimensions after i.
func (s Shape) Strides() []int {
	strides := make([]int, len(s))
	if len(s) == 0 {
		return strides
	}
	strides[len(s)-1] = 1
	for i := len(s) - 2; i >= 0; i-- {
		strides[i] = strides[i+1] * s[i+1]
	}
	return strides
}

// String returns a human-readable form like [2 3 4 4].
func (s Shape) String() string {
	return fmt.Sprintf("%v", []int(s))
}

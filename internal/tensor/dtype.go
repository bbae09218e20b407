// Package tensor provides the dense NCHW array type the pooling engines
// operate on.
package tensor

// DataType is runtime type information for a RawTensor's elements.
type DataType int

// Supported element types. Float32 and Float64 carry image data; Int64
// carries argmax index maps.
const (
	Float32 DataType = iota
	Float64
	Int64
)

// Size returns the byte size of one element.
func (dt DataType) Size() int {
	switch dt {
	case Float32:
		return 4
	case Float64, Int64:
		return 8
	default:
		panic("unknown data type")
	}
}

// String returns a human-readable name for the data type.
func (dt DataType) String() string {
	switch dt {
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	case Int64:
		return "int64"
	default:
		return "unknown"
	}
}

// IsFloat reports whether the data type is a floating-point type.
func (dt DataType) IsFloat() bool {
	return dt == Float32 || dt == Float64
}

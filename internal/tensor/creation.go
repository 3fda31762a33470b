package tensor

import "fmt"

// Native is the set of Go types that map one-to-one onto a DataType.
type Native interface {
	~bool | ~uint8 | ~int8 | ~int16 | ~int32 | ~int64 | ~float32 | ~float64
}

// inferDataType infers the DataType from a native Go type.
func inferDataType[T Native]() DataType {
	var dummy T
	switch any(dummy).(type) {
	case bool:
		return Bool
	case uint8:
		return Uint8
	case int8:
		return Int8
	case int16:
		return Int16
	case int32:
		return Int32
	case int64:
		return Int64
	case float32:
		return Float32
	case float64:
		return Float64
	default:
		panic("unsupported type")
	}
}

// FromSlice creates a CPU tensor from a Go slice.
// The slice is copied into the tensor's memory.
//
// Example:
//
//	a, _ := tensor.FromSlice([]int32{1, 2, 3}, tensor.Shape{3})
func FromSlice[T Native](data []T, shape Shape) (*RawTensor, error) {
	if shape.NumElements() != len(data) {
		return nil, fmt.Errorf("shape %v requires %d elements, but got %d", shape, shape.NumElements(), len(data))
	}
	raw, err := NewRaw(shape, inferDataType[T](), CPU)
	if err != nil {
		return nil, err
	}
	copy(contiguous[T](raw), data)
	return raw, nil
}

// FromScalars creates a CPU tensor of dtype dt from values, converting each
// with the same rules as a cast.
func FromScalars(values []Scalar, shape Shape, dt DataType) (*RawTensor, error) {
	if shape.NumElements() != len(values) {
		return nil, fmt.Errorf("shape %v requires %d elements, but got %d", shape, shape.NumElements(), len(values))
	}
	raw, err := NewRaw(shape, dt, CPU)
	if err != nil {
		return nil, err
	}
	for i, v := range values {
		writeAt(raw, i, v)
	}
	return raw, nil
}

// Full creates a CPU tensor of dtype dt filled with value.
func Full(shape Shape, value Scalar, dt DataType) (*RawTensor, error) {
	raw, err := NewRaw(shape, dt, CPU)
	if err != nil {
		return nil, err
	}
	for i := 0; i < raw.NumElements(); i++ {
		writeAt(raw, i, value)
	}
	return raw, nil
}

// ToSlice copies the tensor's elements into a new slice in row-major order.
// Panics if T is not the storage type of the tensor's dtype.
func ToSlice[T Native](r *RawTensor) []T {
	src := Storage[T](r)
	out := make([]T, r.NumElements())
	forEachOffset(r.shape, r.stride, r.offset, func(pos, off int) {
		out[pos] = src[off]
	})
	return out
}

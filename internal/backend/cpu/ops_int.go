package cpu

import (
	"github.com/born-ml/binops/internal/tensor"
)

// hasZero reports whether any element of an integral or bool tensor is zero.
func hasZero(t *tensor.RawTensor) bool {
	switch t.DType() {
	case tensor.Bool:
		return containsZero(tensor.ToSlice[bool](t), false)
	case tensor.Uint8:
		return containsZero(tensor.ToSlice[uint8](t), 0)
	case tensor.Int8:
		return containsZero(tensor.ToSlice[int8](t), 0)
	case tensor.Int16:
		return containsZero(tensor.ToSlice[int16](t), 0)
	case tensor.Int32:
		return containsZero(tensor.ToSlice[int32](t), 0)
	case tensor.Int64:
		return containsZero(tensor.ToSlice[int64](t), 0)
	default:
		return false
	}
}

func containsZero[T comparable](values []T, zero T) bool {
	for _, v := range values {
		if v == zero {
			return true
		}
	}
	return false
}

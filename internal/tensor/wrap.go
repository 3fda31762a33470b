package tensor

import "fmt"

// WrapScalar converts s into a 0-dim CPU tensor flagged as a wrapped number.
// The dtype follows the scalar's kind: Bool, Int64 or Float64. Wrapped numbers
// take the lowest priority during type promotion.
func WrapScalar(s Scalar) *RawTensor {
	raw, err := NewRaw(Shape{}, s.DType(), CPU)
	if err != nil {
		panic(fmt.Sprintf("wrap scalar: %v", err))
	}
	writeAt(raw, 0, s)
	raw.wrapped = true
	return raw
}

// WrapScalarChecked is WrapScalar preceded by CheckConvert against target's dtype.
func WrapScalarChecked(s Scalar, target *RawTensor) (*RawTensor, error) {
	if err := CheckConvert(s, target.DType()); err != nil {
		return nil, err
	}
	return WrapScalar(s), nil
}

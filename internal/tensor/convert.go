package tensor

import "math"

// CheckConvert verifies that s can be stored in an element of type dt without
// overflow or loss. It returns an error wrapping ErrConversion otherwise.
//
// Rules per target:
//   - Bool: the value must be 0 or 1.
//   - Integers: floats must be finite and integral, and the value must lie in
//     the type's range. Unsigned types also accept negative values whose
//     magnitude fits, since they wrap in two's complement.
//   - Floats: NaN and ±Inf convert; finite values beyond the largest finite
//     value of the type overflow.
//
// Boolean scalars convert to every type.
func CheckConvert(s Scalar, dt DataType) error {
	if !dt.Valid() {
		return Errorf("", ErrConversion, "unknown dtype %d", int(dt))
	}
	if s.IsBoolean() {
		return nil
	}

	switch {
	case dt.IsIntegral(true):
		if !fitsIntegral(s, dt) {
			return Errorf("", ErrConversion, "value %s cannot be converted to type %s without overflow", s, dt)
		}
	case dt.IsFloating():
		v := s.Float()
		if !math.IsInf(v, 0) && !math.IsNaN(v) && math.Abs(v) > floatMax(dt) {
			return Errorf("", ErrConversion, "value %s cannot be converted to type %s without overflow", s, dt)
		}
	}
	return nil
}

// fitsIntegral reports whether a non-bool scalar fits the integral dtype dt.
func fitsIntegral(s Scalar, dt DataType) bool {
	lo, hi := integerBounds(dt)
	unsigned := dt.IsUnsigned()

	if s.IsFloatingPoint() {
		f := s.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
			return false
		}
		if unsigned && f < 0 {
			return -f <= float64(hi)
		}
		// float64(hi)+1 is exact for every width below 64 bits and rounds to
		// 2^63 for Int64, which is the correct exclusive bound there too.
		return f >= float64(lo) && f < float64(hi)+1
	}

	i := s.Int()
	if unsigned && i < 0 {
		return i >= -hi
	}
	return i >= lo && i <= hi
}

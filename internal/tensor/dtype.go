// Package tensor provides the core array, scalar and element-type model used by the
// elementwise dispatch layer.
package tensor

import (
	"math"

	"github.com/x448/float16"
)

// DataType represents runtime type information for tensors.
type DataType int

// Supported data types for tensors.
const (
	Bool DataType = iota
	Uint8
	Int8
	Int16
	Int32
	Int64
	Float16
	BFloat16
	Float32
	Float64

	numDataTypes
)

// DefaultFloat is the dtype a wrapped floating-point scalar counts as during
// type promotion, and the compute type of float-only ops on integral inputs.
const DefaultFloat = Float32

// AllDataTypes lists every supported data type in promotion order.
func AllDataTypes() []DataType {
	return []DataType{Bool, Uint8, Int8, Int16, Int32, Int64, Float16, BFloat16, Float32, Float64}
}

// Valid reports whether dt is one of the supported data types.
func (dt DataType) Valid() bool {
	return dt >= Bool && dt < numDataTypes
}

// Size returns the byte size of the data type.
func (dt DataType) Size() int {
	switch dt {
	case Bool, Uint8, Int8:
		return 1
	case Int16, Float16, BFloat16:
		return 2
	case Int32, Float32:
		return 4
	case Int64, Float64:
		return 8
	default:
		panic("unknown data type")
	}
}

// IsFloating reports whether dt is a floating-point type.
func (dt DataType) IsFloating() bool {
	switch dt {
	case Float16, BFloat16, Float32, Float64:
		return true
	default:
		return false
	}
}

// IsIntegral reports whether dt is an integer type. Bool counts only when includeBool is set.
func (dt DataType) IsIntegral(includeBool bool) bool {
	switch dt {
	case Uint8, Int8, Int16, Int32, Int64:
		return true
	case Bool:
		return includeBool
	default:
		return false
	}
}

// IsUnsigned reports whether dt is an unsigned integer type.
func (dt DataType) IsUnsigned() bool {
	return dt == Uint8
}

// String returns a human-readable name for the data type.
func (dt DataType) String() string {
	switch dt {
	case Bool:
		return "bool"
	case Uint8:
		return "uint8"
	case Int8:
		return "int8"
	case Int16:
		return "int16"
	case Int32:
		return "int32"
	case Int64:
		return "int64"
	case Float16:
		return "float16"
	case BFloat16:
		return "bfloat16"
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	default:
		return "unknown"
	}
}

// ParseDataType returns the DataType named s.
func ParseDataType(s string) (DataType, bool) {
	for _, dt := range AllDataTypes() {
		if dt.String() == s {
			return dt, true
		}
	}
	return 0, false
}

// integerBounds returns the representable range of an integral dtype.
func integerBounds(dt DataType) (lo, hi int64) {
	switch dt {
	case Bool:
		return 0, 1
	case Uint8:
		return 0, math.MaxUint8
	case Int8:
		return math.MinInt8, math.MaxInt8
	case Int16:
		return math.MinInt16, math.MaxInt16
	case Int32:
		return math.MinInt32, math.MaxInt32
	case Int64:
		return math.MinInt64, math.MaxInt64
	default:
		panic("integerBounds: not an integral dtype")
	}
}

// floatMax returns the largest finite value of a floating dtype.
func floatMax(dt DataType) float64 {
	switch dt {
	case Float16:
		return 65504
	case BFloat16:
		return float64(math.Float32frombits(0x7F7F0000))
	case Float32:
		return math.MaxFloat32
	case Float64:
		return math.MaxFloat64
	default:
		panic("floatMax: not a floating dtype")
	}
}

// Half-precision conversions. Float16 is IEEE binary16; BFloat16 keeps the
// upper 16 bits of a float32 and rounds to nearest even.

func float16ToFloat32(bits uint16) float32 {
	return float16.Frombits(bits).Float32()
}

func float32ToFloat16(f float32) uint16 {
	return float16.Fromfloat32(f).Bits()
}

func bfloat16ToFloat32(bits uint16) float32 {
	return math.Float32frombits(uint32(bits) << 16)
}

func float32ToBFloat16(f float32) uint16 {
	u := math.Float32bits(f)
	if f != f { // NaN: keep it quiet, never round into Inf
		return uint16(u>>16) | 0x0040
	}
	rounding := uint32(0x7FFF) + (u>>16)&1
	return uint16((u + rounding) >> 16)
}

// HalfToFloat32 decodes a stored half-precision element of dtype dt.
func HalfToFloat32(dt DataType, bits uint16) float32 {
	if dt == BFloat16 {
		return bfloat16ToFloat32(bits)
	}
	return float16ToFloat32(bits)
}

// Float32ToHalf encodes f as a half-precision element of dtype dt.
func Float32ToHalf(dt DataType, f float32) uint16 {
	if dt == BFloat16 {
		return float32ToBFloat16(f)
	}
	return float32ToFloat16(f)
}

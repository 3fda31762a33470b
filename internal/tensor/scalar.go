package tensor

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ScalarKind is the semantic kind of a Scalar.
type ScalarKind int

// Scalar kinds.
const (
	KindInt ScalarKind = iota
	KindBool
	KindFloat
)

// String returns the kind name.
func (k ScalarKind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	default:
		return "unknown"
	}
}

// Scalar is an immutable single numeric value tagged with its kind.
// The zero value is the integer 0.
type Scalar struct {
	kind ScalarKind
	i    int64
	f    float64
	b    bool
}

// BoolScalar returns a boolean Scalar.
func BoolScalar(v bool) Scalar {
	return Scalar{kind: KindBool, b: v}
}

// IntScalar returns an integer Scalar.
func IntScalar(v int64) Scalar {
	return Scalar{kind: KindInt, i: v}
}

// FloatScalar returns a floating-point Scalar.
func FloatScalar(v float64) Scalar {
	return Scalar{kind: KindFloat, f: v}
}

// ParseScalar parses "true"/"false", an integer literal or a float literal.
// Literals containing '.', 'e', "inf" or "nan" are floats.
func ParseScalar(s string) (Scalar, error) {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "true":
		return BoolScalar(true), nil
	case "false":
		return BoolScalar(false), nil
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return IntScalar(i), nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Scalar{}, fmt.Errorf("parse scalar %q: %w", s, err)
	}
	return FloatScalar(f), nil
}

// Kind returns the scalar's semantic kind.
func (s Scalar) Kind() ScalarKind {
	return s.kind
}

// IsBoolean reports whether s holds a bool.
func (s Scalar) IsBoolean() bool {
	return s.kind == KindBool
}

// IsIntegral reports whether s holds an integer, or a bool when includeBool is set.
func (s Scalar) IsIntegral(includeBool bool) bool {
	return s.kind == KindInt || (includeBool && s.kind == KindBool)
}

// IsFloatingPoint reports whether s holds a float.
func (s Scalar) IsFloatingPoint() bool {
	return s.kind == KindFloat
}

// DType returns the element type a tensor wrapping s gets.
func (s Scalar) DType() DataType {
	switch s.kind {
	case KindBool:
		return Bool
	case KindFloat:
		return Float64
	default:
		return Int64
	}
}

// Float returns the value as float64.
func (s Scalar) Float() float64 {
	switch s.kind {
	case KindBool:
		if s.b {
			return 1
		}
		return 0
	case KindFloat:
		return s.f
	default:
		return float64(s.i)
	}
}

// Int returns the value as int64, truncating floats toward zero.
func (s Scalar) Int() int64 {
	switch s.kind {
	case KindBool:
		if s.b {
			return 1
		}
		return 0
	case KindFloat:
		return int64(s.f)
	default:
		return s.i
	}
}

// Bool returns whether the value is non-zero.
func (s Scalar) Bool() bool {
	switch s.kind {
	case KindBool:
		return s.b
	case KindFloat:
		return s.f != 0
	default:
		return s.i != 0
	}
}

// Equal reports whether s and other have the same kind and value.
// Two NaN floats are equal.
func (s Scalar) Equal(other Scalar) bool {
	if s.kind != other.kind {
		return false
	}
	switch s.kind {
	case KindBool:
		return s.b == other.b
	case KindFloat:
		return s.f == other.f || (math.IsNaN(s.f) && math.IsNaN(other.f))
	default:
		return s.i == other.i
	}
}

// String formats the value.
func (s Scalar) String() string {
	switch s.kind {
	case KindBool:
		return strconv.FormatBool(s.b)
	case KindFloat:
		return strconv.FormatFloat(s.f, 'g', -1, 64)
	default:
		return strconv.FormatInt(s.i, 10)
	}
}

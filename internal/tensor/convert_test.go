package tensor

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckConvert(t *testing.T) {
	tests := []struct {
		name  string
		value Scalar
		dtype DataType
		ok    bool
	}{
		{"int8 max", IntScalar(127), Int8, true},
		{"int8 overflow", IntScalar(128), Int8, false},
		{"int8 min", IntScalar(-128), Int8, true},
		{"int8 underflow", IntScalar(-129), Int8, false},
		{"uint8 max", IntScalar(255), Uint8, true},
		{"uint8 overflow", IntScalar(256), Uint8, false},
		{"uint8 negative magnitude fits", IntScalar(-255), Uint8, true},
		{"uint8 negative magnitude too large", IntScalar(-256), Uint8, false},
		{"integral float", FloatScalar(2), Int8, true},
		{"fractional float", FloatScalar(2.5), Int8, false},
		{"nan into int", FloatScalar(math.NaN()), Int32, false},
		{"inf into int", FloatScalar(math.Inf(-1)), Int64, false},
		{"negative float into uint8", FloatScalar(-255), Uint8, true},
		{"int64 upper bound as float", FloatScalar(math.Exp2(63)), Int64, false},
		{"int64 lower bound as float", FloatScalar(-math.Exp2(63)), Int64, true},
		{"bool accepts one", IntScalar(1), Bool, true},
		{"bool rejects two", IntScalar(2), Bool, false},
		{"bool rejects negative", IntScalar(-1), Bool, false},
		{"bool accepts float zero", FloatScalar(0), Bool, true},
		{"bool scalar anywhere", BoolScalar(true), Int8, true},
		{"float16 max", FloatScalar(65504), Float16, true},
		{"float16 overflow", FloatScalar(70000), Float16, false},
		{"float16 inf", FloatScalar(math.Inf(1)), Float16, true},
		{"float16 nan", FloatScalar(math.NaN()), Float16, true},
		{"bfloat16 range", FloatScalar(1e38), BFloat16, true},
		{"bfloat16 overflow", FloatScalar(1e39), BFloat16, false},
		{"float32 overflow", FloatScalar(-1e39), Float32, false},
		{"float64", FloatScalar(1e308), Float64, true},
		{"int into float16", IntScalar(100000), Float16, false},
		{"invalid dtype", IntScalar(0), DataType(42), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckConvert(tt.value, tt.dtype)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrConversion)
			}
		})
	}
}

func TestWrapScalarRoundTrips(t *testing.T) {
	for _, s := range []Scalar{
		BoolScalar(true),
		IntScalar(math.MinInt64),
		IntScalar(300),
		FloatScalar(-0.1),
		FloatScalar(math.NaN()),
		FloatScalar(math.Inf(1)),
	} {
		t.Run(s.String(), func(t *testing.T) {
			w := WrapScalar(s)
			assert.True(t, w.IsWrappedNumber())
			assert.Equal(t, 0, w.Dim())
			assert.Equal(t, CPU, w.Device())
			assert.Equal(t, s.DType(), w.DType())

			item, err := w.Item()
			require.NoError(t, err)
			assert.True(t, item.Equal(s))
		})
	}
}

func TestWrapScalarChecked(t *testing.T) {
	target := mustFromSlice(t, []int8{1})

	_, err := WrapScalarChecked(IntScalar(300), target)
	assert.ErrorIs(t, err, ErrConversion)

	w, err := WrapScalarChecked(IntScalar(-7), target)
	require.NoError(t, err)
	assert.Equal(t, Int64, w.DType(), "the wrapped dtype follows the scalar, not the target")
}

func TestViewsAreNotWrapped(t *testing.T) {
	w := WrapScalar(IntScalar(1))
	clone := w.Clone()
	assert.True(t, clone.IsWrappedNumber())

	cast, err := Cast(w, Int8)
	require.NoError(t, err)
	assert.False(t, cast.IsWrappedNumber())
}

func TestScalarAccessors(t *testing.T) {
	tests := []struct {
		s     Scalar
		kind  ScalarKind
		dtype DataType
		f     float64
		i     int64
		b     bool
		str   string
	}{
		{BoolScalar(true), KindBool, Bool, 1, 1, true, "true"},
		{IntScalar(-3), KindInt, Int64, -3, -3, true, "-3"},
		{IntScalar(0), KindInt, Int64, 0, 0, false, "0"},
		{FloatScalar(-2.75), KindFloat, Float64, -2.75, -2, true, "-2.75"},
	}
	for _, tt := range tests {
		t.Run(tt.str, func(t *testing.T) {
			assert.Equal(t, tt.kind, tt.s.Kind())
			assert.Equal(t, tt.dtype, tt.s.DType())
			assert.Equal(t, tt.f, tt.s.Float())
			assert.Equal(t, tt.i, tt.s.Int())
			assert.Equal(t, tt.b, tt.s.Bool())
			assert.Equal(t, tt.str, tt.s.String())
		})
	}

	assert.True(t, BoolScalar(false).IsIntegral(true))
	assert.False(t, BoolScalar(false).IsIntegral(false))
	assert.True(t, FloatScalar(1).IsFloatingPoint())
	assert.False(t, IntScalar(1).Equal(FloatScalar(1)), "kinds must match")
	assert.True(t, Scalar{}.Equal(IntScalar(0)))
	assert.Equal(t, "float", KindFloat.String())
}

func TestParseScalar(t *testing.T) {
	tests := []struct {
		in   string
		want Scalar
	}{
		{"true", BoolScalar(true)},
		{" False ", BoolScalar(false)},
		{"42", IntScalar(42)},
		{"-7", IntScalar(-7)},
		{"1.5", FloatScalar(1.5)},
		{"1e3", FloatScalar(1000)},
		{"-inf", FloatScalar(math.Inf(-1))},
		{"nan", FloatScalar(math.NaN())},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseScalar(tt.in)
			require.NoError(t, err)
			assert.True(t, got.Equal(tt.want), "got %s", got)
		})
	}

	_, err := ParseScalar("seven")
	assert.Error(t, err)
}

func TestOpError(t *testing.T) {
	err := Errorf("", ErrTypeMismatch, "expected %s", Bool)
	assert.Equal(t, "type mismatch: expected bool", err.Error())
	assert.ErrorIs(t, err, ErrTypeMismatch)

	named := WithOp("lt_out", err)
	assert.Equal(t, "lt_out: type mismatch: expected bool", named.Error())
	assert.Equal(t, "type mismatch: expected bool", err.Error(), "WithOp does not mutate its argument")

	var opErr *OpError
	require.True(t, errors.As(named, &opErr))
	assert.Equal(t, "lt_out", opErr.Op)

	assert.Same(t, named, WithOp("add", named), "named errors keep their operation")
	plain := errors.New("boom")
	assert.Same(t, plain, WithOp("add", plain))
	assert.NoError(t, WithOp("add", nil))

	assert.Equal(t, "sub: shape mismatch", (&OpError{Op: "sub", Err: ErrShapeMismatch}).Error())
}

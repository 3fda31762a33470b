package tensor

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCast(t *testing.T) {
	floats := mustFromSlice(t, []float64{-2.7, 0, 1.9, 300})

	ints, err := Cast(floats, Int32)
	require.NoError(t, err)
	assert.Equal(t, []int32{-2, 0, 1, 300}, ints.AsInt32(), "floats truncate toward zero")

	small, err := Cast(ints, Int8)
	require.NoError(t, err)
	assert.Equal(t, []int8{-2, 0, 1, 44}, small.AsInt8(), "integers wrap")

	flags, err := Cast(floats, Bool)
	require.NoError(t, err)
	assert.Equal(t, []bool{true, false, true, true}, flags.AsBool())

	back, err := Cast(flags, Float32)
	require.NoError(t, err)
	assert.Equal(t, []float32{1, 0, 1, 1}, back.AsFloat32())

	half, err := Cast(floats, BFloat16)
	require.NoError(t, err)
	assert.Equal(t, []float64{-2.703125, 0, 1.8984375, 300}, ToSlice[float64](mustCast(t, half, Float64)))

	_, err = Cast(floats, DataType(42))
	assert.Error(t, err)
}

func mustCast(t *testing.T, r *RawTensor, dt DataType) *RawTensor {
	t.Helper()
	out, err := Cast(r, dt)
	require.NoError(t, err)
	return out
}

func TestCastKeepsValuesOfStridedViews(t *testing.T) {
	grid := mustFromSlice(t, []int16{1, 2, 3, 4, 5, 6}, 2, 3)
	col, err := grid.Narrow(1, 2, 1)
	require.NoError(t, err)

	got, err := Cast(col, Float64)
	require.NoError(t, err)
	assert.Equal(t, Shape{2, 1}, got.Shape())
	assert.Equal(t, []float64{3, 6}, got.AsFloat64())
}

func TestCopyInto(t *testing.T) {
	dst := mustFromSlice(t, []float32{0, 0, 0, 0, 0, 0}, 2, 3)
	view, err := dst.Narrow(1, 1, 2)
	require.NoError(t, err)

	require.NoError(t, CopyInto(view, mustFromSlice(t, []int64{1, 2, 3, 4}, 2, 2)))
	assert.Equal(t, []float32{0, 1, 2, 0, 3, 4}, dst.AsFloat32())

	err = CopyInto(view, mustFromSlice(t, []int64{1, 2, 3, 4}))
	assert.ErrorIs(t, err, ErrShapeMismatch)

	nan, err := Full(Shape{2}, FloatScalar(math.NaN()), Float16)
	require.NoError(t, err)
	out, err := NewRaw(Shape{2}, Float64, CPU)
	require.NoError(t, err)
	require.NoError(t, CopyInto(out, nan))
	assert.True(t, math.IsNaN(out.AsFloat64()[1]))
}

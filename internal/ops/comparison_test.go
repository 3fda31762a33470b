package ops

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/binops/internal/dispatch"
	"github.com/born-ml/binops/internal/tensor"
)

func TestLtScalarOut(t *testing.T) {
	o := newTestDispatcher(t)
	a := fromSlice(t, []int32{1, 2, 3})
	out, err := tensor.NewRaw(tensor.Shape{3}, tensor.Bool, tensor.CPU)
	require.NoError(t, err)

	got, err := o.Lt().ScalarOut(out, a, tensor.IntScalar(2))
	require.NoError(t, err)
	assert.Same(t, out, got)
	assert.Equal(t, []bool{true, false, false}, out.AsBool())
}

func TestComparisonOutRequiresBool(t *testing.T) {
	o := newTestDispatcher(t)
	a := fromSlice(t, []int32{1, 2, 3})
	out := fromSlice(t, []int32{0, 0, 0})

	_, err := o.Lt().Out(out, a, a)
	assert.ErrorIs(t, err, tensor.ErrTypeMismatch)

	_, err = o.Ge().ScalarOut(out, a, tensor.IntScalar(1))
	assert.ErrorIs(t, err, tensor.ErrTypeMismatch)
}

func TestComparisonZeroDimConversion(t *testing.T) {
	o := newTestDispatcher(t)
	b := fromSlice(t, []int8{-1, 0, 1})

	tests := []struct {
		name    string
		zero    *tensor.RawTensor
		wantErr bool
	}{
		{"int64 in range", scalarTensor(t, int64(100)), false},
		{"int64 too large", scalarTensor(t, int64(1000)), true},
		{"int64 too small", scalarTensor(t, int64(-129)), true},
		{"integral float", scalarTensor(t, float64(-128)), false},
		{"fractional float", scalarTensor(t, 0.5), true},
		{"nan", scalarTensor(t, math.NaN()), true},
		{"bool", scalarTensor(t, true), false},
		{"same dtype", scalarTensor(t, int8(5)), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, form := range []func() (*tensor.RawTensor, error){
				func() (*tensor.RawTensor, error) { return o.Lt().New(tt.zero, b) },
				func() (*tensor.RawTensor, error) { return o.Lt().New(b, tt.zero) },
			} {
				_, err := form()
				if tt.wantErr {
					assert.ErrorIs(t, err, tensor.ErrConversion)
				} else {
					assert.NoError(t, err)
				}
			}
		})
	}
}

func TestComparisonBothZeroDimSkipsConversion(t *testing.T) {
	o := newTestDispatcher(t)
	got, err := o.Lt().New(scalarTensor(t, int64(1000)), scalarTensor(t, int8(1)))
	require.NoError(t, err)
	assert.Equal(t, []bool{false}, got.AsBool())
}

func TestComparisonScalarConversion(t *testing.T) {
	o := newTestDispatcher(t)
	ints := fromSlice(t, []int8{1, 2})
	floats := fromSlice(t, []float32{1, 2})

	_, err := o.Lt().Scalar(ints, tensor.IntScalar(1000))
	assert.ErrorIs(t, err, tensor.ErrConversion)

	_, err = o.Eq().Scalar(ints, tensor.FloatScalar(1.5))
	assert.ErrorIs(t, err, tensor.ErrConversion)

	_, err = o.Gt().ScalarInPlace(ints, tensor.IntScalar(-200))
	assert.ErrorIs(t, err, tensor.ErrConversion)
	assert.Equal(t, []int8{1, 2}, ints.AsInt8())

	got, err := o.Lt().Scalar(floats, tensor.FloatScalar(1.5))
	require.NoError(t, err)
	assert.Equal(t, []bool{true, false}, got.AsBool())

	_, err = o.Lt().Scalar(floats, tensor.FloatScalar(1e39))
	assert.ErrorIs(t, err, tensor.ErrConversion, "1e39 overflows float32")
}

func TestComparisonInPlace(t *testing.T) {
	o := newTestDispatcher(t)

	a := fromSlice(t, []float64{1, 5, 3})
	got, err := o.Gt().InPlace(a, fromSlice(t, []float64{2, 2, 3}))
	require.NoError(t, err)
	assert.Same(t, a, got)
	assert.Equal(t, tensor.Float64, a.DType())
	assert.Equal(t, []float64{0, 1, 0}, a.AsFloat64())

	_, err = o.Gt().InPlace(a, fromSlice(t, []float32{2, 2, 3}))
	assert.ErrorIs(t, err, tensor.ErrTypeMismatch)

	// The scalar in-place form does not require matching dtypes.
	ints := fromSlice(t, []int32{1, 2, 3})
	_, err = o.Ne().ScalarInPlace(ints, tensor.IntScalar(2))
	require.NoError(t, err)
	assert.Equal(t, []int32{1, 0, 1}, ints.AsInt32())
}

func TestComparisonAllOperators(t *testing.T) {
	o := newTestDispatcher(t)
	a := fromSlice(t, []int64{1, 2, 3})
	b := fromSlice(t, []int64{2, 2, 2})

	tests := []struct {
		cmp  *Comparison
		want []bool
	}{
		{o.Lt(), []bool{true, false, false}},
		{o.Le(), []bool{true, true, false}},
		{o.Gt(), []bool{false, false, true}},
		{o.Ge(), []bool{false, true, true}},
		{o.Eq(), []bool{false, true, false}},
		{o.Ne(), []bool{true, false, true}},
	}
	for _, tt := range tests {
		t.Run(tt.cmp.Op().String(), func(t *testing.T) {
			got, err := tt.cmp.New(a, b)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.AsBool())

			got, err = tt.cmp.Scalar(a, tensor.IntScalar(2))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.AsBool())

			c, err := o.Compare(tt.cmp.Op())
			require.NoError(t, err)
			assert.Same(t, tt.cmp, c)
		})
	}

	_, err := o.Compare(dispatch.OpAdd)
	assert.ErrorIs(t, err, tensor.ErrUnsupportedOperation)
}

func TestComparisonMixedDtypesBroadcast(t *testing.T) {
	o := newTestDispatcher(t)
	a := fromSlice(t, []uint8{0, 128, 255}, 3, 1)
	b := fromSlice(t, []float32{-1, 127.5}, 2)

	got, err := o.Le().New(a, b)
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{3, 2}, got.Shape())
	assert.Equal(t, []bool{false, true, false, false, false, false}, got.AsBool())
}

func TestComparisonOverlap(t *testing.T) {
	o := newTestDispatcher(t)
	base := fromSlice(t, []bool{true, false, true})
	head, err := base.Narrow(0, 0, 2)
	require.NoError(t, err)
	tail, err := base.Narrow(0, 1, 2)
	require.NoError(t, err)

	_, err = o.Eq().Out(tail, head, head)
	assert.ErrorIs(t, err, tensor.ErrOverlap)
}

// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/binops/tensor"
)

// TestRawTensorAPI verifies the RawTensor alias exposes the expected API.
func TestRawTensorAPI(t *testing.T) {
	raw, err := tensor.NewRaw(tensor.Shape{2, 3}, tensor.Float32, tensor.CPU)
	require.NoError(t, err)

	assert.Equal(t, tensor.Shape{2, 3}, raw.Shape())
	assert.Equal(t, tensor.Float32, raw.DType())
	assert.Equal(t, tensor.CPU, raw.Device())
	assert.Equal(t, 6, raw.NumElements())
	assert.Equal(t, 24, raw.ByteSize())

	clone := raw.Clone()
	assert.False(t, raw.IsUnique())
	clone.Release()
	assert.True(t, raw.IsUnique())
}

func TestScalarHelpers(t *testing.T) {
	s, err := tensor.ParseScalar("2.5")
	require.NoError(t, err)
	assert.Equal(t, tensor.KindFloat, s.Kind())

	dt, ok := tensor.ParseDataType("bfloat16")
	require.True(t, ok)
	assert.Equal(t, tensor.BFloat16, dt)

	assert.ErrorIs(t, tensor.CheckConvert(tensor.IntScalar(256), tensor.Uint8), tensor.ErrConversion)

	w := tensor.WrapScalar(tensor.FloatScalar(0.5))
	a, err := tensor.FromSlice([]int8{1, 2}, tensor.Shape{2})
	require.NoError(t, err)
	got, err := tensor.ResultType(a, w)
	require.NoError(t, err)
	assert.Equal(t, tensor.DefaultFloat, got)
}

func TestConversions(t *testing.T) {
	values := []tensor.Scalar{tensor.IntScalar(1), tensor.FloatScalar(2.5)}
	f, err := tensor.FromScalars(values, tensor.Shape{2}, tensor.Float64)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2.5}, tensor.ToSlice[float64](f))

	i, err := tensor.Cast(f, tensor.Int16)
	require.NoError(t, err)
	assert.Equal(t, []int16{1, 2}, i.AsInt16())

	shape, _, err := tensor.BroadcastShapes(tensor.Shape{2, 1}, tensor.Shape{3})
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{2, 3}, shape)
}

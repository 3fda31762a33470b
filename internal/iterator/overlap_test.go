package iterator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/binops/internal/tensor"
)

func narrow(t *testing.T, r *tensor.RawTensor, dim, start, length int) *tensor.RawTensor {
	t.Helper()
	v, err := r.Narrow(dim, start, length)
	require.NoError(t, err)
	return v
}

func TestGetOverlapStatus(t *testing.T) {
	base := fromSlice(t, []int32{0, 1, 2, 3, 4, 5, 6, 7})
	grid := fromSlice(t, []int32{0, 1, 2, 3, 4, 5, 6, 7}, 2, 4)

	tests := []struct {
		name string
		a, b *tensor.RawTensor
		want overlapStatus
	}{
		{"same tensor", base, base, overlapFull},
		{"unrelated buffers", base, base.Copy(), overlapNone},
		{"identical views", narrow(t, base, 0, 2, 3), narrow(t, base, 0, 2, 3), overlapFull},
		{"shifted views", narrow(t, base, 0, 0, 4), narrow(t, base, 0, 2, 4), overlapPartial},
		{"adjacent views", narrow(t, base, 0, 0, 4), narrow(t, base, 0, 4, 4), overlapNone},
		{"strided view", grid, narrow(t, grid, 1, 0, 2), overlapTooHard},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, getOverlapStatus(tt.a, tt.b))
			assert.Equal(t, tt.want, getOverlapStatus(tt.b, tt.a))
		})
	}
}

func TestHasInternalOverlap(t *testing.T) {
	row := fromSlice(t, []float32{1, 2, 3}, 1, 3)
	expanded, err := row.Expand(tensor.Shape{4, 3})
	require.NoError(t, err)

	assert.False(t, hasInternalOverlap(row))
	assert.True(t, hasInternalOverlap(expanded))
	assert.False(t, hasInternalOverlap(tensor.WrapScalar(tensor.IntScalar(1))))
}

func TestBuildChecksOverlap(t *testing.T) {
	base := fromSlice(t, []float32{1, 2, 3, 4, 5})
	head, tail := narrow(t, base, 0, 0, 4), narrow(t, base, 0, 1, 4)
	other := fromSlice(t, []float32{1, 1, 1, 1})

	_, err := Build(Config{Output: tail, Left: head, Right: other, CheckOverlap: true})
	assert.ErrorIs(t, err, tensor.ErrOverlap)

	_, err = Build(Config{Output: tail, Left: head, Right: other})
	assert.NoError(t, err, "overlap is only checked on request")

	_, err = Build(Config{Output: head, Left: head, Right: head, CheckOverlap: true})
	assert.NoError(t, err)

	expanded, err := fromSlice(t, []float32{0}, 1).Expand(tensor.Shape{4})
	require.NoError(t, err)
	_, err = Build(Config{Output: expanded, Left: other, Right: other, CheckOverlap: true})
	assert.ErrorIs(t, err, tensor.ErrOverlap)
}

func TestBuildCopiesStridedAliases(t *testing.T) {
	grid := fromSlice(t, []int32{1, 2, 3, 4, 5, 6}, 2, 3)
	right, left := narrow(t, grid, 1, 1, 2), narrow(t, grid, 1, 0, 2)

	d, err := Build(Config{Output: right, Left: left, Right: right, CheckOverlap: true})
	require.NoError(t, err)
	assert.Same(t, right, d.Dest().Tensor)
	assert.Same(t, right, d.Input(1).Tensor, "the output itself is read in place")
	assert.False(t, d.Input(0).Tensor.SameStorage(grid), "strided aliases are read from a copy")
	assert.True(t, d.Input(0).Tensor.IsContiguous())

	square := fromSlice(t, []int32{1, 2, 3, 4}, 2, 2)
	row, err := narrow(t, square, 0, 0, 1).Expand(tensor.Shape{2, 2})
	require.NoError(t, err)
	d, err = Build(Config{Output: square, Left: square, Right: row, CheckOverlap: true})
	require.NoError(t, err)
	assert.Same(t, square, d.Input(0).Tensor)
	assert.False(t, d.Input(1).Tensor.SameStorage(square))

	other := fromSlice(t, []int32{0, 0, 0, 0}, 2, 2)
	d, err = Build(Config{Output: other, Left: left, Right: right})
	require.NoError(t, err)
	assert.Same(t, left, d.Input(0).Tensor, "inputs not sharing the output's storage are untouched")
}

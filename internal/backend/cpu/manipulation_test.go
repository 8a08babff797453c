package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sparsefuzz/sparsefuzz/internal/tensor"
)

func TestCatDim0(t *testing.T) {
	b := New()

	a, err := tensor.FromSlice([]float32{1, 2, 3}, tensor.Shape{3}, tensor.CPU)
	require.NoError(t, err)
	c, err := tensor.FromSlice([]float32{4, 5}, tensor.Shape{2}, tensor.CPU)
	require.NoError(t, err)

	out := b.Cat([]*tensor.RawTensor{a, c}, 0)
	require.True(t, out.Shape().Equal(tensor.Shape{5}))
	assert.Equal(t, []float32{1, 2, 3, 4, 5}, out.AsFloat32())
}

func TestCatDim1(t *testing.T) {
	b := New()

	// The index-duplication pattern: a [2, 3] index array concatenated with
	// itself along the entry axis.
	i, err := tensor.FromSlice([]int64{
		0, 1, 2,
		3, 0, 1,
	}, tensor.Shape{2, 3}, tensor.CPU)
	require.NoError(t, err)

	out := b.Cat([]*tensor.RawTensor{i, i}, 1)
	require.True(t, out.Shape().Equal(tensor.Shape{2, 6}))
	assert.Equal(t, []int64{
		0, 1, 2, 0, 1, 2,
		3, 0, 1, 3, 0, 1,
	}, out.AsInt64())
}

func TestCatNegativeDim(t *testing.T) {
	b := New()

	i, err := tensor.FromSlice([]int64{0, 1, 2, 3}, tensor.Shape{2, 2}, tensor.CPU)
	require.NoError(t, err)

	out := b.Cat([]*tensor.RawTensor{i, i}, -1)
	require.True(t, out.Shape().Equal(tensor.Shape{2, 4}))
	assert.Equal(t, []int64{0, 1, 0, 1, 2, 3, 2, 3}, out.AsInt64())
}

func TestCatValidation(t *testing.T) {
	b := New()

	a, err := tensor.FromSlice([]float32{1, 2}, tensor.Shape{2}, tensor.CPU)
	require.NoError(t, err)

	t.Run("no tensors", func(t *testing.T) {
		assert.Panics(t, func() { b.Cat(nil, 0) })
	})

	t.Run("dim out of range", func(t *testing.T) {
		assert.Panics(t, func() { b.Cat([]*tensor.RawTensor{a}, 1) })
	})

	t.Run("dtype mismatch", func(t *testing.T) {
		c, err := tensor.FromSlice([]float64{1, 2}, tensor.Shape{2}, tensor.CPU)
		require.NoError(t, err)
		assert.Panics(t, func() { b.Cat([]*tensor.RawTensor{a, c}, 0) })
	})

	t.Run("non-cat dimension mismatch", func(t *testing.T) {
		x, err := tensor.FromSlice([]float32{1, 2, 3, 4}, tensor.Shape{2, 2}, tensor.CPU)
		require.NoError(t, err)
		y, err := tensor.FromSlice([]float32{1, 2, 3, 4, 5, 6}, tensor.Shape{3, 2}, tensor.CPU)
		require.NoError(t, err)
		assert.Panics(t, func() { b.Cat([]*tensor.RawTensor{x, y}, 1) })
	})
}

package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sparsefuzz/sparsefuzz/internal/tensor"
)

func TestMulSameShape(t *testing.T) {
	b := New()

	a, err := tensor.FromSlice([]float32{1, 2, 3, 4}, tensor.Shape{2, 2}, tensor.CPU)
	require.NoError(t, err)
	c, err := tensor.FromSlice([]float32{2, 2, 0.5, 0.5}, tensor.Shape{2, 2}, tensor.CPU)
	require.NoError(t, err)

	out := b.Mul(a, c)
	assert.Equal(t, []float32{2, 4, 1.5, 2}, out.AsFloat32())
}

func TestMulBroadcastColumn(t *testing.T) {
	b := New()

	// The coordinate-scaling pattern: [2, 4] sample times [2, 1] extents.
	a, err := tensor.FromSlice([]float64{
		0.1, 0.2, 0.3, 0.4,
		0.5, 0.6, 0.7, 0.8,
	}, tensor.Shape{2, 4}, tensor.CPU)
	require.NoError(t, err)
	col, err := tensor.FromSlice([]float64{10, 100}, tensor.Shape{2, 1}, tensor.CPU)
	require.NoError(t, err)

	out := b.Mul(a, col)
	require.True(t, out.Shape().Equal(tensor.Shape{2, 4}))

	want := []float64{1, 2, 3, 4, 50, 60, 70, 80}
	got := out.AsFloat64()
	for i := range want {
		assert.InDelta(t, want[i], got[i], 1e-9, "element %d", i)
	}
}

func TestMulDTypeMismatchPanics(t *testing.T) {
	b := New()

	a, err := tensor.FromSlice([]float32{1}, tensor.Shape{1}, tensor.CPU)
	require.NoError(t, err)
	c, err := tensor.FromSlice([]float64{1}, tensor.Shape{1}, tensor.CPU)
	require.NoError(t, err)

	assert.Panics(t, func() { b.Mul(a, c) })
}

func TestCastTruncatesTowardZero(t *testing.T) {
	b := New()

	x, err := tensor.FromSlice([]float64{0.0, 0.9, 1.1, 3.999}, tensor.Shape{4}, tensor.CPU)
	require.NoError(t, err)

	out := b.Cast(x, tensor.Int64)
	assert.Equal(t, []int64{0, 0, 1, 3}, out.AsInt64())
}

func TestCastSameDTypeCopies(t *testing.T) {
	b := New()

	x, err := tensor.FromSlice([]int64{1, 2}, tensor.Shape{2}, tensor.CPU)
	require.NoError(t, err)

	out := b.Cast(x, tensor.Int64)
	out.AsInt64()[0] = 9
	assert.Equal(t, int64(1), x.AsInt64()[0], "cast must not alias the input")
}

func TestBackendMetadata(t *testing.T) {
	b := New()
	assert.Equal(t, "CPU", b.Name())
	assert.Equal(t, tensor.CPU, b.Device())
}

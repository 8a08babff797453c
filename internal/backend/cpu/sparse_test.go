package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sparsefuzz/sparsefuzz/internal/tensor"
)

func makeCOO(t *testing.T, b *CPUBackend, idx []int64, vals []float32, sparseDim, nnz int, shape tensor.Shape) *tensor.SparseTensor {
	t.Helper()
	i, err := tensor.FromSlice(idx, tensor.Shape{sparseDim, nnz}, tensor.CPU)
	require.NoError(t, err)
	valShape := append(tensor.Shape{nnz}, shape[sparseDim:]...)
	v, err := tensor.FromSlice(vals, valShape, tensor.CPU)
	require.NoError(t, err)
	x, err := b.SparseCOO(i, v, shape)
	require.NoError(t, err)
	return x
}

func TestSparseCOOPropagatesValidation(t *testing.T) {
	b := New()

	i, err := tensor.FromSlice([]int64{0, 9}, tensor.Shape{2, 1}, tensor.CPU)
	require.NoError(t, err)
	v, err := tensor.FromSlice([]float32{1}, tensor.Shape{1}, tensor.CPU)
	require.NoError(t, err)

	_, err = b.SparseCOO(i, v, tensor.Shape{4, 4})
	assert.Error(t, err, "coordinate 9 exceeds extent 4")
}

func TestCoalesceMergesDuplicates(t *testing.T) {
	b := New()

	// Coordinates (0,1), (0,1), (1,2): the duplicate pair collapses with
	// summed values.
	x := makeCOO(t, b,
		[]int64{0, 0, 1, 1, 1, 2},
		[]float32{1, 2, 3},
		2, 3, tensor.Shape{4, 4})

	out := b.Coalesce(x)
	require.True(t, out.IsCoalesced())
	require.Equal(t, 2, out.NNZ())

	assert.Equal(t, []int64{0, 1, 1, 2}, out.Indices().AsInt64())
	assert.Equal(t, []float32{3, 3}, out.Values().AsFloat32())
}

func TestCoalesceSortsCanonically(t *testing.T) {
	b := New()

	// Distinct coordinates out of order: (2,0), (0,3), (1,1).
	x := makeCOO(t, b,
		[]int64{2, 0, 1, 0, 3, 1},
		[]float32{30, 10, 20},
		2, 3, tensor.Shape{4, 4})

	out := b.Coalesce(x)
	require.Equal(t, 3, out.NNZ())

	assert.Equal(t, []int64{0, 1, 2, 3, 1, 0}, out.Indices().AsInt64())
	assert.Equal(t, []float32{10, 20, 30}, out.Values().AsFloat32())
}

func TestCoalesceHybridSumsDenseBlocks(t *testing.T) {
	b := New()

	// Shape [3, 2] with one sparse dimension: entries at rows 1, 1, 0 carry
	// dense blocks of length 2.
	x := makeCOO(t, b,
		[]int64{1, 1, 0},
		[]float32{1, 2, 10, 20, 5, 6},
		1, 3, tensor.Shape{3, 2})

	out := b.Coalesce(x)
	require.Equal(t, 2, out.NNZ())

	assert.Equal(t, []int64{0, 1}, out.Indices().AsInt64())
	assert.Equal(t, []float32{5, 6, 11, 22}, out.Values().AsFloat32())
}

func TestCoalesceEmpty(t *testing.T) {
	b := New()

	x := makeCOO(t, b, nil, nil, 2, 0, tensor.Shape{4, 4})

	out := b.Coalesce(x)
	assert.True(t, out.IsCoalesced())
	assert.Equal(t, 0, out.NNZ())
}

func TestCoalesceIdempotent(t *testing.T) {
	b := New()

	x := makeCOO(t, b,
		[]int64{0, 1, 1, 2},
		[]float32{1, 2},
		2, 2, tensor.Shape{4, 4})

	once := b.Coalesce(x)
	twice := b.Coalesce(once)
	assert.Same(t, once, twice, "coalescing a coalesced tensor is a no-op")
}

func TestCoalesceIntegerValues(t *testing.T) {
	b := New()

	i, err := tensor.FromSlice([]int64{0, 0, 2}, tensor.Shape{1, 3}, tensor.CPU)
	require.NoError(t, err)
	v, err := tensor.FromSlice([]int64{7, 8, 9}, tensor.Shape{3}, tensor.CPU)
	require.NoError(t, err)
	x, err := b.SparseCOO(i, v, tensor.Shape{4})
	require.NoError(t, err)

	out := b.Coalesce(x)
	require.Equal(t, 2, out.NNZ())
	assert.Equal(t, []int64{15, 9}, out.Values().AsInt64())
}

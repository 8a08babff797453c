// Copyright 2025 The sparsefuzz Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sparsefuzz/sparsefuzz/tensor"
)

func TestFromSlice(t *testing.T) {
	x, err := tensor.FromSlice([]float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3}, tensor.CPU)
	require.NoError(t, err)

	assert.True(t, x.Shape().Equal(tensor.Shape{2, 3}))
	assert.Equal(t, tensor.Float32, x.DType())
	assert.Equal(t, []float32{1, 2, 3, 4, 5, 6}, tensor.AsSlice[float32](x))
}

func TestZeros(t *testing.T) {
	x := tensor.Zeros(tensor.Shape{4}, tensor.Int64, tensor.CPU)
	assert.Equal(t, []int64{0, 0, 0, 0}, tensor.AsSlice[int64](x))
}

func TestNewSparseCOO(t *testing.T) {
	i, err := tensor.FromSlice([]int64{0, 2, 1, 3}, tensor.Shape{2, 2}, tensor.CPU)
	require.NoError(t, err)
	v, err := tensor.FromSlice([]float32{1.5, 2.5}, tensor.Shape{2}, tensor.CPU)
	require.NoError(t, err)

	x, err := tensor.NewSparseCOO(i, v, tensor.Shape{4, 4})
	require.NoError(t, err)
	assert.Equal(t, 2, x.NNZ())
	assert.Equal(t, 2, x.SparseDim())
}

func TestBroadcastShapes(t *testing.T) {
	shape, needs, err := tensor.BroadcastShapes(tensor.Shape{3, 4}, tensor.Shape{3, 1})
	require.NoError(t, err)
	assert.True(t, shape.Equal(tensor.Shape{3, 4}))
	assert.True(t, needs)
}

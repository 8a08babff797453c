// Copyright 2025 The sparsefuzz Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package fuzzer_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sparsefuzz/sparsefuzz/backend/cpu"
	"github.com/sparsefuzz/sparsefuzz/fuzzer"
	"github.com/sparsefuzz/sparsefuzz/tensor"
)

func TestEndToEnd(t *testing.T) {
	fz := fuzzer.New(fuzzer.Config{
		Parameters: []*fuzzer.FuzzedParameter{
			{Name: "k", Dist: fuzzer.LogUniform, MinVal: 16, MaxVal: 256, IntValued: true},
			{Name: "density", Dist: fuzzer.Choice, Options: []fuzzer.ChoiceOption{
				{Value: 0.05}, {Value: 0.1},
			}},
			{Name: "coalesced", Dist: fuzzer.Choice, Options: []fuzzer.ChoiceOption{
				{Value: true}, {Value: false},
			}},
		},
		Tensors: []*fuzzer.FuzzedSparseTensor{
			{Name: "x", Size: []fuzzer.Dim{fuzzer.Ref("k"), fuzzer.Ref("k")}, DType: tensor.Float32},
		},
		Backend: cpu.New(),
		Seed:    42,
	})

	steps, err := fz.Take(8)
	require.NoError(t, err)
	require.Len(t, steps, 8)

	for i, step := range steps {
		x := step.Tensors["x"]
		props := step.Properties["x"]

		coalesced, err := step.Params.Bool("coalesced")
		require.NoError(t, err)
		assert.Equal(t, coalesced, x.IsCoalesced(), "step %d", i)
		assert.True(t, props.Shape.Equal(x.Shape()), "step %d", i)
		assert.InDelta(t, 1.0, props.Density+props.Sparsity, 1e-12, "step %d", i)
	}
}

func TestSparseTensorConstructor(t *testing.T) {
	b := cpu.New()
	rng := rand.New(rand.NewSource(42)) //nolint:gosec // G404: deterministic test inputs

	x, err := fuzzer.SparseTensorConstructor(b, rng, tensor.Shape{64, 64}, tensor.Float32, 2, 10, false)
	require.NoError(t, err)
	assert.Equal(t, 20, x.NNZ())
	assert.False(t, x.IsCoalesced())

	_, err = fuzzer.SparseTensorConstructor(b, rng, tensor.Shape{0, 5}, tensor.Float32, 2, 3, false)
	assert.ErrorIs(t, err, fuzzer.ErrInvalidParameters)
}

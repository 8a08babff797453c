// Copyright 2025 The sparsefuzz Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package fuzzer provides the public API for randomized sparse tensor
// generation.
//
// Example:
//
//	fz := fuzzer.New(fuzzer.Config{
//	    Parameters: []*fuzzer.FuzzedParameter{
//	        {Name: "density", Dist: fuzzer.Choice, Options: []fuzzer.ChoiceOption{{Value: 0.1}}},
//	        {Name: "coalesced", Dist: fuzzer.Choice, Options: []fuzzer.ChoiceOption{{Value: true}, {Value: false}}},
//	    },
//	    Tensors: []*fuzzer.FuzzedSparseTensor{
//	        {Name: "x", Size: []fuzzer.Dim{fuzzer.Lit(64), fuzzer.Lit(64)}, DType: tensor.Float32},
//	    },
//	    Backend: cpu.New(),
//	    Seed:    42,
//	})
//	steps, err := fz.Take(10)
package fuzzer

import (
	"math/rand"

	"github.com/sparsefuzz/sparsefuzz/internal/fuzzer"
	"github.com/sparsefuzz/sparsefuzz/tensor"
)

// ErrInvalidParameters reports a caller or upstream parameter-generation
// bug; see the internal package documentation for the exact conditions.
var ErrInvalidParameters = fuzzer.ErrInvalidParameters

// Type aliases for public API

// Distribution selects how a fuzzed parameter is sampled.
type Distribution = fuzzer.Distribution

// Supported parameter distributions.
const (
	Uniform    Distribution = fuzzer.Uniform
	LogUniform Distribution = fuzzer.LogUniform
	Choice     Distribution = fuzzer.Choice
)

// ChoiceOption is one candidate value for a Choice-distributed parameter.
type ChoiceOption = fuzzer.ChoiceOption

// FuzzedParameter describes one dimension of the benchmark parameter space.
type FuzzedParameter = fuzzer.FuzzedParameter

// Params holds one resolved draw of the parameter space.
type Params = fuzzer.Params

// Dim is one entry of a fuzzed size.
type Dim = fuzzer.Dim

// FuzzedSparseTensor describes one sparse tensor drawn per fuzzing step.
type FuzzedSparseTensor = fuzzer.FuzzedSparseTensor

// Properties summarizes a generated tensor for downstream reporting.
type Properties = fuzzer.Properties

// Config describes a fuzzing run.
type Config = fuzzer.Config

// Step is one resolved point of the parameter space.
type Step = fuzzer.Step

// Fuzzer walks the benchmark parameter space.
type Fuzzer = fuzzer.Fuzzer

// Lit returns a literal dimension extent.
func Lit(n int) Dim {
	return fuzzer.Lit(n)
}

// Ref returns a dimension resolved from the named parameter.
func Ref(name string) Dim {
	return fuzzer.Ref(name)
}

// New creates a Fuzzer from the given configuration.
func New(cfg Config) *Fuzzer {
	return fuzzer.New(cfg)
}

// SparseTensorConstructor creates a sparse tensor in COO format; see the
// internal package documentation for the full contract.
func SparseTensorConstructor(
	b tensor.Backend,
	rng *rand.Rand,
	size tensor.Shape,
	dtype tensor.DataType,
	sparseDim, nnz int,
	isCoalesced bool,
) (*tensor.SparseTensor, error) {
	return fuzzer.SparseTensorConstructor(b, rng, size, dtype, sparseDim, nnz, isCoalesced)
}

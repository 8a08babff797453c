// Copyright 2025 The sparsefuzz Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu provides the CPU backend for sparsefuzz.
package cpu

import (
	internalcpu "github.com/sparsefuzz/sparsefuzz/internal/backend/cpu"
	"github.com/sparsefuzz/sparsefuzz/tensor"
)

// Backend implements tensor.Backend with pure Go kernels.
type Backend = internalcpu.CPUBackend

// Compile-time check that Backend implements tensor.Backend.
var _ tensor.Backend = (*Backend)(nil)

// New creates a new CPU backend.
//
// Example:
//
//	import (
//	    "github.com/sparsefuzz/sparsefuzz/backend/cpu"
//	    "github.com/sparsefuzz/sparsefuzz/tensor"
//	)
//
//	backend := cpu.New()
//	rng := rand.New(rand.NewSource(42))
//	x := backend.Rand(rng, tensor.Shape{2, 3}, tensor.Float32)
func New() *Backend {
	return internalcpu.New()
}

// Copyright 2025 The sparsefuzz Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the public tensor API for sparsefuzz.
//
// The package defines the types the generator works with:
//   - RawTensor: runtime-typed dense tensor (contiguous, row-major)
//   - SparseTensor: COO sparse tensor with sparse and dense dimensions
//   - Backend: interface for the numeric primitives the generator consumes
//   - Shape, DataType, Device: core type definitions
//
// Example:
//
//	backend := cpu.New()
//	rng := rand.New(rand.NewSource(42))
//	values := backend.Rand(rng, tensor.Shape{8}, tensor.Float32)
package tensor

import (
	"github.com/sparsefuzz/sparsefuzz/internal/tensor"
)

// Type aliases for public API

// DType is a constraint for tensor data types.
// Supported types: float32, float64, int32, int64, uint8.
type DType = tensor.DType

// DataType represents the underlying data type of a tensor.
type DataType = tensor.DataType

// Data type constants.
const (
	Float32 DataType = tensor.Float32
	Float64 DataType = tensor.Float64
	Int32   DataType = tensor.Int32
	Int64   DataType = tensor.Int64
	Uint8   DataType = tensor.Uint8
)

// Device represents the device where tensor data resides.
type Device = tensor.Device

// Device constants.
const (
	CPU    Device = tensor.CPU
	CUDA   Device = tensor.CUDA
	WebGPU Device = tensor.WebGPU
)

// Shape represents the dimensions of a tensor.
// Example: Shape{2, 3, 4} represents a 3D tensor with dimensions 2×3×4.
type Shape = tensor.Shape

// RawTensor is the low-level dense tensor representation.
type RawTensor = tensor.RawTensor

// SparseTensor is a sparse tensor in coordinate (COO) format.
type SparseTensor = tensor.SparseTensor

// Backend defines the numeric primitives the generator consumes.
// See backend/cpu for the CPU implementation.
type Backend = tensor.Backend

// Creation functions

// NewRaw creates a new zero-initialized raw tensor.
func NewRaw(shape Shape, dtype DataType, device Device) (*RawTensor, error) {
	return tensor.NewRaw(shape, dtype, device)
}

// Zeros creates a zero-initialized tensor with the given shape and type.
func Zeros(shape Shape, dtype DataType, device Device) *RawTensor {
	return tensor.Zeros(shape, dtype, device)
}

// FromSlice creates a tensor from a Go slice.
//
// Example:
//
//	data := []float32{1, 2, 3, 4, 5, 6}
//	x, err := tensor.FromSlice(data, tensor.Shape{2, 3}, tensor.CPU)
func FromSlice[T DType](data []T, shape Shape, device Device) (*RawTensor, error) {
	return tensor.FromSlice(data, shape, device)
}

// AsSlice returns a typed view of the tensor's data.
func AsSlice[T DType](r *RawTensor) []T {
	return tensor.AsSlice[T](r)
}

// NewSparseCOO assembles a COO sparse tensor from index and value arrays.
//
// Most users should generate sparse tensors through the fuzzer package
// instead of assembling them by hand.
func NewSparseCOO(indices, values *RawTensor, shape Shape) (*SparseTensor, error) {
	return tensor.NewSparseCOO(indices, values, shape)
}

// Utility functions

// BroadcastShapes computes the broadcast shape for two shapes following
// NumPy broadcasting rules. Returns the resulting shape and a flag
// indicating whether broadcasting is needed.
func BroadcastShapes(a, b Shape) (Shape, bool, error) {
	return tensor.BroadcastShapes(a, b)
}

// Package cpu implements the CPU backend for the sparsefuzz generator.
package cpu

import (
	"fmt"

	"github.com/sparsefuzz/sparsefuzz/internal/tensor"
)

// CPUBackend implements tensor.Backend with pure Go kernels.
type CPUBackend struct {
	device tensor.Device
}

// New creates a new CPU backend.
func New() *CPUBackend {
	return &CPUBackend{
		device: tensor.CPU,
	}
}

// Name returns the backend name.
func (cpu *CPUBackend) Name() string {
	return "CPU"
}

// Device returns the compute device.
func (cpu *CPUBackend) Device() tensor.Device {
	return cpu.device
}

// Mul performs element-wise multiplication with NumPy-style broadcasting.
//
// The generator uses it to scale a [sparseDim, nnz] uniform sample by a
// [sparseDim, 1] column of dimension extents.
func (cpu *CPUBackend) Mul(a, b *tensor.RawTensor) *tensor.RawTensor {
	if a.DType() != b.DType() {
		panic(fmt.Sprintf("mul: dtype mismatch: %s vs %s", a.DType(), b.DType()))
	}

	outShape, _, err := tensor.BroadcastShapes(a.Shape(), b.Shape())
	if err != nil {
		panic(fmt.Sprintf("mul: %v", err))
	}

	result, err := tensor.NewRaw(outShape, a.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("mul: failed to create result tensor: %v", err))
	}

	switch a.DType() {
	case tensor.Float32:
		mulBroadcast[float32](result, a, b)
	case tensor.Float64:
		mulBroadcast[float64](result, a, b)
	case tensor.Int32:
		mulBroadcast[int32](result, a, b)
	case tensor.Int64:
		mulBroadcast[int64](result, a, b)
	case tensor.Uint8:
		mulBroadcast[uint8](result, a, b)
	default:
		panic(fmt.Sprintf("mul: unsupported dtype %s", a.DType()))
	}

	return result
}

// mulBroadcast multiplies a and b into out, mapping each output coordinate
// back to its (possibly broadcast) source elements.
func mulBroadcast[T tensor.DType](out, a, b *tensor.RawTensor) {
	outData := tensor.AsSlice[T](out)
	aData := tensor.AsSlice[T](a)
	bData := tensor.AsSlice[T](b)

	outShape := out.Shape()

	// Fast path: identical shapes need no index mapping.
	if a.Shape().Equal(b.Shape()) {
		for i := range outData {
			outData[i] = aData[i] * bData[i]
		}
		return
	}

	outStrides := outShape.ComputeStrides()
	coords := make([]int, len(outShape))
	for i := range outData {
		temp := i
		for d := range outShape {
			coords[d] = temp / outStrides[d]
			temp %= outStrides[d]
		}
		outData[i] = aData[broadcastIndex(coords, a.Shape())] * bData[broadcastIndex(coords, b.Shape())]
	}
}

// broadcastIndex maps an output coordinate to the flat index of a source
// tensor whose shape is right-aligned against the output shape. Dimensions
// of size 1 always contribute index 0.
func broadcastIndex(coords []int, shape tensor.Shape) int {
	strides := shape.ComputeStrides()
	off := len(coords) - len(shape)
	idx := 0
	for d := 0; d < len(shape); d++ {
		c := coords[off+d]
		if shape[d] == 1 {
			c = 0
		}
		idx += c * strides[d]
	}
	return idx
}

// Cast converts a tensor to a different data type.
// Float-to-integer conversion truncates toward zero, which is what turns
// scaled uniform coordinates into valid integer indices.
func (cpu *CPUBackend) Cast(x *tensor.RawTensor, dtype tensor.DataType) *tensor.RawTensor {
	if x.DType() == dtype {
		return x.Clone()
	}

	result, err := tensor.NewRaw(x.Shape(), dtype, cpu.device)
	if err != nil {
		panic(fmt.Sprintf("cast: %v", err))
	}

	switch dtype {
	case tensor.Float32:
		castInto(x, tensor.AsSlice[float32](result))
	case tensor.Float64:
		castInto(x, tensor.AsSlice[float64](result))
	case tensor.Int32:
		castInto(x, tensor.AsSlice[int32](result))
	case tensor.Int64:
		castInto(x, tensor.AsSlice[int64](result))
	case tensor.Uint8:
		castInto(x, tensor.AsSlice[uint8](result))
	default:
		panic(fmt.Sprintf("cast: unsupported dtype %s", dtype))
	}

	return result
}

// castInto converts the source elements into dst regardless of source dtype.
func castInto[D tensor.DType](src *tensor.RawTensor, dst []D) {
	switch src.DType() {
	case tensor.Float32:
		for i, v := range src.AsFloat32() {
			dst[i] = D(v)
		}
	case tensor.Float64:
		for i, v := range src.AsFloat64() {
			dst[i] = D(v)
		}
	case tensor.Int32:
		for i, v := range src.AsInt32() {
			dst[i] = D(v)
		}
	case tensor.Int64:
		for i, v := range src.AsInt64() {
			dst[i] = D(v)
		}
	case tensor.Uint8:
		for i, v := range src.AsUint8() {
			dst[i] = D(v)
		}
	default:
		panic(fmt.Sprintf("cast: unsupported source dtype %s", src.DType()))
	}
}

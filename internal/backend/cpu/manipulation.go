package cpu

import (
	"fmt"

	"github.com/sparsefuzz/sparsefuzz/internal/tensor"
)

// Cat concatenates tensors along the specified dimension.
//
// All tensors must share dtype and shape except along the concatenation
// dimension. Supports negative dim indexing (-1 = last dimension).
//
// The generator concatenates along the entry axis: values with a second
// sample along dim 0, indices with themselves along dim 1.
func (cpu *CPUBackend) Cat(tensors []*tensor.RawTensor, dim int) *tensor.RawTensor {
	if len(tensors) == 0 {
		panic("cat: at least one tensor required")
	}

	shape := tensors[0].Shape()
	ndim := len(shape)
	dtype := tensors[0].DType()

	if dim < 0 {
		dim = ndim + dim
	}
	if dim < 0 || dim >= ndim {
		panic(fmt.Sprintf("cat: dimension %d out of range for %dD tensor", dim, ndim))
	}

	totalDim := 0
	for i, t := range tensors {
		tShape := t.Shape()
		if len(tShape) != ndim {
			panic(fmt.Sprintf("cat: tensor %d has %d dimensions, expected %d", i, len(tShape), ndim))
		}
		if t.DType() != dtype {
			panic(fmt.Sprintf("cat: tensor %d has dtype %s, expected %s", i, t.DType(), dtype))
		}
		for d := 0; d < ndim; d++ {
			if d == dim {
				totalDim += tShape[d]
			} else if tShape[d] != shape[d] {
				panic(fmt.Sprintf("cat: tensor %d dimension %d is %d, expected %d", i, d, tShape[d], shape[d]))
			}
		}
	}

	outShape := shape.Clone()
	outShape[dim] = totalDim

	result, err := tensor.NewRaw(outShape, dtype, cpu.device)
	if err != nil {
		panic(fmt.Sprintf("cat: %v", err))
	}

	// All tensors are contiguous row-major, so concatenation along dim is a
	// block interleave: each input contributes one block per outer index,
	// where a block spans dims [dim:].
	outer := 1
	for d := 0; d < dim; d++ {
		outer *= shape[d]
	}

	elemSize := dtype.Size()
	outBlock := 1
	for d := dim; d < ndim; d++ {
		outBlock *= outShape[d]
	}
	outBlock *= elemSize

	outData := result.Data()
	offset := 0
	for _, t := range tensors {
		tShape := t.Shape()
		block := elemSize
		for d := dim; d < ndim; d++ {
			block *= tShape[d]
		}
		src := t.Data()
		for o := 0; o < outer; o++ {
			copy(outData[o*outBlock+offset:o*outBlock+offset+block], src[o*block:(o+1)*block])
		}
		offset += block
	}

	return result
}

package cpu

import (
	"fmt"
	"sort"

	"github.com/sparsefuzz/sparsefuzz/internal/parallel"
	"github.com/sparsefuzz/sparsefuzz/internal/tensor"
)

// SparseCOO assembles a COO sparse tensor from index and value arrays.
// Validation failures are returned, not panicked: malformed inputs here are
// caller parameter errors, and the generator propagates them unmodified.
func (cpu *CPUBackend) SparseCOO(indices, values *tensor.RawTensor, shape tensor.Shape) (*tensor.SparseTensor, error) {
	return tensor.NewSparseCOO(indices, values, shape)
}

// Coalesce merges duplicate coordinates by summing their values and returns
// a canonical tensor with entries sorted by linearized sparse coordinate.
//
// The effective nnz of the result may be lower than the input's when
// duplicates exist; callers treat that reduction as a known approximation.
// Already-coalesced tensors are returned as-is.
func (cpu *CPUBackend) Coalesce(x *tensor.SparseTensor) *tensor.SparseTensor {
	if x.IsCoalesced() {
		return x
	}

	nnz := x.NNZ()
	sparseDim := x.SparseDim()
	shape := x.Shape()

	if nnz == 0 {
		x.MarkCoalesced()
		return x
	}

	// Linearize each coordinate tuple against the sparse extents so
	// duplicates compare equal and the sort order is canonical.
	sparseStrides := tensor.Shape(shape[:sparseDim]).ComputeStrides()
	idx := x.Indices().AsInt64()
	keys := make([]int64, nnz)
	for n := 0; n < nnz; n++ {
		var key int64
		for d := 0; d < sparseDim; d++ {
			key += idx[d*nnz+n] * int64(sparseStrides[d])
		}
		keys[n] = key
	}

	perm := make([]int, nnz)
	for i := range perm {
		perm[i] = i
	}
	sort.Slice(perm, func(i, j int) bool { return keys[perm[i]] < keys[perm[j]] })

	// Group runs of equal keys; each group becomes one output entry.
	type group struct{ start, end int } // Half-open range into perm.
	var groups []group
	for i := 0; i < nnz; {
		j := i + 1
		for j < nnz && keys[perm[j]] == keys[perm[i]] {
			j++
		}
		groups = append(groups, group{i, j})
		i = j
	}
	outNnz := len(groups)

	outIndices, err := tensor.NewRaw(tensor.Shape{sparseDim, outNnz}, tensor.Int64, cpu.device)
	if err != nil {
		panic(fmt.Sprintf("coalesce: %v", err))
	}
	denseShape := tensor.Shape(shape[sparseDim:])
	outValues, err := tensor.NewRaw(append(tensor.Shape{outNnz}, denseShape...), x.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("coalesce: %v", err))
	}

	blockLen := denseShape.NumElements()
	outIdx := outIndices.AsInt64()

	parallel.For(outNnz, func(g int) {
		first := perm[groups[g].start]
		for d := 0; d < sparseDim; d++ {
			outIdx[d*outNnz+g] = idx[d*nnz+first]
		}
		for _, member := range perm[groups[g].start:groups[g].end] {
			accumulateBlock(outValues, x.Values(), g, member, blockLen)
		}
	}, parallel.DefaultConfig())

	result, err := tensor.NewSparseCOO(outIndices, outValues, shape)
	if err != nil {
		panic(fmt.Sprintf("coalesce: %v", err)) // Inputs were validated at construction.
	}
	result.MarkCoalesced()
	return result
}

// accumulateBlock adds the source entry's dense block into the destination
// entry's block.
func accumulateBlock(dst, src *tensor.RawTensor, dstEntry, srcEntry, blockLen int) {
	switch dst.DType() {
	case tensor.Float32:
		addBlock(dst.AsFloat32(), src.AsFloat32(), dstEntry, srcEntry, blockLen)
	case tensor.Float64:
		addBlock(dst.AsFloat64(), src.AsFloat64(), dstEntry, srcEntry, blockLen)
	case tensor.Int32:
		addBlock(dst.AsInt32(), src.AsInt32(), dstEntry, srcEntry, blockLen)
	case tensor.Int64:
		addBlock(dst.AsInt64(), src.AsInt64(), dstEntry, srcEntry, blockLen)
	case tensor.Uint8:
		addBlock(dst.AsUint8(), src.AsUint8(), dstEntry, srcEntry, blockLen)
	default:
		panic(fmt.Sprintf("coalesce: unsupported dtype %s", dst.DType()))
	}
}

func addBlock[T tensor.DType](dst, src []T, dstEntry, srcEntry, blockLen int) {
	d := dst[dstEntry*blockLen : (dstEntry+1)*blockLen]
	s := src[srcEntry*blockLen : (srcEntry+1)*blockLen]
	for i := range d {
		d[i] += s[i]
	}
}

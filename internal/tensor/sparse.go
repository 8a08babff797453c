package tensor

import "fmt"

// SparseTensor is a sparse tensor in coordinate (COO) format.
//
// The first SparseDim dimensions of the shape are sparse (indexed by explicit
// coordinates); the remaining dimensions are dense and carried per stored
// entry, making the tensor hybrid when any exist.
//
// Layout:
//   - indices: Int64 tensor of shape [sparseDim, nnz]
//   - values:  tensor of shape [nnz] + shape[sparseDim:]
//
// An uncoalesced tensor may store duplicate coordinates; Backend.Coalesce
// merges them by summing their values.
type SparseTensor struct {
	indices   *RawTensor
	values    *RawTensor
	shape     Shape
	coalesced bool
}

// NewSparseCOO assembles a COO sparse tensor from index and value arrays.
//
// It validates that indices are Int64 of shape [sparseDim, nnz], that the
// value array carries one dense block per entry matching shape[sparseDim:],
// and that every coordinate lies in [0, extent) for its dimension. The
// resulting tensor owns both arrays and is marked uncoalesced.
func NewSparseCOO(indices, values *RawTensor, shape Shape) (*SparseTensor, error) {
	if indices.DType() != Int64 {
		return nil, fmt.Errorf("sparse coo: indices must be int64, got %s", indices.DType())
	}
	if len(indices.Shape()) != 2 {
		return nil, fmt.Errorf("sparse coo: indices must be 2D [sparseDim, nnz], got shape %v", indices.Shape())
	}

	sparseDim := indices.Shape()[0]
	nnz := indices.Shape()[1]

	if sparseDim < 1 || sparseDim > len(shape) {
		return nil, fmt.Errorf("sparse coo: sparse dim %d out of range for %dD shape %v", sparseDim, len(shape), shape)
	}

	denseShape := Shape(shape[sparseDim:])
	wantValues := append(Shape{nnz}, denseShape...)
	if !values.Shape().Equal(wantValues) {
		return nil, fmt.Errorf("sparse coo: values shape %v does not match expected %v", values.Shape(), wantValues)
	}
	if indices.Device() != values.Device() {
		return nil, fmt.Errorf("sparse coo: indices on %s but values on %s", indices.Device(), values.Device())
	}

	// Every stored coordinate must be a valid index for its dimension.
	idx := indices.AsInt64()
	for d := 0; d < sparseDim; d++ {
		extent := int64(shape[d])
		for n := 0; n < nnz; n++ {
			c := idx[d*nnz+n]
			if c < 0 || c >= extent {
				return nil, fmt.Errorf("sparse coo: coordinate %d out of range [0, %d) in dimension %d", c, extent, d)
			}
		}
	}

	return &SparseTensor{
		indices: indices,
		values:  values,
		shape:   shape.Clone(),
	}, nil
}

// Indices returns the [sparseDim, nnz] Int64 coordinate array.
func (s *SparseTensor) Indices() *RawTensor {
	return s.indices
}

// Values returns the [nnz] + denseShape value array.
func (s *SparseTensor) Values() *RawTensor {
	return s.values
}

// Shape returns the tensor's full shape (sparse and dense dimensions).
func (s *SparseTensor) Shape() Shape {
	return s.shape
}

// NNZ returns the number of stored entries. For an uncoalesced tensor this
// counts duplicates; coalescing can reduce it.
func (s *SparseTensor) NNZ() int {
	return s.indices.Shape()[1]
}

// SparseDim returns the number of sparse (coordinate) dimensions.
func (s *SparseTensor) SparseDim() int {
	return s.indices.Shape()[0]
}

// DenseDim returns the number of dense dimensions carried per entry.
func (s *SparseTensor) DenseDim() int {
	return len(s.shape) - s.SparseDim()
}

// IsHybrid reports whether the tensor has any dense dimensions.
func (s *SparseTensor) IsHybrid() bool {
	return s.DenseDim() > 0
}

// IsCoalesced reports whether the tensor is known to be free of duplicate
// coordinates.
func (s *SparseTensor) IsCoalesced() bool {
	return s.coalesced
}

// NumElements returns the total number of elements the dense equivalent of
// this tensor would hold (product of the full shape).
func (s *SparseTensor) NumElements() int {
	return s.shape.NumElements()
}

// DType returns the data type of the stored values.
func (s *SparseTensor) DType() DataType {
	return s.values.DType()
}

// Device returns the device the tensor resides on.
func (s *SparseTensor) Device() Device {
	return s.values.Device()
}

// String returns a human-readable representation of the tensor.
func (s *SparseTensor) String() string {
	return fmt.Sprintf("SparseTensor[%s]%v nnz=%d sparseDim=%d coalesced=%t on %s",
		s.DType(), s.shape, s.NNZ(), s.SparseDim(), s.coalesced, s.Device())
}

// MarkCoalesced records that the tensor is free of duplicate coordinates.
// Intended for backend implementations after a coalescing pass; callers that
// did not deduplicate the coordinates must not set it.
func (s *SparseTensor) MarkCoalesced() {
	s.coalesced = true
}

// Package fuzzer generates randomized sparse tensors with controllable
// statistical properties for operator benchmarking.
//
// A FuzzedSparseTensor describes the tensor to generate in terms of fuzzed
// parameters (size, density, coalesced state, sparse dimension count); the
// Fuzzer resolves those parameters per step and materializes COO sparse
// tensors through a tensor.Backend.
package fuzzer

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/sparsefuzz/sparsefuzz/internal/tensor"
)

// ErrInvalidParameters reports a caller or upstream parameter-generation bug:
// a non-positive sparse extent with nonzero nnz, a requested nnz above
// sum(shape), or a malformed parameter reference. These are fail-fast errors;
// resampling or recovery is the caller's responsibility.
var ErrInvalidParameters = errors.New("invalid parameters")

// Dim is one entry of a fuzzed size: either a literal extent or a reference
// to a fuzzed parameter resolved per step.
type Dim struct {
	n     int
	param string
}

// Lit returns a literal dimension extent.
func Lit(n int) Dim {
	return Dim{n: n}
}

// Ref returns a dimension resolved from the named parameter.
func Ref(name string) Dim {
	return Dim{param: name}
}

// Properties summarizes a generated tensor for downstream reporting.
type Properties struct {
	Numel       int
	Shape       tensor.Shape
	IsCoalesced bool
	Density     float64
	Sparsity    float64
	SparseDim   int
	DenseDim    int
	IsHybrid    bool
	DType       string
}

// FuzzedSparseTensor describes one sparse tensor drawn per fuzzing step.
//
// Density and Coalesced name the parameters supplying those values and
// default to "density" and "coalesced". SparseDim optionally names a
// parameter for the sparse dimension count; when empty, every dimension is
// sparse. DimParameter optionally names a parameter that truncates the size
// to a shorter rank, so one description can cover tensors of varying
// dimensionality.
type FuzzedSparseTensor struct {
	Name         string
	Size         []Dim
	MinElements  int // Resample while the resolved element count is below this (0 = no bound).
	MaxElements  int // Resample while the resolved element count is above this (0 = no bound).
	DimParameter string
	SparseDim    string
	Density      string
	Coalesced    string
	DType        tensor.DataType
	Device       tensor.Device
}

// SparseTensorConstructor creates a sparse tensor in COO format.
//
// A 1-element size with sparseDim > 1 broadcasts that extent across all
// sparse dimensions. Values are sampled uniform [0,1) for floating dtypes and
// uniform integers [1,127) otherwise, with shape [nnz] + size[sparseDim:].
// Coordinates are sampled uniform [0,1), scaled per dimension by the sparse
// extents and truncated, so each lies in [0, extent).
//
// When isCoalesced is false the entry set is deliberately duplicated: values
// are concatenated with an independently sampled block and indices with
// themselves, yielding 2*nnz stored entries over nnz distinct coordinates,
// each appearing exactly twice. That keeps the sparsity pattern of the
// nnz-entry tensor while producing a genuinely uncoalesced layout at half the
// cost of sampling 2*nnz unconstrained entries.
//
// When isCoalesced is true the assembled tensor is coalesced, which may
// reduce the effective entry count below nnz if the sampler produced
// duplicate coordinates; the reduction is accepted, not corrected.
//
// Backend failures propagate unmodified; there are no retries.
func SparseTensorConstructor(
	b tensor.Backend,
	rng *rand.Rand,
	size tensor.Shape,
	dtype tensor.DataType,
	sparseDim, nnz int,
	isCoalesced bool,
) (*tensor.SparseTensor, error) {
	if nnz < 0 {
		return nil, fmt.Errorf("%w: negative nnz %d", ErrInvalidParameters, nnz)
	}
	if sparseDim < 1 {
		return nil, fmt.Errorf("%w: sparse dim must be >= 1, got %d", ErrInvalidParameters, sparseDim)
	}

	// Scalar overload: one extent broadcast across all sparse dimensions.
	// Unambiguous because a 1-D shape can never carry sparseDim > 1.
	if len(size) == 1 && sparseDim > 1 {
		bcast := make(tensor.Shape, sparseDim)
		for i := range bcast {
			bcast[i] = size[0]
		}
		size = bcast
	}
	if sparseDim > len(size) {
		return nil, fmt.Errorf("%w: sparse dim %d exceeds tensor rank %d", ErrInvalidParameters, sparseDim, len(size))
	}
	if nnz > 0 {
		for d := 0; d < sparseDim; d++ {
			if size[d] <= 0 {
				return nil, fmt.Errorf("%w: sparse dimension %d has extent %d with nnz %d",
					ErrInvalidParameters, d, size[d], nnz)
			}
		}
	}

	vShape := append(tensor.Shape{nnz}, size[sparseDim:]...)
	v := sampleValues(b, rng, vShape, dtype, false)

	// Coordinates: uniform [0,1) scaled by the extent column and truncated.
	// rng.Float64 never returns 1.0, so every coordinate is strictly below
	// its extent.
	extents := make([]float64, sparseDim)
	for d := 0; d < sparseDim; d++ {
		extents[d] = float64(size[d])
	}
	extCol, err := tensor.FromSlice(extents, tensor.Shape{sparseDim, 1}, b.Device())
	if err != nil {
		return nil, err
	}
	coords := b.Rand(rng, tensor.Shape{sparseDim, nnz}, tensor.Float64)
	i := b.Cast(b.Mul(coords, extCol), tensor.Int64)

	if !isCoalesced {
		v = b.Cat([]*tensor.RawTensor{v, sampleValues(b, rng, vShape, dtype, true)}, 0)
		i = b.Cat([]*tensor.RawTensor{i, i}, 1)
	}

	x, err := b.SparseCOO(i, v, size)
	if err != nil {
		return nil, err
	}
	if isCoalesced {
		x = b.Coalesce(x)
	}
	return x, nil
}

// sampleValues draws one value block. The duplicate block for the
// uncoalesced path uses a normal distribution for floating dtypes so the two
// entries at each coordinate carry different values.
func sampleValues(b tensor.Backend, rng *rand.Rand, shape tensor.Shape, dtype tensor.DataType, duplicate bool) *tensor.RawTensor {
	if dtype.IsFloatingPoint() {
		if duplicate {
			return b.Randn(rng, shape, dtype)
		}
		return b.Rand(rng, shape, dtype)
	}
	return b.RandInt(rng, 1, 127, shape, dtype)
}

// MakeTensor resolves the fuzzed parameters and generates one sparse tensor
// together with its observable properties.
//
// nnz is derived as ceil(sum(size) * density); a result above sum(size)
// signals an upstream parameter-generation bug and fails fast. The effective
// sparse dimension count is the referenced parameter clamped to the tensor
// rank, or the full rank when no parameter is named.
func (ft *FuzzedSparseTensor) MakeTensor(params Params, b tensor.Backend, rng *rand.Rand) (*tensor.SparseTensor, Properties, error) {
	if ft.Device != b.Device() {
		return nil, Properties{}, fmt.Errorf("tensor %q: placement on %s is not supported by the %s backend",
			ft.Name, ft.Device, b.Name())
	}

	size, err := ft.resolveSize(params)
	if err != nil {
		return nil, Properties{}, err
	}

	density, err := params.Float(ft.densityName())
	if err != nil {
		return nil, Properties{}, err
	}
	coalesced, err := params.Bool(ft.coalescedName())
	if err != nil {
		return nil, Properties{}, err
	}

	nnz := int(math.Ceil(float64(size.Sum()) * density))
	if nnz > size.Sum() {
		return nil, Properties{}, fmt.Errorf("%w: tensor %q: nnz %d exceeds sum(shape) %d (density %g)",
			ErrInvalidParameters, ft.Name, nnz, size.Sum(), density)
	}

	sparseDim := len(size)
	if ft.SparseDim != "" {
		sd, err := params.Int(ft.SparseDim)
		if err != nil {
			return nil, Properties{}, err
		}
		sparseDim = min(sd, len(size))
	}

	t, err := SparseTensorConstructor(b, rng, size, ft.DType, sparseDim, nnz, coalesced)
	if err != nil {
		return nil, Properties{}, err
	}

	// Coalesced state and dimension split are re-queried from the tensor:
	// coalescing and the scalar overload may both have changed them.
	props := Properties{
		Numel:       t.NumElements(),
		Shape:       t.Shape(),
		IsCoalesced: t.IsCoalesced(),
		Density:     density,
		Sparsity:    1.0 - density,
		SparseDim:   t.SparseDim(),
		DenseDim:    t.DenseDim(),
		IsHybrid:    t.IsHybrid(),
		DType:       ft.DType.String(),
	}
	return t, props, nil
}

// resolveSize maps the symbolic size to concrete extents for this step.
func (ft *FuzzedSparseTensor) resolveSize(params Params) (tensor.Shape, error) {
	size := make(tensor.Shape, 0, len(ft.Size))
	for _, d := range ft.Size {
		if d.param == "" {
			size = append(size, d.n)
			continue
		}
		n, err := params.Int(d.param)
		if err != nil {
			return nil, err
		}
		size = append(size, n)
	}

	if ft.DimParameter != "" {
		ndim, err := params.Int(ft.DimParameter)
		if err != nil {
			return nil, err
		}
		if ndim < 1 {
			return nil, fmt.Errorf("%w: tensor %q: dim parameter %q resolved to %d",
				ErrInvalidParameters, ft.Name, ft.DimParameter, ndim)
		}
		if ndim < len(size) {
			size = size[:ndim]
		}
	}
	return size, nil
}

func (ft *FuzzedSparseTensor) densityName() string {
	if ft.Density != "" {
		return ft.Density
	}
	return "density"
}

func (ft *FuzzedSparseTensor) coalescedName() string {
	if ft.Coalesced != "" {
		return ft.Coalesced
	}
	return "coalesced"
}

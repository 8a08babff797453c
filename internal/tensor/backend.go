package tensor

import "math/rand"

// Backend defines the numeric primitives the sparse tensor generator
// consumes. Backends handle the actual computation; the generator itself is
// glue around these calls.
//
// Implementations:
//   - CPU: pure Go (backend/cpu)
//
// Sampling operations take an explicit *rand.Rand so callers control the
// random stream; the fuzzer seeds one stream per run to keep generated
// inputs reproducible. A Backend itself holds no sampling state, so
// concurrent use from independent streams is safe.
type Backend interface {
	// Random sampling.
	Rand(rng *rand.Rand, shape Shape, dtype DataType) *RawTensor                   // Uniform [0, 1), floating dtypes only.
	Randn(rng *rand.Rand, shape Shape, dtype DataType) *RawTensor                  // Standard normal, floating dtypes only.
	RandInt(rng *rand.Rand, low, high int64, shape Shape, dtype DataType) *RawTensor // Uniform integers in [low, high).

	// Element-wise and manipulation operations.
	Mul(a, b *RawTensor) *RawTensor               // Element-wise multiply with broadcasting.
	Cat(tensors []*RawTensor, dim int) *RawTensor // Concatenate along dimension.
	Cast(x *RawTensor, dtype DataType) *RawTensor // Cast to different data type; float to int truncates toward zero.

	// Sparse operations.
	SparseCOO(indices, values *RawTensor, shape Shape) (*SparseTensor, error) // Assemble a COO tensor.
	Coalesce(x *SparseTensor) *SparseTensor                                   // Merge duplicate coordinates by summation.

	// Metadata.
	Name() string   // Backend name (e.g., "CPU").
	Device() Device // Device type.
}

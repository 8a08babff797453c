package cpu

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/sparsefuzz/sparsefuzz/internal/tensor"
)

// Rand creates a tensor with values uniformly distributed in [0, 1).
// Only floating-point dtypes are supported.
//
// The rng is caller-owned: the fuzzer seeds one stream per run so the same
// seed reproduces the same inputs.
func (cpu *CPUBackend) Rand(rng *rand.Rand, shape tensor.Shape, dtype tensor.DataType) *tensor.RawTensor {
	t, err := tensor.NewRaw(shape, dtype, cpu.device)
	if err != nil {
		panic(fmt.Sprintf("rand: %v", err))
	}

	switch dtype {
	case tensor.Float32:
		data := t.AsFloat32()
		for i := range data {
			data[i] = float32(rng.Float64()) //nolint:gosec // G404: benchmark inputs use seeded math/rand intentionally
		}
	case tensor.Float64:
		data := t.AsFloat64()
		for i := range data {
			data[i] = rng.Float64() //nolint:gosec // G404: benchmark inputs use seeded math/rand intentionally
		}
	default:
		panic(fmt.Sprintf("rand: unsupported dtype %s (floating-point only)", dtype))
	}
	return t
}

// Randn creates a tensor with random values from a standard normal
// distribution using the Box-Muller transform. Only floating-point dtypes
// are supported.
func (cpu *CPUBackend) Randn(rng *rand.Rand, shape tensor.Shape, dtype tensor.DataType) *tensor.RawTensor {
	t, err := tensor.NewRaw(shape, dtype, cpu.device)
	if err != nil {
		panic(fmt.Sprintf("randn: %v", err))
	}

	switch dtype {
	case tensor.Float32:
		data := t.AsFloat32()
		for i := 0; i < len(data); i += 2 {
			z0, z1 := boxMuller(rng)
			data[i] = float32(z0)
			if i+1 < len(data) {
				data[i+1] = float32(z1)
			}
		}
	case tensor.Float64:
		data := t.AsFloat64()
		for i := 0; i < len(data); i += 2 {
			z0, z1 := boxMuller(rng)
			data[i] = z0
			if i+1 < len(data) {
				data[i+1] = z1
			}
		}
	default:
		panic(fmt.Sprintf("randn: unsupported dtype %s (floating-point only)", dtype))
	}
	return t
}

// boxMuller draws two independent standard normal samples.
func boxMuller(rng *rand.Rand) (float64, float64) {
	u1 := rng.Float64() //nolint:gosec // G404: benchmark inputs use seeded math/rand intentionally
	u2 := rng.Float64() //nolint:gosec // G404: benchmark inputs use seeded math/rand intentionally
	if u1 == 0 {
		u1 = math.SmallestNonzeroFloat64
	}
	r := math.Sqrt(-2.0 * math.Log(u1))
	return r * math.Cos(2.0*math.Pi*u2), r * math.Sin(2.0*math.Pi*u2)
}

// RandInt creates a tensor with integers uniformly distributed in
// [low, high). Only integer dtypes are supported.
func (cpu *CPUBackend) RandInt(rng *rand.Rand, low, high int64, shape tensor.Shape, dtype tensor.DataType) *tensor.RawTensor {
	if low >= high {
		panic(fmt.Sprintf("randint: empty range [%d, %d)", low, high))
	}

	t, err := tensor.NewRaw(shape, dtype, cpu.device)
	if err != nil {
		panic(fmt.Sprintf("randint: %v", err))
	}

	span := high - low
	switch dtype {
	case tensor.Int32:
		data := t.AsInt32()
		for i := range data {
			data[i] = int32(low + rng.Int63n(span)) //nolint:gosec // G404,G115: seeded sampling, range validated above
		}
	case tensor.Int64:
		data := t.AsInt64()
		for i := range data {
			data[i] = low + rng.Int63n(span) //nolint:gosec // G404: seeded sampling
		}
	case tensor.Uint8:
		data := t.AsUint8()
		for i := range data {
			data[i] = uint8(low + rng.Int63n(span)) //nolint:gosec // G404,G115: seeded sampling, range validated above
		}
	default:
		panic(fmt.Sprintf("randint: unsupported dtype %s (integer only)", dtype))
	}
	return t
}

package fuzzer

import (
	"fmt"
	"math/rand"

	"github.com/sparsefuzz/sparsefuzz/internal/tensor"
)

// maxResampleAttempts caps the constraint-resampling loop so a
// misconfigured element bound surfaces as an error instead of spinning.
const maxResampleAttempts = 1000

// Config describes a fuzzing run.
type Config struct {
	Parameters []*FuzzedParameter
	Tensors    []*FuzzedSparseTensor
	Backend    tensor.Backend
	Seed       int64
}

// Step is one resolved point of the parameter space: the drawn parameters
// and the tensors (with properties) generated from them.
type Step struct {
	Params     Params
	Tensors    map[string]*tensor.SparseTensor
	Properties map[string]Properties
}

// Fuzzer walks the benchmark parameter space, drawing concrete parameters
// and materializing the described sparse tensors.
//
// A Fuzzer owns its seeded random stream: the same Config produces the same
// steps. It holds no other state across steps, so independent Fuzzers can
// run concurrently without locking.
type Fuzzer struct {
	parameters []*FuzzedParameter
	tensors    []*FuzzedSparseTensor
	backend    tensor.Backend
	rng        *rand.Rand
}

// New creates a Fuzzer from the given configuration.
func New(cfg Config) *Fuzzer {
	return &Fuzzer{
		parameters: cfg.Parameters,
		tensors:    cfg.Tensors,
		backend:    cfg.Backend,
		rng:        rand.New(rand.NewSource(cfg.Seed)), //nolint:gosec // G404: reproducible benchmark inputs
	}
}

// Take generates n fuzzing steps.
//
// A drawn parameter set that violates any tensor's element-count constraints
// is discarded and resampled; everything else fails fast with the underlying
// error.
func (f *Fuzzer) Take(n int) ([]*Step, error) {
	steps := make([]*Step, 0, n)
	for i := 0; i < n; i++ {
		step, err := f.step()
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i, err)
		}
		steps = append(steps, step)
	}
	return steps, nil
}

func (f *Fuzzer) step() (*Step, error) {
	for attempt := 0; attempt < maxResampleAttempts; attempt++ {
		params, err := f.sampleParams()
		if err != nil {
			return nil, err
		}

		ok, err := f.withinConstraints(params)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}

		step := &Step{
			Params:     params,
			Tensors:    make(map[string]*tensor.SparseTensor, len(f.tensors)),
			Properties: make(map[string]Properties, len(f.tensors)),
		}
		for _, ft := range f.tensors {
			t, props, err := ft.MakeTensor(params, f.backend, f.rng)
			if err != nil {
				return nil, err
			}
			step.Tensors[ft.Name] = t
			step.Properties[ft.Name] = props
		}
		return step, nil
	}
	return nil, fmt.Errorf("%w: no parameter sample satisfied element constraints after %d attempts",
		ErrInvalidParameters, maxResampleAttempts)
}

func (f *Fuzzer) sampleParams() (Params, error) {
	params := make(Params, len(f.parameters))
	for _, p := range f.parameters {
		v, err := p.sample(f.rng)
		if err != nil {
			return nil, err
		}
		params[p.Name] = v
	}
	return params, nil
}

// withinConstraints checks every tensor's resolved element count against its
// MinElements/MaxElements bounds.
func (f *Fuzzer) withinConstraints(params Params) (bool, error) {
	for _, ft := range f.tensors {
		size, err := ft.resolveSize(params)
		if err != nil {
			return false, err
		}
		numel := size.NumElements()
		if ft.MinElements > 0 && numel < ft.MinElements {
			return false, nil
		}
		if ft.MaxElements > 0 && numel > ft.MaxElements {
			return false, nil
		}
	}
	return true, nil
}

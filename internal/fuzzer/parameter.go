package fuzzer

import (
	"fmt"
	"math"
	"math/rand"

	"fortio.org/safecast"
)

// Distribution selects how a fuzzed parameter is sampled.
type Distribution int

// Supported parameter distributions.
const (
	Uniform    Distribution = iota // Uniform over [MinVal, MaxVal].
	LogUniform                     // Uniform in log space over [MinVal, MaxVal]; bounds must be positive.
	Choice                         // Weighted draw from Options.
)

// ChoiceOption is one candidate value for a Choice-distributed parameter.
// A zero weight means equal weighting with the other zero-weight options.
type ChoiceOption struct {
	Value  any
	Weight float64
}

// FuzzedParameter describes one dimension of the benchmark parameter space.
// The fuzzer draws a concrete value per step; tensors reference parameters
// by name for sizes, density, coalesced state and sparse dimension count.
type FuzzedParameter struct {
	Name string

	// Bounds for Uniform and LogUniform.
	MinVal float64
	MaxVal float64

	Dist    Distribution
	Options []ChoiceOption // Choice only.

	// IntValued rounds Uniform/LogUniform samples to integers. Size and
	// dimension parameters set it; density does not.
	IntValued bool
}

// sample draws one concrete value.
func (p *FuzzedParameter) sample(rng *rand.Rand) (any, error) {
	switch p.Dist {
	case Uniform:
		return p.numeric(p.MinVal + rng.Float64()*(p.MaxVal-p.MinVal))
	case LogUniform:
		if p.MinVal <= 0 || p.MaxVal <= 0 {
			return nil, fmt.Errorf("%w: parameter %q: loguniform bounds must be positive, got [%g, %g]",
				ErrInvalidParameters, p.Name, p.MinVal, p.MaxVal)
		}
		lo, hi := math.Log(p.MinVal), math.Log(p.MaxVal)
		return p.numeric(math.Exp(lo + rng.Float64()*(hi-lo)))
	case Choice:
		return p.choose(rng)
	default:
		return nil, fmt.Errorf("%w: parameter %q: unknown distribution %d", ErrInvalidParameters, p.Name, p.Dist)
	}
}

func (p *FuzzedParameter) numeric(v float64) (any, error) {
	if !p.IntValued {
		return v, nil
	}
	n, err := safecast.Convert[int](math.Round(v))
	if err != nil {
		return nil, fmt.Errorf("%w: parameter %q: %v", ErrInvalidParameters, p.Name, err)
	}
	return n, nil
}

func (p *FuzzedParameter) choose(rng *rand.Rand) (any, error) {
	if len(p.Options) == 0 {
		return nil, fmt.Errorf("%w: parameter %q: choice distribution with no options", ErrInvalidParameters, p.Name)
	}

	total := 0.0
	weighted := false
	for _, o := range p.Options {
		if o.Weight < 0 {
			return nil, fmt.Errorf("%w: parameter %q: negative weight %g", ErrInvalidParameters, p.Name, o.Weight)
		}
		if o.Weight > 0 {
			weighted = true
		}
		total += o.Weight
	}
	if !weighted {
		return p.Options[rng.Intn(len(p.Options))].Value, nil
	}

	r := rng.Float64() * total
	for _, o := range p.Options {
		r -= o.Weight
		if r < 0 {
			return o.Value, nil
		}
	}
	return p.Options[len(p.Options)-1].Value, nil
}

// Params holds one resolved draw of the parameter space.
type Params map[string]any

// Float returns a named parameter as float64.
func (p Params) Float(name string) (float64, error) {
	v, ok := p[name]
	if !ok {
		return 0, fmt.Errorf("%w: missing parameter %q", ErrInvalidParameters, name)
	}
	switch x := v.(type) {
	case float64:
		return x, nil
	case int:
		return float64(x), nil
	default:
		return 0, fmt.Errorf("%w: parameter %q is %T, not numeric", ErrInvalidParameters, name, v)
	}
}

// Int returns a named parameter as int, rounding float values and rejecting
// anything that does not fit.
func (p Params) Int(name string) (int, error) {
	v, ok := p[name]
	if !ok {
		return 0, fmt.Errorf("%w: missing parameter %q", ErrInvalidParameters, name)
	}
	switch x := v.(type) {
	case int:
		return x, nil
	case float64:
		n, err := safecast.Convert[int](math.Round(x))
		if err != nil {
			return 0, fmt.Errorf("%w: parameter %q: %v", ErrInvalidParameters, name, err)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("%w: parameter %q is %T, not numeric", ErrInvalidParameters, name, v)
	}
}

// Bool returns a named parameter as bool.
func (p Params) Bool(name string) (bool, error) {
	v, ok := p[name]
	if !ok {
		return false, fmt.Errorf("%w: missing parameter %q", ErrInvalidParameters, name)
	}
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("%w: parameter %q is %T, not bool", ErrInvalidParameters, name, v)
	}
	return b, nil
}

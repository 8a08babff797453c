// Package config loads TOML sweep configurations for the benchmark runner.
package config

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/sparsefuzz/sparsefuzz/internal/tensor"
)

// Config is a full benchmark sweep description.
type Config struct {
	Sweep  SweepConfig  `toml:"sweep"`
	Tensor TensorConfig `toml:"tensor"`
}

// SweepConfig controls how the sweep is executed.
type SweepConfig struct {
	Name      string `toml:"name"`
	Steps     int    `toml:"steps"`
	Seed      int64  `toml:"seed"`
	ReportDir string `toml:"report_dir"`
	Workers   int    `toml:"workers"`
}

// TensorConfig describes the fuzzed tensor swept over densities and
// coalesced states.
type TensorConfig struct {
	Size      []int     `toml:"size"`
	DType     string    `toml:"dtype"`
	SparseDim int       `toml:"sparse_dim"` // 0 = all dimensions sparse.
	Densities []float64 `toml:"densities"`
	Coalesced []bool    `toml:"coalesced"`
}

// Load reads, defaults and validates a sweep configuration file.
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load %q: %w", path, err)
	}
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Sweep.Name == "" {
		c.Sweep.Name = "sparse"
	}
	if c.Sweep.Steps == 0 {
		c.Sweep.Steps = 10
	}
	if c.Sweep.ReportDir == "" {
		c.Sweep.ReportDir = "report"
	}
	if c.Sweep.Workers == 0 {
		c.Sweep.Workers = 4
	}
	if c.Tensor.DType == "" {
		c.Tensor.DType = "float32"
	}
	if len(c.Tensor.Densities) == 0 {
		c.Tensor.Densities = []float64{0.1}
	}
	if len(c.Tensor.Coalesced) == 0 {
		c.Tensor.Coalesced = []bool{true, false}
	}
}

func (c *Config) validate() error {
	if c.Sweep.Steps < 1 {
		return fmt.Errorf("sweep.steps must be >= 1, got %d", c.Sweep.Steps)
	}
	if c.Sweep.Workers < 1 {
		return fmt.Errorf("sweep.workers must be >= 1, got %d", c.Sweep.Workers)
	}
	if len(c.Tensor.Size) == 0 {
		return fmt.Errorf("tensor.size must not be empty")
	}
	for i, dim := range c.Tensor.Size {
		if dim <= 0 {
			return fmt.Errorf("tensor.size[%d] must be positive, got %d", i, dim)
		}
	}
	if c.Tensor.SparseDim < 0 || c.Tensor.SparseDim > len(c.Tensor.Size) {
		return fmt.Errorf("tensor.sparse_dim %d out of range [0, %d]", c.Tensor.SparseDim, len(c.Tensor.Size))
	}
	for i, d := range c.Tensor.Densities {
		if d < 0 || d > 1 {
			return fmt.Errorf("tensor.densities[%d] must be in [0, 1], got %g", i, d)
		}
	}
	if _, err := ParseDType(c.Tensor.DType); err != nil {
		return err
	}
	return nil
}

// ParseDType maps a config dtype label to a tensor.DataType.
func ParseDType(s string) (tensor.DataType, error) {
	switch s {
	case "float32":
		return tensor.Float32, nil
	case "float64":
		return tensor.Float64, nil
	case "int32":
		return tensor.Int32, nil
	case "int64":
		return tensor.Int64, nil
	case "uint8":
		return tensor.Uint8, nil
	default:
		return 0, fmt.Errorf("unknown dtype %q", s)
	}
}

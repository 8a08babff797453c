package bench

import (
	"context"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/sparsefuzz/sparsefuzz/internal/config"
	"github.com/sparsefuzz/sparsefuzz/internal/fuzzer"
	"github.com/sparsefuzz/sparsefuzz/internal/tensor"
)

// section is one (density, coalesced) cell of the sweep grid.
type section struct {
	index     int
	density   float64
	coalesced bool
}

// Result holds the aggregated rows of a completed sweep.
type Result struct {
	Rows []Row
}

// Run executes the configured sweep against the backend.
//
// Each (density, coalesced) section runs in its own worker with an
// independently seeded Fuzzer; the generator shares no state across calls,
// so the workers need no locking. Per step it times tensor construction and,
// for uncoalesced tensors, a subsequent coalescing pass.
func Run(ctx context.Context, cfg *config.Config, b tensor.Backend) (*Result, error) {
	dtype, err := config.ParseDType(cfg.Tensor.DType)
	if err != nil {
		return nil, err
	}

	var sections []section
	for _, d := range cfg.Tensor.Densities {
		for _, c := range cfg.Tensor.Coalesced {
			sections = append(sections, section{index: len(sections), density: d, coalesced: c})
		}
	}

	rows := make([]Row, len(sections))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Sweep.Workers)

	for _, sec := range sections {
		sec := sec
		g.Go(func() error {
			row, err := runSection(ctx, cfg, b, dtype, sec)
			if err != nil {
				return err
			}
			rows[sec.index] = row
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Deterministic report order regardless of worker scheduling.
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Density != rows[j].Density {
			return rows[i].Density < rows[j].Density
		}
		return !rows[i].Coalesced && rows[j].Coalesced
	})
	return &Result{Rows: rows}, nil
}

func runSection(ctx context.Context, cfg *config.Config, b tensor.Backend, dtype tensor.DataType, sec section) (Row, error) {
	size := make([]fuzzer.Dim, len(cfg.Tensor.Size))
	for i, n := range cfg.Tensor.Size {
		size[i] = fuzzer.Lit(n)
	}

	ft := &fuzzer.FuzzedSparseTensor{
		Name:  cfg.Sweep.Name,
		Size:  size,
		DType: dtype,
	}
	params := []*fuzzer.FuzzedParameter{
		{Name: "density", Dist: fuzzer.Choice, Options: []fuzzer.ChoiceOption{{Value: sec.density}}},
		{Name: "coalesced", Dist: fuzzer.Choice, Options: []fuzzer.ChoiceOption{{Value: sec.coalesced}}},
	}
	if cfg.Tensor.SparseDim > 0 {
		ft.SparseDim = "sparse_dim"
		params = append(params, &fuzzer.FuzzedParameter{
			Name: "sparse_dim", Dist: fuzzer.Choice,
			Options: []fuzzer.ChoiceOption{{Value: cfg.Tensor.SparseDim}},
		})
	}

	fz := fuzzer.New(fuzzer.Config{
		Parameters: params,
		Tensors:    []*fuzzer.FuzzedSparseTensor{ft},
		Backend:    b,
		Seed:       cfg.Sweep.Seed + int64(sec.index),
	})

	buildTimes := make([]time.Duration, 0, cfg.Sweep.Steps)
	coalesceTimes := make([]time.Duration, 0, cfg.Sweep.Steps)
	var totalNNZ int

	for i := 0; i < cfg.Sweep.Steps; i++ {
		if err := ctx.Err(); err != nil {
			return Row{}, err
		}

		start := time.Now()
		steps, err := fz.Take(1)
		if err != nil {
			return Row{}, err
		}
		buildTimes = append(buildTimes, time.Since(start))

		x := steps[0].Tensors[cfg.Sweep.Name]
		totalNNZ += x.NNZ()

		if !x.IsCoalesced() {
			start = time.Now()
			b.Coalesce(x)
			coalesceTimes = append(coalesceTimes, time.Since(start))
		}
	}

	return Row{
		Sweep:     cfg.Sweep.Name,
		Density:   sec.density,
		Coalesced: sec.coalesced,
		Steps:     cfg.Sweep.Steps,
		MeanNNZ:   float64(totalNNZ) / float64(cfg.Sweep.Steps),
		Build:     StatsFromDurations(buildTimes),
		Coalesce:  StatsFromDurations(coalesceTimes),
	}, nil
}

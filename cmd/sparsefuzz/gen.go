package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/sparsefuzz/sparsefuzz/internal/backend/cpu"
	"github.com/sparsefuzz/sparsefuzz/internal/config"
	"github.com/sparsefuzz/sparsefuzz/internal/fuzzer"
)

var genFlags struct {
	size      []int
	density   float64
	coalesced bool
	sparseDim int
	dtype     string
	seed      int64
}

var genCmd = &cobra.Command{
	Use:   "gen",
	Short: "Generate one fuzzed sparse tensor and print its properties",
	RunE:  runGen,
}

func init() {
	genCmd.Flags().IntSliceVar(&genFlags.size, "size", []int{64, 64}, "tensor shape")
	genCmd.Flags().Float64Var(&genFlags.density, "density", 0.1, "fraction of sum(shape) stored as entries")
	genCmd.Flags().BoolVar(&genFlags.coalesced, "coalesced", true, "coalesce the generated tensor")
	genCmd.Flags().IntVar(&genFlags.sparseDim, "sparse-dim", 0, "number of sparse dimensions (0 = all)")
	genCmd.Flags().StringVar(&genFlags.dtype, "dtype", "float32", "value dtype (float32|float64|int32|int64|uint8)")
	genCmd.Flags().Int64Var(&genFlags.seed, "seed", 42, "random seed")
}

func runGen(_ *cobra.Command, _ []string) error {
	dtype, err := config.ParseDType(genFlags.dtype)
	if err != nil {
		return err
	}

	size := make([]fuzzer.Dim, len(genFlags.size))
	for i, n := range genFlags.size {
		size[i] = fuzzer.Lit(n)
	}

	ft := &fuzzer.FuzzedSparseTensor{Name: "x", Size: size, DType: dtype}
	params := []*fuzzer.FuzzedParameter{
		{Name: "density", Dist: fuzzer.Choice, Options: []fuzzer.ChoiceOption{{Value: genFlags.density}}},
		{Name: "coalesced", Dist: fuzzer.Choice, Options: []fuzzer.ChoiceOption{{Value: genFlags.coalesced}}},
	}
	if genFlags.sparseDim > 0 {
		ft.SparseDim = "sparse_dim"
		params = append(params, &fuzzer.FuzzedParameter{
			Name: "sparse_dim", Dist: fuzzer.Choice,
			Options: []fuzzer.ChoiceOption{{Value: genFlags.sparseDim}},
		})
	}

	fz := fuzzer.New(fuzzer.Config{
		Parameters: params,
		Tensors:    []*fuzzer.FuzzedSparseTensor{ft},
		Backend:    cpu.New(),
		Seed:       genFlags.seed,
	})
	steps, err := fz.Take(1)
	if err != nil {
		return err
	}

	x := steps[0].Tensors["x"]
	props := steps[0].Properties["x"]

	header := color.New(color.FgCyan, color.Bold)
	header.Println(x.String())
	fmt.Printf("  numel:      %d\n", props.Numel)
	fmt.Printf("  nnz:        %d\n", x.NNZ())
	fmt.Printf("  density:    %g\n", props.Density)
	fmt.Printf("  sparsity:   %g\n", props.Sparsity)
	fmt.Printf("  sparse dim: %d\n", props.SparseDim)
	fmt.Printf("  dense dim:  %d\n", props.DenseDim)
	fmt.Printf("  hybrid:     %t\n", props.IsHybrid)
	fmt.Printf("  coalesced:  %t\n", props.IsCoalesced)
	fmt.Printf("  dtype:      %s\n", props.DType)
	return nil
}

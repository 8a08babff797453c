package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/sparsefuzz/sparsefuzz/internal/backend/cpu"
	"github.com/sparsefuzz/sparsefuzz/internal/bench"
	"github.com/sparsefuzz/sparsefuzz/internal/config"
)

var benchCmd = &cobra.Command{
	Use:   "bench <config.toml>",
	Short: "Run a fuzzed sparse tensor sweep and write CSV/JSON reports",
	Args:  cobra.ExactArgs(1),
	RunE:  runBench,
}

func runBench(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(args[0])
	if err != nil {
		return err
	}

	result, err := bench.Run(cmd.Context(), cfg, cpu.New())
	if err != nil {
		return err
	}

	header := color.New(color.FgCyan, color.Bold)
	header.Printf("sweep %q: %d steps per section, seed %d\n", cfg.Sweep.Name, cfg.Sweep.Steps, cfg.Sweep.Seed)
	fmt.Printf("%-10s %-10s %12s %12s %14s\n", "density", "coalesced", "mean nnz", "build p50", "coalesce p50")
	for _, r := range result.Rows {
		fmt.Printf("%-10g %-10t %12.1f %10.3fms %12.3fms\n",
			r.Density, r.Coalesced, r.MeanNNZ, r.Build.P50Ms, r.Coalesce.P50Ms)
	}

	csvPath := bench.ReportPath(cfg.Sweep.ReportDir, cfg.Sweep.Name, "csv")
	if err := bench.WriteCSV(result.Rows, csvPath); err != nil {
		return err
	}
	jsonPath := bench.ReportPath(cfg.Sweep.ReportDir, cfg.Sweep.Name, "json")
	if err := bench.WriteJSON(result, jsonPath); err != nil {
		return err
	}

	color.Green("reports written to %s and %s", csvPath, jsonPath)
	return nil
}

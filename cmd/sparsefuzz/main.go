// Package main provides the sparsefuzz CLI.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "sparsefuzz",
	Short: "Randomized sparse tensor generation for operator benchmarking",
	Long:  `sparsefuzz generates COO sparse tensors with controllable size, density and coalescing state, and sweeps them through a benchmarking harness.`,
}

func main() {
	rootCmd.Version = version

	rootCmd.AddCommand(genCmd)
	rootCmd.AddCommand(benchCmd)
	rootCmd.AddCommand(versionCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

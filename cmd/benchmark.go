package cmd

import (
	"github.com/repograde/repograde/core"
	"github.com/repograde/repograde/internal/contract"
	"github.com/spf13/cobra"
)

// benchmarkCmd builds descriptive statistics over a repository population.
var benchmarkCmd = &cobra.Command{
	Use:   "benchmark <repo-path>...",
	Short: "Build descriptive statistics over a repository population.",
	Long: `Assess the given repositories and print descriptive statistics over their
scores: mean, median, standard deviation, min, max, and percentiles.

Statistics cover the overall score plus every attribute that produced at
least one scored result. Use the snapshot as a baseline to judge individual
repositories against your organization's norm.

Examples:
  # Benchmark all repositories in a workspace
  repograde benchmark ~/src/*

  # Persist the snapshot for later comparison
  repograde benchmark ~/src/* --output json --output-file baseline.json`,
	Args:    cobra.MinimumNArgs(1),
	PreRunE: sharedSetupNoRepoWrapper,
	Run: func(_ *cobra.Command, args []string) {
		if err := core.ExecuteBenchmark(rootCtx, cfg, storeManager, args); err != nil {
			contract.LogFatal("Cannot run benchmark", err)
		}
	},
}

package cmd

import (
	"github.com/repograde/repograde/core"
	"github.com/repograde/repograde/internal/contract"
	"github.com/spf13/cobra"
)

// batchCmd assesses multiple repositories and ranks them.
var batchCmd = &cobra.Command{
	Use:   "batch <repo-path>...",
	Short: "Assess multiple repositories and rank them against each other.",
	Long: `Assess every given repository with the same catalog and configuration,
then print a population ranking.

Repositories are assessed concurrently. Each one gets an overall score, a
certification tier, a rank, and a percentile relative to the population.
Repositories with equal scores share a rank.

Examples:
  # Rank all projects in a workspace
  repograde batch ~/src/api ~/src/web ~/src/tools

  # Export the full ranking with per-attribute breakdowns
  repograde batch ~/src/* --output csv --output-file ranking.csv`,
	Args:    cobra.MinimumNArgs(1),
	PreRunE: sharedSetupNoRepoWrapper,
	Run: func(_ *cobra.Command, args []string) {
		if err := core.ExecuteBatch(rootCtx, cfg, storeManager, args); err != nil {
			contract.LogFatal("Cannot run batch assessment", err)
		}
	},
}

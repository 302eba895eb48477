package cmd

import (
	"github.com/repograde/repograde/core"
	"github.com/repograde/repograde/internal/contract"
	"github.com/spf13/cobra"
)

// catalogCmd lists the attribute catalog without running any checks.
var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List the attribute catalog used for assessments.",
	Long: `Print the attribute catalog: every check's ID, name, category, tier, and
default weight.

Pass --catalog to inspect a custom catalog file instead of the built-in one.
Useful for reviewing what an assessment will measure before running it.

Examples:
  # Show the built-in catalog
  repograde catalog

  # Validate and show a custom catalog
  repograde catalog --catalog team-catalog.yaml`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteCatalog(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Cannot list catalog", err)
		}
	},
}

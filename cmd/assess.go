package cmd

import (
	"github.com/repograde/repograde/core"
	"github.com/repograde/repograde/internal/contract"
	"github.com/spf13/cobra"
)

// assessCmd performs a single-repository assessment.
var assessCmd = &cobra.Command{
	Use:   "assess [repo-path]",
	Short: "Assess a repository and print its scored report card.",
	Long: `Run every applicable check from the attribute catalog against a repository
and print the resulting report card.

Each check produces a status, a 0-100 score, and evidence explaining the
result. Scores roll up into a weighted overall score and a certification tier
(Platinum, Gold, Silver, Bronze, or Needs Improvement).

Checks that crash, time out, or fail their gate never abort the run; they are
recorded with an error status and excluded from scoring.

Examples:
  # Assess the current directory
  repograde assess

  # Assess a specific repository
  repograde assess ~/src/myproject

  # Retune weights and exclusions via config file, export as JSON
  repograde assess --output json --output-file report.json

  # Drop specific attributes from scoring
  repograde assess --exclude has_changelog,has_editorconfig`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteAssess(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Cannot run assessment", err)
		}
	},
}

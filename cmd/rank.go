package cmd

import (
	"github.com/repograde/repograde/core"
	"github.com/repograde/repograde/internal/contract"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// rankCmd shows the best or worst repositories of a population.
var rankCmd = &cobra.Command{
	Use:   "rank <repo-path>...",
	Short: "Show the best or worst repositories of a population.",
	Long: `Assess the given repositories and print a cut of the resulting ranking.

Use --top to focus on the strongest repositories or --bottom to surface the
ones that need the most attention. The two flags are mutually exclusive;
without either, the full ranking is printed.

Examples:
  # Show the three strongest repositories
  repograde rank --top 3 ~/src/*

  # Find the repositories that need work
  repograde rank --bottom 5 ~/src/*`,
	Args:    cobra.MinimumNArgs(1),
	PreRunE: sharedSetupNoRepoWrapper,
	Run: func(_ *cobra.Command, args []string) {
		top := viper.GetInt("top")
		bottom := viper.GetInt("bottom")
		if err := core.ExecuteRank(rootCtx, cfg, storeManager, args, top, bottom); err != nil {
			contract.LogFatal("Cannot run ranking", err)
		}
	},
}

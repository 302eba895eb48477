// Package cmd defines the command-line interface for repograde.
package cmd

import (
	"github.com/repograde/repograde/internal/contract"
	"github.com/repograde/repograde/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(assessCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(rankCmd)
	rootCmd.AddCommand(benchmarkCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(resultsCmd)

	// Add the results subcommands to the parent results command
	resultsCmd.AddCommand(resultsStatusCmd)
	resultsCmd.AddCommand(resultsClearCmd)
	resultsCmd.AddCommand(resultsExportCmd)
	resultsCmd.AddCommand(resultsMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("catalog", "", "Path to a custom attribute catalog YAML file")
	rootCmd.PersistentFlags().String("check-timeout", "", "Per-check timeout as a Go duration (default 30s)")
	rootCmd.PersistentFlags().String("exclude", "", "Comma-separated list of attribute IDs to exclude from scoring")
	rootCmd.PersistentFlags().IntP("limit", "l", contract.DefaultResultLimit, "Number of stored runs to display")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().String("profile", "", "Enable profiling and write profiles to files with this prefix")
	rootCmd.PersistentFlags().Int("workers", contract.DefaultWorkers, "Number of concurrent workers")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("store-backend", string(schema.SQLiteBackend), "Result store backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("store-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("emoji", "yes", "Enable emojis in output headers (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored tier labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of rankCmd to Viper
	rankCmd.Flags().Int("top", 0, "Show only the N best-ranked repositories")
	rankCmd.Flags().Int("bottom", 0, "Show only the N worst-ranked repositories")
	if err := viper.BindPFlags(rankCmd.Flags()); err != nil {
		contract.LogFatal("Error binding rank flags", err)
	}

	// Bind all flags of resultsMigrateCmd to Viper
	resultsMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(resultsMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding results migrate flags", err)
	}
}

package cmd

import (
	"errors"
	"fmt"

	"github.com/repograde/repograde/internal/contract"
	"github.com/repograde/repograde/internal/resultstore"
	"github.com/repograde/repograde/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// resultsSetup loads minimal configuration needed for result store operations.
// This is used by commands that need store access without full shared setup.
func resultsSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	// Get store-related config values
	backend := schema.DatabaseBackend(viper.GetString("store-backend"))
	connStr := viper.GetString("store-db-connect")

	// Basic validation for database backends
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	// Get output-related config values (used by export command)
	outputFile := viper.GetString("output-file")

	// Initialize the store with the loaded config
	if err := resultstore.InitStores(backend, connStr); err != nil {
		return fmt.Errorf("failed to initialize result store: %w", err)
	}

	cfg.StoreBackend = backend
	cfg.StoreDBConnect = connStr
	cfg.OutputFile = outputFile

	return nil
}

// resultsSetupWrapper wraps resultsSetup to provide PreRunE for results commands.
func resultsSetupWrapper(_ *cobra.Command, _ []string) error {
	return resultsSetup()
}

// resultsMigrateSetup loads minimal configuration needed for migrate operations.
// This is a specialized setup that does NOT initialize stores or create tables,
// allowing migrations to run on a fresh database.
func resultsMigrateSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	// Get store-related config values
	backend := schema.DatabaseBackend(viper.GetString("store-backend"))
	connStr := viper.GetString("store-db-connect")

	// Basic validation for database backends
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	// For SQLite backend with empty connection string, use default path
	if backend == schema.SQLiteBackend && connStr == "" {
		connStr = contract.GetResultsDBFilePath()
	}

	cfg.StoreBackend = backend
	cfg.StoreDBConnect = connStr

	return nil
}

// resultsMigrateSetupWrapper wraps resultsMigrateSetup to provide PreRunE for migrate command.
func resultsMigrateSetupWrapper(_ *cobra.Command, _ []string) error {
	return resultsMigrateSetup()
}

// resultsCmd focused on assessment run management.
//
// Note: Results subcommands use minimal initialization (resultsSetup) instead of
// the full sharedSetup used by assessment commands. This avoids repo validation
// and complex config processing for simple store operations.
var resultsCmd = &cobra.Command{
	Use:   "results",
	Short: "Manage stored assessment runs and exports",
	Long: `Manage the assessment history stored by repograde.

When enabled, repograde persists every assessment run, storing:
- Run metadata (timestamp, duration, overall score, tier)
- Per-attribute check records with statuses and evidence

This enables longitudinal tracking, trend detection, and data export for BI tools.

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (disabled)

Subcommands:
  status  - Show result store statistics
  export  - Export data to Parquet for analytics
  clear   - Remove all stored runs
  migrate - Run database schema migrations

Examples:
  # Check store status
  repograde results status

  # Export for analysis in pandas/DuckDB
  repograde results export --output-file assessment-data`,
}

// resultsClearCmd clears the stored runs.
var resultsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all stored assessment runs",
	Long: `Delete all stored assessment runs and their check records.

WARNING: This action cannot be undone. Consider exporting data first.

Use this when:
- Resetting assessment history
- Database storage is full
- Testing persistence features

Examples:
  # Export before clearing
  repograde results export --output-file backup
  repograde results clear`,
	PreRunE: resultsSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := resultstore.ClearResults(cfg.StoreBackend, contract.GetResultsDBFilePath(), cfg.StoreDBConnect); err != nil {
			contract.LogFatal("Failed to clear assessment runs", err)
		}
		fmt.Println("Assessment runs cleared successfully.")
	},
}

// resultsStatusCmd shows result store status.
var resultsStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display result store statistics and connection details",
	Long: `Show detailed information about stored assessment runs.

Displays:
- Backend type and location
- Total number of runs and check records stored
- Last assessment run timestamp

Use this to:
- Verify persistence is enabled and working
- Monitor data accumulation over time
- Check database connection health

Examples:
  # Check result store status
  repograde results status`,
	PreRunE: resultsSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		store := resultstore.Manager.GetResultStore()
		if store == nil {
			contract.LogFatal("Failed to get store status", errors.New("result store is not configured"))
		}
		status, err := store.GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get store status", err)
		}
		resultstore.PrintStatus(status)
	},
}

// resultsExportCmd exports stored runs to Parquet files.
var resultsExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export stored runs to Parquet for BI tools and analytics",
	Long: `Export all stored assessment data to Parquet format for use with analytics tools.

Exports two datasets:
- Runs - metadata about each assessment execution
- Records - per-attribute check results with scores and evidence

Parquet format enables:
- Fast querying with DuckDB, Apache Spark, pandas
- Efficient storage with columnar compression
- Direct import into BI tools (Tableau, Metabase, etc.)

Requires: --output-file parameter

Examples:
  # Export all data
  repograde results export --output-file repograde-data

  # Use with DuckDB for analysis
  repograde results export --output-file data
  duckdb -c "SELECT * FROM read_parquet('data.runs.parquet') LIMIT 10"`,
	PreRunE: resultsSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := resultstore.ExecuteExport(cfg.OutputFile); err != nil {
			contract.LogFatal("Failed to export assessment data", err)
		}
	},
}

// resultsMigrateCmd runs database migrations for the result store.
var resultsMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the result store.

Migrations allow:
- Upgrading to new schema versions when repograde is updated
- Safely modifying database structure without data loss
- Rolling back schema changes if needed

By default, migrates to the latest version. Use --target-version for specific versions.

Examples:
  # Migrate to latest version (default)
  repograde results migrate

  # Migrate to specific version
  repograde results migrate --target-version 1

  # Rollback to initial state
  repograde results migrate --target-version 0`,
	PreRunE: resultsMigrateSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := resultstore.Migrate(cfg.StoreBackend, cfg.StoreDBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}

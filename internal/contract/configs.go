package contract

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/repograde/repograde/schema"
)

// Default values for configuration.
const (
	DefaultResultLimit  = 25
	MaxResultLimit      = 1000
	DefaultPrecision    = 1
	DefaultCheckTimeout = 30 * time.Second
)

// DefaultWorkers is the default number of concurrent workers to use.
var DefaultWorkers = runtime.GOMAXPROCS(0)

// DateTimeFormat is the default date time representation.
var DateTimeFormat = time.RFC3339

// ProfileConfig holds profiling settings.
type ProfileConfig struct {
	Enabled bool
	Prefix  string
}

// Config holds the runtime configuration for assessments.
// This struct is the final, validated config.
type Config struct {
	RepoPath     string
	ResultLimit  int
	Workers      int
	CheckTimeout time.Duration
	Precision    int
	Output       schema.OutputMode
	OutputFile   string
	Width        int // Terminal width override (0 = auto-detect)

	CatalogPath string

	StoreBackend   schema.DatabaseBackend
	StoreDBConnect string // Please use env var as this is plaintext

	// Weights maps attribute IDs to override weights. Overrides above 1.0
	// are allowed to boost an attribute beyond its catalog default.
	Weights map[string]float64

	// Excluded is the set of attribute IDs removed from scoring entirely.
	Excluded map[string]struct{}

	UseEmojis bool // Enable emojis in output headers
	UseColors bool // Enable colored tier labels in table output
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	RepoPathStr string

	// --- Fields from rootCmd.PersistentFlags() ---
	Limit          int    `mapstructure:"limit"`
	Workers        int    `mapstructure:"workers"`
	CheckTimeout   string `mapstructure:"check-timeout"`
	Precision      int    `mapstructure:"precision"`
	Output         string `mapstructure:"output"`
	OutputFile     string `mapstructure:"output-file"`
	Width          int    `mapstructure:"width"`
	Exclude        string `mapstructure:"exclude"`
	Catalog        string `mapstructure:"catalog"`
	StoreBackend   string `mapstructure:"store-backend"`
	StoreDBConnect string `mapstructure:"store-db-connect"`
	Emoji          string `mapstructure:"emoji"`
	Color          string `mapstructure:"color"`

	// --- Weight overrides from config file ---
	Weights map[string]float64 `mapstructure:"weights"`

	// --- Excluded attributes from config file ---
	ExcludedList []string `mapstructure:"excluded"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	if c.Weights != nil {
		clone.Weights = make(map[string]float64, len(c.Weights))
		for k, v := range c.Weights {
			clone.Weights[k] = v
		}
	}
	if c.Excluded != nil {
		clone.Excluded = make(map[string]struct{}, len(c.Excluded))
		for k := range c.Excluded {
			clone.Excluded[k] = struct{}{}
		}
	}
	return &clone
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processWeightOverrides(cfg, input); err != nil {
		return err
	}
	if err := processExclusions(cfg, input); err != nil {
		return err
	}
	return resolveRepoPath(cfg, input)
}

// validateSimpleInputs processes and validates all non-weight fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width
	cfg.CatalogPath = input.Catalog

	// Parse emoji flag
	emojis, err := ParseBoolString(input.Emoji)
	if err != nil {
		return fmt.Errorf("invalid --emoji value: %w", err)
	}
	cfg.UseEmojis = emojis

	// Parse color flag
	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	// --- 1. ResultLimit Validation ---
	if input.Limit <= 0 || input.Limit > MaxResultLimit {
		return fmt.Errorf("limit must be greater than 0 and cannot exceed %d (received %d)", MaxResultLimit, input.Limit)
	}
	cfg.ResultLimit = input.Limit

	// --- 2. Workers Validation ---
	if input.Workers <= 0 {
		return fmt.Errorf("workers must be greater than 0 (received %d)", input.Workers)
	}
	cfg.Workers = input.Workers

	// --- 3. Check Timeout Validation ---
	cfg.CheckTimeout = DefaultCheckTimeout
	if input.CheckTimeout != "" {
		timeout, err := time.ParseDuration(input.CheckTimeout)
		if err != nil {
			return fmt.Errorf("invalid check-timeout '%s': %w", input.CheckTimeout, err)
		}
		if timeout <= 0 {
			return fmt.Errorf("check-timeout must be positive (received %s)", timeout)
		}
		cfg.CheckTimeout = timeout
	}

	// --- 4. Precision and Output Validation ---
	if input.Precision < 1 || input.Precision > 2 {
		return fmt.Errorf("precision must be 1 or 2 (received %d)", input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", cfg.Output)
	}

	// --- 5. Store Backend Validation ---
	cfg.StoreBackend = schema.DatabaseBackend(strings.ToLower(input.StoreBackend))
	if _, ok := schema.ValidDatabaseBackends[cfg.StoreBackend]; !ok {
		return fmt.Errorf("invalid store backend '%s'. must be sqlite, mysql, postgresql, none", input.StoreBackend)
	}
	cfg.StoreDBConnect = input.StoreDBConnect
	if err := ValidateDatabaseConnectionString(cfg.StoreBackend, cfg.StoreDBConnect); err != nil {
		return err
	}

	return nil
}

// processWeightOverrides validates the weight override map from the config
// file. Malformed weights are a config defect and fail the run up front.
func processWeightOverrides(cfg *Config, input *ConfigRawInput) error {
	if err := ValidateWeights(input.Weights); err != nil {
		return err
	}
	cfg.Weights = input.Weights
	return nil
}

// ValidateWeights rejects non-positive or non-finite weight overrides.
// Overrides above 1.0 are allowed to boost an attribute.
func ValidateWeights(weights map[string]float64) error {
	for id, w := range weights {
		if math.IsNaN(w) || math.IsInf(w, 0) {
			return fmt.Errorf("weight override for %q is not a finite number", id)
		}
		if w <= 0 {
			return fmt.Errorf("weight override for %q must be greater than 0 (received %.3f)", id, w)
		}
	}
	return nil
}

// processExclusions merges the config-file list and the comma-separated flag
// into the final excluded set.
func processExclusions(cfg *Config, input *ConfigRawInput) error {
	cfg.Excluded = make(map[string]struct{})
	for _, id := range input.ExcludedList {
		id = strings.TrimSpace(id)
		if id != "" {
			cfg.Excluded[id] = struct{}{}
		}
	}
	if input.Exclude != "" {
		parts := strings.SplitSeq(input.Exclude, ",")
		for p := range parts {
			trimmedP := strings.TrimSpace(p)
			if trimmedP != "" {
				cfg.Excluded[trimmedP] = struct{}{}
			}
		}
	}
	return nil
}

// resolveRepoPath resolves the repository path to an absolute directory.
func resolveRepoPath(cfg *Config, input *ConfigRawInput) error {
	searchPath := input.RepoPathStr
	if searchPath == "" {
		searchPath = "."
	}

	absSearchPath, err := filepath.Abs(searchPath)
	if err != nil {
		return err
	}
	absSearchPath = filepath.Clean(absSearchPath)

	info, err := os.Stat(absSearchPath)
	if err != nil {
		return fmt.Errorf("repository path %q is not accessible: %w", absSearchPath, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("repository path %q is not a directory", absSearchPath)
	}

	cfg.RepoPath = absSearchPath
	return nil
}

// ValidateDatabaseConnectionString validates the format of database connection
// strings for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("store-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("store-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// ProcessProfilingConfig handles the profiling flag and sets up profiling configuration.
func ProcessProfilingConfig(profile *ProfileConfig, profilePrefix string) error {
	if profilePrefix != "" {
		profile.Enabled = true
		profile.Prefix = profilePrefix
	}
	return nil
}

// GetResultsDBFilePath returns the path to the SQLite DB file for result storage.
func GetResultsDBFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "repograde-results.db"
	}
	dir := filepath.Join(home, ".repograde")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "repograde-results.db"
	}
	return filepath.Join(dir, "results.db")
}

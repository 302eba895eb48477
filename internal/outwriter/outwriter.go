// Package outwriter has output and writer logic.
package outwriter

import (
	"fmt"

	"github.com/repograde/repograde/internal/contract"
	"github.com/repograde/repograde/schema"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteRun prints a single assessment run using the configured output format.
func (ow *OutWriter) WriteRun(run *schema.RunResult, cfg *contract.Config) error {
	return WriteRun(run, cfg)
}

// WriteRankings prints population ranking entries using the configured output format.
func (ow *OutWriter) WriteRankings(entries []schema.RankingEntry, cfg *contract.Config) error {
	return WriteRankings(entries, cfg)
}

// WriteBenchmark prints a benchmark snapshot using the configured output format.
func (ow *OutWriter) WriteBenchmark(snapshot *schema.BenchmarkSnapshot, cfg *contract.Config) error {
	return WriteBenchmark(snapshot, cfg)
}

// WriteCatalog prints the attribute catalog using the configured output format.
func (ow *OutWriter) WriteCatalog(attrs schema.AttributeIndex, cfg *contract.Config) error {
	return WriteCatalog(attrs, cfg)
}

// errParquetUnsupported builds the error for surfaces without a parquet shape.
func errParquetUnsupported(what string) error {
	return fmt.Errorf("parquet output is not supported for %s; use text, csv or json", what)
}

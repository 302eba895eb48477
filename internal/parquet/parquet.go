// Package parquet exports stored assessment runs to Parquet files using
// github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/repograde/repograde/schema"
)

// RunRow represents one assessment run.
// This struct maps to the repograde_runs database table.
type RunRow struct {
	// RunID is the unique identifier for this run
	RunID string `parquet:"run_id,snappy"`

	// RepoName is the name of the assessed repository
	RepoName string `parquet:"repo_name,snappy"`

	// StartedAt is when the run began
	StartedAt time.Time `parquet:"started_at,snappy"`

	// DurationMs is the wall-clock duration of the run in milliseconds
	DurationMs int64 `parquet:"duration_ms,snappy"`

	// Overall is the weighted overall score, 0-100
	Overall float64 `parquet:"overall,snappy"`

	// Tier is the certification tier derived from the overall score
	Tier string `parquet:"tier,snappy"`

	// Assessed is the count of records with status pass or fail
	Assessed int32 `parquet:"assessed,snappy"`

	// Skipped is the count of records with status skipped
	Skipped int32 `parquet:"skipped,snappy"`

	// Total is the total record count for the run
	Total int32 `parquet:"total,snappy"`
}

// RecordRow represents one check record within a run.
// This struct maps to the repograde_records database table.
type RecordRow struct {
	// RunID references the parent run
	RunID string `parquet:"run_id,snappy"`

	// AttributeID is the catalog identifier of the check
	AttributeID string `parquet:"attribute_id,snappy"`

	// Name is the display name of the attribute
	Name string `parquet:"name,snappy"`

	// Category is the attribute's grouping bucket
	Category string `parquet:"category,snappy"`

	// Tier is the attribute's priority bucket
	Tier int32 `parquet:"tier,snappy"`

	// Weight is the default scoring weight carried on the record
	Weight float64 `parquet:"weight,snappy"`

	// Status is the terminal status of the check
	Status string `parquet:"status,snappy"`

	// Score is the 0-100 score; only meaningful for pass/fail records
	Score float64 `parquet:"score,snappy"`

	// Evidence is the free-text evidence captured by the check (nullable)
	Evidence *string `parquet:"evidence,optional,snappy"`
}

// RunRowFromSummary converts a stored run summary to its export row.
func RunRowFromSummary(s schema.RunSummary) RunRow {
	return RunRow{
		RunID:      s.RunID,
		RepoName:   s.Repo,
		StartedAt:  s.StartedAt,
		DurationMs: s.DurationMs,
		Overall:    s.Overall,
		Tier:       s.Tier,
		Assessed:   int32(s.Assessed),
		Skipped:    int32(s.Skipped),
		Total:      int32(s.Total),
	}
}

// RecordRowFromRecord converts a stored record to its export row.
func RecordRowFromRecord(runID string, rec schema.ResultRecord) RecordRow {
	row := RecordRow{
		RunID:       runID,
		AttributeID: rec.AttributeID,
		Name:        rec.Name,
		Category:    rec.Category,
		Tier:        int32(rec.Tier),
		Weight:      rec.Weight,
		Status:      string(rec.Status),
		Score:       rec.Score,
	}
	if rec.Evidence != "" {
		evidence := rec.Evidence
		row.Evidence = &evidence
	}
	return row
}

// WriteRunsParquet writes a slice of RunRow structs to a Parquet file.
func WriteRunsParquet(data []RunRow, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// The schema is derived from the RunRow struct tags
	writer := parquet.NewGenericWriter[RunRow](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	return nil
}

// WriteRecordsParquet writes a slice of RecordRow structs to a Parquet file.
func WriteRecordsParquet(data []RecordRow, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// The schema is derived from the RecordRow struct tags
	writer := parquet.NewGenericWriter[RecordRow](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	return nil
}

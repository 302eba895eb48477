package resultstore

import (
	"errors"
	"fmt"

	"github.com/repograde/repograde/internal/parquet"
)

// ExecuteExport exports all stored runs and records to Parquet files.
func ExecuteExport(outputFile string) error {
	// Validate that output file is specified
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}

	store := Manager.GetResultStore()
	if store == nil {
		return errors.New("result store is not configured")
	}

	// Check if there's any data to export
	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get store status: %w", err)
	}
	if status.RunCount == 0 {
		return errors.New("no assessment runs found to export")
	}

	fmt.Printf("Exporting data from %s backend...\n", status.Backend)
	fmt.Printf("Total assessment runs: %d\n", status.RunCount)
	fmt.Printf("Total check records: %d\n", status.RecordCount)

	// Retrieve every stored run
	summaries, err := store.ListRuns(status.RunCount)
	if err != nil {
		return fmt.Errorf("failed to retrieve runs: %w", err)
	}

	runRows := make([]parquet.RunRow, 0, len(summaries))
	var recordRows []parquet.RecordRow
	for _, summary := range summaries {
		runRows = append(runRows, parquet.RunRowFromSummary(summary))

		records, err := store.ListRecords(summary.RunID)
		if err != nil {
			return fmt.Errorf("failed to retrieve records for run %s: %w", summary.RunID, err)
		}
		for _, rec := range records {
			recordRows = append(recordRows, parquet.RecordRowFromRecord(summary.RunID, rec))
		}
	}

	// Write runs to Parquet
	runsFile := outputFile + ".runs.parquet"
	if err := parquet.WriteRunsParquet(runRows, runsFile); err != nil {
		return fmt.Errorf("failed to write runs: %w", err)
	}
	fmt.Printf("Exported %d runs to: %s\n", len(runRows), runsFile)

	// Write records to Parquet
	recordsFile := outputFile + ".records.parquet"
	if err := parquet.WriteRecordsParquet(recordRows, recordsFile); err != nil {
		return fmt.Errorf("failed to write records: %w", err)
	}
	fmt.Printf("Exported %d records to: %s\n", len(recordRows), recordsFile)

	fmt.Println("Export completed successfully.")
	return nil
}

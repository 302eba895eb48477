// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"

	"github.com/repograde/repograde/schema"
)

// Outcome is what a check reports back on a normal return.
// Score must be within [0, 100]; values outside the range are a contract
// violation and get clamped by the runner with a logged warning.
type Outcome struct {
	Status   schema.Status
	Score    float64
	Evidence string
}

// Check is a single named, tiered unit of evaluation. Implementations are
// black boxes to the engine; the runner only relies on this capability set.
// A check must not retain or mutate the Repository it receives.
type Check interface {
	// AttributeID returns the catalog identifier this check evaluates.
	AttributeID() string

	// Tier returns the priority bucket (1 = essential ... 4 = advanced).
	Tier() int

	// IsApplicable reports whether the check makes sense for the repository,
	// typically based on detected languages. Gate errors never abort a run;
	// the runner converts them into an error record.
	IsApplicable(repo schema.Repository) (bool, error)

	// Assess evaluates the repository and returns an outcome. A missing
	// external tool must be reported via a CheckError with ErrKindMissingTool
	// so the runner can record it as skipped rather than failed.
	Assess(ctx context.Context, repo schema.Repository) (Outcome, error)
}

// ResultStore defines the interface for persisting assessment runs.
// This allows the storage layer to be mocked for testing.
type ResultStore interface {
	// SaveRun persists a run and all of its records atomically.
	SaveRun(run *schema.RunResult) error

	// ListRuns returns the most recent run summaries, newest first.
	ListRuns(limit int) ([]schema.RunSummary, error)

	// ListRecords returns all records for a run, in stored order.
	ListRecords(runID string) ([]schema.ResultRecord, error)

	// GetStatus returns status information about the store.
	GetStatus() (schema.StoreStatus, error)

	// Clear removes all stored runs and records.
	Clear() error

	// Close closes the underlying connection.
	Close() error
}

// StoreManager defines the interface for accessing result stores.
type StoreManager interface {
	GetResultStore() ResultStore
}

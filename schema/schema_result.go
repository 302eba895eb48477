package schema

import "time"

// ResultRecord is the normalized outcome of running one check once.
// Records are created by the assessment run that produced them and are
// never mutated afterwards, so they are safe to share across goroutines.
type ResultRecord struct {
	AttributeID string  // References the Attribute this record was produced for
	Name        string  // Display name carried from the attribute
	Category    string  // Category carried from the attribute
	Tier        int     // Tier carried from the attribute
	Weight      float64 // Default scoring weight carried from the attribute
	Status      Status  // Terminal status of the check
	Score       float64 // 0-100; only meaningful when HasScore() is true
	Evidence    string  // Free-text evidence or remediation hint
}

// HasScore reports whether the record contributes a score. Records with
// status not_applicable, skipped or error carry no score and are excluded
// from the overall-score denominator.
func (r ResultRecord) HasScore() bool {
	return r.Status == PassStatus || r.Status == FailStatus
}

// RunResult is the full outcome of assessing one repository.
// Immutable once constructed.
type RunResult struct {
	RunID     string         // Unique identifier for this run
	Repo      Repository     // Repository that was assessed
	StartedAt time.Time      // When the run began
	Duration  time.Duration  // Wall-clock duration of the run
	Records   []ResultRecord // One record per check, in catalog order
	Overall   float64        // Weighted overall score, 0-100
	Tier      CertTier       // Certification tier derived from Overall
	Assessed  int            // Records with status pass or fail
	Skipped   int            // Records with status skipped
	Total     int            // len(Records)
}

// CountRecords tallies assessed, skipped and total counts over a record list.
func CountRecords(records []ResultRecord) (assessed, skipped, total int) {
	for _, r := range records {
		switch r.Status {
		case PassStatus, FailStatus:
			assessed++
		case SkippedStatus:
			skipped++
		}
	}
	return assessed, skipped, len(records)
}

// RunSummary is the flattened store-facing view of a RunResult.
type RunSummary struct {
	RunID      string
	Repo       string
	StartedAt  time.Time
	DurationMs int64
	Overall    float64
	Tier       string
	Assessed   int
	Skipped    int
	Total      int
}

// Summary flattens the run for persistence and export.
func (rr *RunResult) Summary() RunSummary {
	return RunSummary{
		RunID:      rr.RunID,
		Repo:       rr.Repo.Name,
		StartedAt:  rr.StartedAt,
		DurationMs: rr.Duration.Milliseconds(),
		Overall:    rr.Overall,
		Tier:       string(rr.Tier),
		Assessed:   rr.Assessed,
		Skipped:    rr.Skipped,
		Total:      rr.Total,
	}
}

// StoreStatus holds status information about a result store.
type StoreStatus struct {
	Backend     DatabaseBackend
	Location    string
	RunCount    int
	RecordCount int
	LastRun     time.Time
}

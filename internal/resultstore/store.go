// Package resultstore persists assessment runs across database backends.
package resultstore

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql" // MySQL driver
	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
	"github.com/repograde/repograde/internal/contract"
	"github.com/repograde/repograde/schema"
	_ "modernc.org/sqlite" // SQLite driver
)

// Table names for run persistence.
const (
	runsTable    = "repograde_runs"
	recordsTable = "repograde_records"
)

// ResultStoreImpl handles durable run storage using various database backends.
type ResultStoreImpl struct {
	db      *sql.DB
	backend schema.DatabaseBackend
	connStr string
}

var _ contract.ResultStore = &ResultStoreImpl{} // Compile-time check

// NewResultStore initializes and returns a new ResultStore based on the backend type.
func NewResultStore(backend schema.DatabaseBackend, connStr string) (contract.ResultStore, error) {
	var db *sql.DB
	var err error

	switch backend {
	case schema.SQLiteBackend:
		dbPath := connStr
		if dbPath == "" {
			dbPath = contract.GetResultsDBFilePath()
		}
		db, err = sql.Open("sqlite", dbPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open SQLite database at %q: %w. Check that the directory is writable", dbPath, err)
		}
		// Limit SQLite to a single open connection to avoid "database is locked" errors
		db.SetMaxOpenConns(1)

	case schema.MySQLBackend:
		db, err = sql.Open("mysql", connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to open MySQL database: %w. Check connection string format: user:password@tcp(host:port)/dbname", err)
		}

	case schema.PostgreSQLBackend:
		db, err = sql.Open("pgx", connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to open PostgreSQL database: %w. Check connection string format: host=localhost port=5432 user=postgres dbname=mydb", err)
		}

	case schema.NoneBackend:
		// No-op store for disabled persistence
		return &ResultStoreImpl{db: nil, backend: backend, connStr: connStr}, nil

	default:
		return nil, fmt.Errorf("unsupported store backend: %s. Must be sqlite, mysql, postgresql, or none", backend)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to %s database: %w. Check that the server is running and connection parameters are valid", backend, err)
	}

	if err := createRunTables(db, backend); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &ResultStoreImpl{db: db, backend: backend, connStr: connStr}, nil
}

// createRunTables creates the run and record tables if they do not exist.
func createRunTables(db *sql.DB, backend schema.DatabaseBackend) error {
	queries := []string{
		getCreateRunsQuery(backend),
		getCreateRecordsQuery(backend),
	}
	for _, query := range queries {
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("failed to create run tables: %w", err)
		}
	}
	return nil
}

// getCreateRunsQuery returns the CREATE TABLE query for the runs table.
// Timestamps are stored as unix milliseconds so scanning behaves the same
// across drivers.
func getCreateRunsQuery(backend schema.DatabaseBackend) string {
	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id VARCHAR(64) PRIMARY KEY,
				repo_name VARCHAR(255) NOT NULL,
				repo_path TEXT NOT NULL,
				started_at BIGINT NOT NULL,
				duration_ms BIGINT NOT NULL,
				overall DOUBLE NOT NULL,
				tier VARCHAR(32) NOT NULL,
				assessed INT NOT NULL,
				skipped INT NOT NULL,
				total INT NOT NULL
			);
		`, runsTable)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id VARCHAR(64) PRIMARY KEY,
				repo_name TEXT NOT NULL,
				repo_path TEXT NOT NULL,
				started_at BIGINT NOT NULL,
				duration_ms BIGINT NOT NULL,
				overall DOUBLE PRECISION NOT NULL,
				tier TEXT NOT NULL,
				assessed INTEGER NOT NULL,
				skipped INTEGER NOT NULL,
				total INTEGER NOT NULL
			);
		`, runsTable)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id TEXT PRIMARY KEY,
				repo_name TEXT NOT NULL,
				repo_path TEXT NOT NULL,
				started_at INTEGER NOT NULL,
				duration_ms INTEGER NOT NULL,
				overall REAL NOT NULL,
				tier TEXT NOT NULL,
				assessed INTEGER NOT NULL,
				skipped INTEGER NOT NULL,
				total INTEGER NOT NULL
			);
		`, runsTable)
	}
}

// getCreateRecordsQuery returns the CREATE TABLE query for the records table.
func getCreateRecordsQuery(backend schema.DatabaseBackend) string {
	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id VARCHAR(64) NOT NULL,
				seq INT NOT NULL,
				attribute_id VARCHAR(128) NOT NULL,
				name VARCHAR(255) NOT NULL,
				category VARCHAR(128) NOT NULL,
				tier INT NOT NULL,
				weight DOUBLE NOT NULL,
				status VARCHAR(32) NOT NULL,
				score DOUBLE NOT NULL,
				evidence TEXT,
				PRIMARY KEY (run_id, seq)
			);
		`, recordsTable)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id VARCHAR(64) NOT NULL,
				seq INTEGER NOT NULL,
				attribute_id TEXT NOT NULL,
				name TEXT NOT NULL,
				category TEXT NOT NULL,
				tier INTEGER NOT NULL,
				weight DOUBLE PRECISION NOT NULL,
				status TEXT NOT NULL,
				score DOUBLE PRECISION NOT NULL,
				evidence TEXT,
				PRIMARY KEY (run_id, seq)
			);
		`, recordsTable)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id TEXT NOT NULL,
				seq INTEGER NOT NULL,
				attribute_id TEXT NOT NULL,
				name TEXT NOT NULL,
				category TEXT NOT NULL,
				tier INTEGER NOT NULL,
				weight REAL NOT NULL,
				status TEXT NOT NULL,
				score REAL NOT NULL,
				evidence TEXT,
				PRIMARY KEY (run_id, seq)
			);
		`, recordsTable)
	}
}

// rebind converts ?-style placeholders to the backend's parameter syntax.
func (rs *ResultStoreImpl) rebind(query string) string {
	if rs.backend != schema.PostgreSQLBackend {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			fmt.Fprintf(&b, "$%d", n)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// SaveRun persists a run and all of its records in one transaction.
func (rs *ResultStoreImpl) SaveRun(run *schema.RunResult) error {
	if rs.backend == schema.NoneBackend || rs.db == nil {
		return nil
	}

	tx, err := rs.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	summary := run.Summary()
	runQuery := rs.rebind(fmt.Sprintf(`
		INSERT INTO %s (run_id, repo_name, repo_path, started_at, duration_ms, overall, tier, assessed, skipped, total)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`, runsTable))
	if _, err := tx.Exec(runQuery,
		summary.RunID, summary.Repo, run.Repo.Path, summary.StartedAt.UnixMilli(),
		summary.DurationMs, summary.Overall, summary.Tier,
		summary.Assessed, summary.Skipped, summary.Total); err != nil {
		return fmt.Errorf("failed to insert run %s: %w", run.RunID, err)
	}

	recQuery := rs.rebind(fmt.Sprintf(`
		INSERT INTO %s (run_id, seq, attribute_id, name, category, tier, weight, status, score, evidence)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`, recordsTable))
	for i, rec := range run.Records {
		if _, err := tx.Exec(recQuery,
			run.RunID, i, rec.AttributeID, rec.Name, rec.Category,
			rec.Tier, rec.Weight, string(rec.Status), rec.Score, rec.Evidence); err != nil {
			return fmt.Errorf("failed to insert record %s for run %s: %w", rec.AttributeID, run.RunID, err)
		}
	}

	return tx.Commit()
}

// ListRuns returns the most recent run summaries, newest first.
func (rs *ResultStoreImpl) ListRuns(limit int) ([]schema.RunSummary, error) {
	if rs.backend == schema.NoneBackend || rs.db == nil {
		return nil, nil
	}
	if limit <= 0 {
		limit = contract.DefaultResultLimit
	}

	query := rs.rebind(fmt.Sprintf(`
		SELECT run_id, repo_name, started_at, duration_ms, overall, tier, assessed, skipped, total
		FROM %s ORDER BY started_at DESC LIMIT ?`, runsTable))
	rows, err := rs.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var summaries []schema.RunSummary
	for rows.Next() {
		var s schema.RunSummary
		var startedMillis int64
		if err := rows.Scan(&s.RunID, &s.Repo, &startedMillis, &s.DurationMs,
			&s.Overall, &s.Tier, &s.Assessed, &s.Skipped, &s.Total); err != nil {
			return nil, fmt.Errorf("failed to scan run row: %w", err)
		}
		s.StartedAt = time.UnixMilli(startedMillis)
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}

// ListRecords returns all records for a run, in stored order.
func (rs *ResultStoreImpl) ListRecords(runID string) ([]schema.ResultRecord, error) {
	if rs.backend == schema.NoneBackend || rs.db == nil {
		return nil, nil
	}

	query := rs.rebind(fmt.Sprintf(`
		SELECT attribute_id, name, category, tier, weight, status, score, evidence
		FROM %s WHERE run_id = ? ORDER BY seq`, recordsTable))
	rows, err := rs.db.Query(query, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to list records for run %s: %w", runID, err)
	}
	defer func() { _ = rows.Close() }()

	var records []schema.ResultRecord
	for rows.Next() {
		var rec schema.ResultRecord
		var status string
		var evidence sql.NullString
		if err := rows.Scan(&rec.AttributeID, &rec.Name, &rec.Category,
			&rec.Tier, &rec.Weight, &status, &rec.Score, &evidence); err != nil {
			return nil, fmt.Errorf("failed to scan record row: %w", err)
		}
		rec.Status = schema.Status(status)
		rec.Evidence = evidence.String
		records = append(records, rec)
	}
	return records, rows.Err()
}

// GetStatus returns status information about the store.
func (rs *ResultStoreImpl) GetStatus() (schema.StoreStatus, error) {
	status := schema.StoreStatus{Backend: rs.backend}

	if rs.backend == schema.NoneBackend || rs.db == nil {
		return status, nil
	}
	if rs.backend == schema.SQLiteBackend {
		location := rs.connStr
		if location == "" {
			location = contract.GetResultsDBFilePath()
		}
		status.Location = location
	}

	row := rs.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", runsTable))
	if err := row.Scan(&status.RunCount); err != nil {
		return status, fmt.Errorf("failed to count runs: %w", err)
	}

	row = rs.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", recordsTable))
	if err := row.Scan(&status.RecordCount); err != nil {
		return status, fmt.Errorf("failed to count records: %w", err)
	}

	if status.RunCount > 0 {
		row = rs.db.QueryRow(fmt.Sprintf("SELECT MAX(started_at) FROM %s", runsTable))
		var lastMillis int64
		if err := row.Scan(&lastMillis); err != nil {
			return status, fmt.Errorf("failed to get last run time: %w", err)
		}
		status.LastRun = time.UnixMilli(lastMillis)
	}

	return status, nil
}

// Clear removes all stored runs and records.
func (rs *ResultStoreImpl) Clear() error {
	if rs.backend == schema.NoneBackend || rs.db == nil {
		return nil
	}
	for _, table := range []string{recordsTable, runsTable} {
		if _, err := rs.db.Exec(fmt.Sprintf("DELETE FROM %s", table)); err != nil {
			return fmt.Errorf("failed to clear table %s: %w", table, err)
		}
	}
	return nil
}

// Close closes the underlying DB connection.
func (rs *ResultStoreImpl) Close() error {
	if rs.db != nil {
		return rs.db.Close()
	}
	return nil
}

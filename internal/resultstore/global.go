package resultstore

import (
	"database/sql"
	"fmt"
	"os"
	"sync"

	"github.com/repograde/repograde/internal/contract"
	"github.com/repograde/repograde/schema"
)

// Global Manager instance for main logic.
var (
	Manager   = &StoreManagerImpl{}
	initOnce  sync.Once
	closeOnce sync.Once
)

// StoreManagerImpl holds the process-wide result store.
type StoreManagerImpl struct {
	sync.RWMutex
	results contract.ResultStore
}

var _ contract.StoreManager = &StoreManagerImpl{} // Compile-time check

// GetResultStore returns the configured result store, or nil when
// persistence was never initialized.
func (m *StoreManagerImpl) GetResultStore() contract.ResultStore {
	m.RLock()
	defer m.RUnlock()
	return m.results
}

// InitStores initializes the global store manager. An empty backend disables
// persistence entirely.
func InitStores(backend schema.DatabaseBackend, connStr string) error {
	var initErr error

	initOnce.Do(func() {
		// This function body runs exactly once, even with concurrent calls.
		if backend == "" {
			return
		}
		store, err := NewResultStore(backend, connStr)
		if err != nil {
			initErr = fmt.Errorf("failed to initialize result store: %w", err)
			return
		}
		Manager.Lock()
		Manager.results = store
		Manager.Unlock()
	})

	return initErr
}

// CloseStores should be called on application shutdown.
func CloseStores() { // called in main defer
	closeOnce.Do(func() {
		Manager.Lock()
		defer Manager.Unlock()
		if Manager.results != nil {
			_ = Manager.results.Close()
		}
	})
}

// ClearResults removes stored results for the specified backend.
// For SQLite, it deletes the database file.
// For SQL backends (MySQL/PostgreSQL), it drops the run tables.
// For NoneBackend, it does nothing.
func ClearResults(backend schema.DatabaseBackend, dbFilePath, connStr string) error {
	switch backend {
	case schema.SQLiteBackend:
		if dbFilePath == "" {
			return fmt.Errorf("dbFilePath cannot be empty for SQLite backend")
		}
		// Remove the file; ignore if it doesn't exist
		if err := os.Remove(dbFilePath); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove SQLite database file %s: %w", dbFilePath, err)
		}
		return nil

	case schema.MySQLBackend:
		return dropRunTables("mysql", connStr)

	case schema.PostgreSQLBackend:
		return dropRunTables("pgx", connStr)

	case schema.NoneBackend:
		return nil

	default:
		return fmt.Errorf("unsupported store backend for clearing: %s", backend)
	}
}

// dropRunTables connects to the SQL database and drops the run tables.
func dropRunTables(driverName, connStr string) error {
	db, err := sql.Open(driverName, connStr)
	if err != nil {
		return fmt.Errorf("failed to connect to %s database: %w", driverName, err)
	}
	defer func() { _ = db.Close() }()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to ping %s database: %w", driverName, err)
	}

	for _, table := range []string{recordsTable, runsTable} {
		query := fmt.Sprintf("DROP TABLE IF EXISTS %s", table)
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("failed to drop table %s: %w", table, err)
		}
	}
	return nil
}

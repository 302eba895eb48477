package resultstore

import (
	"github.com/repograde/repograde/internal/contract"
	"github.com/repograde/repograde/schema"
	"github.com/stretchr/testify/mock"
)

// MockStoreManager is a mock implementation of StoreManager for testing.
type MockStoreManager struct {
	mock.Mock
}

var _ contract.StoreManager = &MockStoreManager{} // Compile-time check

// GetResultStore implements the StoreManager interface.
func (m *MockStoreManager) GetResultStore() contract.ResultStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.ResultStore)
	return store
}

// MockResultStore is a mock implementation of ResultStore for testing.
type MockResultStore struct {
	mock.Mock
}

var _ contract.ResultStore = &MockResultStore{} // Compile-time check

// SaveRun implements the ResultStore interface.
func (m *MockResultStore) SaveRun(run *schema.RunResult) error {
	args := m.Called(run)
	return args.Error(0)
}

// ListRuns implements the ResultStore interface.
func (m *MockResultStore) ListRuns(limit int) ([]schema.RunSummary, error) {
	args := m.Called(limit)
	summaries, _ := args.Get(0).([]schema.RunSummary)
	return summaries, args.Error(1)
}

// ListRecords implements the ResultStore interface.
func (m *MockResultStore) ListRecords(runID string) ([]schema.ResultRecord, error) {
	args := m.Called(runID)
	records, _ := args.Get(0).([]schema.ResultRecord)
	return records, args.Error(1)
}

// GetStatus implements the ResultStore interface.
func (m *MockResultStore) GetStatus() (schema.StoreStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.StoreStatus), args.Error(1)
}

// Clear implements the ResultStore interface.
func (m *MockResultStore) Clear() error {
	args := m.Called()
	return args.Error(0)
}

// Close implements the ResultStore interface.
func (m *MockResultStore) Close() error {
	args := m.Called()
	return args.Error(0)
}

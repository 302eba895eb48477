package resultstore

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/repograde/repograde/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRun(runID, repoName string, startedAt time.Time) *schema.RunResult {
	return &schema.RunResult{
		RunID:     runID,
		Repo:      schema.Repository{Name: repoName, Path: "/tmp/" + repoName, Languages: []string{"go"}},
		StartedAt: startedAt,
		Duration:  1500 * time.Millisecond,
		Records: []schema.ResultRecord{
			{
				AttributeID: "has_readme",
				Name:        "README present",
				Category:    "documentation",
				Tier:        1,
				Weight:      1.0,
				Status:      schema.PassStatus,
				Score:       100,
				Evidence:    "found README.md",
			},
			{
				AttributeID: "lint_clean",
				Name:        "Lint passes",
				Category:    "automation",
				Tier:        4,
				Weight:      0.25,
				Status:      schema.SkippedStatus,
				Evidence:    "missing tool \"golangci-lint\"",
			},
		},
		Overall:  100,
		Tier:     schema.PlatinumTier,
		Assessed: 1,
		Skipped:  1,
		Total:    2,
	}
}

// TestSQLiteStoreRoundtrip covers save, list, status and clear on the
// default backend.
func TestSQLiteStoreRoundtrip(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "results.db")
	store, err := NewResultStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	older := time.Now().Add(-time.Hour).Truncate(time.Millisecond)
	newer := time.Now().Truncate(time.Millisecond)
	require.NoError(t, store.SaveRun(sampleRun("run-1", "alpha", older)))
	require.NoError(t, store.SaveRun(sampleRun("run-2", "beta", newer)))

	t.Run("list runs newest first", func(t *testing.T) {
		summaries, err := store.ListRuns(10)
		require.NoError(t, err)
		require.Len(t, summaries, 2)

		assert.Equal(t, "run-2", summaries[0].RunID)
		assert.Equal(t, "beta", summaries[0].Repo)
		assert.Equal(t, "run-1", summaries[1].RunID)
		assert.InDelta(t, 100.0, summaries[0].Overall, 0.0001)
		assert.Equal(t, string(schema.PlatinumTier), summaries[0].Tier)
		assert.Equal(t, newer.UnixMilli(), summaries[0].StartedAt.UnixMilli())
		assert.Equal(t, int64(1500), summaries[0].DurationMs)
	})

	t.Run("list runs honors the limit", func(t *testing.T) {
		summaries, err := store.ListRuns(1)
		require.NoError(t, err)
		require.Len(t, summaries, 1)
		assert.Equal(t, "run-2", summaries[0].RunID)
	})

	t.Run("records come back in stored order", func(t *testing.T) {
		records, err := store.ListRecords("run-1")
		require.NoError(t, err)
		require.Len(t, records, 2)

		assert.Equal(t, "has_readme", records[0].AttributeID)
		assert.Equal(t, schema.PassStatus, records[0].Status)
		assert.InDelta(t, 100.0, records[0].Score, 0.0001)
		assert.Equal(t, "found README.md", records[0].Evidence)

		assert.Equal(t, "lint_clean", records[1].AttributeID)
		assert.Equal(t, schema.SkippedStatus, records[1].Status)
	})

	t.Run("unknown run has no records", func(t *testing.T) {
		records, err := store.ListRecords("nope")
		require.NoError(t, err)
		assert.Empty(t, records)
	})

	t.Run("status reflects contents", func(t *testing.T) {
		status, err := store.GetStatus()
		require.NoError(t, err)
		assert.Equal(t, schema.SQLiteBackend, status.Backend)
		assert.Equal(t, dbPath, status.Location)
		assert.Equal(t, 2, status.RunCount)
		assert.Equal(t, 4, status.RecordCount)
		assert.Equal(t, newer.UnixMilli(), status.LastRun.UnixMilli())
	})

	t.Run("duplicate run id fails atomically", func(t *testing.T) {
		err := store.SaveRun(sampleRun("run-1", "alpha", time.Now()))
		assert.Error(t, err)

		// The failed save must not leave partial records behind.
		status, err := store.GetStatus()
		require.NoError(t, err)
		assert.Equal(t, 2, status.RunCount)
		assert.Equal(t, 4, status.RecordCount)
	})

	t.Run("clear removes everything", func(t *testing.T) {
		require.NoError(t, store.Clear())
		status, err := store.GetStatus()
		require.NoError(t, err)
		assert.Zero(t, status.RunCount)
		assert.Zero(t, status.RecordCount)
	})
}

// TestNoneBackendIsNoop confirms the disabled store accepts every call.
func TestNoneBackendIsNoop(t *testing.T) {
	store, err := NewResultStore(schema.NoneBackend, "")
	require.NoError(t, err)

	assert.NoError(t, store.SaveRun(sampleRun("run-1", "alpha", time.Now())))

	summaries, err := store.ListRuns(10)
	require.NoError(t, err)
	assert.Empty(t, summaries)

	records, err := store.ListRecords("run-1")
	require.NoError(t, err)
	assert.Empty(t, records)

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, schema.NoneBackend, status.Backend)

	assert.NoError(t, store.Clear())
	assert.NoError(t, store.Close())
}

// TestNewResultStoreUnsupported rejects unknown backends.
func TestNewResultStoreUnsupported(t *testing.T) {
	_, err := NewResultStore(schema.DatabaseBackend("oracle"), "")
	assert.Error(t, err)
}

// TestRebind converts placeholders for PostgreSQL only.
func TestRebind(t *testing.T) {
	pg := &ResultStoreImpl{backend: schema.PostgreSQLBackend}
	assert.Equal(t, "SELECT $1, $2", pg.rebind("SELECT ?, ?"))

	lite := &ResultStoreImpl{backend: schema.SQLiteBackend}
	assert.Equal(t, "SELECT ?, ?", lite.rebind("SELECT ?, ?"))
}

package core

import (
	"context"
	"testing"

	"github.com/repograde/repograde/internal/contract"
	"github.com/repograde/repograde/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRunBatch confirms per-repository independence and input ordering.
func TestRunBatch(t *testing.T) {
	repos := []schema.Repository{
		{Name: "alpha", Path: "/tmp/alpha", Languages: []string{"go"}},
		{Name: "beta", Path: "/tmp/beta", Languages: []string{"python"}},
		{Name: "gamma", Path: "/tmp/gamma", Languages: []string{"go"}},
	}
	checks := []contract.Check{
		passingCheck("readme", 100),
		&stubCheck{id: "panics", tier: 2, applicable: true, panicMsg: "boom"},
	}

	runs, err := RunBatch(context.Background(), testConfig(), repos, checks, nil)
	require.NoError(t, err)
	require.Len(t, runs, len(repos))

	for i, run := range runs {
		assert.Equal(t, repos[i].Name, run.Repo.Name)
		require.Len(t, run.Records, 2)
		assert.Equal(t, schema.PassStatus, run.Records[0].Status)
		assert.Equal(t, schema.ErrorStatus, run.Records[1].Status)
	}
}

// TestRunBatchCancellation confirms a cancelled context aborts the batch.
func TestRunBatchCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	repos := []schema.Repository{{Name: "alpha", Path: "/tmp/alpha"}}
	runs, err := RunBatch(ctx, testConfig(), repos,
		[]contract.Check{passingCheck("readme", 100)}, nil)

	// A pre-cancelled context surfaces through the check timeout path; the
	// batch still returns valid runs whose records are terminal.
	if err == nil {
		require.Len(t, runs, 1)
		for _, rec := range runs[0].Records {
			assert.NotEmpty(t, rec.Status)
		}
	}
}

// TestRunBatchBadWeights confirms a config defect fails the whole batch.
func TestRunBatchBadWeights(t *testing.T) {
	cfg := testConfig()
	cfg.Weights = map[string]float64{"readme": -2}

	_, err := RunBatch(context.Background(), cfg,
		[]schema.Repository{{Name: "alpha", Path: "/tmp/alpha"}},
		[]contract.Check{passingCheck("readme", 100)}, nil)
	assert.Error(t, err)
}

// TestRunBatchEmpty confirms an empty repository list yields an empty batch.
func TestRunBatchEmpty(t *testing.T) {
	runs, err := RunBatch(context.Background(), testConfig(), nil,
		[]contract.Check{passingCheck("readme", 100)}, nil)
	require.NoError(t, err)
	assert.Empty(t, runs)
}

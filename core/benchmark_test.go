package core

import (
	"testing"

	"github.com/repograde/repograde/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestBuildBenchmark checks the population snapshot over a small batch.
func TestBuildBenchmark(t *testing.T) {
	runs := []*schema.RunResult{
		rankedRun("alpha", 90,
			schema.ResultRecord{AttributeID: "readme", Status: schema.PassStatus, Score: 100},
			schema.ResultRecord{AttributeID: "lint", Status: schema.PassStatus, Score: 80},
		),
		rankedRun("beta", 70,
			schema.ResultRecord{AttributeID: "readme", Status: schema.FailStatus, Score: 40},
			schema.ResultRecord{AttributeID: "lint", Status: schema.SkippedStatus},
		),
		rankedRun("gamma", 50,
			schema.ResultRecord{AttributeID: "readme", Status: schema.PassStatus, Score: 70},
		),
	}

	snapshot, err := BuildBenchmark(runs)
	require.NoError(t, err)

	assert.Equal(t, 3, snapshot.Size)
	assert.False(t, snapshot.CreatedAt.IsZero())
	assert.Equal(t, 3, snapshot.Overall.Count)
	assert.InDelta(t, 70.0, snapshot.Overall.Mean, 0.0001)
	assert.InDelta(t, 70.0, snapshot.Overall.Median, 0.0001)
	assert.InDelta(t, 50.0, snapshot.Overall.Min, 0.0001)
	assert.InDelta(t, 90.0, snapshot.Overall.Max, 0.0001)

	// Dimension populations are sparse: beta never scored lint.
	require.Contains(t, snapshot.Dimensions, "readme")
	require.Contains(t, snapshot.Dimensions, "lint")
	assert.Equal(t, 3, snapshot.Dimensions["readme"].Count)
	assert.InDelta(t, 70.0, snapshot.Dimensions["readme"].Mean, 0.0001)
	assert.Equal(t, 1, snapshot.Dimensions["lint"].Count)
	assert.InDelta(t, 80.0, snapshot.Dimensions["lint"].Mean, 0.0001)
}

// TestBuildBenchmarkEmpty confirms an empty batch is rejected.
func TestBuildBenchmarkEmpty(t *testing.T) {
	_, err := BuildBenchmark(nil)
	assert.ErrorIs(t, err, ErrEmptySample)
}

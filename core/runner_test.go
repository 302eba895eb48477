package core

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/repograde/repograde/internal/contract"
	"github.com/repograde/repograde/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubCheck is a scriptable check for exercising the runner paths.
type stubCheck struct {
	id         string
	tier       int
	applicable bool
	gateErr    error
	outcome    contract.Outcome
	assessErr  error
	panicMsg   string
	delay      time.Duration
}

func (s *stubCheck) AttributeID() string { return s.id }
func (s *stubCheck) Tier() int           { return s.tier }

func (s *stubCheck) IsApplicable(_ schema.Repository) (bool, error) {
	return s.applicable, s.gateErr
}

func (s *stubCheck) Assess(ctx context.Context, _ schema.Repository) (contract.Outcome, error) {
	if s.panicMsg != "" {
		panic(s.panicMsg)
	}
	if s.delay > 0 {
		select {
		case <-ctx.Done():
			return contract.Outcome{}, ctx.Err()
		case <-time.After(s.delay):
		}
	}
	return s.outcome, s.assessErr
}

func passingCheck(id string, score float64) *stubCheck {
	return &stubCheck{
		id:         id,
		tier:       1,
		applicable: true,
		outcome:    contract.Outcome{Status: schema.PassStatus, Score: score},
	}
}

func testConfig() *contract.Config {
	return &contract.Config{
		Workers:      2,
		CheckTimeout: 5 * time.Second,
	}
}

func testRepo() schema.Repository {
	return schema.Repository{Name: "demo", Path: "/tmp/demo", Languages: []string{"go"}}
}

// TestRunAssessmentIsolation verifies that every failure mode yields exactly
// one terminal record without disturbing sibling checks.
func TestRunAssessmentIsolation(t *testing.T) {
	checks := []contract.Check{
		passingCheck("readme", 100),
		&stubCheck{id: "panics", tier: 2, applicable: true, panicMsg: "boom"},
		&stubCheck{id: "gate-error", tier: 2, gateErr: errors.New("cannot stat repo")},
		&stubCheck{id: "inapplicable", tier: 3, applicable: false},
		&stubCheck{id: "missing-tool", tier: 3, applicable: true,
			assessErr: contract.NewMissingToolError("golangci-lint", "install from https://golangci-lint.run")},
		&stubCheck{id: "generic-error", tier: 4, applicable: true,
			assessErr: errors.New("parse failed\nwith a second line")},
	}

	run, err := RunAssessment(context.Background(), testConfig(), testRepo(), checks, nil)
	require.NoError(t, err)
	require.Len(t, run.Records, len(checks))

	byID := make(map[string]schema.ResultRecord)
	for _, rec := range run.Records {
		byID[rec.AttributeID] = rec
	}

	assert.Equal(t, schema.PassStatus, byID["readme"].Status)
	assert.InDelta(t, 100.0, byID["readme"].Score, 0.0001)

	assert.Equal(t, schema.ErrorStatus, byID["panics"].Status)
	assert.Contains(t, byID["panics"].Evidence, "check panicked")

	assert.Equal(t, schema.ErrorStatus, byID["gate-error"].Status)
	assert.Contains(t, byID["gate-error"].Evidence, "applicability gate failed")

	assert.Equal(t, schema.NotApplicableStatus, byID["inapplicable"].Status)
	assert.Contains(t, byID["inapplicable"].Evidence, "go")

	assert.Equal(t, schema.SkippedStatus, byID["missing-tool"].Status)
	assert.Contains(t, byID["missing-tool"].Evidence, "golangci-lint")
	assert.Contains(t, byID["missing-tool"].Evidence, "install from")

	assert.Equal(t, schema.ErrorStatus, byID["generic-error"].Status)
	assert.Equal(t, "parse failed", byID["generic-error"].Evidence)

	assert.Equal(t, 1, run.Assessed)
	assert.Equal(t, 1, run.Skipped)
	assert.Equal(t, 6, run.Total)
}

// TestRunAssessmentOrder confirms records come back in catalog order even
// with concurrent execution.
func TestRunAssessmentOrder(t *testing.T) {
	ids := []string{"a", "b", "c", "d", "e", "f", "g", "h"}
	checks := make([]contract.Check, len(ids))
	for i, id := range ids {
		checks[i] = passingCheck(id, float64(i*10))
	}

	cfg := testConfig()
	cfg.Workers = 4

	run, err := RunAssessment(context.Background(), cfg, testRepo(), checks, nil)
	require.NoError(t, err)
	require.Len(t, run.Records, len(ids))
	for i, id := range ids {
		assert.Equal(t, id, run.Records[i].AttributeID)
	}
}

// TestRunAssessmentTimeout confirms a slow check produces a timeout error
// record instead of stalling the run.
func TestRunAssessmentTimeout(t *testing.T) {
	cfg := testConfig()
	cfg.CheckTimeout = 20 * time.Millisecond

	checks := []contract.Check{
		&stubCheck{id: "slow", tier: 1, applicable: true, delay: time.Second},
		passingCheck("fast", 90),
	}

	run, err := RunAssessment(context.Background(), cfg, testRepo(), checks, nil)
	require.NoError(t, err)

	assert.Equal(t, schema.ErrorStatus, run.Records[0].Status)
	assert.Contains(t, run.Records[0].Evidence, "timed out")
	assert.Equal(t, schema.PassStatus, run.Records[1].Status)
}

// TestRunAssessmentBadWeights confirms config defects fail before any check
// runs.
func TestRunAssessmentBadWeights(t *testing.T) {
	cfg := testConfig()
	cfg.Weights = map[string]float64{"readme": -1}

	_, err := RunAssessment(context.Background(), cfg, testRepo(),
		[]contract.Check{passingCheck("readme", 100)}, nil)
	assert.Error(t, err)
}

// TestRunAssessmentAttributeMetadata confirms catalog metadata flows onto
// records, with tier-derived defaults for uncataloged checks.
func TestRunAssessmentAttributeMetadata(t *testing.T) {
	attrs := schema.AttributeIndex{
		"readme": {
			ID:            "readme",
			Name:          "README present",
			Category:      "documentation",
			Tier:          1,
			DefaultWeight: 0.9,
		},
	}

	checks := []contract.Check{
		passingCheck("readme", 100),
		passingCheck("uncataloged", 50),
	}

	run, err := RunAssessment(context.Background(), testConfig(), testRepo(), checks, attrs)
	require.NoError(t, err)

	assert.Equal(t, "README present", run.Records[0].Name)
	assert.Equal(t, "documentation", run.Records[0].Category)
	assert.InDelta(t, 0.9, run.Records[0].Weight, 0.0001)

	assert.Equal(t, "uncataloged", run.Records[1].Name)
	assert.InDelta(t, schema.GetDefaultWeight(1), run.Records[1].Weight, 0.0001)
}

// TestRunAssessmentResultFields sanity-checks the run envelope.
func TestRunAssessmentResultFields(t *testing.T) {
	run, err := RunAssessment(context.Background(), testConfig(), testRepo(),
		[]contract.Check{passingCheck("readme", 100)}, nil)
	require.NoError(t, err)

	assert.NotEmpty(t, run.RunID)
	assert.Equal(t, "demo", run.Repo.Name)
	assert.False(t, run.StartedAt.IsZero())
	assert.GreaterOrEqual(t, run.Overall, 0.0)
	assert.LessOrEqual(t, run.Overall, 100.0)
	assert.Equal(t, schema.PlatinumTier, run.Tier)
}

// TestSanitizeMessage verifies evidence stays single-line and bounded.
func TestSanitizeMessage(t *testing.T) {
	assert.Equal(t, "first", sanitizeMessage("first\nsecond\nthird"))

	long := make([]byte, maxEvidenceLen+50)
	for i := range long {
		long[i] = 'x'
	}
	got := sanitizeMessage(string(long))
	assert.Len(t, got, maxEvidenceLen+3)
	assert.Contains(t, got, "...")
}

package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestTierForScore tests certification tier boundaries.
func TestTierForScore(t *testing.T) {
	tests := []struct {
		name     string
		score    float64
		expected CertTier
	}{
		{"platinum exact boundary", 90.0, PlatinumTier},
		{"just below platinum", 89.999, GoldTier},
		{"gold exact boundary", 75.0, GoldTier},
		{"silver exact boundary", 60.0, SilverTier},
		{"bronze exact boundary", 40.0, BronzeTier},
		{"just below bronze", 39.999, NeedsImprovTier},
		{"zero", 0.0, NeedsImprovTier},
		{"perfect", 100.0, PlatinumTier},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, TierForScore(tt.score))
		})
	}
}

// TestGetDefaultWeight tests tier-derived default weights.
func TestGetDefaultWeight(t *testing.T) {
	assert.Equal(t, 1.0, GetDefaultWeight(1))
	assert.Equal(t, 0.75, GetDefaultWeight(2))
	assert.Equal(t, 0.5, GetDefaultWeight(3))
	assert.Equal(t, 0.25, GetDefaultWeight(4))

	// Out-of-range tiers fall back to the lightest weight.
	assert.Equal(t, 0.25, GetDefaultWeight(0))
	assert.Equal(t, 0.25, GetDefaultWeight(9))
}

// TestHasScore verifies which statuses contribute scores.
func TestHasScore(t *testing.T) {
	assert.True(t, ResultRecord{Status: PassStatus}.HasScore())
	assert.True(t, ResultRecord{Status: FailStatus}.HasScore())
	assert.False(t, ResultRecord{Status: NotApplicableStatus}.HasScore())
	assert.False(t, ResultRecord{Status: SkippedStatus}.HasScore())
	assert.False(t, ResultRecord{Status: ErrorStatus}.HasScore())
}

// TestCountRecords verifies the assessed/skipped/total invariant.
func TestCountRecords(t *testing.T) {
	records := []ResultRecord{
		{Status: PassStatus},
		{Status: FailStatus},
		{Status: NotApplicableStatus},
		{Status: SkippedStatus},
		{Status: ErrorStatus},
	}

	assessed, skipped, total := CountRecords(records)
	assert.Equal(t, 2, assessed)
	assert.Equal(t, 1, skipped)
	assert.Equal(t, 5, total)
	assert.Equal(t, len(records), total)
}

// TestBuildAttributeIndex tests catalog indexing and validation.
func TestBuildAttributeIndex(t *testing.T) {
	t.Run("valid catalog", func(t *testing.T) {
		idx, err := BuildAttributeIndex([]Attribute{
			{ID: "has_readme", Name: "README present", Category: "documentation", Tier: 1},
			{ID: "has_license", Name: "License present", Category: "compliance", Tier: 2, DefaultWeight: 0.9},
		})
		require.NoError(t, err)
		assert.Len(t, idx, 2)
		assert.Equal(t, 1.0, idx["has_readme"].EffectiveDefaultWeight())
		assert.Equal(t, 0.9, idx["has_license"].EffectiveDefaultWeight())
	})

	t.Run("duplicate id", func(t *testing.T) {
		_, err := BuildAttributeIndex([]Attribute{
			{ID: "has_readme", Tier: 1},
			{ID: "has_readme", Tier: 2},
		})
		assert.Error(t, err)
	})

	t.Run("tier out of range", func(t *testing.T) {
		_, err := BuildAttributeIndex([]Attribute{{ID: "bad", Tier: 5}})
		assert.Error(t, err)
	})

	t.Run("missing id", func(t *testing.T) {
		_, err := BuildAttributeIndex([]Attribute{{Tier: 1}})
		assert.Error(t, err)
	})
}

// TestRepositoryHasLanguage tests language membership.
func TestRepositoryHasLanguage(t *testing.T) {
	repo := Repository{Name: "demo", Languages: []string{"go", "python"}}
	assert.True(t, repo.HasLanguage("go"))
	assert.False(t, repo.HasLanguage("rust"))
}

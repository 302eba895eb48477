package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDescribe verifies the descriptive statistics over known samples.
func TestDescribe(t *testing.T) {
	t.Run("five element sample", func(t *testing.T) {
		stats, err := Describe([]float64{10, 20, 30, 40, 50})
		require.NoError(t, err)

		assert.Equal(t, 5, stats.Count)
		assert.InDelta(t, 30.0, stats.Mean, 0.0001)
		assert.InDelta(t, 30.0, stats.Median, 0.0001)
		assert.InDelta(t, 14.1421, stats.StdDev, 0.001)
		assert.InDelta(t, 10.0, stats.Min, 0.0001)
		assert.InDelta(t, 50.0, stats.Max, 0.0001)
		assert.InDelta(t, 20.0, stats.P25, 0.0001)
		assert.InDelta(t, 30.0, stats.P50, 0.0001)
		assert.InDelta(t, 40.0, stats.P75, 0.0001)
		assert.InDelta(t, 46.0, stats.P90, 0.0001)
		assert.InDelta(t, 48.0, stats.P95, 0.0001)
	})

	t.Run("single element has zero spread", func(t *testing.T) {
		stats, err := Describe([]float64{42})
		require.NoError(t, err)

		assert.Equal(t, 1, stats.Count)
		assert.InDelta(t, 42.0, stats.Mean, 0.0001)
		assert.InDelta(t, 42.0, stats.Median, 0.0001)
		assert.Zero(t, stats.StdDev)
		assert.InDelta(t, 42.0, stats.Min, 0.0001)
		assert.InDelta(t, 42.0, stats.Max, 0.0001)
	})

	t.Run("empty sample is an error", func(t *testing.T) {
		_, err := Describe(nil)
		assert.ErrorIs(t, err, ErrEmptySample)
	})

	t.Run("input slice is not mutated", func(t *testing.T) {
		values := []float64{3, 1, 2}
		_, err := Describe(values)
		require.NoError(t, err)
		assert.Equal(t, []float64{3, 1, 2}, values)
	})
}

// TestPercentile verifies linear interpolation and the boundary rules.
func TestPercentile(t *testing.T) {
	sorted := []float64{10, 20, 30, 40}

	tests := []struct {
		name     string
		p        float64
		expected float64
	}{
		{"p0 is the minimum", 0, 10},
		{"negative clamps to minimum", -5, 10},
		{"p100 is the maximum", 100, 40},
		{"above 100 clamps to maximum", 150, 40},
		{"median interpolates between middle ranks", 50, 25},
		{"p25 lands between first and second", 25, 17.5},
		{"p75 lands between third and fourth", 75, 32.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, Percentile(sorted, tt.p), 0.0001)
		})
	}

	t.Run("empty sample returns zero", func(t *testing.T) {
		assert.Zero(t, Percentile(nil, 50))
	})
}

package core

import (
	"testing"

	"github.com/repograde/repograde/schema"
)

// FuzzComputeOverall fuzzes the scoring reduction and asserts the overall
// score always lands in [0, 100] with a tier that matches it.
func FuzzComputeOverall(f *testing.F) {
	seeds := []struct {
		s1, w1, s2, w2, override float64
	}{
		{100, 0.6, 0, 0.4, 0},
		{50, 1.0, 50, 1.0, 2.0},
		{-10, 0.5, 150, 0.5, 0.25},
		{0, 0, 0, 0, 0},
	}
	for _, seed := range seeds {
		f.Add(seed.s1, seed.w1, seed.s2, seed.w2, seed.override)
	}

	f.Fuzz(func(t *testing.T, s1, w1, s2, w2, override float64) {
		records := []schema.ResultRecord{
			{AttributeID: "a", Status: schema.PassStatus, Score: s1, Weight: w1},
			{AttributeID: "b", Status: schema.FailStatus, Score: s2, Weight: w2},
		}
		var weights map[string]float64
		if override > 0 {
			weights = map[string]float64{"a": override}
		}

		overall, tier := ComputeOverall(records, weights, nil)
		if overall < 0 || overall > 100 {
			t.Fatalf("overall %f out of range", overall)
		}
		if tier != schema.TierForScore(overall) {
			t.Fatalf("tier %s does not match overall %f", tier, overall)
		}
	})
}

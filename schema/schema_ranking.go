package schema

import "time"

// DimensionScore is one repository's standing on a single attribute axis.
type DimensionScore struct {
	Score      float64 // The repository's score on this dimension
	Rank       int     // 1-based rank within the sub-population that scored it
	Percentile float64 // Mid-rank percentile, 0-100
}

// RankingEntry is one repository's standing within a batch population.
// Dimensions only contains attributes the repository actually scored;
// attributes that were not applicable there are absent rather than zeroed.
type RankingEntry struct {
	Repo       string                    // Repository identity
	Overall    float64                   // Overall score for reference
	Tier       CertTier                  // Certification tier for reference
	Rank       int                       // 1-based overall rank, 1 = best
	Percentile float64                   // Overall mid-rank percentile, 0-100
	Dimensions map[string]DimensionScore // Attribute ID -> per-dimension standing
}

// BenchmarkSnapshot captures population statistics for a batch of runs.
// It is derived wholesale from the batch at creation time and never
// incrementally updated; rebuild it when the population changes.
type BenchmarkSnapshot struct {
	Size       int                   // Number of repositories in the population
	CreatedAt  time.Time             // When the snapshot was built
	Overall    Statistics            // Statistics over all overall scores
	Dimensions map[string]Statistics // Attribute ID -> statistics over its sub-population
}

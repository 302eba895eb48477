package core

import (
	"sort"

	"github.com/repograde/repograde/schema"
)

// Rank places a value within a population and returns its 1-based rank
// (1 = best) and mid-rank percentile.
//
// The rank equals the 1-based position of the first occurrence of the value
// in the population sorted best-first, so tied scores share a rank. The
// percentile uses the mid-rank formula (below + 0.5*equal)/N*100, which
// avoids bias for ties; the value's own occurrence counts toward equal.
func Rank(value float64, population []float64, higherIsBetter bool) (int, float64) {
	n := len(population)
	if n == 0 {
		// A lone value is its own population: nothing below, one equal.
		return 1, 50.0
	}

	better := 0
	var below, equal float64
	for _, v := range population {
		switch {
		case v == value:
			equal++
		case (higherIsBetter && v > value) || (!higherIsBetter && v < value):
			better++
		default:
			below++
		}
	}

	rank := better + 1
	percentile := (below + 0.5*equal) / float64(n) * 100
	return rank, percentile
}

// RankPopulation ranks every repository in a batch: overall against all
// overall scores, and each attribute dimension against the sub-population of
// repositories that actually scored it. Attributes that were not applicable
// somewhere never distort ranks elsewhere. Entries are returned in input
// order.
func RankPopulation(runs []*schema.RunResult) []schema.RankingEntry {
	overalls := make([]float64, len(runs))
	for i, run := range runs {
		overalls[i] = run.Overall
	}

	// Sparse per-dimension populations: attribute ID -> repo -> score.
	dims := make(map[string]map[string]float64)
	for _, run := range runs {
		for _, rec := range run.Records {
			if !rec.HasScore() {
				continue
			}
			pop := dims[rec.AttributeID]
			if pop == nil {
				pop = make(map[string]float64)
				dims[rec.AttributeID] = pop
			}
			pop[run.Repo.Name] = rec.Score
		}
	}

	entries := make([]schema.RankingEntry, 0, len(runs))
	for _, run := range runs {
		rank, percentile := Rank(run.Overall, overalls, true)
		entry := schema.RankingEntry{
			Repo:       run.Repo.Name,
			Overall:    run.Overall,
			Tier:       run.Tier,
			Rank:       rank,
			Percentile: percentile,
			Dimensions: make(map[string]schema.DimensionScore),
		}

		for attrID, pop := range dims {
			score, ok := pop[run.Repo.Name]
			if !ok {
				continue
			}
			values := make([]float64, 0, len(pop))
			for _, v := range pop {
				values = append(values, v)
			}
			dimRank, dimPercentile := Rank(score, values, true)
			entry.Dimensions[attrID] = schema.DimensionScore{
				Score:      score,
				Rank:       dimRank,
				Percentile: dimPercentile,
			}
		}

		entries = append(entries, entry)
	}

	return entries
}

// Top returns the n best-ranked entries, rank ascending.
func Top(entries []schema.RankingEntry, n int) []schema.RankingEntry {
	sorted := sortedByRank(entries, true)
	if len(sorted) > n {
		return sorted[:n]
	}
	return sorted
}

// Bottom returns the n worst-ranked entries, rank descending.
func Bottom(entries []schema.RankingEntry, n int) []schema.RankingEntry {
	sorted := sortedByRank(entries, false)
	if len(sorted) > n {
		return sorted[:n]
	}
	return sorted
}

// sortedByRank copies and sorts entries by rank, breaking ties by repository
// name so cuts are deterministic.
func sortedByRank(entries []schema.RankingEntry, ascending bool) []schema.RankingEntry {
	sorted := make([]schema.RankingEntry, len(entries))
	copy(sorted, entries)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Rank != sorted[j].Rank {
			if ascending {
				return sorted[i].Rank < sorted[j].Rank
			}
			return sorted[i].Rank > sorted[j].Rank
		}
		return sorted[i].Repo < sorted[j].Repo
	})
	return sorted
}

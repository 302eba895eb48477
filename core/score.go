package core

import (
	"fmt"
	"math"

	"github.com/repograde/repograde/internal/contract"
	"github.com/repograde/repograde/schema"
)

// ComputeOverall reduces a record list into one overall score (0-100) and a
// certification tier via weighted averaging.
//
// Records whose attribute is excluded, and records without a score
// (not_applicable, skipped, error), are dropped from the denominator: they
// neither help nor hurt. The effective weight is the override when present
// and positive, else the default weight carried on the record. A zero weight
// sum falls back to the unweighted mean; no scorable records at all yields 0.
// The result is invariant under reordering of the input.
func ComputeOverall(records []schema.ResultRecord, weights map[string]float64, excluded map[string]struct{}) (float64, schema.CertTier) {
	var weightSum, weightedTotal, plainTotal float64
	scorable := 0

	for _, rec := range records {
		if _, ok := excluded[rec.AttributeID]; ok {
			continue
		}
		if !rec.HasScore() {
			continue
		}

		score := clampScore(rec.AttributeID, rec.Score)
		weight := rec.Weight
		if override, ok := weights[rec.AttributeID]; ok && override > 0 {
			weight = override
		}

		weightedTotal += score * weight
		weightSum += weight
		plainTotal += score
		scorable++
	}

	var overall float64
	switch {
	case weightSum > 0:
		overall = weightedTotal / weightSum
	case scorable > 0:
		overall = plainTotal / float64(scorable)
	default:
		overall = 0
	}

	overall = clamp(overall, 0, 100)
	return overall, schema.TierForScore(overall)
}

// clampScore enforces the 0-100 per-check score contract. Out-of-range or
// non-finite scores are a contract violation by the check; they are clamped
// with a logged warning rather than propagated.
func clampScore(attributeID string, score float64) float64 {
	if math.IsNaN(score) || math.IsInf(score, 0) {
		contract.LogWarn(fmt.Sprintf("check %s returned non-finite score, using 0", attributeID), nil)
		return 0
	}
	if score < 0 || score > 100 {
		contract.LogWarn(fmt.Sprintf("check %s returned out-of-range score %.2f, clamping", attributeID, score), nil)
	}
	return clamp(score, 0, 100)
}

// clamp bounds v to [lo, hi].
func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

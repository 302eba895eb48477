package core

import (
	"fmt"
	"time"

	"github.com/repograde/repograde/schema"
)

// BuildBenchmark derives a population snapshot from a batch of runs.
// The snapshot is computed wholesale and never updated in place; rebuild it
// whenever the population changes.
func BuildBenchmark(runs []*schema.RunResult) (*schema.BenchmarkSnapshot, error) {
	if len(runs) == 0 {
		return nil, fmt.Errorf("cannot build a benchmark: %w", ErrEmptySample)
	}

	overalls := make([]float64, len(runs))
	for i, run := range runs {
		overalls[i] = run.Overall
	}

	overall, err := Describe(overalls)
	if err != nil {
		return nil, err
	}

	// Per-dimension statistics over the repositories that scored each attribute.
	dimValues := make(map[string][]float64)
	for _, run := range runs {
		for _, rec := range run.Records {
			if rec.HasScore() {
				dimValues[rec.AttributeID] = append(dimValues[rec.AttributeID], rec.Score)
			}
		}
	}

	dims := make(map[string]schema.Statistics, len(dimValues))
	for attrID, values := range dimValues {
		stats, err := Describe(values)
		if err != nil {
			return nil, fmt.Errorf("dimension %s: %w", attrID, err)
		}
		dims[attrID] = stats
	}

	return &schema.BenchmarkSnapshot{
		Size:       len(runs),
		CreatedAt:  time.Now(),
		Overall:    overall,
		Dimensions: dims,
	}, nil
}

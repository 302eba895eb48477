package core

import (
	"errors"
	"math"
	"sort"

	"github.com/repograde/repograde/schema"
)

// ErrEmptySample is returned when statistics are requested over no data.
// Callers must not interpret an empty sample as zeros.
var ErrEmptySample = errors.New("statistics over an empty sample are undefined")

// Describe computes descriptive statistics over a numeric sample.
// The standard deviation is the population standard deviation.
func Describe(values []float64) (schema.Statistics, error) {
	n := len(values)
	if n == 0 {
		return schema.Statistics{}, ErrEmptySample
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	var sum float64
	for _, v := range sorted {
		sum += v
	}
	mean := sum / float64(n)

	var sqDiffSum float64
	for _, v := range sorted {
		d := v - mean
		sqDiffSum += d * d
	}
	stdDev := math.Sqrt(sqDiffSum / float64(n))

	return schema.Statistics{
		Count:  n,
		Mean:   mean,
		Median: Percentile(sorted, 50),
		StdDev: stdDev,
		Min:    sorted[0],
		Max:    sorted[n-1],
		P25:    Percentile(sorted, 25),
		P50:    Percentile(sorted, 50),
		P75:    Percentile(sorted, 75),
		P90:    Percentile(sorted, 90),
		P95:    Percentile(sorted, 95),
	}, nil
}

// Percentile returns the p-th percentile of an ascending-sorted sample using
// linear interpolation between the two nearest ranks. p <= 0 returns the
// minimum and p >= 100 the maximum.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 100 {
		return sorted[n-1]
	}

	idx := p / 100 * float64(n-1)
	lo := math.Floor(idx)
	hi := math.Ceil(idx)
	if lo == hi {
		return sorted[int(idx)]
	}
	return sorted[int(lo)] + (idx-lo)*(sorted[int(hi)]-sorted[int(lo)])
}

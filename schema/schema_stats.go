package schema

// Statistics holds descriptive statistics over a numeric sample.
// StdDev is the population standard deviation, not the sample one.
// Invariant: Min <= P25 <= Median <= P75 <= Max.
type Statistics struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	StdDev float64 `json:"stddev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	P25    float64 `json:"p25"`
	P50    float64 `json:"p50"`
	P75    float64 `json:"p75"`
	P90    float64 `json:"p90"`
	P95    float64 `json:"p95"`
}

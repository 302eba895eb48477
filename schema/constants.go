package schema

// Custom string types for type safety.
type (
	// Status represents the terminal outcome of running one check.
	Status string

	// CertTier represents a certification band derived from the overall score.
	CertTier string

	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for result storage.
	DatabaseBackend string
)

// All statuses supported.
const (
	PassStatus          Status = "pass"
	FailStatus          Status = "fail"
	NotApplicableStatus Status = "not_applicable"
	SkippedStatus       Status = "skipped"
	ErrorStatus         Status = "error"
)

// All certification tiers supported, highest first.
const (
	PlatinumTier    CertTier = "Platinum"
	GoldTier        CertTier = "Gold"
	SilverTier      CertTier = "Silver"
	BronzeTier      CertTier = "Bronze"
	NeedsImprovTier CertTier = "Needs Improvement"
)

// Certification thresholds, inclusive on the lower bound.
const (
	PlatinumThreshold = 90.0
	GoldThreshold     = 75.0
	SilverThreshold   = 60.0
	BronzeThreshold   = 40.0
)

// All output modes supported.
const (
	TextOut    OutputMode = "text" // default
	CSVOut     OutputMode = "csv"
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All storage backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// Attribute tier bounds. Tier 1 is most essential, tier 4 is advanced.
const (
	MinAttributeTier = 1
	MaxAttributeTier = 4
)

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut:    {},
	CSVOut:     {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidDatabaseBackends lists all valid storage backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// AllCertTiers returns the certification tiers from best to worst.
var AllCertTiers = []CertTier{PlatinumTier, GoldTier, SilverTier, BronzeTier, NeedsImprovTier}

// TierForScore maps an overall score to its certification tier.
// Boundaries are exact: 90.0 is Platinum, 89.999 is Gold.
func TierForScore(score float64) CertTier {
	switch {
	case score >= PlatinumThreshold:
		return PlatinumTier
	case score >= GoldThreshold:
		return GoldTier
	case score >= SilverThreshold:
		return SilverTier
	case score >= BronzeThreshold:
		return BronzeTier
	default:
		return NeedsImprovTier
	}
}

// GetDefaultWeight returns the default scoring weight for an attribute tier.
// Lower tiers carry more weight; configuration may override per attribute.
func GetDefaultWeight(tier int) float64 {
	switch tier {
	case 1:
		return 1.0
	case 2:
		return 0.75
	case 3:
		return 0.5
	default: // tier 4 and anything out of range
		return 0.25
	}
}

// Package schema has configs, models and shared constants for all parts of repograde.
package schema

import "fmt"

// Attribute is the static descriptor of a quality check. The attribute set is
// loaded once at startup from the catalog and is read-only afterwards.
type Attribute struct {
	ID            string  `yaml:"id"`          // Unique identifier, e.g. "has_readme"
	Name          string  `yaml:"name"`        // Human-readable display name
	Category      string  `yaml:"category"`    // Grouping bucket, e.g. "documentation"
	Tier          int     `yaml:"tier"`        // Priority bucket: 1 (essential) to 4 (advanced)
	DefaultWeight float64 `yaml:"weight"`      // Scoring weight; zero means derive from tier
	Description   string  `yaml:"description"` // Optional longer description
}

// Validate checks the attribute descriptor for catalog-loading errors.
func (a Attribute) Validate() error {
	if a.ID == "" {
		return fmt.Errorf("attribute is missing an id")
	}
	if a.Tier < MinAttributeTier || a.Tier > MaxAttributeTier {
		return fmt.Errorf("attribute %q has tier %d, must be between %d and %d", a.ID, a.Tier, MinAttributeTier, MaxAttributeTier)
	}
	if a.DefaultWeight < 0 || a.DefaultWeight > 1 {
		return fmt.Errorf("attribute %q has default weight %.3f, must be in [0, 1] (0 means tier default)", a.ID, a.DefaultWeight)
	}
	return nil
}

// EffectiveDefaultWeight returns the explicit default weight, or the
// tier-derived weight when the catalog left it unset.
func (a Attribute) EffectiveDefaultWeight() float64 {
	if a.DefaultWeight > 0 {
		return a.DefaultWeight
	}
	return GetDefaultWeight(a.Tier)
}

// AttributeIndex maps attribute IDs to their descriptors for fast lookup.
type AttributeIndex map[string]Attribute

// BuildAttributeIndex indexes a catalog slice by attribute ID.
// It rejects duplicate IDs since scoring and ranking key on them.
func BuildAttributeIndex(attrs []Attribute) (AttributeIndex, error) {
	idx := make(AttributeIndex, len(attrs))
	for _, a := range attrs {
		if err := a.Validate(); err != nil {
			return nil, err
		}
		if _, ok := idx[a.ID]; ok {
			return nil, fmt.Errorf("duplicate attribute id %q in catalog", a.ID)
		}
		idx[a.ID] = a
	}
	return idx, nil
}

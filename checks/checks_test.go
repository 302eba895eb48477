package checks

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLoadCatalogEmbedded loads the built-in catalog and confirms every
// attribute has a registered check.
func TestLoadCatalogEmbedded(t *testing.T) {
	idx, list, err := LoadCatalog("")
	require.NoError(t, err)

	assert.NotEmpty(t, idx)
	assert.Len(t, list, len(idx))

	for _, chk := range list {
		attr, ok := idx[chk.AttributeID()]
		require.True(t, ok, "check %s missing from index", chk.AttributeID())
		assert.Equal(t, attr.Tier, chk.Tier())
	}
}

// TestLoadCatalogUserFile loads a user catalog that retunes weights.
func TestLoadCatalogUserFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.yaml")
	content := `attributes:
  - id: has_readme
    name: README present
    category: documentation
    tier: 1
    weight: 0.8
  - id: mystery_attribute
    name: Not registered
    category: misc
    tier: 4
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	idx, list, err := LoadCatalog(path)
	require.NoError(t, err)

	// Unregistered attributes stay in the index but produce no check.
	assert.Len(t, idx, 2)
	require.Len(t, list, 1)
	assert.Equal(t, "has_readme", list[0].AttributeID())
	assert.InDelta(t, 0.8, idx["has_readme"].DefaultWeight, 0.0001)
}

// TestLoadCatalogErrors covers the catalog failure modes.
func TestLoadCatalogErrors(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		_, _, err := LoadCatalog(filepath.Join(dir, "nope.yaml"))
		assert.Error(t, err)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := filepath.Join(dir, "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("attributes: [oops"), 0o644))
		_, _, err := LoadCatalog(path)
		assert.Error(t, err)
	})

	t.Run("empty catalog", func(t *testing.T) {
		path := filepath.Join(dir, "empty.yaml")
		require.NoError(t, os.WriteFile(path, []byte("attributes: []"), 0o644))
		_, _, err := LoadCatalog(path)
		assert.Error(t, err)
	})

	t.Run("duplicate attribute id", func(t *testing.T) {
		path := filepath.Join(dir, "dup.yaml")
		content := `attributes:
  - {id: has_readme, name: A, category: c, tier: 1}
  - {id: has_readme, name: B, category: c, tier: 2}
`
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
		_, _, err := LoadCatalog(path)
		assert.Error(t, err)
	})

	t.Run("invalid tier", func(t *testing.T) {
		path := filepath.Join(dir, "tier.yaml")
		content := `attributes:
  - {id: has_readme, name: A, category: c, tier: 9}
`
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
		_, _, err := LoadCatalog(path)
		assert.Error(t, err)
	})
}

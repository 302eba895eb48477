package checks

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/repograde/repograde/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFiles(t *testing.T, root string, paths ...string) {
	t.Helper()
	for _, p := range paths {
		full := filepath.Join(root, filepath.FromSlash(p))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte("x"), 0o644))
	}
}

// TestFilePresenceCheck covers pattern matching across the built-in family.
func TestFilePresenceCheck(t *testing.T) {
	tests := []struct {
		name     string
		files    []string
		patterns []string
		status   schema.Status
		evidence string
	}{
		{
			name:     "readme found",
			files:    []string{"README.md"},
			patterns: []string{"README*"},
			status:   schema.PassStatus,
			evidence: "README.md",
		},
		{
			name:     "lowercase readme still counts",
			files:    []string{"readme.rst"},
			patterns: []string{"README*"},
			status:   schema.PassStatus,
			evidence: "readme.rst",
		},
		{
			name:     "missing license fails with hint",
			files:    []string{"README.md"},
			patterns: []string{"LICENSE*", "COPYING*"},
			status:   schema.FailStatus,
			evidence: "add the file",
		},
		{
			name:     "ci workflow in nested directory",
			files:    []string{".github/workflows/ci.yml"},
			patterns: []string{".github/workflows/*.yml"},
			status:   schema.PassStatus,
			evidence: ".github/workflows/ci.yml",
		},
		{
			name:     "second pattern matches",
			files:    []string{"COPYING"},
			patterns: []string{"LICENSE*", "COPYING*"},
			status:   schema.PassStatus,
			evidence: "COPYING",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			writeFiles(t, root, tt.files...)

			chk := &filePresenceCheck{
				attr:     schema.Attribute{ID: "probe", Tier: 1},
				patterns: tt.patterns,
				hint:     "add the file",
			}
			repo := schema.Repository{Name: "demo", Path: root}

			applicable, err := chk.IsApplicable(repo)
			require.NoError(t, err)
			assert.True(t, applicable)

			outcome, err := chk.Assess(context.Background(), repo)
			require.NoError(t, err)
			assert.Equal(t, tt.status, outcome.Status)
			assert.Contains(t, outcome.Evidence, tt.evidence)
			if tt.status == schema.PassStatus {
				assert.InDelta(t, 100.0, outcome.Score, 0.0001)
			} else {
				assert.Zero(t, outcome.Score)
			}
		})
	}
}

// TestFindMatchDirectory confirms directory entries match plain patterns.
func TestFindMatchDirectory(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "docs"), 0o755))

	match, err := findMatch(root, []string{"docs", "doc"})
	require.NoError(t, err)
	assert.Equal(t, "docs", match)
}

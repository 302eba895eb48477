package contract

import (
	"math"
	"testing"
	"time"

	"github.com/repograde/repograde/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validInput returns a raw input that passes validation against a temp dir.
func validInput(t *testing.T) *ConfigRawInput {
	t.Helper()
	return &ConfigRawInput{
		RepoPathStr:  t.TempDir(),
		Limit:        DefaultResultLimit,
		Workers:      4,
		Precision:    DefaultPrecision,
		Output:       string(schema.TextOut),
		StoreBackend: string(schema.NoneBackend),
		Emoji:        "no",
		Color:        "yes",
	}
}

// TestProcessAndValidate tests the happy path end to end.
func TestProcessAndValidate(t *testing.T) {
	cfg := &Config{}
	input := validInput(t)
	input.Weights = map[string]float64{"has_readme": 1.5}
	input.ExcludedList = []string{"lint_clean"}
	input.Exclude = "has_editorconfig, "
	input.CheckTimeout = "10s"

	require.NoError(t, ProcessAndValidate(cfg, input))
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, 10*time.Second, cfg.CheckTimeout)
	assert.Equal(t, 1.5, cfg.Weights["has_readme"])
	assert.Contains(t, cfg.Excluded, "lint_clean")
	assert.Contains(t, cfg.Excluded, "has_editorconfig")
	assert.Len(t, cfg.Excluded, 2)
}

// TestProcessAndValidateRejects tests config defect surfacing.
func TestProcessAndValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ConfigRawInput)
	}{
		{"zero limit", func(in *ConfigRawInput) { in.Limit = 0 }},
		{"excessive limit", func(in *ConfigRawInput) { in.Limit = MaxResultLimit + 1 }},
		{"zero workers", func(in *ConfigRawInput) { in.Workers = 0 }},
		{"bad precision", func(in *ConfigRawInput) { in.Precision = 3 }},
		{"bad output", func(in *ConfigRawInput) { in.Output = "xml" }},
		{"bad backend", func(in *ConfigRawInput) { in.StoreBackend = "oracle" }},
		{"bad timeout", func(in *ConfigRawInput) { in.CheckTimeout = "soon" }},
		{"negative timeout", func(in *ConfigRawInput) { in.CheckTimeout = "-5s" }},
		{"zero weight", func(in *ConfigRawInput) { in.Weights = map[string]float64{"x": 0} }},
		{"negative weight", func(in *ConfigRawInput) { in.Weights = map[string]float64{"x": -1} }},
		{"nan weight", func(in *ConfigRawInput) { in.Weights = map[string]float64{"x": math.NaN()} }},
		{"missing repo", func(in *ConfigRawInput) { in.RepoPathStr = "/does/not/exist" }},
		{"bad emoji flag", func(in *ConfigRawInput) { in.Emoji = "maybe" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validInput(t)
			tt.mutate(input)
			assert.Error(t, ProcessAndValidate(&Config{}, input))
		})
	}
}

// TestValidateDatabaseConnectionString tests backend-specific formats.
func TestValidateDatabaseConnectionString(t *testing.T) {
	assert.NoError(t, ValidateDatabaseConnectionString(schema.SQLiteBackend, ""))
	assert.NoError(t, ValidateDatabaseConnectionString(schema.NoneBackend, ""))
	assert.Error(t, ValidateDatabaseConnectionString(schema.MySQLBackend, ""))
	assert.Error(t, ValidateDatabaseConnectionString(schema.MySQLBackend, "localhost:3306"))
	assert.NoError(t, ValidateDatabaseConnectionString(schema.MySQLBackend, "root:secret@tcp(localhost:3306)/repograde"))
	assert.Error(t, ValidateDatabaseConnectionString(schema.PostgreSQLBackend, "localhost"))
	assert.NoError(t, ValidateDatabaseConnectionString(schema.PostgreSQLBackend, "host=localhost port=5432 dbname=repograde"))
}

// TestConfigClone verifies deep copies of maps.
func TestConfigClone(t *testing.T) {
	cfg := &Config{
		Weights:  map[string]float64{"a": 1.0},
		Excluded: map[string]struct{}{"b": {}},
	}
	clone := cfg.Clone()
	clone.Weights["a"] = 2.0
	clone.Excluded["c"] = struct{}{}

	assert.Equal(t, 1.0, cfg.Weights["a"])
	assert.NotContains(t, cfg.Excluded, "c")
}

// TestParseBoolString tests the flag parser.
func TestParseBoolString(t *testing.T) {
	for _, s := range []string{"", "yes", "TRUE", "1", "on"} {
		v, err := ParseBoolString(s)
		require.NoError(t, err)
		assert.True(t, v)
	}
	for _, s := range []string{"no", "False", "0", "off"} {
		v, err := ParseBoolString(s)
		require.NoError(t, err)
		assert.False(t, v)
	}
	_, err := ParseBoolString("sometimes")
	assert.Error(t, err)
}

package checks

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/repograde/repograde/internal/contract"
	"github.com/repograde/repograde/schema"
)

// healthyTestRatio is the test-to-source file ratio that earns a full score.
// One test file per two source files is treated as a healthy layout.
const healthyTestRatio = 0.5

// sourceExtensions are the extensions counted as source files per language.
var sourceExtensions = map[string][]string{
	"go":         {".go"},
	"python":     {".py"},
	"ruby":       {".rb"},
	"rust":       {".rs"},
	"java":       {".java"},
	"javascript": {".js", ".jsx"},
	"typescript": {".ts", ".tsx"},
}

// walkSkipDirs are directories never counted during the layout walk.
var walkSkipDirs = map[string]struct{}{
	".git":         {},
	"node_modules": {},
	"vendor":       {},
	"dist":         {},
	"build":        {},
	"target":       {},
	".venv":        {},
}

// testLayoutCheck scores the proportion of test files to source files using
// per-language naming conventions.
type testLayoutCheck struct {
	attr schema.Attribute
}

func (c *testLayoutCheck) AttributeID() string { return c.attr.ID }
func (c *testLayoutCheck) Tier() int           { return c.attr.Tier }

func (c *testLayoutCheck) IsApplicable(repo schema.Repository) (bool, error) {
	for lang := range sourceExtensions {
		if repo.HasLanguage(lang) {
			return true, nil
		}
	}
	return false, nil
}

func (c *testLayoutCheck) Assess(_ context.Context, repo schema.Repository) (contract.Outcome, error) {
	exts := make(map[string]struct{})
	for lang, list := range sourceExtensions {
		if repo.HasLanguage(lang) {
			for _, ext := range list {
				exts[ext] = struct{}{}
			}
		}
	}

	var source, tests int
	err := filepath.WalkDir(repo.Path, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // skip unreadable entries
		}
		if d.IsDir() {
			if _, skip := walkSkipDirs[d.Name()]; skip {
				return filepath.SkipDir
			}
			return nil
		}
		name := d.Name()
		if _, ok := exts[strings.ToLower(filepath.Ext(name))]; !ok {
			return nil
		}
		if isTestFile(name) {
			tests++
		} else {
			source++
		}
		return nil
	})
	if err != nil {
		return contract.Outcome{}, err
	}

	if source == 0 {
		return contract.Outcome{
			Status:   schema.FailStatus,
			Score:    0,
			Evidence: "no source files found for detected languages",
		}, nil
	}

	ratio := float64(tests) / float64(source)
	score := ratio / healthyTestRatio * 100
	if score > 100 {
		score = 100
	}

	status := schema.PassStatus
	if score < 50 {
		status = schema.FailStatus
	}
	return contract.Outcome{
		Status:   status,
		Score:    score,
		Evidence: fmt.Sprintf("%d test files for %d source files (ratio %.2f)", tests, source, ratio),
	}, nil
}

// isTestFile reports whether a file name follows a test naming convention.
func isTestFile(name string) bool {
	lower := strings.ToLower(name)
	base := strings.TrimSuffix(lower, filepath.Ext(lower))
	switch {
	case strings.HasSuffix(base, "_test"), strings.HasSuffix(base, "_spec"):
		return true
	case strings.HasPrefix(base, "test_"), strings.HasPrefix(base, "spec_"):
		return true
	case strings.HasSuffix(base, ".test"), strings.HasSuffix(base, ".spec"):
		return true
	}
	return false
}

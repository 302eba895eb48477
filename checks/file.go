package checks

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/repograde/repograde/internal/contract"
	"github.com/repograde/repograde/schema"
)

// filePresenceCheck passes when any of its patterns matches a path in the
// repository. Patterns are repo-relative globs; the final path element
// matches case-insensitively so README and readme.md both count.
type filePresenceCheck struct {
	attr     schema.Attribute
	patterns []string
	hint     string
}

func filePresenceFactory(patterns []string, hint string) checkFactory {
	return func(attr schema.Attribute) contract.Check {
		return &filePresenceCheck{attr: attr, patterns: patterns, hint: hint}
	}
}

func (c *filePresenceCheck) AttributeID() string { return c.attr.ID }
func (c *filePresenceCheck) Tier() int           { return c.attr.Tier }

// File presence is language-agnostic.
func (c *filePresenceCheck) IsApplicable(_ schema.Repository) (bool, error) {
	return true, nil
}

func (c *filePresenceCheck) Assess(_ context.Context, repo schema.Repository) (contract.Outcome, error) {
	match, err := findMatch(repo.Path, c.patterns)
	if err != nil {
		return contract.Outcome{}, err
	}
	if match != "" {
		return contract.Outcome{
			Status:   schema.PassStatus,
			Score:    100,
			Evidence: fmt.Sprintf("found %s", match),
		}, nil
	}
	return contract.Outcome{
		Status:   schema.FailStatus,
		Score:    0,
		Evidence: c.hint,
	}, nil
}

// findMatch returns the first repo-relative path matching any pattern, or ""
// when nothing matches. Directory parts of a pattern are taken literally;
// only the final element is a glob and matches case-insensitively.
func findMatch(root string, patterns []string) (string, error) {
	for _, pattern := range patterns {
		dir, base := filepath.Split(pattern)
		entries, err := os.ReadDir(filepath.Join(root, filepath.FromSlash(dir)))
		if err != nil {
			continue // missing directory means no match for this pattern
		}
		for _, entry := range entries {
			ok, err := filepath.Match(strings.ToLower(base), strings.ToLower(entry.Name()))
			if err != nil {
				return "", fmt.Errorf("bad pattern %q: %w", pattern, err)
			}
			if ok {
				return filepath.ToSlash(filepath.Join(dir, entry.Name())), nil
			}
		}
	}
	return "", nil
}

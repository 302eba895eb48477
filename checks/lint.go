package checks

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/repograde/repograde/internal/contract"
	"github.com/repograde/repograde/schema"
)

// lintIssuePenalty is the score deduction per reported lint issue.
const lintIssuePenalty = 5.0

// golangciLintCheck shells out to golangci-lint. An absent binary is a
// skipped record, not a failure; the repository cannot help what tools the
// host has installed.
type golangciLintCheck struct {
	attr schema.Attribute

	// lookPath is swappable for tests.
	lookPath func(file string) (string, error)
}

func (c *golangciLintCheck) AttributeID() string { return c.attr.ID }
func (c *golangciLintCheck) Tier() int           { return c.attr.Tier }

func (c *golangciLintCheck) IsApplicable(repo schema.Repository) (bool, error) {
	return repo.HasLanguage("go"), nil
}

func (c *golangciLintCheck) Assess(ctx context.Context, repo schema.Repository) (contract.Outcome, error) {
	look := c.lookPath
	if look == nil {
		look = exec.LookPath
	}
	bin, err := look("golangci-lint")
	if err != nil {
		return contract.Outcome{}, contract.NewMissingToolError(
			"golangci-lint", "install from https://golangci-lint.run")
	}

	cmd := exec.CommandContext(ctx, bin, "run", "./...")
	cmd.Dir = repo.Path
	var stdout bytes.Buffer
	cmd.Stdout = &stdout

	runErr := cmd.Run()
	if runErr == nil {
		return contract.Outcome{
			Status:   schema.PassStatus,
			Score:    100,
			Evidence: "lint reported no issues",
		}, nil
	}

	var exitErr *exec.ExitError
	if errors.As(runErr, &exitErr) && exitErr.ExitCode() == 1 {
		issues := countIssueLines(stdout.String())
		score := 100 - lintIssuePenalty*float64(issues)
		if score < 0 {
			score = 0
		}
		return contract.Outcome{
			Status:   schema.FailStatus,
			Score:    score,
			Evidence: fmt.Sprintf("lint reported %d issues", issues),
		}, nil
	}

	// Any other exit means the tool itself broke (bad config, no Go files).
	return contract.Outcome{}, fmt.Errorf("golangci-lint failed: %w", runErr)
}

// countIssueLines approximates the issue count from line-oriented output.
func countIssueLines(output string) int {
	count := 0
	for line := range strings.SplitSeq(output, "\n") {
		if strings.TrimSpace(line) != "" {
			count++
		}
	}
	return count
}

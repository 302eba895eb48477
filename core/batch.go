package core

import (
	"context"

	"github.com/repograde/repograde/internal/contract"
	"github.com/repograde/repograde/schema"
	"golang.org/x/sync/errgroup"
)

// RunBatch assesses many repositories concurrently, up to cfg.Workers at a
// time. Results come back in input order. A failed assessment (config defect
// or cancelled context) aborts the batch; per-check failures inside a run do
// not, since the runner already isolates those.
func RunBatch(ctx context.Context, cfg *contract.Config, repos []schema.Repository, checks []contract.Check, attrs schema.AttributeIndex) ([]*schema.RunResult, error) {
	results := make([]*schema.RunResult, len(repos))

	g, gctx := errgroup.WithContext(ctx)
	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}
	g.SetLimit(workers)

	for i, repo := range repos {
		g.Go(func() error {
			// Checks within a single run stay sequential here; batch-level
			// parallelism already saturates the worker budget.
			runCfg := cfg.Clone()
			runCfg.Workers = 1

			run, err := RunAssessment(gctx, runCfg, repo, checks, attrs)
			if err != nil {
				return err
			}
			results[i] = run
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

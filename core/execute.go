package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/repograde/repograde/checks"
	"github.com/repograde/repograde/internal/contract"
	"github.com/repograde/repograde/internal/outwriter"
	"github.com/repograde/repograde/schema"
)

// ExecutorFunc defines the function signature for executing commands.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error

// ExecuteAssess assesses a single repository and prints the run.
// It serves as the main entry point for the 'assess' command.
func ExecuteAssess(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	attrs, checkList, err := checks.LoadCatalog(cfg.CatalogPath)
	if err != nil {
		return err
	}

	repo, err := contract.NewRepository(cfg.RepoPath)
	if err != nil {
		return err
	}

	run, err := RunAssessment(ctx, cfg, repo, checkList, attrs)
	if err != nil {
		return err
	}

	persistRun(mgr, run)
	return outwriter.WriteRun(run, cfg)
}

// ExecuteBatch assesses every given repository path and prints the resulting
// population ranking. It serves as the main entry point for the 'batch'
// command.
func ExecuteBatch(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager, paths []string) error {
	runs, err := assessPaths(ctx, cfg, mgr, paths)
	if err != nil {
		return err
	}

	entries := RankPopulation(runs)
	return outwriter.WriteRankings(sortedByRank(entries, true), cfg)
}

// ExecuteRank assesses the given repository paths and prints the top and/or
// bottom cuts of the ranking. Zero for both counts means the full ranking.
func ExecuteRank(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager, paths []string, top, bottom int) error {
	runs, err := assessPaths(ctx, cfg, mgr, paths)
	if err != nil {
		return err
	}

	entries := RankPopulation(runs)
	switch {
	case top > 0 && bottom > 0:
		return errors.New("--top and --bottom are mutually exclusive")
	case top > 0:
		entries = Top(entries, top)
	case bottom > 0:
		entries = Bottom(entries, bottom)
	default:
		entries = sortedByRank(entries, true)
	}
	return outwriter.WriteRankings(entries, cfg)
}

// ExecuteBenchmark assesses the given repository paths and prints a
// population benchmark snapshot.
func ExecuteBenchmark(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager, paths []string) error {
	runs, err := assessPaths(ctx, cfg, mgr, paths)
	if err != nil {
		return err
	}

	snapshot, err := BuildBenchmark(runs)
	if err != nil {
		return err
	}
	return outwriter.WriteBenchmark(snapshot, cfg)
}

// ExecuteCatalog prints the attribute catalog without running any checks.
func ExecuteCatalog(_ context.Context, cfg *contract.Config, _ contract.StoreManager) error {
	attrs, _, err := checks.LoadCatalog(cfg.CatalogPath)
	if err != nil {
		return err
	}
	return outwriter.WriteCatalog(attrs, cfg)
}

// assessPaths resolves and assesses a set of repository paths, persisting
// each completed run.
func assessPaths(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager, paths []string) ([]*schema.RunResult, error) {
	if len(paths) == 0 {
		return nil, errors.New("at least one repository path is required")
	}

	attrs, checkList, err := checks.LoadCatalog(cfg.CatalogPath)
	if err != nil {
		return nil, err
	}

	repos := make([]schema.Repository, 0, len(paths))
	for _, p := range paths {
		repo, err := contract.NewRepository(p)
		if err != nil {
			return nil, fmt.Errorf("invalid repository path %q: %w", p, err)
		}
		repos = append(repos, repo)
	}

	runs, err := RunBatch(ctx, cfg, repos, checkList, attrs)
	if err != nil {
		return nil, err
	}

	for _, run := range runs {
		persistRun(mgr, run)
	}
	return runs, nil
}

// persistRun saves a run to the configured result store. Persistence is
// best-effort; a store failure never fails the assessment itself.
func persistRun(mgr contract.StoreManager, run *schema.RunResult) {
	if mgr == nil {
		return
	}
	store := mgr.GetResultStore()
	if store == nil {
		return
	}
	if err := store.SaveRun(run); err != nil {
		contract.LogWarn(fmt.Sprintf("failed to persist run %s", run.RunID), err)
	}
}

package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/repograde/repograde/checks"
	"github.com/repograde/repograde/core"
	"github.com/repograde/repograde/internal/contract"
	"github.com/repograde/repograde/schema"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.StoreManager
}

func (h *toolHandler) handleAssessRepository(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if p := request.GetString("repo_path", ""); p != "" {
		cfg.RepoPath = p
	}
	if c := request.GetString("catalog", ""); c != "" {
		cfg.CatalogPath = c
	}

	attrs, checkList, err := checks.LoadCatalog(cfg.CatalogPath)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid catalog: %v", err)), nil
	}

	repo, err := contract.NewRepository(cfg.RepoPath)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid repository path: %v", err)), nil
	}

	run, err := core.RunAssessment(ctx, cfg, repo, checkList, attrs)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("assessment failed: %v", err)), nil
	}
	h.persist(run)

	jsonData, _ := json.MarshalIndent(run, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleRankRepositories(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	top := request.GetInt("top", 0)
	bottom := request.GetInt("bottom", 0)
	if top > 0 && bottom > 0 {
		return mcp.NewToolResultError("top and bottom are mutually exclusive"), nil
	}

	runs, res := h.assessMany(ctx, request)
	if res != nil {
		return res, nil
	}

	entries := core.RankPopulation(runs)
	switch {
	case top > 0:
		entries = core.Top(entries, top)
	case bottom > 0:
		entries = core.Bottom(entries, bottom)
	}

	jsonData, _ := json.MarshalIndent(entries, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleBenchmarkRepositories(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	runs, res := h.assessMany(ctx, request)
	if res != nil {
		return res, nil
	}

	snapshot, err := core.BuildBenchmark(runs)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("benchmark failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(snapshot, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetCatalog(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if c := request.GetString("catalog", ""); c != "" {
		cfg.CatalogPath = c
	}

	attrs, _, err := checks.LoadCatalog(cfg.CatalogPath)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid catalog: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(attrs, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

// assessMany runs assessments over the comma-separated repo_paths argument.
// A non-nil CallToolResult signals an error already formatted for the client.
func (h *toolHandler) assessMany(ctx context.Context, request mcp.CallToolRequest) ([]*schema.RunResult, *mcp.CallToolResult) {
	cfg := h.baseCfg.Clone()
	if c := request.GetString("catalog", ""); c != "" {
		cfg.CatalogPath = c
	}

	paths := splitPaths(request.GetString("repo_paths", ""))
	if len(paths) == 0 {
		return nil, mcp.NewToolResultError("repo_paths is required")
	}

	attrs, checkList, err := checks.LoadCatalog(cfg.CatalogPath)
	if err != nil {
		return nil, mcp.NewToolResultError(fmt.Sprintf("invalid catalog: %v", err))
	}

	repos := make([]schema.Repository, 0, len(paths))
	for _, p := range paths {
		repo, err := contract.NewRepository(p)
		if err != nil {
			return nil, mcp.NewToolResultError(fmt.Sprintf("invalid repository path %q: %v", p, err))
		}
		repos = append(repos, repo)
	}

	runs, err := core.RunBatch(ctx, cfg, repos, checkList, attrs)
	if err != nil {
		return nil, mcp.NewToolResultError(fmt.Sprintf("assessment failed: %v", err))
	}
	for _, run := range runs {
		h.persist(run)
	}
	return runs, nil
}

// persist saves a run to the result store when one is configured. Store
// failures never fail the tool call.
func (h *toolHandler) persist(run *schema.RunResult) {
	if h.mgr == nil {
		return
	}
	store := h.mgr.GetResultStore()
	if store == nil {
		return
	}
	if err := store.SaveRun(run); err != nil {
		contract.LogWarn(fmt.Sprintf("failed to persist run %s", run.RunID), err)
	}
}

func splitPaths(raw string) []string {
	var paths []string
	for _, p := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			paths = append(paths, trimmed)
		}
	}
	return paths
}

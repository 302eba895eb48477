// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/repograde/repograde/internal/contract"
)

// NewMCPServer initializes and configures the Repograde MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.StoreManager) *server.MCPServer {
	s := server.NewMCPServer(
		"Repograde Assessment Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
	}

	// --- 1. Tool: assess_repository ---
	s.AddTool(mcp.NewTool("assess_repository",
		mcp.WithDescription("Assess a single repository against the attribute catalog and return its scored run."),
		mcp.WithString("repo_path", mcp.Description("Path to the repository (defaults to current directory if not specified).")),
		mcp.WithString("catalog", mcp.Description("Path to a custom attribute catalog YAML file.")),
	), h.handleAssessRepository)

	// --- 2. Tool: rank_repositories ---
	s.AddTool(mcp.NewTool("rank_repositories",
		mcp.WithDescription("Assess multiple repositories and rank them against each other."),
		mcp.WithString("repo_paths", mcp.Description("Comma-separated repository paths."), mcp.Required()),
		mcp.WithNumber("top", mcp.Description("Return only the N best-ranked repositories.")),
		mcp.WithNumber("bottom", mcp.Description("Return only the N worst-ranked repositories.")),
		mcp.WithString("catalog", mcp.Description("Path to a custom attribute catalog YAML file.")),
	), h.handleRankRepositories)

	// --- 3. Tool: benchmark_repositories ---
	s.AddTool(mcp.NewTool("benchmark_repositories",
		mcp.WithDescription("Assess multiple repositories and return descriptive statistics over their scores."),
		mcp.WithString("repo_paths", mcp.Description("Comma-separated repository paths."), mcp.Required()),
		mcp.WithString("catalog", mcp.Description("Path to a custom attribute catalog YAML file.")),
	), h.handleBenchmarkRepositories)

	// --- 4. Tool: get_catalog ---
	s.AddTool(mcp.NewTool("get_catalog",
		mcp.WithDescription("List the attribute catalog used for assessments."),
		mcp.WithString("catalog", mcp.Description("Path to a custom attribute catalog YAML file.")),
	), h.handleGetCatalog)

	return s
}

// StartMCPServer starts the Repograde MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.StoreManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}

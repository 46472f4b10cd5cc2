// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/guidepost-dev/guidepost/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the Guidepost MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.StoreManager) *server.MCPServer {
	s := server.NewMCPServer(
		"Guidepost Guidelines Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
	}

	// --- 1. Tool: refresh_guidelines ---
	s.AddTool(mcp.NewTool("refresh_guidelines",
		mcp.WithDescription("Analyze git history and review feedback to regenerate coding guidelines for an area of the repository."),
		mcp.WithString("area", mcp.Description("Relative path of the area to analyze, e.g. 'frontend/components'."), mcp.Required()),
		mcp.WithString("depth", mcp.Description("Analysis depth profile (quick, standard, deep). Defaults to the configured depth."), mcp.Enum("quick", "standard", "deep")),
		mcp.WithString("repo_path", mcp.Description("Path to the Git repository (defaults to the configured repository).")),
	), h.handleRefreshGuidelines)

	// --- 2. Tool: list_themes ---
	s.AddTool(mcp.NewTool("list_themes",
		mcp.WithDescription("List the effective theme dictionary used to classify commit messages and review comments."),
	), h.handleListThemes)

	// --- 3. Tool: get_refresh_history ---
	s.AddTool(mcp.NewTool("get_refresh_history",
		mcp.WithDescription("List recorded refresh runs from the run-history store."),
		mcp.WithNumber("limit", mcp.Description("Return only the most recent N runs.")),
	), h.handleGetRefreshHistory)

	return s
}

// StartMCPServer starts the Guidepost MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.StoreManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}

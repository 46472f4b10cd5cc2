package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/guidepost-dev/guidepost/core"
	"github.com/guidepost-dev/guidepost/internal/contract"
	"github.com/guidepost-dev/guidepost/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.StoreManager
}

// refreshSummary is the refresh result returned over MCP, matching the CLI's
// JSON output shape.
type refreshSummary struct {
	*schema.RefreshResult
	DurationMs int64 `json:"duration_ms"`
}

func (h *toolHandler) handleRefreshGuidelines(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if p := request.GetString("repo_path", ""); p != "" {
		cfg.RepoPath = p
	}

	area := request.GetString("area", "")
	depth := request.GetString("depth", "")
	if err := contract.RevalidateRefresh(cfg, area, depth); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid refresh parameters: %v", err)), nil
	}

	result, duration, err := core.ExecuteRefresh(ctx, cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("refresh failed: %v", err)), nil
	}

	summary := refreshSummary{RefreshResult: result, DurationMs: duration.Milliseconds()}
	jsonData, _ := json.MarshalIndent(summary, "", "  ")

	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleListThemes(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	jsonData, _ := json.MarshalIndent(h.baseCfg.Themes, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetRefreshHistory(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	runs, err := h.mgr.GetRunStore().GetAllRuns()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("history lookup failed: %v", err)), nil
	}

	// Runs arrive oldest first; the limit keeps the most recent ones
	if limit := request.GetInt("limit", 0); limit > 0 && limit < len(runs) {
		runs = runs[len(runs)-limit:]
	}

	jsonData, _ := json.MarshalIndent(runs, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

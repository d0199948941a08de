package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/huangsam/debtscope/core/agg"
	"github.com/huangsam/debtscope/core/signal"
	"github.com/huangsam/debtscope/internal/contract"
	"github.com/huangsam/debtscope/internal/iocache"
	"github.com/huangsam/debtscope/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	cache   contract.RepoCache
}

// loadRepos reads the configured cache, or an override path when provided.
func (h *toolHandler) loadRepos(cacheFile string) ([]schema.RepoMetrics, string, error) {
	cache := h.cache
	if cacheFile != "" {
		cache = iocache.NewRepoCacheFile(cacheFile)
	}
	repos, err := cache.Load()
	if err != nil {
		return nil, cache.Path(), err
	}
	if len(repos) == 0 {
		return nil, cache.Path(), fmt.Errorf("no cached repositories at %s, run the repos pipeline first", cache.Path())
	}
	return repos, cache.Path(), nil
}

func (h *toolHandler) handleClassifyCommitMessage(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	message := request.GetString("message", "")
	if message == "" {
		return mcp.NewToolResultError("message is required"), nil
	}

	hits := signal.Classify(message)
	jsonData, _ := json.MarshalIndent(hits, "", "  ")

	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetEraSummary(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	repos, _, err := h.loadRepos(request.GetString("cache_file", ""))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("cache load failed: %v", err)), nil
	}

	stats := agg.AggregateByEra(repos, time.Now())
	jsonData, _ := json.MarshalIndent(stats, "", "  ")

	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetDebtExtremes(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	repos, _, err := h.loadRepos(request.GetString("cache_file", ""))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("cache load failed: %v", err)), nil
	}

	limit := request.GetInt("limit", contract.DefaultExtremesCount)
	if limit < 1 {
		return mcp.NewToolResultError("limit must be at least 1"), nil
	}

	highest, lowest := agg.FindExtremes(repos, limit)
	payload := map[string][]schema.ExtremeEntry{
		"highest_debt_ratio": highest,
		"lowest_debt_ratio":  lowest,
	}
	jsonData, _ := json.MarshalIndent(payload, "", "  ")

	return mcp.NewToolResultText(string(jsonData)), nil
}

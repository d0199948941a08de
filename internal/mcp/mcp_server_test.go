package mcp_test

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/debtscope/internal/contract"
	"github.com/huangsam/debtscope/internal/iocache"
	mcp_internal "github.com/huangsam/debtscope/internal/mcp"
	"github.com/huangsam/debtscope/schema"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMCPServerHandlers(t *testing.T) {
	cachePath := filepath.Join(t.TempDir(), "repo_cache.json")
	cache := iocache.NewRepoCacheFile(cachePath)
	require.NoError(t, cache.Save([]schema.RepoMetrics{
		{FullName: "old/repo", Stars: 10000, OpenIssues: 200, CreatedAt: time.Date(2015, 1, 1, 0, 0, 0, 0, time.UTC)},
		{FullName: "new/repo", Stars: 5000, OpenIssues: 10, CreatedAt: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)},
	}))

	baseCfg := &contract.Config{CacheFile: cachePath, Precision: 2}
	s := mcp_internal.NewMCPServer(baseCfg, cache)

	ctx := context.Background()

	t.Run("classify_commit_message classifies signals", func(t *testing.T) {
		tool := s.GetTool("classify_commit_message")
		require.NotNil(t, tool, "Tool classify_commit_message should exist")

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name: "classify_commit_message",
				Arguments: map[string]any{
					"message": "TODO: fix this hack later",
				},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err, "The MCP handler should not return a raw error for tool logic failures")
		require.False(t, res.IsError)

		var hits map[schema.SignalCategory]map[string]int
		text := res.Content[0].(mcp.TextContent).Text
		require.NoError(t, json.Unmarshal([]byte(text), &hits))
		assert.Equal(t, 1, hits[schema.DebtSignals]["todo"])
		assert.Equal(t, 1, hits[schema.DebtSignals]["hack"])
		assert.Equal(t, 1, hits[schema.BugSignals]["fix"])
	})

	t.Run("classify_commit_message missing message", func(t *testing.T) {
		tool := s.GetTool("classify_commit_message")
		require.NotNil(t, tool)

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name:      "classify_commit_message",
				Arguments: map[string]any{},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err)
		assert.True(t, res.IsError, "The response should indicate an error state")
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "message is required")
	})

	t.Run("get_era_summary reads the cache", func(t *testing.T) {
		tool := s.GetTool("get_era_summary")
		require.NotNil(t, tool, "Tool get_era_summary should exist")

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name:      "get_era_summary",
				Arguments: map[string]any{},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err)
		require.False(t, res.IsError)

		var stats map[schema.Era]schema.EraStats
		text := res.Content[0].(mcp.TextContent).Text
		require.NoError(t, json.Unmarshal([]byte(text), &stats))
		assert.Equal(t, 1, stats[schema.PreAIEra].Count)
		assert.Equal(t, 1, stats[schema.PostAIEra].Count)
	})

	t.Run("get_era_summary missing cache", func(t *testing.T) {
		tool := s.GetTool("get_era_summary")
		require.NotNil(t, tool)

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name: "get_era_summary",
				Arguments: map[string]any{
					"cache_file": filepath.Join(t.TempDir(), "missing.json"),
				},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err)
		assert.True(t, res.IsError)
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "no cached repositories")
	})

	t.Run("get_debt_extremes honors limit", func(t *testing.T) {
		tool := s.GetTool("get_debt_extremes")
		require.NotNil(t, tool, "Tool get_debt_extremes should exist")

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name: "get_debt_extremes",
				Arguments: map[string]any{
					"limit": 1.0,
				},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err)
		require.False(t, res.IsError)

		var payload map[string][]schema.ExtremeEntry
		text := res.Content[0].(mcp.TextContent).Text
		require.NoError(t, json.Unmarshal([]byte(text), &payload))
		require.Len(t, payload["highest_debt_ratio"], 1)
		require.Len(t, payload["lowest_debt_ratio"], 1)
		assert.Equal(t, "old/repo", payload["highest_debt_ratio"][0].FullName)
		assert.Equal(t, "new/repo", payload["lowest_debt_ratio"][0].FullName)
	})

	t.Run("get_debt_extremes invalid limit", func(t *testing.T) {
		tool := s.GetTool("get_debt_extremes")
		require.NotNil(t, tool)

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name: "get_debt_extremes",
				Arguments: map[string]any{
					"limit": -2.0,
				},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err)
		assert.True(t, res.IsError)
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "limit must be at least 1")
	})
}

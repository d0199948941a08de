// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/huangsam/debtscope/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the Debtscope MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, cache contract.RepoCache) *server.MCPServer {
	s := server.NewMCPServer(
		"Debtscope Analysis Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		cache:   cache,
	}

	// --- 1. Tool: classify_commit_message ---
	s.AddTool(mcp.NewTool("classify_commit_message",
		mcp.WithDescription("Classify a commit message into debt, bug, revert, frustration and positive signals."),
		mcp.WithString("message", mcp.Description("The commit message to classify."), mcp.Required()),
	), h.handleClassifyCommitMessage)

	// --- 2. Tool: get_era_summary ---
	s.AddTool(mcp.NewTool("get_era_summary",
		mcp.WithDescription("Summarize cached repository metrics by pre-AI and post-AI era."),
		mcp.WithString("cache_file", mcp.Description("Path to the repo cache file (defaults to the configured cache).")),
	), h.handleGetEraSummary)

	// --- 3. Tool: get_debt_extremes ---
	s.AddTool(mcp.NewTool("get_debt_extremes",
		mcp.WithDescription("List cached repositories with the highest and lowest open issues per 1K stars."),
		mcp.WithString("cache_file", mcp.Description("Path to the repo cache file (defaults to the configured cache).")),
		mcp.WithNumber("limit", mcp.Description("Number of entries per extreme. Defaults to 10.")),
	), h.handleGetDebtExtremes)

	return s
}

// StartMCPServer starts the Debtscope MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, cache contract.RepoCache) error {
	s := NewMCPServer(baseCfg, cache)
	return server.ServeStdio(s)
}

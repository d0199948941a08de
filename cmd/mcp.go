package cmd

import (
	"github.com/huangsam/debtscope/internal/iocache"
	"github.com/huangsam/debtscope/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the Debtscope MCP server",
	Long:  `Launch an MCP server that lets AI agents classify commit messages and query cached era statistics via standard tools.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		// Setup logging goes to stderr, so stdout stays clean for
		// the protocol.
		return sharedSetup(rootCtx, cmd, args)
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, iocache.NewRepoCacheFile(cfg.CacheFile))
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

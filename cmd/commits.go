package cmd

import (
	"github.com/huangsam/debtscope/core"
	"github.com/huangsam/debtscope/internal/contract"
	"github.com/huangsam/debtscope/internal/ghclient"
	"github.com/huangsam/debtscope/internal/iocache"
	"github.com/huangsam/debtscope/internal/outwriter"
	"github.com/spf13/cobra"
)

// commitsCmd runs the commit signal pipeline.
var commitsCmd = &cobra.Command{
	Use:   "commits",
	Short: "Scan commit messages for debt, bug, and frustration signals.",
	Long: `Sample the most-starred cached repositories from each era and classify
their recent commit messages with keyword signal tables.

Five signal categories are tracked: debt (TODO, FIXME, HACK), bug fixes,
reverts, frustration, and positive cleanup work. Counts are normalized to
signals per 100 commits so eras of different sizes compare fairly.

Requires a repo cache produced by 'debtscope repos'.

Examples:
  # Analyze 30 repos with 300 commits each (defaults)
  debtscope commits

  # Wider sample with deeper history
  debtscope commits --commit-repos 50 --commits-per-repo 500

  # Write the report and flattened summaries to files
  debtscope commits --report-file signals.md --output json --data-file signals.json`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		client := ghclient.NewClient(cfg.Token)
		cache := iocache.NewRepoCacheFile(cfg.CacheFile)
		store := newRunStore()
		defer closeStore(store)

		if err := core.ExecuteCommitAnalysis(rootCtx, cfg, client, cache, store, outwriter.NewOutWriter()); err != nil {
			contract.LogFatal("Cannot run commit analysis", err)
		}
	},
}

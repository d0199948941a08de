package cmd

import (
	"github.com/huangsam/debtscope/core"
	"github.com/huangsam/debtscope/internal/contract"
	"github.com/huangsam/debtscope/internal/ghclient"
	"github.com/huangsam/debtscope/internal/iocache"
	"github.com/huangsam/debtscope/internal/outwriter"
	"github.com/spf13/cobra"
)

// reposCmd runs the repository metrics pipeline.
var reposCmd = &cobra.Command{
	Use:   "repos",
	Short: "Compare open-issue debt ratios across pre-AI and post-AI repositories.",
	Long: `Fetch popular repositories per language and era, then compare issue
accumulation between repos created before and after January 2022.

The core metric is open issues per 1,000 stars, a normalized measure of
maintenance burden relative to popularity. Results are grouped by era and
language, with the most and least debt-ridden repos listed.

Examples:
  # Standard analysis with default settings
  debtscope repos

  # Reuse cached repo metadata
  debtscope repos --use-cache

  # Fetch extended metrics for every repo (slow, more API calls)
  debtscope repos --extended

  # Enrich only the 20 most-starred repos
  debtscope repos --enrich-top 20

  # Narrow the language set and write the report to a file
  debtscope repos --languages go,rust --report-file debt_report.md

  # Export raw records alongside the report
  debtscope repos --output csv --data-file repos.csv`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		client := ghclient.NewClient(cfg.Token)
		cache := iocache.NewRepoCacheFile(cfg.CacheFile)
		store := newRunStore()
		defer closeStore(store)

		if err := core.ExecuteRepoAnalysis(rootCtx, cfg, client, cache, store, outwriter.NewOutWriter()); err != nil {
			contract.LogFatal("Cannot run repository analysis", err)
		}
	},
}

// closeStore closes an optional run store.
func closeStore(store contract.RunStore) {
	if store != nil {
		_ = store.Close()
	}
}

package core

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/huangsam/debtscope/core/agg"
	"github.com/huangsam/debtscope/internal/contract"
	"github.com/huangsam/debtscope/internal/outwriter"
	"github.com/huangsam/debtscope/schema"
)

// enrichProgressEvery controls how often enrichment progress is reported.
const enrichProgressEvery = 10

// ExecuteRepoAnalysis runs the repository metrics pipeline end to end:
// fetch or load repos, optionally enrich, aggregate, and write outputs.
func ExecuteRepoAnalysis(ctx context.Context, cfg *contract.Config, client contract.HubClient, cache contract.RepoCache, store contract.RunStore, ow *outwriter.OutWriter) error {
	start := time.Now()
	runID := beginRun(store, start, "repos", map[string]any{
		"max_repos": cfg.MaxRepos,
		"min_stars": cfg.MinStars,
		"languages": cfg.Languages,
		"extended":  cfg.Extended,
		"use_cache": cfg.UseCache,
	})

	var repos []schema.RepoMetrics
	if cfg.UseCache {
		repos, _ = cache.Load()
		if len(repos) > 0 {
			contract.LogProgress("Loaded %d repos from cache at %s", len(repos), cache.Path())
		}
	}
	if len(repos) == 0 {
		contract.LogProgress("Fetching repository data...")
		repos = fetchPopularRepos(ctx, cfg, client)
		if len(repos) == 0 {
			return errors.New("no repositories fetched")
		}
		if err := cache.Save(repos); err != nil {
			contract.LogWarn("Cache save failed", err)
		}
	}

	if cfg.Extended {
		contract.LogProgress("Fetching extended metrics for %d repos...", len(repos))
		for i := range repos {
			enrichRepo(ctx, client, &repos[i])
			if (i+1)%enrichProgressEvery == 0 {
				contract.LogProgress("  Progress: %d/%d", i+1, len(repos))
			}
		}
		if err := cache.Save(repos); err != nil {
			contract.LogWarn("Cache save failed", err)
		}
	} else if cfg.EnrichTop > 0 {
		contract.LogProgress("Enriching top %d repos with extended metrics...", cfg.EnrichTop)
		for _, idx := range topStarIndexes(repos, cfg.EnrichTop) {
			enrichRepo(ctx, client, &repos[idx])
		}
		if err := cache.Save(repos); err != nil {
			contract.LogWarn("Cache save failed", err)
		}
	}

	contract.LogProgress("Analyzed %d repositories", len(repos))

	now := time.Now()
	result := &schema.RepoAnalysisResult{
		Repos:       repos,
		ByEra:       agg.AggregateByEra(repos, now),
		ByLanguage:  agg.AggregateByLanguage(repos),
		GeneratedAt: now,
	}
	result.HighestDebt, result.LowestDebt = agg.FindExtremes(repos, contract.DefaultExtremesCount)

	recordRepoEraStats(store, runID, result.ByEra)
	endRun(store, runID, len(repos))

	return ow.WriteRepos(result, cfg, time.Since(start))
}

// fetchPopularRepos searches per language and era window until the repo
// budget is reached. Failed queries are skipped, not fatal.
func fetchPopularRepos(ctx context.Context, cfg *contract.Config, client contract.HubClient) []schema.RepoMetrics {
	windows := []string{
		fmt.Sprintf("created:<%d-01-01", schema.EraCutoffYear),
		fmt.Sprintf("created:>=%d-01-01", schema.EraCutoffYear),
	}

	var repos []schema.RepoMetrics
	for _, lang := range cfg.Languages {
		contract.LogProgress("Fetching %s repos...", lang)
		for _, window := range windows {
			query := fmt.Sprintf("language:%s stars:>%d %s", lang, cfg.MinStars, window)
			batch, err := client.SearchRepositories(ctx, query, contract.DefaultSearchPageSize, 1)
			if err != nil {
				contract.LogWarn(fmt.Sprintf("Search failed for %q", query), err)
				continue
			}
			repos = append(repos, batch...)
		}
		if len(repos) >= cfg.MaxRepos {
			break
		}
	}
	if len(repos) > cfg.MaxRepos {
		repos = repos[:cfg.MaxRepos]
	}
	return repos
}

// enrichRepo fetches extended metrics for one repository. Failures leave the
// zero values in place so aggregation skips the repo's extended stats.
func enrichRepo(ctx context.Context, client contract.HubClient, r *schema.RepoMetrics) {
	contract.LogProgress("  Enriching %s...", r.FullName)

	openCount, err := client.IssueCount(ctx, r.FullName, "open")
	if err != nil {
		contract.LogWarn(fmt.Sprintf("Enrich failed for %s", r.FullName), err)
		return
	}
	closedCount, err := client.IssueCount(ctx, r.FullName, "closed")
	if err != nil {
		contract.LogWarn(fmt.Sprintf("Enrich failed for %s", r.FullName), err)
		return
	}
	r.TotalIssues = openCount + closedCount
	r.ClosedIssues = closedCount

	contributors, err := client.ContributorCount(ctx, r.FullName)
	if err != nil {
		contract.LogWarn(fmt.Sprintf("Enrich failed for %s", r.FullName), err)
		return
	}
	r.Contributors = contributors
}

// topStarIndexes returns the indexes of the n most-starred repos.
func topStarIndexes(repos []schema.RepoMetrics, n int) []int {
	order := make([]int, len(repos))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return repos[order[a]].Stars > repos[order[b]].Stars
	})
	if n > len(order) {
		n = len(order)
	}
	return order[:n]
}

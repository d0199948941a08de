package core

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/huangsam/debtscope/core/agg"
	"github.com/huangsam/debtscope/core/signal"
	"github.com/huangsam/debtscope/internal/contract"
	"github.com/huangsam/debtscope/internal/outwriter"
	"github.com/huangsam/debtscope/schema"
)

// Commit fetching and sampling constraints.
const (
	commitPageSize  = 100
	maxSampleCount  = 20
	sampleLineWidth = 100
	summarySamples  = 5
)

// ExecuteCommitAnalysis runs the commit signal pipeline end to end: select
// cached repos per era, fetch and classify commit messages, aggregate, and
// write outputs. A missing repo cache is not an error; the pipeline reports
// it and returns so the caller exits cleanly.
func ExecuteCommitAnalysis(ctx context.Context, cfg *contract.Config, client contract.HubClient, cache contract.RepoCache, store contract.RunStore, ow *outwriter.OutWriter) error {
	start := time.Now()

	repos, err := cache.Load()
	if err != nil || len(repos) == 0 {
		contract.LogProgress("No repo cache found at %s. Run the repos pipeline first.", cache.Path())
		return nil
	}
	contract.LogProgress("Loaded %d repos from cache", len(repos))

	selected := selectEraBalanced(repos, cfg.CommitRepos)
	contract.LogProgress("Analyzing %d repos (%d per era)", len(selected), cfg.CommitRepos/2)

	runID := beginRun(store, start, "commits", map[string]any{
		"commit_repos":     cfg.CommitRepos,
		"commits_per_repo": cfg.CommitsPerRepo,
	})

	analyses := make([]*schema.CommitAnalysis, 0, len(selected))
	totalCommits := 0
	for i := range selected {
		r := &selected[i]
		contract.LogProgress("[%d/%d] %s", i+1, len(selected), r.FullName)

		analysis := analyzeRepoCommits(ctx, client, r, cfg.CommitsPerRepo)
		analyses = append(analyses, analysis)
		totalCommits += analysis.TotalCommits

		contract.LogProgress("    %d commits, debt=%.1f%%, bugs=%.1f%%, frustration=%.2f%%",
			analysis.TotalCommits,
			analysis.SignalRatio(schema.DebtSignals),
			analysis.SignalRatio(schema.BugSignals),
			analysis.SignalRatio(schema.FrustrationSignals))
	}

	now := time.Now()
	result := &schema.CommitAnalysisResult{
		Analyses:    analyses,
		ByEra:       agg.AggregateCommitsByEra(analyses),
		GeneratedAt: now,
	}

	recordCommitEraStats(store, runID, result.ByEra)
	endRun(store, runID, totalCommits)

	return ow.WriteCommits(result, buildCommitSummaries(analyses), cfg, time.Since(start))
}

// selectEraBalanced splits repos by era, sorts each partition by stars
// descending, and takes sampleSize/2 from each so both eras are represented
// equally.
func selectEraBalanced(repos []schema.RepoMetrics, sampleSize int) []schema.RepoMetrics {
	var pre, post []schema.RepoMetrics
	for _, r := range repos {
		if r.Era() == schema.PreAIEra {
			pre = append(pre, r)
		} else {
			post = append(post, r)
		}
	}
	sort.SliceStable(pre, func(i, j int) bool { return pre[i].Stars > pre[j].Stars })
	sort.SliceStable(post, func(i, j int) bool { return post[i].Stars > post[j].Stars })

	half := sampleSize / 2
	if len(pre) > half {
		pre = pre[:half]
	}
	if len(post) > half {
		post = post[:half]
	}
	return append(pre, post...)
}

// fetchCommitMessages pages through a repo's commit history until the commit
// budget, an empty page, or a failed page.
func fetchCommitMessages(ctx context.Context, client contract.HubClient, fullName string, maxCommits int) []string {
	var messages []string
	for page := 1; len(messages) < maxCommits; page++ {
		batch, err := client.ListCommitMessages(ctx, fullName, commitPageSize, page)
		if err != nil {
			contract.LogWarn(fmt.Sprintf("Commit fetch failed for %s", fullName), err)
			break
		}
		if len(batch) == 0 {
			break
		}
		messages = append(messages, batch...)
	}
	if len(messages) > maxCommits {
		messages = messages[:maxCommits]
	}
	return messages
}

// analyzeRepoCommits classifies one repository's commit messages. Empty
// messages are skipped entirely.
func analyzeRepoCommits(ctx context.Context, client contract.HubClient, r *schema.RepoMetrics, maxCommits int) *schema.CommitAnalysis {
	analysis := schema.NewCommitAnalysis(r.FullName, r.CreatedAt)

	for _, message := range fetchCommitMessages(ctx, client, r.FullName, maxCommits) {
		if message == "" {
			continue
		}
		analysis.TotalCommits++
		analysis.MessageLengths = append(analysis.MessageLengths, len(message))

		hits := signal.Classify(message)
		for cat, tally := range hits {
			for name, count := range tally {
				analysis.Signals[cat][name] += count
			}
		}

		// Keep a few first lines of debt or frustration messages for the report
		if len(hits[schema.DebtSignals]) > 0 || len(hits[schema.FrustrationSignals]) > 0 {
			if len(analysis.SampleMessages) < maxSampleCount {
				analysis.SampleMessages = append(analysis.SampleMessages, contract.FirstLine(message, sampleLineWidth))
			}
		}
	}
	return analysis
}

// buildCommitSummaries flattens analyses into the per-repo export records.
func buildCommitSummaries(analyses []*schema.CommitAnalysis) []schema.CommitSummary {
	summaries := make([]schema.CommitSummary, 0, len(analyses))
	for _, a := range analyses {
		debtSignals := make(map[string]int, len(a.Signals[schema.DebtSignals]))
		for name, count := range a.Signals[schema.DebtSignals] {
			debtSignals[name] = count
		}
		samples := a.SampleMessages
		if len(samples) > summarySamples {
			samples = samples[:summarySamples]
		}
		summaries = append(summaries, schema.CommitSummary{
			Repo:             a.Repo,
			Era:              a.Era,
			TotalCommits:     a.TotalCommits,
			DebtRatio:        a.SignalRatio(schema.DebtSignals),
			BugRatio:         a.SignalRatio(schema.BugSignals),
			RevertRatio:      a.SignalRatio(schema.RevertSignals),
			FrustrationRatio: a.SignalRatio(schema.FrustrationSignals),
			PositiveRatio:    a.SignalRatio(schema.PositiveSignals),
			AvgMessageLength: a.AvgMessageLength(),
			DebtSignals:      debtSignals,
			Samples:          samples,
		})
	}
	return summaries
}

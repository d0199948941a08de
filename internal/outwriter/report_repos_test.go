package outwriter

import (
	"strings"
	"testing"
	"time"

	"github.com/huangsam/debtscope/internal/contract"
	"github.com/huangsam/debtscope/schema"
	"github.com/stretchr/testify/assert"
)

func sampleRepoResult() *schema.RepoAnalysisResult {
	return &schema.RepoAnalysisResult{
		Repos: []schema.RepoMetrics{
			{FullName: "old/repo", Stars: 10000, OpenIssues: 200, CreatedAt: time.Date(2015, 1, 1, 0, 0, 0, 0, time.UTC), Language: "Go"},
			{FullName: "new/repo", Stars: 5000, OpenIssues: 10, CreatedAt: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC), Language: "Rust"},
		},
		ByEra: map[schema.Era]schema.EraStats{
			schema.PreAIEra:  {Count: 1, AvgIssuesPer1K: 20, MedianIssuesPer1K: 20, TotalStars: 10000, TotalOpenIssues: 200},
			schema.PostAIEra: {Count: 1, AvgIssuesPer1K: 2, MedianIssuesPer1K: 2, TotalStars: 5000, TotalOpenIssues: 10},
		},
		ByLanguage: []schema.LanguageStats{
			{Language: "Go", Count: 4, AvgIssuesPer1K: 18.5, MedianIssuesPer1K: 17.2},
		},
		HighestDebt: []schema.ExtremeEntry{
			{FullName: "old/repo", Stars: 10000, OpenIssues: 200, IssuesPer1K: 20, Created: "2015-01-01", Era: schema.PreAIEra},
		},
		LowestDebt: []schema.ExtremeEntry{
			{FullName: "new/repo", Stars: 5000, OpenIssues: 10, IssuesPer1K: 2, Created: "2023-01-01", Era: schema.PostAIEra},
		},
		GeneratedAt: time.Date(2025, 7, 1, 10, 30, 0, 0, time.UTC),
	}
}

// TestRenderRepoReportSections verifies the fixed section order and key rows.
func TestRenderRepoReportSections(t *testing.T) {
	cfg := &contract.Config{Precision: 2, MinStars: 1000}
	report := RenderRepoReport(sampleRepoResult(), cfg)

	sections := []string{
		"# GitHub Technical Debt Analysis Report",
		"## Executive Summary",
		"## Era Comparison",
		"## Analysis by Language",
		"## Highest Debt Ratios (Most Issues per Star)",
		"## Lowest Debt Ratios (Fewest Issues per Star)",
		"## Methodology Notes",
		"## Conclusion",
	}
	last := -1
	for _, section := range sections {
		idx := strings.Index(report, section)
		assert.Greater(t, idx, last, "section %q out of order", section)
		last = idx
	}

	assert.Contains(t, report, "Generated: 2025-07-01 10:30:00")
	assert.Contains(t, report, "Total Repositories Analyzed: 2")
	assert.Contains(t, report, "Pre-AI era repos show HIGHER issue ratios")
	assert.Contains(t, report, "| Repos Analyzed | 1 | 1 |")
	assert.Contains(t, report, "| Total Stars | 10,000 | 5,000 |")
	assert.Contains(t, report, "| Go | 4 | 18.50 | 17.20 |")
	assert.Contains(t, report, "| old/repo | 10,000 | 200 | 20.00 | 2015-01-01 | pre-ai |")
	assert.Contains(t, report, "**Minimum Stars**: 1,000")
}

// TestRenderRepoReportNoEnrichment verifies close rate and contributors fall
// back to N/A without extended data.
func TestRenderRepoReportNoEnrichment(t *testing.T) {
	cfg := &contract.Config{Precision: 2, MinStars: 1000}
	report := RenderRepoReport(sampleRepoResult(), cfg)

	assert.Contains(t, report, "| Avg Issue Close Rate % | N/A | N/A |")
	assert.Contains(t, report, "| Avg Contributors | N/A | N/A |")
}

// TestRenderRepoReportEmptyEra verifies an empty era renders zeros and N/A
// rather than dropping rows.
func TestRenderRepoReportEmptyEra(t *testing.T) {
	result := sampleRepoResult()
	result.ByEra[schema.PostAIEra] = schema.EraStats{}

	cfg := &contract.Config{Precision: 2, MinStars: 1000}
	report := RenderRepoReport(result, cfg)

	assert.Contains(t, report, "| Repos Analyzed | 1 | 0 |")
	assert.Contains(t, report, "| Avg Issues per 1K Stars | 20.00 | N/A |")
}

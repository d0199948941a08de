package outwriter

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/huangsam/debtscope/internal/contract"
	"github.com/huangsam/debtscope/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleCommitResult() *schema.CommitAnalysisResult {
	preAnalysis := schema.NewCommitAnalysis("old/repo", time.Date(2015, 1, 1, 0, 0, 0, 0, time.UTC))
	preAnalysis.SampleMessages = []string{"TODO: fix this hack later", "finally got it working"}
	postAnalysis := schema.NewCommitAnalysis("new/repo", time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC))

	return &schema.CommitAnalysisResult{
		Analyses: []*schema.CommitAnalysis{preAnalysis, postAnalysis},
		ByEra: map[schema.Era]schema.CommitEraStats{
			schema.PreAIEra: {
				Repos:        1,
				TotalCommits: 1500,
				RatioPer100: map[schema.SignalCategory]float64{
					schema.DebtSignals: 4.2, schema.BugSignals: 21.0, schema.RevertSignals: 0.8,
					schema.FrustrationSignals: 1.1, schema.PositiveSignals: 9.7,
				},
				TopSignals: map[schema.SignalCategory][]schema.SignalCount{
					schema.DebtSignals:        {{Name: "todo", Count: 40}, {Name: "hack", Count: 12}},
					schema.FrustrationSignals: {{Name: "finally", Count: 9}},
				},
				AvgMessageLength: 58.3,
			},
			schema.PostAIEra: {
				Repos:        1,
				TotalCommits: 900,
				RatioPer100: map[schema.SignalCategory]float64{
					schema.DebtSignals: 3.1, schema.BugSignals: 18.5, schema.RevertSignals: 0.5,
					schema.FrustrationSignals: 0.6, schema.PositiveSignals: 11.2,
				},
				TopSignals:       map[schema.SignalCategory][]schema.SignalCount{},
				AvgMessageLength: 47.0,
			},
		},
		GeneratedAt: time.Date(2025, 7, 1, 10, 30, 0, 0, time.UTC),
	}
}

// TestRenderCommitReportSections verifies the fixed section order and key rows.
func TestRenderCommitReportSections(t *testing.T) {
	cfg := &contract.Config{Precision: 2, CommitsPerRepo: 300}
	report := RenderCommitReport(sampleCommitResult(), cfg)

	sections := []string{
		"# Commit Message Signal Analysis",
		"## Overview",
		"## Era Comparison",
		"## Top Debt Signals Found",
		"## Top Frustration Signals Found",
		"## Sample Commit Messages (Debt/Frustration)",
		"## Methodology",
		"## Key Insight",
	}
	last := -1
	for _, section := range sections {
		idx := strings.Index(report, section)
		assert.Greater(t, idx, last, "section %q out of order", section)
		last = idx
	}

	assert.Contains(t, report, "| Repos Analyzed | 1 | 1 |")
	assert.Contains(t, report, "| Total Commits | 1,500 | 900 |")
	assert.Contains(t, report, "| **Debt signals** per 100 | 4.20 | 3.10 | TODO, FIXME, HACK, etc. |")
	assert.Contains(t, report, "| **Bug/fix signals** per 100 | 21.00 | 18.50 | fix, bug, issue, patch |")
	assert.Contains(t, report, "| Avg message length | 58.30 | 47.00 | chars |")
	assert.Contains(t, report, "- **todo**: 40")
	assert.Contains(t, report, "- \"TODO: fix this hack later\"")
	assert.Contains(t, report, "up to 300 most recent commits per repo")
}

// TestRenderCommitReportEmptySignals verifies that empty signal lists and
// sample sets render the placeholder text.
func TestRenderCommitReportEmptySignals(t *testing.T) {
	cfg := &contract.Config{Precision: 2, CommitsPerRepo: 300}
	report := RenderCommitReport(sampleCommitResult(), cfg)

	// Post-AI era has no top signals and no samples
	assert.Contains(t, report, "None found")
	assert.Contains(t, report, "None collected")
}

// TestCollectSamplesCaps verifies per-repo and per-era sample caps.
func TestCollectSamplesCaps(t *testing.T) {
	var analyses []*schema.CommitAnalysis
	for range 4 {
		a := schema.NewCommitAnalysis("old/repo", time.Date(2015, 1, 1, 0, 0, 0, 0, time.UTC))
		a.SampleMessages = []string{"m1", "m2", "m3", "m4", "m5", "m6", "m7"}
		analyses = append(analyses, a)
	}

	preSamples, postSamples := collectSamples(analyses)
	assert.Len(t, preSamples, samplesPerEra)
	assert.Empty(t, postSamples)
}

// TestWriteCommitCSVRows verifies the flattened CSV row layout.
func TestWriteCommitCSVRows(t *testing.T) {
	summaries := []schema.CommitSummary{
		{
			Repo: "old/repo", Era: schema.PreAIEra, TotalCommits: 1500,
			DebtRatio: 4.2, BugRatio: 21.0, RevertRatio: 0.8,
			FrustrationRatio: 1.1, PositiveRatio: 9.7, AvgMessageLength: 58.3,
		},
	}
	fmtFloat, _ := createFormatters(2)

	var buf bytes.Buffer
	header := []string{"repo", "era", "total_commits", "debt_ratio", "bug_ratio", "revert_ratio", "frustration_ratio", "positive_ratio", "avg_message_length"}
	err := writeCSVWithHeader(&buf, header, func(w *csv.Writer) error {
		return w.Write([]string{
			summaries[0].Repo, string(summaries[0].Era), "1500",
			fmtFloat(summaries[0].DebtRatio), fmtFloat(summaries[0].BugRatio),
			fmtFloat(summaries[0].RevertRatio), fmtFloat(summaries[0].FrustrationRatio),
			fmtFloat(summaries[0].PositiveRatio), fmtFloat(summaries[0].AvgMessageLength),
		})
	})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "repo,era,total_commits,debt_ratio,bug_ratio,revert_ratio,frustration_ratio,positive_ratio,avg_message_length", lines[0])
	assert.Equal(t, "old/repo,pre-ai,1500,4.20,21.00,0.80,1.10,9.70,58.30", lines[1])
}

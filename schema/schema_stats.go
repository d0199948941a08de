package schema

import "time"

// EraStats holds aggregate repository statistics for one era partition.
type EraStats struct {
	Count              int     `json:"count"`
	AvgIssuesPer1K     float64 `json:"avg_issues_per_1k_stars"`
	MedianIssuesPer1K  float64 `json:"median_issues_per_1k_stars"`
	StdDevIssuesPer1K  float64 `json:"std_dev_ratio"`
	TotalStars         int     `json:"total_stars"`
	TotalOpenIssues    int     `json:"total_open_issues"`
	AvgStars           float64 `json:"avg_stars"`
	AvgOpenIssues      float64 `json:"avg_open_issues"`
	AvgIssuesPerYear   float64 `json:"avg_issues_per_year"`
	MedianIssuesPerYr  float64 `json:"median_issues_per_year"`
	HasEnrichment      bool    `json:"has_enrichment"`
	AvgCloseRate       float64 `json:"avg_close_rate,omitempty"`
	MedianCloseRate    float64 `json:"median_close_rate,omitempty"`
	AvgContributors    float64 `json:"avg_contributors,omitempty"`
	MedianContributors float64 `json:"median_contributors,omitempty"`
}

// LanguageStats holds per-language issue ratio statistics.
type LanguageStats struct {
	Language          string  `json:"language"`
	Count             int     `json:"count"`
	AvgIssuesPer1K    float64 `json:"avg_issues_per_1k_stars"`
	MedianIssuesPer1K float64 `json:"median_issues_per_1k_stars"`
}

// ExtremeEntry is a single row in the highest/lowest debt ratio tables.
type ExtremeEntry struct {
	FullName    string  `json:"name"`
	Stars       int     `json:"stars"`
	OpenIssues  int     `json:"open_issues"`
	IssuesPer1K float64 `json:"issues_per_1k_stars"`
	Created     string  `json:"created"` // YYYY-MM-DD
	Era         Era     `json:"era"`
}

// RepoAnalysisResult bundles everything the repository metrics report needs.
type RepoAnalysisResult struct {
	Repos       []RepoMetrics
	ByEra       map[Era]EraStats
	ByLanguage  []LanguageStats
	HighestDebt []ExtremeEntry
	LowestDebt  []ExtremeEntry
	GeneratedAt time.Time
}

// SignalCount pairs a signal name with its total hit count.
type SignalCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// CommitEraStats holds aggregate commit-signal statistics for one era.
type CommitEraStats struct {
	Repos            int                               `json:"repos"`
	TotalCommits     int                               `json:"total_commits"`
	RatioPer100      map[SignalCategory]float64        `json:"ratio_per_100"`
	TopSignals       map[SignalCategory][]SignalCount  `json:"top_signals"`
	AvgMessageLength float64                           `json:"avg_msg_length"`
}

// CommitAnalysisResult bundles everything the commit signal report needs.
type CommitAnalysisResult struct {
	Analyses    []*CommitAnalysis
	ByEra       map[Era]CommitEraStats
	GeneratedAt time.Time
}

// CommitSummary is the flattened per-repository record exported after a
// commit signal run. Produced, never consumed.
type CommitSummary struct {
	Repo             string         `json:"repo"`
	Era              Era            `json:"era"`
	TotalCommits     int            `json:"total_commits"`
	DebtRatio        float64        `json:"debt_ratio"`
	BugRatio         float64        `json:"bug_ratio"`
	RevertRatio      float64        `json:"revert_ratio"`
	FrustrationRatio float64        `json:"frustration_ratio"`
	PositiveRatio    float64        `json:"positive_ratio"`
	AvgMessageLength float64        `json:"avg_message_length"`
	DebtSignals      map[string]int `json:"debt_signals"`
	Samples          []string       `json:"frustration_samples"`
}

// RunStatus reports on the run-tracking store for the cache command.
type RunStatus struct {
	Backend       string
	Connected     bool
	TotalRuns     int
	LastRunTime   time.Time
	OldestRunTime time.Time
}

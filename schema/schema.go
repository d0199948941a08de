// Package schema has configs, models and constants for all parts of debtscope.
package schema

import "time"

// RepoMetrics represents the debt-related metrics for a single repository.
// It is constructed from one search API record, optionally enriched with
// issue and contributor counts, and cached as a flattened JSON record.
type RepoMetrics struct {
	Name         string     `json:"name"`                 // Repository name without owner
	FullName     string     `json:"full_name"`            // Owner-qualified name, e.g. "torvalds/linux"
	Stars        int        `json:"stars"`                // Stargazer count at fetch time
	OpenIssues   int        `json:"open_issues"`          // Open issue count from the search record
	CreatedAt    time.Time  `json:"created_at"`           // Repository creation time
	Language     string     `json:"language,omitempty"`   // Primary language, empty if undetected
	Forks        int        `json:"forks"`                // Fork count
	TotalIssues  int        `json:"total_issues"`         // Open + closed issues (enrichment)
	ClosedIssues int        `json:"closed_issues"`        // Closed issue count (enrichment)
	Contributors int        `json:"contributors"`         // Contributor count (enrichment)
	UpdatedAt    *time.Time `json:"updated_at,omitempty"` // Last update time, if reported
}

// IssuesPer1KStars is open issues normalized per 1000 stars.
// Returns 0 for repos with no stars instead of dividing by zero.
func (r *RepoMetrics) IssuesPer1KStars() float64 {
	if r.Stars == 0 {
		return 0
	}
	return float64(r.OpenIssues) / float64(r.Stars) * 1000
}

// IssueCloseRate is the percentage of all known issues that are closed.
// Only meaningful after enrichment; returns 0 when no issues are known.
func (r *RepoMetrics) IssueCloseRate() float64 {
	if r.TotalIssues == 0 {
		return 0
	}
	return float64(r.ClosedIssues) / float64(r.TotalIssues) * 100
}

// AgeDays is the repository age in days relative to now.
func (r *RepoMetrics) AgeDays(now time.Time) int {
	return int(now.Sub(r.CreatedAt).Hours() / 24)
}

// IssuesPerYear is the average open issues accumulated per year of existence.
// Age is floored at 0.1 years so brand-new repos do not inflate the ratio.
func (r *RepoMetrics) IssuesPerYear(now time.Time) float64 {
	years := float64(r.AgeDays(now)) / 365
	if years < 0.1 {
		years = 0.1
	}
	return float64(r.OpenIssues) / years
}

// Era classifies the repository by its creation year against the AI cutoff.
func (r *RepoMetrics) Era() Era {
	return ClassifyEra(r.CreatedAt)
}

// ClassifyEra maps a creation time to an era. A repo created exactly at
// 2022-01-01T00:00:00Z is post-AI.
func ClassifyEra(createdAt time.Time) Era {
	if createdAt.Year() < EraCutoffYear {
		return PreAIEra
	}
	return PostAIEra
}

// CommitAnalysis is the per-repository aggregate of commit-message signals.
// One instance is built per repository per run, accumulated commit by commit.
type CommitAnalysis struct {
	Repo           string                            // Owner-qualified repository name
	Era            Era                               // Era of the repository, from its creation time
	TotalCommits   int                               // Non-empty commit messages analyzed
	Signals        map[SignalCategory]map[string]int // Category -> signal name -> hit count
	MessageLengths []int                             // Length of each analyzed message
	SampleMessages []string                          // First lines of debt/frustration messages, capped
}

// NewCommitAnalysis returns an analysis with all five tally maps initialized.
func NewCommitAnalysis(repo string, createdAt time.Time) *CommitAnalysis {
	signals := make(map[SignalCategory]map[string]int, len(AllSignalCategories))
	for _, cat := range AllSignalCategories {
		signals[cat] = make(map[string]int)
	}
	return &CommitAnalysis{
		Repo:    repo,
		Era:     ClassifyEra(createdAt),
		Signals: signals,
	}
}

// SignalRatio is the number of hits in a category per 100 commits.
// Returns 0 when no commits were analyzed.
func (a *CommitAnalysis) SignalRatio(cat SignalCategory) float64 {
	if a.TotalCommits == 0 {
		return 0
	}
	total := 0
	for _, n := range a.Signals[cat] {
		total += n
	}
	return float64(total) / float64(a.TotalCommits) * 100
}

// AvgMessageLength is the mean analyzed message length in characters.
func (a *CommitAnalysis) AvgMessageLength() float64 {
	if len(a.MessageLengths) == 0 {
		return 0
	}
	sum := 0
	for _, n := range a.MessageLengths {
		sum += n
	}
	return float64(sum) / float64(len(a.MessageLengths))
}

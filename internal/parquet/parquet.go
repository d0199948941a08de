// Package parquet provides data structures and functions for exporting
// repository and commit signal data to Parquet files using
// github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/huangsam/debtscope/schema"
	"github.com/parquet-go/parquet-go"
)

// RepoRecord is the flattened Parquet form of one repository's metrics.
type RepoRecord struct {
	// FullName is the owner/name identifier on GitHub
	FullName string `parquet:"full_name,snappy"`

	// Stars is the stargazer count at fetch time
	Stars int32 `parquet:"stars,snappy"`

	// OpenIssues is the open issue count at fetch time
	OpenIssues int32 `parquet:"open_issues,snappy"`

	// CreatedAt is when the repository was created (stored as TIMESTAMP with nanosecond precision)
	CreatedAt time.Time `parquet:"created_at,snappy"`

	// Language is the primary language reported by GitHub (nullable)
	Language *string `parquet:"language,optional,snappy"`

	// Forks is the fork count at fetch time
	Forks int32 `parquet:"forks,snappy"`

	// IssuesPer1KStars is the debt ratio derived from stars and open issues
	IssuesPer1KStars float64 `parquet:"issues_per_1k_stars,snappy"`

	// Era partitions the repository by creation date
	Era string `parquet:"era,snappy"`

	// TotalIssues is the all-state issue count, zero when enrichment was skipped
	TotalIssues int32 `parquet:"total_issues,snappy"`

	// ClosedIssues is the closed issue count, zero when enrichment was skipped
	ClosedIssues int32 `parquet:"closed_issues,snappy"`

	// Contributors is the contributor count, zero when enrichment was skipped
	Contributors int32 `parquet:"contributors,snappy"`
}

// CommitRecord is the flattened Parquet form of one repository's commit
// signal summary.
type CommitRecord struct {
	// Repo is the owner/name identifier on GitHub
	Repo string `parquet:"repo,snappy"`

	// Era partitions the repository by creation date
	Era string `parquet:"era,snappy"`

	// TotalCommits is the number of commit messages analyzed
	TotalCommits int32 `parquet:"total_commits,snappy"`

	// DebtRatio is debt signal hits per 100 commits
	DebtRatio float64 `parquet:"debt_ratio,snappy"`

	// BugRatio is bug signal hits per 100 commits
	BugRatio float64 `parquet:"bug_ratio,snappy"`

	// RevertRatio is revert signal hits per 100 commits
	RevertRatio float64 `parquet:"revert_ratio,snappy"`

	// FrustrationRatio is frustration signal hits per 100 commits
	FrustrationRatio float64 `parquet:"frustration_ratio,snappy"`

	// PositiveRatio is positive signal hits per 100 commits
	PositiveRatio float64 `parquet:"positive_ratio,snappy"`

	// AvgMessageLength is the mean message length in characters
	AvgMessageLength float64 `parquet:"avg_message_length,snappy"`
}

// WriteRepoRecordsParquet writes a slice of RepoRecord structs to a Parquet file.
func WriteRepoRecordsParquet(data []RepoRecord, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Schema is inferred from the RepoRecord struct tags
	writer := parquet.NewGenericWriter[RepoRecord](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// WriteCommitRecordsParquet writes a slice of CommitRecord structs to a Parquet file.
func WriteCommitRecordsParquet(data []CommitRecord, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Schema is inferred from the CommitRecord struct tags
	writer := parquet.NewGenericWriter[CommitRecord](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// ConvertRepoMetrics converts schema.RepoMetrics to RepoRecord for Parquet export.
func ConvertRepoMetrics(repos []schema.RepoMetrics) []RepoRecord {
	result := make([]RepoRecord, len(repos))
	for i := range repos {
		r := &repos[i]
		var lang *string
		if r.Language != "" {
			lang = &r.Language
		}
		result[i] = RepoRecord{
			FullName:         r.FullName,
			Stars:            int32(r.Stars),
			OpenIssues:       int32(r.OpenIssues),
			CreatedAt:        r.CreatedAt,
			Language:         lang,
			Forks:            int32(r.Forks),
			IssuesPer1KStars: r.IssuesPer1KStars(),
			Era:              string(r.Era()),
			TotalIssues:      int32(r.TotalIssues),
			ClosedIssues:     int32(r.ClosedIssues),
			Contributors:     int32(r.Contributors),
		}
	}
	return result
}

// ConvertCommitSummaries converts schema.CommitSummary to CommitRecord for Parquet export.
func ConvertCommitSummaries(summaries []schema.CommitSummary) []CommitRecord {
	result := make([]CommitRecord, len(summaries))
	for i, s := range summaries {
		result[i] = CommitRecord{
			Repo:             s.Repo,
			Era:              string(s.Era),
			TotalCommits:     int32(s.TotalCommits),
			DebtRatio:        s.DebtRatio,
			BugRatio:         s.BugRatio,
			RevertRatio:      s.RevertRatio,
			FrustrationRatio: s.FrustrationRatio,
			PositiveRatio:    s.PositiveRatio,
			AvgMessageLength: s.AvgMessageLength,
		}
	}
	return result
}

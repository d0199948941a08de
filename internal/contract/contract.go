// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"
	"time"

	"github.com/huangsam/debtscope/schema"
)

// HubClient defines the GitHub operations both pipelines need.
// This allows the core pipelines to be tested without network access.
type HubClient interface {
	// SearchRepositories returns one page of raw repository records matching
	// the query. An empty page means the search is exhausted.
	SearchRepositories(ctx context.Context, query string, perPage, page int) ([]schema.RepoMetrics, error)

	// ListCommitMessages returns one page of commit messages for a repository.
	// An empty page means the history is exhausted.
	ListCommitMessages(ctx context.Context, fullName string, perPage, page int) ([]string, error)

	// IssueCount returns the number of issues in the given state using a
	// count-only search query.
	IssueCount(ctx context.Context, fullName, state string) (int, error)

	// ContributorCount returns the contributor count, read from the last-page
	// number of the contributors endpoint's pagination header.
	ContributorCount(ctx context.Context, fullName string) (int, error)
}

// RepoCache defines the persistence of fetched repository metrics between runs.
type RepoCache interface {
	// Load reads cached repo records. A missing or malformed cache file is
	// not an error; it returns an empty slice.
	Load() ([]schema.RepoMetrics, error)

	// Save writes the full repo list, replacing any previous contents.
	Save(repos []schema.RepoMetrics) error

	// Path returns the backing file path for user-facing messages.
	Path() string
}

// RunStore defines the interface for tracking analysis runs.
type RunStore interface {
	// BeginRun creates a new run record and returns its unique ID.
	BeginRun(startTime time.Time, pipeline string, configParams map[string]any) (int64, error)

	// EndRun updates the run record with completion data.
	EndRun(runID int64, endTime time.Time, itemsAnalyzed int) error

	// RecordEraStats stores the aggregate statistics for one era of a run.
	RecordEraStats(runID int64, era schema.Era, repoCount int, avgRatio float64) error

	// GetStatus returns status information about the run store.
	GetStatus() (schema.RunStatus, error)

	// Close closes the underlying connection.
	Close() error
}

// Sleeper abstracts blocking waits so rate-limit backoff is testable
// without real delays.
type Sleeper interface {
	Sleep(d time.Duration)
}

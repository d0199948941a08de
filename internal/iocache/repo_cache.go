// Package iocache persists fetched data between runs: a JSON cache of
// repository records and a database-backed run tracking store.
package iocache

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/huangsam/debtscope/internal/contract"
	"github.com/huangsam/debtscope/schema"
)

// cachedRepo is the flattened on-disk form of one repository record.
// Derived fields (era, ratio) are stored for external consumers but
// recomputed from the base fields on load.
type cachedRepo struct {
	Name         string     `json:"name"`
	FullName     string     `json:"full_name"`
	Stars        int        `json:"stars"`
	OpenIssues   int        `json:"open_issues"`
	CreatedAt    time.Time  `json:"created_at"`
	Language     string     `json:"language,omitempty"`
	Forks        int        `json:"forks"`
	TotalIssues  int        `json:"total_issues"`
	ClosedIssues int        `json:"closed_issues"`
	Contributors int        `json:"contributors"`
	UpdatedAt    *time.Time `json:"updated_at,omitempty"`
	Era          schema.Era `json:"era"`
	IssuesPer1K  float64    `json:"issues_per_1k_stars"`
}

// RepoCacheFile stores repository records as a JSON array on disk.
type RepoCacheFile struct {
	path string
}

var _ contract.RepoCache = &RepoCacheFile{} // Compile-time check

// NewRepoCacheFile returns a cache backed by the given file path.
func NewRepoCacheFile(path string) *RepoCacheFile {
	return &RepoCacheFile{path: path}
}

// Path returns the backing file path.
func (c *RepoCacheFile) Path() string {
	return c.path
}

// Load reads cached repo records. A missing or malformed cache file is not
// an error; it logs and returns an empty slice so callers fall back to a
// fresh fetch.
func (c *RepoCacheFile) Load() ([]schema.RepoMetrics, error) {
	data, err := os.ReadFile(c.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		contract.LogWarn("Cache load failed", err)
		return nil, nil
	}

	var records []cachedRepo
	if err := json.Unmarshal(data, &records); err != nil {
		contract.LogWarn("Cache load failed", err)
		return nil, nil
	}

	repos := make([]schema.RepoMetrics, 0, len(records))
	for _, rec := range records {
		repos = append(repos, schema.RepoMetrics{
			Name:         rec.Name,
			FullName:     rec.FullName,
			Stars:        rec.Stars,
			OpenIssues:   rec.OpenIssues,
			CreatedAt:    rec.CreatedAt,
			Language:     rec.Language,
			Forks:        rec.Forks,
			TotalIssues:  rec.TotalIssues,
			ClosedIssues: rec.ClosedIssues,
			Contributors: rec.Contributors,
			UpdatedAt:    rec.UpdatedAt,
		})
	}
	return repos, nil
}

// Save writes the full repo list, replacing any previous contents.
func (c *RepoCacheFile) Save(repos []schema.RepoMetrics) error {
	records := make([]cachedRepo, 0, len(repos))
	for i := range repos {
		r := &repos[i]
		records = append(records, cachedRepo{
			Name:         r.Name,
			FullName:     r.FullName,
			Stars:        r.Stars,
			OpenIssues:   r.OpenIssues,
			CreatedAt:    r.CreatedAt,
			Language:     r.Language,
			Forks:        r.Forks,
			TotalIssues:  r.TotalIssues,
			ClosedIssues: r.ClosedIssues,
			Contributors: r.Contributors,
			UpdatedAt:    r.UpdatedAt,
			Era:          r.Era(),
			IssuesPer1K:  round2(r.IssuesPer1KStars()),
		})
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode cache: %w", err)
	}
	if err := os.WriteFile(c.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write cache to %q: %w", c.path, err)
	}
	return nil
}

// round2 rounds to two decimal places for stable exported ratios.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

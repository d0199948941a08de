// Package ghclient wraps the GitHub REST API with politeness pacing and
// rate-limit-aware backoff.
package ghclient

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/go-github/v57/github"
	"github.com/huangsam/debtscope/internal/contract"
	"github.com/huangsam/debtscope/schema"
	"golang.org/x/time/rate"
)

// backoffThreshold is the remaining-quota level below which the client
// blocks until the quota resets.
const backoffThreshold = 5

// backoffMargin is added to every reset wait as a safety margin.
const backoffMargin = time.Second

// defaultPace spaces successive API calls so unauthenticated runs do not
// burn through the hourly quota in seconds.
const defaultPace = rate.Limit(3) // calls per second

// realSleeper blocks on the wall clock.
type realSleeper struct{}

func (realSleeper) Sleep(d time.Duration) { time.Sleep(d) }

// Client wraps the GitHub API client with pacing and header-based backoff.
type Client struct {
	gh      *github.Client
	limiter *rate.Limiter
	sleeper contract.Sleeper
	now     func() time.Time
}

var _ contract.HubClient = &Client{} // Compile-time check

// NewClient creates a new GitHub client. An empty token gives anonymous
// access with a much lower rate-limit ceiling.
func NewClient(token string) *Client {
	gh := github.NewClient(nil)
	if token != "" {
		gh = gh.WithAuthToken(token)
	}
	return &Client{
		gh:      gh,
		limiter: rate.NewLimiter(defaultPace, 1),
		sleeper: realSleeper{},
		now:     time.Now,
	}
}

// backoffWait computes how long to block before the next call given the
// rate-limit headers of the last response. Zero means no wait is needed.
// Isolated from the sleep call so it is testable without real delays.
func backoffWait(remaining int, reset, now time.Time) time.Duration {
	if remaining >= backoffThreshold {
		return 0
	}
	wait := reset.Sub(now)
	if wait < 0 {
		wait = 0
	}
	return wait + backoffMargin
}

// pace blocks on the politeness limiter, then applies header-based backoff
// from the previous response's rate information.
func (c *Client) pace(ctx context.Context) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}
	return nil
}

// applyBackoff inspects the rate headers of a response and sleeps until the
// reset when the remaining quota is low.
func (c *Client) applyBackoff(resp *github.Response) {
	if resp == nil {
		return
	}
	wait := backoffWait(resp.Rate.Remaining, resp.Rate.Reset.Time, c.now())
	if wait > 0 {
		contract.LogProgress("Rate limit low (%d remaining), waiting %s...", resp.Rate.Remaining, wait.Round(time.Second))
		c.sleeper.Sleep(wait)
	}
}

// SearchRepositories returns one page of repository records matching the query.
func (c *Client) SearchRepositories(ctx context.Context, query string, perPage, page int) ([]schema.RepoMetrics, error) {
	if err := c.pace(ctx); err != nil {
		return nil, err
	}

	opts := &github.SearchOptions{
		Sort:        "stars",
		Order:       "desc",
		ListOptions: github.ListOptions{PerPage: perPage, Page: page},
	}
	result, resp, err := c.gh.Search.Repositories(ctx, query, opts)
	c.applyBackoff(resp)
	if err != nil {
		return nil, fmt.Errorf("search repositories: %w", err)
	}

	repos := make([]schema.RepoMetrics, 0, len(result.Repositories))
	for _, item := range result.Repositories {
		repos = append(repos, parseRepo(item))
	}
	return repos, nil
}

// parseRepo maps one search API record to the internal entity.
func parseRepo(item *github.Repository) schema.RepoMetrics {
	r := schema.RepoMetrics{
		Name:       item.GetName(),
		FullName:   item.GetFullName(),
		Stars:      item.GetStargazersCount(),
		OpenIssues: item.GetOpenIssuesCount(),
		CreatedAt:  item.GetCreatedAt().Time,
		Language:   item.GetLanguage(),
		Forks:      item.GetForksCount(),
	}
	if item.UpdatedAt != nil {
		t := item.GetUpdatedAt().Time
		r.UpdatedAt = &t
	}
	return r
}

// ListCommitMessages returns one page of commit messages for a repository.
func (c *Client) ListCommitMessages(ctx context.Context, fullName string, perPage, page int) ([]string, error) {
	owner, name, err := splitFullName(fullName)
	if err != nil {
		return nil, err
	}
	if err := c.pace(ctx); err != nil {
		return nil, err
	}

	opts := &github.CommitsListOptions{
		ListOptions: github.ListOptions{PerPage: perPage, Page: page},
	}
	commits, resp, err := c.gh.Repositories.ListCommits(ctx, owner, name, opts)
	c.applyBackoff(resp)
	if err != nil {
		return nil, fmt.Errorf("list commits for %s: %w", fullName, err)
	}

	messages := make([]string, 0, len(commits))
	for _, commit := range commits {
		messages = append(messages, commit.GetCommit().GetMessage())
	}
	return messages, nil
}

// IssueCount returns the number of issues in the given state via a
// count-only search query.
func (c *Client) IssueCount(ctx context.Context, fullName, state string) (int, error) {
	if err := c.pace(ctx); err != nil {
		return 0, err
	}

	query := fmt.Sprintf("repo:%s type:issue state:%s", fullName, state)
	opts := &github.SearchOptions{ListOptions: github.ListOptions{PerPage: 1}}
	result, resp, err := c.gh.Search.Issues(ctx, query, opts)
	c.applyBackoff(resp)
	if err != nil {
		return 0, fmt.Errorf("count %s issues for %s: %w", state, fullName, err)
	}
	return result.GetTotal(), nil
}

// ContributorCount returns the contributor count for a repository. With a
// page size of one, the last-page number in the pagination header equals
// the contributor total.
func (c *Client) ContributorCount(ctx context.Context, fullName string) (int, error) {
	owner, name, err := splitFullName(fullName)
	if err != nil {
		return 0, err
	}
	if err := c.pace(ctx); err != nil {
		return 0, err
	}

	opts := &github.ListContributorsOptions{
		Anon:        "true",
		ListOptions: github.ListOptions{PerPage: 1},
	}
	contributors, resp, err := c.gh.Repositories.ListContributors(ctx, owner, name, opts)
	c.applyBackoff(resp)
	if err != nil {
		return 0, fmt.Errorf("list contributors for %s: %w", fullName, err)
	}
	if resp.LastPage > 0 {
		return resp.LastPage, nil
	}
	// No Link header: all contributors fit on this single page.
	return len(contributors), nil
}

// splitFullName splits an owner-qualified name into its parts.
func splitFullName(fullName string) (owner, name string, err error) {
	parts := strings.SplitN(fullName, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid repository name %q, expected owner/name", fullName)
	}
	return parts[0], parts[1], nil
}

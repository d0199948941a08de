package iocache

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/debtscope/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRepoCacheRoundTrip tests that saving and reloading preserves every
// identity field and the derived era.
func TestRepoCacheRoundTrip(t *testing.T) {
	cache := NewRepoCacheFile(filepath.Join(t.TempDir(), "repo_cache.json"))

	updated := time.Date(2024, 11, 2, 8, 30, 0, 0, time.UTC)
	repos := []schema.RepoMetrics{
		{
			Name:       "linux",
			FullName:   "torvalds/linux",
			Stars:      180000,
			OpenIssues: 320,
			CreatedAt:  time.Date(2011, 9, 4, 22, 48, 0, 0, time.UTC),
			Language:   "C",
			Forks:      52000,
			UpdatedAt:  &updated,
		},
		{
			Name:         "fresh",
			FullName:     "someone/fresh",
			Stars:        1200,
			OpenIssues:   48,
			CreatedAt:    time.Date(2023, 2, 14, 0, 0, 0, 0, time.UTC),
			Language:     "Go",
			Forks:        30,
			TotalIssues:  90,
			ClosedIssues: 42,
			Contributors: 7,
		},
	}

	require.NoError(t, cache.Save(repos))
	loaded, err := cache.Load()
	require.NoError(t, err)
	require.Len(t, loaded, 2)

	for i := range repos {
		assert.Equal(t, repos[i].FullName, loaded[i].FullName)
		assert.Equal(t, repos[i].Stars, loaded[i].Stars)
		assert.Equal(t, repos[i].OpenIssues, loaded[i].OpenIssues)
		assert.True(t, repos[i].CreatedAt.Equal(loaded[i].CreatedAt))
		assert.Equal(t, repos[i].Era(), loaded[i].Era())
	}
	assert.Equal(t, schema.PreAIEra, loaded[0].Era())
	assert.Equal(t, schema.PostAIEra, loaded[1].Era())
	assert.Equal(t, 42, loaded[1].ClosedIssues)
	assert.Equal(t, 7, loaded[1].Contributors)
}

// TestRepoCacheMissingFile tests that a missing cache reads as empty.
func TestRepoCacheMissingFile(t *testing.T) {
	cache := NewRepoCacheFile(filepath.Join(t.TempDir(), "nope.json"))
	loaded, err := cache.Load()
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

// TestRepoCacheMalformed tests that corrupt JSON degrades to an empty cache.
func TestRepoCacheMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	cache := NewRepoCacheFile(path)
	loaded, err := cache.Load()
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

package contract

import (
	"testing"

	"github.com/huangsam/debtscope/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestProcessAndValidateDefaults tests that zero input produces the
// documented defaults.
func TestProcessAndValidateDefaults(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "")
	cfg := &Config{}

	err := ProcessAndValidate(cfg, &ConfigRawInput{})

	require.NoError(t, err)
	assert.Equal(t, DefaultMaxRepos, cfg.MaxRepos)
	assert.Equal(t, DefaultCommitRepos, cfg.CommitRepos)
	assert.Equal(t, DefaultCommitsPerRepo, cfg.CommitsPerRepo)
	assert.Equal(t, DefaultLanguages, cfg.Languages)
	assert.Equal(t, schema.MarkdownOut, cfg.Output)
	assert.Equal(t, schema.NoneBackend, cfg.RunBackend)
	assert.Equal(t, DefaultCacheFilePath(), cfg.CacheFile)
	assert.True(t, cfg.UseColors)
	assert.Empty(t, cfg.Token)
}

// TestProcessAndValidateTokenFallback tests the GITHUB_TOKEN fallback.
func TestProcessAndValidateTokenFallback(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "env-token")
	cfg := &Config{}

	require.NoError(t, ProcessAndValidate(cfg, &ConfigRawInput{}))
	assert.Equal(t, "env-token", cfg.Token)

	// An explicit token wins over the environment.
	require.NoError(t, ProcessAndValidate(cfg, &ConfigRawInput{Token: "flag-token"}))
	assert.Equal(t, "flag-token", cfg.Token)
}

// TestProcessAndValidateLanguages tests language list parsing.
func TestProcessAndValidateLanguages(t *testing.T) {
	cfg := &Config{}
	input := &ConfigRawInput{Languages: "Go, Rust,, zig "}

	require.NoError(t, ProcessAndValidate(cfg, input))
	assert.Equal(t, []string{"go", "rust", "zig"}, cfg.Languages)
}

// TestProcessAndValidateLimits tests clamping and rejection of bad values.
func TestProcessAndValidateLimits(t *testing.T) {
	t.Run("commits per repo clamped", func(t *testing.T) {
		cfg := &Config{}
		require.NoError(t, ProcessAndValidate(cfg, &ConfigRawInput{CommitsPerRepo: 10000}))
		assert.Equal(t, MaxCommitsPerRepo, cfg.CommitsPerRepo)
	})

	t.Run("negative min stars rejected", func(t *testing.T) {
		err := ProcessAndValidate(&Config{}, &ConfigRawInput{MinStars: -1})
		assert.Error(t, err)
	})

	t.Run("invalid output rejected", func(t *testing.T) {
		err := ProcessAndValidate(&Config{}, &ConfigRawInput{Output: "xml"})
		assert.Error(t, err)
	})

	t.Run("invalid backend rejected", func(t *testing.T) {
		err := ProcessAndValidate(&Config{}, &ConfigRawInput{RunBackend: "oracle"})
		assert.Error(t, err)
	})
}

// TestFirstLine tests first-line extraction and truncation.
func TestFirstLine(t *testing.T) {
	assert.Equal(t, "top", FirstLine("top\nbody\nmore", 100))
	assert.Equal(t, "abc", FirstLine("abcdef", 3))
	assert.Equal(t, "no newline", FirstLine("no newline", 100))
	assert.Equal(t, "", FirstLine("", 100))
}

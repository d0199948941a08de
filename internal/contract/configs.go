package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/huangsam/debtscope/schema"
)

// Default values for configuration.
const (
	DefaultMaxRepos       = 200
	DefaultMinStars       = 1000
	DefaultCommitRepos    = 30
	DefaultCommitsPerRepo = 300
	MaxCommitsPerRepo     = 500
	DefaultExtremesCount  = 10
	DefaultSearchPageSize = 30
	DefaultPrecision      = 2
)

// DefaultLanguages are searched when no language filter is given.
var DefaultLanguages = []string{"javascript", "python", "typescript", "java", "go", "rust"}

// Config holds the runtime configuration for the analysis.
// This struct remains the "final, validated" config.
type Config struct {
	Token     string // GitHub bearer token, empty for anonymous access
	MaxRepos  int
	MinStars  int
	Languages []string

	Extended  bool // Enrich every repo with issue/contributor counts
	EnrichTop int  // Enrich only the N most-starred repos (0 = off)
	UseCache  bool

	CommitRepos    int // Repos sampled for the commit signal pipeline
	CommitsPerRepo int

	CacheFile  string
	ReportFile string
	DataFile   string
	Output     schema.OutputMode
	Precision  int

	RunBackend   schema.DatabaseBackend
	RunDBConnect string // Please use env var as this is plaintext

	UseColors bool
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	Token     string `mapstructure:"token"`
	MaxRepos  int    `mapstructure:"max-repos"`
	MinStars  int    `mapstructure:"min-stars"`
	Languages string `mapstructure:"languages"`

	Extended  bool `mapstructure:"extended"`
	EnrichTop int  `mapstructure:"enrich-top"`
	UseCache  bool `mapstructure:"use-cache"`

	CommitRepos    int `mapstructure:"commit-repos"`
	CommitsPerRepo int `mapstructure:"commits-per-repo"`

	CacheFile  string `mapstructure:"cache-file"`
	ReportFile string `mapstructure:"report-file"`
	DataFile   string `mapstructure:"data-file"`
	Output     string `mapstructure:"output"`
	Precision  int    `mapstructure:"precision"`

	RunBackend   string `mapstructure:"run-backend"`
	RunDBConnect string `mapstructure:"run-db-connect"`

	Color string `mapstructure:"color"`
}

// ProcessAndValidate populates cfg from the raw input, applying defaults
// and rejecting invalid combinations.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	cfg.Token = strings.TrimSpace(input.Token)
	if cfg.Token == "" {
		// GITHUB_TOKEN is the conventional variable; DEBTSCOPE_TOKEN is
		// already merged by viper before this point.
		cfg.Token = strings.TrimSpace(os.Getenv("GITHUB_TOKEN"))
	}

	cfg.MaxRepos = input.MaxRepos
	if cfg.MaxRepos <= 0 {
		cfg.MaxRepos = DefaultMaxRepos
	}
	cfg.MinStars = input.MinStars
	if cfg.MinStars < 0 {
		return fmt.Errorf("min-stars must be non-negative, got %d", input.MinStars)
	}

	cfg.Languages = DefaultLanguages
	if trimmed := strings.TrimSpace(input.Languages); trimmed != "" {
		cfg.Languages = nil
		for _, lang := range strings.Split(trimmed, ",") {
			if lang = strings.TrimSpace(lang); lang != "" {
				cfg.Languages = append(cfg.Languages, strings.ToLower(lang))
			}
		}
	}

	cfg.Extended = input.Extended
	cfg.EnrichTop = input.EnrichTop
	if cfg.EnrichTop < 0 {
		return fmt.Errorf("enrich-top must be non-negative, got %d", input.EnrichTop)
	}
	cfg.UseCache = input.UseCache

	cfg.CommitRepos = input.CommitRepos
	if cfg.CommitRepos <= 0 {
		cfg.CommitRepos = DefaultCommitRepos
	}
	cfg.CommitsPerRepo = input.CommitsPerRepo
	if cfg.CommitsPerRepo <= 0 {
		cfg.CommitsPerRepo = DefaultCommitsPerRepo
	}
	if cfg.CommitsPerRepo > MaxCommitsPerRepo {
		cfg.CommitsPerRepo = MaxCommitsPerRepo
	}

	cfg.CacheFile = input.CacheFile
	if cfg.CacheFile == "" {
		cfg.CacheFile = DefaultCacheFilePath()
	}
	cfg.ReportFile = input.ReportFile
	cfg.DataFile = input.DataFile

	cfg.Output = schema.OutputMode(strings.ToLower(strings.TrimSpace(input.Output)))
	if cfg.Output == "" {
		cfg.Output = schema.MarkdownOut
	}
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output mode %q. Must be markdown, json, csv, or parquet", input.Output)
	}

	cfg.Precision = input.Precision
	if cfg.Precision < 0 {
		cfg.Precision = DefaultPrecision
	}

	cfg.RunBackend = schema.DatabaseBackend(strings.ToLower(strings.TrimSpace(input.RunBackend)))
	if cfg.RunBackend == "" {
		cfg.RunBackend = schema.NoneBackend
	}
	if _, ok := schema.ValidDatabaseBackends[cfg.RunBackend]; !ok {
		return fmt.Errorf("invalid run backend %q. Must be sqlite, mysql, postgresql, or none", input.RunBackend)
	}
	cfg.RunDBConnect = input.RunDBConnect

	cfg.UseColors = strings.ToLower(input.Color) != "no"
	return nil
}

// DefaultCacheFilePath is where fetched repo records are cached between runs.
func DefaultCacheFilePath() string {
	return "repo_cache.json"
}

// DefaultRunDBFilePath returns the path to the SQLite DB file for run tracking.
func DefaultRunDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".debtscope_runs.db"
	}
	return filepath.Join(homeDir, ".debtscope_runs.db")
}

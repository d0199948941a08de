// Package cmd defines the command-line interface for debtscope.
package cmd

import (
	"github.com/huangsam/debtscope/internal/contract"
	"github.com/huangsam/debtscope/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(reposCmd)
	rootCmd.AddCommand(commitsCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the cache subcommands to the parent cache command
	cacheCmd.AddCommand(cacheStatusCmd)
	cacheCmd.AddCommand(cacheMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("token", "", "GitHub token (falls back to GITHUB_TOKEN)")
	rootCmd.PersistentFlags().String("cache-file", contract.DefaultCacheFilePath(), "Path to the repo metadata cache")
	rootCmd.PersistentFlags().String("report-file", "", "Optional path to write the markdown report to (default stdout)")
	rootCmd.PersistentFlags().String("data-file", "", "Optional path for the raw data export")
	rootCmd.PersistentFlags().String("output", string(schema.MarkdownOut), "Raw data format: markdown or json or csv or parquet")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().String("run-backend", string(schema.NoneBackend), "Run tracking backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("run-db-connect", "", "Database connection string for mysql/postgresql run tracking")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored console output (yes/no)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of reposCmd to Viper
	reposCmd.Flags().BoolP("extended", "e", false, "Fetch extended metrics (issue close rate, contributors) - uses more API calls")
	reposCmd.Flags().Int("enrich-top", 0, "Enrich only the N most-starred repos with extended metrics")
	reposCmd.Flags().IntP("max-repos", "n", contract.DefaultMaxRepos, "Maximum repos to analyze")
	reposCmd.Flags().Int("min-stars", contract.DefaultMinStars, "Minimum stars filter")
	reposCmd.Flags().Bool("use-cache", false, "Use cached repo data if available")
	reposCmd.Flags().String("languages", "", "Comma-separated language list (default: javascript,python,typescript,java,go,rust)")
	if err := viper.BindPFlags(reposCmd.Flags()); err != nil {
		contract.LogFatal("Error binding repos flags", err)
	}

	// Bind all flags of commitsCmd to Viper
	commitsCmd.Flags().Int("commit-repos", contract.DefaultCommitRepos, "Repos to sample for commit analysis")
	commitsCmd.Flags().IntP("commits-per-repo", "c", contract.DefaultCommitsPerRepo, "Commits to analyze per repo")
	if err := viper.BindPFlags(commitsCmd.Flags()); err != nil {
		contract.LogFatal("Error binding commits flags", err)
	}

	// Bind all flags of cacheMigrateCmd to Viper
	cacheMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(cacheMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding cache migrate flags", err)
	}
}

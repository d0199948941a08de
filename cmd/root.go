package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/huangsam/debtscope/internal/contract"
	"github.com/huangsam/debtscope/internal/iocache"
	"github.com/huangsam/debtscope/schema"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// All linker flags will be set by goreleaser infra at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCtx is the root context for all operations.
var rootCtx = context.Background()

// cfg will hold the validated, final configuration.
var cfg = &contract.Config{}

// input holds the raw, unvalidated configuration from all sources (file, env, flags).
// Viper will unmarshal into this struct.
var input = &contract.ConfigRawInput{}

// rootCmd is the command-line entrypoint for all other commands.
var rootCmd = &cobra.Command{
	Use:                "debtscope",
	Short:              "Analyze technical debt signals across GitHub repositories.",
	Long:               `Debtscope measures open-issue ratios and commit message signals across pre-AI and post-AI era repositories.`,
	Version:            version,
	SilenceErrors:      true,
	SilenceUsage:       true,
	DisableSuggestions: true,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	// Check if a specific config file is provided
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		// Set config file name and paths
		viper.SetConfigName(".debtscope") // Name of config file (without extension)
		viper.SetConfigType("yaml")       // We'll use YAML format
		viper.AddConfigPath(".")          // Look in the current directory
		viper.AddConfigPath("$HOME")      // Look in the home directory
	}

	// Set environment variable prefix
	viper.SetEnvPrefix("DEBTSCOPE")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // Read in environment variables that match

	// Set defaults in Viper
	viper.SetDefault("max-repos", contract.DefaultMaxRepos)
	viper.SetDefault("min-stars", contract.DefaultMinStars)
	viper.SetDefault("commit-repos", contract.DefaultCommitRepos)
	viper.SetDefault("commits-per-repo", contract.DefaultCommitsPerRepo)
	viper.SetDefault("precision", contract.DefaultPrecision)
	viper.SetDefault("output", string(schema.MarkdownOut))
	viper.SetDefault("cache-file", contract.DefaultCacheFilePath())
	viper.SetDefault("run-backend", string(schema.NoneBackend))
	viper.SetDefault("run-db-connect", "")
	viper.SetDefault("color", "yes")
}

// sharedSetup unmarshals config and runs validation.
func sharedSetup(_ context.Context, _ *cobra.Command, _ []string) error {
	// .env is optional; variables already in the environment win
	_ = godotenv.Load()

	// 1. Read config file. This merges defaults, file, env, and flags.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Config file was found but another error was produced
			return fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found, which is fine; we'll use defaults/env/flags.
	}

	// 2. Unmarshal all resolved values from Viper into our raw input struct.
	if err := viper.Unmarshal(input); err != nil {
		return fmt.Errorf("unable to unmarshal config: %w", err)
	}

	// 3. Run all validation and complex parsing.
	// This function now populates the global 'cfg' from 'input'.
	if err := contract.ProcessAndValidate(cfg, input); err != nil {
		return err
	}

	if !cfg.UseColors {
		color.NoColor = true
	}

	if cfg.Token == "" {
		contract.LogProgress("No GITHUB_TOKEN set. Rate limits will be strict (60 req/hour).")
		contract.LogProgress("Set GITHUB_TOKEN environment variable for 5000 req/hour.")
	}

	return nil
}

// sharedSetupWrapper wraps sharedSetup to provide context for Cobra's PreRunE.
func sharedSetupWrapper(cmd *cobra.Command, args []string) error {
	return sharedSetup(rootCtx, cmd, args)
}

// newRunStore opens the configured run tracking store. Tracking is optional,
// so an open failure degrades to no tracking instead of aborting.
func newRunStore() contract.RunStore {
	store, err := iocache.NewRunStore(cfg.RunBackend, cfg.RunDBConnect)
	if err != nil {
		contract.LogWarn("Run tracking unavailable", err)
		return nil
	}
	return store
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// Package outwriter has report rendering and raw data export logic.
package outwriter

import (
	"os"
	"time"

	"github.com/huangsam/debtscope/internal/contract"
	"github.com/huangsam/debtscope/schema"
	"golang.org/x/term"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the report, console and raw data formats and provides a
// clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteRepos writes the repository metrics report and raw data export using
// the configured output format.
func (ow *OutWriter) WriteRepos(result *schema.RepoAnalysisResult, cfg *contract.Config, duration time.Duration) error {
	return WriteRepoResults(result, cfg, duration)
}

// WriteCommits writes the commit signal report and raw data export using
// the configured output format.
func (ow *OutWriter) WriteCommits(result *schema.CommitAnalysisResult, summaries []schema.CommitSummary, cfg *contract.Config, duration time.Duration) error {
	return WriteCommitResults(result, summaries, cfg, duration)
}

// getMaxTableNameWidth calculates the maximum width for repository names in
// console output based on terminal width.
func getMaxTableNameWidth() int {
	detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || detectedWidth <= 0 {
		// Fallback to conservative default if terminal size can't be detected
		detectedWidth = 80
	}

	// Reserve space for the rank, ratio and punctuation around the name
	available := detectedWidth - 40
	if available < 15 {
		return 15
	}
	if available > 60 {
		return 60
	}
	return available
}

// truncateName shortens an owner/name identifier to maxLen runes, keeping
// the tail which carries the repo name.
func truncateName(name string, maxLen int) string {
	runes := []rune(name)
	if len(runes) <= maxLen {
		return name
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return "..." + string(runes[len(runes)-(maxLen-3):])
}

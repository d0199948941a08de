package outwriter

import (
	"testing"

	"github.com/huangsam/debtscope/internal/contract"
	"github.com/huangsam/debtscope/schema"
	"github.com/stretchr/testify/assert"
)

// TestHumanInt tests thousands separator formatting.
func TestHumanInt(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{1234567, "1,234,567"},
		{-4500, "-4,500"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, humanInt(tt.in))
	}
}

// TestStatOrNA tests the era statistic fallback.
func TestStatOrNA(t *testing.T) {
	fmtFloat, _ := createFormatters(2)
	assert.Equal(t, "3.14", statOrNA(true, 3.14159, fmtFloat))
	assert.Equal(t, "N/A", statOrNA(false, 3.14159, fmtFloat))
}

// TestTruncateName tests repo name shortening for console tables.
func TestTruncateName(t *testing.T) {
	assert.Equal(t, "short/name", truncateName("short/name", 30))
	assert.Equal(t, "...organization/repository", truncateName("some-long-organization/repository", 26))
	assert.Equal(t, "ab", truncateName("abcdef", 2))
}

// TestDataFilePath tests data export path resolution per output mode.
func TestDataFilePath(t *testing.T) {
	cfg := &contract.Config{DataFile: "explicit.out", Output: schema.JSONOut}
	assert.Equal(t, "explicit.out", dataFilePath(cfg, "repo_data"))

	cfg = &contract.Config{Output: schema.JSONOut}
	assert.Equal(t, "repo_data.json", dataFilePath(cfg, "repo_data"))

	cfg = &contract.Config{Output: schema.CSVOut}
	assert.Equal(t, "commit_data.csv", dataFilePath(cfg, "commit_data"))

	cfg = &contract.Config{Output: schema.ParquetOut}
	assert.Equal(t, "repo_data.parquet", dataFilePath(cfg, "repo_data"))
}

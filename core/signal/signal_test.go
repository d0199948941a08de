package signal

import (
	"testing"

	"github.com/huangsam/debtscope/schema"
	"github.com/stretchr/testify/assert"
)

// TestClassifyDebtMessage tests the canonical debt + bug example.
func TestClassifyDebtMessage(t *testing.T) {
	hits := Classify("TODO: fix this hack later")

	assert.Equal(t, map[string]int{"todo": 1, "hack": 1}, hits[schema.DebtSignals])
	assert.Equal(t, map[string]int{"fix": 1}, hits[schema.BugSignals])
	assert.Empty(t, hits[schema.RevertSignals])
	assert.Empty(t, hits[schema.FrustrationSignals])
	assert.Empty(t, hits[schema.PositiveSignals])
}

// TestClassifyWhyAnchor tests that "why" only triggers at message start.
func TestClassifyWhyAnchor(t *testing.T) {
	t.Run("anchored match", func(t *testing.T) {
		hits := Classify("why does this keep breaking")
		assert.Equal(t, 1, hits[schema.FrustrationSignals]["why"])
	})

	t.Run("mid-message no match", func(t *testing.T) {
		hits := Classify("I wonder why this breaks")
		assert.NotContains(t, hits[schema.FrustrationSignals], "why")
	})
}

// TestClassifyCaseInsensitive tests case folding and word boundaries.
func TestClassifyCaseInsensitive(t *testing.T) {
	t.Run("lowercase todo", func(t *testing.T) {
		hits := Classify("todo: revisit this")
		assert.Equal(t, 1, hits[schema.DebtSignals]["todo"])
	})

	t.Run("fix inside prefix is not a hit", func(t *testing.T) {
		hits := Classify("add prefix handling")
		assert.NotContains(t, hits[schema.BugSignals], "fix")
	})

	t.Run("fixed and fixes match", func(t *testing.T) {
		assert.Equal(t, 1, Classify("Fixed the build")[schema.BugSignals]["fix"])
		assert.Equal(t, 1, Classify("fixes #42")[schema.BugSignals]["fix"])
	})
}

// TestClassifyCapsPerMessage tests that repeated keywords count once.
func TestClassifyCapsPerMessage(t *testing.T) {
	hits := Classify("TODO TODO TODO everywhere")
	assert.Equal(t, 1, hits[schema.DebtSignals]["todo"])
}

// TestClassifyVariants covers inflected forms across the tables.
func TestClassifyVariants(t *testing.T) {
	tests := []struct {
		message  string
		category schema.SignalCategory
		name     string
	}{
		{"temporarily disable cache", schema.DebtSignals, "temporary"},
		{"technical debt cleanup pass", schema.DebtSignals, "tech.debt"},
		{"tech debt cleanup pass", schema.DebtSignals, "tech.debt"},
		{"resolving merge conflicts", schema.BugSignals, "resolve"},
		{"backed out the migration", schema.RevertSignals, "back.out"},
		{"uuughhh this test again", schema.FrustrationSignals, "ugh"},
		{"c'mon CI", schema.FrustrationSignals, "cmon"},
		{"refactoring the parser", schema.PositiveSignals, "refactor"},
		{"cleanup unused imports", schema.PositiveSignals, "clean"},
		{"simplified error handling", schema.PositiveSignals, "simplify"},
	}

	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			hits := Classify(tt.message)
			assert.Equal(t, 1, hits[tt.category][tt.name])
		})
	}
}

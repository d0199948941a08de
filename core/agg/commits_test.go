package agg

import (
	"testing"
	"time"

	"github.com/huangsam/debtscope/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// preAI is a creation date safely before the era cutoff.
var preAI = time.Date(2019, 3, 1, 0, 0, 0, 0, time.UTC)

// TestAggregateCommitsByEra tests tally merging and per-100 ratios.
func TestAggregateCommitsByEra(t *testing.T) {
	a := schema.NewCommitAnalysis("org/a", preAI)
	a.TotalCommits = 100
	a.Signals[schema.DebtSignals]["todo"] = 8
	a.Signals[schema.DebtSignals]["hack"] = 2
	a.MessageLengths = []int{40, 60}

	b := schema.NewCommitAnalysis("org/b", preAI)
	b.TotalCommits = 100
	b.Signals[schema.DebtSignals]["todo"] = 10
	b.Signals[schema.BugSignals]["fix"] = 30
	b.MessageLengths = []int{100}

	byEra := AggregateCommitsByEra([]*schema.CommitAnalysis{a, b})
	pre := byEra[schema.PreAIEra]

	assert.Equal(t, 2, pre.Repos)
	assert.Equal(t, 200, pre.TotalCommits)
	assert.InDelta(t, 10.0, pre.RatioPer100[schema.DebtSignals], 1e-9) // 20 hits / 200 commits
	assert.InDelta(t, 15.0, pre.RatioPer100[schema.BugSignals], 1e-9)
	assert.Zero(t, pre.RatioPer100[schema.RevertSignals])
	// Mean of the per-repo averages: (50 + 100) / 2.
	assert.InDelta(t, 75.0, pre.AvgMessageLength, 1e-9)

	top := pre.TopSignals[schema.DebtSignals]
	require.Len(t, top, 2)
	assert.Equal(t, schema.SignalCount{Name: "todo", Count: 18}, top[0])
	assert.Equal(t, schema.SignalCount{Name: "hack", Count: 2}, top[1])
}

// TestAggregateCommitsZeroCommits tests that all ratios are 0, not NaN.
func TestAggregateCommitsZeroCommits(t *testing.T) {
	a := schema.NewCommitAnalysis("org/empty", preAI)

	pre := AggregateCommitsByEra([]*schema.CommitAnalysis{a})[schema.PreAIEra]

	assert.Equal(t, 0, pre.TotalCommits)
	for _, cat := range schema.AllSignalCategories {
		assert.Zero(t, pre.RatioPer100[cat])
	}
	assert.Zero(t, pre.AvgMessageLength)
}

// TestTopSignalsLimit tests the top-5 cut and deterministic tie-breaks.
func TestTopSignalsLimit(t *testing.T) {
	tally := map[string]int{"a": 1, "b": 3, "c": 3, "d": 7, "e": 2, "f": 5}

	top := topSignals(tally, 5)

	require.Len(t, top, 5)
	assert.Equal(t, "d", top[0].Name)
	assert.Equal(t, "f", top[1].Name)
	// b and c tie at 3; name order breaks the tie.
	assert.Equal(t, "b", top[2].Name)
	assert.Equal(t, "c", top[3].Name)
	assert.Equal(t, "e", top[4].Name)
}

// TestZeroAverageExcluded tests that repos with no messages do not drag
// down the era message length average.
func TestZeroAverageExcluded(t *testing.T) {
	a := schema.NewCommitAnalysis("org/a", preAI)
	a.TotalCommits = 1
	a.MessageLengths = []int{80}
	b := schema.NewCommitAnalysis("org/b", preAI)

	pre := AggregateCommitsByEra([]*schema.CommitAnalysis{a, b})[schema.PreAIEra]
	assert.InDelta(t, 80.0, pre.AvgMessageLength, 1e-9)
}

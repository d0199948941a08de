package agg

import (
	"sort"

	"github.com/huangsam/debtscope/schema"
)

// topSignalCount is how many individual signal names each category reports.
const topSignalCount = 5

// AggregateCommitsByEra sums commit counts and signal tallies across every
// repository in each era partition and derives per-100-commit ratios.
func AggregateCommitsByEra(analyses []*schema.CommitAnalysis) map[schema.Era]schema.CommitEraStats {
	partitions := map[schema.Era][]*schema.CommitAnalysis{
		schema.PreAIEra:  nil,
		schema.PostAIEra: nil,
	}
	for _, a := range analyses {
		partitions[a.Era] = append(partitions[a.Era], a)
	}

	result := make(map[schema.Era]schema.CommitEraStats, len(partitions))
	for era, group := range partitions {
		result[era] = calcCommitStats(group)
	}
	return result
}

// calcCommitStats computes the statistics for one era partition.
func calcCommitStats(analyses []*schema.CommitAnalysis) schema.CommitEraStats {
	if len(analyses) == 0 {
		return schema.CommitEraStats{
			RatioPer100: map[schema.SignalCategory]float64{},
			TopSignals:  map[schema.SignalCategory][]schema.SignalCount{},
		}
	}

	totalCommits := 0
	merged := make(map[schema.SignalCategory]map[string]int, len(schema.AllSignalCategories))
	for _, cat := range schema.AllSignalCategories {
		merged[cat] = make(map[string]int)
	}

	var avgLengths []float64
	for _, a := range analyses {
		totalCommits += a.TotalCommits
		for cat, tally := range a.Signals {
			for name, n := range tally {
				merged[cat][name] += n
			}
		}
		// Repos that yielded no analyzable messages are excluded from the
		// message length average.
		if avg := a.AvgMessageLength(); avg > 0 {
			avgLengths = append(avgLengths, avg)
		}
	}

	stats := schema.CommitEraStats{
		Repos:            len(analyses),
		TotalCommits:     totalCommits,
		RatioPer100:      make(map[schema.SignalCategory]float64, len(merged)),
		TopSignals:       make(map[schema.SignalCategory][]schema.SignalCount, len(merged)),
		AvgMessageLength: mean(avgLengths),
	}
	for cat, tally := range merged {
		stats.RatioPer100[cat] = ratioPer100(tally, totalCommits)
		stats.TopSignals[cat] = topSignals(tally, topSignalCount)
	}
	return stats
}

// ratioPer100 is total tally hits per 100 commits, 0 when no commits.
func ratioPer100(tally map[string]int, totalCommits int) float64 {
	if totalCommits == 0 {
		return 0
	}
	total := 0
	for _, n := range tally {
		total += n
	}
	return float64(total) / float64(totalCommits) * 100
}

// topSignals returns the n most frequent signal names in a tally.
// Ties are broken by name for deterministic output.
func topSignals(tally map[string]int, n int) []schema.SignalCount {
	counts := make([]schema.SignalCount, 0, len(tally))
	for name, count := range tally {
		counts = append(counts, schema.SignalCount{Name: name, Count: count})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].Name < counts[j].Name
	})
	if n > len(counts) {
		n = len(counts)
	}
	return counts[:n]
}

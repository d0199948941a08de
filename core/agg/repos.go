package agg

import (
	"sort"
	"time"

	"github.com/huangsam/debtscope/schema"
)

// minLanguageGroup is the smallest language group with a meaningful sample.
const minLanguageGroup = 3

// UnknownLanguage buckets repos with no detected primary language.
const UnknownLanguage = "Unknown"

// AggregateByEra partitions repos into eras and computes issue ratio
// statistics for each partition. Eras with no repos get a zero-count entry.
func AggregateByEra(repos []schema.RepoMetrics, now time.Time) map[schema.Era]schema.EraStats {
	partitions := map[schema.Era][]schema.RepoMetrics{
		schema.PreAIEra:  nil,
		schema.PostAIEra: nil,
	}
	for _, r := range repos {
		partitions[r.Era()] = append(partitions[r.Era()], r)
	}

	result := make(map[schema.Era]schema.EraStats, len(partitions))
	for era, group := range partitions {
		result[era] = calcEraStats(group, now)
	}
	return result
}

// calcEraStats computes the statistics for one era partition.
func calcEraStats(repos []schema.RepoMetrics, now time.Time) schema.EraStats {
	if len(repos) == 0 {
		return schema.EraStats{}
	}

	var (
		ratios        = make([]float64, 0, len(repos))
		stars         = make([]float64, 0, len(repos))
		issues        = make([]float64, 0, len(repos))
		issuesPerYear = make([]float64, 0, len(repos))
		closeRates    []float64
		contributors  []float64
		totalStars    int
		totalIssues   int
	)
	for i := range repos {
		r := &repos[i]
		ratios = append(ratios, r.IssuesPer1KStars())
		stars = append(stars, float64(r.Stars))
		issues = append(issues, float64(r.OpenIssues))
		issuesPerYear = append(issuesPerYear, r.IssuesPerYear(now))
		totalStars += r.Stars
		totalIssues += r.OpenIssues
		// Enrichment data is only present where secondary fetches succeeded.
		if r.TotalIssues > 0 {
			closeRates = append(closeRates, r.IssueCloseRate())
		}
		if r.Contributors > 0 {
			contributors = append(contributors, float64(r.Contributors))
		}
	}

	stats := schema.EraStats{
		Count:             len(repos),
		AvgIssuesPer1K:    mean(ratios),
		MedianIssuesPer1K: median(ratios),
		StdDevIssuesPer1K: stdev(ratios),
		TotalStars:        totalStars,
		TotalOpenIssues:   totalIssues,
		AvgStars:          mean(stars),
		AvgOpenIssues:     mean(issues),
		AvgIssuesPerYear:  mean(issuesPerYear),
		MedianIssuesPerYr: median(issuesPerYear),
	}

	if len(closeRates) > 0 {
		stats.HasEnrichment = true
		stats.AvgCloseRate = mean(closeRates)
		stats.MedianCloseRate = median(closeRates)
	}
	if len(contributors) > 0 {
		stats.HasEnrichment = true
		stats.AvgContributors = mean(contributors)
		stats.MedianContributors = median(contributors)
	}
	return stats
}

// AggregateByLanguage groups repos by primary language and computes issue
// ratio statistics per group. Groups smaller than three repos are dropped
// as insufficient samples. Results are sorted by average ratio descending.
func AggregateByLanguage(repos []schema.RepoMetrics) []schema.LanguageStats {
	byLang := make(map[string][]float64)
	for i := range repos {
		lang := repos[i].Language
		if lang == "" {
			lang = UnknownLanguage
		}
		byLang[lang] = append(byLang[lang], repos[i].IssuesPer1KStars())
	}

	results := make([]schema.LanguageStats, 0, len(byLang))
	for lang, ratios := range byLang {
		if len(ratios) < minLanguageGroup {
			continue
		}
		results = append(results, schema.LanguageStats{
			Language:          lang,
			Count:             len(ratios),
			AvgIssuesPer1K:    mean(ratios),
			MedianIssuesPer1K: median(ratios),
		})
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].AvgIssuesPer1K != results[j].AvgIssuesPer1K {
			return results[i].AvgIssuesPer1K > results[j].AvgIssuesPer1K
		}
		return results[i].Language < results[j].Language
	})
	return results
}

// FindExtremes sorts repos descending by issues-per-1K-stars and returns
// the top n and bottom n. The bottom list is reversed so both lists read
// most-extreme-first: the first lowest entry has the smallest ratio.
func FindExtremes(repos []schema.RepoMetrics, n int) (highest, lowest []schema.ExtremeEntry) {
	sorted := make([]schema.RepoMetrics, len(repos))
	copy(sorted, repos)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].IssuesPer1KStars() > sorted[j].IssuesPer1KStars()
	})

	if n > len(sorted) {
		n = len(sorted)
	}
	for i := 0; i < n; i++ {
		highest = append(highest, extremeEntry(&sorted[i]))
	}
	for i := len(sorted) - 1; i >= len(sorted)-n; i-- {
		lowest = append(lowest, extremeEntry(&sorted[i]))
	}
	return highest, lowest
}

// extremeEntry flattens one repo into an extremes table row.
func extremeEntry(r *schema.RepoMetrics) schema.ExtremeEntry {
	return schema.ExtremeEntry{
		FullName:    r.FullName,
		Stars:       r.Stars,
		OpenIssues:  r.OpenIssues,
		IssuesPer1K: r.IssuesPer1KStars(),
		Created:     r.CreatedAt.Format("2006-01-02"),
		Era:         r.Era(),
	}
}

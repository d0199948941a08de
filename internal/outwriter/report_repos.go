package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/huangsam/debtscope/internal/contract"
	"github.com/huangsam/debtscope/internal/parquet"
	"github.com/huangsam/debtscope/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// reportTimeFormat matches the timestamp shown in report headers.
const reportTimeFormat = "2006-01-02 15:04:05"

// summaryExtremes limits how many extreme entries the console summary shows.
const summaryExtremes = 3

// WriteRepoResults writes the repository metrics report, prints a console
// summary, and exports raw records, dispatching on the output format configured.
func WriteRepoResults(result *schema.RepoAnalysisResult, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	if err := writeWithFile(cfg.ReportFile, func(w io.Writer) error {
		_, err := io.WriteString(w, RenderRepoReport(result, cfg))
		return err
	}, "Wrote report"); err != nil {
		return fmt.Errorf("error writing report: %w", err)
	}

	// The quick summary goes to the console only when the full report went
	// to a file
	if cfg.ReportFile != "" {
		if err := writeRepoSummaryTable(result, fmtFloat, duration, os.Stdout); err != nil {
			return err
		}
	}

	// Dispatcher: Handle different raw data formats
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeRepoJSONData(result.Repos, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeRepoCSVData(result.Repos, cfg, fmtFloat); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		path := dataFilePath(cfg, "repo_data")
		if err := parquet.WriteRepoRecordsParquet(parquet.ConvertRepoMetrics(result.Repos), path); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
		contract.LogProgress("Wrote Parquet to %s", path)
	default:
		// Markdown mode emits the report alone
	}
	return nil
}

// RenderRepoReport builds the markdown report for the repository metrics
// pipeline.
func RenderRepoReport(result *schema.RepoAnalysisResult, cfg *contract.Config) string {
	fmtFloat, _ := createFormatters(cfg.Precision)
	pre := result.ByEra[schema.PreAIEra]
	post := result.ByEra[schema.PostAIEra]

	var b strings.Builder
	b.WriteString("# GitHub Technical Debt Analysis Report\n\n")
	fmt.Fprintf(&b, "Generated: %s\n", result.GeneratedAt.Format(reportTimeFormat))
	fmt.Fprintf(&b, "Total Repositories Analyzed: %d\n\n", len(result.Repos))

	b.WriteString("## Executive Summary\n\n")
	b.WriteString("This analysis examines the relationship between repository popularity (stars) and\n")
	b.WriteString("technical debt indicators (open issues) across different time periods.\n\n")
	finding := "Post-AI era shows higher ratios - but sample size and maturity matter."
	if pre.AvgIssuesPer1K > post.AvgIssuesPer1K {
		finding = "Pre-AI era repos show HIGHER issue ratios, suggesting debt existed before AI."
	}
	fmt.Fprintf(&b, "**Key Finding:** %s\n\n---\n\n", finding)

	b.WriteString("## Era Comparison\n\n")
	b.WriteString("| Metric | Pre-AI Era (<2022) | Post-AI Era (>=2022) |\n")
	b.WriteString("|--------|-------------------|---------------------|\n")
	writeEraRow := func(label, preVal, postVal string) {
		fmt.Fprintf(&b, "| %s | %s | %s |\n", label, preVal, postVal)
	}
	writeEraRow("Repos Analyzed", strconv.Itoa(pre.Count), strconv.Itoa(post.Count))
	writeEraRow("Avg Issues per 1K Stars",
		statOrNA(pre.Count > 0, pre.AvgIssuesPer1K, fmtFloat),
		statOrNA(post.Count > 0, post.AvgIssuesPer1K, fmtFloat))
	writeEraRow("Median Issues per 1K Stars",
		statOrNA(pre.Count > 0, pre.MedianIssuesPer1K, fmtFloat),
		statOrNA(post.Count > 0, post.MedianIssuesPer1K, fmtFloat))
	writeEraRow("Avg Issues per Year",
		statOrNA(pre.Count > 0, pre.AvgIssuesPerYear, fmtFloat),
		statOrNA(post.Count > 0, post.AvgIssuesPerYear, fmtFloat))
	writeEraRow("Median Issues per Year",
		statOrNA(pre.Count > 0, pre.MedianIssuesPerYr, fmtFloat),
		statOrNA(post.Count > 0, post.MedianIssuesPerYr, fmtFloat))
	writeEraRow("Avg Issue Close Rate %",
		statOrNA(pre.HasEnrichment, pre.AvgCloseRate, fmtFloat),
		statOrNA(post.HasEnrichment, post.AvgCloseRate, fmtFloat))
	writeEraRow("Avg Contributors",
		statOrNA(pre.HasEnrichment, pre.AvgContributors, fmtFloat),
		statOrNA(post.HasEnrichment, post.AvgContributors, fmtFloat))
	writeEraRow("Std Deviation",
		statOrNA(pre.Count > 0, pre.StdDevIssuesPer1K, fmtFloat),
		statOrNA(post.Count > 0, post.StdDevIssuesPer1K, fmtFloat))
	writeEraRow("Total Stars", humanInt(pre.TotalStars), humanInt(post.TotalStars))
	writeEraRow("Total Open Issues", humanInt(pre.TotalOpenIssues), humanInt(post.TotalOpenIssues))

	b.WriteString("\n### Interpretation\n\n")
	b.WriteString("- **Issues per 1K Stars** = normalized measure of \"problems per unit of popularity\"\n")
	b.WriteString("- Higher values suggest more maintenance burden relative to community size\n")
	b.WriteString("- Pre-AI era projects have had more time to accumulate issues, but also more time to close them\n\n---\n\n")

	b.WriteString("## Analysis by Language\n\n")
	b.WriteString("| Language | Repos | Avg Issues/1K Stars | Median |\n")
	b.WriteString("|----------|-------|---------------------|--------|\n")
	for _, lang := range result.ByLanguage {
		fmt.Fprintf(&b, "| %s | %d | %s | %s |\n",
			lang.Language, lang.Count, fmtFloat(lang.AvgIssuesPer1K), fmtFloat(lang.MedianIssuesPer1K))
	}

	b.WriteString("\n---\n\n## Highest Debt Ratios (Most Issues per Star)\n\n")
	writeExtremeTable(&b, result.HighestDebt, fmtFloat)

	b.WriteString("\n---\n\n## Lowest Debt Ratios (Fewest Issues per Star)\n\n")
	writeExtremeTable(&b, result.LowestDebt, fmtFloat)

	b.WriteString("\n---\n\n## Methodology Notes\n\n")
	b.WriteString("1. **Data Source**: GitHub Search API\n")
	fmt.Fprintf(&b, "2. **Minimum Stars**: %s (filters out abandoned/toy projects)\n", humanInt(cfg.MinStars))
	b.WriteString("3. **Era Definition**:\n")
	b.WriteString("   - Pre-AI: Created before January 2022\n")
	b.WriteString("   - Post-AI: Created January 2022 or later (ChatGPT/Copilot mainstream)\n")
	b.WriteString("4. **Metric**: Open issues count (closed issues indicate healthy maintenance)\n")
	b.WriteString("5. **Limitations**:\n")
	b.WriteString("   - Issue count includes feature requests, not just bugs\n")
	b.WriteString("   - Older repos have more time to accumulate community\n")
	b.WriteString("   - Popular repos may attract more issue reports simply due to visibility\n\n")

	b.WriteString("## Conclusion\n\n")
	b.WriteString("Technical debt, as measured by issue accumulation, has been a persistent challenge\n")
	b.WriteString("in software development long before AI coding tools existed. While AI may introduce\n")
	b.WriteString("new patterns of debt, the fundamental problem of maintenance burden is not new.\n")

	return b.String()
}

// writeExtremeTable renders one highest/lowest debt ratio markdown table.
func writeExtremeTable(b *strings.Builder, entries []schema.ExtremeEntry, fmtFloat func(float64) string) {
	b.WriteString("| Repository | Stars | Open Issues | Ratio | Created | Era |\n")
	b.WriteString("|------------|-------|-------------|-------|---------|-----|\n")
	for _, e := range entries {
		fmt.Fprintf(b, "| %s | %s | %s | %s | %s | %s |\n",
			e.FullName, humanInt(e.Stars), humanInt(e.OpenIssues), fmtFloat(e.IssuesPer1K), e.Created, e.Era)
	}
}

// writeRepoSummaryTable prints the quick era comparison to the console.
func writeRepoSummaryTable(result *schema.RepoAnalysisResult, fmtFloat func(float64) string, duration time.Duration, w io.Writer) error {
	_, _ = contract.HeaderColor.Fprintln(w, "Era comparison")

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Era", "Repos", "Avg/1K", "Median/1K", "Total Stars"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, era := range []schema.Era{schema.PreAIEra, schema.PostAIEra} {
		st := result.ByEra[era]
		data = append(data, []string{
			string(era),
			strconv.Itoa(st.Count),
			fmtFloat(st.AvgIssuesPer1K),
			fmtFloat(st.MedianIssuesPer1K),
			humanInt(st.TotalStars),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if len(result.HighestDebt) > 0 {
		nameWidth := getMaxTableNameWidth()
		_, _ = contract.HeaderColor.Fprintln(w, "Highest debt ratios")
		top := result.HighestDebt
		if len(top) > summaryExtremes {
			top = top[:summaryExtremes]
		}
		for i, e := range top {
			if _, err := fmt.Fprintf(w, "%d. %s (%s issues per 1K stars)\n",
				i+1, truncateName(e.FullName, nameWidth), fmtFloat(e.IssuesPer1K)); err != nil {
				return err
			}
		}
	}

	pre := result.ByEra[schema.PreAIEra]
	post := result.ByEra[schema.PostAIEra]
	if pre.AvgIssuesPer1K > post.AvgIssuesPer1K {
		_, _ = contract.FindingColor.Fprintln(w, "Pre-AI era repos show higher issue ratios")
	} else {
		_, _ = contract.CautionColor.Fprintln(w, "Post-AI era shows higher ratios, read with sample size in mind")
	}
	if _, err := fmt.Fprintf(w, "Analysis completed in %v across %d repositories\n", duration, len(result.Repos)); err != nil {
		return err
	}
	return nil
}

// writeRepoJSONData handles opening the file and calling the JSON writer.
func writeRepoJSONData(repos []schema.RepoMetrics, cfg *contract.Config) error {
	path := dataFilePath(cfg, "repo_data")
	return writeWithFile(path, func(w io.Writer) error {
		return writeJSON(w, exportRepoRecords(repos))
	}, "Wrote JSON")
}

// writeRepoCSVData handles opening the file and calling the CSV writer.
func writeRepoCSVData(repos []schema.RepoMetrics, cfg *contract.Config, fmtFloat func(float64) string) error {
	path := dataFilePath(cfg, "repo_data")
	header := []string{
		"full_name",
		"stars",
		"open_issues",
		"created",
		"language",
		"forks",
		"issues_per_1k_stars",
		"era",
		"total_issues",
		"closed_issues",
		"contributors",
	}
	return writeWithFile(path, func(w io.Writer) error {
		return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
			for i := range repos {
				r := &repos[i]
				rec := []string{
					r.FullName,
					strconv.Itoa(r.Stars),
					strconv.Itoa(r.OpenIssues),
					r.CreatedAt.Format("2006-01-02"),
					r.Language,
					strconv.Itoa(r.Forks),
					fmtFloat(r.IssuesPer1KStars()),
					string(r.Era()),
					strconv.Itoa(r.TotalIssues),
					strconv.Itoa(r.ClosedIssues),
					strconv.Itoa(r.Contributors),
				}
				if err := csvWriter.Write(rec); err != nil {
					return err
				}
			}
			return nil
		})
	}, "Wrote CSV")
}

// exportRepoRecords prepares the flattened structure for JSON export with
// derived fields added.
func exportRepoRecords(repos []schema.RepoMetrics) []map[string]any {
	output := make([]map[string]any, len(repos))
	for i := range repos {
		r := &repos[i]
		output[i] = map[string]any{
			"full_name":           r.FullName,
			"stars":               r.Stars,
			"open_issues":         r.OpenIssues,
			"created":             r.CreatedAt.Format(time.RFC3339),
			"language":            r.Language,
			"forks":               r.Forks,
			"issues_per_1k_stars": r.IssuesPer1KStars(),
			"era":                 r.Era(),
			"total_issues":        r.TotalIssues,
			"closed_issues":       r.ClosedIssues,
			"contributors":        r.Contributors,
		}
	}
	return output
}

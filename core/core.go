// Package core has the pipeline orchestration for the repository metrics
// and commit signal analyses.
package core

import (
	"time"

	"github.com/huangsam/debtscope/internal/contract"
	"github.com/huangsam/debtscope/schema"
)

// beginRun starts run tracking, returning 0 when tracking is unavailable.
// Tracking failures never abort an analysis.
func beginRun(store contract.RunStore, start time.Time, pipeline string, params map[string]any) int64 {
	if store == nil {
		return 0
	}
	runID, err := store.BeginRun(start, pipeline, params)
	if err != nil {
		contract.LogWarn("Run tracking initialization failed", err)
		return 0
	}
	return runID
}

// endRun finalizes run tracking.
func endRun(store contract.RunStore, runID int64, itemsAnalyzed int) {
	if store == nil || runID == 0 {
		return
	}
	if err := store.EndRun(runID, time.Now(), itemsAnalyzed); err != nil {
		contract.LogWarn("Failed to finalize run tracking", err)
	}
}

// recordRepoEraStats stores per-era repository aggregates for a run.
func recordRepoEraStats(store contract.RunStore, runID int64, byEra map[schema.Era]schema.EraStats) {
	if store == nil || runID == 0 {
		return
	}
	for era, st := range byEra {
		if err := store.RecordEraStats(runID, era, st.Count, st.AvgIssuesPer1K); err != nil {
			contract.LogWarn("Failed to record era stats", err)
		}
	}
}

// recordCommitEraStats stores per-era commit signal aggregates for a run.
// The tracked ratio is debt signals per 100 commits.
func recordCommitEraStats(store contract.RunStore, runID int64, byEra map[schema.Era]schema.CommitEraStats) {
	if store == nil || runID == 0 {
		return
	}
	for era, st := range byEra {
		if err := store.RecordEraStats(runID, era, st.Repos, st.RatioPer100[schema.DebtSignals]); err != nil {
			contract.LogWarn("Failed to record era stats", err)
		}
	}
}

package core

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/guidepost-dev/guidepost/internal/collect"
	"github.com/guidepost-dev/guidepost/internal/contract"
	"github.com/guidepost-dev/guidepost/internal/render"
	"github.com/guidepost-dev/guidepost/internal/store"
	"github.com/guidepost-dev/guidepost/schema"
)

// ExecuteRefresh runs a full refresh against the local git and gh binaries
// and reports how long it took. This is the entrypoint shared by the CLI
// and the MCP server.
func ExecuteRefresh(ctx context.Context, cfg *contract.Config, stores contract.StoreManager) (*schema.RefreshResult, time.Duration, error) {
	start := time.Now()
	result, err := RunRefresh(ctx, cfg, contract.NewLocalHistoryClient(), contract.NewLocalReviewClient(), stores, start)
	return result, time.Since(start), err
}

// RunRefresh executes the refresh pipeline: scan the area tree, collect
// commit and review evidence, classify it, render the guidelines, diff
// against the previously saved version, and persist both documents. A
// missing area aborts before any output; unavailable collectors degrade to
// findings; run-history failures are warnings and never fail the run.
func RunRefresh(ctx context.Context, cfg *contract.Config, history contract.HistoryClient, review contract.ReviewClient, stores contract.StoreManager, now time.Time) (*schema.RefreshResult, error) {
	areaPath := filepath.Join(cfg.RepoPath, filepath.FromSlash(cfg.Area))
	fileStats, namingStats, err := AnalyzeFiles(areaPath, ScanOptions{
		IgnoreDirs:     cfg.IgnoreDirs,
		CodeExtensions: cfg.CodeExtensions,
	})
	if err != nil {
		return nil, err
	}
	fileCount := 0
	for _, stat := range fileStats {
		fileCount += stat.Count
	}

	runStore := stores.GetRunStore()
	runID, err := runStore.BeginRun(now, cfg.Area, cfg.Depth, runParams(cfg))
	if err != nil {
		contract.LogWarn("Run history unavailable, continuing without tracking", err)
		runID = 0
	}

	var findings []string
	records, commitCount, reviewCount := collectRecords(ctx, cfg, history, review, now, &findings)

	matches := Classify(records, cfg.Themes, cfg.MaxThemeExamples)
	schema.RankThemeMatches(matches)
	activity := RefactorActivity(records, cfg.RefactorKeywords)

	window := cfg.Window()
	doc := render.Guidelines(render.GuidelineInput{
		Window:        window,
		GeneratedAt:   now,
		Matches:       matches,
		FileStats:     fileStats,
		NamingStats:   namingStats,
		Activity:      activity,
		Technologies:  cfg.Technologies,
		ExtraSections: cfg.ExtraSections,
		CommitCount:   commitCount,
		ReviewCount:   reviewCount,
		FileCount:     fileCount,
	})

	previous, err := loadPrevious(cfg.OutRoot, cfg.Area)
	if err != nil {
		return nil, err
	}
	changes := render.Diff(previous, doc)

	guidelinesPath, err := store.SaveGuidelines(cfg.OutRoot, cfg.Area, render.MarkdownGuidelines(doc, cfg.Depth), now)
	if err != nil {
		return nil, fmt.Errorf("persist guidelines: %w", err)
	}

	report := schema.AnalysisReport{
		Area:                cfg.Area,
		Depth:               cfg.Depth,
		GeneratedAt:         now,
		Metrics:             buildMetrics(commitCount, reviewCount, fileCount, matches),
		Findings:            findings,
		ChangesFromPrevious: changes,
	}
	reportPath, err := store.SaveReport(cfg.OutRoot, cfg.Area, render.MarkdownReport(report, matches, window), now)
	if err != nil {
		return nil, fmt.Errorf("persist report: %w", err)
	}

	if runID > 0 {
		if err := runStore.EndRun(runID, time.Now(), commitCount, reviewCount, fileCount); err != nil {
			contract.LogWarn("Failed to finalize run history entry", err)
		}
		if err := runStore.RecordThemeMetrics(runID, now, matches); err != nil {
			contract.LogWarn("Failed to record theme metrics", err)
		}
	}

	return &schema.RefreshResult{
		Window:         window,
		Matches:        matches,
		FileStats:      fileStats,
		NamingStats:    namingStats,
		Activity:       activity,
		CommitCount:    commitCount,
		ReviewCount:    reviewCount,
		FileCount:      fileCount,
		Findings:       findings,
		Changes:        changes,
		GuidelinesPath: guidelinesPath,
		ReportPath:     reportPath,
		RunID:          runID,
	}, nil
}

// collectRecords gathers commit and review evidence, appending exactly one
// finding per skipped source.
func collectRecords(ctx context.Context, cfg *contract.Config, history contract.HistoryClient, review contract.ReviewClient, now time.Time, findings *[]string) ([]schema.RawRecord, int, int) {
	var records []schema.RawRecord

	since := now.AddDate(0, 0, -cfg.LookbackDays)
	commits, err := collect.Commits(ctx, history, cfg, since)
	var unavailable *collect.UnavailableError
	if errors.As(err, &unavailable) {
		*findings = append(*findings, fmt.Sprintf("Commit analysis skipped: %s", unavailable.Reason))
	}
	records = append(records, commits...)

	reviews, err := collect.ReviewComments(ctx, review, cfg)
	if errors.As(err, &unavailable) {
		*findings = append(*findings, fmt.Sprintf("PR analysis skipped: %s", unavailable.Reason))
	}
	records = append(records, reviews...)

	return records, len(commits), len(reviews)
}

// loadPrevious parses the currently saved guidelines for the area, when one
// exists. A missing file means this is the initial version.
func loadPrevious(outRoot, area string) (*schema.GuidelinesDocument, error) {
	path, err := store.GuidelinesFilePath(outRoot, area)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read previous guidelines: %w", err)
	}
	return render.ParseGuidelines(data), nil
}

// buildMetrics assembles the report metric rows: evidence volume first, then
// every theme's match count in ranked order.
func buildMetrics(commitCount, reviewCount, fileCount int, matches []schema.ThemeMatch) []schema.Metric {
	metrics := []schema.Metric{
		{Name: "Commits analyzed", Value: commitCount},
		{Name: "Review comments analyzed", Value: reviewCount},
		{Name: "Files scanned", Value: fileCount},
	}
	for _, match := range matches {
		metrics = append(metrics, schema.Metric{Name: "Theme matches: " + match.ThemeName, Value: match.Count})
	}
	return metrics
}

// runParams captures the window tunables recorded with each run.
func runParams(cfg *contract.Config) map[string]any {
	return map[string]any{
		"lookback_days":         cfg.LookbackDays,
		"max_review_items":      cfg.MaxReviewItems,
		"min_pattern_frequency": cfg.MinPatternFrequency,
		"max_examples":          cfg.MaxThemeExamples,
	}
}

// Package parquet provides data structures and functions for exporting
// guidepost run history to Parquet files using
// github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/guidepost-dev/guidepost/schema"
	"github.com/parquet-go/parquet-go"
)

// RefreshRun represents a single guideline refresh run with metadata.
// This struct maps to the guidepost_refresh_runs database table.
type RefreshRun struct {
	// RunID is the unique identifier for this refresh run
	RunID int64 `parquet:"run_id,snappy"`

	// Area is the analyzed subdirectory, relative to the repository root
	Area string `parquet:"area,snappy"`

	// Depth names the analysis depth profile used
	Depth string `parquet:"depth,snappy"`

	// StartTime is when the refresh began (stored as TIMESTAMP with nanosecond precision)
	StartTime time.Time `parquet:"start_time,snappy"`

	// EndTime is when the refresh completed (nullable, stored as TIMESTAMP with nanosecond precision)
	EndTime *time.Time `parquet:"end_time,optional,snappy"`

	// RunDurationMs is the duration of the refresh run in milliseconds (nullable)
	RunDurationMs *int32 `parquet:"run_duration_ms,optional,snappy"`

	// CommitCount is the number of commits collected in this run
	CommitCount int32 `parquet:"commit_count,snappy"`

	// ReviewCount is the number of review comments collected in this run
	ReviewCount int32 `parquet:"review_count,snappy"`

	// FileCount is the number of files scanned in the area
	FileCount int32 `parquet:"file_count,snappy"`

	// ConfigParams contains the JSON-encoded window tunables (nullable)
	ConfigParams *string `parquet:"config_params,optional,snappy"`
}

// ThemeMetric represents one theme's match counts within a refresh run.
// This struct maps to the guidepost_theme_metrics database table.
type ThemeMetric struct {
	// RunID references the parent refresh run
	RunID int64 `parquet:"run_id,snappy"`

	// Theme is the dictionary entry that matched
	Theme string `parquet:"theme,snappy"`

	// MatchCount is how many records matched the theme
	MatchCount int32 `parquet:"match_count,snappy"`

	// ExampleCount is how many example texts were sampled
	ExampleCount int32 `parquet:"example_count,snappy"`

	// RunTime is when the metrics were recorded (stored as TIMESTAMP with nanosecond precision)
	RunTime time.Time `parquet:"run_time,snappy"`
}

// WriteRefreshRunsParquet writes a slice of RefreshRun structs to a Parquet file.
func WriteRefreshRunsParquet(data []RefreshRun, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// The schema is automatically derived from the RefreshRun struct tags
	writer := parquet.NewGenericWriter[RefreshRun](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// WriteThemeMetricsParquet writes a slice of ThemeMetric structs to a Parquet file.
func WriteThemeMetricsParquet(data []ThemeMetric, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// The schema is automatically derived from the ThemeMetric struct tags
	writer := parquet.NewGenericWriter[ThemeMetric](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// MockFetchRefreshRuns generates sample RefreshRun data for demonstration.
func MockFetchRefreshRuns() []RefreshRun {
	now := time.Now()
	startTime1 := now.Add(-2 * time.Hour)
	endTime1 := now.Add(-1*time.Hour - 58*time.Minute)
	durationMs1 := int32(endTime1.Sub(startTime1).Milliseconds())
	configParams1 := `{"lookback_days":90,"max_review_items":50,"min_pattern_frequency":5}`

	startTime2 := now.Add(-24 * time.Hour)
	endTime2 := now.Add(-24*time.Hour + 45*time.Second)
	durationMs2 := int32(endTime2.Sub(startTime2).Milliseconds())
	configParams2 := `{"lookback_days":30,"max_review_items":20,"min_pattern_frequency":3}`

	startTime3 := now.Add(-10 * time.Minute)
	// Note: endTime3, durationMs3, configParams3 are nil to demonstrate nullable fields

	return []RefreshRun{
		{
			RunID:         1,
			Area:          "frontend/components",
			Depth:         "standard",
			StartTime:     startTime1,
			EndTime:       &endTime1,
			RunDurationMs: &durationMs1,
			CommitCount:   42,
			ReviewCount:   18,
			FileCount:     150,
			ConfigParams:  &configParams1,
		},
		{
			RunID:         2,
			Area:          "backend/api",
			Depth:         "quick",
			StartTime:     startTime2,
			EndTime:       &endTime2,
			RunDurationMs: &durationMs2,
			CommitCount:   12,
			ReviewCount:   4,
			FileCount:     75,
			ConfigParams:  &configParams2,
		},
		{
			RunID:     3,
			Area:      "frontend/components",
			Depth:     "deep",
			StartTime: startTime3,
		},
	}
}

// MockFetchThemeMetrics generates sample ThemeMetric data for demonstration.
func MockFetchThemeMetrics() []ThemeMetric {
	now := time.Now()

	return []ThemeMetric{
		{
			RunID:        1,
			Theme:        "testing",
			MatchCount:   14,
			ExampleCount: 5,
			RunTime:      now.Add(-2 * time.Hour),
		},
		{
			RunID:        1,
			Theme:        "naming",
			MatchCount:   6,
			ExampleCount: 4,
			RunTime:      now.Add(-2 * time.Hour),
		},
		{
			RunID:        2,
			Theme:        "error handling",
			MatchCount:   3,
			ExampleCount: 2,
			RunTime:      now.Add(-24 * time.Hour),
		},
	}
}

// ConvertRefreshRunRecords converts schema.RefreshRunRecord to RefreshRun for Parquet export.
func ConvertRefreshRunRecords(records []schema.RefreshRunRecord) []RefreshRun {
	result := make([]RefreshRun, len(records))
	for i, record := range records {
		result[i] = RefreshRun{
			RunID:         record.RunID,
			Area:          record.Area,
			Depth:         record.Depth,
			StartTime:     record.StartTime,
			EndTime:       record.EndTime,
			RunDurationMs: record.RunDurationMs,
			CommitCount:   record.CommitCount,
			ReviewCount:   record.ReviewCount,
			FileCount:     record.FileCount,
			ConfigParams:  record.ConfigParams,
		}
	}
	return result
}

// ConvertThemeMetricRecords converts schema.ThemeMetricRecord to ThemeMetric for Parquet export.
func ConvertThemeMetricRecords(records []schema.ThemeMetricRecord) []ThemeMetric {
	result := make([]ThemeMetric, len(records))
	for i, record := range records {
		result[i] = ThemeMetric{
			RunID:        record.RunID,
			Theme:        record.Theme,
			MatchCount:   record.MatchCount,
			ExampleCount: record.ExampleCount,
			RunTime:      record.RunTime,
		}
	}
	return result
}

package store

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/guidepost-dev/guidepost/internal/parquet"
	"github.com/guidepost-dev/guidepost/schema"
)

// ExecuteHistoryExport exports all recorded run history to the chosen
// format, producing one file per table with the output file as prefix.
func ExecuteHistoryExport(outputFile string, format schema.ExportFormat) error {
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}

	runStore := Manager.GetRunStore()

	status, err := runStore.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get run-history status: %w", err)
	}
	if status.TotalRuns == 0 {
		return errors.New("no run history found to export")
	}

	fmt.Printf("Exporting data from %s backend...\n", status.Backend)
	fmt.Printf("Total refresh runs: %d\n", status.TotalRuns)
	fmt.Printf("Total theme metric rows: %d\n", status.TableSizes[themeMetricsTable])

	runs, err := runStore.GetAllRuns()
	if err != nil {
		return fmt.Errorf("failed to retrieve refresh runs: %w", err)
	}
	metrics, err := runStore.GetAllThemeMetrics()
	if err != nil {
		return fmt.Errorf("failed to retrieve theme metrics: %w", err)
	}

	switch format {
	case schema.CSVExport:
		return exportCSV(outputFile, runs, metrics)
	default:
		return exportParquet(outputFile, runs, metrics)
	}
}

func exportParquet(outputFile string, runs []schema.RefreshRunRecord, metrics []schema.ThemeMetricRecord) error {
	runsFile := outputFile + ".refresh_runs.parquet"
	if err := parquet.WriteRefreshRunsParquet(parquet.ConvertRefreshRunRecords(runs), runsFile); err != nil {
		return fmt.Errorf("failed to write refresh runs: %w", err)
	}
	fmt.Printf("Exported %d refresh runs to: %s\n", len(runs), runsFile)

	metricsFile := outputFile + ".theme_metrics.parquet"
	if err := parquet.WriteThemeMetricsParquet(parquet.ConvertThemeMetricRecords(metrics), metricsFile); err != nil {
		return fmt.Errorf("failed to write theme metrics: %w", err)
	}
	fmt.Printf("Exported %d theme metric rows to: %s\n", len(metrics), metricsFile)

	fmt.Println("\nExport complete! The Parquet files can be used with:")
	fmt.Println("  - Apache Spark")
	fmt.Println("  - Pandas (via pyarrow)")
	fmt.Println("  - DuckDB")
	fmt.Println("  - Any other Parquet-compatible tool")

	return nil
}

func exportCSV(outputFile string, runs []schema.RefreshRunRecord, metrics []schema.ThemeMetricRecord) error {
	runsFile := outputFile + ".refresh_runs.csv"
	if err := writeRunsCSV(runsFile, runs); err != nil {
		return err
	}
	fmt.Printf("Exported %d refresh runs to: %s\n", len(runs), runsFile)

	metricsFile := outputFile + ".theme_metrics.csv"
	if err := writeMetricsCSV(metricsFile, metrics); err != nil {
		return err
	}
	fmt.Printf("Exported %d theme metric rows to: %s\n", len(metrics), metricsFile)

	return nil
}

func writeRunsCSV(path string, runs []schema.RefreshRunRecord) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	w := csv.NewWriter(file)
	header := []string{"run_id", "area", "depth", "start_time", "end_time", "run_duration_ms", "commit_count", "review_count", "file_count", "config_params"}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, run := range runs {
		row := []string{
			strconv.FormatInt(run.RunID, 10),
			run.Area,
			run.Depth,
			run.StartTime.Format(time.RFC3339Nano),
			optionalTime(run.EndTime),
			optionalInt32(run.RunDurationMs),
			strconv.Itoa(int(run.CommitCount)),
			strconv.Itoa(int(run.ReviewCount)),
			strconv.Itoa(int(run.FileCount)),
			optionalString(run.ConfigParams),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	w.Flush()
	return w.Error()
}

func writeMetricsCSV(path string, metrics []schema.ThemeMetricRecord) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	w := csv.NewWriter(file)
	header := []string{"run_id", "theme", "match_count", "example_count", "run_time"}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, metric := range metrics {
		row := []string{
			strconv.FormatInt(metric.RunID, 10),
			metric.Theme,
			strconv.Itoa(int(metric.MatchCount)),
			strconv.Itoa(int(metric.ExampleCount)),
			metric.RunTime.Format(time.RFC3339Nano),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	w.Flush()
	return w.Error()
}

func optionalTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339Nano)
}

func optionalInt32(n *int32) string {
	if n == nil {
		return ""
	}
	return strconv.Itoa(int(*n))
}

func optionalString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/guidepost-dev/guidepost/internal/contract"
	"github.com/guidepost-dev/guidepost/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// PrintRefreshSummary outputs the post-run summary, dispatching based on the output format configured.
func PrintRefreshSummary(result *schema.RefreshResult, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := printSummaryJSON(result, cfg, duration); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := printSummaryCSV(result, cfg); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeSummaryTable(result, cfg, duration, w)
		}, "Wrote table")
	}
	return nil
}

// refreshSummaryJSON is the JSON shape of the run summary, the RefreshResult
// plus timing. The MCP refresh tool returns the same structure.
type refreshSummaryJSON struct {
	*schema.RefreshResult
	DurationMs int64 `json:"duration_ms"`
}

// printSummaryJSON handles opening the file and calling the JSON writer.
func printSummaryJSON(result *schema.RefreshResult, cfg *contract.Config, duration time.Duration) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSON(w, refreshSummaryJSON{RefreshResult: result, DurationMs: duration.Milliseconds()})
	}, "Wrote JSON")
}

// printSummaryCSV handles opening the file and calling the CSV writer.
func printSummaryCSV(result *schema.RefreshResult, cfg *contract.Config) error {
	header := []string{"rank", "theme", "matches", "signal", "example"}
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
			for i, match := range result.Matches {
				example := ""
				if len(match.ExampleTexts) > 0 {
					example = match.ExampleTexts[0]
				}
				rec := []string{
					strconv.Itoa(i + 1),
					match.ThemeName,
					strconv.Itoa(match.Count),
					contract.GetPlainLabel(match.Count, result.Window.MinPatternFrequency),
					example,
				}
				if err := csvWriter.Write(rec); err != nil {
					return err
				}
			}
			return nil
		})
	}, "Wrote CSV")
}

// writeSummaryTable generates and writes the human-readable summary.
func writeSummaryTable(result *schema.RefreshResult, cfg *contract.Config, duration time.Duration, writer io.Writer) error {
	// 1. Header lines before the table
	if _, err := fmt.Fprintf(writer, "Guidelines refreshed for %s (depth: %s)\n", result.Window.Area, result.Window.Depth); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Guidelines: %s\nReport: %s\n", result.GuidelinesPath, result.ReportPath); err != nil {
		return err
	}
	for _, finding := range result.Findings {
		if _, err := fmt.Fprintf(writer, "Note: %s\n", finding); err != nil {
			return err
		}
	}

	// 2. Theme table in ranked order
	table := tablewriter.NewWriter(writer)
	table.Header([]string{"Rank", "Theme", "Matches", "Signal", "Example"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	label := labelFunc(cfg)
	maxExample := GetMaxExampleWidth(cfg)
	var data [][]string
	for i, match := range result.Matches {
		example := ""
		if len(match.ExampleTexts) > 0 {
			example = schema.TruncateText(match.ExampleTexts[0], maxExample)
		}
		data = append(data, []string{
			strconv.Itoa(i + 1), // Rank
			match.ThemeName,     // Theme
			strconv.Itoa(match.Count),
			label(match.Count, result.Window.MinPatternFrequency),
			example,
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	// 3. Summary stats
	if _, err := fmt.Fprintf(writer, "Analyzed %d commits, %d review comments, %d files over %d days\n",
		result.CommitCount, result.ReviewCount, result.FileCount, result.Window.LookbackDays); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Refresh completed in %v. History backend: %s\n", duration, cfg.HistoryBackend); err != nil {
		return err
	}
	return nil
}

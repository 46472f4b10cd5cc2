package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/guidepost-dev/guidepost/internal/contract"
	"github.com/guidepost-dev/guidepost/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// PrintRunHistory outputs recorded refresh runs, dispatching based on the output format configured.
func PrintRunHistory(runs []schema.RefreshRunRecord, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, runs)
		}, "Wrote JSON")
	case schema.CSVOut:
		header := []string{"run_id", "area", "depth", "start_time", "duration_ms", "commits", "reviews", "files"}
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
				for _, run := range runs {
					if err := csvWriter.Write(runCSVRow(run)); err != nil {
						return err
					}
				}
				return nil
			})
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeRunTable(runs, w)
		}, "Wrote table")
	}
}

// runCSVRow flattens one run record, leaving incomplete-run columns blank.
func runCSVRow(run schema.RefreshRunRecord) []string {
	duration := ""
	if run.RunDurationMs != nil {
		duration = strconv.Itoa(int(*run.RunDurationMs))
	}
	return []string{
		strconv.FormatInt(run.RunID, 10),
		run.Area,
		run.Depth,
		run.StartTime.Format(contract.DateTimeFormat),
		duration,
		strconv.Itoa(int(run.CommitCount)),
		strconv.Itoa(int(run.ReviewCount)),
		strconv.Itoa(int(run.FileCount)),
	}
}

// writeRunTable generates and writes the human-readable run listing.
func writeRunTable(runs []schema.RefreshRunRecord, writer io.Writer) error {
	if len(runs) == 0 {
		_, err := fmt.Fprintln(writer, "No refresh runs recorded yet")
		return err
	}

	table := tablewriter.NewWriter(writer)
	table.Header([]string{"Run", "Area", "Depth", "Started", "Duration", "Commits", "Reviews", "Files"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, run := range runs {
		duration := "-"
		if run.RunDurationMs != nil {
			duration = fmt.Sprintf("%dms", *run.RunDurationMs)
		}
		data = append(data, []string{
			strconv.FormatInt(run.RunID, 10),
			run.Area,
			run.Depth,
			run.StartTime.Format(contract.DateTimeFormat),
			duration,
			strconv.Itoa(int(run.CommitCount)),
			strconv.Itoa(int(run.ReviewCount)),
			strconv.Itoa(int(run.FileCount)),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(writer, "Showing %d recorded runs\n", len(runs)); err != nil {
		return err
	}
	return nil
}

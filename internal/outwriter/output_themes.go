package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/guidepost-dev/guidepost/internal/contract"
	"github.com/guidepost-dev/guidepost/schema"
	"github.com/olekukonko/tablewriter"
)

// PrintThemeDictionary outputs the effective theme dictionary, dispatching based on the output format configured.
func PrintThemeDictionary(themes []schema.Theme, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, themes)
		}, "Wrote JSON")
	case schema.CSVOut:
		header := []string{"theme", "keywords"}
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
				for _, theme := range themes {
					if err := csvWriter.Write([]string{theme.Name, strings.Join(theme.Keywords, "|")}); err != nil {
						return err
					}
				}
				return nil
			})
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeThemeTable(themes, w)
		}, "Wrote table")
	}
}

// writeThemeTable generates and writes the human-readable dictionary listing.
func writeThemeTable(themes []schema.Theme, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)
	table.Header([]string{"Theme", "Keywords"})

	var data [][]string
	for _, theme := range themes {
		data = append(data, []string{theme.Name, strings.Join(theme.Keywords, ", ")})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	totalKeywords := 0
	for _, theme := range themes {
		totalKeywords += len(theme.Keywords)
	}
	if _, err := fmt.Fprintf(writer, "%d themes with %d keywords in the dictionary\n", len(themes), totalKeywords); err != nil {
		return err
	}
	return nil
}

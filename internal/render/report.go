package render

import (
	"fmt"
	"strings"

	"github.com/guidepost-dev/guidepost/internal/contract"
	"github.com/guidepost-dev/guidepost/schema"
)

// ReportExampleLimit caps example quote length inside the analysis report.
const ReportExampleLimit = 250

// reportFeedbackThemes is how many top themes quote sample feedback.
const reportFeedbackThemes = 3

// reportFeedbackSamples is how many quotes each theme contributes.
const reportFeedbackSamples = 2

// MarkdownReport renders the write-once analysis report that accompanies a
// refreshed guidelines document. Matches must already be ranked.
func MarkdownReport(report schema.AnalysisReport, matches []schema.ThemeMatch, window schema.AnalysisWindow) string {
	var b strings.Builder

	b.WriteString("# Guideline Refresh Report\n\n")
	fmt.Fprintf(&b, "**Area:** `%s`\n", report.Area)
	fmt.Fprintf(&b, "**Date:** %s\n", report.GeneratedAt.Format(contract.DateTimeFormat))
	fmt.Fprintf(&b, "**Analysis Depth:** %s\n\n", report.Depth)

	b.WriteString("## Executive Summary\n\n")
	fmt.Fprintf(&b, "This report documents the analysis performed to refresh coding guidelines for `%s`, covering the last %d days of history.\n\n", report.Area, window.LookbackDays)

	b.WriteString("## Metrics\n\n")
	for _, metric := range report.Metrics {
		fmt.Fprintf(&b, "- **%s:** %d\n", metric.Name, metric.Value)
	}
	b.WriteString("\n")

	b.WriteString("## Key Findings\n\n")
	if len(report.Findings) == 0 {
		b.WriteString("All evidence sources were available for this run.\n\n")
	} else {
		for _, finding := range report.Findings {
			fmt.Fprintf(&b, "- %s\n", finding)
		}
		b.WriteString("\n")
	}

	writeSampleFeedback(&b, matches)

	b.WriteString("## Changes from Previous Guidelines\n\n")
	if len(report.ChangesFromPrevious) == 0 {
		b.WriteString("Guidelines structure and content unchanged from the previous run.\n\n")
	} else {
		for _, change := range report.ChangesFromPrevious {
			fmt.Fprintf(&b, "- %s\n", change)
		}
		b.WriteString("\n")
	}

	b.WriteString("## Next Steps\n\n")
	b.WriteString("1. Review the generated guidelines\n")
	b.WriteString("2. Add specific code examples from recent merged changes\n")
	b.WriteString("3. Validate recommendations against project standards\n")
	b.WriteString("4. Share with the team for feedback\n")
	b.WriteString("5. Commit the updated guidelines to version control\n")

	return b.String()
}

// writeSampleFeedback quotes up to two examples from each of the top three
// themes that matched at all.
func writeSampleFeedback(b *strings.Builder, matches []schema.ThemeMatch) {
	b.WriteString("## Sample Review Feedback\n\n")

	quoted := 0
	for _, match := range matches {
		if quoted >= reportFeedbackThemes {
			break
		}
		if match.Count == 0 || len(match.ExampleTexts) == 0 {
			continue
		}
		fmt.Fprintf(b, "### %s\n\n", match.ThemeName)
		for i, example := range match.ExampleTexts {
			if i >= reportFeedbackSamples {
				break
			}
			fmt.Fprintf(b, "> %s\n\n", schema.TruncateText(example, ReportExampleLimit))
		}
		quoted++
	}
	if quoted == 0 {
		b.WriteString("No theme collected example feedback in this window.\n\n")
	}
}

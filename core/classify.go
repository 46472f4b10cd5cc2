// Package core has the classification, file-scanning and refresh pipeline logic.
package core

import (
	"strings"

	"github.com/guidepost-dev/guidepost/schema"
)

// Classify buckets records into the configured themes. A record matches a
// theme when any keyword occurs as a case-insensitive substring of its
// text; a record may match any number of themes. Every configured theme
// appears in the result, zero counts included, in dictionary order.
// ExampleTexts holds the first maxExamples matching records in input order
// so repeated runs over the same input reproduce the same samples.
func Classify(records []schema.RawRecord, themes []schema.Theme, maxExamples int) []schema.ThemeMatch {
	matches := make([]schema.ThemeMatch, len(themes))
	for i, theme := range themes {
		matches[i] = schema.ThemeMatch{ThemeName: theme.Name}
	}

	for _, record := range records {
		lowered := strings.ToLower(record.Text)
		for i, theme := range themes {
			if !matchesAny(lowered, theme.Keywords) {
				continue
			}
			matches[i].Count++
			if len(matches[i].ExampleTexts) < maxExamples {
				matches[i].ExampleTexts = append(matches[i].ExampleTexts, schema.FlattenText(record.Text))
			}
		}
	}

	return matches
}

// matchesAny reports whether any keyword occurs in the lowered text.
func matchesAny(lowered string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(lowered, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

// RefactorActivity summarizes commit records whose subjects carry refactor
// keywords, feeding the Recent Evolution section. Only commit-source
// records count; review chatter about refactoring is not evolution.
func RefactorActivity(records []schema.RawRecord, keywords []string) schema.RefactorActivity {
	activity := schema.RefactorActivity{}

	for _, record := range records {
		if record.Source != schema.CommitSource {
			continue
		}
		subject := record.Text
		if idx := strings.IndexByte(subject, '\n'); idx >= 0 {
			subject = subject[:idx]
		}
		if !matchesAny(strings.ToLower(subject), keywords) {
			continue
		}
		activity.Count++
		if len(activity.Examples) < schema.MaxActivityExamples {
			activity.Examples = append(activity.Examples, schema.FlattenText(subject))
		}
	}

	return activity
}

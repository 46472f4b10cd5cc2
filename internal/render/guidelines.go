// Package render turns analysis results into guidelines and report markdown.
// Rendering is pure: the same inputs always produce the same bytes, and the
// generation timestamp appears only in document headers so an unchanged
// analysis yields unchanged sections.
package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/guidepost-dev/guidepost/internal/contract"
	"github.com/guidepost-dev/guidepost/schema"
)

// GuidelineExampleLimit caps example quote length inside the guidelines.
const GuidelineExampleLimit = 200

// TopSectionEntries caps the ranked entries shown per guidelines section.
const TopSectionEntries = 5

// MajorityShare is the fraction of classified files one naming convention
// must exceed to earn the explicit majority callout.
const MajorityShare = 0.6

// GuidelineInput bundles everything the guidelines renderer consumes.
// Matches must already be ranked by descending count.
type GuidelineInput struct {
	Window        schema.AnalysisWindow
	GeneratedAt   time.Time
	Matches       []schema.ThemeMatch
	FileStats     []schema.FileStat
	NamingStats   []schema.NamingConventionStat
	Activity      schema.RefactorActivity
	Technologies  []string
	ExtraSections []schema.Section
	CommitCount   int
	ReviewCount   int
	FileCount     int
}

// Guidelines renders the analysis into a guidelines document with a fixed
// section order. Area-override extra sections append after the fixed ones.
func Guidelines(in GuidelineInput) schema.GuidelinesDocument {
	sections := []schema.Section{
		{Heading: "Analysis Summary", Body: summaryBody(in)},
		{Heading: "Technology Focus", Body: technologyBody(in)},
		{Heading: "File Organization", Body: fileOrganizationBody(in)},
		{Heading: "Code Review Focus Areas", Body: reviewFocusBody(in)},
		{Heading: "Recent Evolution", Body: evolutionBody(in.Activity)},
		{Heading: "Recommendations", Body: recommendationsBody(in)},
		{Heading: "Code Examples", Body: codeExamplesBody},
	}
	for _, extra := range in.ExtraSections {
		sections = append(sections, schema.Section{
			Heading: extra.Heading,
			Body:    strings.TrimSpace(extra.Body),
		})
	}

	return schema.GuidelinesDocument{
		Area:        in.Window.Area,
		GeneratedAt: in.GeneratedAt,
		Sections:    sections,
	}
}

// MarkdownGuidelines renders a document into the saved markdown form. The
// header block carries the volatile metadata; section bodies stay stable.
func MarkdownGuidelines(doc schema.GuidelinesDocument, depth schema.Depth) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Coding Guidelines: %s\n\n", doc.Area)
	fmt.Fprintf(&b, "**Generated:** %s\n", doc.GeneratedAt.Format(contract.DateTimeFormat))
	fmt.Fprintf(&b, "**Depth:** %s\n", depth)
	for _, section := range doc.Sections {
		fmt.Fprintf(&b, "\n## %s\n\n%s\n", section.Heading, section.Body)
	}
	return b.String()
}

func summaryBody(in GuidelineInput) string {
	var b strings.Builder
	fmt.Fprintf(&b, "- **Commits analyzed:** %d\n", in.CommitCount)
	fmt.Fprintf(&b, "- **Review comments analyzed:** %d\n", in.ReviewCount)
	fmt.Fprintf(&b, "- **Files in area:** %d\n", in.FileCount)
	fmt.Fprintf(&b, "- **Lookback window:** %d days", in.Window.LookbackDays)
	return b.String()
}

func technologyBody(in GuidelineInput) string {
	techs := make(map[string]struct{}, len(in.Technologies))
	for _, tech := range in.Technologies {
		techs[tech] = struct{}{}
	}

	var b strings.Builder
	shown := 0
	for _, match := range in.Matches {
		if _, ok := techs[match.ThemeName]; !ok {
			continue
		}
		if match.Count < in.Window.MinPatternFrequency {
			continue
		}
		fmt.Fprintf(&b, "- **%s**: %d mentions\n", match.ThemeName, match.Count)
		shown++
	}
	if shown == 0 {
		return "No dominant technology signals in this window."
	}
	return "Based on commit and review analysis:\n\n" + strings.TrimRight(b.String(), "\n")
}

func fileOrganizationBody(in GuidelineInput) string {
	if in.FileCount == 0 {
		return "The area contains no files."
	}

	var b strings.Builder
	b.WriteString("**Primary file types:**\n\n")
	for i, stat := range in.FileStats {
		if i >= TopSectionEntries {
			break
		}
		percentage := float64(stat.Count) / float64(in.FileCount) * 100
		fmt.Fprintf(&b, "- `%s`: %d files (%.1f%%)\n", stat.Extension, stat.Count, percentage)
	}

	classified := 0
	for _, stat := range in.NamingStats {
		classified += stat.Count
	}
	if classified > 0 {
		b.WriteString("\n**Observed naming patterns:**\n\n")
		for _, stat := range in.NamingStats {
			percentage := float64(stat.Count) / float64(classified) * 100
			fmt.Fprintf(&b, "- **%s**: %d files (%.1f%%)\n", stat.Convention, stat.Count, percentage)
		}
		if convention, share, ok := schema.MajorityConvention(in.NamingStats, MajorityShare); ok {
			fmt.Fprintf(&b, "\nMost files follow `%s` (%.1f%% of classified files).\n", convention, share*100)
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

func reviewFocusBody(in GuidelineInput) string {
	techs := make(map[string]struct{}, len(in.Technologies))
	for _, tech := range in.Technologies {
		techs[tech] = struct{}{}
	}

	var b strings.Builder
	shown := 0
	for _, match := range in.Matches {
		if shown >= TopSectionEntries {
			break
		}
		if _, isTech := techs[match.ThemeName]; isTech {
			continue
		}
		if match.Count < in.Window.MinPatternFrequency {
			continue
		}
		fmt.Fprintf(&b, "### %s (%d mentions)\n\n", match.ThemeName, match.Count)
		if len(match.ExampleTexts) > 0 {
			example := schema.TruncateText(match.ExampleTexts[0], GuidelineExampleLimit)
			fmt.Fprintf(&b, "Example feedback: %q\n\n", example)
		}
		shown++
	}
	if shown == 0 {
		return "No recurring review themes cleared the frequency threshold."
	}
	return "Based on recurring themes in recent reviews:\n\n" + strings.TrimRight(b.String(), "\n")
}

func evolutionBody(activity schema.RefactorActivity) string {
	if activity.Count == 0 {
		return "No notable refactoring activity in this window. Consider an exploratory cleanup pass if the area feels stale."
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d commits in this window carried refactoring intent:\n\n", activity.Count)
	for _, example := range activity.Examples {
		fmt.Fprintf(&b, "- %s\n", example)
	}
	return strings.TrimRight(b.String(), "\n")
}

// recommendationTemplates maps theme names to their templated bullet. The
// count interpolates into the single %d verb.
var recommendationTemplates = map[string]string{
	"typescript":        "**Strong TypeScript signal** (%d mentions). Enforce strict type checking and avoid `any` types.",
	"type safety":       "**Type safety is a recurring concern** (%d mentions). Define interfaces for props and function parameters instead of reaching for `any`.",
	"testing":           "**Testing is a priority** (%d mentions). Ensure all new code lands with tests; reviews keep asking for them.",
	"performance":       "**Performance optimization is a recurring theme** (%d mentions). Profile before optimizing; prefer memoization and code splitting for heavy paths.",
	"code organization": "**Code organization is frequently discussed** (%d mentions). Keep related files together and follow the established directory layout.",
	"error handling":    "**Error handling needs attention** (%d mentions). Use consistent patterns, meaningful messages, and cover the edge cases reviewers keep flagging.",
	"react":             "**React patterns are dominant** (%d mentions). Use functional components with hooks for new code.",
	"vue":               "**Vue patterns are dominant** (%d mentions). Prefer the composition API for new components.",
	"naming":            "**Naming comes up often in review** (%d mentions). Agree on vocabulary before coding and rename eagerly when a better word appears.",
	"documentation":     "**Documentation is frequently requested** (%d mentions). Document public surfaces alongside the change that introduces them.",
	"accessibility":     "**Accessibility is an active concern** (%d mentions). Verify ARIA roles and screen-reader flows as part of review.",
	"security":          "**Security feedback is recurring** (%d mentions). Sanitize inputs and escape outputs; treat every injection comment as a blocker.",
	"async":             "**Async patterns are heavily exercised** (%d mentions). Prefer structured async/await flows over ad-hoc promise chains.",
}

const genericRecommendationTemplate = "**%s is a recurring theme** (%d mentions). Fold the review feedback above into the team's checklist."

func recommendationsBody(in GuidelineInput) string {
	var recs []string
	for _, match := range in.Matches {
		if match.Count < in.Window.MinPatternFrequency {
			continue
		}
		if template, ok := recommendationTemplates[match.ThemeName]; ok {
			recs = append(recs, fmt.Sprintf(template, match.Count))
		} else {
			recs = append(recs, fmt.Sprintf(genericRecommendationTemplate, match.ThemeName, match.Count))
		}
	}
	if convention, share, ok := schema.MajorityConvention(in.NamingStats, MajorityShare); ok {
		recs = append(recs, fmt.Sprintf("**Follow the `%s` naming pattern** (%.1f%% of classified files already do).", convention, share*100))
	}

	if len(recs) == 0 {
		return "No pattern cleared the frequency threshold. Re-run with a deeper profile or a wider area."
	}

	var b strings.Builder
	b.WriteString("Based on the analysis above:\n\n")
	for i, rec := range recs {
		fmt.Fprintf(&b, "%d. %s\n", i+1, rec)
	}
	return strings.TrimRight(b.String(), "\n")
}

const codeExamplesBody = "> **Note:** Add specific code examples from recent merged changes that demonstrate the recommended patterns."

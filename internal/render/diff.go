package render

import (
	"strings"

	"github.com/guidepost-dev/guidepost/schema"
)

// InitialVersionLine is the single change line emitted when no previous
// guidelines exist for the area.
const InitialVersionLine = "This is the first version of guidelines for this area."

// Diff compares two guidelines documents section by section. Added and
// changed headings report in next-document order, removed headings in
// previous-document order. Bodies compare whole, no line diffing.
func Diff(previous *schema.GuidelinesDocument, next schema.GuidelinesDocument) []string {
	if previous == nil {
		return []string{InitialVersionLine}
	}

	prevBodies := make(map[string]string, len(previous.Sections))
	for _, section := range previous.Sections {
		prevBodies[section.Heading] = section.Body
	}
	nextHeadings := make(map[string]struct{}, len(next.Sections))

	var changes []string
	for _, section := range next.Sections {
		nextHeadings[section.Heading] = struct{}{}
		prevBody, existed := prevBodies[section.Heading]
		switch {
		case !existed:
			changes = append(changes, "Added: "+section.Heading)
		case prevBody != section.Body:
			changes = append(changes, "Changed: "+section.Heading)
		}
	}
	for _, section := range previous.Sections {
		if _, kept := nextHeadings[section.Heading]; !kept {
			changes = append(changes, "Removed: "+section.Heading)
		}
	}

	return changes
}

// ParseGuidelines recovers a document's sections from saved markdown by
// splitting on level-two headings. The inverse of MarkdownGuidelines up to
// surrounding whitespace; header metadata is not recovered.
func ParseGuidelines(data []byte) *schema.GuidelinesDocument {
	doc := &schema.GuidelinesDocument{}

	var current *schema.Section
	var body strings.Builder
	flush := func() {
		if current != nil {
			current.Body = strings.TrimSpace(body.String())
			doc.Sections = append(doc.Sections, *current)
		}
		body.Reset()
	}

	for _, line := range strings.Split(string(data), "\n") {
		if heading, ok := strings.CutPrefix(line, "## "); ok {
			flush()
			current = &schema.Section{Heading: strings.TrimSpace(heading)}
			continue
		}
		if area, ok := strings.CutPrefix(line, "# Coding Guidelines: "); ok && current == nil {
			doc.Area = strings.TrimSpace(area)
			continue
		}
		if current != nil {
			body.WriteString(line)
			body.WriteString("\n")
		}
	}
	flush()

	return doc
}

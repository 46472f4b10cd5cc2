package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guidepost-dev/guidepost/schema"
)

func docWith(sections ...schema.Section) schema.GuidelinesDocument {
	return schema.GuidelinesDocument{Area: "frontend/components", Sections: sections}
}

func TestDiff(t *testing.T) {
	tests := []struct {
		name     string
		previous *schema.GuidelinesDocument
		next     schema.GuidelinesDocument
		want     []string
	}{
		{
			name:     "initial version",
			previous: nil,
			next:     docWith(schema.Section{Heading: "Analysis Summary", Body: "a"}),
			want:     []string{InitialVersionLine},
		},
		{
			name: "no changes",
			previous: ptr(docWith(
				schema.Section{Heading: "Analysis Summary", Body: "a"},
				schema.Section{Heading: "Recommendations", Body: "b"},
			)),
			next: docWith(
				schema.Section{Heading: "Analysis Summary", Body: "a"},
				schema.Section{Heading: "Recommendations", Body: "b"},
			),
			want: nil,
		},
		{
			name: "added changed removed ordering",
			previous: ptr(docWith(
				schema.Section{Heading: "Analysis Summary", Body: "old"},
				schema.Section{Heading: "Legacy Notes", Body: "x"},
				schema.Section{Heading: "Recommendations", Body: "same"},
			)),
			next: docWith(
				schema.Section{Heading: "Analysis Summary", Body: "new"},
				schema.Section{Heading: "Recommendations", Body: "same"},
				schema.Section{Heading: "Team Conventions", Body: "y"},
			),
			want: []string{
				"Changed: Analysis Summary",
				"Added: Team Conventions",
				"Removed: Legacy Notes",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Diff(tt.previous, tt.next))
		})
	}
}

func ptr(doc schema.GuidelinesDocument) *schema.GuidelinesDocument {
	return &doc
}

func TestParseGuidelinesRoundTrip(t *testing.T) {
	doc := Guidelines(sampleInput())
	rendered := MarkdownGuidelines(doc, schema.StandardDepth)

	parsed := ParseGuidelines([]byte(rendered))
	require.Len(t, parsed.Sections, len(doc.Sections))
	assert.Equal(t, doc.Area, parsed.Area)
	for i, section := range doc.Sections {
		assert.Equal(t, section.Heading, parsed.Sections[i].Heading)
		assert.Equal(t, section.Body, parsed.Sections[i].Body)
	}
}

func TestParseGuidelinesRoundTripDiffEmpty(t *testing.T) {
	doc := Guidelines(sampleInput())
	rendered := MarkdownGuidelines(doc, schema.StandardDepth)

	assert.Empty(t, Diff(ParseGuidelines([]byte(rendered)), doc))
}

func TestParseGuidelinesEmptyInput(t *testing.T) {
	parsed := ParseGuidelines(nil)
	assert.Empty(t, parsed.Sections)
	assert.Empty(t, parsed.Area)
}

package core

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guidepost-dev/guidepost/schema"
)

func record(source schema.RecordSource, text string) schema.RawRecord {
	return schema.RawRecord{Source: source, Text: text, Timestamp: time.Now()}
}

func TestClassify(t *testing.T) {
	themes := []schema.Theme{
		{Name: "naming", Keywords: []string{"naming", "rename"}},
		{Name: "testing", Keywords: []string{"test", "coverage"}},
	}

	records := []schema.RawRecord{
		record(schema.CommitSource, "Add unit tests for the parser"),
		record(schema.ReviewCommentSource, "Please rename this helper, and add a test"),
		record(schema.CommitSource, "Fix typo in README"),
	}

	matches := Classify(records, themes, 10)
	require.Len(t, matches, 2)

	assert.Equal(t, "naming", matches[0].ThemeName)
	assert.Equal(t, 1, matches[0].Count)
	assert.Equal(t, []string{"Please rename this helper, and add a test"}, matches[0].ExampleTexts)

	// The second record matches both themes
	assert.Equal(t, "testing", matches[1].ThemeName)
	assert.Equal(t, 2, matches[1].Count)
}

func TestClassifyIsCaseInsensitive(t *testing.T) {
	themes := []schema.Theme{{Name: "security", Keywords: []string{"SQL Injection"}}}
	records := []schema.RawRecord{record(schema.ReviewCommentSource, "watch out for sql injection here")}

	matches := Classify(records, themes, 5)
	require.Len(t, matches, 1)
	assert.Equal(t, 1, matches[0].Count)
}

func TestClassifyKeepsZeroCountThemes(t *testing.T) {
	themes := schema.DefaultThemes()
	matches := Classify(nil, themes, 5)

	require.Len(t, matches, len(themes))
	for i, match := range matches {
		assert.Equal(t, themes[i].Name, match.ThemeName)
		assert.Zero(t, match.Count)
		assert.Empty(t, match.ExampleTexts)
	}
}

func TestClassifyCapsExamples(t *testing.T) {
	themes := []schema.Theme{{Name: "testing", Keywords: []string{"test"}}}

	var records []schema.RawRecord
	for i := 0; i < 6; i++ {
		records = append(records, record(schema.CommitSource, fmt.Sprintf("test change %d", i)))
	}

	matches := Classify(records, themes, 3)
	require.Len(t, matches, 1)
	assert.Equal(t, 6, matches[0].Count)
	require.Len(t, matches[0].ExampleTexts, 3)
	// First matches in input order
	assert.Equal(t, "test change 0", matches[0].ExampleTexts[0])
	assert.Equal(t, "test change 2", matches[0].ExampleTexts[2])
}

func TestClassifyFlattensExampleText(t *testing.T) {
	themes := []schema.Theme{{Name: "testing", Keywords: []string{"test"}}}
	records := []schema.RawRecord{record(schema.CommitSource, "Add tests\n\nCovers the edge\tcases too")}

	matches := Classify(records, themes, 5)
	require.Len(t, matches[0].ExampleTexts, 1)
	assert.Equal(t, "Add tests Covers the edge cases too", matches[0].ExampleTexts[0])
}

func TestRefactorActivity(t *testing.T) {
	keywords := schema.DefaultRefactorKeywords()
	records := []schema.RawRecord{
		record(schema.CommitSource, "Refactor session handling\n\nSplit the store out of the handler"),
		record(schema.CommitSource, "Add login page"),
		record(schema.CommitSource, "Migrate to the new router"),
		// Review comments never count as evolution
		record(schema.ReviewCommentSource, "Could you refactor this loop?"),
		// Keyword only in the body, not the subject
		record(schema.CommitSource, "Fix flaky spec\n\nAlso improve the retry logic"),
	}

	activity := RefactorActivity(records, keywords)
	assert.Equal(t, 2, activity.Count)
	assert.Equal(t, []string{"Refactor session handling", "Migrate to the new router"}, activity.Examples)
}

func TestRefactorActivityCapsExamples(t *testing.T) {
	var records []schema.RawRecord
	for i := 0; i < 8; i++ {
		records = append(records, record(schema.CommitSource, fmt.Sprintf("Refactor module %d", i)))
	}

	activity := RefactorActivity(records, []string{"refactor"})
	assert.Equal(t, 8, activity.Count)
	assert.Len(t, activity.Examples, schema.MaxActivityExamples)
}

func TestRefactorActivityEmpty(t *testing.T) {
	activity := RefactorActivity(nil, schema.DefaultRefactorKeywords())
	assert.Zero(t, activity.Count)
	assert.Empty(t, activity.Examples)
}

package outwriter

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guidepost-dev/guidepost/schema"
)

func TestWriteThemeTable(t *testing.T) {
	var buf bytes.Buffer

	err := writeThemeTable(schema.DefaultThemes(), &buf)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "testing")
	assert.Contains(t, out, "vitest, cypress")
	assert.Contains(t, out, "13 themes with")
}

func TestPrintThemeDictionaryJSON(t *testing.T) {
	outFile := filepath.Join(t.TempDir(), "themes.json")
	cfg := summaryConfig()
	cfg.Output = schema.JSONOut
	cfg.OutputFile = outFile

	err := PrintThemeDictionary(schema.DefaultThemes(), cfg)
	require.NoError(t, err)

	data, err := os.ReadFile(outFile)
	require.NoError(t, err)

	var decoded []schema.Theme
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Len(t, decoded, 13)
	assert.Equal(t, "accessibility", decoded[0].Name)
}

func TestPrintThemeDictionaryCSV(t *testing.T) {
	outFile := filepath.Join(t.TempDir(), "themes.csv")
	cfg := summaryConfig()
	cfg.Output = schema.CSVOut
	cfg.OutputFile = outFile

	themes := []schema.Theme{{Name: "testing", Keywords: []string{"test", "coverage"}}}
	err := PrintThemeDictionary(themes, cfg)
	require.NoError(t, err)

	data, err := os.ReadFile(outFile)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "theme,keywords", lines[0])
	assert.Equal(t, "testing,test|coverage", lines[1])
}

package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeAreaName(t *testing.T) {
	tests := []struct {
		area string
		want string
	}{
		{"frontend/components", "frontend_components"},
		{"frontend\\components", "frontend_components"},
		{"src/api/v2/handlers", "src_api_v2_handlers"},
		{"docs", "docs"},
		{"docs/", "docs"},
		{"/docs", "docs"},
	}

	for _, tt := range tests {
		t.Run(tt.area, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeAreaName(tt.area))
		})
	}
}

func TestFlattenText(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"single line", "fix prop types", "fix prop types"},
		{"multi line", "refactor to hooks\n\nDrops the legacy class components.", "refactor to hooks Drops the legacy class components."},
		{"tabs and spaces", "a\t b  c", "a b c"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FlattenText(tt.text))
		})
	}
}

func TestTruncateText(t *testing.T) {
	tests := []struct {
		name string
		text string
		max  int
		want string
	}{
		{"shorter than max", "short", 10, "short"},
		{"exactly max", "12345", 5, "12345"},
		{"truncated", "abcdefghij", 8, "abcde..."},
		{"max too small", "abcdefghij", 3, "abcdefghij"},
		{"unicode", "αβγδεζηθικ", 8, "αβγδε..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TruncateText(tt.text, tt.max))
		})
	}
}

func TestRankThemeMatches(t *testing.T) {
	matches := []ThemeMatch{
		{ThemeName: "naming", Count: 2},
		{ThemeName: "testing", Count: 7},
		{ThemeName: "performance", Count: 2},
		{ThemeName: "type safety", Count: 7},
	}

	RankThemeMatches(matches)

	// Descending count, then theme name for equal counts.
	want := []string{"testing", "type safety", "naming", "performance"}
	for i, m := range matches {
		assert.Equal(t, want[i], m.ThemeName)
	}
}

func TestSortFileStats(t *testing.T) {
	stats := []FileStat{
		{Extension: ".tsx", Count: 4},
		{Extension: ".css", Count: 9},
		{Extension: ".ts", Count: 4},
	}

	SortFileStats(stats)

	assert.Equal(t, ".css", stats[0].Extension)
	assert.Equal(t, ".ts", stats[1].Extension)
	assert.Equal(t, ".tsx", stats[2].Extension)
}

func TestMajorityConvention(t *testing.T) {
	tests := []struct {
		name     string
		stats    []NamingConventionStat
		wantConv Convention
		wantOK   bool
	}{
		{
			name: "clear majority",
			stats: []NamingConventionStat{
				{Convention: PascalCase, Count: 8},
				{Convention: KebabCase, Count: 2},
			},
			wantConv: PascalCase,
			wantOK:   true,
		},
		{
			name: "exactly sixty percent is not a majority",
			stats: []NamingConventionStat{
				{Convention: SnakeCase, Count: 6},
				{Convention: CamelCase, Count: 4},
			},
			wantOK: false,
		},
		{
			name:   "no files",
			stats:  nil,
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conv, frac, ok := MajorityConvention(tt.stats, 0.6)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantConv, conv)
				assert.Greater(t, frac, 0.6)
			}
		})
	}
}

func TestDefaultDepthProfiles(t *testing.T) {
	profiles := DefaultDepthProfiles()

	assert.Len(t, profiles, 3)
	assert.Equal(t, 30, profiles[QuickDepth].LookbackDays)
	assert.Equal(t, 50, profiles[StandardDepth].MaxReviewItems)
	assert.Equal(t, 3, profiles[DeepDepth].MinPatternFrequency)
}

func TestDefaultThemesAreWellFormed(t *testing.T) {
	seen := map[string]struct{}{}
	for _, theme := range DefaultThemes() {
		assert.NotEmpty(t, theme.Name)
		assert.NotEmpty(t, theme.Keywords, "theme %q has no keywords", theme.Name)
		_, dup := seen[theme.Name]
		assert.False(t, dup, "duplicate theme %q", theme.Name)
		seen[theme.Name] = struct{}{}
	}

	for _, tech := range DefaultTechnologies() {
		_, ok := seen[tech]
		assert.True(t, ok, "technology %q has no theme entry", tech)
	}
}

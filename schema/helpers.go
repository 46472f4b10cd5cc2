package schema

import (
	"sort"
	"strings"
)

// SanitizeAreaName flattens an area path into a single filename component.
// Both separator styles collapse to underscores so "frontend/components"
// and "frontend\components" key the same guidelines file.
func SanitizeAreaName(area string) string {
	s := strings.ReplaceAll(area, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	return strings.Trim(s, "_")
}

// FlattenText collapses all runs of whitespace, including newlines from
// multi-line commit bodies, into single spaces.
func FlattenText(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// TruncateText shortens text to at most max runes, appending "..." when it
// had to cut. Values of max below 4 return the text unchanged.
func TruncateText(text string, max int) string {
	runes := []rune(text)
	if len(runes) <= max || max < 4 {
		return text
	}
	return string(runes[:max-3]) + "..."
}

// RankThemeMatches orders matches by descending count, ties broken by theme
// name, so rendered rankings are reproducible across runs.
func RankThemeMatches(matches []ThemeMatch) {
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Count != matches[j].Count {
			return matches[i].Count > matches[j].Count
		}
		return matches[i].ThemeName < matches[j].ThemeName
	})
}

// SortFileStats orders stats by descending count, ties broken by extension.
func SortFileStats(stats []FileStat) {
	sort.SliceStable(stats, func(i, j int) bool {
		if stats[i].Count != stats[j].Count {
			return stats[i].Count > stats[j].Count
		}
		return stats[i].Extension < stats[j].Extension
	})
}

// SortNamingStats orders stats by descending count, ties broken by
// convention name.
func SortNamingStats(stats []NamingConventionStat) {
	sort.SliceStable(stats, func(i, j int) bool {
		if stats[i].Count != stats[j].Count {
			return stats[i].Count > stats[j].Count
		}
		return stats[i].Convention < stats[j].Convention
	})
}

// MajorityConvention returns the convention covering more than the given
// share of classified files, when one exists. Share is a fraction, e.g. 0.6.
func MajorityConvention(stats []NamingConventionStat, share float64) (Convention, float64, bool) {
	total := 0
	for _, s := range stats {
		total += s.Count
	}
	if total == 0 {
		return "", 0, false
	}
	for _, s := range stats {
		frac := float64(s.Count) / float64(total)
		if frac > share {
			return s.Convention, frac, true
		}
	}
	return "", 0, false
}

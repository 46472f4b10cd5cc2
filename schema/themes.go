package schema

// Theme is one named keyword group of the dictionary. A record matches the
// theme when any keyword occurs in its text, case-insensitively.
type Theme struct {
	Name     string   `json:"name" yaml:"name"`
	Keywords []string `json:"keywords" yaml:"keywords"`
}

// DepthProfile holds the tunables one depth preset maps to.
type DepthProfile struct {
	LookbackDays        int `mapstructure:"lookback-days" json:"lookback_days"`
	MaxReviewItems      int `mapstructure:"max-review-items" json:"max_review_items"`
	MinPatternFrequency int `mapstructure:"min-pattern-frequency" json:"min_pattern_frequency"`
}

// DefaultDepthProfiles returns the built-in depth presets.
func DefaultDepthProfiles() map[Depth]DepthProfile {
	return map[Depth]DepthProfile{
		QuickDepth:    {LookbackDays: 30, MaxReviewItems: 20, MinPatternFrequency: 3},
		StandardDepth: {LookbackDays: 90, MaxReviewItems: 50, MinPatternFrequency: 5},
		DeepDepth:     {LookbackDays: 180, MaxReviewItems: 100, MinPatternFrequency: 3},
	}
}

// DefaultThemes returns the built-in theme dictionary, sorted by name so
// every listing of the full dictionary is stable.
func DefaultThemes() []Theme {
	return []Theme{
		{Name: "accessibility", Keywords: []string{"accessibility", "a11y", "aria", "screen reader"}},
		{Name: "async", Keywords: []string{"async", "await", "promise"}},
		{Name: "code organization", Keywords: []string{"structure", "organize", "directory", "folder", "separate", "split"}},
		{Name: "documentation", Keywords: []string{"document", "comment", "readme", "docs", "jsdoc"}},
		{Name: "error handling", Keywords: []string{"error", "exception", "catch", "try", "throw"}},
		{Name: "naming", Keywords: []string{"naming", "rename", "name is", "called", "variable name"}},
		{Name: "performance", Keywords: []string{"performance", "optimize", "slow", "cache", "memo", "lazy"}},
		{Name: "react", Keywords: []string{"react", "jsx", "hook", "component"}},
		{Name: "security", Keywords: []string{"security", "vulnerability", "sanitize", "escape", "injection"}},
		{Name: "testing", Keywords: []string{"test", "coverage", "jest", "spec", "vitest", "cypress", "unit test", "integration test"}},
		{Name: "type safety", Keywords: []string{"type", "typescript", "interface", "any", "unknown"}},
		{Name: "typescript", Keywords: []string{"typescript", "ts", ".tsx"}},
		{Name: "vue", Keywords: []string{"vue", "composition", "vue3"}},
	}
}

// DefaultTechnologies names the themes rendered under Technology Focus
// instead of Code Review Focus Areas.
func DefaultTechnologies() []string {
	return []string{"async", "react", "typescript", "vue"}
}

// DefaultRefactorKeywords returns the commit keywords that feed the Recent
// Evolution section.
func DefaultRefactorKeywords() []string {
	return []string{"refactor", "improve", "update", "migrate", "modernize"}
}

// DefaultIgnoreDirs returns directory names skipped entirely during the file
// scan. Hidden directories are always skipped regardless of this list.
func DefaultIgnoreDirs() []string {
	return []string{"node_modules", "vendor", "dist", "build", "coverage", "target", "__pycache__"}
}

// DefaultCodeExtensions returns the extensions whose filenames count toward
// naming-convention statistics.
func DefaultCodeExtensions() []string {
	return []string{".ts", ".tsx", ".js", ".jsx", ".py", ".java", ".go", ".rs"}
}

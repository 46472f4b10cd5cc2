package contract

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/guidepost-dev/guidepost/schema"
)

// Default values for configuration.
const (
	DefaultMaxThemeExamples = 5
	MaxThemeExamplesLimit   = 20
	DefaultOutRoot          = ".guidepost"
)

// DateTimeFormat is the default date time representation.
var DateTimeFormat = "2006-01-02 15:04:05"

// TimestampSuffixFormat is the layout used for backup and report filenames.
const TimestampSuffixFormat = "20060102_150405"

// ConfigError describes a fatal configuration problem, naming the offending
// field so the user can fix it without guessing.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid configuration: %s: %s", e.Field, e.Reason)
}

// NewConfigError creates a ConfigError for the given field.
func NewConfigError(field, format string, args ...any) *ConfigError {
	return &ConfigError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// Config holds the runtime configuration for a refresh.
// This struct remains the "final, validated" config.
type Config struct {
	RepoPath string // Absolute path to the repository root
	Area     string // Relative path of the analyzed subdirectory

	Depth               schema.Depth
	LookbackDays        int
	MaxReviewItems      int
	MinPatternFrequency int
	MaxThemeExamples    int

	Themes           []schema.Theme
	Technologies     []string
	RefactorKeywords []string
	IgnoreDirs       []string
	CodeExtensions   []string
	ExtraSections    []schema.Section // Appended to the guidelines from the area override

	OutRoot    string // Directory holding guidelines/ and reports/
	Output     schema.OutputMode
	OutputFile string
	Width      int // Terminal width override (0 = auto-detect)
	UseColors  bool

	HistoryBackend   schema.DatabaseBackend
	HistoryDBConnect string // Please use env var as this is plaintext
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	RepoPathStr string

	// --- Fields from rootCmd.PersistentFlags() ---
	Area             string `mapstructure:"area"`
	Depth            string `mapstructure:"depth"`
	Output           string `mapstructure:"output"`
	OutputFile       string `mapstructure:"output-file"`
	Width            int    `mapstructure:"width"`
	Color            string `mapstructure:"color"`
	OutRoot          string `mapstructure:"out-root"`
	AreaConfig       string `mapstructure:"area-config"`
	MaxExamples      int    `mapstructure:"max-examples"`
	HistoryBackend   string `mapstructure:"history-backend"`
	HistoryDBConnect string `mapstructure:"history-db-connect"`

	// --- Fields from the config file only ---
	Profiles         map[string]schema.DepthProfile `mapstructure:"profiles"`
	Themes           []schema.Theme                 `mapstructure:"themes"`
	Technologies     []string                       `mapstructure:"technologies"`
	RefactorKeywords []string                       `mapstructure:"refactor-keywords"`
	IgnoreDirs       []string                       `mapstructure:"ignore-dirs"`     // Replaces the default list when set
	CodeExtensions   []string                       `mapstructure:"code-extensions"` // Replaces the default list when set
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	clone.Themes = make([]schema.Theme, len(c.Themes))
	for i, theme := range c.Themes {
		clone.Themes[i] = schema.Theme{
			Name:     theme.Name,
			Keywords: append([]string(nil), theme.Keywords...),
		}
	}
	clone.Technologies = append([]string(nil), c.Technologies...)
	clone.RefactorKeywords = append([]string(nil), c.RefactorKeywords...)
	clone.IgnoreDirs = append([]string(nil), c.IgnoreDirs...)
	clone.CodeExtensions = append([]string(nil), c.CodeExtensions...)
	clone.ExtraSections = append([]schema.Section(nil), c.ExtraSections...)
	return &clone
}

// Window builds the immutable analysis window handed to the pipeline.
func (c *Config) Window() schema.AnalysisWindow {
	return schema.AnalysisWindow{
		Area:                c.Area,
		Depth:               c.Depth,
		MaxReviewItems:      c.MaxReviewItems,
		LookbackDays:        c.LookbackDays,
		MinPatternFrequency: c.MinPatternFrequency,
	}
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(ctx context.Context, cfg *Config, client HistoryClient, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processDepthProfile(cfg, input); err != nil {
		return err
	}
	if err := processThemeDictionary(cfg, input); err != nil {
		return err
	}
	if err := resolveRepoPath(ctx, cfg, client, input); err != nil {
		return err
	}
	if err := processAreaOverride(cfg, input); err != nil {
		return err
	}
	return nil
}

// ValidateDatabaseConnectionString validates the format of database
// connection strings for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return NewConfigError("history-db-connect", "required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return NewConfigError("history-db-connect", "MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return NewConfigError("history-db-connect", "MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return NewConfigError("history-db-connect", "required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") && !strings.HasPrefix(connStr, "postgres://") {
			return NewConfigError("history-db-connect", "PostgreSQL connection string must contain 'host=' or use a postgres:// URL")
		}
	}
	return nil
}

// validateSimpleInputs processes and validates all non-path related fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width

	// --- 1. Area Validation ---
	area, err := NormalizeArea(input.Area)
	if err != nil {
		return err
	}
	cfg.Area = area

	// --- 2. Depth Validation ---
	cfg.Depth = schema.Depth(strings.ToLower(input.Depth))
	if _, ok := schema.ValidDepths[cfg.Depth]; !ok {
		return NewConfigError("depth", "invalid depth %q. must be quick, standard, deep", input.Depth)
	}

	// --- 3. Output Validation ---
	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return NewConfigError("output", "invalid output format %q. must be text, csv, json", input.Output)
	}

	// --- 4. Example Cap Validation ---
	if input.MaxExamples <= 0 || input.MaxExamples > MaxThemeExamplesLimit {
		return NewConfigError("max-examples", "must be between 1 and %d (received %d)", MaxThemeExamplesLimit, input.MaxExamples)
	}
	cfg.MaxThemeExamples = input.MaxExamples

	// --- 5. Color Flag ---
	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return NewConfigError("color", "%v", err)
	}
	cfg.UseColors = colors

	// --- 6. History Backend Validation ---
	cfg.HistoryBackend = schema.DatabaseBackend(strings.ToLower(input.HistoryBackend))
	if _, ok := schema.ValidHistoryBackends[cfg.HistoryBackend]; !ok {
		return NewConfigError("history-backend", "invalid backend %q. must be sqlite, mysql, postgresql, none", input.HistoryBackend)
	}
	cfg.HistoryDBConnect = input.HistoryDBConnect
	if err := ValidateDatabaseConnectionString(cfg.HistoryBackend, cfg.HistoryDBConnect); err != nil {
		return err
	}

	// --- 7. Scan Settings ---
	// A configured list replaces the defaults entirely, same as
	// code-extensions below. Hidden directories are skipped regardless.
	cfg.IgnoreDirs = schema.DefaultIgnoreDirs()
	if len(input.IgnoreDirs) > 0 {
		cfg.IgnoreDirs = input.IgnoreDirs
	}
	cfg.CodeExtensions = schema.DefaultCodeExtensions()
	if len(input.CodeExtensions) > 0 {
		for _, ext := range input.CodeExtensions {
			if !strings.HasPrefix(ext, ".") {
				return NewConfigError("code-extensions", "extension %q must start with a dot", ext)
			}
		}
		cfg.CodeExtensions = input.CodeExtensions
	}

	return nil
}

// NormalizeArea validates and normalizes an area path: non-empty, relative,
// never escaping the repository root, with forward slashes.
func NormalizeArea(area string) (string, error) {
	area = strings.TrimSpace(area)
	if area == "" {
		return "", NewConfigError("area", "required and must be a non-empty relative path")
	}
	if filepath.IsAbs(area) {
		return "", NewConfigError("area", "must be relative to the repository root, got absolute path %q", area)
	}
	clean := filepath.ToSlash(filepath.Clean(area))
	if clean == ".." || strings.HasPrefix(clean, "../") {
		return "", NewConfigError("area", "must not escape the repository root: %q", area)
	}
	return strings.TrimSuffix(clean, "/"), nil
}

// RevalidateRefresh applies MCP tool arguments to a cloned config: the area
// replaces the configured one, and a depth change reapplies the matching
// built-in profile tunables.
func RevalidateRefresh(cfg *Config, areaStr, depthStr string) error {
	area, err := NormalizeArea(areaStr)
	if err != nil {
		return err
	}
	cfg.Area = area

	if depthStr == "" {
		return nil
	}
	depth := schema.Depth(strings.ToLower(depthStr))
	if _, ok := schema.ValidDepths[depth]; !ok {
		return NewConfigError("depth", "invalid depth %q. must be quick, standard, deep", depthStr)
	}
	cfg.Depth = depth
	profile := schema.DefaultDepthProfiles()[depth]
	cfg.LookbackDays = profile.LookbackDays
	cfg.MaxReviewItems = profile.MaxReviewItems
	cfg.MinPatternFrequency = profile.MinPatternFrequency
	return nil
}

// processDepthProfile resolves the selected depth into concrete window
// tunables, applying any per-profile overrides from the config file.
func processDepthProfile(cfg *Config, input *ConfigRawInput) error {
	profiles := schema.DefaultDepthProfiles()

	for name, override := range input.Profiles {
		depth := schema.Depth(strings.ToLower(name))
		if _, ok := schema.ValidDepths[depth]; !ok {
			return NewConfigError("profiles", "unknown depth profile %q. must be quick, standard, deep", name)
		}
		base := profiles[depth]
		if override.LookbackDays != 0 {
			base.LookbackDays = override.LookbackDays
		}
		if override.MaxReviewItems != 0 {
			base.MaxReviewItems = override.MaxReviewItems
		}
		if override.MinPatternFrequency != 0 {
			base.MinPatternFrequency = override.MinPatternFrequency
		}
		profiles[depth] = base
	}

	profile := profiles[cfg.Depth]
	if profile.LookbackDays <= 0 {
		return NewConfigError("profiles", "lookback-days for %s must be positive (received %d)", cfg.Depth, profile.LookbackDays)
	}
	if profile.MaxReviewItems <= 0 {
		return NewConfigError("profiles", "max-review-items for %s must be positive (received %d)", cfg.Depth, profile.MaxReviewItems)
	}
	if profile.MinPatternFrequency <= 0 {
		return NewConfigError("profiles", "min-pattern-frequency for %s must be positive (received %d)", cfg.Depth, profile.MinPatternFrequency)
	}

	cfg.LookbackDays = profile.LookbackDays
	cfg.MaxReviewItems = profile.MaxReviewItems
	cfg.MinPatternFrequency = profile.MinPatternFrequency
	return nil
}

// processThemeDictionary validates the theme dictionary and related keyword
// lists, falling back to the built-in defaults when the config file is silent.
func processThemeDictionary(cfg *Config, input *ConfigRawInput) error {
	themes := schema.DefaultThemes()
	if len(input.Themes) > 0 {
		themes = input.Themes
	}
	if err := ValidateThemes(themes, "themes"); err != nil {
		return err
	}
	cfg.Themes = themes

	cfg.Technologies = schema.DefaultTechnologies()
	if len(input.Technologies) > 0 {
		cfg.Technologies = input.Technologies
	}
	known := make(map[string]struct{}, len(cfg.Themes))
	for _, theme := range cfg.Themes {
		known[theme.Name] = struct{}{}
	}
	for _, tech := range cfg.Technologies {
		if _, ok := known[tech]; !ok {
			return NewConfigError("technologies", "technology %q has no matching theme entry", tech)
		}
	}

	cfg.RefactorKeywords = schema.DefaultRefactorKeywords()
	if len(input.RefactorKeywords) > 0 {
		cfg.RefactorKeywords = input.RefactorKeywords
	}

	return nil
}

// ValidateThemes rejects malformed dictionary entries: empty names, empty
// keyword lists, blank keywords, and duplicate theme names.
func ValidateThemes(themes []schema.Theme, field string) error {
	seen := make(map[string]struct{}, len(themes))
	for _, theme := range themes {
		name := strings.TrimSpace(theme.Name)
		if name == "" {
			return NewConfigError(field, "theme with empty name")
		}
		if _, dup := seen[name]; dup {
			return NewConfigError(field, "duplicate theme %q", name)
		}
		seen[name] = struct{}{}
		if len(theme.Keywords) == 0 {
			return NewConfigError(field, "theme %q has no keywords", name)
		}
		for _, kw := range theme.Keywords {
			if strings.TrimSpace(kw) == "" {
				return NewConfigError(field, "theme %q has an empty keyword", name)
			}
		}
	}
	return nil
}

// resolveRepoPath resolves the repository root from the positional path and
// anchors the output root inside it.
func resolveRepoPath(ctx context.Context, cfg *Config, client HistoryClient, input *ConfigRawInput) error {
	searchPath := input.RepoPathStr
	absSearchPath, err := filepath.Abs(searchPath)
	if err != nil {
		return err
	}
	absSearchPath = filepath.Clean(absSearchPath)

	info, statErr := os.Stat(absSearchPath)
	gitContextPath := absSearchPath
	if statErr == nil && !info.IsDir() {
		gitContextPath = filepath.Dir(absSearchPath)
	}

	repoRoot, err := client.GetRepoRoot(ctx, gitContextPath)
	if err != nil {
		return err
	}
	cfg.RepoPath = repoRoot

	outRoot := input.OutRoot
	if outRoot == "" {
		outRoot = DefaultOutRoot
	}
	if !filepath.IsAbs(outRoot) {
		outRoot = filepath.Join(repoRoot, outRoot)
	}
	cfg.OutRoot = filepath.Clean(outRoot)

	return nil
}

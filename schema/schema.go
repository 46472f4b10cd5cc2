// Package schema has the shared models, enums and defaults for all parts of guidepost.
package schema

import "time"

// AnalysisWindow describes the scope of a single refresh run. It is built
// once from the selected depth profile and never mutated afterward.
type AnalysisWindow struct {
	Area                string `json:"area"`                  // Relative path of the analyzed subdirectory
	Depth               Depth  `json:"depth"`                 // Depth profile the window was built from
	MaxReviewItems      int    `json:"max_review_items"`      // Maximum merged changes fetched from the review tool
	LookbackDays        int    `json:"lookback_days"`         // Commit history window in days
	MinPatternFrequency int    `json:"min_pattern_frequency"` // Minimum matches for a theme to rank in the guidelines
}

// RawRecord is one unit of collected evidence: a commit message or a single
// review comment. Records are classified and then discarded.
type RawRecord struct {
	Source    RecordSource // Where the record came from
	Text      string       // Subject plus body for commits, comment body for reviews
	Timestamp time.Time    // Author date or review submission time
	Author    string       // Optional author handle
}

// ThemeMatch aggregates how often one theme matched across all records.
// ExampleTexts holds the first matches in input order, bounded by the
// configured example cap, so reruns over the same input reproduce the
// same samples.
type ThemeMatch struct {
	ThemeName    string   `json:"theme"`
	Count        int      `json:"count"`
	ExampleTexts []string `json:"examples,omitempty"`
}

// FileStat counts files sharing one extension. Extension keeps its leading
// dot and is case-sensitive; extensionless files bucket under "(none)".
type FileStat struct {
	Extension string `json:"extension"`
	Count     int    `json:"count"`
}

// NamingConventionStat counts files classified under one naming convention.
type NamingConventionStat struct {
	Convention Convention `json:"convention"`
	Count      int        `json:"count"`
}

// RefactorActivity summarizes commits whose messages carry refactor keywords.
type RefactorActivity struct {
	Count    int      `json:"count"`
	Examples []string `json:"examples,omitempty"`
}

// Section is one heading/body pair of a guidelines document.
type Section struct {
	Heading string `json:"heading"`
	Body    string `json:"body"`
}

// GuidelinesDocument is the rendered guidelines for one area. GeneratedAt
// appears only in the document header, never inside a section body, so an
// unchanged analysis produces unchanged sections.
type GuidelinesDocument struct {
	Area        string    `json:"area"`
	GeneratedAt time.Time `json:"generated_at"`
	Sections    []Section `json:"sections"`
}

// Metric is one named counter of the analysis report. Reports keep metrics
// as an ordered slice so rendering stays deterministic.
type Metric struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// AnalysisReport is the write-once companion document explaining what
// produced the guidelines.
type AnalysisReport struct {
	Area                string    `json:"area"`
	Depth               Depth     `json:"depth"`
	GeneratedAt         time.Time `json:"generated_at"`
	Metrics             []Metric  `json:"metrics"`
	Findings            []string  `json:"findings"`
	ChangesFromPrevious []string  `json:"changes_from_previous"`
}

// RefreshResult carries everything a writer or MCP handler needs after a
// refresh run completes.
type RefreshResult struct {
	Window         AnalysisWindow         `json:"window"`
	Matches        []ThemeMatch           `json:"matches"`
	FileStats      []FileStat             `json:"file_stats"`
	NamingStats    []NamingConventionStat `json:"naming_stats"`
	Activity       RefactorActivity       `json:"refactor_activity"`
	CommitCount    int                    `json:"commit_count"`
	ReviewCount    int                    `json:"review_count"`
	FileCount      int                    `json:"file_count"`
	Findings       []string               `json:"findings"`
	Changes        []string               `json:"changes_from_previous"`
	GuidelinesPath string                 `json:"guidelines_path"`
	ReportPath     string                 `json:"report_path"`
	RunID          int64                  `json:"run_id,omitempty"`
}

// RefreshRunRecord is one row of the run-history store.
type RefreshRunRecord struct {
	RunID         int64
	Area          string
	Depth         string
	StartTime     time.Time
	EndTime       *time.Time
	RunDurationMs *int32
	CommitCount   int32
	ReviewCount   int32
	FileCount     int32
	ConfigParams  *string
}

// ThemeMetricRecord is one per-theme row of the run-history store, keyed by
// (RunID, Theme).
type ThemeMetricRecord struct {
	RunID        int64
	Theme        string
	MatchCount   int32
	ExampleCount int32
	RunTime      time.Time
}

// HistoryStatus reports the state of the run-history store.
type HistoryStatus struct {
	Backend       string           `json:"backend"`
	Connected     bool             `json:"connected"`
	TotalRuns     int              `json:"total_runs"`
	LastRunID     int64            `json:"last_run_id"`
	LastRunTime   time.Time        `json:"last_run_time"`
	OldestRunTime time.Time        `json:"oldest_run_time"`
	TotalCommits  int              `json:"total_commits"`
	TableSizes    map[string]int64 `json:"table_sizes"`
}

// Package contract provides interfaces and shared utilities for guidepost's internal architecture.
package contract

import (
	"context"
	"time"

	"github.com/guidepost-dev/guidepost/schema"
)

// HistoryClient defines the version-control operations needed to collect
// commit evidence. This allows the collection logic to be tested without
// needing a real git executable.
type HistoryClient interface {
	// Run executes a git command and returns its output.
	// Its use should be minimized in favor of the explicit methods below.
	Run(ctx context.Context, repoPath string, args ...string) ([]byte, error)

	// GetRepoRoot returns the absolute path to the root of the repository
	// containing the given context path.
	GetRepoRoot(ctx context.Context, contextPath string) (string, error)

	// GetCommitLog returns the raw commit log output for an area since the
	// given time, one delimited entry per commit.
	GetCommitLog(ctx context.Context, repoPath, area string, since time.Time) ([]byte, error)
}

// ReviewClient defines the review-platform operations needed to collect
// review-comment evidence. Implementations report tool absence so the
// pipeline can degrade to commit-only analysis.
type ReviewClient interface {
	// Available reports whether the review tool can be invoked at all.
	Available() bool

	// ListMergedReviews returns the raw JSON listing of recently merged
	// changes including their review threads and changed files.
	ListMergedReviews(ctx context.Context, repoPath string, limit int) ([]byte, error)
}

// RunStore defines the interface for tracking refresh runs and their
// per-theme metrics. This allows the history layer to be mocked for testing.
type RunStore interface {
	// BeginRun creates a new refresh run and returns its unique ID.
	BeginRun(startTime time.Time, area string, depth schema.Depth, configParams map[string]any) (int64, error)

	// EndRun updates the refresh run with completion data.
	EndRun(runID int64, endTime time.Time, commitCount, reviewCount, fileCount int) error

	// RecordThemeMetrics stores the per-theme match counts for a run.
	RecordThemeMetrics(runID int64, runTime time.Time, matches []schema.ThemeMatch) error

	// GetStatus returns status information about the run store.
	GetStatus() (schema.HistoryStatus, error)

	// GetAllRuns retrieves every recorded refresh run.
	GetAllRuns() ([]schema.RefreshRunRecord, error)

	// GetAllThemeMetrics retrieves every recorded theme metric row.
	GetAllThemeMetrics() ([]schema.ThemeMetricRecord, error)

	// Close closes the underlying connection.
	Close() error
}

// StoreManager defines the interface for accessing the run-history store.
// This allows the persistence layer to be mocked for testing.
type StoreManager interface {
	GetRunStore() RunStore
}

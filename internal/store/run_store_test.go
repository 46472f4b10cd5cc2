package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guidepost-dev/guidepost/schema"
)

func newMemoryRunStore(t *testing.T) *RunStoreImpl {
	t.Helper()
	rs, err := NewRunStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = rs.Close() })
	return rs.(*RunStoreImpl)
}

func TestNewRunStoreNoneBackend(t *testing.T) {
	rs, err := NewRunStore(schema.NoneBackend, "")
	require.NoError(t, err)
	defer func() { _ = rs.Close() }()

	runID, err := rs.BeginRun(time.Now(), "frontend", schema.StandardDepth, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(0), runID)

	require.NoError(t, rs.EndRun(runID, time.Now(), 1, 2, 3))
	require.NoError(t, rs.RecordThemeMetrics(runID, time.Now(), []schema.ThemeMatch{{ThemeName: "testing", Count: 1}}))

	runs, err := rs.GetAllRuns()
	require.NoError(t, err)
	assert.Empty(t, runs)

	status, err := rs.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, "none", status.Backend)
	assert.False(t, status.Connected)
}

func TestNewRunStoreUnsupportedBackend(t *testing.T) {
	_, err := NewRunStore(schema.DatabaseBackend("oracle"), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported backend")
}

func TestRunStoreRoundTrip(t *testing.T) {
	rs := newMemoryRunStore(t)

	start := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	end := start.Add(1500 * time.Millisecond)

	runID, err := rs.BeginRun(start, "frontend/components", schema.DeepDepth, map[string]any{"lookback_days": 90})
	require.NoError(t, err)
	assert.Equal(t, int64(1), runID)

	require.NoError(t, rs.EndRun(runID, end, 12, 5, 40))

	runs, err := rs.GetAllRuns()
	require.NoError(t, err)
	require.Len(t, runs, 1)

	run := runs[0]
	assert.Equal(t, int64(1), run.RunID)
	assert.Equal(t, "frontend/components", run.Area)
	assert.Equal(t, "deep", run.Depth)
	assert.True(t, run.StartTime.Equal(start))
	require.NotNil(t, run.EndTime)
	assert.True(t, run.EndTime.Equal(end))
	require.NotNil(t, run.RunDurationMs)
	assert.Equal(t, int32(1500), *run.RunDurationMs)
	assert.Equal(t, int32(12), run.CommitCount)
	assert.Equal(t, int32(5), run.ReviewCount)
	assert.Equal(t, int32(40), run.FileCount)
	require.NotNil(t, run.ConfigParams)
	assert.Contains(t, *run.ConfigParams, "lookback_days")
}

func TestRunStoreIncompleteRun(t *testing.T) {
	rs := newMemoryRunStore(t)

	_, err := rs.BeginRun(time.Now(), "docs", schema.QuickDepth, nil)
	require.NoError(t, err)

	runs, err := rs.GetAllRuns()
	require.NoError(t, err)
	require.Len(t, runs, 1)

	// Without EndRun the completion columns stay unset
	assert.Nil(t, runs[0].EndTime)
	assert.Nil(t, runs[0].RunDurationMs)
	assert.Equal(t, int32(0), runs[0].CommitCount)
}

func TestRecordThemeMetrics(t *testing.T) {
	rs := newMemoryRunStore(t)

	runTime := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	runID, err := rs.BeginRun(runTime, "frontend", schema.StandardDepth, nil)
	require.NoError(t, err)

	matches := []schema.ThemeMatch{
		{ThemeName: "testing", Count: 4, ExampleTexts: []string{"add tests", "missing coverage"}},
		{ThemeName: "naming", Count: 1, ExampleTexts: []string{"rename this"}},
	}
	require.NoError(t, rs.RecordThemeMetrics(runID, runTime, matches))

	metrics, err := rs.GetAllThemeMetrics()
	require.NoError(t, err)
	require.Len(t, metrics, 2)

	// Ordered by run_id, theme
	assert.Equal(t, "naming", metrics[0].Theme)
	assert.Equal(t, int32(1), metrics[0].MatchCount)
	assert.Equal(t, "testing", metrics[1].Theme)
	assert.Equal(t, int32(4), metrics[1].MatchCount)
	assert.Equal(t, int32(2), metrics[1].ExampleCount)
	assert.True(t, metrics[1].RunTime.Equal(runTime))
}

func TestRecordThemeMetricsDuplicateTheme(t *testing.T) {
	rs := newMemoryRunStore(t)

	runID, err := rs.BeginRun(time.Now(), "frontend", schema.StandardDepth, nil)
	require.NoError(t, err)

	match := []schema.ThemeMatch{{ThemeName: "testing", Count: 1}}
	require.NoError(t, rs.RecordThemeMetrics(runID, time.Now(), match))
	err = rs.RecordThemeMetrics(runID, time.Now(), match)
	require.Error(t, err, "composite primary key rejects a second row per theme")
}

func TestGetStatus(t *testing.T) {
	rs := newMemoryRunStore(t)

	status, err := rs.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, "sqlite", status.Backend)
	assert.True(t, status.Connected)
	assert.Equal(t, 0, status.TotalRuns)

	first := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	second := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	runID1, err := rs.BeginRun(first, "frontend", schema.StandardDepth, nil)
	require.NoError(t, err)
	require.NoError(t, rs.EndRun(runID1, first.Add(time.Second), 10, 3, 20))
	runID2, err := rs.BeginRun(second, "backend", schema.QuickDepth, nil)
	require.NoError(t, err)
	require.NoError(t, rs.EndRun(runID2, second.Add(time.Second), 7, 2, 15))
	require.NoError(t, rs.RecordThemeMetrics(runID2, second, []schema.ThemeMatch{{ThemeName: "testing", Count: 2}}))

	status, err = rs.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, 2, status.TotalRuns)
	assert.Equal(t, int64(2), status.LastRunID)
	assert.True(t, status.LastRunTime.Equal(second))
	assert.True(t, status.OldestRunTime.Equal(first))
	assert.Equal(t, 17, status.TotalCommits)
	assert.Equal(t, int64(2), status.TableSizes[refreshRunsTable])
	assert.Equal(t, int64(1), status.TableSizes[themeMetricsTable])
}

func TestQuoteTableName(t *testing.T) {
	tests := []struct {
		name     string
		backend  schema.DatabaseBackend
		expected string
	}{
		{"mysql uses backticks", schema.MySQLBackend, "`guidepost_refresh_runs`"},
		{"postgres uses double quotes", schema.PostgreSQLBackend, `"guidepost_refresh_runs"`},
		{"sqlite uses double quotes", schema.SQLiteBackend, `"guidepost_refresh_runs"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, quoteTableName(refreshRunsTable, tt.backend))
		})
	}
}

func TestFormatTime(t *testing.T) {
	ts := time.Date(2025, 6, 15, 12, 0, 0, 123456789, time.UTC)

	formatted := formatTime(ts, schema.SQLiteBackend)
	assert.Equal(t, "2025-06-15T12:00:00.123456789Z", formatted)

	native := formatTime(ts, schema.PostgreSQLBackend)
	assert.Equal(t, ts, native)
}

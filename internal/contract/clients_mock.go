package contract

import (
	"context"
	"time"

	"github.com/guidepost-dev/guidepost/schema"
	"github.com/stretchr/testify/mock"
)

// MockHistoryClient is a mock implementation of HistoryClient for testing.
type MockHistoryClient struct {
	mock.Mock
}

var _ HistoryClient = &MockHistoryClient{} // Compile-time check

// Run implements the HistoryClient interface.
func (m *MockHistoryClient) Run(ctx context.Context, repoPath string, args ...string) ([]byte, error) {
	mockArgs := []any{ctx, repoPath}
	for _, arg := range args {
		mockArgs = append(mockArgs, arg)
	}
	ret := m.Called(mockArgs...)
	out, _ := ret.Get(0).([]byte)
	return out, ret.Error(1)
}

// GetRepoRoot implements the HistoryClient interface.
func (m *MockHistoryClient) GetRepoRoot(ctx context.Context, contextPath string) (string, error) {
	ret := m.Called(ctx, contextPath)
	root, _ := ret.Get(0).(string)
	return root, ret.Error(1)
}

// GetCommitLog implements the HistoryClient interface.
func (m *MockHistoryClient) GetCommitLog(ctx context.Context, repoPath, area string, since time.Time) ([]byte, error) {
	ret := m.Called(ctx, repoPath, area, since)
	out, _ := ret.Get(0).([]byte)
	return out, ret.Error(1)
}

// MockReviewClient is a mock implementation of ReviewClient for testing.
type MockReviewClient struct {
	mock.Mock
}

var _ ReviewClient = &MockReviewClient{} // Compile-time check

// Available implements the ReviewClient interface.
func (m *MockReviewClient) Available() bool {
	ret := m.Called()
	return ret.Bool(0)
}

// ListMergedReviews implements the ReviewClient interface.
func (m *MockReviewClient) ListMergedReviews(ctx context.Context, repoPath string, limit int) ([]byte, error) {
	ret := m.Called(ctx, repoPath, limit)
	out, _ := ret.Get(0).([]byte)
	return out, ret.Error(1)
}

// MockRunStore is a mock implementation of RunStore for testing.
type MockRunStore struct {
	mock.Mock
}

var _ RunStore = &MockRunStore{} // Compile-time check

// BeginRun implements the RunStore interface.
func (m *MockRunStore) BeginRun(startTime time.Time, area string, depth schema.Depth, configParams map[string]any) (int64, error) {
	ret := m.Called(startTime, area, depth, configParams)
	id, _ := ret.Get(0).(int64)
	return id, ret.Error(1)
}

// EndRun implements the RunStore interface.
func (m *MockRunStore) EndRun(runID int64, endTime time.Time, commitCount, reviewCount, fileCount int) error {
	ret := m.Called(runID, endTime, commitCount, reviewCount, fileCount)
	return ret.Error(0)
}

// RecordThemeMetrics implements the RunStore interface.
func (m *MockRunStore) RecordThemeMetrics(runID int64, runTime time.Time, matches []schema.ThemeMatch) error {
	ret := m.Called(runID, runTime, matches)
	return ret.Error(0)
}

// GetStatus implements the RunStore interface.
func (m *MockRunStore) GetStatus() (schema.HistoryStatus, error) {
	ret := m.Called()
	status, _ := ret.Get(0).(schema.HistoryStatus)
	return status, ret.Error(1)
}

// GetAllRuns implements the RunStore interface.
func (m *MockRunStore) GetAllRuns() ([]schema.RefreshRunRecord, error) {
	ret := m.Called()
	runs, _ := ret.Get(0).([]schema.RefreshRunRecord)
	return runs, ret.Error(1)
}

// GetAllThemeMetrics implements the RunStore interface.
func (m *MockRunStore) GetAllThemeMetrics() ([]schema.ThemeMetricRecord, error) {
	ret := m.Called()
	metrics, _ := ret.Get(0).([]schema.ThemeMetricRecord)
	return metrics, ret.Error(1)
}

// Close implements the RunStore interface.
func (m *MockRunStore) Close() error {
	ret := m.Called()
	return ret.Error(0)
}

// MockStoreManager is a mock implementation of StoreManager for testing.
type MockStoreManager struct {
	mock.Mock
}

var _ StoreManager = &MockStoreManager{} // Compile-time check

// GetRunStore implements the StoreManager interface.
func (m *MockStoreManager) GetRunStore() RunStore {
	ret := m.Called()
	store, _ := ret.Get(0).(RunStore)
	return store
}

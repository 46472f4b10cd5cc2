package collect

import (
	"context"
	_ "embed"
	"errors"
	"testing"
	"time"

	"github.com/guidepost-dev/guidepost/internal/contract"
	"github.com/guidepost-dev/guidepost/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

//go:embed testdata/git_log_area.txt
var gitLogAreaFixture []byte

//go:embed testdata/gh_reviews.json
var ghReviewsFixture []byte

func TestParseCommitLog(t *testing.T) {
	records := ParseCommitLog(gitLogAreaFixture)

	require.Len(t, records, 3)

	assert.Equal(t, schema.CommitSource, records[0].Source)
	assert.Equal(t, "refactor to hooks\nDrops the legacy class components.", records[0].Text)
	assert.Equal(t, "Alice", records[0].Author)
	assert.Equal(t, time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC), records[0].Timestamp.UTC())

	assert.Equal(t, "add unit test", records[1].Text)
	assert.Equal(t, "Bob", records[1].Author)

	assert.Equal(t, "fix prop types", records[2].Text)
	assert.Equal(t, "Carol", records[2].Author)
}

func TestParseCommitLogEmptyAndMalformed(t *testing.T) {
	assert.Empty(t, ParseCommitLog(nil))
	assert.Empty(t, ParseCommitLog([]byte("")))
	// Entries without enough fields are skipped, not fatal.
	assert.Empty(t, ParseCommitLog([]byte("garbage output\x1e")))
}

func TestCommits(t *testing.T) {
	ctx := context.Background()
	since := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	cfg := &contract.Config{RepoPath: "/test/repo", Area: "frontend/components"}

	client := &contract.MockHistoryClient{}
	client.On("GetCommitLog", ctx, "/test/repo", "frontend/components", since).Return(gitLogAreaFixture, nil)

	records, err := Commits(ctx, client, cfg, since)
	require.NoError(t, err)
	assert.Len(t, records, 3)
	client.AssertExpectations(t)
}

func TestCommitsUnavailable(t *testing.T) {
	ctx := context.Background()
	cfg := &contract.Config{RepoPath: "/test/repo", Area: "frontend/components"}

	client := &contract.MockHistoryClient{}
	client.On("GetCommitLog", ctx, "/test/repo", "frontend/components", time.Time{}).
		Return([]byte(nil), errors.New("git: command not found"))

	_, err := Commits(ctx, client, cfg, time.Time{})

	var unavailable *UnavailableError
	require.ErrorAs(t, err, &unavailable)
	assert.Equal(t, "git", unavailable.Tool)
}

func TestParseReviewList(t *testing.T) {
	records, err := ParseReviewList(ghReviewsFixture, "frontend/components")
	require.NoError(t, err)

	// PR 101 touches the area: two non-empty reviews. PR 102 does not.
	require.Len(t, records, 2)
	assert.Equal(t, schema.ReviewCommentSource, records[0].Source)
	assert.Equal(t, "Please add a unit test for the disabled state.", records[0].Text)
	assert.Equal(t, "reviewer-one", records[0].Author)
	assert.Equal(t, "reviewer-two", records[1].Author)
}

func TestParseReviewListAreaBoundary(t *testing.T) {
	// "frontend/components-legacy/x" must not match area "frontend/components".
	payload := []byte(`[
		{"number": 1, "reviews": [{"author": {"login": "r"}, "body": "n", "submittedAt": "2025-06-01T00:00:00Z"}],
		 "files": [{"path": "frontend/components-legacy/Old.tsx"}]}
	]`)

	records, err := ParseReviewList(payload, "frontend/components")
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestParseReviewListMalformed(t *testing.T) {
	_, err := ParseReviewList([]byte("not json"), "frontend")
	assert.Error(t, err)
}

func TestReviewComments(t *testing.T) {
	ctx := context.Background()
	cfg := &contract.Config{RepoPath: "/test/repo", Area: "frontend/components", MaxReviewItems: 50}

	client := &contract.MockReviewClient{}
	client.On("Available").Return(true)
	client.On("ListMergedReviews", ctx, "/test/repo", 50).Return(ghReviewsFixture, nil)

	records, err := ReviewComments(ctx, client, cfg)
	require.NoError(t, err)
	assert.Len(t, records, 2)
	client.AssertExpectations(t)
}

func TestReviewCommentsToolMissing(t *testing.T) {
	cfg := &contract.Config{RepoPath: "/test/repo", Area: "frontend/components"}

	client := &contract.MockReviewClient{}
	client.On("Available").Return(false)

	_, err := ReviewComments(context.Background(), client, cfg)

	var unavailable *UnavailableError
	require.ErrorAs(t, err, &unavailable)
	assert.Equal(t, "gh", unavailable.Tool)
}

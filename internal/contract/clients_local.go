package contract

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// CommitLogSeparator delimits commits in the raw log output. The ASCII
// record separator cannot appear in commit messages written by humans.
const CommitLogSeparator = "\x1e"

// commitLogFormat packs hash, author, date, subject, and body into one
// separator-terminated entry, with unit separators between the fields.
const commitLogFormat = "--pretty=format:%H\x1f%an\x1f%ad\x1f%s\x1f%b\x1e"

// LocalHistoryClient implements the HistoryClient interface by executing the
// local 'git' binary installed on the machine.
type LocalHistoryClient struct{}

var _ HistoryClient = &LocalHistoryClient{} // Compile-time check

// NewLocalHistoryClient creates a new instance of the local git client.
func NewLocalHistoryClient() *LocalHistoryClient {
	return &LocalHistoryClient{}
}

// Run executes a git command and returns its stdout output.
func (c *LocalHistoryClient) Run(_ context.Context, repoPath string, args ...string) ([]byte, error) {
	fullArgs := append([]string{"-C", repoPath}, args...)
	cmd := exec.Command("git", fullArgs...)
	out, err := cmd.Output()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		stderr := strings.TrimSpace(string(exitErr.Stderr))
		return nil, fmt.Errorf("git command failed in %q: %s. If this is not a Git repository, verify the path or run 'git init'", repoPath, stderr)
	} else if err != nil {
		return nil, fmt.Errorf("git command failed: %w. Ensure Git is installed and available on your PATH", err)
	}
	return out, nil
}

// GetRepoRoot implements the HistoryClient interface.
func (c *LocalHistoryClient) GetRepoRoot(ctx context.Context, contextPath string) (string, error) {
	out, err := c.Run(ctx, contextPath, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// GetCommitLog implements the HistoryClient interface.
func (c *LocalHistoryClient) GetCommitLog(ctx context.Context, repoPath, area string, since time.Time) ([]byte, error) {
	args := []string{
		"log",
		commitLogFormat,
		"--date=iso-strict",
	}
	if !since.IsZero() {
		args = append(args, "--since="+since.Format("2006-01-02"))
	}
	args = append(args, "--", area)
	return c.Run(ctx, repoPath, args...)
}

// LocalReviewClient implements the ReviewClient interface by executing the
// local 'gh' binary. The binary is optional; callers must check Available
// before invoking it and treat failures as a degraded data source.
type LocalReviewClient struct{}

var _ ReviewClient = &LocalReviewClient{} // Compile-time check

// NewLocalReviewClient creates a new instance of the local gh client.
func NewLocalReviewClient() *LocalReviewClient {
	return &LocalReviewClient{}
}

// Available implements the ReviewClient interface.
func (c *LocalReviewClient) Available() bool {
	_, err := exec.LookPath("gh")
	return err == nil
}

// ListMergedReviews implements the ReviewClient interface.
func (c *LocalReviewClient) ListMergedReviews(_ context.Context, repoPath string, limit int) ([]byte, error) {
	cmd := exec.Command("gh", "pr", "list",
		"--state", "merged",
		"--limit", fmt.Sprintf("%d", limit),
		"--json", "number,title,body,reviews,files")
	cmd.Dir = repoPath
	out, err := cmd.Output()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		stderr := strings.TrimSpace(string(exitErr.Stderr))
		return nil, fmt.Errorf("gh command failed: %s", stderr)
	} else if err != nil {
		return nil, fmt.Errorf("gh command failed: %w", err)
	}
	return out, nil
}

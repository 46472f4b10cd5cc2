// Package collect turns external tool output into raw evidence records.
package collect

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/guidepost-dev/guidepost/internal/contract"
	"github.com/guidepost-dev/guidepost/schema"
)

// UnavailableError marks a data source that could not be collected. It is
// recoverable: the pipeline records a finding and continues without the
// source instead of aborting the run.
type UnavailableError struct {
	Tool   string
	Reason string
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("%s unavailable: %s", e.Tool, e.Reason)
}

// Commits collects one RawRecord per commit touching the area since the
// given time. A failing or missing git binary yields an UnavailableError.
func Commits(ctx context.Context, client contract.HistoryClient, cfg *contract.Config, since time.Time) ([]schema.RawRecord, error) {
	out, err := client.GetCommitLog(ctx, cfg.RepoPath, cfg.Area, since)
	if err != nil {
		return nil, &UnavailableError{Tool: "git", Reason: err.Error()}
	}
	return ParseCommitLog(out), nil
}

// ParseCommitLog parses delimited git log output into records. Entries are
// separated by the record separator and carry hash, author, date, subject,
// and body as unit-separated fields.
func ParseCommitLog(out []byte) []schema.RawRecord {
	var records []schema.RawRecord

	for _, entry := range strings.Split(string(out), contract.CommitLogSeparator) {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "\x1f", 5)
		if len(parts) < 4 {
			continue // Malformed entry, not worth failing the run over
		}

		author := parts[1]
		timestamp, _ := time.Parse(time.RFC3339, parts[2])
		text := strings.TrimSpace(parts[3])
		if len(parts) == 5 {
			if body := strings.TrimSpace(parts[4]); body != "" {
				text = text + "\n" + body
			}
		}
		if text == "" {
			continue
		}

		records = append(records, schema.RawRecord{
			Source:    schema.CommitSource,
			Text:      text,
			Timestamp: timestamp,
			Author:    author,
		})
	}

	return records
}

// mergedReview mirrors the JSON shape emitted by `gh pr list --json`.
type mergedReview struct {
	Number  int    `json:"number"`
	Title   string `json:"title"`
	Body    string `json:"body"`
	Reviews []struct {
		Author struct {
			Login string `json:"login"`
		} `json:"author"`
		Body        string    `json:"body"`
		SubmittedAt time.Time `json:"submittedAt"`
	} `json:"reviews"`
	Files []struct {
		Path string `json:"path"`
	} `json:"files"`
}

// ReviewComments collects one RawRecord per review comment on merged
// changes whose files fall under the area. A missing or failing gh binary
// yields an UnavailableError.
func ReviewComments(ctx context.Context, client contract.ReviewClient, cfg *contract.Config) ([]schema.RawRecord, error) {
	if !client.Available() {
		return nil, &UnavailableError{Tool: "gh", Reason: "binary not found on PATH"}
	}

	out, err := client.ListMergedReviews(ctx, cfg.RepoPath, cfg.MaxReviewItems)
	if err != nil {
		return nil, &UnavailableError{Tool: "gh", Reason: err.Error()}
	}

	records, err := ParseReviewList(out, cfg.Area)
	if err != nil {
		return nil, &UnavailableError{Tool: "gh", Reason: err.Error()}
	}
	return records, nil
}

// ParseReviewList parses the gh JSON listing and keeps only reviews on
// changes that touched the area. Filtering happens client-side because gh
// has no path filter for merged pull requests.
func ParseReviewList(out []byte, area string) ([]schema.RawRecord, error) {
	var reviews []mergedReview
	if err := json.Unmarshal(out, &reviews); err != nil {
		return nil, fmt.Errorf("unexpected review listing format: %w", err)
	}

	var records []schema.RawRecord
	for _, pr := range reviews {
		if !touchesArea(pr, area) {
			continue
		}
		for _, review := range pr.Reviews {
			body := strings.TrimSpace(review.Body)
			if body == "" {
				continue
			}
			records = append(records, schema.RawRecord{
				Source:    schema.ReviewCommentSource,
				Text:      body,
				Timestamp: review.SubmittedAt,
				Author:    review.Author.Login,
			})
		}
	}

	return records, nil
}

// touchesArea reports whether any changed file equals the area path or
// lives under it.
func touchesArea(pr mergedReview, area string) bool {
	for _, file := range pr.Files {
		if file.Path == area || strings.HasPrefix(file.Path, area+"/") {
			return true
		}
	}
	return false
}

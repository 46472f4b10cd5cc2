// Package store persists guidelines documents on disk and refresh runs in
// the run-history database.
package store

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/guidepost-dev/guidepost/internal/contract"
	"github.com/guidepost-dev/guidepost/schema"
)

// Subdirectories of the output root.
const (
	guidelinesDir = "guidelines"
	reportsDir    = "reports"
)

// GuidelinesFilePath returns the canonical guidelines path for an area. The
// sanitized area must resolve inside the output root.
func GuidelinesFilePath(outRoot, area string) (string, error) {
	return containedPath(outRoot, guidelinesDir, schema.SanitizeAreaName(area)+".md")
}

// SaveGuidelines writes the guidelines for an area, backing up any existing
// version first. The backup carries a timestamp suffix and is unconditional,
// so every prior version survives. The new content lands via a temp file
// rename in the same directory; the canonical file is never truncated.
func SaveGuidelines(outRoot, area, content string, now time.Time) (string, error) {
	path, err := GuidelinesFilePath(outRoot, area)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("failed to create guidelines directory: %w", err)
	}

	if _, err := os.Stat(path); err == nil {
		backup := strings.TrimSuffix(path, ".md") + "." + now.Format(contract.TimestampSuffixFormat) + ".md"
		if err := os.Rename(path, backup); err != nil {
			return "", fmt.Errorf("failed to back up previous guidelines: %w", err)
		}
	}

	if err := writeAtomic(path, content); err != nil {
		return "", err
	}
	return path, nil
}

// SaveReport writes the per-run analysis report. Reports are write-once, one
// file per run, so there is nothing to back up.
func SaveReport(outRoot, area, content string, now time.Time) (string, error) {
	name := fmt.Sprintf("refresh-%s-%s.md", schema.SanitizeAreaName(area), now.Format(contract.TimestampSuffixFormat))
	path, err := containedPath(outRoot, reportsDir, name)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("failed to create reports directory: %w", err)
	}
	if err := writeAtomic(path, content); err != nil {
		return "", err
	}
	return path, nil
}

// containedPath joins the parts under the output root and rejects any result
// escaping it.
func containedPath(outRoot string, parts ...string) (string, error) {
	path := filepath.Join(append([]string{outRoot}, parts...)...)
	cleanRoot := filepath.Clean(outRoot)
	if path != cleanRoot && !strings.HasPrefix(path, cleanRoot+string(filepath.Separator)) {
		return "", fmt.Errorf("refusing to write outside output root: %s", path)
	}
	return path, nil
}

// writeAtomic writes content to a temp file in the target's directory and
// renames it into place.
func writeAtomic(path, content string) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.WriteString(content); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}

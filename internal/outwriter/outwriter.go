// Package outwriter has output and writer logic.
package outwriter

import (
	"os"
	"time"

	"github.com/guidepost-dev/guidepost/internal/contract"
	"github.com/guidepost-dev/guidepost/schema"
	"golang.org/x/term"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteRefreshSummary prints the post-run summary using the configured output format.
func (ow *OutWriter) WriteRefreshSummary(result *schema.RefreshResult, cfg *contract.Config, duration time.Duration) error {
	return PrintRefreshSummary(result, cfg, duration)
}

// WriteThemes prints the effective theme dictionary using the configured output format.
func (ow *OutWriter) WriteThemes(themes []schema.Theme, cfg *contract.Config) error {
	return PrintThemeDictionary(themes, cfg)
}

// WriteRuns prints recorded refresh runs using the configured output format.
func (ow *OutWriter) WriteRuns(runs []schema.RefreshRunRecord, cfg *contract.Config) error {
	return PrintRunHistory(runs, cfg)
}

// GetMaxExampleWidth calculates the maximum width for example text in table
// output based on terminal width.
func GetMaxExampleWidth(cfg *contract.Config) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		// Get terminal width
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			// Fallback to conservative default if terminal size can't be detected
			termWidth = 80 // Conservative default for narrow terminals and CI
		} else {
			termWidth = detectedWidth
		}
	}

	// Reserve space for the fixed columns: Rank + Theme + Matches + Signal
	// with borders and padding
	baseWidth := 45

	// Calculate available space for the example text
	available := termWidth - baseWidth
	if available < 15 {
		// Minimum reasonable example width
		return 15
	}
	if available > 70 {
		// Maximum example width to prevent overly long lines
		return 70
	}
	return available
}

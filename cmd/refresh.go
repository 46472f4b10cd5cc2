package cmd

import (
	"github.com/guidepost-dev/guidepost/core"
	"github.com/guidepost-dev/guidepost/internal/contract"
	"github.com/guidepost-dev/guidepost/internal/outwriter"
	"github.com/spf13/cobra"
)

// refreshCmd regenerates the guidelines for one area.
var refreshCmd = &cobra.Command{
	Use:   "refresh [repo-path]",
	Short: "Regenerate coding guidelines for an area from recent evidence.",
	Long: `Analyze recent commit history, merged review feedback, and the current
file tree of an area, then regenerate its coding guidelines document.

The refresh:
- Scans the area's files for extension and naming-convention patterns
- Collects commit messages via git and review comments via gh
- Classifies the evidence against a configurable theme dictionary
- Writes the guidelines plus a companion analysis report, backing up the
  previous guidelines version first

A missing git or gh binary degrades to a finding in the report; only a
missing area or an unwritable output directory fails the run.

Examples:
  # Standard 90-day refresh
  guidepost refresh --area frontend/components

  # Quick 30-day pass on another repository
  guidepost refresh ~/code/webapp --area src/api --depth quick

  # Machine-readable summary for scripting
  guidepost refresh --area src --output json --output-file summary.json`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		result, duration, err := core.ExecuteRefresh(rootCtx, cfg, storeManager)
		if err != nil {
			contract.LogFatal("Cannot refresh guidelines", err)
		}
		if err := outwriter.NewOutWriter().WriteRefreshSummary(result, cfg, duration); err != nil {
			contract.LogFatal("Cannot write refresh summary", err)
		}
	},
}

package cmd

import (
	"fmt"

	"github.com/guidepost-dev/guidepost/internal/contract"
	"github.com/guidepost-dev/guidepost/internal/outwriter"
	"github.com/guidepost-dev/guidepost/internal/store"
	"github.com/guidepost-dev/guidepost/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// historySetup loads minimal configuration needed for run-history operations.
// This is used by commands that need store access without full shared setup.
func historySetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	// Get history-related config values
	backend := schema.DatabaseBackend(viper.GetString("history-backend"))
	connStr := viper.GetString("history-db-connect")

	// Basic validation for database backends
	if _, ok := schema.ValidHistoryBackends[backend]; !ok {
		return contract.NewConfigError("history-backend", "invalid backend %q. must be sqlite, mysql, postgresql, none", string(backend))
	}
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	// Initialize stores with the loaded config
	if err := store.InitStores(backend, connStr); err != nil {
		return fmt.Errorf("failed to initialize run history: %w", err)
	}
	storeManager = store.Manager

	cfg.HistoryBackend = backend
	cfg.HistoryDBConnect = connStr
	cfg.Output = schema.OutputMode(viper.GetString("output"))
	cfg.OutputFile = viper.GetString("output-file")
	cfg.Width = viper.GetInt("width")

	return nil
}

// historySetupWrapper wraps historySetup to provide PreRunE for history commands.
func historySetupWrapper(_ *cobra.Command, _ []string) error {
	return historySetup()
}

// historyMigrateSetup loads minimal configuration needed for migrate operations.
// This is a specialized setup that does NOT initialize stores or create tables,
// allowing migrations to run on a fresh database.
func historyMigrateSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	backend := schema.DatabaseBackend(viper.GetString("history-backend"))
	connStr := viper.GetString("history-db-connect")

	if _, ok := schema.ValidHistoryBackends[backend]; !ok {
		return contract.NewConfigError("history-backend", "invalid backend %q. must be sqlite, mysql, postgresql, none", string(backend))
	}
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	// For SQLite backend with empty connection string, use default path
	if backend == schema.SQLiteBackend && connStr == "" {
		connStr = contract.GetHistoryDBFilePath()
	}

	cfg.HistoryBackend = backend
	cfg.HistoryDBConnect = connStr

	return nil
}

// historyMigrateSetupWrapper wraps historyMigrateSetup to provide PreRunE for migrate command.
func historyMigrateSetupWrapper(_ *cobra.Command, _ []string) error {
	return historyMigrateSetup()
}

// historyCmd focused on run-history data management.
//
// Note: History subcommands use minimal initialization (historySetup) instead
// of the full sharedSetup used by refresh. This avoids Git repo validation and
// complex config processing for simple store operations.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Manage recorded refresh runs and exports",
	Long: `Manage the run-history store that tracks every guideline refresh.

When enabled, Guidepost records each refresh run, storing:
- Run metadata (area, depth, timing, configuration)
- Evidence volume (commits, review comments, files)
- Per-theme match counts

This enables trend tracking across refreshes and data export for BI tools.

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (disabled)

Subcommands:
  status  - Show run-history statistics
  runs    - List recorded refresh runs
  export  - Export data to Parquet or CSV for analytics
  clear   - Remove all recorded runs
  migrate - Run database schema migrations

Examples:
  # Check run-history status
  guidepost history status

  # Export for analysis in pandas/DuckDB
  guidepost history export --output-file guidepost-data`,
}

// historyStatusCmd shows run-history status.
var historyStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display run-history statistics and connection details",
	Long: `Show detailed information about the run-history store.

Displays:
- Backend type and connection status
- Total number of refresh runs stored
- Last and oldest run timestamps
- Total commits analyzed across all runs
- Database table sizes

Examples:
  # Check run-history status
  guidepost history status`,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := storeManager.GetRunStore().GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get run-history status", err)
		}
		store.PrintHistoryStatus(status)
	},
}

// historyRunsCmd lists recorded refresh runs.
var historyRunsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recorded refresh runs",
	Long: `List every recorded refresh run in chronological order.

Examples:
  # Review recent refresh activity
  guidepost history runs

  # Export the listing as CSV
  guidepost history runs --output csv --output-file runs.csv`,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		runs, err := storeManager.GetRunStore().GetAllRuns()
		if err != nil {
			contract.LogFatal("Failed to list refresh runs", err)
		}
		if err := outwriter.NewOutWriter().WriteRuns(runs, cfg); err != nil {
			contract.LogFatal("Cannot write run listing", err)
		}
	},
}

// historyClearCmd clears the run-history data.
var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all recorded refresh runs",
	Long: `Delete all stored refresh runs and theme metrics.

WARNING: This action cannot be undone. Consider exporting data first.

Examples:
  # Export before clearing
  guidepost history export --output-file backup
  guidepost history clear`,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := store.ClearHistory(cfg.HistoryBackend, contract.GetHistoryDBFilePath(), cfg.HistoryDBConnect); err != nil {
			contract.LogFatal("Failed to clear run history", err)
		}
		fmt.Println("Run history cleared successfully.")
	},
}

// historyExportCmd exports run-history data to Parquet or CSV files.
var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export recorded runs to Parquet or CSV for analytics",
	Long: `Export all stored run-history data for use with analytics tools.

Exports two datasets:
- Refresh runs - metadata about each refresh execution
- Theme metrics - per-theme match counts per run

Parquet format enables fast querying with DuckDB, Apache Spark, and pandas;
CSV suits spreadsheets and quick inspection.

Requires: --output-file parameter

Examples:
  # Export all data as Parquet
  guidepost history export --output-file guidepost-data

  # Export as CSV instead
  guidepost history export --output-file guidepost-data --export-format csv`,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		format := schema.ExportFormat(viper.GetString("export-format"))
		if _, ok := schema.ValidExportFormats[format]; !ok {
			contract.LogFatal("Failed to export run history",
				contract.NewConfigError("export-format", "invalid format %q. must be parquet, csv", string(format)))
		}
		if err := store.ExecuteHistoryExport(cfg.OutputFile, format); err != nil {
			contract.LogFatal("Failed to export run history", err)
		}
	},
}

// historyMigrateCmd runs database migrations for the run-history store.
var historyMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the run-history store.

By default, migrates to the latest version. Use --target-version for specific versions.

Examples:
  # Migrate to latest version (default)
  guidepost history migrate

  # Migrate to specific version
  guidepost history migrate --target-version 1

  # Rollback to initial state
  guidepost history migrate --target-version 0`,
	PreRunE: historyMigrateSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := store.MigrateHistory(cfg.HistoryBackend, cfg.HistoryDBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}

// Package main provides a performance benchmarking tool for the Guidepost CLI.
// It measures refresh execution times across different repository sizes and
// depth profiles, running each test multiple times and averaging the results,
// generating CSV output for performance analysis and documentation.
//
// Prerequisites:
// - guidepost binary installed and available in PATH
// - Test repositories cloned to the specified base directory
// - Git repositories: csv-parser, fd, git, kubernetes
//
// Usage: go run benchmark/main.go [repo-base-dir]
//
//	repo-base-dir: Directory containing test repositories
package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// BenchmarkResult holds the averaged refresh times for one repository and
// depth, with and without the sqlite history backend.
type BenchmarkResult struct {
	Repository    string
	Depth         string
	NoHistoryTime string
	SQLiteTime    string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	RepoBase  string
	Timeout   time.Duration
	Runs      int
	Depths    []string
	TestRepos []string
	RepoAreas map[string]string
}

func main() {
	// Parse command line arguments
	if len(os.Args) != 2 {
		fmt.Printf("Usage: %s [repo-base-dir]\n", os.Args[0])
		os.Exit(1)
	}
	repoBase := os.Args[1]

	config := BenchmarkConfig{
		RepoBase:  repoBase,
		Timeout:   5 * time.Minute,
		Runs:      3,
		Depths:    []string{"quick", "standard", "deep"},
		TestRepos: []string{"csv-parser", "fd", "git", "kubernetes"},
		RepoAreas: map[string]string{
			"csv-parser": "include",
			"fd":         "src",
			"git":        "builtin",
			"kubernetes": "cmd",
		},
	}

	if err := checkPrerequisites(config); err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
		os.Exit(1)
	}

	results := runBenchmarks(config)

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(results)
}

// checkPrerequisites verifies that the guidepost binary and test repositories exist
func checkPrerequisites(config BenchmarkConfig) error {
	// Check if guidepost is available
	if _, err := exec.LookPath("guidepost"); err != nil {
		return fmt.Errorf("guidepost binary not found in PATH")
	}

	// Check if repositories exist
	for _, repo := range config.TestRepos {
		repoPath := filepath.Join(config.RepoBase, repo)
		if _, err := os.Stat(repoPath); os.IsNotExist(err) {
			return fmt.Errorf("repository %s not found at %s", repo, repoPath)
		}
	}

	return nil
}

// runBenchmarks executes all benchmark tests across configured repositories
func runBenchmarks(config BenchmarkConfig) []BenchmarkResult {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d repos, %v timeout, %d runs per phase\n",
		len(config.TestRepos), config.Timeout, config.Runs)

	for _, repo := range config.TestRepos {
		fmt.Printf("Benchmarking %s\n", repo)

		repoPath := filepath.Join(config.RepoBase, repo)
		area := config.RepoAreas[repo]

		for _, depth := range config.Depths {
			result := runBenchmarkSuite(config, repo, repoPath, area, depth)
			results = append(results, result)
		}
	}

	return results
}

// runBenchmarkSuite runs the no-history and sqlite phases for one repo and depth
func runBenchmarkSuite(config BenchmarkConfig, repo, repoPath, area, depth string) BenchmarkResult {
	fmt.Printf("Running refresh (area %s, depth %s) on %s\n", area, depth, repo)

	// Helper to run a benchmark phase
	runPhase := func(backend, phaseName string) string {
		fmt.Printf("  %s phase (%d runs)\n", phaseName, config.Runs)
		times := runBenchmark(config, repoPath, area, depth, backend)
		if len(times) == 0 {
			return "TIMEOUT"
		}
		var sum float64
		for _, t := range times {
			sum += t
		}
		return fmt.Sprintf("%.3fs", sum/float64(len(times)))
	}

	noHistoryAvg := runPhase("none", "No-history")
	sqliteAvg := runPhase("sqlite", "SQLite")

	fmt.Printf("  No-history average: %s, SQLite average: %s\n", noHistoryAvg, sqliteAvg)

	return BenchmarkResult{
		Repository:    repo,
		Depth:         depth,
		NoHistoryTime: noHistoryAvg,
		SQLiteTime:    sqliteAvg,
	}
}

// runBenchmark executes guidepost refresh multiple times with the specified
// history backend and returns the wall-clock times of successful runs.
func runBenchmark(config BenchmarkConfig, repoPath, area, depth, backend string) []float64 {
	outRoot, err := os.MkdirTemp("", "guidepost-bench-*")
	if err != nil {
		fmt.Printf("Warning: failed to create out root: %v\n", err)
		return nil
	}
	defer func() { _ = os.RemoveAll(outRoot) }()

	args := []string{"refresh",
		"--area", area,
		"--depth", depth,
		"--out-root", outRoot,
		"--history-backend", backend,
	}

	var times []float64
	for run := 1; run <= config.Runs; run++ {
		start := time.Now()

		cmd := exec.Command("guidepost", args...)
		cmd.Dir = repoPath

		done := make(chan bool)
		var output []byte
		var cmdErr error

		go func() {
			output, cmdErr = cmd.CombinedOutput()
			done <- true
		}()

		select {
		case <-done:
			if cmdErr == nil && isSuccess(output) {
				times = append(times, time.Since(start).Seconds())
			}
		case <-time.After(config.Timeout):
			// Timeout - don't add to times
		}
	}

	return times
}

// isSuccess checks if command output indicates successful completion
func isSuccess(output []byte) bool {
	return strings.Contains(string(output), "Refresh completed in")
}

// saveResults writes benchmark results to a timestamped CSV file
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("/tmp/guidepost_benchmark_%s.csv", timestamp)

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close file %s: %v\n", filename, closeErr)
		}
	}()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	// Write header
	if err := writer.Write([]string{"repo", "depth", "no_history_avg", "sqlite_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	// Write results
	for _, result := range results {
		if err := writer.Write([]string{result.Repository, result.Depth, result.NoHistoryTime, result.SQLiteTime}); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results summary
func printSummary(results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")

	for _, depth := range []string{"quick", "standard", "deep"} {
		fmt.Printf("Depth %s:\n", depth)
		for _, result := range results {
			if result.Depth == depth {
				fmt.Printf("  %-12s: No-history: %s, SQLite: %s\n", result.Repository, result.NoHistoryTime, result.SQLiteTime)
			}
		}
	}

	fmt.Printf("Benchmark script completed successfully\n")
}

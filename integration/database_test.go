//go:build database

package integration

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestGuidepostWithMySQL tests the guidepost CLI with a MySQL history backend.
func TestGuidepostWithMySQL(t *testing.T) {
	ctx := context.Background()

	// Start MySQL container
	req := testcontainers.ContainerRequest{
		Image:        "mysql:8",
		ExposedPorts: []string{"3306:3306/tcp"},
		Env: map[string]string{
			"MYSQL_ROOT_PASSWORD": "secret123",
			"MYSQL_DATABASE":      "guidepost",
		},
		WaitingFor: wait.ForLog("port: 3306  MySQL Community Server").WithStartupTimeout(30 * time.Second),
	}
	mysqlC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = mysqlC.Terminate(ctx) }()

	// Get connection details
	host, err := mysqlC.Host(ctx)
	require.NoError(t, err)
	port, err := mysqlC.MappedPort(ctx, "3306")
	require.NoError(t, err)

	connStr := fmt.Sprintf("root:secret123@tcp(%s:%s)/guidepost?parseTime=true", host, port.Port())

	// Set environment variables
	_ = os.Setenv("GUIDEPOST_HISTORY_BACKEND", "mysql")
	_ = os.Setenv("GUIDEPOST_HISTORY_DB_CONNECT", connStr)
	defer func() { _ = os.Unsetenv("GUIDEPOST_HISTORY_BACKEND") }()
	defer func() { _ = os.Unsetenv("GUIDEPOST_HISTORY_DB_CONNECT") }()

	runBackendScenario(t)
}

// TestGuidepostWithPostgres tests the guidepost CLI with a PostgreSQL history backend.
func TestGuidepostWithPostgres(t *testing.T) {
	ctx := context.Background()

	// Start Postgres container
	req := testcontainers.ContainerRequest{
		Image:        "postgres:18-alpine",
		ExposedPorts: []string{"5432:5432/tcp"},
		Env: map[string]string{
			"POSTGRES_HOST_AUTH_METHOD": "trust",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").WithStartupTimeout(30 * time.Second),
	}
	pgC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = pgC.Terminate(ctx) }()
	time.Sleep(5 * time.Second)

	// Get connection details
	host, err := pgC.Host(ctx)
	require.NoError(t, err)
	port, err := pgC.MappedPort(ctx, "5432")
	require.NoError(t, err)

	connStr := fmt.Sprintf("host=%s port=%s user=postgres dbname=postgres", host, port.Port())

	// Set environment variables
	_ = os.Setenv("GUIDEPOST_HISTORY_BACKEND", "postgresql")
	_ = os.Setenv("GUIDEPOST_HISTORY_DB_CONNECT", connStr)
	defer func() { _ = os.Unsetenv("GUIDEPOST_HISTORY_BACKEND") }()
	defer func() { _ = os.Unsetenv("GUIDEPOST_HISTORY_DB_CONNECT") }()

	runBackendScenario(t)
}

// runBackendScenario exercises a refresh plus the history subcommands
// against whichever backend the environment selects.
func runBackendScenario(t *testing.T) {
	outRoot := t.TempDir()

	// Start from an empty run history
	err := runGuidepostCommand(t, "history", "clear")
	require.NoError(t, err)

	// Run a refresh so the backend records a run
	err = runGuidepostCommand(t, "refresh", "--area", "internal", "--depth", "quick", "--out-root", outRoot)
	require.NoError(t, err)

	// Run guidepost history status
	err = runGuidepostCommand(t, "history", "status")
	require.NoError(t, err)

	// Run guidepost history runs
	err = runGuidepostCommand(t, "history", "runs")
	require.NoError(t, err)

	// Run guidepost themes
	err = runGuidepostCommand(t, "themes")
	require.NoError(t, err)
}

func runGuidepostCommand(t *testing.T, args ...string) error {
	guidepostPath := getGuidepostBinary()
	cmd := exec.Command(guidepostPath, args...)
	cmd.Dir = "../" // Run from project root
	output, err := cmd.CombinedOutput()
	if err != nil {
		t.Logf("Command failed: %s\nOutput: %s", cmd.String(), string(output))
		return err
	}
	return nil
}

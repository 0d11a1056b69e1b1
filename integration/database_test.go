//go:build database

package integration

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/huangsam/launchpad/internal/history"
	"github.com/huangsam/launchpad/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// startMySQL starts a MySQL container and returns its connection string.
func startMySQL(t *testing.T) string {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "mysql:8",
		ExposedPorts: []string{"3306/tcp"},
		Env: map[string]string{
			"MYSQL_ROOT_PASSWORD": "secret123",
			"MYSQL_DATABASE":      "launchpad",
		},
		WaitingFor: wait.ForLog("port: 3306  MySQL Community Server").WithStartupTimeout(60 * time.Second),
	}
	mysqlC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = mysqlC.Terminate(ctx) })

	host, err := mysqlC.Host(ctx)
	require.NoError(t, err)
	port, err := mysqlC.MappedPort(ctx, "3306")
	require.NoError(t, err)

	return fmt.Sprintf("root:secret123@tcp(%s:%s)/launchpad", host, port.Port())
}

// startPostgres starts a PostgreSQL container and returns its connection string.
func startPostgres(t *testing.T) string {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:18-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_HOST_AUTH_METHOD": "trust",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}
	pgC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgC.Terminate(ctx) })

	host, err := pgC.Host(ctx)
	require.NoError(t, err)
	port, err := pgC.MappedPort(ctx, "5432")
	require.NoError(t, err)

	return fmt.Sprintf("host=%s port=%s user=postgres dbname=postgres sslmode=disable", host, port.Port())
}

// exerciseStore migrates, records, reads back, and rolls back the history schema.
func exerciseStore(t *testing.T, backend schema.DatabaseBackend, connStr string) {
	require.NoError(t, history.Migrate(backend, connStr, -1, nil))
	version, dirty, err := history.Version(backend, connStr)
	require.NoError(t, err)
	assert.Equal(t, uint(2), version)
	assert.False(t, dirty)

	store, err := history.NewStore(backend, connStr)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()
	require.NoError(t, store.Clear())

	started := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	require.NoError(t, store.Record(schema.InvocationRecord{
		ID: "a", Tool: "get_daily_graduates", QueryID: 5131612, Limit: 1000,
		StartedAt: started, DurationMs: 120, RowCount: 3, Status: schema.StatusOK,
	}))
	require.NoError(t, store.Record(schema.InvocationRecord{
		ID: "b", Tool: "get_daily_tokens_deployed", QueryID: 4010816, Limit: 50, Percent: true,
		StartedAt: started.Add(time.Minute), DurationMs: 80, Status: schema.StatusError,
		ErrorKind: string(schema.HTTPStatusError), ErrorMessage: "client error '401 Unauthorized'",
	}))

	records, err := store.List(10)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "b", records[0].ID)
	assert.True(t, records[0].Percent)
	assert.Equal(t, schema.StatusError, records[0].Status)
	assert.Equal(t, "client error '401 Unauthorized'", records[0].ErrorMessage)
	assert.True(t, started.Equal(records[1].StartedAt))

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.True(t, status.Connected)
	assert.Equal(t, 2, status.TotalRecords)
	assert.Equal(t, 1, status.ErrorRecords)
	assert.Equal(t, 1, status.PerTool["get_daily_graduates"])

	require.NoError(t, store.Clear())
	records, err = store.List(10)
	require.NoError(t, err)
	assert.Empty(t, records)

	// Roll back the index, then the table
	require.NoError(t, history.Migrate(backend, connStr, 1, nil))
	require.NoError(t, history.Migrate(backend, connStr, 0, nil))
}

// exerciseCLI drives the history commands through the built binary.
func exerciseCLI(t *testing.T, backend schema.DatabaseBackend, connStr string) {
	env := []string{
		"LAUNCHPAD_HISTORY_BACKEND=" + string(backend),
		"LAUNCHPAD_HISTORY_DB_CONNECT=" + connStr,
	}

	_, err := runLaunchpad(t, env, "history", "migrate")
	require.NoError(t, err)

	_, err = runLaunchpad(t, env, "history", "clear")
	require.NoError(t, err)

	output, err := runLaunchpad(t, env, "history", "status")
	require.NoError(t, err)
	assert.Contains(t, output, "Connected: true")
	assert.Contains(t, output, "Total Invocations: 0")

	_, err = runLaunchpad(t, env, "history", "list", "--output", "json")
	require.NoError(t, err)
}

// TestHistoryWithMySQL tests invocation history with a MySQL backend.
func TestHistoryWithMySQL(t *testing.T) {
	connStr := startMySQL(t)
	exerciseStore(t, schema.MySQLBackend, connStr)
	exerciseCLI(t, schema.MySQLBackend, connStr)
}

// TestHistoryWithPostgres tests invocation history with a PostgreSQL backend.
func TestHistoryWithPostgres(t *testing.T) {
	connStr := startPostgres(t)
	exerciseStore(t, schema.PostgreSQLBackend, connStr)
	exerciseCLI(t, schema.PostgreSQLBackend, connStr)
}

package history

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql" // MySQL driver
	"github.com/huangsam/launchpad/internal/contract"
	"github.com/huangsam/launchpad/schema"
	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
	_ "modernc.org/sqlite"             // SQLite driver
)

// invocationsTable is the name of the table holding invocation records.
const invocationsTable = "launchpad_invocations"

const selectColumns = "id, tool, query_id, result_limit, percent, started_at, duration_ms, row_count, status, error_kind, error_message"

// StoreImpl handles durable storage of invocation records using various database backends.
type StoreImpl struct {
	db      *sql.DB
	backend schema.DatabaseBackend
}

var _ contract.HistoryStore = &StoreImpl{} // Compile-time check

// driverFor returns the database/sql driver name of a backend.
func driverFor(backend schema.DatabaseBackend) (string, error) {
	switch backend {
	case schema.SQLiteBackend:
		return "sqlite", nil
	case schema.MySQLBackend:
		return "mysql", nil
	case schema.PostgreSQLBackend:
		return "pgx", nil
	default:
		return "", fmt.Errorf("unsupported history backend: %s. Must be sqlite, mysql, postgresql, or none", backend)
	}
}

// openDB opens and pings the database behind a backend.
func openDB(backend schema.DatabaseBackend, connStr string) (*sql.DB, error) {
	driverName, err := driverFor(backend)
	if err != nil {
		return nil, err
	}
	if backend == schema.SQLiteBackend && connStr == "" {
		connStr = contract.GetHistoryDBFilePath()
	}

	db, err := sql.Open(driverName, connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", backend, err)
	}
	if backend == schema.SQLiteBackend {
		// Limit SQLite to a single open connection to avoid "database is locked" errors
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to %s database. Check that the server is running and connection parameters are valid: %w", backend, err)
	}
	return db, nil
}

// NewStore opens the history store for a backend and makes sure its table exists.
func NewStore(backend schema.DatabaseBackend, connStr string) (*StoreImpl, error) {
	if backend == schema.NoneBackend {
		// No-op store for disabled history
		return &StoreImpl{backend: backend}, nil
	}

	db, err := openDB(backend, connStr)
	if err != nil {
		return nil, err
	}

	query, err := createTableQuery(backend)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	if _, err := db.Exec(query); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create table %s: %w", invocationsTable, err)
	}

	return &StoreImpl{db: db, backend: backend}, nil
}

// Record stores a single invocation.
func (s *StoreImpl) Record(rec schema.InvocationRecord) error {
	if s.db == nil {
		return nil
	}
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		quoteTableName(invocationsTable, s.backend), selectColumns, s.placeholders(11))
	_, err := s.db.Exec(query,
		rec.ID,
		rec.Tool,
		rec.QueryID,
		rec.Limit,
		rec.Percent,
		rec.StartedAt.UnixMilli(),
		rec.DurationMs,
		rec.RowCount,
		string(rec.Status),
		rec.ErrorKind,
		rec.ErrorMessage,
	)
	if err != nil {
		return fmt.Errorf("failed to record invocation: %w", err)
	}
	return nil
}

// List returns up to limit invocations, newest first. A limit <= 0 returns all of them.
func (s *StoreImpl) List(limit int) ([]schema.InvocationRecord, error) {
	if s.db == nil {
		return nil, nil
	}

	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY started_at DESC, id DESC",
		selectColumns, quoteTableName(invocationsTable, s.backend))
	var args []any
	if limit > 0 {
		query += " LIMIT " + s.placeholders(1)
		args = append(args, limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query invocations: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.InvocationRecord
	for rows.Next() {
		var rec schema.InvocationRecord
		var startedMs int64
		var status string
		if err := rows.Scan(&rec.ID, &rec.Tool, &rec.QueryID, &rec.Limit, &rec.Percent, &startedMs,
			&rec.DurationMs, &rec.RowCount, &status, &rec.ErrorKind, &rec.ErrorMessage); err != nil {
			return nil, fmt.Errorf("failed to scan invocation: %w", err)
		}
		rec.StartedAt = time.UnixMilli(startedMs).UTC()
		rec.Status = schema.InvocationStatus(status)
		results = append(results, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating invocations: %w", err)
	}
	return results, nil
}

// GetStatus returns status information about the history store.
func (s *StoreImpl) GetStatus() (schema.HistoryStatus, error) {
	status := schema.HistoryStatus{
		Backend:   string(s.backend),
		Connected: s.db != nil,
		PerTool:   make(map[string]int),
	}
	if s.db == nil {
		return status, nil
	}

	table := quoteTableName(invocationsTable, s.backend)

	// Get totals
	row := s.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", table))
	if err := row.Scan(&status.TotalRecords); err != nil {
		return status, fmt.Errorf("failed to get total invocations: %w", err)
	}
	if status.TotalRecords == 0 {
		return status, nil
	}

	row = s.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE status = %s", table, s.placeholders(1)), string(schema.StatusError))
	if err := row.Scan(&status.ErrorRecords); err != nil {
		return status, fmt.Errorf("failed to get failed invocations: %w", err)
	}

	// Get time range
	var lastMs, oldestMs int64
	row = s.db.QueryRow(fmt.Sprintf("SELECT MAX(started_at), MIN(started_at) FROM %s", table))
	if err := row.Scan(&lastMs, &oldestMs); err != nil {
		return status, fmt.Errorf("failed to get invocation time range: %w", err)
	}
	status.LastRecordTime = time.UnixMilli(lastMs).UTC()
	status.OldestRecordTime = time.UnixMilli(oldestMs).UTC()

	// Get per-tool counts
	rows, err := s.db.Query(fmt.Sprintf("SELECT tool, COUNT(*) FROM %s GROUP BY tool", table))
	if err != nil {
		return status, fmt.Errorf("failed to get per-tool counts: %w", err)
	}
	defer func() { _ = rows.Close() }()
	for rows.Next() {
		var tool string
		var count int
		if err := rows.Scan(&tool, &count); err != nil {
			return status, fmt.Errorf("failed to scan per-tool count: %w", err)
		}
		status.PerTool[tool] = count
	}
	if err := rows.Err(); err != nil {
		return status, fmt.Errorf("error iterating per-tool counts: %w", err)
	}

	return status, nil
}

// Clear removes every stored invocation.
func (s *StoreImpl) Clear() error {
	if s.db == nil {
		return nil
	}
	if _, err := s.db.Exec(fmt.Sprintf("DELETE FROM %s", quoteTableName(invocationsTable, s.backend))); err != nil {
		return fmt.Errorf("failed to clear invocations: %w", err)
	}
	return nil
}

// Close closes the underlying DB connection.
func (s *StoreImpl) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// placeholders returns n comma-separated parameter placeholders for the backend.
func (s *StoreImpl) placeholders(n int) string {
	parts := make([]string, n)
	for i := range parts {
		if s.backend == schema.PostgreSQLBackend {
			parts[i] = "$" + strconv.Itoa(i+1)
		} else {
			parts[i] = "?"
		}
	}
	return strings.Join(parts, ", ")
}

// quoteTableName returns the properly quoted table name for the given backend.
func quoteTableName(name string, backend schema.DatabaseBackend) string {
	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf("`%s`", name)
	default: // SQLite and PostgreSQL
		return fmt.Sprintf("%q", name)
	}
}

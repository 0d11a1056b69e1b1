package history

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/mysql"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/huangsam/launchpad/schema"
)

//go:embed migrations
var migrationsFS embed.FS

// createTableFile is the first migration, also applied directly by NewStore.
const createTableFile = "1_create_invocations.up.sql"

// migrationDir returns the embedded migrations directory of a backend.
func migrationDir(backend schema.DatabaseBackend) (string, error) {
	switch backend {
	case schema.SQLiteBackend:
		return "migrations/sqlite", nil
	case schema.MySQLBackend:
		return "migrations/mysql", nil
	case schema.PostgreSQLBackend:
		return "migrations/postgres", nil
	default:
		return "", fmt.Errorf("unsupported backend: %s", backend)
	}
}

// createTableQuery returns the CREATE TABLE statement for the given backend.
func createTableQuery(backend schema.DatabaseBackend) (string, error) {
	dir, err := migrationDir(backend)
	if err != nil {
		return "", err
	}
	data, err := migrationsFS.ReadFile(dir + "/" + createTableFile)
	if err != nil {
		return "", fmt.Errorf("failed to read schema for %s: %w", backend, err)
	}
	return string(data), nil
}

// migrateDriver wraps an open database in the matching migrate driver.
func migrateDriver(db *sql.DB, backend schema.DatabaseBackend) (database.Driver, error) {
	switch backend {
	case schema.SQLiteBackend:
		return sqlite.WithInstance(db, &sqlite.Config{})
	case schema.MySQLBackend:
		return mysql.WithInstance(db, &mysql.Config{})
	case schema.PostgreSQLBackend:
		return postgres.WithInstance(db, &postgres.Config{})
	default:
		return nil, fmt.Errorf("unsupported backend: %s", backend)
	}
}

// Migrate runs database migrations for the history store and reports progress on out.
// - If targetVersion < 0, it migrates to the latest version.
// - If targetVersion == 0, it rolls back all migrations.
// - If targetVersion > 0, it migrates to the specified version.
func Migrate(backend schema.DatabaseBackend, connStr string, targetVersion int, out io.Writer) error {
	if backend == schema.NoneBackend || backend == "" {
		return fmt.Errorf("migrations are not supported when history is disabled")
	}
	if out == nil {
		out = os.Stdout
	}

	dir, err := migrationDir(backend)
	if err != nil {
		return err
	}

	db, err := openDB(backend, connStr)
	if err != nil {
		return err
	}

	driver, err := migrateDriver(db, backend)
	if err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to create %s migrate driver: %w", backend, err)
	}

	migrationFS, err := fs.Sub(migrationsFS, dir)
	if err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to access migrations directory: %w", err)
	}
	sourceDriver, err := iofs.New(migrationFS, ".")
	if err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to create migration source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", sourceDriver, "launchpad", driver)
	if err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	// Closing the instance also closes db
	defer func() { _, _ = m.Close() }()

	currentVersion, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("failed to get current migration version: %w", err)
	}
	if dirty {
		return fmt.Errorf("database is in a dirty state at version %d. Please fix manually or force version", currentVersion)
	}

	switch {
	case targetVersion < 0:
		err = m.Up()
	case targetVersion == 0:
		err = m.Down()
	default:
		err = m.Migrate(uint(targetVersion))
	}
	if errors.Is(err, migrate.ErrNoChange) {
		_, _ = fmt.Fprintln(out, "No migration needed. Database is already at the requested version.")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}

	newVersion, _, verr := m.Version()
	if errors.Is(verr, migrate.ErrNilVersion) {
		newVersion = 0
	}
	_, _ = fmt.Fprintf(out, "Successfully migrated from version %d to version %d\n", currentVersion, newVersion)
	return nil
}

// Version returns the current migration version, or 0 when none is applied.
func Version(backend schema.DatabaseBackend, connStr string) (uint, bool, error) {
	db, err := openDB(backend, connStr)
	if err != nil {
		return 0, false, err
	}
	driver, err := migrateDriver(db, backend)
	if err != nil {
		_ = db.Close()
		return 0, false, err
	}
	defer func() { _ = driver.Close() }()

	version, dirty, err := driver.Version()
	if err != nil {
		return 0, false, err
	}
	if version == database.NilVersion {
		return 0, dirty, nil
	}
	return uint(version), dirty, nil
}

package db

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

func init() {
	// modernc registers itself as "sqlite", which sqlx does not know by default.
	sqlx.BindDriver(DriverSQLite, sqlx.QUESTION)
}

// OpenDB opens a database for the given driver and runs migrations.
//
// For SQLite, dsn is a file path or ":memory:". File databases use WAL mode and
// foreign keys on every pooled connection. In-memory databases are limited to a
// single connection so that all statements see the same database.
//
// For PostgreSQL, dsn is passed to lib/pq unchanged.
func OpenDB(driver, dsn string) (*sqlx.DB, error) {
	var (
		database *sqlx.DB
		err      error
	)
	switch driver {
	case DriverSQLite, "":
		database, err = openSQLite(dsn)
	case DriverPostgres:
		database, err = openPostgres(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
	if err != nil {
		return nil, err
	}

	if err := Migrate(database); err != nil {
		database.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return database, nil
}

func openSQLite(path string) (*sqlx.DB, error) {
	if path == ":memory:" {
		database, err := sqlx.Open(DriverSQLite, path)
		if err != nil {
			return nil, fmt.Errorf("opening database: %w", err)
		}
		database.SetMaxOpenConns(1)
		if _, err := database.Exec("PRAGMA foreign_keys = ON"); err != nil {
			database.Close()
			return nil, fmt.Errorf("enabling foreign keys: %w", err)
		}
		return database, nil
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating db directory: %w", err)
		}
	}

	dsn := path
	if !strings.HasPrefix(dsn, "file:") {
		dsn = "file:" + dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	dsn += sep + "_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"

	database, err := sqlx.Open(DriverSQLite, dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := database.Ping(); err != nil {
		database.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	return database, nil
}

func openPostgres(dsn string) (*sqlx.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres driver requires a DSN")
	}
	database, err := sqlx.Open(DriverPostgres, dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := database.Ping(); err != nil {
		database.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	return database, nil
}

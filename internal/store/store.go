// Package store persists the topic catalog and produced weekly plans in
// SQLite or PostgreSQL.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"

	// PostgreSQL driver, used for postgres:// DSNs.
	_ "github.com/lib/pq"
	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a lookup matches no rows.
var ErrNotFound = errors.New("not found")

// Store wraps the database connection and the dialect-aware driver used
// to run built queries.
type Store struct {
	db  *sql.DB
	drv *entsql.Driver
}

// Open connects to dsn and creates missing tables. DSNs starting with
// postgres:// or postgresql:// use PostgreSQL; anything else is taken as
// a SQLite path or URI.
func Open(dsn string) (*Store, error) {
	driverName, dialectName := "sqlite", dialect.SQLite
	if isPostgres(dsn) {
		driverName, dialectName = "postgres", dialect.Postgres
	}

	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if dialectName == dialect.SQLite {
		if err := applyPragmas(db); err != nil {
			db.Close()
			return nil, fmt.Errorf("apply pragmas: %w", err)
		}
	}

	s := &Store{db: db, drv: entsql.OpenDB(dialectName, db)}
	if err := s.migrate(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("auto-migrate: %w", err)
	}
	return s, nil
}

func isPostgres(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
}

// DB returns the underlying *sql.DB for raw queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Dialect returns the SQL dialect name in use.
func (s *Store) Dialect() string {
	return s.drv.Dialect()
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.drv.Close()
}

func (s *Store) builder() *entsql.DialectBuilder {
	return entsql.Dialect(s.drv.Dialect())
}

// applyPragmas configures SQLite for single-user use.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

// DataDir resolves the directory for the database and logs:
// $XDG_DATA_HOME/studyplan, else ~/.local/share/studyplan.
func DataDir() (string, error) {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "studyplan"), nil
}

// DefaultDBPath resolves the database location in priority order:
// 1. STUDYPLAN_DB environment variable
// 2. <DataDir>/studyplan.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("STUDYPLAN_DB"); p != "" {
		return p, EnsureDir(p)
	}

	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	p := filepath.Join(dir, "studyplan.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of a SQLite path if it doesn't
// exist. PostgreSQL DSNs are left alone.
func EnsureDir(dsn string) error {
	if isPostgres(dsn) {
		return nil
	}
	return os.MkdirAll(filepath.Dir(dsn), 0o755)
}

// Package iodb implements database operations for the embedded SQLite
// store. This is an impure I/O package that implements contracts
// defined in pkg/.
package iodb

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/gnames/gnvern/pkg/config"
	"github.com/gnames/gnvern/pkg/db"
)

// sqliteOperator implements db.Operator using modernc.org/sqlite.
type sqliteOperator struct {
	db *sql.DB
}

// NewSqliteOperator creates a new database operator
// (without connecting).
func NewSqliteOperator() db.Operator {
	return &sqliteOperator{}
}

// Connect opens the database file and applies the pragmas the engine
// depends on: WAL for read-concurrency during batch scans, foreign
// keys for cascade deletes, a busy timeout so read-side queries wait
// out short writer locks instead of failing.
func (s *sqliteOperator) Connect(
	ctx context.Context,
	cfg *config.DatabaseConfig,
) error {
	if cfg.Path == "" {
		return PathError("", nil)
	}
	// An unresolvable path is a fatal configuration error, reported
	// before any ingest begins.
	dir := filepath.Dir(cfg.Path)
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return PathError(cfg.Path, err)
	}

	handle, err := sql.Open("sqlite", cfg.Path)
	if err != nil {
		return ConnectionError(cfg.Path, err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err := handle.ExecContext(ctx, pragma); err != nil {
			handle.Close()
			return ConnectionError(cfg.Path, err)
		}
	}

	if err := handle.PingContext(ctx); err != nil {
		handle.Close()
		return ConnectionError(cfg.Path, err)
	}

	s.db = handle
	return nil
}

// Close releases the database handle.
func (s *sqliteOperator) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// DB returns the underlying *sql.DB for lifecycle components.
func (s *sqliteOperator) DB() *sql.DB {
	return s.db
}

// TableExists checks if a table exists in the database.
func (s *sqliteOperator) TableExists(
	ctx context.Context,
	tableName string,
) (bool, error) {
	if s.db == nil {
		return false, NotConnectedError()
	}

	query := `
		SELECT EXISTS (
			SELECT 1 FROM sqlite_master
			WHERE type = 'table' AND name = ?
		)
	`

	var exists bool
	err := s.db.QueryRowContext(ctx, query, tableName).Scan(&exists)
	if err != nil {
		return false, TableCheckError(tableName, err)
	}

	return exists, nil
}

// HasTables checks if the database has any user tables.
func (s *sqliteOperator) HasTables(ctx context.Context) (bool, error) {
	if s.db == nil {
		return false, NotConnectedError()
	}

	query := `
		SELECT EXISTS (
			SELECT 1 FROM sqlite_master
			WHERE type = 'table' AND name NOT LIKE 'sqlite_%'
		)
	`

	var hasTables bool
	err := s.db.QueryRowContext(ctx, query).Scan(&hasTables)
	if err != nil {
		return false, TableCheckError("", err)
	}

	return hasTables, nil
}

// DropAllTables drops all user tables.
func (s *sqliteOperator) DropAllTables(ctx context.Context) error {
	if s.db == nil {
		return NotConnectedError()
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT name FROM sqlite_master
		WHERE type = 'table' AND name NOT LIKE 'sqlite_%'
	`)
	if err != nil {
		return TableCheckError("", err)
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return TableCheckError("", err)
		}
		tables = append(tables, name)
	}
	if err := rows.Err(); err != nil {
		return TableCheckError("", err)
	}

	// Foreign keys off for the duration: drop order is arbitrary.
	if _, err := s.db.ExecContext(ctx, "PRAGMA foreign_keys=OFF"); err != nil {
		return DropTableError("", err)
	}
	for _, table := range tables {
		if _, err := s.db.ExecContext(ctx, "DROP TABLE IF EXISTS "+table); err != nil {
			return DropTableError(table, err)
		}
	}
	if _, err := s.db.ExecContext(ctx, "PRAGMA foreign_keys=ON"); err != nil {
		return DropTableError("", err)
	}

	return nil
}

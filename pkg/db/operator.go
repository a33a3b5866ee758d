package db

import (
	"context"
	"database/sql"

	"github.com/gnames/gnvern/pkg/config"
)

// DBTX is the subset of database/sql shared by *sql.DB and *sql.Tx.
// Registry and resolver methods take it so they run equally inside a
// batch transaction or against the bare handle.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Operator defines the interface for basic database management
// operations. It owns connection lifecycle and exposes the *sql.DB for
// lifecycle components (SchemaManager, Ingester, Resolver, Reporter) to
// execute their specialized SQL internally.
//
// Design rationale:
// - Keeps the interface minimal to avoid bloat with mixed semantics
// - DB() gives components transactions and set-based queries directly
// - Schema creation lives in the SchemaManager, not here
type Operator interface {
	// Connect opens the embedded database file, enables WAL and
	// foreign-key enforcement, and verifies the connection.
	Connect(context.Context, *config.DatabaseConfig) error

	// Close closes the database handle.
	Close() error

	// DB returns the underlying *sql.DB for lifecycle components.
	DB() *sql.DB

	// TableExists checks if a table exists in the database.
	TableExists(ctx context.Context, tableName string) (bool, error)

	// HasTables checks if the database has any user tables.
	// Used to decide whether schema creation should prompt.
	HasTables(ctx context.Context) (bool, error)

	// DropAllTables drops all user tables.
	// Used during schema initialization when overwriting existing data.
	DropAllTables(ctx context.Context) error
}

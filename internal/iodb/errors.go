package iodb

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/gnvern/pkg/errcode"
)

// PathError creates an error for an unresolvable database path.
func PathError(path string, err error) error {
	msg := `Cannot resolve database path

<em>Path:</em> %s

<em>How to fix:</em>
  1. Set database.path in config.yaml (or GNVERN_DATABASE_PATH)
  2. Make sure the parent directory exists`

	vars := []any{path}

	if err == nil {
		err = fmt.Errorf("database path is not usable: %q", path)
	}
	return &gn.Error{
		Code: errcode.DBPathError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("bad database path: %w", err),
	}
}

// ConnectionError creates an error for a failed database open.
func ConnectionError(path string, err error) error {
	msg := `Cannot open database

<em>Path:</em> %s

<em>Possible causes:</em>
  - File is corrupted or not a SQLite database
  - Permission denied
  - Disk is full`

	vars := []any{path}

	return &gn.Error{
		Code: errcode.DBConnectionError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("failed to open database: %w", err),
	}
}

// NotConnectedError creates an error for operations attempted without a
// database connection.
func NotConnectedError() error {
	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  "Operation attempted without database connection",
		Vars: nil,
		Err:  fmt.Errorf("not connected to database"),
	}
}

// TableCheckError creates an error for failed table-existence queries.
func TableCheckError(table string, err error) error {
	msg := `Failed to inspect database tables`
	if table != "" {
		msg = fmt.Sprintf("Failed to check table <em>%s</em>", table)
	}
	return &gn.Error{
		Code: errcode.DBTableCheckError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("table check failed: %w", err),
	}
}

// DropTableError creates an error for failed table drops.
func DropTableError(table string, err error) error {
	msg := `Failed to drop table <em>%s</em>`
	vars := []any{table}
	return &gn.Error{
		Code: errcode.SchemaDropError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("failed to drop table %s: %w", table, err),
	}
}

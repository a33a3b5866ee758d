package ioschema

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/gnvern/pkg/errcode"
)

// NotConnectedError creates an error for schema operations attempted
// without a database connection.
func NotConnectedError() error {
	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  "Schema operation attempted without database connection",
		Vars: nil,
		Err:  fmt.Errorf("not connected to database"),
	}
}

// CreateError creates an error for failed table/index creation.
func CreateError(table string, err error) error {
	msg := `Failed to create table <em>%s</em>

<em>Possible causes:</em>
  - Database file is read-only
  - Existing table with incompatible layout (try 'gnvern init --force')`

	vars := []any{table}

	return &gn.Error{
		Code: errcode.SchemaCreateError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("failed to create %s: %w", table, err),
	}
}

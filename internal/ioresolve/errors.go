package ioresolve

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/gnvern/pkg/errcode"
)

// NotConnectedError creates an error for when resolution is attempted
// without a database connection.
func NotConnectedError() error {
	msg := "Resolve operation attempted without database connection"

	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("not connected to database"),
	}
}

// AmbiguityError creates an error for ambiguity-detection failures.
func AmbiguityError(err error) error {
	msg := "Failed to compute ambiguous names"

	return &gn.Error{
		Code: errcode.ResolveAmbiguityError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("ambiguity query: %w", err),
	}
}

// SelectionError creates an error for best-name selection failures.
func SelectionError(taxonID int64, err error) error {
	msg := `Failed to select best name for taxon <em>%d</em>`
	vars := []any{taxonID}

	return &gn.Error{
		Code: errcode.ResolveSelectionError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("selection for taxon %d: %w", taxonID, err),
	}
}

// CapsRulesError creates an error for caps-rule store failures.
func CapsRulesError(operation string, err error) error {
	msg := `Caps rules operation failed: <em>%s</em>`
	vars := []any{operation}

	return &gn.Error{
		Code: errcode.ResolveCapsRulesError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("caps rules %s: %w", operation, err),
	}
}

// ConflictsError creates an error for conflict-rebuild failures.
func ConflictsError(operation string, err error) error {
	msg := `Conflict rebuild failed: <em>%s</em>`
	vars := []any{operation}

	return &gn.Error{
		Code: errcode.ResolveConflictsError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("conflicts %s: %w", operation, err),
	}
}

// TxError creates an error for transaction failures during resolution.
func TxError(operation string, err error) error {
	msg := `Transaction failed during resolution: <em>%s</em>`
	vars := []any{operation}

	return &gn.Error{
		Code: errcode.ResolveSelectionError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("resolve transaction %s: %w", operation, err),
	}
}

// CancelledError creates an error for when resolution is cancelled.
func CancelledError(err error) error {
	msg := "Resolution was cancelled"

	return &gn.Error{
		Code: errcode.UnknownError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("resolution cancelled: %w", err),
	}
}

package ioreport

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/gnvern/pkg/errcode"
)

// NotConnectedError creates an error for when a report is requested
// without a database connection.
func NotConnectedError() error {
	msg := "Report requested without database connection"

	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("not connected to database"),
	}
}

// UnknownTypeError creates an error for an unrecognized report type.
func UnknownTypeError(kind string) error {
	msg := `Unknown report type <em>%s</em>

<em>Available types:</em>
  ambiguous, ambiguous-iucn, caps, wiki-disambig, iucn-preferred,
  trace, summary`

	vars := []any{kind}

	return &gn.Error{
		Code: errcode.ReportUnknownTypeError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("unknown report type: %s", kind),
	}
}

// QueryError creates an error for report query failures.
func QueryError(operation string, err error) error {
	msg := `Report query failed: <em>%s</em>`
	vars := []any{operation}

	return &gn.Error{
		Code: errcode.ReportQueryError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("%s: %w", operation, err),
	}
}

// TraceNotFoundError creates an error for when the traced scientific
// name resolves to no taxon.
func TraceNotFoundError(name string) error {
	msg := `No taxon found for scientific name <em>%s</em>

<em>How to fix:</em>
  1. Check the spelling of the scientific name
  2. Run 'gnvern ingest' if the store is empty
  3. Try the accepted name; synonyms resolve only when ingested
     with --include-synonyms`

	vars := []any{name}

	return &gn.Error{
		Code: errcode.ReportTraceNotFoundError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("no taxon for name: %s", name),
	}
}

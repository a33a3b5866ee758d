package ioingest

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/gnvern/pkg/errcode"
)

// NotConnectedError creates an error for when ingest is attempted
// without a database connection.
func NotConnectedError() error {
	msg := "Ingest operation attempted without database connection"

	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("not connected to database"),
	}
}

// NoSourcesError creates an error for when no matching
// data sources are found.
func NoSourcesError(requested []string) error {
	msg := `No data sources found matching requested names

<em>Requested:</em> %v

<em>How to fix:</em>
  1. Check available sources: review sources.yaml
  2. Verify source names are correct (iucn, wikidata, wikipedia, col)`

	vars := []any{requested}

	return &gn.Error{
		Code: errcode.IngestNoSourcesError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf(
			"no sources found matching names: %v",
			requested),
	}
}

// CacheOpenError creates an error for when a source cache
// database cannot be opened.
func CacheOpenError(source, path string, err error) error {
	msg := `Cannot open cache database for source <em>%s</em>

<em>Cache path:</em> %s

<em>Possible causes:</em>
  - Cache file not downloaded
  - File is corrupted
  - Permission denied

<em>How to fix:</em>
  1. Verify the cache file exists and is readable
  2. Re-download the cache if corrupted
  3. Check the cache path in sources.yaml`

	vars := []any{source, path}

	return &gn.Error{
		Code: errcode.IngestCacheOpenError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("failed to open cache for %s: %w", source, err),
	}
}

// TxError creates an error for transaction failures during ingest.
func TxError(source, operation string, err error) error {
	msg := `Transaction failed during ingest of source <em>%s</em>

<em>Operation:</em> %s`

	vars := []any{source, operation}

	return &gn.Error{
		Code: errcode.IngestTxError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("ingest transaction %s: %w", operation, err),
	}
}

// QueryError creates an error for database query failures.
func QueryError(operation string, err error) error {
	msg := `Database query failed: <em>%s</em>`

	vars := []any{operation}

	return &gn.Error{
		Code: errcode.DBQueryError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("%s: %w", operation, err),
	}
}

// RunLedgerError creates an error for import-run bookkeeping failures.
func RunLedgerError(operation string, err error) error {
	msg := `Import run ledger operation failed: <em>%s</em>`

	vars := []any{operation}

	return &gn.Error{
		Code: errcode.IngestRunLedgerError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("run ledger %s: %w", operation, err),
	}
}

// CancelledError creates an error for when ingest is cancelled.
func CancelledError(err error) error {
	msg := "Ingest operation was cancelled"

	return &gn.Error{
		Code: errcode.IngestCancelledError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("ingest cancelled: %w", err),
	}
}

// AllSourcesFailedError creates an error for when every requested
// source fails to process.
func AllSourcesFailedError(count int) error {
	msg := `Failed number of sources: <em>%d</em>`

	vars := []any{count}

	plural := "s"
	if count == 1 {
		plural = ""
	}

	return &gn.Error{
		Code: errcode.IngestAllSourcesFailedError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("%d source%s failed to process", count, plural),
	}
}

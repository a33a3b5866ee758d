// Package gnvern defines the lifecycle contracts of the application.
// Implementations live in internal/io* packages.
package gnvern

import (
	"context"
)

// Version and Build are set by build flags.
var (
	Version = "dev"
	Build   = "unknown"
)

// SchemaManager handles database schema management. Creation is
// idempotent - safe to run multiple times.
type SchemaManager interface {
	// Create creates the schema from the DDL-tagged models. When force
	// is true, existing tables are dropped first.
	Create(ctx context.Context, force bool) error
}

// Ingester imports common names from the configured source caches.
// One bad record never aborts a batch: per-record failures are counted
// and logged, and each source pass runs in a single transaction.
type Ingester interface {
	Ingest(ctx context.Context) error
}

// Resolver computes best display names and derived conflict rows.
type Resolver interface {
	// BestNames resolves one best common name per valid taxon and
	// caches the caps-corrected rendering on the winning row.
	BestNames(ctx context.Context) error

	// RebuildConflicts clears and recomputes all conflict rows.
	// Conflicts are derived data; this is their only write path.
	RebuildConflicts(ctx context.Context) error

	// SeedCapsRules loads capitalization rules from a word-per-line
	// file with provenance caps_txt.
	SeedCapsRules(ctx context.Context, path string) (int, error)
}

// Reporter renders queryable views of the aggregated data.
type Reporter interface {
	// Report writes the named report to stdout. The name argument is
	// used only by the trace report.
	Report(ctx context.Context, kind, name string) error

	// Runs lists import runs, flagging aborted ones.
	Runs(ctx context.Context) error
}

package ioingest

import (
	"context"
	"time"

	"github.com/gnames/gnvern/pkg/db"
	"github.com/gnames/gnvern/pkg/schema"
	"github.com/google/uuid"
)

// runLedger writes one import_runs row per source pass. BeginRun and
// CompleteRun run outside the ingest transaction on purpose: a crash
// mid-pass must leave the running row behind as the audit trail.
type runLedger struct{}

// BeginRun opens a ledger row for one source pass and returns its id.
func (runLedger) BeginRun(
	ctx context.Context,
	q db.DBTX,
	importType string,
) (int64, string, error) {
	runUUID := uuid.New().String()
	query := `
		INSERT INTO import_runs (uuid, import_type, started_at, status)
		VALUES (?, ?, ?, ?)
		RETURNING id
	`
	var id int64
	err := q.QueryRowContext(ctx, query,
		runUUID, importType, time.Now(), schema.RunStatusRunning,
	).Scan(&id)
	if err != nil {
		return 0, "", RunLedgerError("begin run", err)
	}
	return id, runUUID, nil
}

// CompleteRun closes a ledger row with final counters. It is the only
// path that sets ended_at; aborted runs keep status running forever.
func (runLedger) CompleteRun(
	ctx context.Context,
	q db.DBTX,
	runID int64,
	stats passStats,
	notes string,
) error {
	query := `
		UPDATE import_runs
		SET ended_at = ?, processed = ?, added = ?, updated = ?,
			errors = ?, status = ?, notes = ?
		WHERE id = ?
	`
	_, err := q.ExecContext(ctx, query,
		time.Now(), stats.processed, stats.added, stats.updated,
		stats.errors, schema.RunStatusCompleted, notes, runID,
	)
	if err != nil {
		return RunLedgerError("complete run", err)
	}
	return nil
}

// passStats accumulates counters for one source pass.
type passStats struct {
	processed int
	added     int
	updated   int
	errors    int
	skipped   int
}

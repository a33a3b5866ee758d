// Package ioreport implements the Reporter interface: read-only views
// over the aggregated store, rendered as tables on stdout.
package ioreport

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnvern/pkg/config"
	"github.com/gnames/gnvern/pkg/db"
	"github.com/gnames/gnvern/pkg/gnvern"
	"github.com/gnames/gnvern/pkg/sources"
	"github.com/olekukonko/tablewriter"
)

// Report kinds.
const (
	KindAmbiguous     = "ambiguous"
	KindAmbiguousIUCN = "ambiguous-iucn"
	KindCaps          = "caps"
	KindWikiDisambig  = "wiki-disambig"
	KindIUCNPreferred = "iucn-preferred"
	KindTrace         = "trace"
	KindSummary       = "summary"
)

const timeLayout = "2006-01-02 15:04:05"

type reporter struct {
	cfg      *config.Config
	operator db.Operator
}

// New creates a new Reporter.
func New(cfg *config.Config, op db.Operator) gnvern.Reporter {
	return &reporter{cfg: cfg, operator: op}
}

// Report dispatches one report kind to stdout. The name argument is
// consumed by the trace report only.
func (r *reporter) Report(ctx context.Context, kind, name string) error {
	conn := r.operator.DB()
	if conn == nil {
		return NotConnectedError()
	}

	switch kind {
	case KindAmbiguous:
		return r.reportAmbiguous(ctx, conn, nil, false)
	case KindAmbiguousIUCN:
		return r.reportAmbiguous(ctx, conn,
			[]string{sources.IUCN}, false)
	case KindWikiDisambig:
		return r.reportAmbiguous(ctx, conn,
			[]string{sources.WikipediaTitle, sources.WikipediaTaxobox},
			false)
	case KindIUCNPreferred:
		return r.reportAmbiguous(ctx, conn,
			[]string{sources.IUCN}, true)
	case KindCaps:
		return r.reportCaps(ctx, conn)
	case KindTrace:
		return r.reportTrace(ctx, conn, name)
	case KindSummary:
		return r.reportSummary(ctx, conn)
	}
	return UnknownTypeError(kind)
}

// Runs lists all import runs. A row still in running status is the
// audit trail of an aborted ingest and gets flagged, never repaired.
func (r *reporter) Runs(ctx context.Context) error {
	conn := r.operator.DB()
	if conn == nil {
		return NotConnectedError()
	}

	rows, err := conn.QueryContext(ctx, `
		SELECT uuid, import_type, started_at, ended_at,
			processed, added, updated, errors, status
		FROM import_runs
		ORDER BY started_at DESC, id DESC
	`)
	if err != nil {
		return QueryError("list runs", err)
	}
	defer rows.Close()

	table := tablewriter.NewTable(os.Stdout)
	table.Header("RUN", "SOURCE", "STARTED", "ENDED", "PROCESSED",
		"ADDED", "UPDATED", "ERRORS", "STATUS")

	count, stuck := 0, 0
	for rows.Next() {
		var uuid, importType, status string
		var started time.Time
		var ended sql.NullTime
		var processed, added, updated, errs int
		err := rows.Scan(&uuid, &importType, &started, &ended,
			&processed, &added, &updated, &errs, &status)
		if err != nil {
			return QueryError("scan run", err)
		}

		endedStr := ""
		if ended.Valid {
			endedStr = ended.Time.Format(timeLayout)
		}
		if status == "running" {
			status = "running (aborted?)"
			stuck++
		}
		err = table.Append(
			fmt.Sprintf("%.8s", uuid), importType,
			started.Format(timeLayout), endedStr,
			humanize.Comma(int64(processed)),
			humanize.Comma(int64(added)),
			humanize.Comma(int64(updated)),
			humanize.Comma(int64(errs)),
			status,
		)
		if err != nil {
			return QueryError("render runs", err)
		}
		count++
	}
	if err := rows.Err(); err != nil {
		return QueryError("list runs", err)
	}

	if count == 0 {
		gn.Message("No import runs recorded yet")
		return nil
	}
	if err := table.Render(); err != nil {
		return QueryError("render runs", err)
	}
	if stuck > 0 {
		gn.Warn("%d run(s) never completed; investigate and rerun", stuck)
	}
	return nil
}

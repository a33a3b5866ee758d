// Package ioresolve implements the Resolver interface: ambiguity
// detection, best-name selection and derived conflict rebuilds over the
// embedded store.
package ioresolve

import (
	"context"
	"log/slog"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/gnames/gnvern/pkg/config"
	"github.com/gnames/gnvern/pkg/db"
	"github.com/gnames/gnvern/pkg/gnvern"
)

type resolver struct {
	cfg      *config.Config
	operator db.Operator
	cache    *AmbiguityCache
}

// New creates a new Resolver with its own ambiguity cache.
func New(cfg *config.Config, op db.Operator) gnvern.Resolver {
	return &resolver{
		cfg:      cfg,
		operator: op,
		cache:    NewAmbiguityCache(),
	}
}

// BestNames resolves one best common name per valid taxon for the
// configured language and caches the caps-corrected rendering on the
// winning row. The ambiguity set is preloaded once for the whole batch.
func (r *resolver) BestNames(ctx context.Context) error {
	conn := r.operator.DB()
	if conn == nil {
		return NotConnectedError()
	}

	startTime := time.Now()
	language := r.cfg.Resolve.Language
	slog.Info("Resolving best common names",
		"language", language,
		"kingdom", r.cfg.Resolve.Kingdom,
	)

	rules, err := LoadCapsRules(ctx, conn)
	if err != nil {
		return err
	}

	filter := AmbiguityFilter{
		Language: language,
		Kingdom:  r.cfg.Resolve.Kingdom,
	}
	ambiguous, err := r.cache.Get(ctx, conn, filter)
	if err != nil {
		return err
	}
	slog.Info("Preloaded ambiguous names", "count", len(ambiguous))

	taxa, err := r.validTaxa(ctx)
	if err != nil {
		return err
	}

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return TxError("begin", err)
	}

	bar := pb.Full.Start(len(taxa))
	bar.Set("prefix", "Resolving names: ")
	bar.Set(pb.CleanOnFinish, true)

	var resolved, unresolved, flagged int
	for _, taxonID := range taxa {
		select {
		case <-ctx.Done():
			tx.Rollback()
			bar.Finish()
			return CancelledError(ctx.Err())
		default:
		}
		bar.Add(1)

		cands, err := taxonCandidates(ctx, tx, taxonID, language)
		if err != nil {
			tx.Rollback()
			bar.Finish()
			return err
		}
		sel := SelectBestName(
			cands, ambiguous, r.cfg.Resolve.AllowAmbiguous,
		)
		if sel == nil {
			unresolved++
			continue
		}
		if sel.Ambiguous {
			flagged++
		}

		display := displayName(sel.Candidate, rules)
		_, err = tx.ExecContext(ctx, `
			UPDATE common_names SET display_name = ? WHERE id = ?`,
			display, sel.Candidate.CommonNameID,
		)
		if err != nil {
			tx.Rollback()
			bar.Finish()
			return SelectionError(taxonID, err)
		}
		resolved++
	}
	bar.Finish()

	if err := tx.Commit(); err != nil {
		return TxError("commit", err)
	}
	// display_name changed; memoized sets may now be stale for
	// filters computed mid-run.
	r.cache.Invalidate()

	elapsed := time.Since(startTime)
	slog.Info("Best-name resolution complete",
		"resolved", resolved,
		"unresolved", unresolved,
		"flagged_ambiguous", flagged,
		"duration", gnfmt.TimeString(elapsed.Seconds()),
	)
	gn.Info(`Best-name resolution complete
Resolved: <em>%s</em>, without qualifying name: %s, flagged ambiguous: %s
Elapsed time: <em>%s</em>
`,
		humanize.Comma(int64(resolved)),
		humanize.Comma(int64(unresolved)),
		humanize.Comma(int64(flagged)),
		gnfmt.TimeString(elapsed.Seconds()),
	)
	return nil
}

// validTaxa lists the taxon ids eligible for resolution.
func (r *resolver) validTaxa(ctx context.Context) ([]int64, error) {
	conn := r.operator.DB()
	query := `
		SELECT id FROM taxa
		WHERE validity_status = 'valid' AND is_fossil = FALSE
	`
	args := []any{}
	if r.cfg.Resolve.Kingdom != "" {
		query += " AND kingdom = ?"
		args = append(args, r.cfg.Resolve.Kingdom)
	}
	query += " ORDER BY id"

	rows, err := conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, SelectionError(0, err)
	}
	defer rows.Close()

	var res []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, SelectionError(0, err)
		}
		res = append(res, id)
	}
	return res, rows.Err()
}

// RebuildConflicts clears and recomputes all conflict rows in one
// transaction.
func (r *resolver) RebuildConflicts(ctx context.Context) error {
	conn := r.operator.DB()
	if conn == nil {
		return NotConnectedError()
	}

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return TxError("begin", err)
	}
	now := time.Now()

	if err := ClearConflicts(ctx, tx); err != nil {
		tx.Rollback()
		return err
	}
	ambiguous, err := rebuildAmbiguous(ctx, tx, now)
	if err != nil {
		tx.Rollback()
		return err
	}
	caps, err := rebuildCapsMismatch(ctx, tx, now)
	if err != nil {
		tx.Rollback()
		return err
	}
	crossSource, err := rebuildCrossSourceMismatch(ctx, tx, now)
	if err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return TxError("commit", err)
	}

	slog.Info("Rebuilt conflicts",
		"ambiguous", ambiguous,
		"caps_mismatch", caps,
		"cross_source_mismatch", crossSource,
	)
	gn.Message(
		"<em>Conflicts rebuilt: %s ambiguous, %s caps, %s cross-source</em>",
		humanize.Comma(ambiguous),
		humanize.Comma(caps),
		humanize.Comma(crossSource),
	)
	return nil
}

// SeedCapsRules loads capitalization rules from a word-per-line file.
func (r *resolver) SeedCapsRules(
	ctx context.Context,
	path string,
) (int, error) {
	conn := r.operator.DB()
	if conn == nil {
		return 0, NotConnectedError()
	}

	count, err := seedCapsRules(ctx, conn, path)
	if err != nil {
		return count, err
	}
	slog.Info("Seeded caps rules", "count", count, "path", path)
	gn.Message("<em>Loaded %s capitalization rules</em>",
		humanize.Comma(int64(count)))
	return count, nil
}

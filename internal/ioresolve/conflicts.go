package ioresolve

import (
	"context"
	"time"

	"github.com/gnames/gnvern/pkg/db"
)

// ClearConflicts empties the conflicts table. Conflicts are derived
// data: clear-and-rebuild is their only write path.
func ClearConflicts(ctx context.Context, q db.DBTX) error {
	_, err := q.ExecContext(ctx, "DELETE FROM common_name_conflicts")
	if err != nil {
		return ConflictsError("clear", err)
	}
	return nil
}

// rebuildAmbiguous records one conflict row per (ambiguous name, extra
// owner): the lowest-id owning taxon anchors the A side, every other
// owner lands on a B side.
func rebuildAmbiguous(
	ctx context.Context,
	q db.DBTX,
	now time.Time,
) (int64, error) {
	query := `
		WITH owners AS (
			SELECT cn.normalized_name, cn.language, cn.taxon_id,
				MIN(cn.id) AS cn_id
			FROM common_names cn
			JOIN taxa t ON t.id = cn.taxon_id
			WHERE t.validity_status = 'valid' AND t.is_fossil = FALSE
			GROUP BY cn.normalized_name, cn.language, cn.taxon_id
		),
		anchors AS (
			SELECT normalized_name, language,
				MIN(taxon_id) AS anchor_taxon
			FROM owners
			GROUP BY normalized_name, language
			HAVING COUNT(*) > 1
		)
		INSERT INTO common_name_conflicts (
			normalized_name, conflict_type,
			taxon_a_id, common_name_a_id,
			taxon_b_id, common_name_b_id, created_at
		)
		SELECT o1.normalized_name, 'ambiguous',
			o1.taxon_id, o1.cn_id, o2.taxon_id, o2.cn_id, ?
		FROM anchors an
		JOIN owners o1
			ON o1.normalized_name = an.normalized_name
			AND o1.language = an.language
			AND o1.taxon_id = an.anchor_taxon
		JOIN owners o2
			ON o2.normalized_name = an.normalized_name
			AND o2.language = an.language
			AND o2.taxon_id > an.anchor_taxon
	`
	res, err := q.ExecContext(ctx, query, now)
	if err != nil {
		return 0, ConflictsError("rebuild ambiguous", err)
	}
	return res.RowsAffected()
}

// rebuildCapsMismatch records rows where sources agree on a name but
// disagree on its rendering: same taxon, same comparison key, different
// raw strings.
func rebuildCapsMismatch(
	ctx context.Context,
	q db.DBTX,
	now time.Time,
) (int64, error) {
	query := `
		INSERT INTO common_name_conflicts (
			normalized_name, conflict_type,
			taxon_a_id, common_name_a_id,
			taxon_b_id, common_name_b_id, created_at
		)
		SELECT a.normalized_name, 'caps_mismatch',
			a.taxon_id, a.id, b.taxon_id, b.id, ?
		FROM common_names a
		JOIN common_names b
			ON b.taxon_id = a.taxon_id
			AND b.normalized_name = a.normalized_name
			AND b.language = a.language
			AND b.id > a.id
			AND b.raw_name <> a.raw_name
		JOIN taxa t ON t.id = a.taxon_id
		WHERE t.validity_status = 'valid'
			AND a.id = (
				SELECT MIN(c.id) FROM common_names c
				WHERE c.taxon_id = a.taxon_id
					AND c.normalized_name = a.normalized_name
					AND c.language = a.language
			)
	`
	res, err := q.ExecContext(ctx, query, now)
	if err != nil {
		return 0, ConflictsError("rebuild caps mismatch", err)
	}
	return res.RowsAffected()
}

// rebuildCrossSourceMismatch records taxa whose preferred names from
// different sources disagree outright.
func rebuildCrossSourceMismatch(
	ctx context.Context,
	q db.DBTX,
	now time.Time,
) (int64, error) {
	query := `
		INSERT INTO common_name_conflicts (
			normalized_name, conflict_type,
			taxon_a_id, common_name_a_id,
			taxon_b_id, common_name_b_id, created_at
		)
		SELECT a.normalized_name, 'cross_source_mismatch',
			a.taxon_id, a.id, b.taxon_id, b.id, ?
		FROM common_names a
		JOIN common_names b
			ON b.taxon_id = a.taxon_id
			AND b.language = a.language
			AND b.source > a.source
			AND b.normalized_name <> a.normalized_name
		JOIN taxa t ON t.id = a.taxon_id
		WHERE t.validity_status = 'valid'
			AND a.is_preferred = TRUE
			AND b.is_preferred = TRUE
	`
	res, err := q.ExecContext(ctx, query, now)
	if err != nil {
		return 0, ConflictsError("rebuild cross source mismatch", err)
	}
	return res.RowsAffected()
}

package ioresolve

import (
	"context"
	"strings"

	"github.com/gnames/gnvern/pkg/db"
)

// AmbiguityFilter restricts which common-name rows participate in
// ambiguity detection. Language is required; the rest narrows the row
// set without changing the algorithm.
type AmbiguityFilter struct {
	// Language is the ISO 639-1 code of the rows to group.
	Language string

	// Kingdom, when set, is an exact filter on the owning taxon.
	Kingdom string

	// Sources, when non-empty, restricts rows to a source subset.
	Sources []string

	// PreferredOnly restricts rows to those flagged is_preferred.
	PreferredOnly bool
}

// key renders the filter as a cache key.
func (f AmbiguityFilter) key() string {
	parts := []string{
		f.Language, f.Kingdom, strings.Join(f.Sources, ","),
	}
	if f.PreferredOnly {
		parts = append(parts, "preferred")
	}
	return strings.Join(parts, "|")
}

// ComputeAmbiguousNames returns every normalized common name owned by
// more than one distinct valid, non-fossil taxon under the filter. A
// pure function of current store state; memoization belongs to
// AmbiguityCache, not here.
func ComputeAmbiguousNames(
	ctx context.Context,
	q db.DBTX,
	f AmbiguityFilter,
) (map[string]bool, error) {
	query := `
		SELECT cn.normalized_name
		FROM common_names cn
		JOIN taxa t ON t.id = cn.taxon_id
		WHERE cn.language = ?
			AND t.validity_status = 'valid'
			AND t.is_fossil = FALSE
	`
	args := []any{f.Language}

	if f.Kingdom != "" {
		query += " AND t.kingdom = ?"
		args = append(args, f.Kingdom)
	}
	if len(f.Sources) > 0 {
		query += " AND cn.source IN (" +
			strings.TrimRight(
				strings.Repeat("?,", len(f.Sources)), ",") + ")"
		for _, s := range f.Sources {
			args = append(args, s)
		}
	}
	if f.PreferredOnly {
		query += " AND cn.is_preferred = TRUE"
	}
	query += `
		GROUP BY cn.normalized_name
		HAVING COUNT(DISTINCT cn.taxon_id) > 1
	`

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, AmbiguityError(err)
	}
	defer rows.Close()

	res := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, AmbiguityError(err)
		}
		res[name] = true
	}
	if err := rows.Err(); err != nil {
		return nil, AmbiguityError(err)
	}
	return res, nil
}

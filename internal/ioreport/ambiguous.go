package ioreport

import (
	"context"
	"database/sql"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/olekukonko/tablewriter"
)

// reportAmbiguous renders the names owned by more than one valid,
// non-fossil taxon. The source subset and preferred flag narrow the
// participating rows; the grouping never changes.
func (r *reporter) reportAmbiguous(
	ctx context.Context,
	conn *sql.DB,
	sourceSubset []string,
	preferredOnly bool,
) error {
	query := `
		SELECT cn.normalized_name,
			COUNT(DISTINCT cn.taxon_id),
			GROUP_CONCAT(DISTINCT t.canonical_name)
		FROM common_names cn
		JOIN taxa t ON t.id = cn.taxon_id
		WHERE cn.language = ?
			AND t.validity_status = 'valid'
			AND t.is_fossil = FALSE
	`
	args := []any{r.cfg.Resolve.Language}

	if r.cfg.Resolve.Kingdom != "" {
		query += " AND t.kingdom = ?"
		args = append(args, r.cfg.Resolve.Kingdom)
	}
	if len(sourceSubset) > 0 {
		query += " AND cn.source IN (" +
			strings.TrimRight(
				strings.Repeat("?,", len(sourceSubset)), ",") + ")"
		for _, s := range sourceSubset {
			args = append(args, s)
		}
	}
	if preferredOnly {
		query += " AND cn.is_preferred = TRUE"
	}
	query += `
		GROUP BY cn.normalized_name
		HAVING COUNT(DISTINCT cn.taxon_id) > 1
		ORDER BY COUNT(DISTINCT cn.taxon_id) DESC, cn.normalized_name
	`

	rows, err := conn.QueryContext(ctx, query, args...)
	if err != nil {
		return QueryError("ambiguous names", err)
	}
	defer rows.Close()

	table := tablewriter.NewTable(os.Stdout)
	table.Header("COMMON NAME", "TAXA", "OWNERS")

	count := 0
	for rows.Next() {
		var name, taxa string
		var owners int
		if err := rows.Scan(&name, &owners, &taxa); err != nil {
			return QueryError("scan ambiguous name", err)
		}
		err := table.Append(name, humanize.Comma(int64(owners)),
			strings.ReplaceAll(taxa, ",", ", "))
		if err != nil {
			return QueryError("render ambiguous names", err)
		}
		count++
	}
	if err := rows.Err(); err != nil {
		return QueryError("ambiguous names", err)
	}

	if count == 0 {
		gn.Message("No ambiguous names for language <em>%s</em>",
			r.cfg.Resolve.Language)
		return nil
	}
	if err := table.Render(); err != nil {
		return QueryError("render ambiguous names", err)
	}
	gn.Message("<em>%s ambiguous name(s)</em>",
		humanize.Comma(int64(count)))
	return nil
}

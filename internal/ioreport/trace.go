package ioreport

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"

	"github.com/gnames/gn"
	"github.com/gnames/gnvern/internal/ioresolve"
	"github.com/gnames/gnvern/pkg/names"
	"github.com/gnames/gnvern/pkg/sources"
	"github.com/olekukonko/tablewriter"
)

// reportTrace explains best-name selection for one scientific name:
// every candidate with its priority, and why each lost or won.
func (r *reporter) reportTrace(
	ctx context.Context,
	conn *sql.DB,
	name string,
) error {
	if name == "" {
		return TraceNotFoundError(name)
	}

	taxonID, canonical, err := r.findTaxon(ctx, conn, name)
	if err != nil {
		return err
	}

	language := r.cfg.Resolve.Language
	ambiguous, err := ioresolve.ComputeAmbiguousNames(ctx, conn,
		ioresolve.AmbiguityFilter{
			Language: language,
			Kingdom:  r.cfg.Resolve.Kingdom,
		})
	if err != nil {
		return err
	}

	cands, err := r.traceCandidates(ctx, conn, taxonID, language)
	if err != nil {
		return err
	}

	gn.Info("Taxon <em>%s</em> (id %d), language <em>%s</em>",
		canonical, taxonID, language)
	if len(cands) == 0 {
		gn.Message("No common-name candidates for this language")
		return nil
	}

	ioresolve.SortCandidates(cands)
	sel := ioresolve.SelectBestName(
		cands, ambiguous, r.cfg.Resolve.AllowAmbiguous,
	)

	table := tablewriter.NewTable(os.Stdout)
	table.Header("RANK", "NAME", "SOURCE", "PRIORITY", "PREFERRED",
		"UUID", "VERDICT")

	for i, c := range cands {
		verdict := "outranked"
		switch {
		case sel != nil && c.CommonNameID == sel.Candidate.CommonNameID:
			verdict = "chosen"
			if sel.Ambiguous {
				verdict = "chosen (ambiguous)"
			}
		case ambiguous[c.NormalizedName]:
			verdict = "rejected: ambiguous"
		}

		preferred := ""
		if c.Preferred {
			preferred = "yes"
		}
		err := table.Append(
			fmt.Sprintf("%d", i+1),
			c.RawName,
			c.Source,
			fmt.Sprintf("%d", sources.Priority(c.Source, c.Preferred)),
			preferred,
			c.NameUUID,
			verdict,
		)
		if err != nil {
			return QueryError("render trace", err)
		}
	}
	if err := table.Render(); err != nil {
		return QueryError("render trace", err)
	}

	if sel == nil {
		gn.Warn("No candidate qualifies: all names are ambiguous " +
			"and --allow-ambiguous is off")
	}
	return nil
}

// findTaxon resolves a scientific name to a taxon: canonical name
// first, synonym index second.
func (r *reporter) findTaxon(
	ctx context.Context,
	conn *sql.DB,
	name string,
) (int64, string, error) {
	norm := names.NormalizeScientificName(name)

	var id int64
	var canonical string
	err := conn.QueryRowContext(ctx, `
		SELECT id, canonical_name FROM taxa
		WHERE canonical_name = ? AND validity_status = 'valid'
		ORDER BY id LIMIT 1`, norm,
	).Scan(&id, &canonical)
	if err == nil {
		return id, canonical, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, "", QueryError("trace taxon lookup", err)
	}

	err = conn.QueryRowContext(ctx, `
		SELECT t.id, t.canonical_name
		FROM scientific_name_synonyms s
		JOIN taxa t ON t.id = s.taxon_id
		WHERE s.normalized_name = ? AND t.validity_status = 'valid'
		ORDER BY t.id LIMIT 1`, norm,
	).Scan(&id, &canonical)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, "", TraceNotFoundError(name)
	}
	if err != nil {
		return 0, "", QueryError("trace synonym lookup", err)
	}
	return id, canonical, nil
}

// traceCandidates loads the taxon's candidates with their name UUIDs.
func (r *reporter) traceCandidates(
	ctx context.Context,
	conn *sql.DB,
	taxonID int64,
	language string,
) ([]ioresolve.Candidate, error) {
	rows, err := conn.QueryContext(ctx, `
		SELECT id, raw_name, normalized_name,
			COALESCE(display_name, ''), source, language,
			is_preferred, name_uuid
		FROM common_names
		WHERE taxon_id = ? AND language = ?`, taxonID, language)
	if err != nil {
		return nil, QueryError("trace candidates", err)
	}
	defer rows.Close()

	var res []ioresolve.Candidate
	for rows.Next() {
		var c ioresolve.Candidate
		err := rows.Scan(
			&c.CommonNameID, &c.RawName, &c.NormalizedName,
			&c.DisplayName, &c.Source, &c.Language, &c.Preferred,
			&c.NameUUID,
		)
		if err != nil {
			return nil, QueryError("trace candidates", err)
		}
		res = append(res, c)
	}
	return res, rows.Err()
}

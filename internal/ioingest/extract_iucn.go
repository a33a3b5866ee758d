package ioingest

import (
	"context"
	"log/slog"

	"github.com/antonholmquist/jason"
	"github.com/gnames/gnvern/pkg/db"
	"github.com/gnames/gnvern/pkg/sources"
)

// extractIUCN walks the iucn assessments cache. Each assessment payload
// carries the taxon's scientific name plus a common_names array where
// exactly one entry per language may be flagged main.
func extractIUCN(
	ctx context.Context,
	cache db.DBTX,
	limit int,
	fn func(Extraction, error) error,
) error {
	query := `SELECT record_id, taxon_key, payload FROM assessments`
	if limit > 0 {
		query += " LIMIT ?"
	}
	var args []any
	if limit > 0 {
		args = append(args, limit)
	}

	rows, err := cache.QueryContext(ctx, query, args...)
	if err != nil {
		return QueryError("read iucn assessments", err)
	}
	defer rows.Close()

	for rows.Next() {
		select {
		case <-ctx.Done():
			return CancelledError(ctx.Err())
		default:
		}

		var recordID, taxonKey string
		var payload []byte
		if err := rows.Scan(&recordID, &taxonKey, &payload); err != nil {
			return QueryError("scan iucn assessment", err)
		}

		ext, err := parseIUCNAssessment(recordID, taxonKey, payload)
		if err := fn(ext, err); err != nil {
			return err
		}
	}
	return rows.Err()
}

// parseIUCNAssessment extracts the scientific name and vernacular
// candidates from one assessment payload. A payload without a
// scientific name is a parse failure, not a skip.
func parseIUCNAssessment(
	recordID, taxonKey string,
	payload []byte,
) (Extraction, error) {
	obj, err := jason.NewObjectFromBytes(payload)
	if err != nil {
		return Extraction{}, err
	}

	sciName, err := obj.GetString("taxon", "scientific_name")
	if err != nil {
		return Extraction{}, err
	}

	ext := Extraction{ScientificName: sciName}
	if kingdom, err := obj.GetString("taxon", "kingdom"); err == nil {
		ext.Kingdom = kingdom
	}
	if taxonKey != "" {
		ext.ExternalIDs = map[string]string{sources.IUCN: taxonKey}
	}

	names, err := obj.GetObjectArray("common_names")
	if err != nil {
		// Assessments without vernaculars are normal.
		return ext, nil
	}

	ident := recordID
	if taxonKey != "" {
		ident = taxonKey
	}

	for _, n := range names {
		name, err := n.GetString("name")
		if err != nil || name == "" {
			continue
		}
		lang, _ := n.GetString("language")
		main, err := n.GetBoolean("main")
		if err != nil {
			main = false
		}
		ext.Candidates = append(ext.Candidates, Candidate{
			Name:       name,
			Language:   lang,
			Source:     sources.IUCN,
			Preferred:  main,
			Identifier: ident,
		})
	}

	if len(ext.Candidates) == 0 {
		slog.Debug("IUCN assessment without usable common names",
			"record_id", recordID,
			"scientific_name", sciName,
		)
	}
	return ext, nil
}

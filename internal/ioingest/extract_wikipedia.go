package ioingest

import (
	"context"
	"strings"

	"github.com/gnames/gnvern/pkg/db"
	"github.com/gnames/gnvern/pkg/names"
	"github.com/gnames/gnvern/pkg/sources"
)

// extractWikipedia walks the pages cache: plain row tuples, one page
// per row. The page title, stripped of its disambiguation suffix,
// becomes a wikipedia_title candidate; the taxobox "name" field a
// wikipedia_taxobox one. Rows without a scientific name are parse
// failures.
func extractWikipedia(
	ctx context.Context,
	cache db.DBTX,
	limit int,
	fn func(Extraction, error) error,
) error {
	query := `
		SELECT page_id, title, taxobox_name, scientific_name, language
		FROM pages
	`
	if limit > 0 {
		query += " LIMIT ?"
	}
	var args []any
	if limit > 0 {
		args = append(args, limit)
	}

	rows, err := cache.QueryContext(ctx, query, args...)
	if err != nil {
		return QueryError("read wikipedia pages", err)
	}
	defer rows.Close()

	for rows.Next() {
		select {
		case <-ctx.Done():
			return CancelledError(ctx.Err())
		default:
		}

		var pageID, title, taxoboxName, sciName, lang string
		err := rows.Scan(&pageID, &title, &taxoboxName, &sciName, &lang)
		if err != nil {
			return QueryError("scan wikipedia page", err)
		}

		ext, perr := parseWikipediaPage(
			pageID, title, taxoboxName, sciName, lang,
		)
		if err := fn(ext, perr); err != nil {
			return err
		}
	}
	return rows.Err()
}

func parseWikipediaPage(
	pageID, title, taxoboxName, sciName, lang string,
) (Extraction, error) {
	if strings.TrimSpace(sciName) == "" {
		return Extraction{}, errNoScientificName
	}

	ext := Extraction{ScientificName: sciName}

	if t := names.RemoveDisambiguationSuffix(title); t != "" {
		ext.Candidates = append(ext.Candidates, Candidate{
			Name:       t,
			Language:   lang,
			Source:     sources.WikipediaTitle,
			Identifier: pageID,
		})
	}
	if taxoboxName != "" {
		ext.Candidates = append(ext.Candidates, Candidate{
			Name:       taxoboxName,
			Language:   lang,
			Source:     sources.WikipediaTaxobox,
			Identifier: pageID,
		})
	}
	return ext, nil
}

package ioingest

import (
	"context"

	"github.com/antonholmquist/jason"
	"github.com/gnames/gnvern/pkg/db"
	"github.com/gnames/gnvern/pkg/sources"
)

// extractWikidata walks the entities cache. Payloads are flattened
// entity dumps: a scientific_name claim, per-language labels, alias
// lists, and external-id claims. Labels become wikidata_label
// candidates, aliases plain wikidata ones; the ingester later drops
// labels that match a known scientific name.
func extractWikidata(
	ctx context.Context,
	cache db.DBTX,
	limit int,
	fn func(Extraction, error) error,
) error {
	query := `SELECT entity_id, payload FROM entities`
	if limit > 0 {
		query += " LIMIT ?"
	}
	var args []any
	if limit > 0 {
		args = append(args, limit)
	}

	rows, err := cache.QueryContext(ctx, query, args...)
	if err != nil {
		return QueryError("read wikidata entities", err)
	}
	defer rows.Close()

	for rows.Next() {
		select {
		case <-ctx.Done():
			return CancelledError(ctx.Err())
		default:
		}

		var entityID string
		var payload []byte
		if err := rows.Scan(&entityID, &payload); err != nil {
			return QueryError("scan wikidata entity", err)
		}

		ext, err := parseWikidataEntity(entityID, payload)
		if err := fn(ext, err); err != nil {
			return err
		}
	}
	return rows.Err()
}

func parseWikidataEntity(
	entityID string,
	payload []byte,
) (Extraction, error) {
	obj, err := jason.NewObjectFromBytes(payload)
	if err != nil {
		return Extraction{}, err
	}

	sciName, err := obj.GetString("scientific_name")
	if err != nil {
		return Extraction{}, err
	}

	ext := Extraction{
		ScientificName: sciName,
		ExternalIDs:    map[string]string{sources.NameWikidata: entityID},
	}
	if kingdom, err := obj.GetString("kingdom"); err == nil {
		ext.Kingdom = kingdom
	}

	if labels, err := obj.GetObject("labels"); err == nil {
		for lang, v := range labels.Map() {
			label, err := v.String()
			if err != nil || label == "" {
				continue
			}
			ext.Candidates = append(ext.Candidates, Candidate{
				Name:       label,
				Language:   lang,
				Source:     sources.WikidataLabel,
				Identifier: entityID,
			})
		}
	}

	if aliases, err := obj.GetObject("aliases"); err == nil {
		for lang, v := range aliases.Map() {
			list, err := v.Array()
			if err != nil {
				continue
			}
			for _, item := range list {
				alias, err := item.String()
				if err != nil || alias == "" {
					continue
				}
				ext.Candidates = append(ext.Candidates, Candidate{
					Name:       alias,
					Language:   lang,
					Source:     sources.Wikidata,
					Identifier: entityID,
				})
			}
		}
	}

	if claims, err := obj.GetObject("claims"); err == nil {
		for provider, v := range claims.Map() {
			id, err := v.String()
			if err != nil || id == "" {
				continue
			}
			ext.ExternalIDs[provider] = id
		}
	}

	return ext, nil
}

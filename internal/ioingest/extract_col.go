package ioingest

import (
	"context"
	"database/sql"
	"strings"

	"github.com/gnames/gnvern/pkg/db"
	"github.com/gnames/gnvern/pkg/names"
	"github.com/gnames/gnvern/pkg/parserpool"
	"github.com/gnames/gnvern/pkg/schema"
	"github.com/gnames/gnvern/pkg/sources"
)

// colAcceptedStatuses are the name_usage statuses that count as
// accepted; checklists use both spellings.
var colAcceptedStatuses = []string{"accepted", "valid"}

// colRanks are the name_usage ranks that feed the taxon registry.
// Higher ranks carry no vernacular names worth aggregating.
var colRanks = map[string]bool{
	"species":    true,
	"subspecies": true,
	"variety":    true,
}

// colUsage is one name_usage row from the checklist cache.
type colUsage struct {
	id             string
	scientificName string
	rank           string
	status         string
	kingdom        string
	extinct        bool
	acceptedID     string
}

// colPass builds the taxon registry from the checklist cache: accepted
// usages become taxa, synonym usages feed the synonym index, and the
// vernacular table becomes col common-name candidates. It is the only
// pass that creates taxa; the other sources attach to what it built.
type colPass struct {
	registry        *Registry
	pool            parserpool.Pool
	includeSynonyms bool
}

// usages streams name_usage rows restricted to the species-group ranks.
func (p *colPass) usages(
	ctx context.Context,
	cache db.DBTX,
	statuses []string,
	limit int,
	fn func(colUsage) error,
) error {
	query := `
		SELECT id, scientific_name, rank, status, kingdom, extinct,
			accepted_id
		FROM name_usage
		WHERE status IN (` +
		strings.TrimRight(strings.Repeat("?,", len(statuses)), ",") + `)
	`
	args := make([]any, 0, len(statuses)+1)
	for _, s := range statuses {
		args = append(args, s)
	}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := cache.QueryContext(ctx, query, args...)
	if err != nil {
		return QueryError("read checklist usages", err)
	}
	defer rows.Close()

	for rows.Next() {
		select {
		case <-ctx.Done():
			return CancelledError(ctx.Err())
		default:
		}

		var u colUsage
		var kingdom, acceptedID sql.NullString
		err := rows.Scan(
			&u.id, &u.scientificName, &u.rank, &u.status,
			&kingdom, &u.extinct, &acceptedID,
		)
		if err != nil {
			return QueryError("scan checklist usage", err)
		}
		u.kingdom = kingdom.String
		u.acceptedID = acceptedID.String
		if !colRanks[strings.ToLower(u.rank)] {
			continue
		}
		if err := fn(u); err != nil {
			return err
		}
	}
	return rows.Err()
}

// upsertAcceptedUsage turns one accepted name_usage row into a taxon
// plus derived name-variant synonyms. Returns the taxon id and whether
// the row was new.
func (p *colPass) upsertAcceptedUsage(
	ctx context.Context,
	q db.DBTX,
	u colUsage,
) (int64, bool, error) {
	canonical := p.pool.Canonical(u.scientificName)
	if canonical == "" {
		return 0, false, errNoScientificName
	}
	norm := names.NormalizeScientificName(canonical)

	existing, err := p.registry.FindTaxonBySourceID(
		ctx, q, sources.COL, u.id,
	)
	if err != nil {
		return 0, false, err
	}

	taxon := schema.Taxon{
		CanonicalName:   norm,
		OriginalName:    u.scientificName,
		Rank:            strings.ToLower(u.rank),
		Kingdom:         nullString(u.kingdom),
		IsExtinct:       u.extinct,
		ValidityStatus:  schema.ValidityValid,
		PrimarySource:   sources.COL,
		PrimarySourceID: u.id,
	}
	id, err := p.registry.UpsertTaxon(ctx, q, taxon)
	if err != nil {
		return 0, false, err
	}

	if p.includeSynonyms {
		if err := p.insertNameVariants(ctx, q, id, u, norm); err != nil {
			return 0, false, err
		}
	}
	return id, existing == 0, nil
}

// insertNameVariants registers lookup variants of an accepted name:
// the normalized verbatim form when authorship or annotations make it
// differ from the canonical, and the subgenus form when the verbatim
// name carries a parenthesized subgenus.
func (p *colPass) insertNameVariants(
	ctx context.Context,
	q db.DBTX,
	taxonID int64,
	u colUsage,
	canonical string,
) error {
	verbatim := names.NormalizeScientificName(u.scientificName)
	if verbatim != "" && verbatim != canonical {
		syn := schema.ScientificNameSynonym{
			TaxonID:        taxonID,
			NormalizedName: verbatim,
			OriginalName:   u.scientificName,
			Source:         sources.COL,
			SynonymType:    "rank_variant",
		}
		if err := p.registry.InsertSynonym(ctx, q, syn); err != nil {
			return err
		}
	}

	if form := subgenusForm(u.scientificName); form != "" &&
		form != canonical && form != verbatim {
		syn := schema.ScientificNameSynonym{
			TaxonID:        taxonID,
			NormalizedName: form,
			OriginalName:   u.scientificName,
			Source:         sources.COL,
			SynonymType:    "subgenus_form",
		}
		if err := p.registry.InsertSynonym(ctx, q, syn); err != nil {
			return err
		}
	}
	return nil
}

// subgenusForm rebuilds the normalized subgenus rendering of a name
// whose second token is a parenthesized subgenus, e.g.
// "Pica (Pica) pica L." -> "pica (pica) pica". Empty when the name has
// no subgenus token.
func subgenusForm(name string) string {
	words := strings.Fields(name)
	if len(words) < 3 {
		return ""
	}
	sub := words[1]
	if !strings.HasPrefix(sub, "(") || !strings.HasSuffix(sub, ")") {
		return ""
	}
	sub = strings.Trim(sub, "()")
	if sub == "" {
		return ""
	}

	species := words[2]
	var infra string
	if len(words) > 3 {
		infra = words[3]
	}
	form := names.BuildSubgenusForm(words[0], sub, species, infra)
	return names.NormalizeScientificName(form)
}

// upsertSynonymUsage links one synonym name_usage row to its accepted
// taxon. Rows whose accepted usage was never ingested are skipped.
func (p *colPass) upsertSynonymUsage(
	ctx context.Context,
	q db.DBTX,
	u colUsage,
) (bool, error) {
	if u.acceptedID == "" {
		return false, nil
	}
	taxonID, err := p.registry.FindTaxonBySourceID(
		ctx, q, sources.COL, u.acceptedID,
	)
	if err != nil {
		return false, err
	}
	if taxonID == 0 {
		return false, nil
	}

	canonical := p.pool.Canonical(u.scientificName)
	if canonical == "" {
		return false, errNoScientificName
	}
	syn := schema.ScientificNameSynonym{
		TaxonID:        taxonID,
		NormalizedName: names.NormalizeScientificName(canonical),
		OriginalName:   u.scientificName,
		Source:         sources.COL,
		SynonymType:    "synonym",
	}
	if err := p.registry.InsertSynonym(ctx, q, syn); err != nil {
		return false, err
	}
	return true, nil
}

// vernaculars streams checklist vernacular rows joined to their
// accepted usages as col candidates.
func (p *colPass) vernaculars(
	ctx context.Context,
	cache db.DBTX,
	limit int,
	fn func(Extraction, error) error,
) error {
	query := `
		SELECT u.id, u.scientific_name, u.kingdom, v.name, v.language
		FROM vernacular v
		JOIN name_usage u ON u.id = v.taxon_id
		WHERE u.status IN (` +
		strings.TrimRight(
			strings.Repeat("?,", len(colAcceptedStatuses)), ",",
		) + `)
	`
	args := make([]any, 0, len(colAcceptedStatuses)+1)
	for _, s := range colAcceptedStatuses {
		args = append(args, s)
	}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := cache.QueryContext(ctx, query, args...)
	if err != nil {
		return QueryError("read checklist vernaculars", err)
	}
	defer rows.Close()

	for rows.Next() {
		select {
		case <-ctx.Done():
			return CancelledError(ctx.Err())
		default:
		}

		var usageID, sciName, name, lang string
		var kingdom sql.NullString
		err := rows.Scan(&usageID, &sciName, &kingdom, &name, &lang)
		if err != nil {
			return QueryError("scan checklist vernacular", err)
		}

		ext := Extraction{
			ScientificName: p.pool.Canonical(sciName),
			Kingdom:        kingdom.String,
			Candidates: []Candidate{{
				Name:       name,
				Language:   lang,
				Source:     sources.COL,
				Identifier: usageID,
			}},
		}
		var perr error
		if ext.ScientificName == "" {
			perr = errNoScientificName
		}
		if err := fn(ext, perr); err != nil {
			return err
		}
	}
	return rows.Err()
}

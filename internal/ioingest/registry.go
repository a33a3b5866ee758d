package ioingest

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/gnames/gnuuid"
	"github.com/gnames/gnvern/pkg/db"
	"github.com/gnames/gnvern/pkg/names"
	"github.com/gnames/gnvern/pkg/schema"
)

// Registry is the authoritative taxon store: upserts from ingest
// adapters, lookups by source id, canonical name or synonym. All
// methods take a db.DBTX so they run inside a batch transaction or
// against the bare handle.
type Registry struct{}

// NewRegistry returns a Registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// UpsertTaxon inserts or updates a taxon keyed on
// (primary_source, primary_source_id). A conflicting row gets its
// names, rank, flags and validity overwritten, but kingdom coalesces:
// once known it is more durable than the other mutable fields.
func (r *Registry) UpsertTaxon(
	ctx context.Context,
	q db.DBTX,
	t schema.Taxon,
) (int64, error) {
	query := `
		INSERT INTO taxa (
			canonical_name, original_name, rank, kingdom,
			is_extinct, is_fossil, validity_status,
			primary_source, primary_source_id
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (primary_source, primary_source_id) DO UPDATE SET
			canonical_name = excluded.canonical_name,
			original_name = excluded.original_name,
			rank = excluded.rank,
			kingdom = COALESCE(excluded.kingdom, taxa.kingdom),
			is_extinct = excluded.is_extinct,
			is_fossil = excluded.is_fossil,
			validity_status = excluded.validity_status
		RETURNING id
	`

	var id int64
	err := q.QueryRowContext(ctx, query,
		t.CanonicalName, t.OriginalName, t.Rank, t.Kingdom,
		t.IsExtinct, t.IsFossil, t.ValidityStatus,
		t.PrimarySource, t.PrimarySourceID,
	).Scan(&id)
	if err != nil {
		return 0, QueryError("upsert taxon", err)
	}
	return id, nil
}

// FindTaxonBySourceID returns the taxon id owned by a provider-native
// identifier, or 0 when absent.
func (r *Registry) FindTaxonBySourceID(
	ctx context.Context,
	q db.DBTX,
	source, sourceID string,
) (int64, error) {
	query := `
		SELECT id FROM taxa
		WHERE primary_source = ? AND primary_source_id = ?
	`
	var id int64
	err := q.QueryRowContext(ctx, query, source, sourceID).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, QueryError("find taxon by source id", err)
	}
	return id, nil
}

// FindTaxonByCanonicalName returns the first valid taxon with the
// given canonical name. Kingdom, if non-empty, is an exact filter.
func (r *Registry) FindTaxonByCanonicalName(
	ctx context.Context,
	q db.DBTX,
	canonical, kingdom string,
) (int64, error) {
	query := `
		SELECT id FROM taxa
		WHERE canonical_name = ? AND validity_status = 'valid'
	`
	args := []any{canonical}
	if kingdom != "" {
		query += " AND kingdom = ?"
		args = append(args, kingdom)
	}
	query += " ORDER BY id LIMIT 1"

	var id int64
	err := q.QueryRowContext(ctx, query, args...).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, QueryError("find taxon by canonical name", err)
	}
	return id, nil
}

// FindTaxonByScientificName normalizes the given name, looks it up as
// a canonical name, then falls back to the synonym index. Returns 0
// when nothing matches.
func (r *Registry) FindTaxonByScientificName(
	ctx context.Context,
	q db.DBTX,
	name, kingdom string,
) (int64, error) {
	norm := names.NormalizeScientificName(name)
	if norm == "" {
		return 0, nil
	}

	id, err := r.FindTaxonByCanonicalName(ctx, q, norm, kingdom)
	if err != nil || id != 0 {
		return id, err
	}
	return r.FindTaxonBySynonym(ctx, q, norm, kingdom)
}

// InsertSynonym records an alternate scientific name for a taxon.
// Idempotent: keyed on (taxon, normalized name, source).
func (r *Registry) InsertSynonym(
	ctx context.Context,
	q db.DBTX,
	s schema.ScientificNameSynonym,
) error {
	query := `
		INSERT INTO scientific_name_synonyms (
			taxon_id, normalized_name, original_name, source, synonym_type
		)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (taxon_id, normalized_name, source) DO NOTHING
	`
	_, err := q.ExecContext(ctx, query,
		s.TaxonID, s.NormalizedName, s.OriginalName, s.Source,
		s.SynonymType,
	)
	if err != nil {
		return QueryError("insert synonym", err)
	}
	return nil
}

// FindTaxonBySynonym returns the first valid taxon owning a synonym.
// When several taxa share the synonym the lowest taxon id wins:
// deterministic, but a data-quality signal, so it is logged rather
// than silently resolved.
func (r *Registry) FindTaxonBySynonym(
	ctx context.Context,
	q db.DBTX,
	normalized, kingdom string,
) (int64, error) {
	query := `
		SELECT DISTINCT t.id
		FROM scientific_name_synonyms s
		JOIN taxa t ON t.id = s.taxon_id
		WHERE s.normalized_name = ? AND t.validity_status = 'valid'
	`
	args := []any{normalized}
	if kingdom != "" {
		query += " AND t.kingdom = ?"
		args = append(args, kingdom)
	}
	query += " ORDER BY t.id"

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return 0, QueryError("find taxon by synonym", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return 0, QueryError("find taxon by synonym", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return 0, QueryError("find taxon by synonym", err)
	}

	if len(ids) == 0 {
		return 0, nil
	}
	if len(ids) > 1 {
		// TODO: surface shared synonyms as cross_source_mismatch
		// conflicts once curators ask for them.
		slog.Debug("Synonym shared by multiple taxa",
			"normalized_name", normalized,
			"taxa", ids,
		)
	}
	return ids[0], nil
}

// IsKnownScientificName reports whether a normalized string matches
// any canonical name or synonym in the store.
func (r *Registry) IsKnownScientificName(
	ctx context.Context,
	q db.DBTX,
	normalized string,
) (bool, error) {
	query := `
		SELECT EXISTS (SELECT 1 FROM taxa WHERE canonical_name = ?)
			OR EXISTS (
				SELECT 1 FROM scientific_name_synonyms
				WHERE normalized_name = ?
			)
	`
	var known bool
	err := q.QueryRowContext(ctx, query, normalized, normalized).
		Scan(&known)
	if err != nil {
		return false, QueryError("check scientific name", err)
	}
	return known, nil
}

// UpsertCommonName inserts or merges a vernacular name candidate,
// keyed on (taxon, normalized name, source, language). On merge the
// newer raw_name wins, display_name coalesces, and is_preferred ORs.
// Returns true when a new row was created.
func (r *Registry) UpsertCommonName(
	ctx context.Context,
	q db.DBTX,
	cn schema.CommonName,
) (bool, error) {
	var existing int64
	checkQuery := `
		SELECT id FROM common_names
		WHERE taxon_id = ? AND normalized_name = ?
			AND source = ? AND language = ?
	`
	err := q.QueryRowContext(ctx, checkQuery,
		cn.TaxonID, cn.NormalizedName, cn.Source, cn.Language,
	).Scan(&existing)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return false, QueryError("check common name", err)
	}
	added := errors.Is(err, sql.ErrNoRows)

	if cn.NameUUID == "" {
		cn.NameUUID = gnuuid.New(cn.NormalizedName).String()
	}

	query := `
		INSERT INTO common_names (
			taxon_id, name_uuid, raw_name, normalized_name,
			display_name, language, source, source_identifier,
			is_preferred
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (taxon_id, normalized_name, source, language)
		DO UPDATE SET
			raw_name = excluded.raw_name,
			display_name =
				COALESCE(excluded.display_name, common_names.display_name),
			is_preferred =
				MAX(common_names.is_preferred, excluded.is_preferred)
	`
	_, err = q.ExecContext(ctx, query,
		cn.TaxonID, cn.NameUUID, cn.RawName, cn.NormalizedName,
		cn.DisplayName, cn.Language, cn.Source, cn.SourceIdentifier,
		cn.IsPreferred,
	)
	if err != nil {
		return false, QueryError("upsert common name", err)
	}
	return added, nil
}

// InsertCrossReference records provenance of an external identifier
// match. Idempotent on (taxon, source, external id).
func (r *Registry) InsertCrossReference(
	ctx context.Context,
	q db.DBTX,
	x schema.CrossReference,
) error {
	query := `
		INSERT INTO taxon_cross_references (
			taxon_id, source, external_id, match_type
		)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (taxon_id, source, external_id) DO NOTHING
	`
	_, err := q.ExecContext(ctx, query,
		x.TaxonID, x.Source, x.ExternalID, x.MatchType,
	)
	if err != nil {
		return QueryError("insert cross reference", err)
	}
	return nil
}

// Package schema provides the database schema models for gnvern.
// Uniqueness constraints carry the merge semantics of ingest: the
// ON CONFLICT clauses in internal/ioingest rely on them to decide
// insert-vs-update.
package schema

import (
	"database/sql"
	"time"
)

// DDLGenerator defines how Go models generate SQLite DDL.
type DDLGenerator interface {
	// TableDDL returns the CREATE TABLE statement for this model.
	TableDDL() string

	// IndexDDL returns CREATE INDEX statements for this model.
	// Returns empty slice if no indexes needed.
	IndexDDL() []string

	// TableName returns the table name for this model.
	TableName() string
}

// Validity statuses of a taxon.
const (
	ValidityValid     = "valid"
	ValiditySynonym   = "synonym"
	ValidityUncertain = "uncertain"
	ValidityInvalid   = "invalid"
)

// Conflict types.
const (
	ConflictAmbiguous           = "ambiguous"
	ConflictCapsMismatch        = "caps_mismatch"
	ConflictCrossSourceMismatch = "cross_source_mismatch"
)

// Conflict resolutions. An empty string means unresolved.
const (
	ResolutionPreferA    = "prefer_a"
	ResolutionPreferB    = "prefer_b"
	ResolutionRejectBoth = "reject_both"
	ResolutionManual     = "manual"
)

// Cross-reference match confidences.
const (
	MatchExact   = "exact"
	MatchSynonym = "synonym"
	MatchFuzzy   = "fuzzy"
	MatchManual  = "manual"
)

// Caps-rule provenance values.
const (
	CapsSourceTxt      = "caps_txt"
	CapsSourceManual   = "manual"
	CapsSourceInferred = "inferred"
)

// Import run statuses. A run left in running status with no ended_at is
// the audit trail of an aborted ingest, never cleaned up automatically.
const (
	RunStatusRunning   = "running"
	RunStatusCompleted = "completed"
)

// Taxon is one biological entity at some rank. Exactly one row exists
// per (primary_source, primary_source_id); canonical_name is not unique
// since homonyms across kingdoms are expected.
type Taxon struct {
	// ID is the internal numeric identifier.
	ID int64 `db:"id" ddl:"INTEGER PRIMARY KEY AUTOINCREMENT"`

	// CanonicalName is the normalized scientific name: lowercase,
	// single-spaced. The primary comparison key.
	CanonicalName string `db:"canonical_name" ddl:"TEXT NOT NULL"`

	// OriginalName is the scientific name as given by the primary source.
	OriginalName string `db:"original_name" ddl:"TEXT NOT NULL DEFAULT ''"`

	// Rank of the taxon: species, subspecies, variety, etc.
	Rank string `db:"rank" ddl:"TEXT NOT NULL DEFAULT ''"`

	// Kingdom is used for homonym disambiguation. Once known it is
	// treated as durable: upserts coalesce instead of overwriting.
	Kingdom sql.NullString `db:"kingdom" ddl:"TEXT"`

	// IsExtinct marks recently extinct taxa.
	IsExtinct bool `db:"is_extinct" ddl:"BOOLEAN NOT NULL DEFAULT FALSE"`

	// IsFossil marks fossil taxa; they never participate in ambiguity.
	IsFossil bool `db:"is_fossil" ddl:"BOOLEAN NOT NULL DEFAULT FALSE"`

	// ValidityStatus is one of the Validity* constants.
	ValidityStatus string `db:"validity_status" ddl:"TEXT NOT NULL DEFAULT 'valid'"`

	// PrimarySource identifies the provider that owns this taxon record.
	PrimarySource string `db:"primary_source" ddl:"TEXT NOT NULL"`

	// PrimarySourceID is the provider-native identifier.
	PrimarySourceID string `db:"primary_source_id" ddl:"TEXT NOT NULL"`
}

// ScientificNameSynonym is an alternate scientific name pointing at a
// taxon: a synonym, basionym, subgenus variant or rank variant. Used
// for lookup only, never as a display value.
type ScientificNameSynonym struct {
	ID int64 `db:"id" ddl:"INTEGER PRIMARY KEY AUTOINCREMENT"`

	// TaxonID is the owning taxon.
	TaxonID int64 `db:"taxon_id" ddl:"INTEGER NOT NULL"`

	// NormalizedName is the synonym's comparison key.
	NormalizedName string `db:"normalized_name" ddl:"TEXT NOT NULL"`

	// OriginalName is the synonym as observed.
	OriginalName string `db:"original_name" ddl:"TEXT NOT NULL DEFAULT ''"`

	// Source identifies the provider of this synonym.
	Source string `db:"source" ddl:"TEXT NOT NULL"`

	// SynonymType: synonym, basionym, subgenus_form, rank_variant.
	SynonymType string `db:"synonym_type" ddl:"TEXT NOT NULL DEFAULT 'synonym'"`
}

// CommonName is a candidate vernacular name for a taxon. Re-insertion
// of the same (taxon, normalized_name, source, language) merges: newest
// raw_name wins, display_name coalesces, is_preferred ORs.
type CommonName struct {
	ID int64 `db:"id" ddl:"INTEGER PRIMARY KEY AUTOINCREMENT"`

	// TaxonID is the owning taxon.
	TaxonID int64 `db:"taxon_id" ddl:"INTEGER NOT NULL"`

	// NameUUID is UUID v5 of the normalized name, the stable identity
	// of the name-string across databases.
	NameUUID string `db:"name_uuid" ddl:"TEXT NOT NULL"`

	// RawName is the name as observed at the source.
	RawName string `db:"raw_name" ddl:"TEXT NOT NULL"`

	// NormalizedName is the comparison key.
	NormalizedName string `db:"normalized_name" ddl:"TEXT NOT NULL"`

	// DisplayName is the cached rendering with caps corrections.
	DisplayName sql.NullString `db:"display_name" ddl:"TEXT"`

	// Language is the ISO 639-1 code.
	Language string `db:"language" ddl:"TEXT NOT NULL"`

	// Source is one of the provider tags in pkg/sources.
	Source string `db:"source" ddl:"TEXT NOT NULL"`

	// SourceIdentifier is the provider-native record id.
	SourceIdentifier string `db:"source_identifier" ddl:"TEXT NOT NULL DEFAULT ''"`

	// IsPreferred is a source-supplied "main name" signal.
	IsPreferred bool `db:"is_preferred" ddl:"BOOLEAN NOT NULL DEFAULT FALSE"`
}

// CrossReference links a taxon to an external identifier with a match
// confidence. Provenance and debugging only; resolution never reads it.
type CrossReference struct {
	ID int64 `db:"id" ddl:"INTEGER PRIMARY KEY AUTOINCREMENT"`

	TaxonID int64 `db:"taxon_id" ddl:"INTEGER NOT NULL"`

	// Source of the external identifier.
	Source string `db:"source" ddl:"TEXT NOT NULL"`

	// ExternalID in the source's key space.
	ExternalID string `db:"external_id" ddl:"TEXT NOT NULL"`

	// MatchType is one of the Match* constants.
	MatchType string `db:"match_type" ddl:"TEXT NOT NULL DEFAULT 'exact'"`
}

// Conflict is a detected data-quality issue. Conflicts are derived:
// they can be recomputed from taxa and common names at any time and are
// safe to clear and rebuild.
type Conflict struct {
	ID int64 `db:"id" ddl:"INTEGER PRIMARY KEY AUTOINCREMENT"`

	// NormalizedName is the contested comparison key.
	NormalizedName string `db:"normalized_name" ddl:"TEXT NOT NULL"`

	// ConflictType is one of the Conflict* constants.
	ConflictType string `db:"conflict_type" ddl:"TEXT NOT NULL"`

	TaxonAID      int64 `db:"taxon_a_id" ddl:"INTEGER NOT NULL"`
	CommonNameAID int64 `db:"common_name_a_id" ddl:"INTEGER NOT NULL"`

	// B side is absent for single-row findings.
	TaxonBID      sql.NullInt64 `db:"taxon_b_id" ddl:"INTEGER"`
	CommonNameBID sql.NullInt64 `db:"common_name_b_id" ddl:"INTEGER"`

	// Resolution is one of the Resolution* constants, empty while
	// unresolved.
	Resolution string `db:"resolution" ddl:"TEXT NOT NULL DEFAULT ''"`

	CreatedAt time.Time `db:"created_at" ddl:"TIMESTAMP NOT NULL"`
}

// CapsRule maps a lowercase word to its correct display capitalization.
type CapsRule struct {
	ID int64 `db:"id" ddl:"INTEGER PRIMARY KEY AUTOINCREMENT"`

	// Word is the lowercase key.
	Word string `db:"word" ddl:"TEXT NOT NULL"`

	// Display is the correctly capitalized form.
	Display string `db:"display" ddl:"TEXT NOT NULL"`

	// Examples holds sample usages, newline-separated.
	Examples string `db:"examples" ddl:"TEXT NOT NULL DEFAULT ''"`

	// Source is one of the CapsSource* constants.
	Source string `db:"source" ddl:"TEXT NOT NULL DEFAULT 'manual'"`
}

// ImportRun is one row per ingest execution.
type ImportRun struct {
	ID int64 `db:"id" ddl:"INTEGER PRIMARY KEY AUTOINCREMENT"`

	// UUID correlates run rows with log lines.
	UUID string `db:"uuid" ddl:"TEXT NOT NULL"`

	// ImportType names the pass: iucn, wikidata, wikipedia, col.
	ImportType string `db:"import_type" ddl:"TEXT NOT NULL"`

	StartedAt time.Time    `db:"started_at" ddl:"TIMESTAMP NOT NULL"`
	EndedAt   sql.NullTime `db:"ended_at" ddl:"TIMESTAMP"`

	Processed int `db:"processed" ddl:"INTEGER NOT NULL DEFAULT 0"`
	Added     int `db:"added" ddl:"INTEGER NOT NULL DEFAULT 0"`
	Updated   int `db:"updated" ddl:"INTEGER NOT NULL DEFAULT 0"`
	Errors    int `db:"errors" ddl:"INTEGER NOT NULL DEFAULT 0"`

	// Status is running or completed.
	Status string `db:"status" ddl:"TEXT NOT NULL DEFAULT 'running'"`

	// Notes is free text: skip counts, warnings, anything worth keeping.
	Notes string `db:"notes" ddl:"TEXT NOT NULL DEFAULT ''"`
}

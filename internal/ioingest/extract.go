package ioingest

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/gnames/gnfmt/gnlang"
	"github.com/gnames/gnvern/pkg/db"
)

// errNoScientificName marks records that cannot be tied to a taxon at
// all; they count as parse errors, not taxon-resolution skips.
var errNoScientificName = errors.New("record has no scientific name")

// Candidate is one vernacular name as observed at a source, before
// taxon resolution and normalization.
type Candidate struct {
	// Name is the raw name string.
	Name string

	// Language is the language tag as seen at the source: a 2- or
	// 3-letter code or a full English language name.
	Language string

	// Source is the provider tag the candidate will be stored under.
	Source string

	// Preferred is the source-supplied main-name signal.
	Preferred bool

	// Identifier is the provider-native record id, for provenance.
	Identifier string
}

// Extraction ties a batch of candidates to the scientific name they
// were observed under. Kingdom is optional context for homonym
// disambiguation.
type Extraction struct {
	ScientificName string
	Kingdom        string
	Candidates     []Candidate

	// ExternalIDs maps a provider tag to the record's identifier in
	// that provider's key space, stored as cross references.
	ExternalIDs map[string]string
}

// extractFunc walks one source cache and emits extractions through fn.
// A record that fails to parse is reported as a non-nil err with a zero
// Extraction; the walk continues. Implementations stop early when fn
// returns an error or when limit records (0 = no limit) have been
// visited.
type extractFunc func(
	ctx context.Context,
	cache db.DBTX,
	limit int,
	fn func(Extraction, error) error,
) error

// nullString wraps a possibly-empty string for a nullable column.
func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// normalizeLanguage maps a source language tag to an ISO 639-1 code.
// Returns empty string for tags gnlang does not know; callers skip
// those candidates.
func normalizeLanguage(raw string) string {
	tag := strings.ToLower(strings.TrimSpace(raw))
	switch len(tag) {
	case 0:
		return ""
	case 2:
		if _, err := gnlang.LangCode2To3Letters(tag); err != nil {
			return ""
		}
		return tag
	case 3:
		two, err := gnlang.LangCode3To2Letters(tag)
		if err != nil {
			return ""
		}
		return two
	default:
		// Full language name, e.g. "English".
		lang3 := gnlang.LangCode(strings.TrimSpace(raw))
		if lang3 == "" {
			return ""
		}
		two, err := gnlang.LangCode3To2Letters(lang3)
		if err != nil {
			return ""
		}
		return two
	}
}

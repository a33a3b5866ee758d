package ioreport

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/gnvern/internal/iodb"
	"github.com/gnames/gnvern/internal/ioschema"
	"github.com/gnames/gnvern/pkg/config"
	"github.com/gnames/gnvern/pkg/db"
	"github.com/gnames/gnvern/pkg/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*reporter, db.Operator) {
	t.Helper()
	op := iodb.NewSqliteOperator()
	cfg := config.New()
	cfg.Database.Path = filepath.Join(t.TempDir(), "gnvern.sqlite")
	cfg.Resolve.Language = "en"
	require.NoError(t, op.Connect(t.Context(), &cfg.Database))
	t.Cleanup(func() { op.Close() })
	require.NoError(t, ioschema.New(cfg, op).Create(t.Context(), false))
	return &reporter{cfg: cfg, operator: op}, op
}

func insertTaxon(
	t *testing.T,
	ctx context.Context,
	conn *sql.DB,
	canonical string,
) int64 {
	t.Helper()
	var id int64
	err := conn.QueryRowContext(ctx, `
		INSERT INTO taxa (
			canonical_name, kingdom, is_fossil, validity_status,
			primary_source, primary_source_id
		)
		VALUES (?, 'Animalia', FALSE, 'valid', 'col', ?)
		RETURNING id`,
		canonical, canonical,
	).Scan(&id)
	require.NoError(t, err)
	return id
}

func insertName(
	t *testing.T,
	ctx context.Context,
	conn *sql.DB,
	taxonID int64,
	raw, norm, source string,
	preferred bool,
) {
	t.Helper()
	_, err := conn.ExecContext(ctx, `
		INSERT INTO common_names (
			taxon_id, name_uuid, raw_name, normalized_name,
			language, source, is_preferred
		)
		VALUES (?, '', ?, ?, 'en', ?, ?)`,
		taxonID, raw, norm, source, preferred,
	)
	require.NoError(t, err)
}

func TestReportUnknownKind(t *testing.T) {
	r, _ := newTestStore(t)

	err := r.Report(t.Context(), "bogus", "")
	require.Error(t, err)

	gnErr, ok := err.(*gn.Error)
	require.True(t, ok, "Error should be of type *gn.Error")
	assert.Equal(t, errcode.ReportUnknownTypeError, gnErr.Code)
	require.Len(t, gnErr.Vars, 1)
	assert.Equal(t, "bogus", gnErr.Vars[0])
}

func TestFindTaxon(t *testing.T) {
	ctx := t.Context()
	r, op := newTestStore(t)
	conn := op.DB()

	wolf := insertTaxon(t, ctx, conn, "canis lupus")
	_, err := conn.ExecContext(ctx, `
		INSERT INTO scientific_name_synonyms (
			taxon_id, normalized_name, original_name, source, synonym_type
		)
		VALUES (?, 'canis lycaon', 'Canis lycaon', 'col', 'synonym')`,
		wolf,
	)
	require.NoError(t, err)

	tests := []struct {
		msg, query string
		id         int64
		found      bool
	}{
		{"canonical", "Canis lupus", wolf, true},
		{"extra spaces", "  Canis   lupus ", wolf, true},
		{"synonym", "Canis lycaon", wolf, true},
		{"miss", "Vulpes vulpes", 0, false},
	}

	for _, test := range tests {
		id, canonical, err := r.findTaxon(ctx, conn, test.query)
		if !test.found {
			assert.Error(t, err, test.msg)
			continue
		}
		require.NoError(t, err, test.msg)
		assert.Equal(t, test.id, id, test.msg)
		assert.Equal(t, "canis lupus", canonical, test.msg)
	}
}

func TestReportTrace(t *testing.T) {
	ctx := t.Context()
	r, op := newTestStore(t)
	conn := op.DB()

	wolf := insertTaxon(t, ctx, conn, "canis lupus")
	hyena := insertTaxon(t, ctx, conn, "proteles cristatus")
	insertName(t, ctx, conn, wolf, "Gray Wolf", "gray wolf", "iucn", true)
	insertName(t, ctx, conn, wolf, "Wolf", "wolf", "wikipedia_title",
		false)
	insertName(t, ctx, conn, hyena, "Wolf", "wolf", "col", false)

	assert.NoError(t, r.Report(ctx, KindTrace, "Canis lupus"))

	err := r.Report(ctx, KindTrace, "Felis imaginaria")
	require.Error(t, err)
	gnErr, ok := err.(*gn.Error)
	require.True(t, ok, "Error should be of type *gn.Error")
	assert.Equal(t, errcode.ReportTraceNotFoundError, gnErr.Code)

	require.Error(t, r.Report(ctx, KindTrace, ""))
}

func TestReportsRender(t *testing.T) {
	ctx := t.Context()
	r, op := newTestStore(t)
	conn := op.DB()

	wolf := insertTaxon(t, ctx, conn, "canis lupus")
	hyena := insertTaxon(t, ctx, conn, "proteles cristatus")
	insertName(t, ctx, conn, wolf, "Wolf", "wolf", "iucn", true)
	insertName(t, ctx, conn, hyena, "Wolf", "wolf", "col", false)
	insertName(t, ctx, conn, wolf, "McDonald's cat", "mcdonald's cat",
		"col", false)

	for _, kind := range []string{
		KindAmbiguous, KindAmbiguousIUCN, KindWikiDisambig,
		KindIUCNPreferred, KindCaps, KindSummary,
	} {
		assert.NoError(t, r.Report(ctx, kind, ""), kind)
	}
}

func TestCapitalizedForm(t *testing.T) {
	tests := []struct {
		msg, raw, word, want string
	}{
		{"capitalized token", "American Robin", "american", "American"},
		{"lowercase only", "gray wolf", "gray", ""},
		{"punctuation stripped", "Wolf (McDonald's)", "mcdonald's",
			"McDonald's"},
		{"absent word", "gray wolf", "fox", ""},
	}

	for _, test := range tests {
		assert.Equal(t, test.want,
			capitalizedForm(test.raw, test.word), test.msg)
	}
}

func TestRuns(t *testing.T) {
	ctx := t.Context()
	r, op := newTestStore(t)
	conn := op.DB()

	assert.NoError(t, r.Runs(ctx))

	_, err := conn.ExecContext(ctx, `
		INSERT INTO import_runs (
			uuid, import_type, started_at, processed, added, updated,
			errors, status
		)
		VALUES
			('11111111-2222-3333-4444-555555555555', 'col',
				'2026-08-30 10:00:00', 10, 8, 2, 0, 'completed'),
			('66666666-7777-8888-9999-000000000000', 'iucn',
				'2026-08-31 10:00:00', 3, 0, 0, 0, 'running'),
			('abc', 'wikidata',
				'2026-08-31 11:00:00', 1, 1, 0, 0, 'completed')`,
	)
	require.NoError(t, err)

	// The hand-edited short uuid renders without truncation issues.
	assert.NoError(t, r.Runs(ctx))
}

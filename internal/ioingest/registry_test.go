package ioingest

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/gnames/gnuuid"
	"github.com/gnames/gnvern/internal/iodb"
	"github.com/gnames/gnvern/internal/ioschema"
	"github.com/gnames/gnvern/pkg/config"
	"github.com/gnames/gnvern/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	op := iodb.NewSqliteOperator()
	cfg := &config.DatabaseConfig{
		Path: filepath.Join(t.TempDir(), "gnvern.sqlite"),
	}
	require.NoError(t, op.Connect(t.Context(), cfg))
	t.Cleanup(func() { op.Close() })
	require.NoError(t, ioschema.New(config.New(), op).Create(t.Context(), false))
	return op.DB()
}

func TestUpsertTaxonCoalescesKingdom(t *testing.T) {
	ctx := t.Context()
	conn := newTestDB(t)
	reg := NewRegistry()

	id1, err := reg.UpsertTaxon(ctx, conn, schema.Taxon{
		CanonicalName:   "canis lupus",
		Kingdom:         sql.NullString{String: "Animalia", Valid: true},
		ValidityStatus:  schema.ValidityValid,
		PrimarySource:   "col",
		PrimarySourceID: "C1",
	})
	require.NoError(t, err)

	// Same source record, no kingdom this time, new rank.
	id2, err := reg.UpsertTaxon(ctx, conn, schema.Taxon{
		CanonicalName:   "canis lupus",
		Rank:            "species",
		ValidityStatus:  schema.ValidityValid,
		PrimarySource:   "col",
		PrimarySourceID: "C1",
	})
	require.NoError(t, err)
	assert.Equal(t, id1, id2)

	var kingdom, rank string
	err = conn.QueryRowContext(ctx,
		"SELECT kingdom, rank FROM taxa WHERE id = ?", id1,
	).Scan(&kingdom, &rank)
	require.NoError(t, err)
	assert.Equal(t, "Animalia", kingdom, "kingdom survives a null upsert")
	assert.Equal(t, "species", rank, "other fields are overwritten")
}

func TestFindTaxonByScientificName(t *testing.T) {
	ctx := t.Context()
	conn := newTestDB(t)
	reg := NewRegistry()

	id, err := reg.UpsertTaxon(ctx, conn, schema.Taxon{
		CanonicalName:   "canis lupus",
		ValidityStatus:  schema.ValidityValid,
		PrimarySource:   "col",
		PrimarySourceID: "C1",
	})
	require.NoError(t, err)
	require.NoError(t, reg.InsertSynonym(ctx, conn, schema.ScientificNameSynonym{
		TaxonID:        id,
		NormalizedName: "canis lycaon",
		Source:         "col",
		SynonymType:    "synonym",
	}))

	tests := []struct {
		msg, name string
		want      int64
	}{
		{"canonical", "Canis lupus", id},
		{"canonical extra spaces", "  Canis   lupus ", id},
		{"synonym fallback", "Canis lycaon", id},
		{"miss", "Felis catus", 0},
		{"blank", "  ", 0},
	}
	for _, v := range tests {
		got, err := reg.FindTaxonByScientificName(ctx, conn, v.name, "")
		require.NoError(t, err, v.msg)
		assert.Equal(t, v.want, got, v.msg)
	}
}

func TestFindTaxonByCanonicalNameKingdomFilter(t *testing.T) {
	ctx := t.Context()
	conn := newTestDB(t)
	reg := NewRegistry()

	// Homonym across kingdoms.
	animal, err := reg.UpsertTaxon(ctx, conn, schema.Taxon{
		CanonicalName:   "pieris brassicae",
		Kingdom:         sql.NullString{String: "Animalia", Valid: true},
		ValidityStatus:  schema.ValidityValid,
		PrimarySource:   "col",
		PrimarySourceID: "A1",
	})
	require.NoError(t, err)
	plant, err := reg.UpsertTaxon(ctx, conn, schema.Taxon{
		CanonicalName:   "pieris brassicae",
		Kingdom:         sql.NullString{String: "Plantae", Valid: true},
		ValidityStatus:  schema.ValidityValid,
		PrimarySource:   "col",
		PrimarySourceID: "P1",
	})
	require.NoError(t, err)

	got, err := reg.FindTaxonByCanonicalName(
		ctx, conn, "pieris brassicae", "Plantae",
	)
	require.NoError(t, err)
	assert.Equal(t, plant, got)

	// No kingdom: lowest id wins, deterministically.
	got, err = reg.FindTaxonByCanonicalName(
		ctx, conn, "pieris brassicae", "",
	)
	require.NoError(t, err)
	assert.Equal(t, animal, got)
}

func TestFindTaxonBySynonymShared(t *testing.T) {
	ctx := t.Context()
	conn := newTestDB(t)
	reg := NewRegistry()

	var ids []int64
	for _, srcID := range []string{"S1", "S2"} {
		id, err := reg.UpsertTaxon(ctx, conn, schema.Taxon{
			CanonicalName:   "taxon " + srcID,
			ValidityStatus:  schema.ValidityValid,
			PrimarySource:   "col",
			PrimarySourceID: srcID,
		})
		require.NoError(t, err)
		require.NoError(t, reg.InsertSynonym(ctx, conn,
			schema.ScientificNameSynonym{
				TaxonID:        id,
				NormalizedName: "shared synonymum",
				Source:         "col",
			}))
		ids = append(ids, id)
	}

	got, err := reg.FindTaxonBySynonym(ctx, conn, "shared synonymum", "")
	require.NoError(t, err)
	assert.Equal(t, ids[0], got, "lowest taxon id wins")
}

func TestUpsertCommonNameMerge(t *testing.T) {
	ctx := t.Context()
	conn := newTestDB(t)
	reg := NewRegistry()

	taxonID, err := reg.UpsertTaxon(ctx, conn, schema.Taxon{
		CanonicalName:   "canis lupus",
		ValidityStatus:  schema.ValidityValid,
		PrimarySource:   "col",
		PrimarySourceID: "C1",
	})
	require.NoError(t, err)

	added, err := reg.UpsertCommonName(ctx, conn, schema.CommonName{
		TaxonID:        taxonID,
		RawName:        "gray wolf",
		NormalizedName: "gray wolf",
		DisplayName:    sql.NullString{String: "Gray wolf", Valid: true},
		Language:       "en",
		Source:         "iucn",
	})
	require.NoError(t, err)
	assert.True(t, added)

	// Same key again: raw_name replaced, display_name kept,
	// is_preferred ORed in.
	added, err = reg.UpsertCommonName(ctx, conn, schema.CommonName{
		TaxonID:        taxonID,
		RawName:        "Gray Wolf",
		NormalizedName: "gray wolf",
		Language:       "en",
		Source:         "iucn",
		IsPreferred:    true,
	})
	require.NoError(t, err)
	assert.False(t, added)

	var count int
	err = conn.QueryRowContext(ctx,
		"SELECT count(*) FROM common_names").Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	var raw, display, nameUUID string
	var preferred bool
	err = conn.QueryRowContext(ctx, `
		SELECT raw_name, display_name, is_preferred, name_uuid
		FROM common_names WHERE taxon_id = ?`, taxonID,
	).Scan(&raw, &display, &preferred, &nameUUID)
	require.NoError(t, err)
	assert.Equal(t, "Gray Wolf", raw, "newer raw_name wins")
	assert.Equal(t, "Gray wolf", display, "display_name coalesces")
	assert.True(t, preferred, "is_preferred ORs")
	assert.Equal(t, gnuuid.New("gray wolf").String(), nameUUID)
}

func TestInsertCrossReferenceIdempotent(t *testing.T) {
	ctx := t.Context()
	conn := newTestDB(t)
	reg := NewRegistry()

	taxonID, err := reg.UpsertTaxon(ctx, conn, schema.Taxon{
		CanonicalName:   "canis lupus",
		ValidityStatus:  schema.ValidityValid,
		PrimarySource:   "col",
		PrimarySourceID: "C1",
	})
	require.NoError(t, err)

	x := schema.CrossReference{
		TaxonID:    taxonID,
		Source:     "iucn",
		ExternalID: "3746",
		MatchType:  schema.MatchExact,
	}
	require.NoError(t, reg.InsertCrossReference(ctx, conn, x))
	require.NoError(t, reg.InsertCrossReference(ctx, conn, x))

	var count int
	err = conn.QueryRowContext(ctx,
		"SELECT count(*) FROM taxon_cross_references").Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

package ioresolve

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/gnames/gnvern/internal/iodb"
	"github.com/gnames/gnvern/internal/ioschema"
	"github.com/gnames/gnvern/pkg/config"
	"github.com/gnames/gnvern/pkg/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) db.Operator {
	t.Helper()
	op := iodb.NewSqliteOperator()
	cfg := &config.DatabaseConfig{
		Path: filepath.Join(t.TempDir(), "gnvern.sqlite"),
	}
	require.NoError(t, op.Connect(t.Context(), cfg))
	t.Cleanup(func() { op.Close() })
	require.NoError(t,
		ioschema.New(config.New(), op).Create(t.Context(), false))
	return op
}

func insertTaxon(
	t *testing.T,
	ctx context.Context,
	conn *sql.DB,
	canonical, kingdom, validity string,
	fossil bool,
) int64 {
	t.Helper()
	var id int64
	err := conn.QueryRowContext(ctx, `
		INSERT INTO taxa (
			canonical_name, kingdom, is_fossil, validity_status,
			primary_source, primary_source_id
		)
		VALUES (?, ?, ?, ?, 'col', ?)
		RETURNING id`,
		canonical, kingdom, fossil, validity, canonical,
	).Scan(&id)
	require.NoError(t, err)
	return id
}

func insertName(
	t *testing.T,
	ctx context.Context,
	conn *sql.DB,
	taxonID int64,
	raw, norm, lang, source string,
	preferred bool,
) int64 {
	t.Helper()
	var id int64
	err := conn.QueryRowContext(ctx, `
		INSERT INTO common_names (
			taxon_id, name_uuid, raw_name, normalized_name,
			language, source, is_preferred
		)
		VALUES (?, '', ?, ?, ?, ?, ?)
		RETURNING id`,
		taxonID, raw, norm, lang, source, preferred,
	).Scan(&id)
	require.NoError(t, err)
	return id
}

func TestComputeAmbiguousNames(t *testing.T) {
	ctx := t.Context()
	conn := newTestStore(t).DB()

	a := insertTaxon(t, ctx, conn, "turdus migratorius", "Animalia",
		"valid", false)
	b := insertTaxon(t, ctx, conn, "erithacus rubecula", "Animalia",
		"valid", false)
	fossil := insertTaxon(t, ctx, conn, "tyrannosaurus rex", "Animalia",
		"valid", true)
	syn := insertTaxon(t, ctx, conn, "old name", "Animalia",
		"synonym", false)

	insertName(t, ctx, conn, a, "Robin", "robin", "en", "iucn", false)
	insertName(t, ctx, conn, b, "Robin", "robin", "en", "col", false)
	insertName(t, ctx, conn, a, "American Robin", "american robin",
		"en", "iucn", true)
	// Fossil and synonym owners never make a name ambiguous.
	insertName(t, ctx, conn, fossil, "American Robin", "american robin",
		"en", "col", false)
	insertName(t, ctx, conn, syn, "American Robin", "american robin",
		"en", "col", false)
	// Same string, different language: separate group.
	insertName(t, ctx, conn, b, "Robin", "robin", "de", "col", false)

	set, err := ComputeAmbiguousNames(ctx, conn,
		AmbiguityFilter{Language: "en"})
	require.NoError(t, err)
	assert.True(t, set["robin"], "shared by two valid taxa")
	assert.False(t, set["american robin"],
		"fossil and synonym owners do not count")

	set, err = ComputeAmbiguousNames(ctx, conn,
		AmbiguityFilter{Language: "de"})
	require.NoError(t, err)
	assert.Empty(t, set)

	// Source-subset variant: only iucn rows, so "robin" has a single
	// owner.
	set, err = ComputeAmbiguousNames(ctx, conn, AmbiguityFilter{
		Language: "en",
		Sources:  []string{"iucn"},
	})
	require.NoError(t, err)
	assert.False(t, set["robin"])

	// Preferred-only variant.
	set, err = ComputeAmbiguousNames(ctx, conn, AmbiguityFilter{
		Language:      "en",
		PreferredOnly: true,
	})
	require.NoError(t, err)
	assert.Empty(t, set)
}

func TestAmbiguityCacheInvalidate(t *testing.T) {
	ctx := t.Context()
	conn := newTestStore(t).DB()

	a := insertTaxon(t, ctx, conn, "canis lupus", "Animalia",
		"valid", false)
	b := insertTaxon(t, ctx, conn, "canis latrans", "Animalia",
		"valid", false)
	insertName(t, ctx, conn, a, "Wolf", "wolf", "en", "col", false)

	cache := NewAmbiguityCache()
	filter := AmbiguityFilter{Language: "en"}

	set, err := cache.Get(ctx, conn, filter)
	require.NoError(t, err)
	assert.False(t, set["wolf"])

	insertName(t, ctx, conn, b, "Wolf", "wolf", "en", "col", false)

	// Memoized: the mutation is not visible yet.
	set, err = cache.Get(ctx, conn, filter)
	require.NoError(t, err)
	assert.False(t, set["wolf"])

	cache.Invalidate()
	set, err = cache.Get(ctx, conn, filter)
	require.NoError(t, err)
	assert.True(t, set["wolf"])
}

func TestSelectBestName(t *testing.T) {
	wikipedia := Candidate{
		RawName: "Gray wolf", NormalizedName: "gray wolf",
		Source: "wikipedia_title",
	}
	iucnPreferred := Candidate{
		RawName: "Grey Wolf", NormalizedName: "grey wolf",
		Source: "iucn", Preferred: true,
	}
	col := Candidate{
		RawName: "Common wolf", NormalizedName: "common wolf",
		Source: "col",
	}

	t.Run("priority ordering", func(t *testing.T) {
		sel := SelectBestName(
			[]Candidate{col, iucnPreferred, wikipedia}, nil, false,
		)
		require.NotNil(t, sel)
		assert.Equal(t, "wikipedia_title", sel.Candidate.Source)
	})

	t.Run("deterministic tie break", func(t *testing.T) {
		x := Candidate{RawName: "Zebra wolf", NormalizedName: "zebra wolf",
			Source: "col"}
		y := Candidate{RawName: "aardwolf", NormalizedName: "aardwolf",
			Source: "col"}
		for range 3 {
			sel := SelectBestName([]Candidate{x, y}, nil, false)
			require.NotNil(t, sel)
			assert.Equal(t, "aardwolf", sel.Candidate.RawName,
				"case-insensitive ordinal order")
		}
	})

	t.Run("ambiguous skipped", func(t *testing.T) {
		ambiguous := map[string]bool{"gray wolf": true}
		sel := SelectBestName(
			[]Candidate{wikipedia, iucnPreferred}, ambiguous, false,
		)
		require.NotNil(t, sel)
		assert.Equal(t, "iucn", sel.Candidate.Source)
		assert.False(t, sel.Ambiguous)
	})

	t.Run("allow ambiguous flags the winner", func(t *testing.T) {
		ambiguous := map[string]bool{"gray wolf": true}
		sel := SelectBestName(
			[]Candidate{wikipedia, iucnPreferred}, ambiguous, true,
		)
		require.NotNil(t, sel)
		assert.Equal(t, "wikipedia_title", sel.Candidate.Source)
		assert.True(t, sel.Ambiguous)
	})

	t.Run("nothing qualifies", func(t *testing.T) {
		ambiguous := map[string]bool{
			"gray wolf": true, "grey wolf": true,
		}
		sel := SelectBestName(
			[]Candidate{wikipedia, iucnPreferred}, ambiguous, false,
		)
		assert.Nil(t, sel)

		assert.Nil(t, SelectBestName(nil, nil, false))
	})
}

func TestBestNames(t *testing.T) {
	ctx := t.Context()
	op := newTestStore(t)
	conn := op.DB()

	wolf := insertTaxon(t, ctx, conn, "canis lupus", "Animalia",
		"valid", false)
	insertName(t, ctx, conn, wolf, "common wolf", "common wolf",
		"en", "col", false)
	winner := insertName(t, ctx, conn, wolf, "gray wolf", "gray wolf",
		"en", "wikipedia_title", false)

	_, err := conn.ExecContext(ctx, `
		INSERT INTO caps_rules (word, display, source)
		VALUES ('gray', 'Gray', 'manual')`)
	require.NoError(t, err)

	cfg := config.New()
	require.NoError(t, New(cfg, op).BestNames(ctx))

	var display sql.NullString
	err = conn.QueryRowContext(ctx,
		"SELECT display_name FROM common_names WHERE id = ?", winner,
	).Scan(&display)
	require.NoError(t, err)
	require.True(t, display.Valid)
	assert.Equal(t, "Gray wolf", display.String,
		"caps rules applied to the winning row")

	var loserDisplay sql.NullString
	err = conn.QueryRowContext(ctx, `
		SELECT display_name FROM common_names
		WHERE taxon_id = ? AND source = 'col'`, wolf,
	).Scan(&loserDisplay)
	require.NoError(t, err)
	assert.False(t, loserDisplay.Valid, "losing rows stay untouched")
}

func TestRebuildConflicts(t *testing.T) {
	ctx := t.Context()
	op := newTestStore(t)
	conn := op.DB()

	a := insertTaxon(t, ctx, conn, "turdus migratorius", "Animalia",
		"valid", false)
	b := insertTaxon(t, ctx, conn, "erithacus rubecula", "Animalia",
		"valid", false)
	c := insertTaxon(t, ctx, conn, "petroica australis", "Animalia",
		"valid", false)

	// "robin" shared by three taxa: anchor pairs with each other owner.
	insertName(t, ctx, conn, a, "Robin", "robin", "en", "iucn", false)
	insertName(t, ctx, conn, b, "Robin", "robin", "en", "col", false)
	insertName(t, ctx, conn, c, "robin", "robin", "en", "col", false)

	// Caps mismatch: one taxon, same key, two renderings.
	insertName(t, ctx, conn, a, "american robin", "american robin",
		"en", "col", false)
	insertName(t, ctx, conn, a, "American Robin", "american robin",
		"en", "wikipedia_title", false)

	// Preferred names disagree across sources.
	insertName(t, ctx, conn, b, "European Robin", "european robin",
		"en", "iucn", true)
	insertName(t, ctx, conn, b, "Redbreast", "redbreast",
		"en", "wikidata", true)

	res := New(config.New(), op)
	require.NoError(t, res.RebuildConflicts(ctx))

	counts := map[string]int{}
	rows, err := conn.QueryContext(ctx, `
		SELECT conflict_type, count(*) FROM common_name_conflicts
		GROUP BY conflict_type`)
	require.NoError(t, err)
	for rows.Next() {
		var typ string
		var n int
		require.NoError(t, rows.Scan(&typ, &n))
		counts[typ] = n
	}
	require.NoError(t, rows.Err())

	assert.Equal(t, 2, counts["ambiguous"],
		"three owners produce two anchored pairs")
	assert.Equal(t, 1, counts["caps_mismatch"])
	assert.Equal(t, 1, counts["cross_source_mismatch"])

	// Derived data: rebuilding from scratch yields the same rows.
	require.NoError(t, res.RebuildConflicts(ctx))
	var total int
	err = conn.QueryRowContext(ctx,
		"SELECT count(*) FROM common_name_conflicts").Scan(&total)
	require.NoError(t, err)
	assert.Equal(t, 4, total)
}

func TestSeedCapsRules(t *testing.T) {
	ctx := t.Context()
	op := newTestStore(t)

	seed := filepath.Join(t.TempDir(), "caps.txt")
	content := "McDonald's\n# a comment\n\nAmerican\nlowercase\n"
	require.NoError(t, os.WriteFile(seed, []byte(content), 0644))

	count, err := New(config.New(), op).SeedCapsRules(ctx, seed)
	require.NoError(t, err)
	assert.Equal(t, 2, count, "comments, blanks and no-op words skipped")

	var display, source string
	err = op.DB().QueryRowContext(ctx, `
		SELECT display, source FROM caps_rules WHERE word = ?`,
		"mcdonald's",
	).Scan(&display, &source)
	require.NoError(t, err)
	assert.Equal(t, "McDonald's", display)
	assert.Equal(t, "caps_txt", source)

	_, err = New(config.New(), op).SeedCapsRules(ctx, "/no/such/file")
	assert.Error(t, err)
}

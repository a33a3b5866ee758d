package schema_test

import (
	"strings"
	"testing"

	"github.com/gnames/gnvern/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllOrder(t *testing.T) {
	models := schema.All()
	require.Len(t, models, 7)
	// taxa first: everything else references it.
	assert.Equal(t, "taxa", models[0].TableName())
}

func TestTaxonDDL(t *testing.T) {
	ddl := schema.Taxon{}.TableDDL()
	assert.Contains(t, ddl, "CREATE TABLE IF NOT EXISTS taxa")
	assert.Contains(t, ddl, "canonical_name TEXT NOT NULL")
	assert.Contains(t, ddl, "UNIQUE (primary_source, primary_source_id)")
	// kingdom stays nullable: upserts coalesce it.
	assert.Contains(t, ddl, "kingdom TEXT")
	assert.NotContains(t, ddl, "kingdom TEXT NOT NULL")
}

func TestCommonNameDDL(t *testing.T) {
	ddl := schema.CommonName{}.TableDDL()
	assert.Contains(t, ddl,
		"UNIQUE (taxon_id, normalized_name, source, language)")
	assert.Contains(t, ddl,
		"FOREIGN KEY (taxon_id) REFERENCES taxa (id) ON DELETE CASCADE")
}

func TestCapsRuleDDL(t *testing.T) {
	ddl := schema.CapsRule{}.TableDDL()
	assert.Contains(t, ddl, "UNIQUE (word)")
}

func TestEveryModelHasValidDDL(t *testing.T) {
	for _, m := range schema.All() {
		t.Run(m.TableName(), func(t *testing.T) {
			ddl := m.TableDDL()
			assert.True(t, strings.HasPrefix(ddl, "CREATE TABLE IF NOT EXISTS"))
			assert.Contains(t, ddl, m.TableName())
			assert.True(t, strings.HasSuffix(ddl, ");"))
			for _, idx := range m.IndexDDL() {
				assert.Contains(t, idx, m.TableName())
			}
		})
	}
}

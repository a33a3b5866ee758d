package sources_test

import (
	"testing"

	"github.com/gnames/gnvern/pkg/sources"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPriority(t *testing.T) {
	tests := []struct {
		name      string
		source    string
		preferred bool
		expected  int
	}{
		{"wikipedia title", sources.WikipediaTitle, false, 1},
		{"wikipedia taxobox", sources.WikipediaTaxobox, false, 2},
		{"wikidata label", sources.WikidataLabel, false, 3},
		{"iucn preferred", sources.IUCN, true, 4},
		{"iucn other", sources.IUCN, false, 5},
		{"wikidata alias", sources.Wikidata, false, 6},
		{"col", sources.COL, false, 7},
		{"unknown", "gbif", true, sources.PriorityUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := sources.Priority(tt.source, tt.preferred)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestPriorityTotalOrder(t *testing.T) {
	// Non-preferred IUCN still outranks wikidata aliases.
	assert.Less(t,
		sources.Priority(sources.IUCN, false),
		sources.Priority(sources.Wikidata, false),
	)
	// The preferred flag matters only for IUCN.
	assert.Equal(t,
		sources.Priority(sources.COL, true),
		sources.Priority(sources.COL, false),
	)
}

func TestValidate(t *testing.T) {
	sc := &sources.SourcesConfig{
		DataSources: []sources.DataSourceConfig{
			{Name: "iucn", Cache: "/tmp/iucn.sqlite"},
			{Name: "col", Cache: "/tmp/col.sqlite"},
		},
	}
	require.NoError(t, sc.Validate())
	assert.Equal(t, "json", sc.DataSources[0].Kind)
	assert.Equal(t, "sfga", sc.DataSources[1].Kind)
	assert.Equal(t, "en", sc.DataSources[0].Language)
	assert.Empty(t, sc.Warnings)
}

func TestValidateErrors(t *testing.T) {
	tests := []struct {
		name string
		cfg  sources.SourcesConfig
	}{
		{
			name: "unknown source",
			cfg: sources.SourcesConfig{
				DataSources: []sources.DataSourceConfig{
					{Name: "gbif", Cache: "/tmp/x"},
				},
			},
		},
		{
			name: "duplicate source",
			cfg: sources.SourcesConfig{
				DataSources: []sources.DataSourceConfig{
					{Name: "iucn", Cache: "/tmp/a"},
					{Name: "iucn", Cache: "/tmp/b"},
				},
			},
		},
		{
			name: "missing cache",
			cfg: sources.SourcesConfig{
				DataSources: []sources.DataSourceConfig{
					{Name: "iucn"},
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.cfg.Validate())
		})
	}
}

func TestByName(t *testing.T) {
	sc := &sources.SourcesConfig{
		DataSources: []sources.DataSourceConfig{
			{Name: "wikipedia", Cache: "/tmp/w"},
		},
	}
	require.NotNil(t, sc.ByName("wikipedia"))
	assert.Nil(t, sc.ByName("col"))
}

// Package sources defines the provider vocabulary: the tags common
// names are attributed to, the fixed selection priority table, and the
// schema of sources.yaml which points gnvern at the local source caches.
package sources

// Provider tags as stored in common_names.source.
const (
	WikipediaTitle   = "wikipedia_title"
	WikipediaTaxobox = "wikipedia_taxobox"
	WikidataLabel    = "wikidata_label"
	Wikidata         = "wikidata"
	IUCN             = "iucn"
	COL              = "col"
)

// Source names accepted by the --source flag and sources.yaml.
const (
	NameIUCN      = "iucn"
	NameWikidata  = "wikidata"
	NameWikipedia = "wikipedia"
	NameCOL       = "col"
)

// Cache kinds describe the shape of a source cache database.
const (
	KindJSON = "json" // records table with a JSON payload column
	KindRows = "rows" // plain row tuples, no payload parsing
	KindSFGA = "sfga" // checklist tables in SFGA layout
)

// Sources loads the sources.yaml configuration.
type Sources interface {
	Load() (*SourcesConfig, error)
}

// SourcesConfig represents the complete sources.yaml file.
type SourcesConfig struct {
	// DataSources lists the source caches available for ingest.
	DataSources []DataSourceConfig `yaml:"data_sources"`

	// Warnings holds non-fatal validation warnings (not serialized).
	Warnings []ValidationWarning `yaml:"-"`
}

// ValidationWarning represents a non-fatal configuration issue.
type ValidationWarning struct {
	SourceName string // name of the data source
	Field      string // field that has the issue
	Message    string // description of the issue
}

// DataSourceConfig describes one source cache.
type DataSourceConfig struct {
	// Name is one of iucn, wikidata, wikipedia, col.
	Name string `yaml:"name"`

	// Title is a human-readable source title for reports.
	Title string `yaml:"title,omitempty"`

	// Kind is the cache shape: json, rows or sfga.
	// Defaults by name: iucn/wikidata=json, wikipedia=rows, col=sfga.
	Kind string `yaml:"kind,omitempty"`

	// Cache is the path to the source cache SQLite file.
	Cache string `yaml:"cache"`

	// Language is the default ISO 639-1 language for sources that do
	// not tag names per row (wikipedia titles).
	Language string `yaml:"language,omitempty"`
}

// DefaultKind returns the cache kind implied by a source name.
func DefaultKind(name string) string {
	switch name {
	case NameIUCN, NameWikidata:
		return KindJSON
	case NameWikipedia:
		return KindRows
	case NameCOL:
		return KindSFGA
	}
	return KindJSON
}

package sources

import "fmt"

var knownNames = map[string]bool{
	NameIUCN:      true,
	NameWikidata:  true,
	NameWikipedia: true,
	NameCOL:       true,
}

var knownKinds = map[string]bool{
	KindJSON: true,
	KindRows: true,
	KindSFGA: true,
}

// Validate checks a SourcesConfig for fatal problems and collects
// non-fatal warnings on the config itself. Duplicate names and unknown
// source names are fatal; a missing kind falls back to the default for
// the source name.
func (sc *SourcesConfig) Validate() error {
	seen := make(map[string]bool)
	for i := range sc.DataSources {
		ds := &sc.DataSources[i]
		if !knownNames[ds.Name] {
			return fmt.Errorf("unknown data source name %q", ds.Name)
		}
		if seen[ds.Name] {
			return fmt.Errorf("duplicate data source %q", ds.Name)
		}
		seen[ds.Name] = true

		if ds.Cache == "" {
			return fmt.Errorf("data source %q has no cache path", ds.Name)
		}
		if ds.Kind == "" {
			ds.Kind = DefaultKind(ds.Name)
		}
		if !knownKinds[ds.Kind] {
			return fmt.Errorf(
				"data source %q has unknown kind %q", ds.Name, ds.Kind,
			)
		}
		if ds.Kind != DefaultKind(ds.Name) {
			sc.Warnings = append(sc.Warnings, ValidationWarning{
				SourceName: ds.Name,
				Field:      "kind",
				Message: fmt.Sprintf(
					"kind %q is unusual for %s (default %q)",
					ds.Kind, ds.Name, DefaultKind(ds.Name),
				),
			})
		}
		if ds.Language == "" {
			ds.Language = "en"
		}
	}
	return nil
}

// ByName returns the configured source with the given name, or nil.
func (sc *SourcesConfig) ByName(name string) *DataSourceConfig {
	for i := range sc.DataSources {
		if sc.DataSources[i].Name == name {
			return &sc.DataSources[i]
		}
	}
	return nil
}

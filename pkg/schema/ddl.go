package schema

import (
	"fmt"
	"reflect"
	"strings"
)

// generateDDL creates a CREATE TABLE statement from struct tags.
// Table-level constraints (unique keys, foreign keys) are appended
// after the columns; SQLite requires them inside the CREATE TABLE.
func generateDDL(model any, tableName string, constraints ...string) string {
	v := reflect.ValueOf(model)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	t := v.Type()

	var clauses []string

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		dbTag := field.Tag.Get("db")
		ddlTag := field.Tag.Get("ddl")

		if dbTag != "" && ddlTag != "" {
			clauses = append(clauses, fmt.Sprintf("    %s %s", dbTag, ddlTag))
		}
	}

	for _, c := range constraints {
		clauses = append(clauses, "    "+c)
	}

	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n%s\n);",
		tableName,
		strings.Join(clauses, ",\n"))
}

// All returns every model in creation order: referenced tables first.
func All() []DDLGenerator {
	return []DDLGenerator{
		Taxon{},
		ScientificNameSynonym{},
		CommonName{},
		CrossReference{},
		Conflict{},
		CapsRule{},
		ImportRun{},
	}
}

// Taxon DDL methods
func (t Taxon) TableDDL() string {
	return generateDDL(t, "taxa",
		"UNIQUE (primary_source, primary_source_id)",
	)
}

func (t Taxon) IndexDDL() []string {
	return []string{
		"CREATE INDEX IF NOT EXISTS idx_taxa_canonical_name ON taxa (canonical_name);",
		"CREATE INDEX IF NOT EXISTS idx_taxa_validity ON taxa (validity_status);",
	}
}

func (t Taxon) TableName() string {
	return "taxa"
}

// ScientificNameSynonym DDL methods
func (s ScientificNameSynonym) TableDDL() string {
	return generateDDL(s, "scientific_name_synonyms",
		"UNIQUE (taxon_id, normalized_name, source)",
		"FOREIGN KEY (taxon_id) REFERENCES taxa (id) ON DELETE CASCADE",
	)
}

func (s ScientificNameSynonym) IndexDDL() []string {
	return []string{
		"CREATE INDEX IF NOT EXISTS idx_synonyms_normalized_name ON scientific_name_synonyms (normalized_name);",
	}
}

func (s ScientificNameSynonym) TableName() string {
	return "scientific_name_synonyms"
}

// CommonName DDL methods
func (c CommonName) TableDDL() string {
	return generateDDL(c, "common_names",
		"UNIQUE (taxon_id, normalized_name, source, language)",
		"FOREIGN KEY (taxon_id) REFERENCES taxa (id) ON DELETE CASCADE",
	)
}

func (c CommonName) IndexDDL() []string {
	return []string{
		"CREATE INDEX IF NOT EXISTS idx_common_names_lang_norm ON common_names (language, normalized_name);",
		"CREATE INDEX IF NOT EXISTS idx_common_names_taxon ON common_names (taxon_id);",
		"CREATE INDEX IF NOT EXISTS idx_common_names_uuid ON common_names (name_uuid);",
	}
}

func (c CommonName) TableName() string {
	return "common_names"
}

// CrossReference DDL methods
func (x CrossReference) TableDDL() string {
	return generateDDL(x, "taxon_cross_references",
		"UNIQUE (taxon_id, source, external_id)",
		"FOREIGN KEY (taxon_id) REFERENCES taxa (id) ON DELETE CASCADE",
	)
}

func (x CrossReference) IndexDDL() []string {
	return []string{
		"CREATE INDEX IF NOT EXISTS idx_xrefs_external ON taxon_cross_references (source, external_id);",
	}
}

func (x CrossReference) TableName() string {
	return "taxon_cross_references"
}

// Conflict DDL methods
func (c Conflict) TableDDL() string {
	return generateDDL(c, "common_name_conflicts")
}

func (c Conflict) IndexDDL() []string {
	return []string{
		"CREATE INDEX IF NOT EXISTS idx_conflicts_norm ON common_name_conflicts (normalized_name);",
		"CREATE INDEX IF NOT EXISTS idx_conflicts_type ON common_name_conflicts (conflict_type);",
	}
}

func (c Conflict) TableName() string {
	return "common_name_conflicts"
}

// CapsRule DDL methods
func (r CapsRule) TableDDL() string {
	return generateDDL(r, "caps_rules",
		"UNIQUE (word)",
	)
}

func (r CapsRule) IndexDDL() []string {
	return []string{}
}

func (r CapsRule) TableName() string {
	return "caps_rules"
}

// ImportRun DDL methods
func (r ImportRun) TableDDL() string {
	return generateDDL(r, "import_runs")
}

func (r ImportRun) IndexDDL() []string {
	return []string{
		"CREATE INDEX IF NOT EXISTS idx_import_runs_type ON import_runs (import_type);",
	}
}

func (r ImportRun) TableName() string {
	return "import_runs"
}

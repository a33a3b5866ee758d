// Package config provides configuration management for gnvern.
//
// This package has no I/O dependencies (no file operations, no network
// calls). Validation functions may write user-facing warnings via
// gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml >
// defaults
//
// # Design Principles
//
// - Default config (from New()) is always valid - no validation needed
// - All mutations go through Option functions
// - Invalid options are rejected with gn.Warn() - config stays valid
// - ToOptions() converts persistent fields (those in config.yaml)
//
// # Environment Variables
//
// Use the GNVERN_ prefix with underscores for nesting:
//
//	GNVERN_DATABASE_PATH=/data/gnvern.sqlite
//	GNVERN_LOG_LEVEL=info
//	GNVERN_JOBS_NUMBER=8
package config

import (
	"runtime"
)

// Config represents the complete gnvern configuration.
type Config struct {
	// Database contains embedded database settings.
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`

	// Ingest contains settings specific to the ingest command.
	Ingest IngestConfig `mapstructure:"ingest" yaml:"ingest"`

	// Resolve contains settings for best-name resolution and reports.
	Resolve ResolveConfig `mapstructure:"resolve" yaml:"resolve"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// JobsNumber is the number of concurrent workers for read-side
	// operations. All writes stay single-writer.
	JobsNumber int `mapstructure:"jobs_number" yaml:"jobs_number"`

	// HomeDir determines where config, cache and logs directories
	// reside. Set by the CLI during init, no default.
	HomeDir string
}

// DatabaseConfig contains settings for the embedded SQLite store.
type DatabaseConfig struct {
	// Path is the location of the database file. A path whose parent
	// directory does not exist is a fatal configuration error.
	Path string `mapstructure:"path" yaml:"path"`

	// BatchSize is the number of records per progress/commit batch.
	BatchSize int `mapstructure:"batch_size" yaml:"batch_size"`
}

// IngestConfig contains settings specific to the ingest command.
// All fields are runtime-only (CLI flags), not persisted in config.yaml.
type IngestConfig struct {
	// Sources lists the source names to ingest. Empty means all
	// configured sources.
	Sources []string `mapstructure:"sources" yaml:"sources"`

	// Limit caps the number of records read per source; 0 is no cap.
	Limit int `mapstructure:"limit" yaml:"limit"`

	// IncludeSynonyms imports scientific-name synonyms from the
	// checklist source.
	IncludeSynonyms bool `mapstructure:"include_synonyms" yaml:"include_synonyms"`
}

// ResolveConfig parameterizes ambiguity and selection queries.
type ResolveConfig struct {
	// Language filters resolution to one ISO 639-1 language.
	Language string `mapstructure:"language" yaml:"language"`

	// Kingdom, when set, is an exact filter on taxon kingdom.
	Kingdom string `mapstructure:"kingdom" yaml:"kingdom"`

	// AllowAmbiguous lets the selector return an ambiguous name
	// (flagged) instead of rejecting it.
	AllowAmbiguous bool `mapstructure:"allow_ambiguous" yaml:"allow_ambiguous"`
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json' or 'text'.
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be a log file (to default place), STDERR or STDOUT
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
func New() *Config {
	res := &Config{
		Database: DatabaseConfig{
			Path:      "", // resolved to CacheDir(homeDir)/gnvern.sqlite by CLI
			BatchSize: 10_000,
		},
		Resolve: ResolveConfig{
			Language: "en",
		},
		Log: LogConfig{
			Format:      "json",
			Level:       "info",
			Destination: "file",
		},
		JobsNumber: runtime.NumCPU(),
	}

	return res
}

package config

import (
	"strings"
)

// Option is a function that modifies a Config.
// Options validate inputs and reject invalid values with warnings.
type Option func(*Config)

// OptDatabasePath sets the location of the embedded database file.
func OptDatabasePath(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Path", s) {
			c.Database.Path = s
		}
	}
}

// OptDatabaseBatchSize sets the number of records per commit batch.
func OptDatabaseBatchSize(i int) Option {
	return func(c *Config) {
		if isValidInt("Batch Size", i) {
			c.Database.BatchSize = i
		}
	}
}

// OptIngestSources sets the list of source names to ingest.
// Empty slice means ingest all configured sources.
// Runtime-only field - not in ToOptions().
func OptIngestSources(ss []string) Option {
	return func(c *Config) {
		if len(ss) > 0 {
			c.Ingest.Sources = ss
		}
	}
}

// OptIngestLimit caps the number of records read per source.
// Runtime-only field - not in ToOptions().
func OptIngestLimit(i int) Option {
	return func(c *Config) {
		if isValidInt("Ingest Limit", i) {
			c.Ingest.Limit = i
		}
	}
}

// OptIngestIncludeSynonyms enables synonym import from the checklist.
// Runtime-only field - not in ToOptions().
func OptIngestIncludeSynonyms(b bool) Option {
	return func(c *Config) {
		c.Ingest.IncludeSynonyms = b
	}
}

// OptResolveLanguage sets the ISO 639-1 language for resolution.
func OptResolveLanguage(s string) Option {
	s = strings.ToLower(strings.TrimSpace(s))
	return func(c *Config) {
		if isValidString("Language", s) {
			c.Resolve.Language = s
		}
	}
}

// OptResolveKingdom sets an exact kingdom filter for resolution.
// Runtime-only field - not in ToOptions().
func OptResolveKingdom(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Kingdom", s) {
			c.Resolve.Kingdom = s
		}
	}
}

// OptResolveAllowAmbiguous lets the selector return ambiguous names.
// Runtime-only field - not in ToOptions().
func OptResolveAllowAmbiguous(b bool) Option {
	return func(c *Config) {
		c.Resolve.AllowAmbiguous = b
	}
}

// OptLogLevel sets the logging level.
// Valid values: "debug", "info", "warn", "error".
func OptLogLevel(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Level", s) {
			c.Log.Level = s
		}
	}
}

// OptLogFormat sets the log output format.
// Valid values: "json", "text".
func OptLogFormat(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Format", s) {
			c.Log.Format = s
		}
	}
}

// OptLogDestination sets where logs are written.
// Valid values: "file", "stderr", "stdout".
func OptLogDestination(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Destination", s) {
			c.Log.Destination = s
		}
	}
}

// OptJobsNumber sets the number of concurrent workers for read-side
// operations. Default is runtime.NumCPU().
func OptJobsNumber(i int) Option {
	return func(c *Config) {
		if isValidInt("Jobs Number", i) {
			c.JobsNumber = i
		}
	}
}

// OptHomeDir sets the home directory for config, cache, and log
// locations. Set once at startup from os.UserHomeDir().
// Runtime-only field - not in ToOptions().
func OptHomeDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Home Directory", s) {
			c.HomeDir = s
		}
	}
}

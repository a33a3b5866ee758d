package config_test

import (
	"testing"

	"github.com/gnames/gnvern/pkg/config"
	"github.com/stretchr/testify/assert"
)

func TestNewDefaults(t *testing.T) {
	cfg := config.New()
	assert.Equal(t, 10_000, cfg.Database.BatchSize)
	assert.Equal(t, "en", cfg.Resolve.Language)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Positive(t, cfg.JobsNumber)
}

func TestUpdate(t *testing.T) {
	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptDatabasePath("/data/gnvern.sqlite"),
		config.OptIngestSources([]string{"iucn", "col"}),
		config.OptIngestLimit(100),
		config.OptResolveLanguage("FR "),
		config.OptResolveKingdom("Animalia"),
		config.OptJobsNumber(4),
	})
	assert.Equal(t, "/data/gnvern.sqlite", cfg.Database.Path)
	assert.Equal(t, []string{"iucn", "col"}, cfg.Ingest.Sources)
	assert.Equal(t, 100, cfg.Ingest.Limit)
	assert.Equal(t, "fr", cfg.Resolve.Language)
	assert.Equal(t, "Animalia", cfg.Resolve.Kingdom)
	assert.Equal(t, 4, cfg.JobsNumber)
}

func TestInvalidOptionsIgnored(t *testing.T) {
	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptDatabasePath("  "),
		config.OptDatabaseBatchSize(-5),
		config.OptLogLevel("verbose"),
		config.OptLogFormat("xml"),
	})
	assert.Equal(t, "", cfg.Database.Path)
	assert.Equal(t, 10_000, cfg.Database.BatchSize)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestToOptionsRoundTrip(t *testing.T) {
	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptDatabasePath("/data/db.sqlite"),
		config.OptLogLevel("debug"),
	})

	fresh := config.New()
	fresh.Update(cfg.ToOptions())
	assert.Equal(t, "/data/db.sqlite", fresh.Database.Path)
	assert.Equal(t, "debug", fresh.Log.Level)
	// Runtime-only fields do not round-trip.
	cfg.Update([]config.Option{config.OptIngestLimit(5)})
	fresh2 := config.New()
	fresh2.Update(cfg.ToOptions())
	assert.Zero(t, fresh2.Ingest.Limit)
}

func TestPaths(t *testing.T) {
	home := "/home/u"
	assert.Equal(t, "/home/u/.config/gnvern", config.ConfigDir(home))
	assert.Equal(t, "/home/u/.cache/gnvern", config.CacheDir(home))
	assert.Equal(t,
		"/home/u/.config/gnvern/config.yaml", config.ConfigFilePath(home))
	assert.Equal(t,
		"/home/u/.config/gnvern/sources.yaml", config.SourcesFilePath(home))
	assert.Equal(t,
		"/home/u/.cache/gnvern/gnvern.sqlite",
		config.DefaultDatabasePath(home))
}

package iosources_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gnames/gnvern/internal/iosources"
	"github.com/gnames/gnvern/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSources(t *testing.T, home, content string) {
	t.Helper()
	dir := config.ConfigDir(home)
	require.NoError(t, os.MkdirAll(dir, 0755))
	err := os.WriteFile(
		config.SourcesFilePath(home), []byte(content), 0644,
	)
	require.NoError(t, err)
}

func TestLoad(t *testing.T) {
	home := t.TempDir()
	writeSources(t, home, `
data_sources:
  - name: col
    cache: ~/caches/col.sqlite
  - name: iucn
    cache: /data/iucn.sqlite
`)

	cfg := config.New()
	cfg.Update([]config.Option{config.OptHomeDir(home)})

	sc, err := iosources.New(cfg).Load()
	require.NoError(t, err)
	require.Len(t, sc.DataSources, 2)

	col := sc.ByName("col")
	require.NotNil(t, col)
	assert.Equal(t, "sfga", col.Kind)
	assert.Equal(t,
		filepath.Join(home, "caches", "col.sqlite"), col.Cache)

	iucn := sc.ByName("iucn")
	require.NotNil(t, iucn)
	assert.Equal(t, "/data/iucn.sqlite", iucn.Cache)
}

func TestLoadMissingFile(t *testing.T) {
	cfg := config.New()
	cfg.Update([]config.Option{config.OptHomeDir(t.TempDir())})

	_, err := iosources.New(cfg).Load()
	assert.Error(t, err)
}

func TestLoadInvalid(t *testing.T) {
	home := t.TempDir()
	writeSources(t, home, `
data_sources:
  - name: gbif
    cache: /data/gbif.sqlite
`)
	cfg := config.New()
	cfg.Update([]config.Option{config.OptHomeDir(home)})

	_, err := iosources.New(cfg).Load()
	assert.Error(t, err)
}

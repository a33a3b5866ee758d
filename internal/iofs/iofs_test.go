package iofs

import (
	"os"
	"testing"

	"github.com/gnames/gnvern/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestEnsureDirs verifies all required directories are created and
// repeated calls succeed.
func TestEnsureDirs(t *testing.T) {
	tmpDir := t.TempDir()

	require.NoError(t, EnsureDirs(tmpDir))
	require.NoError(t, EnsureDirs(tmpDir))

	for _, dir := range []string{
		config.ConfigDir(tmpDir),
		config.CacheDir(tmpDir),
		config.LogDir(tmpDir),
	} {
		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir(), "%s should be a directory", dir)
	}
}

// TestEnsureConfigFile verifies the embedded config is seeded once
// and user edits survive later calls.
func TestEnsureConfigFile(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, EnsureDirs(tmpDir))

	require.NoError(t, EnsureConfigFile(tmpDir))
	path := config.ConfigFilePath(tmpDir)
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, ConfigYAML, string(content))

	custom := "# Custom config\ndatabase:\n  path: /tmp/custom.sqlite"
	require.NoError(t, os.WriteFile(path, []byte(custom), 0644))

	require.NoError(t, EnsureConfigFile(tmpDir))
	content, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, custom, string(content),
		"Existing config file should not be overwritten")
}

// TestEnsureSourcesFile verifies the embedded sources list is seeded
// once and user edits survive later calls.
func TestEnsureSourcesFile(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, EnsureDirs(tmpDir))

	require.NoError(t, EnsureSourcesFile(tmpDir))
	path := config.SourcesFilePath(tmpDir)
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, SourcesYAML, string(content))

	custom := "data_sources:\n  - name: col\n    cache: /tmp/col.sqlite"
	require.NoError(t, os.WriteFile(path, []byte(custom), 0644))

	require.NoError(t, EnsureSourcesFile(tmpDir))
	content, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, custom, string(content),
		"Existing sources file should not be overwritten")
}

// TestEmbeddedFiles verifies the embedded templates carry the
// sections the bootstrap depends on.
func TestEmbeddedFiles(t *testing.T) {
	assert.Contains(t, ConfigYAML, "database")
	assert.Contains(t, ConfigYAML, "log")
	assert.Contains(t, SourcesYAML, "data_sources")
	for _, name := range []string{"col", "iucn", "wikidata", "wikipedia"} {
		assert.Contains(t, SourcesYAML, name)
	}
}

// Package iofs seeds the application's home directories and the
// default configuration files on first run. Existing user files are
// never overwritten.
package iofs

import (
	_ "embed"
	"os"

	"github.com/gnames/gnvern/pkg/config"
)

//go:embed config.yaml
var ConfigYAML string

//go:embed sources.yaml
var SourcesYAML string

// EnsureDirs creates the config, cache and log directories under the
// user's home.
func EnsureDirs(homeDir string) error {
	dirs := []string{
		config.ConfigDir(homeDir),
		config.CacheDir(homeDir),
		config.LogDir(homeDir),
	}
	for _, v := range dirs {
		if err := touchDir(v); err != nil {
			return err
		}
	}
	return nil
}

func touchDir(dir string) error {
	info, err := os.Stat(dir)
	if err == nil && info.IsDir() {
		return nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return CreateDirError(dir, err)
	}

	return nil
}

// EnsureConfigFile seeds the embedded config.yaml unless the user
// already has one.
func EnsureConfigFile(homeDir string) error {
	return seedFile(config.ConfigFilePath(homeDir), ConfigYAML)
}

// EnsureSourcesFile seeds the embedded sources.yaml that lists the
// source caches, unless the user already has one.
func EnsureSourcesFile(homeDir string) error {
	return seedFile(config.SourcesFilePath(homeDir), SourcesYAML)
}

func seedFile(path, content string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return CopyFileError(path, err)
	}
	return nil
}

package config

import (
	"path/filepath"
)

// AppName is used in generating file system paths.
var AppName = "gnvern"

// ConfigDir returns the directory path for configuration files.
// Returns ~/.config/gnvern by default.
func ConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config", AppName)
}

// CacheDir returns the directory path for the database and temp files.
// Returns ~/.cache/gnvern by default.
func CacheDir(homeDir string) string {
	return filepath.Join(homeDir, ".cache", AppName)
}

// LogDir returns the directory path for log files.
// Returns ~/.local/share/gnvern/logs by default.
func LogDir(homeDir string) string {
	return filepath.Join(homeDir, ".local", "share", AppName, "logs")
}

// ConfigFilePath returns the path of the main config file.
func ConfigFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "config.yaml")
}

// SourcesFilePath returns the path of the sources file.
func SourcesFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "sources.yaml")
}

// DefaultDatabasePath returns the database location used when
// database.path is not configured.
func DefaultDatabasePath(homeDir string) string {
	return filepath.Join(CacheDir(homeDir), "gnvern.sqlite")
}

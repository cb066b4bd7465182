package env

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

const appName = "ttpdist"

// WorkDir returns the workspace holding the package index,
// <XDG_CACHE_HOME>/ttpdist. It creates the directory with 0700 permissions
// if it doesn't exist.
func WorkDir() (string, error) {
	dir := filepath.Join(xdg.CacheHome, appName)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", err
	}
	return dir, nil
}

// ConfigFile returns the default configuration file,
// <XDG_CONFIG_HOME>/ttpdist/config.yaml. The file may not exist.
func ConfigFile() string {
	return filepath.Join(xdg.ConfigHome, appName, "config.yaml")
}

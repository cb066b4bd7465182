package config

import (
	"fmt"
	"os"

	"github.com/goplus/ttpdist/pkgs/mod/versions"
	"gopkg.in/yaml.v3"
)

// Config holds ttpdist defaults. Command-line flags override every field.
type Config struct {
	SourceDir   string `yaml:"source_dir"`
	OutputDir   string `yaml:"output_dir"`
	VersionFile string `yaml:"version_file"`
	AllowList   string `yaml:"allowlist"`
	BuildType   string `yaml:"build_type"`
	Debug       bool   `yaml:"debug"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		SourceDir:   ".",
		OutputDir:   "dist",
		VersionFile: versions.DefaultFile,
		BuildType:   "Release",
	}
}

// Load reads the configuration file at path over the defaults. A missing
// file yields Default unless required is set.
func Load(path string, required bool) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !required {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

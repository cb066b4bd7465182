package build

import (
	"os"
	"path/filepath"
	"time"

	"github.com/goplus/ttpdist/pkgs/dist"
	"gopkg.in/yaml.v3"
)

// ManifestFile is written at the root of every platform directory.
const ManifestFile = "ttpdist.yaml"

// Manifest is the package metadata read by consumers. Layout paths are
// relative to the package output directory.
type Manifest struct {
	Version   string         `yaml:"version"`
	Semver    string         `yaml:"semver,omitempty"`
	OS        string         `yaml:"os"`
	Arch      string         `yaml:"arch"`
	BuildType string         `yaml:"build_type"`
	DirName   string         `yaml:"dir"`
	Selection string         `yaml:"selection"`
	Layout    dist.Layout    `yaml:"layout"`
	Files     map[string]int `yaml:"files"`
	BuildTime time.Time      `yaml:"build_time"`
}

func writeManifest(dir string, m *Manifest) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, ManifestFile), data, 0o644)
}

// ReadManifest reads the manifest of the platform directory dir.
func ReadManifest(dir string) (*Manifest, error) {
	data, err := os.ReadFile(filepath.Join(dir, ManifestFile))
	if err != nil {
		return nil, err
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

package build

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/goplus/ttpdist/pkgs/mod/versions"
)

// Workspace directory layout:
//
//	workspaceDir/
//	  .cache.json      # package index: maps "version-dirName" to IndexEntry
const cacheFile = ".cache.json"

// IndexEntry records one produced package.
type IndexEntry struct {
	Version   string    `json:"version"`
	DirName   string    `json:"dir"`
	OutputDir string    `json:"output_dir"`
	Files     int       `json:"files"`
	BuildTime time.Time `json:"build_time"`
}

// packageIndex maps "version-dirName" keys to their entries.
type packageIndex struct {
	Cache map[string]*IndexEntry `json:"cache"`
}

func cacheKey(version, dirName string) string {
	return version + "-" + dirName
}

func (c *packageIndex) get(version, dirName string) (*IndexEntry, bool) {
	entry, ok := c.Cache[cacheKey(version, dirName)]
	return entry, ok
}

func (c *packageIndex) set(entry *IndexEntry) {
	if c.Cache == nil {
		c.Cache = make(map[string]*IndexEntry)
	}
	c.Cache[cacheKey(entry.Version, entry.DirName)] = entry
}

// loadIndex reads the index file from the workspace directory. A missing
// file yields an empty index.
func loadIndex(workspaceDir string) (*packageIndex, error) {
	data, err := os.ReadFile(filepath.Join(workspaceDir, cacheFile))
	if os.IsNotExist(err) {
		return &packageIndex{}, nil
	}
	if err != nil {
		return nil, err
	}
	var index packageIndex
	if err := json.Unmarshal(data, &index); err != nil {
		return nil, err
	}
	return &index, nil
}

// saveIndex writes the index file to the workspace directory.
func saveIndex(workspaceDir string, index *packageIndex) error {
	if err := os.MkdirAll(workspaceDir, 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(index, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(workspaceDir, cacheFile), data, 0o644)
}

// List returns the packages recorded in workspaceDir ordered by version,
// then directory name.
func List(workspaceDir string) ([]*IndexEntry, error) {
	index, err := loadIndex(workspaceDir)
	if err != nil {
		return nil, err
	}
	entries := make([]*IndexEntry, 0, len(index.Cache))
	for _, e := range index.Cache {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool {
		if c := versions.Compare(entries[i].Version, entries[j].Version); c != 0 {
			return c < 0
		}
		return entries[i].DirName < entries[j].DirName
	})
	return entries, nil
}

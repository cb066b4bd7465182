package dist

import (
	_ "embed"
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/qiniu/x/errors"
	"gopkg.in/yaml.v3"
)

// AllowListVersion is the allow-list file format understood by this package.
const AllowListVersion = 1

//go:embed allowlist.yaml
var defaultAllowList []byte

// Category groups allow-listed libraries by what they provide.
type Category struct {
	Name  string   `yaml:"name"`
	Files []string `yaml:"files"`
}

// AllowList is the set of compiled libraries shipped when the lib
// directory is filtered.
type AllowList struct {
	Version    int        `yaml:"version"`
	Categories []Category `yaml:"categories"`
}

// DefaultAllowList returns the allow-list embedded in the binary.
func DefaultAllowList() *AllowList {
	a, err := ParseAllowList(defaultAllowList)
	if err != nil {
		panic(fmt.Sprintf("embedded allow-list: %v", err))
	}
	return a
}

// LoadAllowList reads an allow-list from a YAML file.
func LoadAllowList(file string) (*AllowList, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	a, err := ParseAllowList(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}
	return a, nil
}

// ParseAllowList decodes and validates an allow-list.
func ParseAllowList(data []byte) (*AllowList, error) {
	var a AllowList
	if err := yaml.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAllowList, err)
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return &a, nil
}

// Validate reports every problem in the list at once.
func (a *AllowList) Validate() error {
	var errs errors.List
	if a.Version != AllowListVersion {
		errs.Add(fmt.Errorf("unsupported version %d, want %d", a.Version, AllowListVersion))
	}
	if a.Len() == 0 {
		errs.Add(fmt.Errorf("no files listed"))
	}
	seen := make(map[string]string)
	for _, c := range a.Categories {
		if c.Name == "" {
			errs.Add(fmt.Errorf("category with no name"))
		}
		for _, f := range c.Files {
			switch {
			case strings.TrimSpace(f) == "":
				errs.Add(fmt.Errorf("category %q: empty file name", c.Name))
				continue
			case strings.Contains(f, `\`):
				errs.Add(fmt.Errorf("category %q: %q: use forward slashes", c.Name, f))
				continue
			case path.IsAbs(f) || f != path.Clean(f) || f == ".." || strings.HasPrefix(f, "../"):
				errs.Add(fmt.Errorf("category %q: %q: not a clean relative path", c.Name, f))
				continue
			}
			if _, err := path.Match(f, ""); err != nil {
				errs.Add(fmt.Errorf("category %q: %q: %v", c.Name, f, err))
				continue
			}
			key := strings.ToLower(f)
			if prev, ok := seen[key]; ok {
				errs.Add(fmt.Errorf("category %q: %q already listed in %q", c.Name, f, prev))
				continue
			}
			seen[key] = c.Name
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %v", ErrInvalidAllowList, errs.ToError())
}

// Files returns every entry in declaration order.
func (a *AllowList) Files() []string {
	var files []string
	for _, c := range a.Categories {
		files = append(files, c.Files...)
	}
	return files
}

// Len returns the number of entries.
func (a *AllowList) Len() int {
	n := 0
	for _, c := range a.Categories {
		n += len(c.Files)
	}
	return n
}

// Match reports whether rel, a slash-separated path relative to the lib
// directory, is allow-listed. Windows library names are case-insensitive,
// and so is matching.
func (a *AllowList) Match(rel string) bool {
	for _, f := range a.Files() {
		if matchFold(f, rel) {
			return true
		}
	}
	return false
}

// Unmatched returns the entries that match none of rels.
func (a *AllowList) Unmatched(rels []string) []string {
	var missing []string
	for _, f := range a.Files() {
		found := false
		for _, rel := range rels {
			if matchFold(f, rel) {
				found = true
				break
			}
		}
		if !found {
			missing = append(missing, f)
		}
	}
	return missing
}

func matchFold(pattern, name string) bool {
	ok, _ := path.Match(strings.ToLower(pattern), strings.ToLower(name))
	return ok
}

package versions

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"golang.org/x/mod/semver"
)

// DefaultFile is where the distribution version is declared, relative to
// the repository root.
const DefaultFile = "gradle/versions.gradle"

// DefaultKey is the assignment holding the distribution version.
const DefaultKey = "ttpDistVersion"

// ErrMalformedVersionFile is returned when no version assignment is found.
var ErrMalformedVersionFile = errors.New("malformed version file")

var defaultPattern = keyPattern(DefaultKey)

func keyPattern(key string) *regexp.Regexp {
	return regexp.MustCompile(`\b` + regexp.QuoteMeta(key) + `[ \t]*=[ \t]*'([^'\n]*)'`)
}

// Parse extracts the value of ttpDistVersion from a build-configuration file.
// If data is nil, file is read from disk; otherwise file is only used in
// error messages.
func Parse(file string, data []byte) (string, error) {
	var reader io.Reader

	if data != nil {
		reader = bytes.NewBuffer(data)
	} else {
		f, err := os.Open(file)
		if err != nil {
			return "", err
		}
		defer f.Close()
		reader = f
	}

	content, err := io.ReadAll(reader)
	if err != nil {
		return "", err
	}
	ver, err := match(DefaultKey, defaultPattern, content)
	if err != nil && file != "" {
		return "", fmt.Errorf("%s: %w", file, err)
	}
	return ver, err
}

// ParseKey extracts the value assigned to key in data.
func ParseKey(key string, data []byte) (string, error) {
	return match(key, keyPattern(key), data)
}

func match(key string, re *regexp.Regexp, data []byte) (string, error) {
	m := re.FindSubmatch(data)
	if m == nil {
		return "", fmt.Errorf("%w: no %s = '<version>' line", ErrMalformedVersionFile, key)
	}
	ver := strings.TrimSpace(string(m[1]))
	if ver == "" {
		return "", fmt.Errorf("%w: empty version", ErrMalformedVersionFile)
	}
	return ver, nil
}

// Semver returns the canonical semantic version of ver ("2.3" becomes
// "v2.3.0"), or "" if ver is not a semantic version.
func Semver(ver string) string {
	if !strings.HasPrefix(ver, "v") {
		ver = "v" + ver
	}
	return semver.Canonical(ver)
}

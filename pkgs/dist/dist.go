package dist

import (
	"path"
	"path/filepath"
	"strings"

	"github.com/goplus/ttpdist/pkgs/platform"
)

// Artifact directory layout, relative to the source root:
//
//	<dirName>/
//	  include/     # headers, copied as is
//	  bin/         # runtime binaries, copied as is
//	  debuglib/    # debug libraries, copied as is
//	  lib/         # compile-time libraries, filtered by Selection
const (
	IncludeDir  = "include"
	BinDir      = "bin"
	DebugLibDir = "debuglib"
	LibDir      = "lib"
)

// Categories lists the copied directories in copy order.
var Categories = []string{IncludeDir, BinDir, DebugLibDir, LibDir}

// Include trees published to consumers, relative to the directory name.
var includeSuffixes = []string{
	"include",
	"include/libxml2",
	"include/gdal",
	"include/proj",
	"include/geos",
	"include/spatialite",
	"include/kml",
}

var androidABI = map[platform.Arch]string{
	platform.ARMv8: "arm64-v8a",
	platform.ARMv7: "armeabi-v7a",
	platform.X86:   "x86",
}

// DirName returns the artifact directory of a platform, e.g. "win64-release"
// or "android-arm64-v8a-debug".
func DirName(s platform.Settings) (string, error) {
	base, err := dirBase(s)
	if err != nil {
		return "", &PlatformError{Op: "resolve", Settings: s, Err: err}
	}
	buildType := strings.ToLower(strings.TrimSpace(s.BuildType))
	if buildType == "" {
		return "", &PlatformError{Op: "resolve", Settings: s, Err: ErrInvalidSettings}
	}
	return base + "-" + buildType, nil
}

func dirBase(s platform.Settings) (string, error) {
	switch s.OS {
	case platform.Windows:
		if s.Arch == platform.X86_64 {
			return "win64", nil
		}
		return "win32", nil
	case platform.Android:
		abi, ok := androidABI[s.Arch]
		if !ok {
			return "", ErrUnsupportedArchitecture
		}
		return "android-" + abi, nil
	case platform.Macos:
		return "macos-64", nil
	case platform.Linux:
		return "linux-amd64", nil
	}
	return "", ErrUnsupportedPlatform
}

// -----------------------------------------------------------------------------

// Selection decides which compiled libraries of a platform are copied.
type Selection struct {
	allow *AllowList
}

// SelectionFor returns the selection of s. Only Windows x86_64 is filtered
// through allow (DefaultAllowList if nil); every other platform copies its
// lib directory as is.
func SelectionFor(s platform.Settings, allow *AllowList) Selection {
	if s.OS == platform.Windows && s.Arch == platform.X86_64 {
		if allow == nil {
			allow = DefaultAllowList()
		}
		return Selection{allow: allow}
	}
	return Selection{}
}

// Filtered reports whether the lib directory is filtered.
func (sel Selection) Filtered() bool {
	return sel.allow != nil
}

// AllowList returns the filtering list, or nil if unfiltered.
func (sel Selection) AllowList() *AllowList {
	return sel.allow
}

// Keep reports whether the lib file at rel, relative to the lib directory,
// is copied.
func (sel Selection) Keep(rel string) bool {
	if sel.allow == nil {
		return true
	}
	return sel.allow.Match(filepath.ToSlash(rel))
}

func (sel Selection) String() string {
	if sel.allow == nil {
		return "all"
	}
	return "allow-list"
}

// -----------------------------------------------------------------------------

// Layout is the package metadata published to consumers.
type Layout struct {
	IncludeDirs []string `json:"includedirs" yaml:"includedirs"`
	LibDirs     []string `json:"libdirs" yaml:"libdirs"`
}

// LayoutFor returns the include and lib search directories rooted at dirName.
func LayoutFor(dirName string) Layout {
	l := Layout{
		IncludeDirs: make([]string, 0, len(includeSuffixes)),
		LibDirs:     []string{path.Join(dirName, LibDir)},
	}
	for _, suffix := range includeSuffixes {
		l.IncludeDirs = append(l.IncludeDirs, path.Join(dirName, suffix))
	}
	return l
}

// -----------------------------------------------------------------------------

// Resolution is everything derived from one Settings value.
type Resolution struct {
	Settings  platform.Settings
	DirName   string
	Selection Selection
	Layout    Layout
}

// Locator resolves platform settings against an allow-list.
type Locator struct {
	allow *AllowList
}

// NewLocator creates a Locator. A nil allow uses DefaultAllowList.
func NewLocator(allow *AllowList) *Locator {
	if allow == nil {
		allow = DefaultAllowList()
	}
	return &Locator{allow: allow}
}

// AllowList returns the list used for filtered platforms.
func (l *Locator) AllowList() *AllowList {
	return l.allow
}

// Resolve computes the directory name, selection and layout of s.
func (l *Locator) Resolve(s platform.Settings) (*Resolution, error) {
	dirName, err := DirName(s)
	if err != nil {
		return nil, err
	}
	return &Resolution{
		Settings:  s,
		DirName:   dirName,
		Selection: SelectionFor(s, l.allow),
		Layout:    LayoutFor(dirName),
	}, nil
}

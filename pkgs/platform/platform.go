package platform

import (
	"runtime"
	"strings"
)

// OS is the target operating system of a package.
type OS int

const (
	UnknownOS OS = iota
	Windows
	Android
	Macos
	Linux
)

var osNames = [...]string{
	UnknownOS: "unknown",
	Windows:   "Windows",
	Android:   "Android",
	Macos:     "Macos",
	Linux:     "Linux",
}

func (o OS) String() string {
	if o < 0 || int(o) >= len(osNames) {
		return osNames[UnknownOS]
	}
	return osNames[o]
}

// ParseOS maps an OS spelling to an OS. Both the packaging-tool names
// (Windows, Macos, ...) and Go names (windows, darwin, ...) are accepted,
// ignoring case. Anything else is UnknownOS.
func ParseOS(s string) OS {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "windows", "win":
		return Windows
	case "android":
		return Android
	case "macos", "darwin", "osx":
		return Macos
	case "linux":
		return Linux
	}
	return UnknownOS
}

// -----------------------------------------------------------------------------

// Arch is the target CPU architecture of a package.
type Arch int

const (
	UnknownArch Arch = iota
	X86_64
	ARMv8
	ARMv7
	X86
)

var archNames = [...]string{
	UnknownArch: "unknown",
	X86_64:      "x86_64",
	ARMv8:       "armv8",
	ARMv7:       "armv7",
	X86:         "x86",
}

func (a Arch) String() string {
	if a < 0 || int(a) >= len(archNames) {
		return archNames[UnknownArch]
	}
	return archNames[a]
}

// ParseArch maps an architecture spelling to an Arch, ignoring case.
func ParseArch(s string) Arch {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "x86_64", "amd64", "x64":
		return X86_64
	case "armv8", "arm64", "aarch64":
		return ARMv8
	case "armv7", "arm", "armeabi-v7a":
		return ARMv7
	case "x86", "386", "i386", "i686":
		return X86
	}
	return UnknownArch
}

// -----------------------------------------------------------------------------

// Settings describes the platform a package is produced for.
// A Settings value is never modified after construction.
type Settings struct {
	OS        OS
	Arch      Arch
	BuildType string

	// raw spellings, kept for error messages when OS or Arch is unknown
	rawOS   string
	rawArch string
}

// New returns Settings for the given spellings.
func New(os, arch, buildType string) Settings {
	return Settings{
		OS:        ParseOS(os),
		Arch:      ParseArch(arch),
		BuildType: buildType,
		rawOS:     os,
		rawArch:   arch,
	}
}

// Host returns Settings for the machine running the tool.
func Host(buildType string) Settings {
	return New(runtime.GOOS, runtime.GOARCH, buildType)
}

// OSName returns the OS as it was spelled by the caller when unknown.
func (s Settings) OSName() string {
	if s.OS == UnknownOS && s.rawOS != "" {
		return s.rawOS
	}
	return s.OS.String()
}

// ArchName returns the Arch as it was spelled by the caller when unknown.
func (s Settings) ArchName() string {
	if s.Arch == UnknownArch && s.rawArch != "" {
		return s.rawArch
	}
	return s.Arch.String()
}

// String returns the settings in the form "os/arch/build_type".
func (s Settings) String() string {
	return s.OSName() + "/" + s.ArchName() + "/" + s.BuildType
}

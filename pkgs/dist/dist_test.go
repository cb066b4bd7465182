package dist

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/goplus/ttpdist/pkgs/platform"
)

func TestDirName(t *testing.T) {
	tests := []struct {
		os, arch, buildType string
		want                string
	}{
		{"Windows", "x86_64", "Release", "win64-release"},
		{"Windows", "x86_64", "Debug", "win64-debug"},
		{"Windows", "x86", "Release", "win32-release"},
		{"Windows", "armv8", "Release", "win32-release"},
		{"Windows", "sparc", "Release", "win32-release"},
		{"Android", "armv8", "Release", "android-arm64-v8a-release"},
		{"Android", "armv7", "Debug", "android-armeabi-v7a-debug"},
		{"Android", "x86", "Release", "android-x86-release"},
		{"Macos", "x86_64", "Release", "macos-64-release"},
		{"Macos", "armv8", "RelWithDebInfo", "macos-64-relwithdebinfo"},
		{"Macos", "", "DEBUG", "macos-64-debug"},
		{"Linux", "x86_64", "Release", "linux-amd64-release"},
		{"Linux", "armv8", "MinSizeRel", "linux-amd64-minsizerel"},
	}
	for _, tt := range tests {
		t.Run(tt.os+"/"+tt.arch+"/"+tt.buildType, func(t *testing.T) {
			got, err := DirName(platform.New(tt.os, tt.arch, tt.buildType))
			if err != nil {
				t.Fatalf("DirName() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("DirName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDirName_Errors(t *testing.T) {
	tests := []struct {
		name    string
		s       platform.Settings
		wantErr error
	}{
		{"android x86_64", platform.New("Android", "x86_64", "Release"), ErrUnsupportedArchitecture},
		{"android unknown arch", platform.New("Android", "mips", "Release"), ErrUnsupportedArchitecture},
		{"unknown os", platform.New("FreeBSD", "x86_64", "Release"), ErrUnsupportedPlatform},
		{"empty os", platform.New("", "x86_64", "Release"), ErrUnsupportedPlatform},
		{"empty build type", platform.New("Linux", "x86_64", ""), ErrInvalidSettings},
		{"blank build type", platform.New("Windows", "x86_64", "  "), ErrInvalidSettings},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DirName(tt.s)
			if err == nil {
				t.Fatalf("DirName() = %q, want error", got)
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("DirName() error = %v, want %v", err, tt.wantErr)
			}
			var perr *PlatformError
			if !errors.As(err, &perr) {
				t.Fatalf("DirName() error %T is not *PlatformError", err)
			}
			if perr.Settings != tt.s {
				t.Errorf("PlatformError.Settings = %v, want %v", perr.Settings, tt.s)
			}
		})
	}
}

func TestDirName_ErrorMessage(t *testing.T) {
	_, err := DirName(platform.New("Android", "mips", "Release"))
	if err == nil {
		t.Fatal("expected error")
	}
	if msg := err.Error(); !strings.Contains(msg, "Android/mips/Release") {
		t.Errorf("error %q does not mention the settings", msg)
	}
}

func TestDirName_Idempotent(t *testing.T) {
	s := platform.New("Android", "armv8", "Release")
	first, err := DirName(s)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		got, err := DirName(s)
		if err != nil {
			t.Fatal(err)
		}
		if got != first {
			t.Errorf("DirName() call %d = %q, first call = %q", i, got, first)
		}
	}
}

func TestSelectionFor(t *testing.T) {
	allow := DefaultAllowList()
	tests := []struct {
		os, arch     string
		wantFiltered bool
	}{
		{"Windows", "x86_64", true},
		{"Windows", "x86", false},
		{"Windows", "armv8", false},
		{"Android", "armv8", false},
		{"Macos", "x86_64", false},
		{"Linux", "x86_64", false},
	}
	for _, tt := range tests {
		t.Run(tt.os+"/"+tt.arch, func(t *testing.T) {
			sel := SelectionFor(platform.New(tt.os, tt.arch, "Release"), allow)
			if sel.Filtered() != tt.wantFiltered {
				t.Errorf("Filtered() = %v, want %v", sel.Filtered(), tt.wantFiltered)
			}
			if !sel.Keep("libcrypto.lib") {
				t.Error("Keep(libcrypto.lib) = false")
			}
			if got := sel.Keep("gdal_build_tmp.obj"); got == tt.wantFiltered {
				t.Errorf("Keep(gdal_build_tmp.obj) = %v, want %v", got, !tt.wantFiltered)
			}
		})
	}
}

func TestSelectionFor_NilAllowList(t *testing.T) {
	sel := SelectionFor(platform.New("Windows", "x86_64", "Release"), nil)
	if !sel.Filtered() {
		t.Fatal("Windows x86_64 selection must be filtered")
	}
	if sel.AllowList().Len() != DefaultAllowList().Len() {
		t.Errorf("nil allow-list did not fall back to the default")
	}
}

func TestSelection_KeepSubdir(t *testing.T) {
	sel := SelectionFor(platform.New("Windows", "x86_64", "Release"), nil)
	if sel.Keep("cmake/libcrypto.lib") {
		t.Error("allow-list entries must match relative to the lib directory")
	}
	if sel.String() != "allow-list" {
		t.Errorf("String() = %q", sel.String())
	}
	if got := (Selection{}).String(); got != "all" {
		t.Errorf("String() = %q", got)
	}
}

func TestLayoutFor(t *testing.T) {
	l := LayoutFor("win64-release")
	want := Layout{
		IncludeDirs: []string{
			"win64-release/include",
			"win64-release/include/libxml2",
			"win64-release/include/gdal",
			"win64-release/include/proj",
			"win64-release/include/geos",
			"win64-release/include/spatialite",
			"win64-release/include/kml",
		},
		LibDirs: []string{"win64-release/lib"},
	}
	if !reflect.DeepEqual(l, want) {
		t.Errorf("LayoutFor() = %+v, want %+v", l, want)
	}
}

func TestLayoutFor_OSIndependent(t *testing.T) {
	a := LayoutFor("x")
	b := LayoutFor("y")
	if len(a.IncludeDirs) != len(b.IncludeDirs) || len(a.LibDirs) != len(b.LibDirs) {
		t.Fatal("layouts differ in shape")
	}
	for i := range a.IncludeDirs {
		if strings.TrimPrefix(a.IncludeDirs[i], "x/") != strings.TrimPrefix(b.IncludeDirs[i], "y/") {
			t.Errorf("include dir %d differs: %q vs %q", i, a.IncludeDirs[i], b.IncludeDirs[i])
		}
	}
}

func TestLocator_Resolve(t *testing.T) {
	l := NewLocator(nil)
	r, err := l.Resolve(platform.New("Windows", "x86_64", "Release"))
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if r.DirName != "win64-release" {
		t.Errorf("DirName = %q, want win64-release", r.DirName)
	}
	if !r.Selection.Filtered() {
		t.Error("Selection not filtered")
	}
	if r.Selection.AllowList() != l.AllowList() {
		t.Error("Selection does not use the locator allow-list")
	}
	for _, dir := range append(r.Layout.IncludeDirs, r.Layout.LibDirs...) {
		if !strings.HasPrefix(dir, r.DirName+"/") {
			t.Errorf("layout dir %q not rooted at %q", dir, r.DirName)
		}
	}

	again, err := l.Resolve(platform.New("Windows", "x86_64", "Release"))
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(r, again) {
		t.Errorf("Resolve() not idempotent: %+v vs %+v", r, again)
	}
}

func TestLocator_ResolveError(t *testing.T) {
	l := NewLocator(nil)
	r, err := l.Resolve(platform.New("Android", "x86_64", "Release"))
	if !errors.Is(err, ErrUnsupportedArchitecture) {
		t.Fatalf("Resolve() error = %v, want ErrUnsupportedArchitecture", err)
	}
	if r != nil {
		t.Errorf("Resolve() returned %+v with error", r)
	}
}

package build

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestSaveAndLoadIndex(t *testing.T) {
	tmpDir := t.TempDir()

	now := time.Now().Truncate(time.Second)
	index := &packageIndex{}
	index.set(&IndexEntry{
		Version:   "2.3.1",
		DirName:   "win64-release",
		OutputDir: "/tmp/output/win64-release",
		Files:     12,
		BuildTime: now,
	})

	if err := saveIndex(tmpDir, index); err != nil {
		t.Fatalf("saveIndex failed: %v", err)
	}

	loaded, err := loadIndex(tmpDir)
	if err != nil {
		t.Fatalf("loadIndex failed: %v", err)
	}

	entry, ok := loaded.get("2.3.1", "win64-release")
	if !ok {
		t.Fatal("entry not found after reload")
	}
	if entry.OutputDir != "/tmp/output/win64-release" {
		t.Errorf("OutputDir mismatch: got %q", entry.OutputDir)
	}
	if entry.Files != 12 {
		t.Errorf("Files mismatch: got %d, want 12", entry.Files)
	}
	if !entry.BuildTime.Truncate(time.Second).Equal(now) {
		t.Errorf("BuildTime mismatch: got %v, want %v", entry.BuildTime, now)
	}
	if _, ok := loaded.get("2.3.1", "win32-release"); ok {
		t.Error("unexpected entry for win32-release")
	}
}

func TestLoadIndex_NotExist(t *testing.T) {
	index, err := loadIndex(filepath.Join(t.TempDir(), "missing"))
	if err != nil {
		t.Fatalf("loadIndex failed: %v", err)
	}
	if len(index.Cache) != 0 {
		t.Errorf("expected empty index, got %v", index.Cache)
	}
}

func TestLoadIndex_InvalidJSON(t *testing.T) {
	tmpDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(tmpDir, cacheFile), []byte("invalid json"), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	if _, err := loadIndex(tmpDir); err == nil {
		t.Fatal("expected error for invalid JSON, got nil")
	}
	if _, err := List(tmpDir); err == nil {
		t.Fatal("expected List error for invalid JSON, got nil")
	}
}

func TestList_Order(t *testing.T) {
	tmpDir := t.TempDir()
	now := time.Now()
	index := &packageIndex{}
	index.set(&IndexEntry{Version: "5.1.0.12", DirName: "win64-release", BuildTime: now})
	index.set(&IndexEntry{Version: "5.1.0.9", DirName: "win64-release", BuildTime: now})
	index.set(&IndexEntry{Version: "5.1.0.9", DirName: "linux-amd64-release", BuildTime: now})
	index.set(&IndexEntry{Version: "4.10.0", DirName: "macos-64-release", BuildTime: now})
	if err := saveIndex(tmpDir, index); err != nil {
		t.Fatal(err)
	}

	entries, err := List(tmpDir)
	if err != nil {
		t.Fatal(err)
	}
	var got []string
	for _, e := range entries {
		got = append(got, e.Version+" "+e.DirName)
	}
	want := []string{
		"4.10.0 macos-64-release",
		"5.1.0.9 linux-amd64-release",
		"5.1.0.9 win64-release",
		"5.1.0.12 win64-release",
	}
	if len(got) != len(want) {
		t.Fatalf("List() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("List()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

package action

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/pacsweep/pacsweep/internal/models"
)

func entryForFile(t *testing.T, dir, fileName string) models.CacheEntry {
	t.Helper()
	entry, err := models.ParseCacheFileName(fileName, dir, []string{"pkg.tar.zst"})
	if err != nil {
		t.Fatalf("Failed to parse fixture name %s: %v", fileName, err)
	}
	return entry
}

func TestPrint(t *testing.T) {
	entries := []models.CacheEntry{
		{Identity: models.Identity{Name: "curl", Version: "7.80.0", Release: "1", Arch: "x86_64"}},
		{Identity: models.Identity{Name: "foo-bar", Version: "1.0", Release: "3", Arch: "any"}},
	}

	var buf bytes.Buffer
	Print(&buf, entries)

	want := "curl-7.80.0-1\nfoo-bar-1.0-3\n"
	if buf.String() != want {
		t.Errorf("Print output = %q, want %q", buf.String(), want)
	}
}

func TestRemove(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "pacsweep-action-test-")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	names := []string{
		"curl-7.79.0-1.x86_64.pkg.tar.zst",
		"curl-7.80.0-1.x86_64.pkg.tar.zst",
	}
	var entries []models.CacheEntry
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(tmpDir, name), []byte("dummy"), 0644); err != nil {
			t.Fatalf("Failed to write fixture: %v", err)
		}
		entries = append(entries, entryForFile(t, tmpDir, name))
	}

	removed, err := Remove(entries)
	if err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if removed != 2 {
		t.Errorf("Remove removed %d files, want 2", removed)
	}

	for _, entry := range entries {
		if _, err := os.Stat(entry.Path); !os.IsNotExist(err) {
			t.Errorf("%s still exists after Remove", entry.Path)
		}
	}
}

func TestRemoveVanishedFileIsNoOp(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "pacsweep-action-test-")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	present := "curl-7.80.0-1.x86_64.pkg.tar.zst"
	if err := os.WriteFile(filepath.Join(tmpDir, present), []byte("dummy"), 0644); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}

	entries := []models.CacheEntry{
		// selected but deleted by someone else in the meantime
		entryForFile(t, tmpDir, "curl-7.79.0-1.x86_64.pkg.tar.zst"),
		entryForFile(t, tmpDir, present),
	}

	removed, err := Remove(entries)
	if err != nil {
		t.Fatalf("Remove should treat a vanished file as satisfied, got: %v", err)
	}
	if removed != 1 {
		t.Errorf("Remove removed %d files, want 1", removed)
	}
	if _, err := os.Stat(filepath.Join(tmpDir, present)); !os.IsNotExist(err) {
		t.Error("remaining file was not deleted after the vanished one")
	}
}

func TestRemovePermissionDenied(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("running as root, permission checks do not apply")
	}

	tmpDir, err := os.MkdirTemp("", "pacsweep-action-test-")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	lockedDir := filepath.Join(tmpDir, "locked")
	if err := os.Mkdir(lockedDir, 0755); err != nil {
		t.Fatalf("Failed to create locked dir: %v", err)
	}

	names := []string{
		"curl-7.79.0-1.x86_64.pkg.tar.zst",
		"curl-7.80.0-1.x86_64.pkg.tar.zst",
	}
	var entries []models.CacheEntry
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(lockedDir, name), []byte("dummy"), 0644); err != nil {
			t.Fatalf("Failed to write fixture: %v", err)
		}
		entries = append(entries, entryForFile(t, lockedDir, name))
	}

	// removing from a read-only directory fails with EACCES
	if err := os.Chmod(lockedDir, 0555); err != nil {
		t.Fatalf("Failed to chmod: %v", err)
	}
	defer os.Chmod(lockedDir, 0755)

	removed, err := Remove(entries)
	if err == nil {
		t.Fatal("Remove in read-only directory should fail")
	}
	if !models.IsType(err, models.ErrDeletePermission) {
		t.Errorf("error = %v, want DeletePermission", err)
	}
	if removed != 0 {
		t.Errorf("Remove reported %d files removed, want 0", removed)
	}

	// the run stops at the first failure, so both files must remain
	for _, entry := range entries {
		if _, err := os.Stat(entry.Path); err != nil {
			t.Errorf("%s should still exist after aborted run", entry.Path)
		}
	}
}

package cli

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"os"
	"path/filepath"
	"testing"

	"github.com/ProtonMail/go-crypto/openpgp"
	"github.com/ProtonMail/go-crypto/openpgp/armor"
	"github.com/pacsweep/pacsweep/internal/models"
)

func writeArchive(t *testing.T, path, pkginfo string) {
	t.Helper()

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create archive: %v", err)
	}
	defer f.Close()

	gw := gzip.NewWriter(f)
	tw := tar.NewWriter(gw)

	if err := tw.WriteHeader(&tar.Header{Name: ".PKGINFO", Mode: 0644, Size: int64(len(pkginfo))}); err != nil {
		t.Fatalf("Failed to write tar header: %v", err)
	}
	if _, err := tw.Write([]byte(pkginfo)); err != nil {
		t.Fatalf("Failed to write .PKGINFO: %v", err)
	}
	if err := tw.Close(); err != nil {
		t.Fatalf("Failed to close tar writer: %v", err)
	}
	if err := gw.Close(); err != nil {
		t.Fatalf("Failed to close gzip writer: %v", err)
	}
}

// signAndWriteKeyring detach-signs the archive with a fresh key and
// writes the matching armored public keyring.
func signAndWriteKeyring(t *testing.T, archivePath, keyringPath string) {
	t.Helper()

	entity, err := openpgp.NewEntity("Cache Signer", "", "signer@example.com", nil)
	if err != nil {
		t.Fatalf("Failed to generate key: %v", err)
	}

	f, err := os.Open(archivePath)
	if err != nil {
		t.Fatalf("Failed to open archive: %v", err)
	}
	defer f.Close()

	var sig bytes.Buffer
	if err := openpgp.DetachSign(&sig, entity, f, nil); err != nil {
		t.Fatalf("Failed to sign archive: %v", err)
	}
	if err := os.WriteFile(archivePath+".sig", sig.Bytes(), 0644); err != nil {
		t.Fatalf("Failed to write signature: %v", err)
	}

	kf, err := os.Create(keyringPath)
	if err != nil {
		t.Fatalf("Failed to create keyring file: %v", err)
	}
	defer kf.Close()

	w, err := armor.Encode(kf, openpgp.PublicKeyType, nil)
	if err != nil {
		t.Fatalf("Failed to create armor encoder: %v", err)
	}
	if err := entity.Serialize(w); err != nil {
		t.Fatalf("Failed to serialize public key: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Failed to close armor encoder: %v", err)
	}
}

func TestVerifyClean(t *testing.T) {
	cacheDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(cacheDir, "xdg"))

	writeArchive(t, filepath.Join(cacheDir, "curl-7.80.0-1.x86_64.pkg.tar.gz"),
		"pkgname = curl\npkgver = 7.80.0-1\narch = x86_64\n")

	if _, err := runCommand(t, "verify", "-c", cacheDir); err != nil {
		t.Errorf("verify on a clean cache failed: %v", err)
	}
}

func TestVerifyMismatch(t *testing.T) {
	cacheDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(cacheDir, "xdg"))

	writeArchive(t, filepath.Join(cacheDir, "curl-7.80.0-1.x86_64.pkg.tar.gz"),
		"pkgname = curl\npkgver = 7.80.0-1\narch = x86_64\n")
	// archive content disagrees with the filename
	writeArchive(t, filepath.Join(cacheDir, "wget-1.2-1.any.pkg.tar.gz"),
		"pkgname = wget\npkgver = 1.3-1\narch = any\n")

	_, err := runCommand(t, "verify", "-c", cacheDir)
	if err == nil {
		t.Fatal("verify on a mismatching cache should fail")
	}
	if !models.IsType(err, models.ErrVerifyFailed) {
		t.Errorf("error = %v, want VerifyFailed", err)
	}
}

func TestVerifyWithKeyring(t *testing.T) {
	cacheDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(cacheDir, "xdg"))

	archivePath := filepath.Join(cacheDir, "curl-7.80.0-1.x86_64.pkg.tar.gz")
	writeArchive(t, archivePath, "pkgname = curl\npkgver = 7.80.0-1\narch = x86_64\n")

	keyringPath := filepath.Join(t.TempDir(), "keyring.asc")
	signAndWriteKeyring(t, archivePath, keyringPath)

	if _, err := runCommand(t, "verify", "-c", cacheDir, "--keyring", keyringPath); err != nil {
		t.Errorf("verify with a valid signature failed: %v", err)
	}

	// a second archive with no .sig fails the run
	writeArchive(t, filepath.Join(cacheDir, "wget-1.2-1.any.pkg.tar.gz"),
		"pkgname = wget\npkgver = 1.2-1\narch = any\n")

	_, err := runCommand(t, "verify", "-c", cacheDir, "--keyring", keyringPath)
	if err == nil {
		t.Fatal("verify should fail when an archive has no signature")
	}
	if !models.IsType(err, models.ErrVerifyFailed) {
		t.Errorf("error = %v, want VerifyFailed", err)
	}
}

func TestVerifyUnreadableKeyring(t *testing.T) {
	cacheDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(cacheDir, "xdg"))

	if _, err := runCommand(t, "verify", "-c", cacheDir, "--keyring", "/nonexistent/keyring.asc"); err == nil {
		t.Error("verify with unreadable keyring should fail")
	}
}

func TestVerifyRejectsEmptyCacheDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(t.TempDir(), "xdg"))

	// a flag-supplied empty path must be caught by validation, not by the
	// directory listing
	_, err := runCommand(t, "verify", "-c", "")
	if err == nil {
		t.Fatal("verify with empty cache dir should fail")
	}
	if !models.IsType(err, models.ErrInvalidConfig) {
		t.Errorf("error = %v, want InvalidConfig", err)
	}
}

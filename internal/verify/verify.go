// Package verify cross-checks cache archives against the metadata their
// filenames claim. A sweep trusts filenames; verify is the audit for that
// trust, and optionally checks detached signatures against a keyring.
package verify

import (
	"fmt"

	"github.com/ProtonMail/go-crypto/openpgp"
	"github.com/pacsweep/pacsweep/internal/models"
)

// Verifier checks cache entries. With a keyring set, every entry must
// also carry a valid detached signature.
type Verifier struct {
	keyring openpgp.EntityList
}

// New creates a Verifier. keyring may be nil to skip signature checks.
func New(keyring openpgp.EntityList) *Verifier {
	return &Verifier{keyring: keyring}
}

// VerifyEntry opens the archive behind entry, extracts its .PKGINFO and
// compares it against the identity parsed from the filename. The archive's
// pkgver field carries "<version>-<release>".
func (v *Verifier) VerifyEntry(entry models.CacheEntry) error {
	info, err := readPkgInfo(entry.Path)
	if err != nil {
		return fmt.Errorf("failed to read archive metadata: %w", err)
	}

	if info.Name != entry.Name {
		return fmt.Errorf("archive pkgname %q does not match filename name %q", info.Name, entry.Name)
	}
	if want := entry.Version + "-" + entry.Release; info.Version != want {
		return fmt.Errorf("archive pkgver %q does not match filename version %q", info.Version, want)
	}
	if info.Arch != entry.Arch {
		return fmt.Errorf("archive arch %q does not match filename arch %q", info.Arch, entry.Arch)
	}

	if v.keyring != nil {
		if err := v.checkSignature(entry.Path); err != nil {
			return err
		}
	}
	return nil
}

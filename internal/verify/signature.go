package verify

import (
	"fmt"
	"os"

	"github.com/ProtonMail/go-crypto/openpgp"
)

// LoadKeyring reads a public keyring from a file, trying armored format
// first and falling back to binary.
func LoadKeyring(path string) (openpgp.EntityList, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open keyring: %w", err)
	}
	defer f.Close()

	entityList, err := openpgp.ReadArmoredKeyRing(f)
	if err != nil {
		if _, serr := f.Seek(0, 0); serr != nil {
			return nil, serr
		}
		entityList, err = openpgp.ReadKeyRing(f)
		if err != nil {
			return nil, fmt.Errorf("failed to read keyring: %w", err)
		}
	}

	if len(entityList) == 0 {
		return nil, fmt.Errorf("no keys found in keyring")
	}
	return entityList, nil
}

// checkSignature verifies the detached <archive>.sig signature against
// the verifier's keyring. Pacman writes binary signatures; armored ones
// are accepted as a fallback.
func (v *Verifier) checkSignature(path string) error {
	sigPath := path + ".sig"

	sig, err := os.Open(sigPath)
	if err != nil {
		return fmt.Errorf("failed to open signature: %w", err)
	}
	defer sig.Close()

	signed, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open archive: %w", err)
	}
	defer signed.Close()

	if _, err := openpgp.CheckDetachedSignature(v.keyring, signed, sig, nil); err == nil {
		return nil
	}

	if _, err := sig.Seek(0, 0); err != nil {
		return err
	}
	if _, err := signed.Seek(0, 0); err != nil {
		return err
	}
	if _, err := openpgp.CheckArmoredDetachedSignature(v.keyring, signed, sig, nil); err != nil {
		return fmt.Errorf("signature verification failed for %s: %w", sigPath, err)
	}
	return nil
}

package cli

import (
	"fmt"

	"github.com/ProtonMail/go-crypto/openpgp"
	"github.com/pacsweep/pacsweep/internal/catalog"
	"github.com/pacsweep/pacsweep/internal/config"
	"github.com/pacsweep/pacsweep/internal/models"
	"github.com/pacsweep/pacsweep/internal/verify"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// NewVerifyCmd creates the verify command
func NewVerifyCmd() *cobra.Command {
	var cacheDir string
	var keyringPath string

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Cross-check cache archives against their filenames",
		Long: `Opens every archive in the cache, extracts its embedded .PKGINFO and
compares the recorded name, version and architecture against what the
filename claims. With --keyring, each archive must also carry a valid
detached .sig signature from one of the keyring's keys.

A cache that verifies clean is safe to sweep by filename.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfigFile(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("cache-dir") {
				cfg.CacheDir = cacheDir
			}
			if err := config.Validate(cfg); err != nil {
				return err
			}

			var keyring openpgp.EntityList
			if keyringPath != "" {
				keyring, err = verify.LoadKeyring(keyringPath)
				if err != nil {
					return err
				}
				logrus.Infof("Loaded %d keys from %s", len(keyring), keyringPath)
			}

			return runVerify(cfg, keyring)
		},
	}

	cmd.Flags().StringVarP(&cacheDir, "cache-dir", "c", config.DefaultCacheDir, "Path to pacman's package cache")
	cmd.Flags().StringVar(&keyringPath, "keyring", "", "Armored public keyring for detached signature checks")

	return cmd
}

func runVerify(cfg config.Config, keyring openpgp.EntityList) error {
	logrus.Infof("Scanning package cache: %s", cfg.CacheDir)
	cache, err := catalog.BuildCache(cfg.CacheDir, cfg.Extensions)
	if err != nil {
		return err
	}

	verifier := verify.New(keyring)

	failed := 0
	for _, entry := range cache.Entries() {
		if err := verifier.VerifyEntry(entry); err != nil {
			logrus.Errorf("%s: %v", entry.FileName, err)
			failed++
			continue
		}
		logrus.Debugf("Verified %s", entry.FileName)
	}

	if failed > 0 {
		return &models.SweepError{
			Type: models.ErrVerifyFailed,
			Err:  fmt.Errorf("%d of %d archives failed verification", failed, cache.Len()),
		}
	}

	logrus.Infof("All %d archives verified", cache.Len())
	return nil
}

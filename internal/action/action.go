package action

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/pacsweep/pacsweep/internal/models"
	"github.com/sirupsen/logrus"
)

// Print writes one canonical name-version-release line per entry.
func Print(w io.Writer, entries []models.CacheEntry) {
	for _, entry := range entries {
		fmt.Fprintln(w, entry.Identity.String())
	}
}

// Remove deletes the files behind the given entries, logging each one, and
// returns the number of files actually removed. A file that vanished since
// the catalog was built already matches the intended end state and is
// skipped. A permission failure aborts immediately with the remaining
// files untouched.
func Remove(entries []models.CacheEntry) (int, error) {
	removed := 0
	for _, entry := range entries {
		logrus.Infof("Deleting %s", entry.Identity)

		err := os.Remove(entry.Path)
		if err == nil {
			removed++
			continue
		}
		if errors.Is(err, fs.ErrNotExist) {
			logrus.Debugf("%s already gone, nothing to delete", entry.Path)
			continue
		}
		if errors.Is(err, fs.ErrPermission) {
			return removed, &models.SweepError{
				Type: models.ErrDeletePermission,
				Path: entry.Path,
				Err:  fmt.Errorf("no permission to delete this file, try running with elevated privileges: %w", err),
			}
		}
		return removed, fmt.Errorf("failed to delete %s: %w", entry.Path, err)
	}
	return removed, nil
}

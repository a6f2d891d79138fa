package catalog

import (
	"fmt"
	"os"
	"strings"

	"github.com/pacsweep/pacsweep/internal/models"
	"github.com/sirupsen/logrus"
)

// BuildCache lists the cache directory and parses every file whose name
// ends in one of the recognized archive suffixes. A matching file whose
// name does not follow the <name>-<version>-<release>.<arch>.<ext> grammar
// aborts the build: acting on a misparsed catalog is worse than failing,
// so malformed names are fatal rather than skipped.
func BuildCache(dir string, extensions []string) (*CacheCatalog, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &models.SweepError{
			Type: models.ErrCacheUnreadable,
			Path: dir,
			Err:  fmt.Errorf("failed to list cache directory: %w", err),
		}
	}

	var entries []models.CacheEntry
	for _, de := range dirEntries {
		if de.IsDir() {
			continue
		}
		if !hasArchiveSuffix(de.Name(), extensions) {
			logrus.Debugf("Skipping non-archive file: %s", de.Name())
			continue
		}

		entry, err := models.ParseCacheFileName(de.Name(), dir, extensions)
		if err != nil {
			return nil, err
		}

		logrus.Debugf("Found cached package: %s", entry.Identity)
		entries = append(entries, entry)
	}

	logrus.Infof("Found %d package archives in %s", len(entries), dir)
	return NewCache(entries), nil
}

func hasArchiveSuffix(name string, extensions []string) bool {
	for _, ext := range extensions {
		if strings.HasSuffix(name, "."+ext) {
			return true
		}
	}
	return false
}

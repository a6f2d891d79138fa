package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pacsweep/pacsweep/internal/models"
	"github.com/sirupsen/logrus"
)

// descFileName is the per-package metadata file inside the local database.
const descFileName = "desc"

// BuildInstalled reads the installed-package database: one subdirectory
// per package, each holding a desc file with %MARKER% lines followed by
// their value on the next line. Non-directory entries in the database
// root (ALPM_DB_VERSION) are skipped.
func BuildInstalled(dir string) (*InstalledCatalog, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &models.SweepError{
			Type: models.ErrInstalledDbUnreadable,
			Path: dir,
			Err:  fmt.Errorf("failed to list package database: %w", err),
		}
	}

	var records []models.InstalledRecord
	for _, de := range dirEntries {
		if !de.IsDir() {
			continue
		}

		rec, err := readInstalledRecord(filepath.Join(dir, de.Name()))
		if err != nil {
			return nil, &models.SweepError{
				Type: models.ErrMalformedInstalledRecord,
				Path: de.Name(),
				Err:  err,
			}
		}

		logrus.Debugf("Found installed package: %s", rec.Identity)
		records = append(records, rec)
	}

	logrus.Infof("Found %d installed packages in %s", len(records), dir)
	return NewInstalled(records), nil
}

func readInstalledRecord(pkgDir string) (models.InstalledRecord, error) {
	data, err := os.ReadFile(filepath.Join(pkgDir, descFileName))
	if err != nil {
		return models.InstalledRecord{}, fmt.Errorf("failed to read metadata file: %w", err)
	}

	lines := strings.Split(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n")

	name, err := fieldAfterMarker(lines, "%NAME%")
	if err != nil {
		return models.InstalledRecord{}, err
	}
	version, err := fieldAfterMarker(lines, "%VERSION%")
	if err != nil {
		return models.InstalledRecord{}, err
	}
	arch, err := fieldAfterMarker(lines, "%ARCH%")
	if err != nil {
		return models.InstalledRecord{}, err
	}

	return models.NewInstalledRecord(name, version, arch)
}

// fieldAfterMarker returns the line immediately following the marker line.
func fieldAfterMarker(lines []string, marker string) (string, error) {
	for i, line := range lines {
		if line != marker {
			continue
		}
		if i+1 >= len(lines) {
			return "", fmt.Errorf("marker %s has no value line", marker)
		}
		return lines[i+1], nil
	}
	return "", fmt.Errorf("marker %s missing", marker)
}

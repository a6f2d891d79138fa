package models

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Identity identifies a package by name, upstream version, packaging
// release and architecture. Two identities are equal only when all four
// fields match.
type Identity struct {
	Name    string
	Version string
	Release string
	Arch    string
}

// Equal reports whether both identities match on all four fields.
func (id Identity) Equal(other Identity) bool {
	return id.Name == other.Name &&
		id.Version == other.Version &&
		id.Release == other.Release &&
		id.Arch == other.Arch
}

// Compare orders identities by name, then version, then release, using
// plain byte-wise string comparison. Arch does not participate in the
// ordering. The comparison is deliberately not numeric: "9" sorts after
// "10". Retention pruning depends on this ordering staying as-is.
func (id Identity) Compare(other Identity) int {
	if c := strings.Compare(id.Name, other.Name); c != 0 {
		return c
	}
	if c := strings.Compare(id.Version, other.Version); c != 0 {
		return c
	}
	return strings.Compare(id.Release, other.Release)
}

// String returns the canonical name-version-release form.
func (id Identity) String() string {
	return id.Name + "-" + id.Version + "-" + id.Release
}

// CacheEntry is a package archive file found in the cache directory.
// The file may have vanished by the time a deletion is attempted.
type CacheEntry struct {
	Identity
	FileName string
	Path     string
}

// InstalledRecord describes a package currently installed on the system,
// independent of any cached archive file.
type InstalledRecord struct {
	Identity
}

// ParseCacheFileName parses a cache filename of the form
// <name>-<version>-<release>.<arch>.<ext>. The extension must be one of
// the given suffixes, the dot-segment before it is the architecture, and
// the remainder splits from the right into name, version and release.
// The name itself may contain hyphens.
func ParseCacheFileName(fileName, dir string, extensions []string) (CacheEntry, error) {
	var ext string
	for _, e := range extensions {
		if strings.HasSuffix(fileName, "."+e) {
			ext = e
			break
		}
	}
	if ext == "" {
		return CacheEntry{}, malformedCacheName(fileName, "no recognized archive extension")
	}

	stem := strings.TrimSuffix(fileName, "."+ext)
	dot := strings.LastIndex(stem, ".")
	if dot <= 0 {
		return CacheEntry{}, malformedCacheName(fileName, "missing architecture segment")
	}
	arch := stem[dot+1:]
	if arch == "" {
		return CacheEntry{}, malformedCacheName(fileName, "empty architecture segment")
	}

	fields := stem[:dot]
	i := strings.LastIndex(fields, "-")
	if i <= 0 || i == len(fields)-1 {
		return CacheEntry{}, malformedCacheName(fileName, "want name-version-release, too few fields")
	}
	release := fields[i+1:]
	j := strings.LastIndex(fields[:i], "-")
	if j <= 0 || j == i-1 {
		return CacheEntry{}, malformedCacheName(fileName, "want name-version-release, too few fields")
	}

	return CacheEntry{
		Identity: Identity{
			Name:    fields[:j],
			Version: fields[j+1 : i],
			Release: release,
			Arch:    arch,
		},
		FileName: fileName,
		Path:     filepath.Join(dir, fileName),
	}, nil
}

// NewInstalledRecord builds an InstalledRecord from raw desc-file fields.
// The version field is "<version>-<release>" with exactly one hyphen.
func NewInstalledRecord(name, version, arch string) (InstalledRecord, error) {
	parts := strings.Split(version, "-")
	if len(parts) != 2 {
		return InstalledRecord{}, fmt.Errorf("version %q: want exactly one hyphen between version and release", version)
	}
	return InstalledRecord{
		Identity: Identity{
			Name:    name,
			Version: parts[0],
			Release: parts[1],
			Arch:    arch,
		},
	}, nil
}

func malformedCacheName(fileName, reason string) error {
	return &SweepError{
		Type: ErrMalformedCacheFilename,
		Path: fileName,
		Err:  fmt.Errorf("%s", reason),
	}
}

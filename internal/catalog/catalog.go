package catalog

import "github.com/pacsweep/pacsweep/internal/models"

// CacheCatalog holds the package archive files of one cache directory in
// directory-listing order, with a name index built once at construction.
// Catalogs are immutable after construction.
type CacheCatalog struct {
	entries []models.CacheEntry
	byName  map[string][]models.CacheEntry
	names   []string
}

// NewCache builds a catalog over the given entries, preserving their order.
func NewCache(entries []models.CacheEntry) *CacheCatalog {
	c := &CacheCatalog{
		entries: entries,
		byName:  make(map[string][]models.CacheEntry),
	}
	for _, e := range entries {
		if _, seen := c.byName[e.Name]; !seen {
			c.names = append(c.names, e.Name)
		}
		c.byName[e.Name] = append(c.byName[e.Name], e)
	}
	return c
}

// Entries returns all entries in directory-listing order.
func (c *CacheCatalog) Entries() []models.CacheEntry {
	return c.entries
}

// ByName returns the entries for one package name, in listing order.
func (c *CacheCatalog) ByName(name string) []models.CacheEntry {
	return c.byName[name]
}

// Names returns the distinct package names, in first-seen order.
func (c *CacheCatalog) Names() []string {
	return c.names
}

// Len returns the number of entries.
func (c *CacheCatalog) Len() int {
	return len(c.entries)
}

// InstalledCatalog holds the records of the installed-package database.
// Immutable after construction.
type InstalledCatalog struct {
	records []models.InstalledRecord
	nameSet map[string]struct{}
	names   []string
}

// NewInstalled builds a catalog over the given records, preserving order.
func NewInstalled(records []models.InstalledRecord) *InstalledCatalog {
	c := &InstalledCatalog{
		records: records,
		nameSet: make(map[string]struct{}),
	}
	for _, r := range records {
		if _, seen := c.nameSet[r.Name]; !seen {
			c.names = append(c.names, r.Name)
			c.nameSet[r.Name] = struct{}{}
		}
	}
	return c
}

// Records returns all records in listing order.
func (c *InstalledCatalog) Records() []models.InstalledRecord {
	return c.records
}

// Has reports whether a package with the given name is installed, at any
// version.
func (c *InstalledCatalog) Has(name string) bool {
	_, ok := c.nameSet[name]
	return ok
}

// Names returns the distinct installed package names, in first-seen order.
func (c *InstalledCatalog) Names() []string {
	return c.names
}

// Len returns the number of records.
func (c *InstalledCatalog) Len() int {
	return len(c.records)
}

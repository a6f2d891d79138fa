// Package prune computes which cache entries a sweep should act on. All
// functions are pure: they read the catalogs and return fresh slices.
package prune

import (
	"sort"

	"github.com/pacsweep/pacsweep/internal/catalog"
	"github.com/pacsweep/pacsweep/internal/models"
)

// Uninstalled returns every cache entry whose package name is not present
// in the installed catalog, in cache-listing order. Matching is by name
// only: an installed package of any version protects all of its cached
// files from this path.
func Uninstalled(cache *catalog.CacheCatalog, installed *catalog.InstalledCatalog) []models.CacheEntry {
	var result []models.CacheEntry
	for _, entry := range cache.Entries() {
		if !installed.Has(entry.Name) {
			result = append(result, entry)
		}
	}
	return result
}

// ExcessOld returns, for each installed package name, the cache entries
// beyond the newest keep entries. "Newest" means highest by the string
// ordering of Identity.Compare, not by semantic version. Packages with at
// most keep cache entries, or with none, contribute nothing. keep = 0
// selects every cache entry of every installed package.
func ExcessOld(cache *catalog.CacheCatalog, installed *catalog.InstalledCatalog, keep int) []models.CacheEntry {
	var result []models.CacheEntry
	for _, name := range installed.Names() {
		entries := cache.ByName(name)
		if len(entries) <= keep {
			continue
		}

		sorted := make([]models.CacheEntry, len(entries))
		copy(sorted, entries)
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Identity.Compare(sorted[j].Identity) < 0
		})

		result = append(result, sorted[:len(sorted)-keep]...)
	}
	return result
}

// ResolveFiles maps identities back to the matching file entries in the
// cache, by full four-field identity equality. Selection results already
// carry their file, but going through the catalog keeps selection
// composable over bare identities.
func ResolveFiles(ids []models.Identity, cache *catalog.CacheCatalog) []models.CacheEntry {
	var result []models.CacheEntry
	for _, id := range ids {
		for _, entry := range cache.Entries() {
			if entry.Identity.Equal(id) {
				result = append(result, entry)
			}
		}
	}
	return result
}

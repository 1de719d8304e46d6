package usecase

import (
	"strings"

	"github.com/larder/backend/internal/domain"
)

// FindInventoryMatch returns the first entry whose name contains target or is
// contained by it, after lowercasing and trimming both. With several
// candidates ("chicken", "chicken broth") the earliest in inventory wins.
// Empty names never match.
func FindInventoryMatch(target string, inventory []domain.InventoryEntry) (domain.InventoryEntry, bool) {
	needle := normalizeItemName(target)
	if needle == "" {
		return domain.InventoryEntry{}, false
	}

	for _, entry := range inventory {
		name := normalizeItemName(entry.Name)
		if name == "" {
			continue
		}
		if strings.Contains(name, needle) || strings.Contains(needle, name) {
			return entry, true
		}
	}
	return domain.InventoryEntry{}, false
}

func normalizeItemName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

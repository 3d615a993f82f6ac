package naming

import (
	"path/filepath"
	"strings"
)

// DefaultCategory is the bucket for keys the catalog does not know.
const DefaultCategory = "uncategorized"

// Lookuper resolves an icon key to a category. taxonomy.Mapping implements it.
type Lookuper interface {
	Lookup(key string) (string, bool)
}

// ResolveCategory returns the category for key, or [DefaultCategory] when m
// has no entry for it or the entry is not usable as a folder name.
func ResolveCategory(key string, m Lookuper) string {
	if m != nil {
		if c, ok := m.Lookup(key); ok && IsFolderName(c) {
			return c
		}
	}
	return DefaultCategory
}

// IsFolderName reports whether category can be joined under the destination
// root as exactly one path element. Category ids come from downloaded markup,
// so empty ids, "." and "..", and anything holding a separator or volume
// name are rejected.
func IsFolderName(category string) bool {
	switch category {
	case "", ".", "..":
		return false
	}
	if strings.ContainsAny(category, `/\`+"\x00") {
		return false
	}
	return filepath.Base(category) == category && filepath.VolumeName(category) == ""
}

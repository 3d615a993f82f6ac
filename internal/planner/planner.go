package planner

import (
	"path/filepath"

	"github.com/backmassage/iconsort/internal/naming"
)

// Build produces one Entry per source path, in the given order. ext is the
// image suffix used for key normalization; cr carries collision state for
// the whole run and must not be shared across runs.
//
// Flow per file:
//  1. Normalize the filename to a catalog key
//  2. Resolve the category (default bucket when unmapped)
//  3. Build <destRoot>/<category>/<filename>
//  4. Disambiguate once if that path is already taken
func Build(sources []string, m naming.Lookuper, destRoot, ext string, cr *naming.CollisionResolver) []Entry {
	entries := make([]Entry, 0, len(sources))
	for _, src := range sources {
		entries = append(entries, buildEntry(src, m, destRoot, ext, cr))
	}
	return entries
}

func buildEntry(src string, m naming.Lookuper, destRoot, ext string, cr *naming.CollisionResolver) Entry {
	filename := filepath.Base(src)
	key, rule := naming.NormalizeWithRule(filename, ext)
	category := naming.ResolveCategory(key, m)
	dst, renamed := cr.Resolve(naming.DestinationPath(destRoot, category, filename))
	return Entry{
		Source:      src,
		Destination: dst,
		Key:         key,
		Rule:        rule,
		Category:    category,
		Renamed:     renamed,
	}
}

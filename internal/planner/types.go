package planner

import "github.com/backmassage/iconsort/internal/naming"

// Entry is one copy instruction: a source file and its final destination,
// plus the decisions that produced it.
type Entry struct {
	Source      string // Absolute or source-relative path of the icon.
	Destination string // <destRoot>/<category>/<name>, possibly "_dup"-renamed.

	Key      string // Normalized catalog key.
	Rule     string // Naming rule that produced Key ("" when none matched).
	Category string // Catalog category or naming.DefaultCategory.
	Renamed  bool   // Destination was disambiguated with naming.DupMarker.
}

// Uncategorized reports whether the entry fell back to the default bucket.
func (e Entry) Uncategorized() bool {
	return e.Category == naming.DefaultCategory
}

package naming

import (
	"strings"
	"unicode"
)

// KeyRule pairs a name with a match function over a filename stem (the
// filename without its image suffix). Rules are evaluated in order by
// [Normalize]; first match wins.
type KeyRule struct {
	Name  string
	Match func(stem string) (key string, ok bool)
}

// CopyMarker marks duplicated exports ("skull_copy.svg", "skull_copy_2.svg").
const CopyMarker = "_copy"

// numberSep separates a trailing counter from the icon name ("skull_1.svg").
const numberSep = "_"

// Rules is the ordered key-normalization table. A stem matching no rule is
// its own key.
var Rules = []KeyRule{
	// Rule 1: copy marker. Everything before the first "_copy".
	{
		Name: "copy-marker",
		Match: func(stem string) (string, bool) {
			before, _, found := strings.Cut(stem, CopyMarker)
			return before, found
		},
	},
	// Rule 2: numeric suffix. Drop a trailing "_<digits>" segment.
	{
		Name: "numeric-suffix",
		Match: func(stem string) (string, bool) {
			i := strings.LastIndex(stem, numberSep)
			if i == -1 || !allDigits(stem[i+len(numberSep):]) {
				return "", false
			}
			return stem[:i], true
		},
	},
}

// allDigits reports whether s is non-empty and made only of digits.
func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// Normalize returns the catalog key for filename. ext is the image suffix
// (with dot) stripped before the rules run. The result is never empty: when
// the matching rule would leave nothing ("_copy.svg", "_7.svg") the stem is
// used instead, and an empty stem falls back to filename itself.
func Normalize(filename, ext string) string {
	key, _ := NormalizeWithRule(filename, ext)
	return key
}

// NormalizeWithRule is [Normalize] that also reports which rule decided the
// key ("" when none matched).
func NormalizeWithRule(filename, ext string) (key, rule string) {
	stem := strings.TrimSuffix(filename, ext)
	if stem == "" {
		return filename, ""
	}
	for _, r := range Rules {
		k, ok := r.Match(stem)
		if !ok {
			continue
		}
		if k == "" {
			return stem, r.Name
		}
		return k, r.Name
	}
	return stem, ""
}

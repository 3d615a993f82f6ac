package taxonomy

import "sort"

// Entry pairs an icon key with its category.
type Entry struct {
	Key      string
	Category string
}

// Mapping is an immutable icon-key → category dictionary. The zero value is
// an empty mapping.
type Mapping struct {
	byKey map[string]string
	order []string // keys in first-seen order
}

// New builds a Mapping from entries in order. A key that repeats keeps the
// category of its first entry.
func New(entries ...Entry) Mapping {
	var m Mapping
	for _, e := range entries {
		m.add(e.Key, e.Category)
	}
	return m
}

// add inserts key unless it is already present. It reports whether the key
// was new.
func (m *Mapping) add(key, category string) bool {
	if _, ok := m.byKey[key]; ok {
		return false
	}
	if m.byKey == nil {
		m.byKey = make(map[string]string)
	}
	m.byKey[key] = category
	m.order = append(m.order, key)
	return true
}

// Lookup returns the category for key.
func (m Mapping) Lookup(key string) (string, bool) {
	c, ok := m.byKey[key]
	return c, ok
}

// Len returns the number of mapped keys.
func (m Mapping) Len() int { return len(m.order) }

// Keys returns the mapped keys in first-seen order.
func (m Mapping) Keys() []string {
	out := make([]string, len(m.order))
	copy(out, m.order)
	return out
}

// Entries returns every key with its category in first-seen order.
func (m Mapping) Entries() []Entry {
	out := make([]Entry, 0, len(m.order))
	for _, k := range m.order {
		out = append(out, Entry{Key: k, Category: m.byKey[k]})
	}
	return out
}

// Categories returns the distinct categories that own at least one key, in
// the order their first key was seen.
func (m Mapping) Categories() []string {
	seen := make(map[string]bool)
	var out []string
	for _, k := range m.order {
		c := m.byKey[k]
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	return out
}

// ByCategory groups keys under their category. Keys within a category are
// sorted.
func (m Mapping) ByCategory() map[string][]string {
	out := make(map[string][]string)
	for _, k := range m.order {
		c := m.byKey[k]
		out[c] = append(out[c], k)
	}
	for _, keys := range out {
		sort.Strings(keys)
	}
	return out
}

// Equal reports whether m and other map the same keys to the same categories
// in the same first-seen order.
func (m Mapping) Equal(other Mapping) bool {
	if len(m.order) != len(other.order) {
		return false
	}
	for i, k := range m.order {
		if other.order[i] != k || other.byKey[k] != m.byKey[k] {
			return false
		}
	}
	return true
}

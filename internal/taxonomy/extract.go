package taxonomy

import (
	"regexp"
	"strings"
)

// headingMarker opens every category block; the category id follows it
// directly and runs to the next double quote.
const headingMarker = `<h3 id="`

// reIconRef captures the slug of an icon page link such as
// href="/lorc/originals/ak47.html".
var reIconRef = regexp.MustCompile(`href="/[^"]+/([a-zA-Z0-9-]+)\.html"`)

// chunk is the markup of one category block, from just after the heading
// marker up to the next one.
type chunk struct {
	category string
	body     string
}

// splitChunks cuts markup at each heading marker. Text before the first
// marker is page front matter and is dropped, as are chunks whose id is never
// closed by a quote.
func splitChunks(markup string) []chunk {
	parts := strings.Split(markup, headingMarker)
	chunks := make([]chunk, 0, len(parts))
	for _, p := range parts[1:] {
		end := strings.IndexByte(p, '"')
		if end == -1 {
			continue
		}
		chunks = append(chunks, chunk{category: p[:end], body: p[end:]})
	}
	return chunks
}

// iconKeys returns every icon slug referenced in the chunk body, in document
// order. Duplicates are kept; [Extract] decides which occurrence counts.
func (c chunk) iconKeys() []string {
	matches := reIconRef.FindAllStringSubmatch(c.body, -1)
	keys := make([]string, 0, len(matches))
	for _, m := range matches {
		keys = append(keys, m[1])
	}
	return keys
}

// Extract builds the icon-key → category mapping from the catalog markup.
// It never fails: markup without any well-formed category block yields an
// empty mapping, and judging whether the result is large enough is left to
// the caller.
func Extract(markup string) Mapping {
	var m Mapping
	for _, c := range splitChunks(markup) {
		for _, key := range c.iconKeys() {
			m.add(key, c.category)
		}
	}
	return m
}

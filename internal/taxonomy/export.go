package taxonomy

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// mappingDoc is the YAML layout written by [Mapping.WriteYAML].
type mappingDoc struct {
	RunID      string              `yaml:"run_id,omitempty"`
	Icons      int                 `yaml:"icons"`
	Categories int                 `yaml:"categories"`
	ByCategory map[string][]string `yaml:"by_category"`
}

// WriteYAML writes the mapping grouped by category, for inspecting what a
// scrape produced. runID ties the dump to the log of the run that made it;
// it is omitted when empty.
func (m Mapping) WriteYAML(w io.Writer, runID string) error {
	doc := mappingDoc{
		RunID:      runID,
		Icons:      m.Len(),
		Categories: len(m.Categories()),
		ByCategory: m.ByCategory(),
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode mapping: %w", err)
	}
	return enc.Close()
}

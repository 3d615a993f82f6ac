package planner

import "sort"

// CategoryCount is the number of planned files for one category.
type CategoryCount struct {
	Category string
	Files    int
}

// Summary aggregates a plan for reporting.
type Summary struct {
	Files         int
	Uncategorized int
	Renamed       int
	Categories    []CategoryCount // Sorted by Files desc, then name.
}

// Summarize counts entries per category and tallies fallbacks and renames.
func Summarize(entries []Entry) Summary {
	s := Summary{Files: len(entries)}
	counts := make(map[string]int)
	for _, e := range entries {
		counts[e.Category]++
		if e.Uncategorized() {
			s.Uncategorized++
		}
		if e.Renamed {
			s.Renamed++
		}
	}
	for c, n := range counts {
		s.Categories = append(s.Categories, CategoryCount{Category: c, Files: n})
	}
	sort.Slice(s.Categories, func(i, j int) bool {
		a, b := s.Categories[i], s.Categories[j]
		if a.Files != b.Files {
			return a.Files > b.Files
		}
		return a.Category < b.Category
	})
	return s
}

package models

// NameRecord is one row of a name list: the display name and an optional category (e.g. major).
type NameRecord struct {
	Name     string
	Category string
}

// RegionValue is one row of a survey count table.
type RegionValue struct {
	Region string
	Value  float64
}

// SubstringCount is a repeated name fragment and how often it occurs.
type SubstringCount struct {
	Substring string `json:"substring" yaml:"substring"`
	Count     int    `json:"count" yaml:"count"`
}

// CategoryCount is the number of names with a suffix within one category.
type CategoryCount struct {
	Category string `json:"category" yaml:"category"`
	Count    int    `json:"count" yaml:"count"`
}

// SuffixCount is a two-character ending seen under more than one category.
// Categories keep the order in which they were first seen.
type SuffixCount struct {
	Suffix     string          `json:"suffix" yaml:"suffix"`
	Total      int             `json:"total" yaml:"total"`
	Categories []CategoryCount `json:"categories" yaml:"categories"`
}

// Counts returns the per-category counts as a map.
func (s SuffixCount) Counts() map[string]int {
	m := make(map[string]int, len(s.Categories))
	for _, c := range s.Categories {
		m[c.Category] = c.Count
	}
	return m
}

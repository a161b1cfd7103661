package mapreduce

import (
	"fmt"
	"sort"
)

// Ranked returns the entries counted at least minCount times, sorted by count (descending).
// Ties keep first-seen order.
func (c *Counter) Ranked(minCount int) []Entry {
	var ss []Entry
	for _, e := range c.entries {
		if e.Count >= minCount {
			ss = append(ss, e)
		}
	}
	return sortByCount(ss)
}

// Rank returns a copy of entries sorted by count (descending). Ties keep their order.
func Rank(entries []Entry) []Entry {
	return sortByCount(append([]Entry(nil), entries...))
}

func sortByCount(ss []Entry) []Entry {
	sort.SliceStable(ss, func(i, j int) bool {
		return ss[i].Count > ss[j].Count
	})
	return ss
}

// Top returns at most n entries. A negative n returns all of them.
func Top(entries []Entry, n int) []Entry {
	if n < 0 || len(entries) <= n {
		return entries
	}
	return entries[:n]
}

// TopKeywords returns the first n entries as formatted strings.
// Each string is formatted as "key:count" (e.g., "思远:2").
func TopKeywords(entries []Entry, n int) []string {
	top := Top(entries, n)

	keywords := make([]string, len(top))
	for i, e := range top {
		keywords[i] = fmt.Sprintf("%s:%d", e.Key, e.Count)
	}

	return keywords
}

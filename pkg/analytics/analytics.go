// Package analytics finds repeated fragments in name lists.
package analytics

import (
	"sort"
	"strings"

	"github.com/dtnitsch/cohortviz/models"
	"github.com/dtnitsch/cohortviz/pkg/mapreduce"
)

// SuffixLength is the number of characters taken from the end of a name by AnalyzeSuffixByCategory.
const SuffixLength = 2

// substrings emits every contiguous run of at least minLength runes of name.
// Shorter runs come first; runs of equal length are emitted left to right.
func substrings(name string, minLength int, emit func(string)) {
	runes := []rune(name)
	n := len(runes)
	for l := minLength; l <= n; l++ {
		for i := 0; i+l <= n; i++ {
			emit(string(runes[i : i+l]))
		}
	}
}

func cleanNames(names []string) []string {
	out := make([]string, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		out = append(out, name)
	}
	return out
}

// Analyze counts every substring of at least minLength characters across names and
// returns the ones that occur more than once, most frequent first.
// Overlapping occurrences inside one name are counted separately. Ties keep first-seen order.
func Analyze(names []string, minLength int) []models.SubstringCount {
	if minLength < 1 {
		minLength = 1
	}

	counter := mapreduce.Map(cleanNames(names), func(name string, emit func(string)) {
		substrings(name, minLength, emit)
	})

	ranked := counter.Ranked(2)
	out := make([]models.SubstringCount, len(ranked))
	for i, e := range ranked {
		out[i] = models.SubstringCount{Substring: e.Key, Count: e.Count}
	}
	return out
}

func suffix(name string) (string, bool) {
	runes := []rune(strings.TrimSpace(name))
	if len(runes) < SuffixLength {
		return "", false
	}
	return string(runes[len(runes)-SuffixLength:]), true
}

// AnalyzeSuffixByCategory cross-tabulates the last two characters of each name against
// its category and keeps only suffixes seen under more than one distinct category.
// Results are ordered by total count (descending), ties by first-seen suffix.
func AnalyzeSuffixByCategory(records []models.NameRecord) []models.SuffixCount {
	var order []string
	bySuffix := make(map[string]*mapreduce.Counter)
	for _, r := range records {
		category := strings.TrimSpace(r.Category)
		s, ok := suffix(r.Name)
		if !ok || category == "" {
			continue
		}
		c, exists := bySuffix[s]
		if !exists {
			c = mapreduce.NewCounter()
			bySuffix[s] = c
			order = append(order, s)
		}
		c.Inc(category)
	}

	var out []models.SuffixCount
	for _, s := range order {
		c := bySuffix[s]
		if c.Len() < 2 {
			continue
		}
		sc := models.SuffixCount{Suffix: s}
		for _, e := range c.Entries() {
			sc.Categories = append(sc.Categories, models.CategoryCount{Category: e.Key, Count: e.Count})
			sc.Total += e.Count
		}
		out = append(out, sc)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Total > out[j].Total
	})
	return out
}

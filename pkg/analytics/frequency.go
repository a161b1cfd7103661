package analytics

import (
	"unicode"

	"github.com/dtnitsch/cohortviz/pkg/mapreduce"
)

// SurnameFrequency counts the first character of every name.
func SurnameFrequency(names []string) []mapreduce.Entry {
	return mapreduce.Map(cleanNames(names), func(name string, emit func(string)) {
		for _, r := range name {
			emit(string(r))
			return
		}
	}).Entries()
}

// CharacterFrequency counts every non-space character of every name.
func CharacterFrequency(names []string) []mapreduce.Entry {
	return mapreduce.Map(cleanNames(names), func(name string, emit func(string)) {
		for _, r := range name {
			if unicode.IsSpace(r) {
				continue
			}
			emit(string(r))
		}
	}).Entries()
}

// ValueFrequency counts whole values, e.g. school names.
func ValueFrequency(values []string) []mapreduce.Entry {
	return mapreduce.Map(cleanNames(values), func(v string, emit func(string)) {
		emit(v)
	}).Entries()
}

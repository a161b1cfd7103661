// Package glyphs reports characters a font cannot draw.
package glyphs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/font/sfnt"
)

// Load parses a TrueType/OpenType font, or the first face of a .ttc collection.
func Load(path string) (*sfnt.Font, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read font (set font.path to a CJK font): %w", err)
	}

	if strings.EqualFold(filepath.Ext(path), ".ttc") {
		coll, err := sfnt.ParseCollection(data)
		if err != nil {
			return nil, fmt.Errorf("failed to parse font collection %s: %w", path, err)
		}
		return coll.Font(0)
	}

	f, err := sfnt.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font %s: %w", path, err)
	}
	return f, nil
}

// Missing returns the runes of texts that f maps to no glyph, each once,
// in first-seen order. Whitespace is ignored.
func Missing(f *sfnt.Font, texts ...string) []rune {
	var buf sfnt.Buffer
	var out []rune
	checked := make(map[rune]bool)
	for _, s := range texts {
		for _, r := range s {
			if checked[r] || r == ' ' || r == '\n' || r == '\t' {
				continue
			}
			checked[r] = true
			idx, err := f.GlyphIndex(&buf, r)
			if err != nil || idx == 0 {
				out = append(out, r)
			}
		}
	}
	return out
}

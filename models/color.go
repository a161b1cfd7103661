package models

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// ParseHexColor parses "#RRGGBB" or "#RRGGBBAA".
func ParseHexColor(s string) (color.NRGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 && len(hex) != 8 {
		return color.NRGBA{}, fmt.Errorf("invalid colour %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid colour %q: %w", s, err)
	}
	if len(hex) == 6 {
		v = v<<8 | 0xff
	}
	return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

// ParsePalette parses a list of hex colours.
func ParsePalette(hexes []string) ([]color.Color, error) {
	out := make([]color.Color, 0, len(hexes))
	for _, h := range hexes {
		c, err := ParseHexColor(h)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

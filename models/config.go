// Package models defines data structures for configuration and analysis records.
package models

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the top-level cohortviz configuration.
// Values from the YAML file are layered on top of DefaultConfig.
type Config struct {
	Font       FontConfig                 `yaml:"font"`
	Repeats    BarConfig                  `yaml:"repeats"`
	Suffixes   BarConfig                  `yaml:"suffixes"`
	WordClouds map[string]WordCloudConfig `yaml:"wordclouds"`
	Maps       map[string]MapConfig       `yaml:"maps"`
}

// FontConfig is handed to every rendering call instead of living in global state.
// An empty Path selects the built-in fonts, which have no CJK glyphs.
type FontConfig struct {
	Path     string `yaml:"path"`
	Typeface string `yaml:"typeface"`
}

// BarConfig describes a bar chart output.
type BarConfig struct {
	Title     string   `yaml:"title"`
	YLabel    string   `yaml:"y_label"`
	Output    string   `yaml:"output"`
	TopN      int      `yaml:"top_n"`
	Color     string   `yaml:"color"`
	Palette   []string `yaml:"palette"`
	WidthIn   float64  `yaml:"width_in"`
	HeightIn  float64  `yaml:"height_in"`
	DPI       int      `yaml:"dpi"`
	TickSize  float64  `yaml:"tick_size"`
	TitleSize float64  `yaml:"title_size"`
}

// MaskConfig selects the shape the word cloud is laid out in.
// Shape is one of "none", "ellipse", "text" or "image".
type MaskConfig struct {
	Shape    string  `yaml:"shape"`
	Width    int     `yaml:"width"`
	Height   int     `yaml:"height"`
	PadX     int     `yaml:"pad_x"`
	PadY     int     `yaml:"pad_y"`
	Text     string  `yaml:"text"`
	FontPath string  `yaml:"font_path"`
	FontSize float64 `yaml:"font_size"`
	Image    string  `yaml:"image"`
}

// WordCloudConfig is one word cloud preset.
// Source is one of "surnames", "characters" or "values".
type WordCloudConfig struct {
	Source          string     `yaml:"source"`
	Output          string     `yaml:"output"`
	Mask            MaskConfig `yaml:"mask"`
	Scale           int        `yaml:"scale"`
	Margin          int        `yaml:"margin"`
	MaxWords        int        `yaml:"max_words"`
	MinFontSize     float64    `yaml:"min_font_size"`
	MaxFontSize     float64    `yaml:"max_font_size"`
	FontStep        float64    `yaml:"font_step"`
	RelativeScaling float64    `yaml:"relative_scaling"`
	Transparent     bool       `yaml:"transparent"`
	Palette         []string   `yaml:"palette"`
	Seed            int64      `yaml:"seed"`
}

// ScaleConfig picks the upper bound of the colour scale.
// Strategy "fixed" uses Max; "quantile" uses max(Floor, quantile(Quantile) * Shrink).
type ScaleConfig struct {
	Strategy string  `yaml:"strategy"`
	Max      float64 `yaml:"max"`
	Quantile float64 `yaml:"quantile"`
	Shrink   float64 `yaml:"shrink"`
	Floor    float64 `yaml:"floor"`
}

// MapConfig is one choropleth preset.
// LabelFullName labels regions with the boundary name ("济南市") instead of the normalized one.
type MapConfig struct {
	Title         string                `yaml:"title"`
	Adcode        string                `yaml:"adcode"`
	URLTemplate   string                `yaml:"url_template"`
	AdcodeSuffix  string                `yaml:"adcode_suffix"`
	Output        string                `yaml:"output"`
	RegionColumn  string                `yaml:"region_column"`
	ValueColumn   string                `yaml:"value_column"`
	Scale         ScaleConfig           `yaml:"scale"`
	Offsets       map[string][2]float64 `yaml:"offsets"`
	LabelFullName bool                  `yaml:"label_full_name"`
	WidthIn       float64               `yaml:"width_in"`
	HeightIn      float64               `yaml:"height_in"`
	DPI           int                   `yaml:"dpi"`
	LabelSize     float64               `yaml:"label_size"`
	TitleSize     float64               `yaml:"title_size"`
	LabelAlpha    float64               `yaml:"label_alpha"`
	OffsetAlpha   float64               `yaml:"offset_alpha"`
}

// LoadConfig reads a YAML config file over DefaultConfig.
// A missing file is only an error when required is set.
func LoadConfig(path string, required bool) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !required {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// WordCloud returns the named word cloud preset.
func (c *Config) WordCloud(name string) (WordCloudConfig, error) {
	wc, ok := c.WordClouds[name]
	if !ok {
		return WordCloudConfig{}, fmt.Errorf("unknown wordcloud preset %q", name)
	}
	return wc, nil
}

// Map returns the named map preset.
func (c *Config) Map(name string) (MapConfig, error) {
	m, ok := c.Maps[name]
	if !ok {
		return MapConfig{}, fmt.Errorf("unknown map preset %q", name)
	}
	return m, nil
}

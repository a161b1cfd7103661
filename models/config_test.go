package models

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"), false)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Font.Path != DefaultFontPath {
		t.Errorf("Font.Path = %q, want %q", cfg.Font.Path, DefaultFontPath)
	}
	if cfg.Repeats.TopN != 20 {
		t.Errorf("Repeats.TopN = %d, want 20", cfg.Repeats.TopN)
	}

	china, err := cfg.Map("china")
	if err != nil {
		t.Fatalf("Map(china) error = %v", err)
	}
	if china.Scale.Strategy != "fixed" || china.Scale.Max != 60 {
		t.Errorf("china scale = %+v", china.Scale)
	}
	if china.Offsets["香港"] != [2]float64{1.4, -1.8} {
		t.Errorf("香港 offset = %v", china.Offsets["香港"])
	}

	if _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"), true); err == nil {
		t.Error("LoadConfig(required) error = nil for missing file")
	}
}

func TestLoadConfig_EmptyFontPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cohortviz.yaml")
	if err := os.WriteFile(path, []byte("font:\n  path: \"\"\n"), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	cfg, err := LoadConfig(path, true)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Font.Path != "" {
		t.Errorf("Font.Path = %q, want empty for the built-in fonts", cfg.Font.Path)
	}
}

func TestLoadConfig_Overrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cohortviz.yaml")
	content := `
font:
  path: /fonts/simkai.ttf
repeats:
  top_n: 5
maps:
  qingdao:
    adcode: "370200"
    output: qingdao.png
    scale:
      strategy: quantile
      quantile: 0.9
    offsets:
      市南区: [0.1, -0.2]
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	cfg, err := LoadConfig(path, true)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Font.Path != "/fonts/simkai.ttf" || cfg.Font.Typeface != "SimKai" {
		t.Errorf("Font = %+v", cfg.Font)
	}
	if cfg.Repeats.TopN != 5 || cfg.Repeats.Output != "name_repeat_bar.png" {
		t.Errorf("Repeats = %+v", cfg.Repeats)
	}
	if _, err := cfg.Map("china"); err != nil {
		t.Errorf("built-in china preset lost: %v", err)
	}
	qd, err := cfg.Map("qingdao")
	if err != nil {
		t.Fatalf("Map(qingdao) error = %v", err)
	}
	if qd.Offsets["市南区"] != [2]float64{0.1, -0.2} {
		t.Errorf("qingdao offsets = %v", qd.Offsets)
	}
	if _, err := cfg.WordCloud("nope"); err == nil {
		t.Error("WordCloud(nope) error = nil")
	}
}

func TestParseHexColor(t *testing.T) {
	c, err := ParseHexColor("#00A7EB")
	if err != nil {
		t.Fatalf("ParseHexColor() error = %v", err)
	}
	if c != (color.NRGBA{R: 0x00, G: 0xA7, B: 0xEB, A: 0xFF}) {
		t.Errorf("ParseHexColor() = %v", c)
	}

	c, err = ParseHexColor("ffffff80")
	if err != nil || c.A != 0x80 {
		t.Errorf("ParseHexColor(ffffff80) = %v, %v", c, err)
	}

	for _, bad := range []string{"", "#fff", "#zzzzzz"} {
		if _, err := ParseHexColor(bad); err == nil {
			t.Errorf("ParseHexColor(%q) error = nil", bad)
		}
	}

	if _, err := ParsePalette(BluePalette); err != nil {
		t.Errorf("ParsePalette(BluePalette) error = %v", err)
	}
}

package models

// BluePalette is the shared blue colour family: main colour first, then darker and lighter variants.
var BluePalette = []string{
	"#00A7EB",
	"#0070A8",
	"#33B8E8",
	"#005077",
	"#66CFF2",
	"#00334D",
	"#40CFFF",
	"#0090C7",
}

// DefaultFontPath is looked up relative to the working directory.
// An empty font path in the config selects the built-in fonts instead.
const DefaultFontPath = "simkai.ttf"

const DefaultGeoURLTemplate = "https://geojson.cn/api/china/{adcode}.json"

// DefaultConfig returns the built-in presets.
// A preset given in the YAML file replaces the built-in one with the same name.
func DefaultConfig() *Config {
	return &Config{
		Font: FontConfig{
			Path:     DefaultFontPath,
			Typeface: "SimKai",
		},
		Repeats: BarConfig{
			Title:     "高频重复的姓名",
			YLabel:    "出现次数",
			Output:    "name_repeat_bar.png",
			TopN:      20,
			Color:     "#00A7EB",
			WidthIn:   12,
			HeightIn:  6,
			DPI:       200,
			TickSize:  14,
			TitleSize: 16,
		},
		Suffixes: BarConfig{
			Title:     "跨专业重复的名字结尾",
			YLabel:    "出现次数",
			Output:    "name_suffix_by_category.png",
			TopN:      20,
			Palette:   BluePalette,
			WidthIn:   12,
			HeightIn:  6,
			DPI:       200,
			TickSize:  14,
			TitleSize: 16,
		},
		WordClouds: map[string]WordCloudConfig{
			"surnames": {
				Source: "surnames",
				Output: "name_wordcloud.png",
				Mask: MaskConfig{
					Shape:  "ellipse",
					Width:  1600,
					Height: 800,
					PadX:   30,
					PadY:   30,
				},
				Scale:           2,
				Margin:          0,
				MaxWords:        1000,
				MinFontSize:     4,
				FontStep:        1,
				RelativeScaling: 0.2,
				Palette:         BluePalette,
				Seed:            1,
			},
			"characters": {
				Source: "characters",
				Output: "name_wordcloud_2.png",
				Mask: MaskConfig{
					Shape:    "text",
					Width:    2000,
					Height:   800,
					Text:     "HAIDE",
					FontSize: 600,
				},
				Scale:           2,
				Margin:          0,
				MaxWords:        1000,
				MinFontSize:     4,
				FontStep:        1,
				RelativeScaling: 0.2,
				Palette:         BluePalette,
				Seed:            1,
			},
			"schools": {
				Source: "values",
				Output: "school_wordcloud.png",
				Mask: MaskConfig{
					Shape:  "ellipse",
					Width:  1600,
					Height: 800,
					PadX:   30,
					PadY:   30,
				},
				Scale:           2,
				Margin:          2,
				MaxWords:        200,
				MinFontSize:     4,
				FontStep:        1,
				RelativeScaling: 0.5,
				Transparent:     true,
				Palette:         BluePalette,
				Seed:            1,
			},
		},
		Maps: map[string]MapConfig{
			"china": {
				Title:        "中国海洋大学海德学院2025级新生生源地分布（单位：人）",
				Adcode:       "100000",
				URLTemplate:  DefaultGeoURLTemplate,
				AdcodeSuffix: "0000",
				Output:       "china_heatmap_blue_labels_offset_bj_tj_he_prd.png",
				RegionColumn: "province",
				ValueColumn:  "value",
				Scale: ScaleConfig{
					Strategy: "fixed",
					Max:      60,
				},
				Offsets: map[string][2]float64{
					"香港": {1.4, -1.8},
					"澳门": {-1.0, -1.0},
					"北京": {1.2, 0.8},
					"天津": {1.6, -0.2},
				},
				WidthIn:     12,
				HeightIn:    10,
				DPI:         300,
				LabelSize:   8,
				TitleSize:   14,
				LabelAlpha:  0.5,
				OffsetAlpha: 0.65,
			},
			"shandong": {
				Title:        "中国海洋大学海德学院2025级新生山东省内生源地分布（单位：人）",
				Adcode:       "370000",
				URLTemplate:  DefaultGeoURLTemplate,
				Output:       "shandong_city_heatmap_yourdata.png",
				RegionColumn: "city",
				ValueColumn:  "value",
				Scale: ScaleConfig{
					Strategy: "quantile",
					Quantile: 0.95,
					Shrink:   0.9,
					Floor:    1,
				},
				LabelFullName: true,
				WidthIn:       9,
				HeightIn:      9,
				DPI:           300,
				LabelSize:     8,
				TitleSize:     14,
				LabelAlpha:    0.55,
			},
		},
	}
}

package render

import (
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"

	"github.com/dtnitsch/cohortviz/models"
)

// Bar is one labelled bar.
type Bar struct {
	Label string
	Value float64
}

// BarChart draws one bar per entry, in order, and saves the PNG to path.
func BarChart(path string, bars []Bar, cfg models.BarConfig, fonts *Fonts) error {
	if len(bars) == 0 {
		return ErrNoData
	}

	clr, err := barColor(cfg)
	if err != nil {
		return err
	}

	values := make(plotter.Values, len(bars))
	labels := make([]string, len(bars))
	for i, b := range bars {
		values[i] = b.Value
		labels[i] = b.Label
	}

	p := newBarPlot(cfg)
	chart, err := plotter.NewBarChart(values, barWidth(cfg, len(bars)))
	if err != nil {
		return fmt.Errorf("failed to build bar chart: %w", err)
	}
	chart.Color = clr
	chart.LineStyle.Width = 0
	p.Add(chart)
	p.NominalX(labels...)
	fitSlots(p, len(labels))

	fonts.Apply(p)
	return savePNG(path, figWidth(cfg), figHeight(cfg), cfg.DPI, p.Draw)
}

// StackedBarChart draws one bar per suffix, stacked by category.
// Categories are stacked in first-seen order across suffixes.
func StackedBarChart(path string, suffixes []models.SuffixCount, cfg models.BarConfig, fonts *Fonts) error {
	if len(suffixes) == 0 {
		return ErrNoData
	}

	pal := cfg.Palette
	if len(pal) == 0 {
		pal = models.BluePalette
	}
	colors, err := models.ParsePalette(pal)
	if err != nil {
		return err
	}

	var categories []string
	seen := make(map[string]bool)
	labels := make([]string, len(suffixes))
	counts := make([]map[string]int, len(suffixes))
	for i, s := range suffixes {
		labels[i] = s.Suffix
		counts[i] = s.Counts()
		for _, c := range s.Categories {
			if !seen[c.Category] {
				seen[c.Category] = true
				categories = append(categories, c.Category)
			}
		}
	}

	p := newBarPlot(cfg)
	p.Legend.Top = true
	width := barWidth(cfg, len(suffixes))

	var below *plotter.BarChart
	for ci, category := range categories {
		values := make(plotter.Values, len(suffixes))
		for i := range suffixes {
			values[i] = float64(counts[i][category])
		}
		chart, err := plotter.NewBarChart(values, width)
		if err != nil {
			return fmt.Errorf("failed to build bar chart for %s: %w", category, err)
		}
		chart.Color = colors[ci%len(colors)]
		chart.LineStyle.Width = 0
		if below != nil {
			chart.StackOn(below)
		}
		p.Add(chart)
		p.Legend.Add(category, chart)
		below = chart
	}
	p.NominalX(labels...)
	fitSlots(p, len(labels))

	fonts.Apply(p)
	return savePNG(path, figWidth(cfg), figHeight(cfg), cfg.DPI, p.Draw)
}

func newBarPlot(cfg models.BarConfig) *plot.Plot {
	p := plot.New()
	p.Title.Text = cfg.Title
	p.Y.Label.Text = cfg.YLabel
	p.Y.Min = 0

	if cfg.TitleSize > 0 {
		p.Title.TextStyle.Font.Size = vg.Points(cfg.TitleSize)
	}
	if cfg.TickSize > 0 {
		p.X.Tick.Label.Font.Size = vg.Points(cfg.TickSize)
		p.Y.Label.TextStyle.Font.Size = vg.Points(cfg.TickSize)
		p.Legend.TextStyle.Font.Size = vg.Points(cfg.TickSize * 0.8)
	}
	p.X.Tick.Label.Rotation = math.Pi / 4
	p.X.Tick.Label.XAlign = text.XRight
	p.X.Tick.Label.YAlign = text.YCenter
	return p
}

// fitSlots gives every bar a one-unit slot centred on its index so the
// outer bars are not clipped.
func fitSlots(p *plot.Plot, n int) {
	p.X.Min = -0.5
	p.X.Max = float64(n) - 0.5
}

func barColor(cfg models.BarConfig) (color.Color, error) {
	hex := cfg.Color
	if hex == "" {
		hex = models.BluePalette[0]
	}
	return models.ParseHexColor(hex)
}

// barWidth gives each bar 80% of its slot in the plotting area.
func barWidth(cfg models.BarConfig, n int) vg.Length {
	area := vg.Length(figWidth(cfg)) * vg.Inch * 0.85
	return area / vg.Length(n) * 0.8
}

func figWidth(cfg models.BarConfig) float64 {
	if cfg.WidthIn > 0 {
		return cfg.WidthIn
	}
	return 12
}

func figHeight(cfg models.BarConfig) float64 {
	if cfg.HeightIn > 0 {
		return cfg.HeightIn
	}
	return 6
}

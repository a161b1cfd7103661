package wordcloud

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
	"golang.org/x/image/font/opentype"

	"github.com/dtnitsch/cohortviz/internal/common"
	"github.com/dtnitsch/cohortviz/models"
	"github.com/dtnitsch/cohortviz/pkg/analytics"
	"github.com/dtnitsch/cohortviz/pkg/glyphs"
	"github.com/dtnitsch/cohortviz/pkg/mapreduce"
	"github.com/dtnitsch/cohortviz/pkg/storage"
	"github.com/dtnitsch/cohortviz/pkg/tables"
	wc "github.com/dtnitsch/cohortviz/pkg/wordcloud"
)

// WordCloudAction counts surnames, characters or whole values and draws them
// as a word cloud in the preset's mask.
func WordCloudAction(c *cli.Context) error {
	logger := common.NewLogger(c)

	input, err := common.InputFile(c)
	if err != nil {
		return err
	}
	cfg, err := common.LoadConfig(c)
	if err != nil {
		return err
	}
	preset, err := cfg.WordCloud(c.String("preset"))
	if err != nil {
		return err
	}
	if c.IsSet("output") {
		preset.Output = c.String("output")
	}

	table, err := tables.Read(input)
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	values := table.Names()
	if col := c.String("column"); col != "" {
		if values, err = table.Column(col); err != nil {
			return err
		}
	}

	counts, err := Frequencies(preset.Source, values)
	if err != nil {
		return err
	}
	logger.Info("Counted words", "input", input, "rows", len(values), "count", len(counts), "source", preset.Source)
	if len(counts) == 0 {
		common.Notice("没有可绘制的词")
		return nil
	}

	opts, err := Options(preset, cfg.Font)
	if err != nil {
		return err
	}
	words := make([]wc.Word, len(counts))
	texts := make([]string, len(counts))
	for i, e := range counts {
		words[i] = wc.Word{Text: e.Key, Weight: float64(e.Count)}
		texts[i] = e.Key
	}
	common.WarnMissingGlyphs(logger, glyphs.Missing(opts.Font, texts...))

	cloud, err := wc.Layout(words, opts)
	if err != nil {
		return fmt.Errorf("failed to lay out word cloud: %w", err)
	}
	if len(cloud.Words) < len(words) && (preset.MaxWords <= 0 || len(cloud.Words) < preset.MaxWords) {
		logger.Warn("Not every word fit", "count", len(cloud.Words), "words", len(words))
	}

	img, err := wc.Render(cloud, opts)
	if err != nil {
		return err
	}
	if err := storage.SavePNG(preset.Output, img); err != nil {
		return err
	}
	logger.Info("Word cloud saved", "output", preset.Output, "count", len(cloud.Words))
	common.Saved(preset.Output)

	common.Finish(c, logger, common.RunOutput{
		Command: "wordcloud",
		Input:   input,
		Output:  preset.Output,
		Entries: common.RankedEntries(mapreduce.Rank(counts)),
	})
	return nil
}

// Frequencies counts values according to a preset source.
func Frequencies(source string, values []string) ([]mapreduce.Entry, error) {
	switch source {
	case "surnames":
		return analytics.SurnameFrequency(values), nil
	case "characters":
		return analytics.CharacterFrequency(values), nil
	case "values":
		return analytics.ValueFrequency(values), nil
	}
	return nil, fmt.Errorf("unknown wordcloud source %q (want surnames, characters or values)", source)
}

// Options turns a preset into layout options, building its mask and loading fonts.
func Options(preset models.WordCloudConfig, fontCfg models.FontConfig) (wc.Options, error) {
	f, err := wc.LoadFont(fontCfg.Path)
	if err != nil {
		return wc.Options{}, err
	}

	hexes := preset.Palette
	if len(hexes) == 0 {
		hexes = models.BluePalette
	}
	palette, err := models.ParsePalette(hexes)
	if err != nil {
		return wc.Options{}, err
	}

	mask, err := buildMask(preset.Mask)
	if err != nil {
		return wc.Options{}, err
	}

	return wc.Options{
		Width:           preset.Mask.Width,
		Height:          preset.Mask.Height,
		Mask:            mask,
		Font:            f,
		MaxWords:        preset.MaxWords,
		MinFontSize:     preset.MinFontSize,
		MaxFontSize:     preset.MaxFontSize,
		FontStep:        preset.FontStep,
		RelativeScaling: preset.RelativeScaling,
		Margin:          preset.Margin,
		Palette:         palette,
		Seed:            preset.Seed,
		Scale:           preset.Scale,
		Transparent:     preset.Transparent,
	}, nil
}

func buildMask(m models.MaskConfig) (*wc.Mask, error) {
	switch m.Shape {
	case "", "none":
		return nil, nil
	case "ellipse":
		return wc.EllipseMask(m.Width, m.Height, m.PadX, m.PadY), nil
	case "text":
		f, err := maskFont(m.FontPath)
		if err != nil {
			return nil, err
		}
		return wc.TextMask(m.Width, m.Height, m.Text, f, m.FontSize)
	case "image":
		file, err := os.Open(m.Image)
		if err != nil {
			return nil, fmt.Errorf("failed to open mask image: %w", err)
		}
		defer file.Close()
		return wc.ImageMask(file)
	}
	return nil, fmt.Errorf("unknown mask shape %q", m.Shape)
}

func maskFont(path string) (*opentype.Font, error) {
	if path == "" {
		return wc.BoldFont()
	}
	return wc.LoadFont(path)
}

package analyze

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/cohortviz/internal/common"
	"github.com/dtnitsch/cohortviz/models"
	"github.com/dtnitsch/cohortviz/pkg/analytics"
	dbpkg "github.com/dtnitsch/cohortviz/pkg/db"
	"github.com/dtnitsch/cohortviz/pkg/render"
	"github.com/dtnitsch/cohortviz/pkg/tables"
)

// RepeatsAction reports the substrings shared by at least two name positions
// and draws the top ones as a bar chart.
func RepeatsAction(c *cli.Context) error {
	logger := common.NewLogger(c)

	input, err := common.InputFile(c)
	if err != nil {
		return err
	}
	cfg, err := common.LoadConfig(c)
	if err != nil {
		return err
	}
	bar := barOverrides(c, cfg.Repeats)

	table, err := tables.Read(input)
	if err != nil {
		return fmt.Errorf("failed to read names: %w", err)
	}
	names := table.Names()
	minLength := c.Int("min-length")
	logger.Info("Analyzing names", "input", input, "rows", len(names), "min_length", minLength)

	counts := analytics.Analyze(names, minLength)
	if len(counts) == 0 {
		common.Notice("没有重复词组（长度≥%d，出现次数>1）", max(minLength, 1))
		return nil
	}
	top := topN(counts, bar.TopN)

	if err := printCounts(c, top); err != nil {
		return err
	}

	fonts, err := render.LoadFonts(cfg.Font)
	if err != nil {
		return err
	}
	bars := make([]render.Bar, len(top))
	labels := []string{bar.Title, bar.YLabel}
	for i, sc := range top {
		bars[i] = render.Bar{Label: sc.Substring, Value: float64(sc.Count)}
		labels = append(labels, sc.Substring)
	}
	common.WarnMissingGlyphs(logger, fonts.Missing(labels...))
	if err := render.BarChart(bar.Output, bars, bar, fonts); err != nil {
		return fmt.Errorf("failed to draw bar chart: %w", err)
	}
	logger.Info("Bar chart saved", "output", bar.Output, "count", len(top))
	common.Saved(bar.Output)

	entries := make([]dbpkg.RunEntry, len(counts))
	for i, sc := range counts {
		entries[i] = dbpkg.RunEntry{Rank: i + 1, Key: sc.Substring, Count: float64(sc.Count)}
	}
	common.Finish(c, logger, common.RunOutput{
		Command: "repeats",
		Input:   input,
		Output:  bar.Output,
		Entries: entries,
	})
	return nil
}

// SuffixesAction reports two-character name endings that appear in more than
// one category and draws them as a stacked bar chart.
func SuffixesAction(c *cli.Context) error {
	logger := common.NewLogger(c)

	input, err := common.InputFile(c)
	if err != nil {
		return err
	}
	cfg, err := common.LoadConfig(c)
	if err != nil {
		return err
	}
	bar := barOverrides(c, cfg.Suffixes)

	table, err := tables.Read(input)
	if err != nil {
		return fmt.Errorf("failed to read names: %w", err)
	}
	category := c.String("category")
	records, err := table.Records(category)
	if err != nil {
		return fmt.Errorf("failed to read category column: %w", err)
	}
	logger.Info("Analyzing name suffixes", "input", input, "rows", len(records), "category", category)

	suffixes := analytics.AnalyzeSuffixByCategory(records)
	if len(suffixes) == 0 {
		common.Notice("没有跨%s重复的名字结尾", category)
		return nil
	}
	top := suffixes
	if bar.TopN > 0 && len(top) > bar.TopN {
		top = top[:bar.TopN]
	}

	if c.String("format") == "yaml" {
		if err := common.PrintYAML(os.Stdout, top); err != nil {
			return err
		}
	} else {
		rows := make([][]string, len(top))
		for i, s := range top {
			parts := make([]string, len(s.Categories))
			for j, cc := range s.Categories {
				parts[j] = cc.Category + ":" + strconv.Itoa(cc.Count)
			}
			rows[i] = []string{strconv.Itoa(i + 1), s.Suffix, strconv.Itoa(s.Total), strings.Join(parts, ", ")}
		}
		common.PrintTable(os.Stdout, []string{"#", "Suffix", "Total", category}, rows)
	}

	fonts, err := render.LoadFonts(cfg.Font)
	if err != nil {
		return err
	}
	labels := []string{bar.Title, bar.YLabel}
	for _, sc := range top {
		labels = append(labels, sc.Suffix)
		for _, cc := range sc.Categories {
			labels = append(labels, cc.Category)
		}
	}
	common.WarnMissingGlyphs(logger, fonts.Missing(labels...))
	if err := render.StackedBarChart(bar.Output, top, bar, fonts); err != nil {
		return fmt.Errorf("failed to draw stacked bar chart: %w", err)
	}
	logger.Info("Stacked bar chart saved", "output", bar.Output, "count", len(top))
	common.Saved(bar.Output)

	var entries []dbpkg.RunEntry
	for i, s := range suffixes {
		for _, cc := range s.Categories {
			entries = append(entries, dbpkg.RunEntry{Rank: i + 1, Key: s.Suffix, Category: cc.Category, Count: float64(cc.Count)})
		}
	}
	common.Finish(c, logger, common.RunOutput{
		Command: "suffixes",
		Input:   input,
		Output:  bar.Output,
		Entries: entries,
	})
	return nil
}

func barOverrides(c *cli.Context, bar models.BarConfig) models.BarConfig {
	if c.IsSet("top") {
		bar.TopN = c.Int("top")
	}
	if c.IsSet("output") {
		bar.Output = c.String("output")
	}
	return bar
}

func topN(counts []models.SubstringCount, n int) []models.SubstringCount {
	if n > 0 && len(counts) > n {
		return counts[:n]
	}
	return counts
}

func printCounts(c *cli.Context, counts []models.SubstringCount) error {
	if c.String("format") == "yaml" {
		return common.PrintYAML(os.Stdout, counts)
	}

	rows := make([][]string, len(counts))
	for i, sc := range counts {
		rows[i] = []string{strconv.Itoa(i + 1), sc.Substring, strconv.Itoa(sc.Count)}
	}
	common.PrintTable(os.Stdout, []string{"#", "Substring", "Count"}, rows)
	return nil
}

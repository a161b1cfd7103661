package choropleth

import (
	"fmt"
	"sort"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/cohortviz/internal/common"
	"github.com/dtnitsch/cohortviz/models"
	"github.com/dtnitsch/cohortviz/pkg/caching"
	dbpkg "github.com/dtnitsch/cohortviz/pkg/db"
	"github.com/dtnitsch/cohortviz/pkg/fetcher"
	"github.com/dtnitsch/cohortviz/pkg/geo"
	"github.com/dtnitsch/cohortviz/pkg/regions"
	"github.com/dtnitsch/cohortviz/pkg/render"
	"github.com/dtnitsch/cohortviz/pkg/scale"
	"github.com/dtnitsch/cohortviz/pkg/tables"
)

// ChoroplethAction joins per-region counts onto boundary data and draws a
// labelled heat map.
func ChoroplethAction(c *cli.Context) error {
	logger := common.NewLogger(c)

	input, err := common.InputFile(c)
	if err != nil {
		return err
	}
	cfg, err := common.LoadConfig(c)
	if err != nil {
		return err
	}
	preset, err := cfg.Map(c.String("preset"))
	if err != nil {
		return err
	}
	applyFlags(c, &preset)

	maxAge, err := time.ParseDuration(c.String("max-age"))
	if err != nil {
		return fmt.Errorf("invalid max-age duration: %w", err)
	}

	table, err := tables.Read(input)
	if err != nil {
		return fmt.Errorf("failed to read region values: %w", err)
	}
	values, err := regions.ReadValues(table, preset.RegionColumn, preset.ValueColumn)
	if err != nil {
		return fmt.Errorf("failed to read region values: %w", err)
	}
	logger.Info("Read region values", "input", input, "rows", len(values))

	source := &geo.Source{
		URLTemplate: preset.URLTemplate,
		Fetcher:     fetcher.NewFetcher(),
	}
	if dir := c.String("cache-dir"); dir != "" {
		if source.Cache, err = caching.NewCache(dir, maxAge); err != nil {
			return err
		}
	}
	url := source.URL(preset.Adcode)
	logger.Info("Loading boundaries", "url", url)
	if source.Cache != nil {
		if age, ok := source.Cache.Age(url); ok {
			logger.Info("Boundaries cached", "age", age.Round(time.Second).String(), "max_age", maxAge.String())
		}
	}
	data, err := source.Load(c.Context, preset.Adcode)
	if err != nil {
		return err
	}
	features, err := geo.Parse(data, geo.Options{AdcodeSuffix: preset.AdcodeSuffix})
	if err != nil {
		return err
	}

	joined := regions.Join(features, func(r geo.Region) string { return r.Name }, values)
	for _, name := range joined.Unmatched {
		logger.Warn("Region not found on map", "region", name)
	}

	vmin, vmax, err := scale.Bounds(joined.Values(), preset.Scale)
	if err != nil {
		return err
	}
	logger.Info("Colour scale", "vmin", vmin, "vmax", vmax, "strategy", preset.Scale.Strategy)

	fonts, err := render.LoadFonts(cfg.Font)
	if err != nil {
		return err
	}
	labels := []string{preset.Title}
	for _, row := range joined.Rows {
		labels = append(labels, row.Key, row.Feature.Name)
	}
	common.WarnMissingGlyphs(logger, fonts.Missing(labels...))
	if err := render.Choropleth(preset.Output, joined, preset, vmin, vmax, fonts); err != nil {
		return fmt.Errorf("failed to draw map: %w", err)
	}
	logger.Info("Map saved", "output", preset.Output, "count", len(joined.Rows))
	common.Saved(preset.Output)

	common.Finish(c, logger, common.RunOutput{
		Command:   "choropleth",
		Input:     input,
		Output:    preset.Output,
		Entries:   matchedEntries(joined),
		Unmatched: joined.Unmatched,
	})
	return nil
}

func applyFlags(c *cli.Context, preset *models.MapConfig) {
	if c.IsSet("output") {
		preset.Output = c.String("output")
	}
	if c.IsSet("region-column") {
		preset.RegionColumn = c.String("region-column")
	}
	if c.IsSet("value-column") {
		preset.ValueColumn = c.String("value-column")
	}
	if c.IsSet("url-template") {
		preset.URLTemplate = c.String("url-template")
	}
	if preset.URLTemplate == "" {
		preset.URLTemplate = models.DefaultGeoURLTemplate
	}
}

// matchedEntries lists the regions that received a value, largest first.
func matchedEntries(joined regions.JoinResult[geo.Region]) []dbpkg.RunEntry {
	var entries []dbpkg.RunEntry
	for _, row := range joined.Rows {
		if row.HasValue {
			entries = append(entries, dbpkg.RunEntry{Key: row.Key, Count: row.Value})
		}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Count > entries[j].Count
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries
}

package common

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/dtnitsch/cohortviz/models"
	dbpkg "github.com/dtnitsch/cohortviz/pkg/db"
	"github.com/dtnitsch/cohortviz/pkg/manifest"
	"github.com/dtnitsch/cohortviz/pkg/mapreduce"
)

// NewLogger returns the JSON logger every action writes to stderr.
func NewLogger(c *cli.Context) *slog.Logger {
	logLevel := slog.LevelInfo
	if c.Bool("quiet") {
		logLevel = slog.LevelError
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
}

// LoadConfig loads --config over the built-in presets. The default file may be missing.
func LoadConfig(c *cli.Context) (*models.Config, error) {
	return models.LoadConfig(c.String("config"), c.IsSet("config"))
}

// InputFile returns the first positional argument.
// Flags stop being parsed at the file, so a flag after it is an error rather
// than being silently ignored.
func InputFile(c *cli.Context) (string, error) {
	name := commandName(c)
	if c.NArg() == 0 {
		return "", fmt.Errorf("no input file given. Usage: cohortviz %s [flags] <file>", name)
	}
	for _, arg := range c.Args().Tail() {
		if strings.HasPrefix(arg, "-") {
			return "", fmt.Errorf("flag %s after the input file is not read; put flags first: cohortviz %s [flags] <file>", arg, name)
		}
	}
	return c.Args().First(), nil
}

func commandName(c *cli.Context) string {
	if c.Command != nil && c.Command.Name != "" {
		return c.Command.Name
	}
	return "<command>"
}

// PrintTable renders rows as a terminal table.
func PrintTable(w io.Writer, header []string, rows [][]string) {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.AppendBulk(rows)
	table.Render()
}

// PrintYAML writes v to w as YAML.
func PrintYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode yaml: %w", err)
	}
	return enc.Close()
}

// Saved reports a written file on stdout.
func Saved(path string) {
	color.Green("已保存图片：%s", path)
}

// Notice prints an informational message on stdout.
func Notice(format string, args ...any) {
	color.Yellow(format, args...)
}

// WarnMissingGlyphs logs characters the configured font cannot draw.
func WarnMissingGlyphs(logger *slog.Logger, missing []rune) {
	if len(missing) == 0 {
		return
	}
	shown := missing
	if len(shown) > 20 {
		shown = shown[:20]
	}
	logger.Warn("Font has no glyphs for some characters, set font.path to a CJK font",
		"characters", string(shown), "count", len(missing))
}

// RunOutput is what an analysis command produced.
type RunOutput struct {
	Command   string
	Input     string
	Output    string
	Entries   []dbpkg.RunEntry
	Unmatched []string
}

// Finish records the run with --record and writes the manifest with --manifest.
// Neither failure undoes the image already written, so both are logged, not returned.
func Finish(c *cli.Context, logger *slog.Logger, out RunOutput) {
	if c.Bool("record") {
		runID, err := record(c.String("db"), out)
		if err != nil {
			logger.Error("failed to record run", "error", err)
		} else {
			logger.Info("Run recorded", "run_id", runID, "count", len(out.Entries))
		}
	}

	if c.Bool("manifest") && out.Output != "" {
		path, err := manifest.GenerateSummary(manifest.RunResult{
			Command:    out.Command,
			InputPath:  out.Input,
			OutputPath: out.Output,
			Entries:    ManifestEntries(out.Entries),
			Unmatched:  out.Unmatched,
		})
		if err != nil {
			logger.Error("failed to write manifest", "error", err)
		} else {
			logger.Info("Manifest written", "output", path)
		}
	}
}

func record(dbPath string, out RunOutput) (int64, error) {
	database, err := dbpkg.Open(dbPath)
	if err != nil {
		return 0, fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	runID, err := database.CreateRun(out.Command, out.Input, out.Output, len(out.Entries))
	if err != nil {
		return 0, err
	}
	if err := database.InsertEntries(runID, out.Entries); err != nil {
		return 0, err
	}
	return runID, nil
}

// ManifestEntries flattens run entries to "key" or "key/category" counts.
func ManifestEntries(entries []dbpkg.RunEntry) []mapreduce.Entry {
	out := make([]mapreduce.Entry, len(entries))
	for i, e := range entries {
		key := e.Key
		if e.Category != "" {
			key += "/" + e.Category
		}
		out[i] = mapreduce.Entry{Key: key, Count: int(e.Count)}
	}
	return out
}

// RankedEntries numbers entries from 1 in the given order.
func RankedEntries(entries []mapreduce.Entry) []dbpkg.RunEntry {
	out := make([]dbpkg.RunEntry, len(entries))
	for i, e := range entries {
		out[i] = dbpkg.RunEntry{Rank: i + 1, Key: e.Key, Count: float64(e.Count)}
	}
	return out
}

// FormatCount prints whole numbers without a fraction.
func FormatCount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

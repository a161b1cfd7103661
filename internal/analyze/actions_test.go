package analyze

import (
	"errors"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/cohortviz/models"
	dbpkg "github.com/dtnitsch/cohortviz/pkg/db"
	"github.com/dtnitsch/cohortviz/pkg/manifest"
)

const testConfig = `font:
  path: ""
repeats:
  dpi: 40
suffixes:
  dpi: 40
`

// setupWorkspace writes the config and input files into a temp dir.
func setupWorkspace(t *testing.T, input string) (dir, config, csvPath string) {
	t.Helper()

	dir = t.TempDir()
	config = filepath.Join(dir, "cohortviz.yaml")
	csvPath = filepath.Join(dir, "names.csv")
	if err := os.WriteFile(config, []byte(testConfig), 0644); err != nil {
		t.Fatalf("WriteFile(config) error = %v", err)
	}
	if err := os.WriteFile(csvPath, []byte(input), 0644); err != nil {
		t.Fatalf("WriteFile(input) error = %v", err)
	}
	return dir, config, csvPath
}

func newTestApp() *cli.App {
	outputFlags := func(extra ...cli.Flag) []cli.Flag {
		return append([]cli.Flag{
			&cli.IntFlag{Name: "top"},
			&cli.StringFlag{Name: "output"},
			&cli.StringFlag{Name: "format", Value: "table"},
		}, extra...)
	}

	return &cli.App{
		Name: "cohortviz",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config"},
			&cli.BoolFlag{Name: "quiet"},
			&cli.BoolFlag{Name: "record"},
			&cli.StringFlag{Name: "db"},
			&cli.BoolFlag{Name: "manifest"},
		},
		Commands: []*cli.Command{
			{
				Name:   "repeats",
				Flags:  outputFlags(&cli.IntFlag{Name: "min-length", Value: 2}),
				Action: RepeatsAction,
			},
			{
				Name:   "suffixes",
				Flags:  outputFlags(&cli.StringFlag{Name: "category", Required: true}),
				Action: SuffixesAction,
			},
		},
	}
}

func assertMissing(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("%s exists (stat error %v), want no file", filepath.Base(path), err)
	}
}

func assertPNG(t *testing.T, path string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile(%s) error = %v", filepath.Base(path), err)
	}
	if !strings.HasPrefix(string(data), "\x89PNG") {
		t.Errorf("%s is not a PNG", filepath.Base(path))
	}
}

func TestRepeatsAction_NoRepeats(t *testing.T) {
	dir, config, input := setupWorkspace(t, "姓名\n李明\n王明\n张明\n")
	output := filepath.Join(dir, "bar.png")

	err := newTestApp().Run([]string{"cohortviz", "--quiet", "--config", config, "--manifest",
		"repeats", "--output", output, input})
	if err != nil {
		t.Fatalf("repeats error = %v, want nil for an empty result", err)
	}
	assertMissing(t, output)
	assertMissing(t, manifest.Path(output))
}

func TestRepeatsAction_WritesChartAndHistory(t *testing.T) {
	dir, config, input := setupWorkspace(t, "姓名\n陈思远\n陈思\n李思远\n")
	output := filepath.Join(dir, "bar.png")
	dbPath := filepath.Join(dir, "history.db")

	err := newTestApp().Run([]string{"cohortviz", "--quiet", "--config", config,
		"--record", "--db", dbPath, "--manifest",
		"repeats", "--output", output, "--format", "yaml", input})
	if err != nil {
		t.Fatalf("repeats error = %v", err)
	}
	assertPNG(t, output)
	if _, err := os.Stat(manifest.Path(output)); err != nil {
		t.Errorf("manifest not written: %v", err)
	}

	database, err := dbpkg.Open(dbPath)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer database.Close()

	runs, err := database.ListRuns(10)
	if err != nil {
		t.Fatalf("ListRuns() error = %v", err)
	}
	if len(runs) != 1 || runs[0].Command != "repeats" || runs[0].EntryCount != 2 {
		t.Fatalf("runs = %+v, want one repeats run with 2 entries", runs)
	}
	entries, err := database.GetRunEntries(runs[0].RunID)
	if err != nil {
		t.Fatalf("GetRunEntries() error = %v", err)
	}
	if entries[0].Key != "陈思" || entries[1].Key != "思远" {
		t.Errorf("entries = %+v, want 陈思 then 思远", entries)
	}
}

func TestSuffixesAction(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantPNG bool
	}{
		{
			name:    "shared suffix",
			input:   "姓名,专业\n张小红,计算机\n李小红,数学\n王小红,计算机\n",
			wantPNG: true,
		},
		{
			name:  "single category",
			input: "姓名,专业\n张小红,计算机\n王小红,计算机\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir, config, input := setupWorkspace(t, tt.input)
			output := filepath.Join(dir, "suffix.png")

			err := newTestApp().Run([]string{"cohortviz", "--quiet", "--config", config,
				"suffixes", "--category", "专业", "--output", output, input})
			if err != nil {
				t.Fatalf("suffixes error = %v", err)
			}
			if tt.wantPNG {
				assertPNG(t, output)
			} else {
				assertMissing(t, output)
			}
		})
	}
}

func TestSuffixesAction_FlagAfterFile(t *testing.T) {
	_, config, input := setupWorkspace(t, "姓名,专业\n张小红,计算机\n")

	err := newTestApp().Run([]string{"cohortviz", "--quiet", "--config", config,
		"suffixes", "--category", "专业", input, "--top", "3"})
	if err == nil || !strings.Contains(err.Error(), "--top") {
		t.Errorf("suffixes error = %v, want a complaint about --top", err)
	}
}

func TestTopN(t *testing.T) {
	counts := []models.SubstringCount{
		{Substring: "思远", Count: 3},
		{Substring: "子涵", Count: 2},
		{Substring: "陈思", Count: 2},
	}

	tests := []struct {
		n    int
		want int
	}{
		{0, 3},
		{2, 2},
		{10, 3},
	}
	for _, tt := range tests {
		if got := topN(counts, tt.n); len(got) != tt.want {
			t.Errorf("topN(%d) returned %d entries, want %d", tt.n, len(got), tt.want)
		}
	}
}

func TestBarOverrides(t *testing.T) {
	set := flag.NewFlagSet("repeats", flag.ContinueOnError)
	set.Int("top", 0, "")
	set.String("output", "", "")
	if err := set.Parse([]string{"--top", "5"}); err != nil {
		t.Fatalf("failed to parse flags: %v", err)
	}
	c := cli.NewContext(cli.NewApp(), set, nil)

	got := barOverrides(c, models.BarConfig{TopN: 10, Output: "name_repeat_bar.png"})
	if got.TopN != 5 {
		t.Errorf("TopN = %d, want 5", got.TopN)
	}
	if got.Output != "name_repeat_bar.png" {
		t.Errorf("Output = %q, want the config value", got.Output)
	}
}
